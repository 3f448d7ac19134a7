// Package daily implements the daily quest rotation: a generated pair of
// quests that lives for one calendar day, is reconstructed from the save
// blob within the day, and is regenerated on rollover.
package daily

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/snackdash/snackdash/internal/catalog"
	"github.com/snackdash/snackdash/internal/domain"
	"github.com/snackdash/snackdash/internal/event"
	"github.com/snackdash/snackdash/internal/ledger"
	"github.com/snackdash/snackdash/internal/logger"
	"github.com/snackdash/snackdash/internal/metrics"
	"github.com/snackdash/snackdash/internal/progress"
	"github.com/snackdash/snackdash/internal/save"
)

// ActiveDaily pairs a daily quest definition with its progress record.
type ActiveDaily struct {
	Definition domain.DailyQuestDefinition
	Record     *progress.Record
}

// Service owns the day's quest pair. It is session-scoped and not safe for
// concurrent use; the rollover worker hands its callback to the session
// goroutine.
type Service struct {
	gateway  *save.Gateway
	ledger   *ledger.Ledger
	bus      event.Bus
	rng      *rand.Rand
	maxDaily int
	now      func() time.Time

	currentDate string
	active      []*ActiveDaily
	completed   []*ActiveDaily
}

// NewService creates the daily quest service. maxDaily bounds the number of
// quests held per day, generated or restored. Call Load before use.
func NewService(gateway *save.Gateway, led *ledger.Ledger, bus event.Bus, rng *rand.Rand, maxDaily int) *Service {
	return &Service{
		gateway:  gateway,
		ledger:   led,
		bus:      bus,
		rng:      rng,
		maxDaily: maxDaily,
		now:      time.Now,
	}
}

// Load restores the day's quests. A snapshot stamped with today's date is
// reconstructed record by record; anything older (or missing, or corrupt)
// is discarded and a fresh pair is generated. Ledger-backed progress is
// reconciled afterwards, so counters collected while the save blob lagged
// behind are never lost.
func (s *Service) Load(ctx context.Context) {
	log := logger.FromContext(ctx)
	now := s.now()
	s.currentDate = now.Format(save.DateLayout)
	s.active = nil
	s.completed = nil

	// The daily ledger scope must not outlive its day. A day change while
	// no session was running leaves yesterday's counters behind, and the
	// reconcile below would complete fresh dailies with them.
	if last := s.ledger.LastDailyReset(ctx); last != s.currentDate {
		s.ledger.ResetDaily(ctx)
		s.ledger.SetLastDailyReset(ctx, s.currentDate)
		log.Info("Daily ledger scope reset", "date", s.currentDate, "previous", last)
	}

	snapshot := s.gateway.LoadDailyQuests(ctx)
	if save.IsFromToday(snapshot.LastLoginDate, now) {
		for _, entry := range snapshot.TodaysQuests {
			if s.count() >= s.maxDaily {
				log.Warn("Dropping saved daily quest over the limit", "quest", entry.QuestName, "max", s.maxDaily)
				continue
			}
			s.restore(ctx, entry)
		}
		log.Info("Daily quests restored", "date", s.currentDate, "active", len(s.active), "completed", len(s.completed))
	} else {
		s.generate(ctx)
		log.Info("Daily quests generated", "date", s.currentDate, "stale", snapshot.LastLoginDate)
	}

	s.RefreshFromLedger(ctx)
	s.persist(ctx)
}

// HandleDayRollover switches the service to a new day. Calling it again
// with the same date is a no-op, so overlapping detection paths (worker
// tick, session start) cannot double-reset. Unclaimed rewards from the old
// day are forfeited.
func (s *Service) HandleDayRollover(ctx context.Context, today string) {
	if today == s.currentDate {
		return
	}
	log := logger.FromContext(ctx)

	expired := 0
	for _, ad := range append(append([]*ActiveDaily(nil), s.active...), s.completed...) {
		if !ad.Record.RewardClaimed() {
			expired++
		}
	}

	s.active = nil
	s.completed = nil
	s.currentDate = today

	s.ledger.ResetDaily(ctx)
	s.ledger.SetLastDailyReset(ctx, today)
	s.generate(ctx)
	s.persist(ctx)

	metrics.DayRollovers.Inc()
	s.publish(ctx, event.NewDayRolloverEvent(today, expired))
	log.Info("Day rollover handled", "date", today, "expired", expired)
}

// OnFoodCollected advances collect-food dailies matching the collected
// category and item. Progress is reconciled from the ledger's daily counter
// rather than incremented, so replays and missed events cannot skew it.
func (s *Service) OnFoodCollected(ctx context.Context, category domain.FoodCategory, item int) {
	touched := false
	for _, ad := range s.active {
		def := ad.Definition
		if def.Type != domain.DailyCollectSpecificFood || def.Category != category || def.SpecificItem != item {
			continue
		}
		ad.Record.SetProgress(s.ledger.DailyCount(ctx, category, item))
		touched = true
	}
	if touched {
		s.sweepCompleted(ctx)
		s.persist(ctx)
	}
}

// OnQuestCompleted advances complete-quests dailies from the ledger's
// per-day completed counter.
func (s *Service) OnQuestCompleted(ctx context.Context) {
	touched := false
	for _, ad := range s.active {
		if ad.Definition.Type != domain.DailyCompleteQuests {
			continue
		}
		ad.Record.SetProgress(s.ledger.NormalQuestsCompletedToday(ctx))
		touched = true
	}
	if touched {
		s.sweepCompleted(ctx)
		s.persist(ctx)
	}
}

// RefreshFromLedger reconciles every active daily against the ledger. Used
// after load and whenever an external path may have bumped the counters.
func (s *Service) RefreshFromLedger(ctx context.Context) {
	for _, ad := range s.active {
		switch ad.Definition.Type {
		case domain.DailyCollectSpecificFood:
			ad.Record.SetProgress(s.ledger.DailyCount(ctx, ad.Definition.Category, ad.Definition.SpecificItem))
		case domain.DailyCompleteQuests:
			ad.Record.SetProgress(s.ledger.NormalQuestsCompletedToday(ctx))
		}
	}
	s.sweepCompleted(ctx)
}

// ClaimReward claims a completed daily's reward and credits its gold.
// Returns the gold granted, 0 when the reward was already claimed or the
// quest is incomplete. Unknown record IDs return domain.ErrNotFound.
func (s *Service) ClaimReward(ctx context.Context, recordID string) (int, error) {
	ad := s.find(recordID)
	if ad == nil {
		return 0, fmt.Errorf("claim reward for daily quest %s: %w", recordID, domain.ErrNotFound)
	}

	if !ad.Record.ClaimReward() {
		return 0, nil
	}

	gold := ad.Definition.GoldReward
	s.ledger.AddGold(ctx, gold)
	metrics.RewardsClaimed.WithLabelValues(metrics.KindDaily).Inc()
	s.publish(ctx, event.NewRewardClaimedEvent(domain.EventTypeDailyQuestRewardClaimed, ad.Record.ID(), ad.Record.Name(), gold, 0))
	s.persist(ctx)

	logger.FromContext(ctx).Info("Daily quest reward claimed", "quest", ad.Record.Name(), "gold", gold)
	return gold, nil
}

// Active returns the incomplete dailies.
func (s *Service) Active() []*ActiveDaily {
	return append([]*ActiveDaily(nil), s.active...)
}

// Completed returns the completed dailies, claimed or not.
func (s *Service) Completed() []*ActiveDaily {
	return append([]*ActiveDaily(nil), s.completed...)
}

// CurrentDate returns the date the service is operating for (yyyy-MM-dd).
func (s *Service) CurrentDate() string { return s.currentDate }

// generate creates the fresh daily pair for the current day, capped at
// maxDaily.
func (s *Service) generate(ctx context.Context) {
	for _, def := range catalog.GenerateDailyQuests(s.rng) {
		if s.count() >= s.maxDaily {
			break
		}
		s.add(ctx, def, progress.New(def.Name, def.TargetValue))
		metrics.QuestsAssigned.WithLabelValues(metrics.KindDaily).Inc()
	}
}

// count returns the number of quests held for the day, active or completed.
func (s *Service) count() int { return len(s.active) + len(s.completed) }

// restore rebuilds one daily from its save entry.
func (s *Service) restore(ctx context.Context, entry domain.DailyQuestSaveEntry) {
	def := domain.DailyQuestDefinition{
		Name:         entry.QuestName,
		Type:         domain.DailyQuestType(entry.QuestType),
		TargetValue:  entry.TargetValue,
		Category:     domain.FoodCategory(entry.RequiredFoodType),
		SpecificItem: entry.SpecificItem(),
		GoldReward:   entry.GoldReward,
	}
	def.Description = describeDaily(def)

	var completedAt time.Time
	if entry.IsCompleted {
		completedAt = s.now()
	}
	rec := progress.Restore(entry.QuestName, entry.TargetValue, entry.CurrentProgress,
		entry.IsCompleted, entry.IsRewardClaimed, s.now(), completedAt)

	if rec.Completed() {
		s.completed = append(s.completed, &ActiveDaily{Definition: def, Record: rec})
		return
	}
	s.add(ctx, def, rec)
}

// add wires the progress notifier and activates the record.
func (s *Service) add(ctx context.Context, def domain.DailyQuestDefinition, rec *progress.Record) {
	rec.SetNotifier(progress.Notifier{
		OnProgress: func(r *progress.Record) {
			s.publish(ctx, event.NewProgressEvent(domain.EventTypeDailyQuestProgress, r.ID(), r.Name(), r.Current(), r.Target()))
		},
	})
	s.active = append(s.active, &ActiveDaily{Definition: def, Record: rec})
	s.publish(ctx, event.NewProgressEvent(domain.EventTypeDailyQuestAdded, rec.ID(), rec.Name(), rec.Current(), rec.Target()))
}

// sweepCompleted moves newly completed records to the completed list and
// publishes their completion.
func (s *Service) sweepCompleted(ctx context.Context) {
	remaining := s.active[:0]
	for _, ad := range s.active {
		if !ad.Record.Completed() {
			remaining = append(remaining, ad)
			continue
		}
		s.completed = append(s.completed, ad)
		metrics.QuestsCompleted.WithLabelValues(metrics.KindDaily).Inc()
		s.publish(ctx, event.NewCompletedEvent(domain.EventTypeDailyQuestCompleted, ad.Record.ID(), ad.Record.Name(), ad.Record.CompletedAt()))
		logger.FromContext(ctx).Info("Daily quest completed", "quest", ad.Record.Name())
	}
	s.active = remaining
}

// persist writes the current snapshot, best effort.
func (s *Service) persist(ctx context.Context) {
	snapshot := domain.DailyQuestSaveData{LastLoginDate: s.currentDate}
	for _, ad := range append(append([]*ActiveDaily(nil), s.active...), s.completed...) {
		snapshot.TodaysQuests = append(snapshot.TodaysQuests, s.entry(ad))
	}
	s.gateway.SaveDailyQuests(ctx, snapshot)
}

func (s *Service) entry(ad *ActiveDaily) domain.DailyQuestSaveEntry {
	def := ad.Definition
	e := domain.DailyQuestSaveEntry{
		QuestName:        def.Name,
		CurrentProgress:  ad.Record.Current(),
		IsCompleted:      ad.Record.Completed(),
		IsRewardClaimed:  ad.Record.RewardClaimed(),
		QuestDate:        s.currentDate,
		QuestType:        string(def.Type),
		TargetValue:      def.TargetValue,
		GoldReward:       def.GoldReward,
		RequiredFoodType: int(def.Category),
	}
	switch def.Category {
	case domain.FoodFruit:
		e.RequiredFruit = def.SpecificItem
	case domain.FoodFastFood:
		e.RequiredFastFood = def.SpecificItem
	case domain.FoodCake:
		e.RequiredCake = def.SpecificItem
	}
	return e
}

func (s *Service) find(recordID string) *ActiveDaily {
	for _, ad := range s.completed {
		if ad.Record.ID() == recordID {
			return ad
		}
	}
	for _, ad := range s.active {
		if ad.Record.ID() == recordID {
			return ad
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, ev event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("Event handler failed", "type", ev.Type, "error", err)
	}
}

// describeDaily rebuilds the display description for a restored definition.
func describeDaily(def domain.DailyQuestDefinition) string {
	switch def.Type {
	case domain.DailyCompleteQuests:
		return fmt.Sprintf("Complete %d normal quests", def.TargetValue)
	case domain.DailyCollectSpecificFood:
		return fmt.Sprintf("Collect %d %s items", def.TargetValue, domain.ItemName(def.Category, def.SpecificItem))
	default:
		return ""
	}
}
