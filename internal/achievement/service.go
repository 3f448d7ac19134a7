// Package achievement implements lifetime achievements: one record per
// catalog definition, fed from the ledger's lifetime counters, unlocked at
// most once, rewards claimed at most once.
package achievement

import (
	"context"
	"fmt"
	"strconv"
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

// Tracked pairs an achievement definition with its lifetime record.
type Tracked struct {
	Definition domain.AchievementDefinition
	Record     *progress.Record
}

// UnlockedAt returns the unlock timestamp, zero while locked.
func (t *Tracked) UnlockedAt() time.Time { return t.Record.CompletedAt() }

// Service owns the achievement records for one player profile. Records live
// for the profile's lifetime and never reset.
type Service struct {
	catalog *catalog.AchievementCatalog
	gateway *save.Gateway
	ledger  *ledger.Ledger
	bus     event.Bus

	tracked []*Tracked
	byID    map[string]*Tracked
}

// NewService creates the achievement service. Call Load before use.
func NewService(cat *catalog.AchievementCatalog, gateway *save.Gateway, led *ledger.Ledger, bus event.Bus) *Service {
	return &Service{
		catalog: cat,
		gateway: gateway,
		ledger:  led,
		bus:     bus,
		byID:    make(map[string]*Tracked),
	}
}

// Load builds one record per catalog definition and overlays the saved
// snapshot. Saved entries whose ID is not in the catalog are ignored; a
// corrupt snapshot starts every record fresh.
func (s *Service) Load(ctx context.Context) {
	log := logger.FromContext(ctx)
	s.tracked = nil
	s.byID = make(map[string]*Tracked)

	saved := make(map[string]domain.AchievementSaveEntry)
	for _, entry := range s.gateway.LoadAchievements(ctx).Achievements {
		saved[entry.AchievementID] = entry
	}

	for _, def := range s.catalog.All() {
		var rec *progress.Record
		if entry, ok := saved[def.ID]; ok {
			rec = progress.Restore(def.Name, def.TargetValue, entry.CurrentProgress,
				entry.IsUnlocked, entry.IsRewardClaimed, time.Time{}, parseUnlockedDate(entry.UnlockedDate))
			delete(saved, def.ID)
		} else {
			rec = progress.New(def.Name, def.TargetValue)
		}
		ta := &Tracked{Definition: def, Record: rec}
		s.tracked = append(s.tracked, ta)
		s.byID[def.ID] = ta
	}

	for id := range saved {
		log.Warn("Saved achievement not in catalog, ignoring", "id", id)
	}
	log.Info("Achievements loaded", "total", len(s.tracked), "unlocked", len(s.Unlocked()))
}

// OnFoodCollected reconciles locked collect-food achievements matching the
// collected category and item against the ledger's lifetime counter.
func (s *Service) OnFoodCollected(ctx context.Context, category domain.FoodCategory, item int) {
	touched := false
	for _, ta := range s.tracked {
		def := ta.Definition
		if def.Type != domain.AchievementCollectSpecificFood || def.Category != category || def.SpecificItem != item {
			continue
		}
		if s.applyProgress(ctx, ta, s.ledger.LifetimeCount(ctx, category, item)) {
			touched = true
		}
	}
	if touched {
		s.persist(ctx)
	}
}

// OnQuestCompleted reconciles locked complete-quests achievements against
// the ledger's lifetime completed counter.
func (s *Service) OnQuestCompleted(ctx context.Context) {
	touched := false
	for _, ta := range s.tracked {
		if ta.Definition.Type != domain.AchievementCompleteQuests {
			continue
		}
		if s.applyProgress(ctx, ta, s.ledger.TotalQuestsCompleted(ctx)) {
			touched = true
		}
	}
	if touched {
		s.persist(ctx)
	}
}

// ClaimReward claims an unlocked achievement's reward and credits its gold.
// Returns the gold granted, 0 when still locked or already claimed. Unknown
// IDs return domain.ErrNotFound.
func (s *Service) ClaimReward(ctx context.Context, id string) (int, error) {
	ta, ok := s.byID[id]
	if !ok {
		return 0, fmt.Errorf("claim reward for achievement %s: %w", id, domain.ErrNotFound)
	}

	if !ta.Record.ClaimReward() {
		return 0, nil
	}

	gold := ta.Definition.GoldReward
	s.ledger.AddGold(ctx, gold)
	metrics.RewardsClaimed.WithLabelValues(metrics.KindAchievement).Inc()
	s.publish(ctx, event.NewRewardClaimedEvent(domain.EventTypeAchievementRewardClaimed, ta.Record.ID(), ta.Record.Name(), gold, 0))
	s.persist(ctx)

	logger.FromContext(ctx).Info("Achievement reward claimed", "achievement", id, "gold", gold)
	return gold, nil
}

// Get returns the tracked achievement for id.
func (s *Service) Get(id string) (*Tracked, bool) {
	ta, ok := s.byID[id]
	return ta, ok
}

// All returns every tracked achievement in catalog order.
func (s *Service) All() []*Tracked {
	return append([]*Tracked(nil), s.tracked...)
}

// Visible returns the achievements a player may see: everything except
// hidden ones that are still locked.
func (s *Service) Visible() []*Tracked {
	out := make([]*Tracked, 0, len(s.tracked))
	for _, ta := range s.tracked {
		if ta.Definition.Hidden && !ta.Record.Completed() {
			continue
		}
		out = append(out, ta)
	}
	return out
}

// Unlocked returns the unlocked achievements.
func (s *Service) Unlocked() []*Tracked {
	out := make([]*Tracked, 0, len(s.tracked))
	for _, ta := range s.tracked {
		if ta.Record.Completed() {
			out = append(out, ta)
		}
	}
	return out
}

// applyProgress overwrites a record's progress and handles the unlock
// transition. Reports whether anything observable changed.
func (s *Service) applyProgress(ctx context.Context, ta *Tracked, value int) bool {
	if ta.Record.Completed() {
		return false
	}
	before := ta.Record.Current()
	ta.Record.SetProgress(value)
	if ta.Record.Current() == before {
		return false
	}

	s.publish(ctx, event.NewProgressEvent(domain.EventTypeAchievementProgress, ta.Record.ID(), ta.Record.Name(), ta.Record.Current(), ta.Record.Target()))

	if ta.Record.Completed() {
		metrics.AchievementsUnlocked.Inc()
		s.publish(ctx, event.NewCompletedEvent(domain.EventTypeAchievementUnlocked, ta.Record.ID(), ta.Record.Name(), ta.Record.CompletedAt()))
		logger.FromContext(ctx).Info("Achievement unlocked", "achievement", ta.Definition.ID)
	}
	return true
}

// persist writes the snapshot, best effort.
func (s *Service) persist(ctx context.Context) {
	snapshot := domain.AchievementSaveData{}
	for _, ta := range s.tracked {
		entry := domain.AchievementSaveEntry{
			AchievementID:   ta.Definition.ID,
			CurrentProgress: ta.Record.Current(),
			IsUnlocked:      ta.Record.Completed(),
			IsRewardClaimed: ta.Record.RewardClaimed(),
		}
		if ta.Record.Completed() {
			entry.UnlockedDate = strconv.FormatInt(ta.Record.CompletedAt().UnixNano(), 10)
		}
		snapshot.Achievements = append(snapshot.Achievements, entry)
	}
	s.gateway.SaveAchievements(ctx, snapshot)
}

func (s *Service) publish(ctx context.Context, ev event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("Event handler failed", "type", ev.Type, "error", err)
	}
}

// parseUnlockedDate parses the persisted unlock timestamp (UnixNano as a
// decimal string). A missing or malformed stamp yields the zero time.
func parseUnlockedDate(stamp string) time.Time {
	if stamp == "" {
		return time.Time{}
	}
	nanos, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}
