// Package session wires the progression core together for one player
// profile and routes collection events to the systems that care. It is the
// composition root: everything below it takes its collaborators as
// arguments; everything above it talks only to the Session.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/snackdash/snackdash/internal/achievement"
	"github.com/snackdash/snackdash/internal/catalog"
	"github.com/snackdash/snackdash/internal/config"
	"github.com/snackdash/snackdash/internal/daily"
	"github.com/snackdash/snackdash/internal/domain"
	"github.com/snackdash/snackdash/internal/event"
	"github.com/snackdash/snackdash/internal/ledger"
	"github.com/snackdash/snackdash/internal/logger"
	"github.com/snackdash/snackdash/internal/quest"
	"github.com/snackdash/snackdash/internal/save"
	"github.com/snackdash/snackdash/internal/storage"
	"github.com/snackdash/snackdash/internal/worker"
)

// Score granted to any collector per food picked up. Quest rewards come on
// top of this for the player.
const foodScore = 1

// Session owns one player profile's progression state: ledger, quest
// rotation, dailies, achievements, and the session score board. Public
// methods serialize on an internal mutex; the rollover worker is the only
// other goroutine that enters.
type Session struct {
	mu sync.Mutex
	id string

	cfg          *config.Config
	store        storage.Store
	bus          *event.MemoryBus
	ledger       *ledger.Ledger
	gateway      *save.Gateway
	scores       *ScoreBoard
	quests       *quest.Engine
	dailies      *daily.Service
	achievements *achievement.Service
	rollover     *worker.RolloverWorker
}

// New builds and loads a session over the configured sqlite store. The
// caller owns the session and must Close it.
func New(ctx context.Context, cfg *config.Config, questCat *catalog.QuestCatalog, achievementCat *catalog.AchievementCatalog) (*Session, error) {
	id := logger.GenerateSessionID()
	ctx = logger.WithSessionID(ctx, id)

	backend, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open save store: %w", err)
	}
	store := storage.NewCachedStore(backend, cfg.CacheSize, cfg.CacheTTL)

	bus := event.NewMemoryBus()
	led := ledger.New(store, bus)
	gateway := save.NewGateway(store)
	scores := NewScoreBoard()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	s := &Session{
		id:           id,
		cfg:          cfg,
		store:        store,
		bus:          bus,
		ledger:       led,
		gateway:      gateway,
		scores:       scores,
		quests:       quest.NewEngine(questCat, led, bus, scores, rng, cfg.MaxActiveQuests, cfg.AutoAssign),
		dailies:      daily.NewService(gateway, led, bus, rng, cfg.MaxDailyQuests),
		achievements: achievement.NewService(achievementCat, gateway, led, bus),
	}

	// Quest completions ripple into the daily "complete N quests" quest and
	// the lifetime quest achievements. The quest engine has already bumped
	// the ledger counters when this fires.
	bus.Subscribe(event.Type(domain.EventTypeQuestCompleted), func(ctx context.Context, _ event.Event) error {
		s.dailies.OnQuestCompleted(ctx)
		s.achievements.OnQuestCompleted(ctx)
		return nil
	})

	s.dailies.Load(ctx)
	s.achievements.Load(ctx)

	s.rollover = worker.NewRolloverWorker(cfg.RolloverPoll, func(ctx context.Context, today string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.dailies.HandleDayRollover(ctx, today)
	})
	s.rollover.Start(logger.WithSessionID(context.Background(), id))

	logger.FromContext(ctx).Info("Session ready", "db", cfg.DBPath, "maxActiveQuests", cfg.MaxActiveQuests)
	return s, nil
}

// ID returns the session identifier attached to this session's logs.
func (s *Session) ID() string { return s.id }

// StartGame begins a play round: fresh score board and a quest rotation
// drawn for the round's food category (0 for all categories).
func (s *Session) StartGame(ctx context.Context, category domain.FoodCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores.Reset()
	s.quests.StartSession(s.withID(ctx), category)
}

// OnFoodCollected routes one food pickup. Every collector scores; only the
// tracked player's pickups reach the ledger and the progression systems.
// The ledger is updated before the fan-out so ledger-backed progress reads
// the new count.
func (s *Session) OnFoodCollected(ctx context.Context, category domain.FoodCategory, item int, collector domain.CollectorKind, collectorID string) {
	if !domain.ValidItem(category, item) {
		logger.FromContext(ctx).Warn("Dropping collection of unknown item", "category", category, "item", item)
		return
	}
	ctx = s.withID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if collectorID == "" {
		if collector != domain.CollectorPlayer {
			logger.FromContext(ctx).Warn("Dropping collection with no collector ID", "category", category, "item", item)
			return
		}
		collectorID = PlayerID
	}
	s.scores.Add(collectorID, foodScore)
	s.publish(ctx, event.NewFoodCollectedEvent(category, item, collector, collectorID))

	if collector != domain.CollectorPlayer {
		return
	}

	s.ledger.RecordCollection(ctx, category, item)
	s.quests.OnFoodCollected(ctx, category, item)
	s.dailies.OnFoodCollected(ctx, category, item)
	s.achievements.OnFoodCollected(ctx, category, item)
}

// ClaimQuestReward claims a completed session quest's score reward.
func (s *Session) ClaimQuestReward(ctx context.Context, recordID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quests.ClaimReward(s.withID(ctx), recordID)
}

// ClaimDailyReward claims a completed daily quest's gold reward.
func (s *Session) ClaimDailyReward(ctx context.Context, recordID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dailies.ClaimReward(s.withID(ctx), recordID)
}

// ClaimAchievementReward claims an unlocked achievement's gold reward.
func (s *Session) ClaimAchievementReward(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.achievements.ClaimReward(s.withID(ctx), id)
}

// ActiveQuests returns the current session quest rotation.
func (s *Session) ActiveQuests() []*quest.ActiveQuest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quests.Active()
}

// CompletedQuests returns the session quests completed so far.
func (s *Session) CompletedQuests() []*quest.ActiveQuest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quests.Completed()
}

// DailyQuests returns today's dailies, active then completed.
func (s *Session) DailyQuests() (active, completed []*daily.ActiveDaily) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dailies.Active(), s.dailies.Completed()
}

// Achievements returns the player-visible achievements.
func (s *Session) Achievements() []*achievement.Tracked {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.achievements.Visible()
}

// Gold returns the player's gold balance.
func (s *Session) Gold(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Gold(s.withID(ctx))
}

// Ranking returns the session score ranking across all collectors.
func (s *Session) Ranking() []ScoreEntry {
	return s.scores.Ranking()
}

// Ledger exposes the collection ledger for collaborators outside the
// routed event flow (the skin shop, debug surfaces).
func (s *Session) Ledger() *ledger.Ledger { return s.ledger }

// Bus exposes the session event bus for UI subscribers. Subscribe before
// gameplay starts; the bus does not lock out late subscribers but handlers
// only see events published after they attach.
func (s *Session) Bus() event.Bus { return s.bus }

// Close stops the rollover worker and closes the save store.
func (s *Session) Close() error {
	s.rollover.Stop()
	return s.store.Close()
}

func (s *Session) withID(ctx context.Context) context.Context {
	if _, ok := logger.SessionIDFromContext(ctx); ok {
		return ctx
	}
	return logger.WithSessionID(ctx, s.id)
}

func (s *Session) publish(ctx context.Context, ev event.Event) {
	if err := s.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("Event handler failed", "type", ev.Type, "error", err)
	}
}
