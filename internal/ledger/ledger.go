// Package ledger implements the durable collection ledger: per-category and
// per-item food counters in lifetime and daily scopes, plus the gold wallet,
// quest-completion counters, and skin unlock flags. Every mutation writes
// through to storage; collection events are player-triggered and
// low-frequency, so the write amplification is acceptable.
package ledger

import (
	"context"

	"github.com/snackdash/snackdash/internal/domain"
	"github.com/snackdash/snackdash/internal/event"
	"github.com/snackdash/snackdash/internal/logger"
	"github.com/snackdash/snackdash/internal/metrics"
	"github.com/snackdash/snackdash/internal/storage"
)

// Ledger is the owned counter store for one player profile. It is a
// crash-only store: reads of unseen keys yield 0 and write failures are
// logged and swallowed rather than surfaced to gameplay.
type Ledger struct {
	store storage.Store
	bus   event.Bus
}

// New creates a Ledger over the given store. bus may be nil when no one
// listens for gold changes (tests).
func New(store storage.Store, bus event.Bus) *Ledger {
	return &Ledger{store: store, bus: bus}
}

// RecordCollection increments the lifetime and daily counters for the
// category, the specific item (when non-zero), and the lifetime food total.
func (l *Ledger) RecordCollection(ctx context.Context, category domain.FoodCategory, item int) {
	if !category.Valid() {
		return
	}

	l.increment(ctx, foodKey(lifetimeFoodPrefix, category, 0))
	l.increment(ctx, foodKey(dailyFoodPrefix, category, 0))
	if item != 0 {
		l.increment(ctx, foodKey(lifetimeFoodPrefix, category, item))
		l.increment(ctx, foodKey(dailyFoodPrefix, category, item))
	}
	l.increment(ctx, KeyTotalFoodCollected)

	metrics.FoodsCollected.WithLabelValues(category.String()).Inc()
}

// LifetimeCount returns the lifetime counter for (category, item). item 0
// addresses the category-wide counter.
func (l *Ledger) LifetimeCount(ctx context.Context, category domain.FoodCategory, item int) int {
	return l.read(ctx, foodKey(lifetimeFoodPrefix, category, item))
}

// DailyCount returns today's counter for (category, item).
func (l *Ledger) DailyCount(ctx context.Context, category domain.FoodCategory, item int) int {
	return l.read(ctx, foodKey(dailyFoodPrefix, category, item))
}

// TotalFoodCollected returns the lifetime food total across all categories.
func (l *Ledger) TotalFoodCollected(ctx context.Context) int {
	return l.read(ctx, KeyTotalFoodCollected)
}

// ResetDaily zeroes every daily counter. Called exactly once per detected
// day rollover.
func (l *Ledger) ResetDaily(ctx context.Context) {
	log := logger.FromContext(ctx)
	if err := l.store.DeletePrefix(ctx, dailyFoodPrefix); err != nil {
		log.Error("Failed to reset daily food counters", "error", err)
	}
	if err := l.store.Delete(ctx, KeyNormalQuestsToday); err != nil {
		log.Error("Failed to reset daily quest counter", "error", err)
	}
}

// Gold returns the current gold balance.
func (l *Ledger) Gold(ctx context.Context) int {
	return l.read(ctx, KeyGold)
}

// AddGold adds amount to the gold balance and notifies listeners.
func (l *Ledger) AddGold(ctx context.Context, amount int) {
	if amount == 0 {
		return
	}
	balance := l.read(ctx, KeyGold) + amount
	l.write(ctx, KeyGold, balance)
	metrics.GoldGranted.Add(float64(amount))

	if l.bus != nil {
		if err := l.bus.Publish(ctx, event.NewGoldChangedEvent(balance, amount)); err != nil {
			logger.FromContext(ctx).Warn("Gold change handler failed", "error", err)
		}
	}
}

// AddNormalQuestCompleted bumps both the lifetime and the per-day counters
// of completed normal quests. The per-day counter feeds the "complete N
// quests" daily quest; the lifetime counter feeds CompleteQuests
// achievements.
func (l *Ledger) AddNormalQuestCompleted(ctx context.Context) {
	l.increment(ctx, KeyNormalQuestsToday)
	l.increment(ctx, KeyTotalQuestsCompleted)
}

// TotalQuestsCompleted returns the lifetime completed-quest count.
func (l *Ledger) TotalQuestsCompleted(ctx context.Context) int {
	return l.read(ctx, KeyTotalQuestsCompleted)
}

// NormalQuestsCompletedToday returns today's completed-quest count.
func (l *Ledger) NormalQuestsCompletedToday(ctx context.Context) int {
	return l.read(ctx, KeyNormalQuestsToday)
}

// CurrentSkin returns the selected skin, defaulting to the starter skin.
func (l *Ledger) CurrentSkin(ctx context.Context) domain.Skin {
	n := l.read(ctx, KeyCurrentSkin)
	if n == 0 {
		return domain.DefaultSkin
	}
	return domain.Skin(n)
}

// SetCurrentSkin selects a skin.
func (l *Ledger) SetCurrentSkin(ctx context.Context, skin domain.Skin) {
	l.write(ctx, KeyCurrentSkin, int(skin))
}

// IsSkinUnlocked reports whether the skin has been unlocked.
func (l *Ledger) IsSkinUnlocked(ctx context.Context, skin domain.Skin) bool {
	return l.read(ctx, skinKey(skin)) == 1
}

// UnlockSkin marks the skin unlocked.
func (l *Ledger) UnlockSkin(ctx context.Context, skin domain.Skin) {
	l.write(ctx, skinKey(skin), 1)
}

// LockSkin re-locks the skin.
func (l *Ledger) LockSkin(ctx context.Context, skin domain.Skin) {
	l.write(ctx, skinKey(skin), 0)
}

// LastDailyReset returns the stored reset date stamp (yyyy-MM-dd), or "".
func (l *Ledger) LastDailyReset(ctx context.Context) string {
	s, err := l.store.GetString(ctx, KeyLastDailyReset)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to read last daily reset", "error", err)
		return ""
	}
	return s
}

// SetLastDailyReset stores the reset date stamp.
func (l *Ledger) SetLastDailyReset(ctx context.Context, date string) {
	if err := l.store.SetString(ctx, KeyLastDailyReset, date); err != nil {
		logger.FromContext(ctx).Error("Failed to store last daily reset", "key", KeyLastDailyReset, "error", err)
	}
}

// ClearAll wipes every persisted key, both scopes. Debug/reset surface.
func (l *Ledger) ClearAll(ctx context.Context) {
	if err := l.store.DeleteAll(ctx); err != nil {
		logger.FromContext(ctx).Error("Failed to clear ledger", "error", err)
	}
}

func (l *Ledger) increment(ctx context.Context, key string) {
	l.write(ctx, key, l.read(ctx, key)+1)
}

func (l *Ledger) read(ctx context.Context, key string) int {
	n, err := l.store.GetInt(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to read counter, defaulting to 0", "key", key, "error", err)
		return 0
	}
	return n
}

func (l *Ledger) write(ctx context.Context, key string, value int) {
	if err := l.store.SetInt(ctx, key, value); err != nil {
		logger.FromContext(ctx).Error("Failed to persist counter", "key", key, "error", err)
		metrics.SaveFailures.Inc()
	}
}
