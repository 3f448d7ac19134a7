// Package save implements the persistence gateway for the daily-quest and
// achievement save blobs. Writes are best-effort: a failed write is logged
// and counted, never surfaced to gameplay. Loads treat a missing or corrupt
// blob as an empty save.
package save

import (
	"context"
	"encoding/json"
	"time"

	"github.com/snackdash/snackdash/internal/domain"
	"github.com/snackdash/snackdash/internal/logger"
	"github.com/snackdash/snackdash/internal/metrics"
	"github.com/snackdash/snackdash/internal/storage"
)

// Storage keys and the date stamp layout. Both are load-bearing: existing
// save files use them.
const (
	KeyDailyQuestData  = "DailyQuestData"
	KeyAchievementData = "AchievementData"

	DateLayout = "2006-01-02"
)

// Gateway persists and restores the save blobs over a key-value store.
type Gateway struct {
	store storage.Store
}

// NewGateway creates a persistence gateway over store.
func NewGateway(store storage.Store) *Gateway {
	return &Gateway{store: store}
}

// SaveDailyQuests persists the daily-quest snapshot.
func (g *Gateway) SaveDailyQuests(ctx context.Context, snapshot domain.DailyQuestSaveData) {
	g.save(ctx, KeyDailyQuestData, snapshot)
}

// LoadDailyQuests restores the daily-quest snapshot. A missing or corrupt
// blob yields the zero snapshot.
func (g *Gateway) LoadDailyQuests(ctx context.Context) domain.DailyQuestSaveData {
	return load[domain.DailyQuestSaveData](g, ctx, KeyDailyQuestData)
}

// SaveAchievements persists the achievement snapshot.
func (g *Gateway) SaveAchievements(ctx context.Context, snapshot domain.AchievementSaveData) {
	g.save(ctx, KeyAchievementData, snapshot)
}

// LoadAchievements restores the achievement snapshot. A missing or corrupt
// blob yields the zero snapshot.
func (g *Gateway) LoadAchievements(ctx context.Context) domain.AchievementSaveData {
	return load[domain.AchievementSaveData](g, ctx, KeyAchievementData)
}

func (g *Gateway) save(ctx context.Context, key string, snapshot any) {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Error("Failed to encode save blob", "key", key, "error", err)
		metrics.SaveFailures.Inc()
		return
	}
	if err := g.store.SetString(ctx, key, string(data)); err != nil {
		log.Error("Failed to persist save blob", "key", key, "error", err)
		metrics.SaveFailures.Inc()
	}
}

// load decodes the blob under key, returning the zero snapshot when the
// blob is missing, unreadable, or corrupt. Decoding into a throwaway value
// keeps a partially-decoded corrupt blob from leaking out.
func load[T any](g *Gateway, ctx context.Context, key string) T {
	log := logger.FromContext(ctx)
	var zero T

	data, err := g.store.GetString(ctx, key)
	if err != nil {
		log.Warn("Failed to read save blob, starting empty", "key", key, "error", err)
		return zero
	}
	if data == "" {
		return zero
	}

	var snapshot T
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		log.Warn("Corrupt save blob discarded", "key", key, "error", err)
		return zero
	}
	return snapshot
}

// IsFromToday reports whether the date stamp matches today's local date.
// The stamp format is yyyy-MM-dd; a malformed or empty stamp is never from
// today.
func IsFromToday(stamp string, now time.Time) bool {
	return stamp != "" && stamp == now.Format(DateLayout)
}
