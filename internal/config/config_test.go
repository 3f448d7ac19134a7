package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults when no env vars set", func(t *testing.T) {
		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "INFO", cfg.LogLevel)
		assert.Equal(t, "snackdash.db", cfg.DBPath)
		assert.Equal(t, DefaultMaxActiveQuests, cfg.MaxActiveQuests)
		assert.Equal(t, DefaultMaxDailyQuests, cfg.MaxDailyQuests)
		assert.True(t, cfg.AutoAssign)
		assert.Equal(t, DefaultRolloverPoll, cfg.RolloverPoll)
		assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
		assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	})

	t.Run("reads env overrides", func(t *testing.T) {
		t.Setenv("SNACKDASH_DB_PATH", "/tmp/test.db")
		t.Setenv("SNACKDASH_MAX_ACTIVE_QUESTS", "5")
		t.Setenv("SNACKDASH_AUTO_ASSIGN", "false")
		t.Setenv("SNACKDASH_ROLLOVER_POLL", "10s")
		t.Setenv("SNACKDASH_CACHE_TTL", "1m")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "/tmp/test.db", cfg.DBPath)
		assert.Equal(t, 5, cfg.MaxActiveQuests)
		assert.False(t, cfg.AutoAssign)
		assert.Equal(t, 10*time.Second, cfg.RolloverPoll)
		assert.Equal(t, time.Minute, cfg.CacheTTL)
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		t.Setenv("SNACKDASH_MAX_ACTIVE_QUESTS", "lots")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects zero quest slots", func(t *testing.T) {
		t.Setenv("SNACKDASH_MAX_ACTIVE_QUESTS", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects bad durations", func(t *testing.T) {
		t.Setenv("SNACKDASH_ROLLOVER_POLL", "whenever")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, DefaultMaxActiveQuests, cfg.MaxActiveQuests)
	assert.True(t, cfg.AutoAssign)
}
