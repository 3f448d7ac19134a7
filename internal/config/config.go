package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the progression core configuration
type Config struct {
	LogLevel         string
	DBPath           string // sqlite save file; ":memory:" for ephemeral sessions
	QuestCatalogPath string
	AchievementsPath string
	MaxActiveQuests  int
	MaxDailyQuests   int
	AutoAssign       bool
	RolloverPoll     time.Duration
	CacheSize        int
	CacheTTL         time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:         getEnv("SNACKDASH_LOG_LEVEL", "INFO"),
		DBPath:           getEnv("SNACKDASH_DB_PATH", "snackdash.db"),
		QuestCatalogPath: getEnv("SNACKDASH_QUEST_CATALOG", "configs/quest_pool.json"),
		AchievementsPath: getEnv("SNACKDASH_ACHIEVEMENTS", "configs/achievements.json"),
	}

	var err error
	if cfg.MaxActiveQuests, err = getEnvInt("SNACKDASH_MAX_ACTIVE_QUESTS", DefaultMaxActiveQuests); err != nil {
		return nil, err
	}
	if cfg.MaxDailyQuests, err = getEnvInt("SNACKDASH_MAX_DAILY_QUESTS", DefaultMaxDailyQuests); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = getEnvInt("SNACKDASH_CACHE_SIZE", DefaultCacheSize); err != nil {
		return nil, err
	}

	autoAssign := getEnv("SNACKDASH_AUTO_ASSIGN", "true")
	cfg.AutoAssign, err = strconv.ParseBool(autoAssign)
	if err != nil {
		return nil, fmt.Errorf("invalid SNACKDASH_AUTO_ASSIGN value: %w", err)
	}

	poll := getEnv("SNACKDASH_ROLLOVER_POLL", DefaultRolloverPoll.String())
	cfg.RolloverPoll, err = time.ParseDuration(poll)
	if err != nil {
		return nil, fmt.Errorf("invalid SNACKDASH_ROLLOVER_POLL value: %w", err)
	}

	ttl := getEnv("SNACKDASH_CACHE_TTL", DefaultCacheTTL.String())
	cfg.CacheTTL, err = time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid SNACKDASH_CACHE_TTL value: %w", err)
	}

	if cfg.MaxActiveQuests < 1 {
		return nil, fmt.Errorf("SNACKDASH_MAX_ACTIVE_QUESTS must be at least 1, got %d", cfg.MaxActiveQuests)
	}
	if cfg.MaxDailyQuests < 1 {
		return nil, fmt.Errorf("SNACKDASH_MAX_DAILY_QUESTS must be at least 1, got %d", cfg.MaxDailyQuests)
	}

	return cfg, nil
}

// Default returns a Config with built-in defaults, without touching the
// environment. Used by tests and embedding code that wires values directly.
func Default() *Config {
	return &Config{
		LogLevel:        "INFO",
		DBPath:          ":memory:",
		MaxActiveQuests: DefaultMaxActiveQuests,
		MaxDailyQuests:  DefaultMaxDailyQuests,
		AutoAssign:      true,
		RolloverPoll:    DefaultRolloverPoll,
		CacheSize:       DefaultCacheSize,
		CacheTTL:        DefaultCacheTTL,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}
