package config

import "time"

// Defaults for the progression core.
const (
	DefaultMaxActiveQuests = 3
	DefaultMaxDailyQuests  = 2
	DefaultRolloverPoll    = 30 * time.Second
	DefaultCacheSize       = 256
	DefaultCacheTTL        = 5 * time.Minute
)
