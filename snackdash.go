// Package snackdash is the embeddable progression core for the Snack Dash
// arcade game: food collection ledger, session quest rotation, daily
// quests, achievements, and their persistence. The game client constructs
// one Session per player profile and feeds it collection events; everything
// else (rendering, input, sound, networking) stays outside.
package snackdash

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/snackdash/snackdash/internal/catalog"
	"github.com/snackdash/snackdash/internal/config"
	"github.com/snackdash/snackdash/internal/domain"
	"github.com/snackdash/snackdash/internal/logger"
	"github.com/snackdash/snackdash/internal/session"
)

// Re-exported core types. The internal packages carry the implementation;
// these aliases are the public surface.
type (
	Session       = session.Session
	ScoreEntry    = session.ScoreEntry
	Config        = config.Config
	FoodCategory  = domain.FoodCategory
	CollectorKind = domain.CollectorKind
)

// Food categories.
const (
	Fruit    = domain.FoodFruit
	FastFood = domain.FoodFastFood
	Cake     = domain.FoodCake
)

// Collector kinds.
const (
	Player = domain.CollectorPlayer
	Bot    = domain.CollectorBot
)

// LoadConfig reads configuration from the environment (and .env).
func LoadConfig() (*Config, error) {
	return config.Load()
}

// DefaultConfig returns the built-in defaults with an in-memory store.
func DefaultConfig() *Config {
	return config.Default()
}

// SetupLogging installs a default slog logger at cfg.LogLevel. Optional;
// embedding games that already configure slog keep their own setup.
func SetupLogging(cfg *Config) *slog.Logger {
	lc := logger.DevelopmentConfig()
	lc.Level = cfg.LogLevel
	return logger.Setup(lc)
}

// Open builds a ready Session from cfg, loading the quest and achievement
// catalogs from the configured paths.
func Open(ctx context.Context, cfg *Config) (*Session, error) {
	questCat, err := catalog.LoadQuestCatalog(cfg.QuestCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load quest catalog: %w", err)
	}
	achievementCat, err := catalog.LoadAchievementCatalog(cfg.AchievementsPath)
	if err != nil {
		return nil, fmt.Errorf("load achievement catalog: %w", err)
	}
	return session.New(ctx, cfg, questCat, achievementCat)
}
