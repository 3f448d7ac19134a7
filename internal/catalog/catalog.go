// Package catalog holds the immutable quest and achievement definitions:
// authored pools loaded from JSON config files, and builders for the
// procedurally generated daily quests.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/snackdash/snackdash/internal/domain"
)

var validate = validator.New()

// QuestCatalog is the authored session-quest pool.
type QuestCatalog struct {
	quests []domain.QuestDefinition
}

// LoadQuestCatalog reads and validates the quest pool config file. Authored
// data must parse: load errors are real errors, unlike save-data corruption.
func LoadQuestCatalog(path string) (*QuestCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest catalog: %w", err)
	}
	return ParseQuestCatalog(data)
}

// ParseQuestCatalog builds a catalog from raw JSON.
func ParseQuestCatalog(data []byte) (*QuestCatalog, error) {
	var file domain.QuestCatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse quest catalog: %w", err)
	}
	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid quest catalog: %w", err)
	}
	for i, q := range file.QuestPool {
		if len(q.ItemSet) > 0 && len(q.ItemSet) != q.ItemCount {
			return nil, fmt.Errorf("quest %q: item set size %d does not match item count %d", q.Name, len(q.ItemSet), q.ItemCount)
		}
		for _, code := range q.ItemSet {
			if !domain.ValidItem(q.Category, code) {
				return nil, fmt.Errorf("quest %q: item code %d outside %s code space", q.Name, code, q.Category)
			}
		}
		file.QuestPool[i] = q
	}
	return &QuestCatalog{quests: file.QuestPool}, nil
}

// NewQuestCatalog builds a catalog from in-memory definitions. Tests and
// embedding code wire definitions directly through here.
func NewQuestCatalog(quests []domain.QuestDefinition) *QuestCatalog {
	return &QuestCatalog{quests: append([]domain.QuestDefinition(nil), quests...)}
}

// All returns every definition.
func (c *QuestCatalog) All() []domain.QuestDefinition {
	return append([]domain.QuestDefinition(nil), c.quests...)
}

// Len returns the pool size.
func (c *QuestCatalog) Len() int { return len(c.quests) }

// FilterByCategory returns the definitions matching the session category.
func (c *QuestCatalog) FilterByCategory(category domain.FoodCategory) []domain.QuestDefinition {
	var out []domain.QuestDefinition
	for _, q := range c.quests {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// AchievementCatalog is the authored achievement list.
type AchievementCatalog struct {
	achievements []domain.AchievementDefinition
	byID         map[string]domain.AchievementDefinition
}

// LoadAchievementCatalog reads and validates the achievements config file.
func LoadAchievementCatalog(path string) (*AchievementCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read achievement catalog: %w", err)
	}
	return ParseAchievementCatalog(data)
}

// ParseAchievementCatalog builds a catalog from raw JSON.
func ParseAchievementCatalog(data []byte) (*AchievementCatalog, error) {
	var file domain.AchievementCatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse achievement catalog: %w", err)
	}
	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid achievement catalog: %w", err)
	}
	return NewAchievementCatalog(file.Achievements)
}

// NewAchievementCatalog builds a catalog from in-memory definitions,
// rejecting duplicate IDs.
func NewAchievementCatalog(achievements []domain.AchievementDefinition) (*AchievementCatalog, error) {
	byID := make(map[string]domain.AchievementDefinition, len(achievements))
	for _, a := range achievements {
		if _, dup := byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate achievement id %q", a.ID)
		}
		byID[a.ID] = a
	}
	return &AchievementCatalog{
		achievements: append([]domain.AchievementDefinition(nil), achievements...),
		byID:         byID,
	}, nil
}

// All returns every definition.
func (c *AchievementCatalog) All() []domain.AchievementDefinition {
	return append([]domain.AchievementDefinition(nil), c.achievements...)
}

// ByID looks a definition up by its identity.
func (c *AchievementCatalog) ByID(id string) (domain.AchievementDefinition, bool) {
	a, ok := c.byID[id]
	return a, ok
}
