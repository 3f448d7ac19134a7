package domain

// AchievementType distinguishes the achievement kinds.
type AchievementType string

const (
	AchievementCollectSpecificFood AchievementType = "CollectSpecificFood"
	AchievementCompleteQuests      AchievementType = "CompleteQuests"
)

// AchievementDefinition is an immutable lifetime achievement definition.
type AchievementDefinition struct {
	ID           string          `json:"achievement_id" validate:"required"`
	Name         string          `json:"achievement_name" validate:"required"`
	Description  string          `json:"description"`
	Type         AchievementType `json:"achievement_type" validate:"required"`
	TargetValue  int             `json:"target_value" validate:"min=1"`
	Category     FoodCategory    `json:"required_food_type"`
	SpecificItem int             `json:"specific_item"`
	GoldReward   int             `json:"gold_reward" validate:"min=0"`
	Hidden       bool            `json:"is_hidden"`
}

// AchievementCatalogFile is the on-disk shape of the authored achievements.
type AchievementCatalogFile struct {
	Version      string                  `json:"version"`
	Achievements []AchievementDefinition `json:"achievements" validate:"required,min=1,dive"`
}
