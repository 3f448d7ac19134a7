package domain

// QuestDefinition is an immutable session-quest definition: collect each
// item in ItemSet exactly once. ItemSet may be empty on an authored template,
// in which case the rotation engine generates a fresh set of ItemCount codes
// at assignment time.
type QuestDefinition struct {
	Name        string       `json:"quest_name" validate:"required"`
	Description string       `json:"description"`
	Category    FoodCategory `json:"food_type" validate:"min=1,max=3"`
	ItemCount   int          `json:"item_count" validate:"min=2,max=6"`
	ItemSet     []int        `json:"item_set,omitempty"`
	ScoreReward int          `json:"score_reward" validate:"min=0"`
	BonusScore  int          `json:"bonus_score" validate:"min=0"`
}

// TargetAmount is the number of distinct items the quest requires.
func (q QuestDefinition) TargetAmount() int {
	if len(q.ItemSet) > 0 {
		return len(q.ItemSet)
	}
	return q.ItemCount
}

// RequiresItem reports whether code is a member of the quest's item set.
func (q QuestDefinition) RequiresItem(code int) bool {
	for _, c := range q.ItemSet {
		if c == code {
			return true
		}
	}
	return false
}

// DailyQuestType distinguishes the two daily quest kinds.
type DailyQuestType string

const (
	DailyCompleteQuests      DailyQuestType = "CompleteNormalQuests"
	DailyCollectSpecificFood DailyQuestType = "CollectSpecificFood"
)

// DailyQuestDefinition is an immutable daily-quest definition. Daily quests
// are procedurally generated each day, so every field needed to reconstruct
// one from a save blob lives here as a plain scalar.
type DailyQuestDefinition struct {
	Name         string         `json:"quest_name" validate:"required"`
	Description  string         `json:"description"`
	Type         DailyQuestType `json:"quest_type" validate:"required"`
	TargetValue  int            `json:"target_value" validate:"min=1"`
	Category     FoodCategory   `json:"required_food_type"`
	SpecificItem int            `json:"specific_item"`
	GoldReward   int            `json:"gold_reward" validate:"min=0"`
}

// QuestCatalogFile is the on-disk shape of the authored quest pool.
type QuestCatalogFile struct {
	Version   string            `json:"version"`
	QuestPool []QuestDefinition `json:"quest_pool" validate:"required,min=1,dive"`
}
