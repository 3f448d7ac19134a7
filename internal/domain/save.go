package domain

// Save blob shapes. Field names match the persisted JSON produced by earlier
// releases, so existing player saves keep loading.

// DailyQuestSaveEntry is one persisted daily-quest record. Definition fields
// are stored as scalars because daily quests are generated per day and have
// no stable catalog identity to look up on load.
type DailyQuestSaveEntry struct {
	QuestName        string `json:"questName"`
	CurrentProgress  int    `json:"currentProgress"`
	IsCompleted      bool   `json:"isCompleted"`
	IsRewardClaimed  bool   `json:"isRewardClaimed"`
	QuestDate        string `json:"questDate"`
	QuestType        string `json:"questType"`
	TargetValue      int    `json:"targetValue"`
	GoldReward       int    `json:"goldReward"`
	RequiredFoodType int    `json:"requiredFoodType"`
	RequiredFruit    int    `json:"requiredFruitType"`
	RequiredFastFood int    `json:"requiredFastFoodType"`
	RequiredCake     int    `json:"requiredCakeType"`
}

// DailyQuestSaveData is the DailyQuestData blob.
type DailyQuestSaveData struct {
	LastLoginDate string                `json:"lastLoginDate"`
	TodaysQuests  []DailyQuestSaveEntry `json:"todaysQuests"`
}

// AchievementSaveEntry is one persisted achievement record.
type AchievementSaveEntry struct {
	AchievementID   string `json:"achievementId"`
	CurrentProgress int    `json:"currentProgress"`
	IsUnlocked      bool   `json:"isUnlocked"`
	IsRewardClaimed bool   `json:"isRewardClaimed"`
	UnlockedDate    string `json:"unlockedDate"`
}

// AchievementSaveData is the AchievementData blob.
type AchievementSaveData struct {
	Achievements []AchievementSaveEntry `json:"achievements"`
}

// SpecificItem returns the item code stored in the category-specific field.
func (e DailyQuestSaveEntry) SpecificItem() int {
	switch FoodCategory(e.RequiredFoodType) {
	case FoodFruit:
		return e.RequiredFruit
	case FoodFastFood:
		return e.RequiredFastFood
	case FoodCake:
		return e.RequiredCake
	default:
		return 0
	}
}
