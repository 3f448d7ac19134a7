package domain

// Event type names published on the session bus.
const (
	EventTypeFoodCollected            = "food.collected"
	EventTypeQuestAdded               = "quest.added"
	EventTypeQuestProgress            = "quest.progress"
	EventTypeQuestCompleted           = "quest.completed"
	EventTypeQuestRewardClaimed       = "quest.reward_claimed"
	EventTypeDailyQuestAdded          = "daily.added"
	EventTypeDailyQuestProgress       = "daily.progress"
	EventTypeDailyQuestCompleted      = "daily.completed"
	EventTypeDailyQuestRewardClaimed  = "daily.reward_claimed"
	EventTypeAchievementProgress      = "achievement.progress"
	EventTypeAchievementUnlocked      = "achievement.unlocked"
	EventTypeAchievementRewardClaimed = "achievement.reward_claimed"
	EventTypeGoldChanged              = "gold.changed"
	EventTypeDayRollover              = "day.rollover"
)

// CollectorKind identifies who picked a food up. Only the tracked player's
// collections feed the ledger and quest progress; bots only score.
type CollectorKind int

const (
	CollectorPlayer CollectorKind = 0
	CollectorBot    CollectorKind = 1
)

// GameState mirrors the surrounding gameplay session state. The core does
// not act on it; it is carried for collaborators that query the session.
type GameState int

const (
	GameStateNone GameState = iota
	GameStateReady
	GameStatePlaying
	GameStatePaused
	GameStateEnded
)
