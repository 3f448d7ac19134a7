package metrics

// Metric names
const (
	MetricNameFoodsCollected       = "foods_collected_total"
	MetricNameQuestsCompleted      = "quests_completed_total"
	MetricNameQuestsAssigned       = "quests_assigned_total"
	MetricNameRewardsClaimed       = "rewards_claimed_total"
	MetricNameGoldGranted          = "gold_granted_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameDayRollovers         = "day_rollovers_total"
	MetricNameSaveFailures         = "save_failures_total"
	MetricNameEventsPublished      = "events_published_total"
)

// Metric help text
const (
	HelpTextFoodsCollected       = "Total number of foods collected by the tracked player"
	HelpTextQuestsCompleted      = "Total number of quests completed"
	HelpTextQuestsAssigned       = "Total number of quests assigned"
	HelpTextRewardsClaimed       = "Total number of rewards claimed"
	HelpTextGoldGranted          = "Total gold granted by rewards"
	HelpTextAchievementsUnlocked = "Total number of achievements unlocked"
	HelpTextDayRollovers         = "Total number of day rollovers handled"
	HelpTextSaveFailures         = "Total number of swallowed persistence write failures"
	HelpTextEventsPublished      = "Total number of events published on the session bus"
)

// Metric label names
const (
	LabelCategory = "category"
	LabelKind     = "kind"
	LabelType     = "type"
)
