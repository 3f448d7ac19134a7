package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Progression metrics
var (
	FoodsCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFoodsCollected,
			Help: HelpTextFoodsCollected,
		},
		[]string{LabelCategory},
	)

	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
		[]string{LabelKind},
	)

	QuestsAssigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsAssigned,
			Help: HelpTextQuestsAssigned,
		},
		[]string{LabelKind},
	)

	RewardsClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsClaimed,
			Help: HelpTextRewardsClaimed,
		},
		[]string{LabelKind},
	)

	GoldGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldGranted,
			Help: HelpTextGoldGranted,
		},
	)

	AchievementsUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
	)

	DayRollovers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDayRollovers,
			Help: HelpTextDayRollovers,
		},
	)

	SaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSaveFailures,
			Help: HelpTextSaveFailures,
		},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Quest kind labels
const (
	KindSession     = "session"
	KindDaily       = "daily"
	KindAchievement = "achievement"
)
