package catalog

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/snackdash/snackdash/internal/domain"
)

// Gold rewards for the generated daily quests.
const (
	CompleteQuestsDailyTarget = 2
	CompleteQuestsDailyGold   = 100
	CollectFoodDailyTarget    = 10
	CollectFoodDailyGold      = 50
)

// GenerateItemSet draws k distinct item codes uniformly without replacement
// from the category's full code space. k is clamped to the code space size.
func GenerateItemSet(rng *rand.Rand, category domain.FoodCategory, k int) []int {
	codes := domain.ItemCodes(category)
	if k > len(codes) {
		k = len(codes)
	}
	if k <= 0 {
		return nil
	}
	rng.Shuffle(len(codes), func(i, j int) {
		codes[i], codes[j] = codes[j], codes[i]
	})
	return codes[:k]
}

// InstantiateQuest produces an assignable copy of an authored definition.
// Templates without a fixed item set get a freshly generated one, so two
// assignments of the same template ask for different items.
func InstantiateQuest(rng *rand.Rand, def domain.QuestDefinition) domain.QuestDefinition {
	if len(def.ItemSet) == 0 {
		def.ItemSet = GenerateItemSet(rng, def.Category, def.ItemCount)
	}
	def.Description = itemSetDescription(def.Category, def.ItemSet)
	return def
}

// GenerateDailyQuests builds the day's quest pair: the fixed quest
// completionist daily and a random specific-food collector daily.
func GenerateDailyQuests(rng *rand.Rand) []domain.DailyQuestDefinition {
	return []domain.DailyQuestDefinition{
		NewCompleteQuestsDaily(),
		NewCollectFoodDaily(rng),
	}
}

// NewCompleteQuestsDaily builds the "complete N normal quests" daily.
func NewCompleteQuestsDaily() domain.DailyQuestDefinition {
	return domain.DailyQuestDefinition{
		Name:        "Quest Completionist",
		Description: fmt.Sprintf("Complete %d normal quests", CompleteQuestsDailyTarget),
		Type:        domain.DailyCompleteQuests,
		TargetValue: CompleteQuestsDailyTarget,
		GoldReward:  CompleteQuestsDailyGold,
	}
}

// NewCollectFoodDaily builds a "collect N of a specific food" daily for a
// random category and item.
func NewCollectFoodDaily(rng *rand.Rand) domain.DailyQuestDefinition {
	category := domain.Categories[rng.Intn(len(domain.Categories))]
	codes := domain.ItemCodes(category)
	item := codes[rng.Intn(len(codes))]
	name := domain.ItemName(category, item)

	return domain.DailyQuestDefinition{
		Name:         name + " Collector",
		Description:  fmt.Sprintf("Collect %d %s items", CollectFoodDailyTarget, name),
		Type:         domain.DailyCollectSpecificFood,
		TargetValue:  CollectFoodDailyTarget,
		Category:     category,
		SpecificItem: item,
		GoldReward:   CollectFoodDailyGold,
	}
}

// itemSetDescription renders "Collect Apple, Banana and Kiwi".
func itemSetDescription(category domain.FoodCategory, itemSet []int) string {
	if len(itemSet) == 0 {
		return ""
	}
	names := make([]string, len(itemSet))
	for i, code := range itemSet {
		names[i] = domain.ItemName(category, code)
	}
	if len(names) == 1 {
		return "Collect " + names[0]
	}
	return fmt.Sprintf("Collect %s and %s", strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
}
