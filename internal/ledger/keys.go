package ledger

import (
	"fmt"

	"github.com/snackdash/snackdash/internal/domain"
)

// Storage keys. The format is load-bearing: existing save files use it.
const (
	KeyGold                 = "GoldAmount"
	KeyTotalFoodCollected   = "TotalFoodCollected"
	KeyTotalQuestsCompleted = "TotalQuestsCompleted"
	KeyNormalQuestsToday    = "NormalQuestsCompletedToday"
	KeyLastDailyReset       = "LastDailyReset"
	KeyCurrentSkin          = "CurrentSkin"
	lifetimeFoodPrefix      = "Food_"
	dailyFoodPrefix         = "DailyFood_"
	skinPrefix              = "Skin_"
)

// foodKey builds "Food_{category}" or "Food_{category}_{item}".
func foodKey(prefix string, category domain.FoodCategory, item int) string {
	if item == 0 {
		return prefix + category.String()
	}
	return fmt.Sprintf("%s%s_%s", prefix, category.String(), domain.ItemName(category, item))
}

// skinKey builds "Skin_{id}".
func skinKey(skin domain.Skin) string {
	return fmt.Sprintf("%s%d", skinPrefix, int(skin))
}
