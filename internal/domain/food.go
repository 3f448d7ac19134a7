package domain

// FoodCategory is the top-level food classification.
type FoodCategory int

const (
	FoodFruit    FoodCategory = 1
	FoodFastFood FoodCategory = 2
	FoodCake     FoodCategory = 3
)

// Categories lists every food category in a stable order.
var Categories = []FoodCategory{FoodFruit, FoodFastFood, FoodCake}

// String returns the persisted name of the category, used in storage keys
// and save blobs ("Fruit", "FastFood", "Cake").
func (c FoodCategory) String() string {
	switch c {
	case FoodFruit:
		return "Fruit"
	case FoodFastFood:
		return "FastFood"
	case FoodCake:
		return "Cake"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a known category.
func (c FoodCategory) Valid() bool {
	return c >= FoodFruit && c <= FoodCake
}

// Specific item codes. Codes are only unique within a category.
const (
	FruitApple      = 1
	FruitBanana     = 2
	FruitCoconut    = 3
	FruitHoneyMelon = 4
	FruitKiwi       = 5
	FruitLemon      = 6
	FruitLime       = 7
	FruitOrange     = 8
	FruitPear       = 9
)

const (
	FastFoodBacon           = 1
	FastFoodBoxNuggets      = 2
	FastFoodChickenBurger   = 3
	FastFoodChipBag         = 4
	FastFoodCorndog         = 5
	FastFoodCrinkleFries    = 6
	FastFoodHotdog          = 7
	FastFoodHamSandwich     = 8
	FastFoodSausageSandwich = 9
)

const (
	CakeBerry     = 1
	CakeCaramel   = 2
	CakeCherry    = 3
	CakeChocolate = 4
	CakeLemon     = 5
	CakeLilac     = 6
	CakeLime      = 7
	CakeMatcha    = 8
	CakePlain     = 9
)

var fruitNames = map[int]string{
	FruitApple:      "Apple",
	FruitBanana:     "Banana",
	FruitCoconut:    "Coconut",
	FruitHoneyMelon: "HoneyMelon",
	FruitKiwi:       "Kiwi",
	FruitLemon:      "Lemon",
	FruitLime:       "Lime",
	FruitOrange:     "Orange",
	FruitPear:       "Pear",
}

var fastFoodNames = map[int]string{
	FastFoodBacon:           "Bacon",
	FastFoodBoxNuggets:      "BoxNuggets",
	FastFoodChickenBurger:   "ChickenBurger",
	FastFoodChipBag:         "ChipBag",
	FastFoodCorndog:         "Corndog",
	FastFoodCrinkleFries:    "CrinkleFries",
	FastFoodHotdog:          "Hotdog",
	FastFoodHamSandwich:     "HamSandwich",
	FastFoodSausageSandwich: "SausageSandwich",
}

var cakeNames = map[int]string{
	CakeBerry:     "Berry",
	CakeCaramel:   "Caramel",
	CakeCherry:    "Cherry",
	CakeChocolate: "Chocolate",
	CakeLemon:     "Lemon",
	CakeLilac:     "Lilac",
	CakeLime:      "Lime",
	CakeMatcha:    "Matcha",
	CakePlain:     "Plain",
}

// ItemCodes returns the full code space for a category in ascending order.
func ItemCodes(category FoodCategory) []int {
	var names map[int]string
	switch category {
	case FoodFruit:
		names = fruitNames
	case FoodFastFood:
		names = fastFoodNames
	case FoodCake:
		names = cakeNames
	default:
		return nil
	}

	codes := make([]int, 0, len(names))
	for code := 1; code <= len(names); code++ {
		codes = append(codes, code)
	}
	return codes
}

// ItemName returns the display/storage name of a specific item within a
// category, or "Unknown" for codes outside the category's code space.
func ItemName(category FoodCategory, code int) string {
	var name string
	var ok bool
	switch category {
	case FoodFruit:
		name, ok = fruitNames[code]
	case FoodFastFood:
		name, ok = fastFoodNames[code]
	case FoodCake:
		name, ok = cakeNames[code]
	}
	if !ok {
		return "Unknown"
	}
	return name
}

// ValidItem reports whether code belongs to the category's code space.
func ValidItem(category FoodCategory, code int) bool {
	return ItemName(category, code) != "Unknown"
}
