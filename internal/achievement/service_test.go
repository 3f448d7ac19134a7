package achievement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snackdash/snackdash/internal/catalog"
	"github.com/snackdash/snackdash/internal/domain"
	"github.com/snackdash/snackdash/internal/event"
	"github.com/snackdash/snackdash/internal/ledger"
	"github.com/snackdash/snackdash/internal/save"
	"github.com/snackdash/snackdash/internal/storage"
)

func testDefinitions() []domain.AchievementDefinition {
	return []domain.AchievementDefinition{
		{
			ID: "apple_fan", Name: "Apple Fan", Type: domain.AchievementCollectSpecificFood,
			TargetValue: 10, Category: domain.FoodFruit, SpecificItem: domain.FruitApple, GoldReward: 25,
		},
		{
			ID: "quest_hero", Name: "Quest Hero", Type: domain.AchievementCompleteQuests,
			TargetValue: 3, GoldReward: 50,
		},
		{
			ID: "secret_baker", Name: "Secret Baker", Type: domain.AchievementCollectSpecificFood,
			TargetValue: 2, Category: domain.FoodCake, SpecificItem: domain.CakePlain, GoldReward: 100, Hidden: true,
		},
	}
}

type fixture struct {
	svc     *Service
	ledger  *ledger.Ledger
	gateway *save.Gateway
	store   *storage.MemoryStore
	bus     *event.MemoryBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewMemoryStore()
	bus := event.NewMemoryBus()
	led := ledger.New(store, bus)
	gw := save.NewGateway(store)

	cat, err := catalog.NewAchievementCatalog(testDefinitions())
	require.NoError(t, err)

	svc := NewService(cat, gw, led, bus)
	svc.Load(context.Background())
	return &fixture{svc: svc, ledger: led, gateway: gw, store: store, bus: bus}
}

func TestLoad_FreshState(t *testing.T) {
	f := newFixture(t)

	all := f.svc.All()
	require.Len(t, all, 3)
	for _, ta := range all {
		assert.Equal(t, 0, ta.Record.Current())
		assert.False(t, ta.Record.Completed())
	}
	assert.Empty(t, f.svc.Unlocked())
}

func TestCollectAchievement_UnlocksExactlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	unlocks := 0
	f.bus.Subscribe(event.Type(domain.EventTypeAchievementUnlocked), func(_ context.Context, _ event.Event) error {
		unlocks++
		return nil
	})

	ta, ok := f.svc.Get("apple_fan")
	require.True(t, ok)

	for i := 1; i <= 10; i++ {
		f.ledger.RecordCollection(ctx, domain.FoodFruit, domain.FruitApple)
		f.svc.OnFoodCollected(ctx, domain.FoodFruit, domain.FruitApple)

		if i < 10 {
			assert.Equal(t, i, ta.Record.Current())
			assert.False(t, ta.Record.Completed(), "must stay locked at %d", i)
		}
	}

	assert.True(t, ta.Record.Completed())
	assert.False(t, ta.UnlockedAt().IsZero())
	assert.Equal(t, 1, unlocks)

	// Further collections change nothing.
	f.ledger.RecordCollection(ctx, domain.FoodFruit, domain.FruitApple)
	f.svc.OnFoodCollected(ctx, domain.FoodFruit, domain.FruitApple)
	assert.Equal(t, 10, ta.Record.Current())
	assert.Equal(t, 1, unlocks)
}

func TestOnFoodCollected_IgnoresNonMatchingItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.ledger.RecordCollection(ctx, domain.FoodFruit, domain.FruitBanana)
	f.svc.OnFoodCollected(ctx, domain.FoodFruit, domain.FruitBanana)

	ta, _ := f.svc.Get("apple_fan")
	assert.Equal(t, 0, ta.Record.Current())
}

func TestOnQuestCompleted_AdvancesQuestAchievements(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		f.ledger.AddNormalQuestCompleted(ctx)
		f.svc.OnQuestCompleted(ctx)
	}

	ta, _ := f.svc.Get("quest_hero")
	assert.True(t, ta.Record.Completed())
}

func TestClaimReward(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Locked: claim is a no-op.
	gold, err := f.svc.ClaimReward(ctx, "apple_fan")
	require.NoError(t, err)
	assert.Zero(t, gold)

	for i := 0; i < 10; i++ {
		f.ledger.RecordCollection(ctx, domain.FoodFruit, domain.FruitApple)
		f.svc.OnFoodCollected(ctx, domain.FoodFruit, domain.FruitApple)
	}

	gold, err = f.svc.ClaimReward(ctx, "apple_fan")
	require.NoError(t, err)
	assert.Equal(t, 25, gold)
	assert.Equal(t, 25, f.ledger.Gold(ctx))

	gold, err = f.svc.ClaimReward(ctx, "apple_fan")
	require.NoError(t, err)
	assert.Zero(t, gold)
	assert.Equal(t, 25, f.ledger.Gold(ctx))

	_, err = f.svc.ClaimReward(ctx, "no-such-achievement")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVisible_HidesLockedHiddenAchievements(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ids := func() []string {
		var out []string
		for _, ta := range f.svc.Visible() {
			out = append(out, ta.Definition.ID)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"apple_fan", "quest_hero"}, ids())

	for i := 0; i < 2; i++ {
		f.ledger.RecordCollection(ctx, domain.FoodCake, domain.CakePlain)
		f.svc.OnFoodCollected(ctx, domain.FoodCake, domain.CakePlain)
	}

	assert.ElementsMatch(t, []string{"apple_fan", "quest_hero", "secret_baker"}, ids())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 10; i++ {
		f.ledger.RecordCollection(ctx, domain.FoodFruit, domain.FruitApple)
		f.svc.OnFoodCollected(ctx, domain.FoodFruit, domain.FruitApple)
	}
	_, err := f.svc.ClaimReward(ctx, "apple_fan")
	require.NoError(t, err)
	unlockedAt := mustGet(t, f.svc, "apple_fan").UnlockedAt()

	cat, err := catalog.NewAchievementCatalog(testDefinitions())
	require.NoError(t, err)
	restarted := NewService(cat, f.gateway, f.ledger, f.bus)
	restarted.Load(ctx)

	ta := mustGet(t, restarted, "apple_fan")
	assert.True(t, ta.Record.Completed())
	assert.True(t, ta.Record.RewardClaimed())
	assert.Equal(t, unlockedAt.UnixNano(), ta.UnlockedAt().UnixNano())

	hero := mustGet(t, restarted, "quest_hero")
	assert.False(t, hero.Record.Completed())
}

func TestLoad_IgnoresUnknownSavedID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.gateway.SaveAchievements(ctx, domain.AchievementSaveData{
		Achievements: []domain.AchievementSaveEntry{
			{AchievementID: "removed_from_catalog", CurrentProgress: 5, IsUnlocked: true},
			{AchievementID: "quest_hero", CurrentProgress: 2},
		},
	})

	f.svc.Load(ctx)

	require.Len(t, f.svc.All(), 3)
	hero := mustGet(t, f.svc, "quest_hero")
	assert.Equal(t, 2, hero.Record.Current())
}

func TestLoad_CorruptSnapshotStartsFresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.SetString(ctx, save.KeyAchievementData, `{{`))

	f.svc.Load(ctx)

	for _, ta := range f.svc.All() {
		assert.Equal(t, 0, ta.Record.Current())
		assert.False(t, ta.Record.Completed())
	}
}

func mustGet(t *testing.T, svc *Service, id string) *Tracked {
	t.Helper()
	ta, ok := svc.Get(id)
	require.True(t, ok)
	return ta
}
