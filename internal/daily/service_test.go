package daily

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snackdash/snackdash/internal/catalog"
	"github.com/snackdash/snackdash/internal/domain"
	"github.com/snackdash/snackdash/internal/event"
	"github.com/snackdash/snackdash/internal/ledger"
	"github.com/snackdash/snackdash/internal/save"
	"github.com/snackdash/snackdash/internal/storage"
)

type fixture struct {
	svc     *Service
	ledger  *ledger.Ledger
	gateway *save.Gateway
	store   *storage.MemoryStore
	bus     *event.MemoryBus
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	store := storage.NewMemoryStore()
	bus := event.NewMemoryBus()
	led := ledger.New(store, bus)
	gw := save.NewGateway(store)
	svc := NewService(gw, led, bus, rand.New(rand.NewSource(1)), 2)
	svc.now = func() time.Time { return now }
	return &fixture{svc: svc, ledger: led, gateway: gw, store: store, bus: bus}
}

func collectFoodDaily(t *testing.T, svc *Service) *ActiveDaily {
	t.Helper()
	for _, ad := range svc.Active() {
		if ad.Definition.Type == domain.DailyCollectSpecificFood {
			return ad
		}
	}
	t.Fatal("no collect-food daily active")
	return nil
}

func completeQuestsDaily(t *testing.T, svc *Service) *ActiveDaily {
	t.Helper()
	for _, ad := range svc.Active() {
		if ad.Definition.Type == domain.DailyCompleteQuests {
			return ad
		}
	}
	t.Fatal("no complete-quests daily active")
	return nil
}

var noon = time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)

func TestLoad_GeneratesFreshPair(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)

	f.svc.Load(ctx)

	active := f.svc.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "2026-08-31", f.svc.CurrentDate())

	cq := completeQuestsDaily(t, f.svc)
	assert.Equal(t, catalog.CompleteQuestsDailyTarget, cq.Record.Target())
	assert.Equal(t, catalog.CompleteQuestsDailyGold, cq.Definition.GoldReward)

	cf := collectFoodDaily(t, f.svc)
	assert.Equal(t, catalog.CollectFoodDailyTarget, cf.Record.Target())
	assert.True(t, domain.ValidItem(cf.Definition.Category, cf.Definition.SpecificItem))

	// The fresh pair is persisted immediately.
	snapshot := f.gateway.LoadDailyQuests(ctx)
	assert.Equal(t, "2026-08-31", snapshot.LastLoginDate)
	assert.Len(t, snapshot.TodaysQuests, 2)
}

func TestLoad_RestoresSameDaySnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)

	f.gateway.SaveDailyQuests(ctx, domain.DailyQuestSaveData{
		LastLoginDate: "2026-08-31",
		TodaysQuests: []domain.DailyQuestSaveEntry{
			{
				QuestName: "Quest Completionist", CurrentProgress: 1,
				QuestDate: "2026-08-31", QuestType: string(domain.DailyCompleteQuests),
				TargetValue: 2, GoldReward: 100,
			},
			{
				QuestName: "Kiwi Collector", CurrentProgress: 10, IsCompleted: true, IsRewardClaimed: true,
				QuestDate: "2026-08-31", QuestType: string(domain.DailyCollectSpecificFood),
				TargetValue: 10, GoldReward: 50,
				RequiredFoodType: int(domain.FoodFruit), RequiredFruit: domain.FruitKiwi,
			},
		},
	})
	// Ledger agrees with the saved progress and was last reset today.
	require.NoError(t, f.store.SetInt(ctx, ledger.KeyNormalQuestsToday, 1))
	f.ledger.SetLastDailyReset(ctx, "2026-08-31")

	f.svc.Load(ctx)

	active := f.svc.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Quest Completionist", active[0].Definition.Name)
	assert.Equal(t, 1, active[0].Record.Current())
	assert.True(t, active[0].Record.CompletedAt().IsZero())

	completed := f.svc.Completed()
	require.Len(t, completed, 1)
	assert.Equal(t, "Kiwi Collector", completed[0].Definition.Name)
	assert.True(t, completed[0].Record.RewardClaimed())
	assert.Equal(t, domain.FruitKiwi, completed[0].Definition.SpecificItem)
	assert.False(t, completed[0].Record.CompletedAt().IsZero())
}

func TestLoad_DiscardsStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)

	f.gateway.SaveDailyQuests(ctx, domain.DailyQuestSaveData{
		LastLoginDate: "2026-08-30",
		TodaysQuests: []domain.DailyQuestSaveEntry{
			{QuestName: "Quest Completionist", CurrentProgress: 2, IsCompleted: true,
				QuestType: string(domain.DailyCompleteQuests), TargetValue: 2, GoldReward: 100},
		},
	})

	f.svc.Load(ctx)

	assert.Len(t, f.svc.Active(), 2)
	assert.Empty(t, f.svc.Completed())
}

func TestLoad_NewDayResetsDailyLedgerScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)

	// Yesterday's session left the daily scope full: plenty of every item
	// collected and several quests completed.
	for _, cat := range []domain.FoodCategory{domain.FoodFruit, domain.FoodFastFood, domain.FoodCake} {
		for _, item := range domain.ItemCodes(cat) {
			for i := 0; i < 10; i++ {
				f.ledger.RecordCollection(ctx, cat, item)
			}
		}
	}
	for i := 0; i < 5; i++ {
		f.ledger.AddNormalQuestCompleted(ctx)
	}
	f.ledger.SetLastDailyReset(ctx, "2026-08-30")
	f.gateway.SaveDailyQuests(ctx, domain.DailyQuestSaveData{LastLoginDate: "2026-08-30"})

	f.svc.Load(ctx)

	// The fresh pair starts from zero instead of inheriting yesterday's
	// counters and completing on the spot.
	active := f.svc.Active()
	require.Len(t, active, 2)
	assert.Empty(t, f.svc.Completed())
	for _, ad := range active {
		assert.Equal(t, 0, ad.Record.Current(), "daily %q inherited stale progress", ad.Definition.Name)
		assert.False(t, ad.Record.Completed())
	}

	assert.Equal(t, "2026-08-31", f.ledger.LastDailyReset(ctx))
	assert.Equal(t, 0, f.ledger.NormalQuestsCompletedToday(ctx))
	cf := collectFoodDaily(t, f.svc)
	assert.Equal(t, 0, f.ledger.DailyCount(ctx, cf.Definition.Category, cf.Definition.SpecificItem))

	// Lifetime counts survive the daily reset.
	assert.Equal(t, 10, f.ledger.LifetimeCount(ctx, domain.FoodFruit, domain.FruitApple))
}

func TestLoad_RespectsMaxDailyQuests(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)
	svc := NewService(f.gateway, f.ledger, f.bus, rand.New(rand.NewSource(1)), 1)
	svc.now = func() time.Time { return noon }

	svc.Load(ctx)
	require.Len(t, svc.Active(), 1)

	// A saved day holding more quests than the limit is capped on restore.
	f.gateway.SaveDailyQuests(ctx, domain.DailyQuestSaveData{
		LastLoginDate: "2026-08-31",
		TodaysQuests: []domain.DailyQuestSaveEntry{
			{QuestName: "Quest Completionist", QuestDate: "2026-08-31",
				QuestType: string(domain.DailyCompleteQuests), TargetValue: 2, GoldReward: 100},
			{QuestName: "Apple Collector", QuestDate: "2026-08-31",
				QuestType: string(domain.DailyCollectSpecificFood), TargetValue: 10, GoldReward: 50,
				RequiredFoodType: int(domain.FoodFruit), RequiredFruit: domain.FruitApple},
		},
	})
	svc.Load(ctx)
	require.Len(t, svc.Active(), 1)
	assert.Equal(t, "Quest Completionist", svc.Active()[0].Definition.Name)
}

func TestLoad_CorruptSnapshotGeneratesFresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)
	require.NoError(t, f.store.SetString(ctx, save.KeyDailyQuestData, `{"todaysQuests": [{`))

	f.svc.Load(ctx)

	assert.Len(t, f.svc.Active(), 2)
	assert.Empty(t, f.svc.Completed())
}

func TestLoad_ReconcilesFromLedger(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)

	// Quests were completed today but the blob lagged behind.
	require.NoError(t, f.store.SetInt(ctx, ledger.KeyNormalQuestsToday, 5))
	f.ledger.SetLastDailyReset(ctx, "2026-08-31")

	f.svc.Load(ctx)

	// Target 2 with counter at 5: clamped and completed on load.
	for _, ad := range f.svc.Completed() {
		if ad.Definition.Type == domain.DailyCompleteQuests {
			assert.Equal(t, 2, ad.Record.Current())
			assert.True(t, ad.Record.Completed())
			return
		}
	}
	t.Fatal("complete-quests daily was not reconciled to completion")
}

func TestOnFoodCollected_AdvancesMatchingDaily(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)
	f.svc.Load(ctx)

	cf := collectFoodDaily(t, f.svc)
	cat, item := cf.Definition.Category, cf.Definition.SpecificItem

	f.ledger.RecordCollection(ctx, cat, item)
	f.svc.OnFoodCollected(ctx, cat, item)
	assert.Equal(t, 1, cf.Record.Current())

	// A different item in the same category does not advance it.
	other := item%9 + 1
	f.ledger.RecordCollection(ctx, cat, other)
	f.svc.OnFoodCollected(ctx, cat, other)
	assert.Equal(t, 1, cf.Record.Current())
}

func TestOnFoodCollected_CompletionAndGoldClaim(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)
	f.svc.Load(ctx)

	cf := collectFoodDaily(t, f.svc)
	cat, item := cf.Definition.Category, cf.Definition.SpecificItem

	for i := 0; i < catalog.CollectFoodDailyTarget; i++ {
		f.ledger.RecordCollection(ctx, cat, item)
		f.svc.OnFoodCollected(ctx, cat, item)
	}

	require.True(t, cf.Record.Completed())
	require.Len(t, f.svc.Completed(), 1)

	gold, err := f.svc.ClaimReward(ctx, cf.Record.ID())
	require.NoError(t, err)
	assert.Equal(t, catalog.CollectFoodDailyGold, gold)
	assert.Equal(t, catalog.CollectFoodDailyGold, f.ledger.Gold(ctx))

	// Second claim grants nothing.
	gold, err = f.svc.ClaimReward(ctx, cf.Record.ID())
	require.NoError(t, err)
	assert.Zero(t, gold)
	assert.Equal(t, catalog.CollectFoodDailyGold, f.ledger.Gold(ctx))
}

func TestOnQuestCompleted_AdvancesCompletionistDaily(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)
	f.svc.Load(ctx)

	cq := completeQuestsDaily(t, f.svc)

	f.ledger.AddNormalQuestCompleted(ctx)
	f.svc.OnQuestCompleted(ctx)
	assert.Equal(t, 1, cq.Record.Current())

	f.ledger.AddNormalQuestCompleted(ctx)
	f.svc.OnQuestCompleted(ctx)
	assert.True(t, cq.Record.Completed())

	gold, err := f.svc.ClaimReward(ctx, cq.Record.ID())
	require.NoError(t, err)
	assert.Equal(t, catalog.CompleteQuestsDailyGold, gold)
}

func TestClaimReward_UnknownRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)
	f.svc.Load(ctx)

	_, err := f.svc.ClaimReward(ctx, "no-such-record")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandleDayRollover(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)
	f.svc.Load(ctx)

	cf := collectFoodDaily(t, f.svc)
	cat, item := cf.Definition.Category, cf.Definition.SpecificItem
	f.ledger.RecordCollection(ctx, cat, item)
	f.svc.OnFoodCollected(ctx, cat, item)
	require.Equal(t, 1, cf.Record.Current())

	var rollovers []event.DayRolloverPayloadV1
	f.bus.Subscribe(event.Type(domain.EventTypeDayRollover), func(_ context.Context, ev event.Event) error {
		p, err := event.DecodePayload[event.DayRolloverPayloadV1](ev.Payload)
		if err != nil {
			return err
		}
		rollovers = append(rollovers, p)
		return nil
	})

	f.svc.HandleDayRollover(ctx, "2026-09-01")

	assert.Equal(t, "2026-09-01", f.svc.CurrentDate())
	assert.Len(t, f.svc.Active(), 2)
	assert.Empty(t, f.svc.Completed())
	assert.Equal(t, "2026-09-01", f.ledger.LastDailyReset(ctx))

	// Daily ledger scope was reset.
	assert.Equal(t, 0, f.ledger.DailyCount(ctx, cat, item))
	assert.Equal(t, 0, f.ledger.NormalQuestsCompletedToday(ctx))

	require.Len(t, rollovers, 1)
	assert.Equal(t, "2026-09-01", rollovers[0].Date)
	assert.Equal(t, 2, rollovers[0].QuestsExpired)

	// New records start at zero.
	for _, ad := range f.svc.Active() {
		assert.Equal(t, 0, ad.Record.Current())
	}
}

func TestHandleDayRollover_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)
	f.svc.Load(ctx)

	first := f.svc.Active()
	f.svc.HandleDayRollover(ctx, "2026-08-31")

	// Same date: nothing regenerated, records untouched.
	after := f.svc.Active()
	require.Len(t, after, 2)
	for i := range first {
		assert.Same(t, first[i].Record, after[i].Record)
	}
}

func TestPersistenceRoundTripAcrossRestart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, noon)
	f.svc.Load(ctx)

	cf := collectFoodDaily(t, f.svc)
	cat, item := cf.Definition.Category, cf.Definition.SpecificItem
	for i := 0; i < 3; i++ {
		f.ledger.RecordCollection(ctx, cat, item)
		f.svc.OnFoodCollected(ctx, cat, item)
	}

	// A second service over the same store picks up today's progress.
	restarted := NewService(f.gateway, f.ledger, f.bus, rand.New(rand.NewSource(99)), 2)
	restarted.now = func() time.Time { return noon }
	restarted.Load(ctx)

	cf2 := collectFoodDaily(t, restarted)
	assert.Equal(t, cf.Definition.Name, cf2.Definition.Name)
	assert.Equal(t, 3, cf2.Record.Current())
}
