// Package quest implements the session quest rotation: a bounded set of
// active item-collection quests drawn from the authored pool, replaced one
// at a time as they complete.
package quest

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/snackdash/snackdash/internal/catalog"
	"github.com/snackdash/snackdash/internal/domain"
	"github.com/snackdash/snackdash/internal/event"
	"github.com/snackdash/snackdash/internal/ledger"
	"github.com/snackdash/snackdash/internal/logger"
	"github.com/snackdash/snackdash/internal/metrics"
	"github.com/snackdash/snackdash/internal/progress"
)

// Scorer credits session score to the tracked player. Session quests pay
// out in score, not gold.
type Scorer interface {
	AddPlayerScore(ctx context.Context, amount int)
}

// ActiveQuest pairs an instantiated quest definition with its progress
// record. Definition.ItemSet is always concrete here, even when the
// authored template only carried an item count.
type ActiveQuest struct {
	Definition domain.QuestDefinition
	Record     *progress.Record
}

// Engine drives the session quest rotation. It is session-scoped and not
// safe for concurrent use; all calls arrive on the session goroutine.
type Engine struct {
	catalog    *catalog.QuestCatalog
	ledger     *ledger.Ledger
	bus        event.Bus
	scorer     Scorer
	rng        *rand.Rand
	maxActive  int
	autoAssign bool

	pool      []domain.QuestDefinition
	active    []*ActiveQuest
	completed []*ActiveQuest
}

// NewEngine creates a quest rotation engine. scorer may be nil when no one
// consumes score (tests).
func NewEngine(cat *catalog.QuestCatalog, led *ledger.Ledger, bus event.Bus, scorer Scorer, rng *rand.Rand, maxActive int, autoAssign bool) *Engine {
	return &Engine{
		catalog:    cat,
		ledger:     led,
		bus:        bus,
		scorer:     scorer,
		rng:        rng,
		maxActive:  maxActive,
		autoAssign: autoAssign,
	}
}

// StartSession resets the rotation for a new play session. category narrows
// the pool to one food family; pass 0 to draw from the whole catalog. Up to
// maxActive quests are assigned immediately.
func (e *Engine) StartSession(ctx context.Context, category domain.FoodCategory) {
	log := logger.FromContext(ctx)

	if category == 0 {
		e.pool = e.catalog.All()
	} else {
		e.pool = e.catalog.FilterByCategory(category)
	}
	e.active = nil
	e.completed = nil

	for len(e.active) < e.maxActive {
		if _, ok := e.AssignRandom(ctx); !ok {
			break
		}
	}

	log.Info("Quest session started", "category", category, "poolSize", len(e.pool), "active", len(e.active))
}

// AssignRandom assigns one random quest from the session pool. Templates
// already active (by definition name) are ineligible; the item set is
// generated at assignment time so repeated assignments of one template get
// fresh sets. Returns ok=false when the pool is exhausted or the active
// list is full; exhaustion is an expected state, not an error.
func (e *Engine) AssignRandom(ctx context.Context) (*ActiveQuest, bool) {
	log := logger.FromContext(ctx)

	if len(e.active) >= e.maxActive {
		return nil, false
	}

	eligible := make([]domain.QuestDefinition, 0, len(e.pool))
	for _, def := range e.pool {
		if !e.isActive(def.Name) {
			eligible = append(eligible, def)
		}
	}
	if len(eligible) == 0 {
		log.Info("No eligible quest definition remains", "poolSize", len(e.pool), "active", len(e.active))
		return nil, false
	}

	def := catalog.InstantiateQuest(e.rng, eligible[e.rng.Intn(len(eligible))])
	rec := progress.NewItemSet(def.Name, def.ItemSet)
	aq := &ActiveQuest{Definition: def, Record: rec}

	rec.SetNotifier(progress.Notifier{
		OnProgress: func(r *progress.Record) {
			e.publish(ctx, event.NewProgressEvent(domain.EventTypeQuestProgress, r.ID(), r.Name(), r.Current(), r.Target()))
		},
	})

	e.active = append(e.active, aq)
	metrics.QuestsAssigned.WithLabelValues(metrics.KindSession).Inc()
	e.publish(ctx, event.NewProgressEvent(domain.EventTypeQuestAdded, rec.ID(), rec.Name(), 0, rec.Target()))

	log.Info("Quest assigned", "quest", def.Name, "itemSet", def.ItemSet)
	return aq, true
}

// OnFoodCollected fans one collected item out to every active quest that
// tracks the item's category. Records self-filter on set membership and
// duplicates. Each quest completed by the item moves to the completed list
// and, when auto-assignment is on, is replaced by at most one new quest;
// replacements start at zero progress, so a single collection can never
// cascade.
func (e *Engine) OnFoodCollected(ctx context.Context, category domain.FoodCategory, item int) {
	for _, aq := range e.active {
		if aq.Definition.Category == category {
			aq.Record.AddSpecificItem(item)
		}
	}

	remaining := e.active[:0]
	var done []*ActiveQuest
	for _, aq := range e.active {
		if aq.Record.Completed() {
			done = append(done, aq)
		} else {
			remaining = append(remaining, aq)
		}
	}
	e.active = remaining

	for _, aq := range done {
		e.finishQuest(ctx, aq)
	}
}

// finishQuest records a completion and assigns the single replacement.
func (e *Engine) finishQuest(ctx context.Context, aq *ActiveQuest) {
	log := logger.FromContext(ctx)

	e.completed = append(e.completed, aq)
	e.ledger.AddNormalQuestCompleted(ctx)
	metrics.QuestsCompleted.WithLabelValues(metrics.KindSession).Inc()
	e.publish(ctx, event.NewCompletedEvent(domain.EventTypeQuestCompleted, aq.Record.ID(), aq.Record.Name(), aq.Record.CompletedAt()))

	log.Info("Quest completed", "quest", aq.Record.Name())

	if e.autoAssign {
		e.AssignRandom(ctx)
	}
}

// ClaimReward claims the reward for a completed quest and credits its score.
// Returns the score granted, 0 when the reward was already claimed. Unknown
// record IDs return domain.ErrNotFound.
func (e *Engine) ClaimReward(ctx context.Context, recordID string) (int, error) {
	aq := e.find(recordID)
	if aq == nil {
		return 0, fmt.Errorf("claim reward for quest %s: %w", recordID, domain.ErrNotFound)
	}

	if !aq.Record.ClaimReward() {
		return 0, nil
	}

	score := aq.Definition.ScoreReward + aq.Definition.BonusScore
	if e.scorer != nil && score > 0 {
		e.scorer.AddPlayerScore(ctx, score)
	}
	metrics.RewardsClaimed.WithLabelValues(metrics.KindSession).Inc()
	e.publish(ctx, event.NewRewardClaimedEvent(domain.EventTypeQuestRewardClaimed, aq.Record.ID(), aq.Record.Name(), 0, score))

	logger.FromContext(ctx).Info("Quest reward claimed", "quest", aq.Record.Name(), "score", score)
	return score, nil
}

// Active returns the active quests in assignment order.
func (e *Engine) Active() []*ActiveQuest {
	return append([]*ActiveQuest(nil), e.active...)
}

// Completed returns the quests completed this session in completion order.
func (e *Engine) Completed() []*ActiveQuest {
	return append([]*ActiveQuest(nil), e.completed...)
}

func (e *Engine) find(recordID string) *ActiveQuest {
	for _, aq := range e.completed {
		if aq.Record.ID() == recordID {
			return aq
		}
	}
	for _, aq := range e.active {
		if aq.Record.ID() == recordID {
			return aq
		}
	}
	return nil
}

func (e *Engine) isActive(name string) bool {
	for _, aq := range e.active {
		if aq.Definition.Name == name {
			return true
		}
	}
	return false
}

func (e *Engine) publish(ctx context.Context, ev event.Event) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("Event handler failed", "type", ev.Type, "error", err)
	}
}
