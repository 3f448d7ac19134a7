// Package progress implements the generic current/target progress record
// shared by session quests, daily quests, and achievements. Completion and
// reward claim are one-way transitions; every mutator is a silent no-op once
// the relevant transition has happened.
package progress

import (
	"time"

	"github.com/google/uuid"
)

// Notifier carries the lifecycle callbacks for a record. Any nil callback
// is skipped. Callbacks run synchronously on the mutating goroutine, inside
// the call that caused the transition.
type Notifier struct {
	OnProgress      func(*Record)
	OnCompleted     func(*Record)
	OnRewardClaimed func(*Record)
}

// Record is the mutable state of one active or completed quest/achievement
// instance.
type Record struct {
	id            string
	name          string
	target        int
	itemSet       []int // non-nil for item-set records
	satisfied     []int
	current       int
	completed     bool
	rewardClaimed bool
	assignedAt    time.Time
	completedAt   time.Time

	notifier Notifier
	now      func() time.Time
}

// New creates a flat-count record: progress 0, unclaimed, incomplete.
func New(name string, target int) *Record {
	return &Record{
		id:         uuid.NewString(),
		name:       name,
		target:     target,
		assignedAt: time.Now(),
		now:        time.Now,
	}
}

// NewItemSet creates an item-set record whose target is the set size. Each
// member of itemSet must be collected exactly once.
func NewItemSet(name string, itemSet []int) *Record {
	r := New(name, len(itemSet))
	r.itemSet = append([]int(nil), itemSet...)
	return r
}

// Restore rebuilds a record from saved scalars. Satisfied items are not part
// of the save format; a restored item-set record keeps only its count (the
// set itself is regenerated with the definition on a new day, and within a
// day item-set records are session-scoped and never restored).
func Restore(name string, target, current int, completed, rewardClaimed bool, assignedAt, completedAt time.Time) *Record {
	r := New(name, target)
	if current > target {
		current = target
	}
	if current < 0 {
		current = 0
	}
	r.current = current
	r.completed = completed
	r.rewardClaimed = rewardClaimed
	r.assignedAt = assignedAt
	r.completedAt = completedAt
	return r
}

// SetNotifier installs lifecycle callbacks. Must be called before the record
// starts receiving progress.
func (r *Record) SetNotifier(n Notifier) { r.notifier = n }

// ID returns the record's instance identity.
func (r *Record) ID() string { return r.id }

// Name returns the definition name the record tracks.
func (r *Record) Name() string { return r.name }

// Current returns the current progress count.
func (r *Record) Current() int { return r.current }

// Target returns the completion threshold.
func (r *Record) Target() int { return r.target }

// Completed reports whether the completion transition has happened.
func (r *Record) Completed() bool { return r.completed }

// RewardClaimed reports whether the reward has been claimed.
func (r *Record) RewardClaimed() bool { return r.rewardClaimed }

// AssignedAt returns the assignment timestamp.
func (r *Record) AssignedAt() time.Time { return r.assignedAt }

// CompletedAt returns the completion timestamp, zero while incomplete.
func (r *Record) CompletedAt() time.Time { return r.completedAt }

// Fraction returns current/target in [0,1].
func (r *Record) Fraction() float64 {
	if r.target == 0 {
		return 0
	}
	return float64(r.current) / float64(r.target)
}

// ItemSet returns a copy of the required item set, nil for flat records.
func (r *Record) ItemSet() []int {
	if r.itemSet == nil {
		return nil
	}
	return append([]int(nil), r.itemSet...)
}

// Satisfied returns a copy of the already-collected item codes.
func (r *Record) Satisfied() []int {
	return append([]int(nil), r.satisfied...)
}

// AddProgress increments progress by amount, clamped to [0, target].
// No-op once completed. Reaching the target completes the record within
// this call.
func (r *Record) AddProgress(amount int) {
	if r.completed {
		return
	}
	r.setCurrent(r.current + amount)
}

// SetProgress overwrites progress with amount, clamped to [0, target].
// Progress reconstructed from an external source of truth (the ledger)
// enters through here. No-op once completed.
func (r *Record) SetProgress(amount int) {
	if r.completed {
		return
	}
	r.setCurrent(amount)
}

// AddSpecificItem records the collection of one required item. Returns
// false without mutating state when the record is completed, when code is
// not in the required set, or when code was already collected. Collection
// events are broadcast indiscriminately; each record self-filters.
func (r *Record) AddSpecificItem(code int) bool {
	if r.completed || r.itemSet == nil {
		return false
	}
	if !contains(r.itemSet, code) {
		return false
	}
	if contains(r.satisfied, code) {
		return false
	}

	r.satisfied = append(r.satisfied, code)
	r.setCurrent(len(r.satisfied))
	return true
}

// ClaimReward performs the one-way reward-claim transition. Returns true
// exactly once, on the call that transitions incomplete→claimed; the caller
// grants the actual reward only on a true return.
func (r *Record) ClaimReward() bool {
	if !r.completed || r.rewardClaimed {
		return false
	}
	r.rewardClaimed = true
	if r.notifier.OnRewardClaimed != nil {
		r.notifier.OnRewardClaimed(r)
	}
	return true
}

// setCurrent clamps, notifies, and runs the completion check. The check is
// part of the same call so no caller can observe current == target with
// completed still false.
func (r *Record) setCurrent(value int) {
	if value < 0 {
		value = 0
	}
	if value > r.target {
		value = r.target
	}
	r.current = value

	if r.notifier.OnProgress != nil {
		r.notifier.OnProgress(r)
	}

	if r.current >= r.target && !r.completed {
		r.completed = true
		r.completedAt = r.now()
		if r.notifier.OnCompleted != nil {
			r.notifier.OnCompleted(r)
		}
	}
}

func contains(codes []int, code int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
