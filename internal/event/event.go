package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/snackdash/snackdash/internal/domain"
	"github.com/snackdash/snackdash/internal/metrics"
)

// EventSchemaVersion is the current event schema version.
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// FoodCollectedPayloadV1 is the typed payload for food collection events
type FoodCollectedPayloadV1 struct {
	Category     domain.FoodCategory  `json:"category"`
	SpecificItem int                  `json:"specific_item"`
	Collector    domain.CollectorKind `json:"collector"`
	CollectorID  string               `json:"collector_id,omitempty"`
	Timestamp    int64                `json:"timestamp"`
}

// ProgressPayloadV1 is the typed payload for progress-updated events on any
// quest or achievement record.
type ProgressPayloadV1 struct {
	RecordID string `json:"record_id"`
	Name     string `json:"name"`
	Current  int    `json:"current"`
	Target   int    `json:"target"`
}

// CompletedPayloadV1 is the typed payload for completion/unlock events
type CompletedPayloadV1 struct {
	RecordID    string `json:"record_id"`
	Name        string `json:"name"`
	CompletedAt int64  `json:"completed_at"`
}

// RewardClaimedPayloadV1 is the typed payload for reward claim events
type RewardClaimedPayloadV1 struct {
	RecordID string `json:"record_id"`
	Name     string `json:"name"`
	Gold     int    `json:"gold,omitempty"`
	Score    int    `json:"score,omitempty"`
}

// GoldChangedPayloadV1 is the typed payload for gold balance changes
type GoldChangedPayloadV1 struct {
	Balance int `json:"balance"`
	Delta   int `json:"delta"`
}

// DayRolloverPayloadV1 is the typed payload for day rollover events
type DayRolloverPayloadV1 struct {
	Date          string `json:"date"` // yyyy-MM-dd
	QuestsExpired int    `json:"quests_expired"`
}

// Type-safe event constructors

// NewFoodCollectedEvent creates a new food collected event
func NewFoodCollectedEvent(category domain.FoodCategory, specificItem int, collector domain.CollectorKind, collectorID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeFoodCollected),
		Payload: FoodCollectedPayloadV1{
			Category:     category,
			SpecificItem: specificItem,
			Collector:    collector,
			CollectorID:  collectorID,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewProgressEvent creates a progress-updated event of the given type
func NewProgressEvent(eventType string, recordID, name string, current, target int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(eventType),
		Payload: ProgressPayloadV1{
			RecordID: recordID,
			Name:     name,
			Current:  current,
			Target:   target,
		},
	}
}

// NewCompletedEvent creates a completion event of the given type
func NewCompletedEvent(eventType string, recordID, name string, completedAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(eventType),
		Payload: CompletedPayloadV1{
			RecordID:    recordID,
			Name:        name,
			CompletedAt: completedAt.Unix(),
		},
	}
}

// NewRewardClaimedEvent creates a reward-claimed event of the given type
func NewRewardClaimedEvent(eventType string, recordID, name string, gold, score int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(eventType),
		Payload: RewardClaimedPayloadV1{
			RecordID: recordID,
			Name:     name,
			Gold:     gold,
			Score:    score,
		},
	}
}

// NewGoldChangedEvent creates a gold balance change event
func NewGoldChangedEvent(balance, delta int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeGoldChanged),
		Payload: GoldChangedPayloadV1{Balance: balance, Delta: delta},
	}
}

// NewDayRolloverEvent creates a day rollover event
func NewDayRolloverEvent(date string, questsExpired int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeDayRollover),
		Payload: DayRolloverPayloadV1{Date: date, QuestsExpired: questsExpired},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// on the caller's goroutine; dispatch within a game session is single
// threaded, so handlers may themselves publish without deadlock.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()

	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
