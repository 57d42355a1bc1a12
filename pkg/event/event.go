// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Session and campaign event types
const (
	PointAdded     Type = "point_added"
	RunStarted     Type = "run_started"
	RunPaused      Type = "run_paused"
	RunResumed     Type = "run_resumed"
	SoftReset      Type = "soft_reset"
	HardReset      Type = "hard_reset"
	HistoryCleared Type = "history_cleared"
	TargetTouched  Type = "target_touched"
	LevelWon       Type = "level_won"
	LevelChanged   Type = "level_changed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching.
// Handlers run synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			// copy so in-flight publishes keep their slice intact
			kept := make([]registration, 0, len(regs)-1)
			kept = append(kept, regs[:i]...)
			b.handlers[eventType] = append(kept, regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// TargetEvent reports a new entry of the chain tail into a target
type TargetEvent struct {
	BaseEvent
	Target  int
	Touches int
}

// NewTargetEvent creates a new target event
func NewTargetEvent(source interface{}, target, touches int) *TargetEvent {
	return &TargetEvent{
		BaseEvent: BaseEvent{EventType: TargetTouched, Source: source},
		Target:    target,
		Touches:   touches,
	}
}

// WinEvent reports that every target has been touched
type WinEvent struct {
	BaseEvent
	Bonus int
}

// NewWinEvent creates a new win event
func NewWinEvent(source interface{}, bonus int) *WinEvent {
	return &WinEvent{
		BaseEvent: BaseEvent{EventType: LevelWon, Source: source},
		Bonus:     bonus,
	}
}

// LevelEvent reports a switch between levels
type LevelEvent struct {
	BaseEvent
	From string
	To   string
}

// NewLevelEvent creates a new level change event
func NewLevelEvent(source interface{}, from, to string) *LevelEvent {
	return &LevelEvent{
		BaseEvent: BaseEvent{EventType: LevelChanged, Source: source},
		From:      from,
		To:        to,
	}
}
