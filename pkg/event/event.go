// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Gameplay event types. Each fires at most once per qualifying occurrence;
// none of them is emitted every frame.
const (
	EngineStarted    Type = "engine_started"
	EngineStopped    Type = "engine_stopped"
	ShipLanded       Type = "ship_landed"
	ShipCrashed      Type = "ship_crashed"
	FreightPickedUp  Type = "freight_picked_up"
	FreightDelivered Type = "freight_delivered"
	FuelLoaded       Type = "fuel_loaded"
	KeyCollected     Type = "key_collected"
	ExtraCollected   Type = "extra_collected"
	ShipRespawned    Type = "ship_respawned"
	GameWon          Type = "game_won"
	GameLost         Type = "game_lost"
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

// Publisher is what simulation code needs from a bus.
type Publisher interface {
	Publish(Event)
}

type discard struct{}

func (discard) Publish(Event) {}

// Discard is a Publisher that drops every event.
var Discard Publisher = discard{}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler so it can be removed later.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a previously registered handler. Unknown IDs are ignored.
func (b *Bus) Unsubscribe(id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			if len(b.handlers[eventType]) == 0 {
				delete(b.handlers, eventType)
			}
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// ShipEvent describes something that happened to the ship
type ShipEvent struct {
	BaseEvent
	Time  float64
	X, Y  float64
	Lives int
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, time, x, y float64, lives int) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Time:  time,
		X:     x,
		Y:     y,
		Lives: lives,
	}
}

// CargoEvent describes a completed cargo transfer at an airport
type CargoEvent struct {
	BaseEvent
	Airport   int // index of the airport in the level
	Remaining int // cargo left on the airport after the transfer
}

// NewCargoEvent creates a new cargo event
func NewCargoEvent(eventType Type, source interface{}, airport, remaining int) *CargoEvent {
	return &CargoEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Airport:   airport,
		Remaining: remaining,
	}
}
