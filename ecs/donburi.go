package ecs

import (
	"github.com/phanxgames/diagram"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Event is a diagram interaction event together with the Donburi entity bound
// to its diagram id.
type Event struct {
	diagram.InteractionEvent
	// Entity is donburi.Null when the id is unbound or the event has no id.
	Entity donburi.Entity
}

// InteractionEventType is the Donburi event type for diagram interaction
// events.
var InteractionEventType = events.NewEventType[Event]()

// DonburiStore is a diagram.EntityStore that publishes to a Donburi world.
type DonburiStore struct {
	world donburi.World
	bound map[int]donburi.Entity
}

// NewDonburiStore creates a store publishing to world. Events are queued and
// delivered by InteractionEventType.ProcessEvents or events.ProcessAllEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, bound: make(map[int]donburi.Entity)}
}

// Bind associates a diagram id with an entity.
func (s *DonburiStore) Bind(id int, entity donburi.Entity) {
	s.bound[id] = entity
}

// Unbind removes the association of id.
func (s *DonburiStore) Unbind(id int) {
	delete(s.bound, id)
}

// Entity returns the entity bound to id.
func (s *DonburiStore) Entity(id int) (donburi.Entity, bool) {
	e, ok := s.bound[id]
	return e, ok
}

// EmitEvent publishes event. Bindings to entities no longer valid in the
// world are dropped.
func (s *DonburiStore) EmitEvent(event diagram.InteractionEvent) {
	entity := donburi.Null
	if e, ok := s.bound[event.EntityID]; ok {
		if s.world.Valid(e) {
			entity = e
		} else {
			delete(s.bound, event.EntityID)
		}
	}
	InteractionEventType.Publish(s.world, Event{InteractionEvent: event, Entity: entity})
}
