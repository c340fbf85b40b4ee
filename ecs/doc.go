// Package ecs provides ECS adapters for diagram's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges editor interaction
// events (hover, click, drag, pinch) into a [Donburi] world as typed events.
// Diagram ids can be bound to Donburi entities so systems receive the entity
// directly. Subscribe to [InteractionEventType] in your ECS systems.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	store.Bind(nodeID, entity)
//	editor.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
