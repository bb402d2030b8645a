// Package ecs mirrors a surprise scene into a [Donburi] world.
//
// [NewDonburiStore] returns a store that is both the scene's entity store and
// the stage's tracker: pointer interactions are published to
// [InteractionEventType], every revealable object becomes an entity carrying a
// [Revealable] component, and discoveries are published to
// [DiscoveryEventType].
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	st := stage.New(scene, stage.Options{Tracker: store, ...})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
