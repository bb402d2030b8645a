package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/surprise"
	"github.com/phanxgames/surprise/reveal"
	"github.com/phanxgames/surprise/stage"
)

// InteractionEventType carries pointer events for nodes with an EntityID.
var InteractionEventType = events.NewEventType[surprise.InteractionEvent]()

// DiscoveryEventType carries one event per discovered object.
var DiscoveryEventType = events.NewEventType[stage.Discovery]()

// RevealableData is the ECS view of one revealable object.
type RevealableData struct {
	// SceneID is the EntityID of the object's scene node.
	SceneID    uint32
	Index      int
	Kind       reveal.Kind
	Discovered bool
}

// Revealable is the component attached to every registered object.
var Revealable = donburi.NewComponentType[RevealableData]()

var revealables = donburi.NewQuery(filter.Contains(Revealable))

// DonburiStore publishes scene interactions and object discoveries into a
// Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewDonburiStore creates a store backed by world. Published events are
// delivered by events.ProcessAllEvents or the event type's ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[uint32]donburi.Entity)}
}

// EmitEvent implements surprise.EntityStore.
func (s *DonburiStore) EmitEvent(event surprise.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// Register implements stage.Tracker by creating a Revealable entity.
func (s *DonburiStore) Register(sceneID uint32, index int, kind reveal.Kind) {
	e := s.world.Create(Revealable)
	Revealable.SetValue(s.world.Entry(e), RevealableData{SceneID: sceneID, Index: index, Kind: kind})
	s.entities[sceneID] = e
}

// EmitDiscovery implements stage.Tracker. The entity is marked discovered
// immediately; the event is queued.
func (s *DonburiStore) EmitDiscovery(d stage.Discovery) {
	if e, ok := s.entities[d.EntityID]; ok && s.world.Valid(e) {
		Revealable.Get(s.world.Entry(e)).Discovered = true
	}
	DiscoveryEventType.Publish(s.world, d)
}

// Entity returns the entity registered for a scene node's EntityID.
func (s *DonburiStore) Entity(sceneID uint32) (donburi.Entity, bool) {
	e, ok := s.entities[sceneID]
	return e, ok
}

// DiscoveredCount returns how many Revealable entities in world are
// discovered.
func DiscoveredCount(world donburi.World) int {
	n := 0
	revealables.Each(world, func(entry *donburi.Entry) {
		if Revealable.Get(entry).Discovered {
			n++
		}
	})
	return n
}
