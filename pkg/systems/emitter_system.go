package systems

import (
	"log"

	"github.com/gonewx/sparkle/pkg/components"
	"github.com/gonewx/sparkle/pkg/ecs"
)

// EmitterSystem drives a set of independent emitters held as entities.
//
// Every emitter is fired once per frame in creation order. Emitters that
// report they are no longer alive are destroyed after the pass, the same
// deferred cleanup ParticleSystem uses for particles.
type EmitterSystem struct {
	EntityManager *ecs.EntityManager
}

// NewEmitterSystem creates a new EmitterSystem instance.
func NewEmitterSystem(em *ecs.EntityManager) *EmitterSystem {
	return &EmitterSystem{EntityManager: em}
}

// Spawn registers e under name and returns its entity.
func (s *EmitterSystem) Spawn(name string, e components.FrameEmitter) ecs.EntityID {
	id := s.EntityManager.CreateEntity()
	pos := e.Position()
	s.EntityManager.AddComponent(id, &components.EmitterComponent{Emitter: e, Name: name})
	s.EntityManager.AddComponent(id, &components.PositionComponent{X: pos.X, Y: pos.Y})
	return id
}

// Fire fires every emitter and removes the ones that finished.
func (s *EmitterSystem) Fire(timestamp float64) {
	ids := ecs.GetEntitiesWith2[*components.EmitterComponent, *components.PositionComponent](s.EntityManager)

	for _, id := range ids {
		comp, ok := ecs.GetComponent[*components.EmitterComponent](s.EntityManager, id)
		if !ok || comp.Emitter == nil {
			s.EntityManager.DestroyEntity(id)
			continue
		}

		comp.Emitter.Fire(timestamp)

		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.EntityManager, id); ok {
			p := comp.Emitter.Position()
			pos.X, pos.Y = p.X, p.Y
		}

		if !comp.Emitter.IsAlive() {
			s.EntityManager.DestroyEntity(id)
		}
	}

	if removed := s.EntityManager.RemoveMarkedEntities(); removed > 0 {
		log.Printf("[EmitterSystem] Removed %d finished emitter(s), %d remaining", removed, s.EntityManager.EntityCount())
	}
}

// StopAll closes the emission window of every emitter. Each one is removed
// once its particles have played out.
func (s *EmitterSystem) StopAll() {
	for _, id := range ecs.GetEntitiesWith1[*components.EmitterComponent](s.EntityManager) {
		if comp, ok := ecs.GetComponent[*components.EmitterComponent](s.EntityManager, id); ok && comp.Emitter != nil {
			comp.Emitter.Stop()
		}
	}
}

// Count returns the number of emitters.
func (s *EmitterSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.EmitterComponent](s.EntityManager))
}

// ParticleCount returns the number of particles across all emitters.
func (s *EmitterSystem) ParticleCount() int {
	total := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EmitterComponent](s.EntityManager) {
		if comp, ok := ecs.GetComponent[*components.EmitterComponent](s.EntityManager, id); ok && comp.Emitter != nil {
			total += comp.Emitter.Len()
		}
	}
	return total
}

// Clear removes every emitter immediately.
func (s *EmitterSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.EmitterComponent](s.EntityManager) {
		s.EntityManager.DestroyEntity(id)
	}
	removed := s.EntityManager.RemoveMarkedEntities()
	log.Printf("[EmitterSystem] Cleared %d emitter(s)", removed)
}
