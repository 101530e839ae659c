package systems

import (
	"math"

	"github.com/gonewx/sparkle/pkg/components"
)

// emissionEpsilon absorbs float error in the accumulated emission count, so
// 60 particles/s at 1/60 s frames yields exactly one particle per frame.
const emissionEpsilon = 1e-9

// Frame carries the timing of one emitter update.
type Frame struct {
	NowMs        float64 // Emitter clock reading for this frame
	DeltaSeconds float64 // Time since the previous frame
}

// ParticleSystem owns one emitter's particle pool.
//
// Each frame runs in two phases:
//  1. AddParticles: throttled creation bounded by MaxParticles
//  2. RenderParticles: render, integrate and advance every live particle,
//     then reap dead particles in a separate pass
//
// The pool is not safe for concurrent use; an emitter drives it from one
// goroutine.
type ParticleSystem struct {
	particles []components.Particle
	factory   *ParticleFactory
	renderer  *ParticleRenderer

	// numNewParticles accumulates fractional emission across frames.
	numNewParticles float64
}

// NewParticleSystem creates an empty pool. A nil renderer simulates without
// drawing.
func NewParticleSystem(factory *ParticleFactory, renderer *ParticleRenderer) *ParticleSystem {
	if factory == nil {
		factory = NewParticleFactory(nil)
	}
	return &ParticleSystem{
		factory:  factory,
		renderer: renderer,
	}
}

// AddParticles accumulates ParticlesPerSecond * delta and, once at least one
// whole particle is owed, creates floor(accumulated) particles and resets the
// accumulator. Creation stops at MaxParticles. It returns how many particles
// were created.
func (ps *ParticleSystem) AddParticles(cfg components.EmitterConfig, frame Frame) int {
	if cfg.ParticlesPerSecond <= 0 || frame.DeltaSeconds <= 0 {
		return 0
	}

	ps.numNewParticles += cfg.ParticlesPerSecond * frame.DeltaSeconds
	if math.IsNaN(ps.numNewParticles) {
		ps.numNewParticles = 0
		return 0
	}
	if ps.numNewParticles+emissionEpsilon < 1 {
		return 0
	}

	// Clamp in float space so huge or infinite rates fill the pool instead
	// of overflowing the int conversion.
	owed := math.Floor(ps.numNewParticles + emissionEpsilon)
	ps.numNewParticles = 0

	room := cfg.MaxParticles - len(ps.particles)
	if room <= 0 {
		return 0
	}
	count := room
	if owed < float64(room) {
		count = int(owed)
	}

	created := 0
	for ; created < count; created++ {
		ps.AddParticle(cfg, frame.NowMs)
	}
	return created
}

// AddParticle creates one particle born at bornMs, ignoring the cap.
func (ps *ParticleSystem) AddParticle(cfg components.EmitterConfig, bornMs float64) {
	ps.particles = append(ps.particles, ps.factory.Create(cfg, bornMs))
}

// RenderParticles renders every live particle with its current state, then
// integrates it and advances its lifecycle, and finally reaps dead particles.
func (ps *ParticleSystem) RenderParticles(cfg components.EmitterConfig, frame Frame) {
	for i := range ps.particles {
		p := &ps.particles[i]
		if !p.Alive() {
			continue
		}

		if ps.renderer != nil {
			ps.renderer.Render(p, cfg)
		}
		Integrate(p, frame.DeltaSeconds, cfg.Gravity)
		AdvanceLifecycle(p, frame.NowMs)
		p.Frame++
	}

	// Separate pass so the pool is never resized while it is iterated.
	ps.Reap()
}

// Reap removes every dead particle, keeping the survivors in order, and
// returns how many were removed.
func (ps *ParticleSystem) Reap() int {
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		if p.Alive() {
			alive = append(alive, p)
		}
	}
	removed := len(ps.particles) - len(alive)

	// Zero the tail of the backing array.
	clear(ps.particles[len(alive):])
	ps.particles = alive
	return removed
}

// Len returns the pool size.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Particles returns a copy of the pool.
func (ps *ParticleSystem) Particles() []components.Particle {
	out := make([]components.Particle, len(ps.particles))
	copy(out, ps.particles)
	return out
}

// Pending returns the accumulated fractional emission.
func (ps *ParticleSystem) Pending() float64 {
	return ps.numNewParticles
}

// Clear drops every particle and the emission carry-over.
func (ps *ParticleSystem) Clear() {
	clear(ps.particles)
	ps.particles = ps.particles[:0]
	ps.numNewParticles = 0
}
