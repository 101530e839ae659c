// Package emitter is the public entry point of the particle engine. An
// Emitter owns one particle pool and advances it once per call to Fire.
package emitter

import (
	"log"
	"math/rand/v2"

	"github.com/gonewx/sparkle/pkg/clock"
	"github.com/gonewx/sparkle/pkg/components"
	"github.com/gonewx/sparkle/pkg/surface"
	"github.com/gonewx/sparkle/pkg/systems"
)

// Emitter emits, simulates and renders particles from one configuration.
//
// The host calls Fire once per animation frame. The emitter reads its own
// clock, so the timestamp passed to Fire only triggers the frame. Once the
// emission window has closed and the pool is empty the emitter is dead and
// Fire does nothing.
//
// An Emitter is not safe for concurrent use.
type Emitter struct {
	cfg   components.EmitterConfig
	clock clock.Clock

	system   *systems.ParticleSystem
	factory  *systems.ParticleFactory
	renderer *systems.ParticleRenderer

	rng    *rand.Rand
	attach systems.AttachFunc
	drawer systems.ParticleDrawer

	startMs float64 // Clock reading at construction
	pastMs  float64 // Clock reading of the previous frame

	deltaSeconds float64
	lifetime     float64 // Emitter age in seconds
	frame        int
	alive        bool
	creating     bool
	stopped      bool
}

// Option customises an Emitter at construction.
type Option func(*Emitter)

// WithClock sets the time source. The default is a SystemClock.
func WithClock(c clock.Clock) Option {
	return func(e *Emitter) { e.clock = c }
}

// WithRand sets the random source used to sample particles.
func WithRand(rng *rand.Rand) Option {
	return func(e *Emitter) { e.rng = rng }
}

// WithAttach installs a hook run on every new particle before its velocity
// is derived.
func WithAttach(fn systems.AttachFunc) Option {
	return func(e *Emitter) { e.attach = fn }
}

// WithDrawer replaces the default filled-circle drawer.
func WithDrawer(d systems.ParticleDrawer) Option {
	return func(e *Emitter) { e.drawer = d }
}

// New creates an emitter drawing onto ctx with a copy of cfg. A nil ctx runs
// the simulation without drawing.
func New(ctx surface.Context, cfg components.EmitterConfig, opts ...Option) *Emitter {
	e := &Emitter{
		cfg:      cfg,
		alive:    true,
		creating: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = clock.NewSystemClock()
	}

	e.factory = systems.NewParticleFactory(e.rng)
	e.factory.SetAttach(e.attach)
	if ctx != nil {
		e.renderer = systems.NewParticleRenderer(ctx, e.drawer)
	}
	e.system = systems.NewParticleSystem(e.factory, e.renderer)

	e.startMs = e.clock.Now()
	e.pastMs = e.startMs
	return e
}

// Fire advances the emitter by one frame.
func (e *Emitter) Fire(timestamp float64) {
	if !e.alive {
		return
	}

	now := e.clock.Now()

	e.deltaSeconds = (now - e.pastMs) / 1000
	if e.deltaSeconds < 0 {
		e.deltaSeconds = 0
	}
	if e.cfg.MaxDelta > 0 && e.deltaSeconds > e.cfg.MaxDelta {
		e.deltaSeconds = e.cfg.MaxDelta
	}

	e.lifetime = (now - e.startMs) / 1000

	switch {
	case e.stopped:
		e.creating = false
	case e.cfg.FireDuration > 0:
		e.creating = e.cfg.FireDuration >= e.lifetime
	}

	frame := systems.Frame{NowMs: now, DeltaSeconds: e.deltaSeconds}

	if e.system.Len() < e.cfg.MaxParticles && e.creating {
		e.system.AddParticles(e.cfg, frame)
	}

	e.system.RenderParticles(e.cfg, frame)

	if !e.creating && e.system.Len() == 0 {
		e.alive = false
		log.Printf("[Emitter] Finished at (%.0f, %.0f) after %.2fs, %d frames", e.cfg.Position.X, e.cfg.Position.Y, e.lifetime, e.frame+1)
	}

	e.frame++
	e.pastMs = now
}

// Stop closes the emission window. Live particles play out and the emitter
// dies once the pool is empty.
func (e *Emitter) Stop() {
	e.stopped = true
	e.creating = false
}

// Position returns the spawn origin.
func (e *Emitter) Position() components.Vec2 { return e.cfg.Position }

// IsAlive reports whether the emitter still has work to do.
func (e *Emitter) IsAlive() bool { return e.alive }

// CreatingParticles reports whether the emission window is open.
func (e *Emitter) CreatingParticles() bool { return e.creating }

// Lifetime returns the emitter age in seconds as of the last Fire.
func (e *Emitter) Lifetime() float64 { return e.lifetime }

// DeltaSeconds returns the delta used by the last Fire.
func (e *Emitter) DeltaSeconds() float64 { return e.deltaSeconds }

// Len returns the number of particles in the pool.
func (e *Emitter) Len() int { return e.system.Len() }

// Particles returns a snapshot of the pool.
func (e *Emitter) Particles() []components.Particle { return e.system.Particles() }

// Config returns the emitter's configuration.
func (e *Emitter) Config() components.EmitterConfig { return e.cfg }

// Frame returns how many frames have been fired.
func (e *Emitter) Frame() int { return e.frame }

var _ components.FrameEmitter = (*Emitter)(nil)
