package emitter

import (
	"image/color"
	"math/rand/v2"

	"github.com/gonewx/sparkle/pkg/clock"
	"github.com/gonewx/sparkle/pkg/components"
	"github.com/gonewx/sparkle/pkg/surface"
	"github.com/gonewx/sparkle/pkg/systems"
)

// Builder configures an Emitter with chained setters:
//
//	e := emitter.NewBuilder(ctx).
//		ParticlesPerSecond(120).
//		Gravity(300).
//		Speed(150, 200).
//		Build()
//
// Every Builder starts from its own copy of the defaults, so builders never
// share state.
type Builder struct {
	ctx  surface.Context
	cfg  components.EmitterConfig
	opts []Option
}

// NewBuilder starts a configuration with defaults sized to ctx. A nil ctx
// builds a headless emitter positioned at the origin.
func NewBuilder(ctx surface.Context) *Builder {
	var w, h float64
	if ctx != nil {
		w, h = ctx.Size()
	}
	return &Builder{ctx: ctx, cfg: components.DefaultEmitterConfig(w, h)}
}

func (b *Builder) ParticlesPerSecond(n float64) *Builder {
	b.cfg.ParticlesPerSecond = n
	return b
}

func (b *Builder) Gravity(g float64) *Builder {
	b.cfg.Gravity = g
	return b
}

func (b *Builder) MaxParticles(n int) *Builder {
	b.cfg.MaxParticles = n
	return b
}

// FireDuration limits emission to the first seconds of the emitter's life.
func (b *Builder) FireDuration(seconds float64) *Builder {
	b.cfg.FireDuration = seconds
	return b
}

// Radius sets the launch cone width in degrees.
func (b *Builder) Radius(degrees float64) *Builder {
	b.cfg.Radius = degrees
	return b
}

// Direction sets the cone centre in degrees; 0 points right, 90 down.
func (b *Builder) Direction(degrees float64) *Builder {
	b.cfg.Direction = degrees
	return b
}

func (b *Builder) Position(x, y float64) *Builder {
	b.cfg.Position = components.Vec2{X: x, Y: y}
	return b
}

// Speed sets the launch speed. An optional max randomizes it over [def, max].
func (b *Builder) Speed(def float64, max ...float64) *Builder {
	b.cfg.Speed = rangeOf(def, max)
	return b
}

// Size sets the particle diameter.
func (b *Builder) Size(def float64, max ...float64) *Builder {
	b.cfg.Size = rangeOf(def, max)
	return b
}

// Lifetime sets how many seconds a particle lives before fading out.
func (b *Builder) Lifetime(def float64, max ...float64) *Builder {
	b.cfg.Lifetime = rangeOf(def, max)
	return b
}

// Spin sets the rotation in degrees added every frame.
func (b *Builder) Spin(def float64, max ...float64) *Builder {
	b.cfg.Spin = rangeOf(def, max)
	return b
}

// Area spreads spawn positions over a rectangle centred on the position.
func (b *Builder) Area(width, height float64) *Builder {
	b.cfg.Area = components.Size{Width: width, Height: height}
	return b
}

func (b *Builder) Debug(on bool) *Builder {
	b.cfg.Debug = on
	return b
}

// MaxDelta clamps the per-frame delta, in seconds.
func (b *Builder) MaxDelta(seconds float64) *Builder {
	b.cfg.MaxDelta = seconds
	return b
}

func (b *Builder) Color(c color.Color) *Builder {
	b.cfg.Color = c
	return b
}

// Config replaces the whole configuration, e.g. with one loaded from a preset.
func (b *Builder) Config(cfg components.EmitterConfig) *Builder {
	b.cfg = cfg
	return b
}

func (b *Builder) Clock(c clock.Clock) *Builder {
	b.opts = append(b.opts, WithClock(c))
	return b
}

func (b *Builder) Rand(rng *rand.Rand) *Builder {
	b.opts = append(b.opts, WithRand(rng))
	return b
}

func (b *Builder) Attach(fn systems.AttachFunc) *Builder {
	b.opts = append(b.opts, WithAttach(fn))
	return b
}

func (b *Builder) Drawer(d systems.ParticleDrawer) *Builder {
	b.opts = append(b.opts, WithDrawer(d))
	return b
}

// Build creates the emitter. The builder may be reused; later changes do not
// affect emitters already built.
func (b *Builder) Build() *Emitter {
	return New(b.ctx, b.cfg, b.opts...)
}

func rangeOf(def float64, max []float64) components.Range {
	r := components.Range{Default: def}
	if len(max) > 0 {
		r.Max = max[0]
	}
	return r
}
