package systems

import (
	"math"
	"math/rand/v2"

	"github.com/gonewx/sparkle/pkg/components"
)

// AttachFunc customises a freshly created particle. It runs after the
// randomized attributes are sampled and before velocity is derived, so it may
// override Angle or Speed.
type AttachFunc func(p *components.Particle)

// ParticleFactory samples new particles from an emitter configuration.
type ParticleFactory struct {
	rng    *rand.Rand
	attach AttachFunc
}

// NewParticleFactory creates a factory drawing from rng. A nil rng uses a
// randomly seeded source.
func NewParticleFactory(rng *rand.Rand) *ParticleFactory {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &ParticleFactory{rng: rng}
}

// SetAttach installs the hook applied to every created particle.
func (f *ParticleFactory) SetAttach(fn AttachFunc) {
	f.attach = fn
}

// Create builds a new particle born at bornMs.
func (f *ParticleFactory) Create(cfg components.EmitterConfig, bornMs float64) components.Particle {
	x, y := f.spawnPosition(cfg)

	p := components.Particle{
		X:         x,
		Y:         y,
		Born:      bornMs,
		Lifecycle: components.LifecycleBorn,
		Angle:     f.launchAngle(cfg),
		Speed:     f.sample(cfg.Speed),
		Size:      f.sample(cfg.Size),
		Spin:      f.sample(cfg.Spin),
		Lifetime:  f.sample(cfg.Lifetime) * 1000, // seconds to ms
	}

	if cfg.Spin.Configured() {
		p.Rotation = f.rng.Float64() * 360
	}

	if f.attach != nil {
		f.attach(&p)
	}

	ApplyVelocity(&p)
	return p
}

// ApplyVelocity derives the velocity from the particle's angle and speed.
func ApplyVelocity(p *components.Particle) {
	radians := p.Angle * math.Pi / 180
	p.VelocityX = math.Cos(radians) * p.Speed
	p.VelocityY = math.Sin(radians) * p.Speed
}

// randomBetween returns start plus a uniform whole-number offset that keeps
// the result inside [start, end]. Integer bounds give the inclusive integer
// range.
func (f *ParticleFactory) randomBetween(start, end float64) float64 {
	if end < start {
		return start
	}
	steps := math.Floor(end-start) + 1
	return start + math.Floor(f.rng.Float64()*steps)
}

func (f *ParticleFactory) sample(r components.Range) float64 {
	if !r.Randomized() {
		return r.Default
	}
	return f.randomBetween(r.Default, r.Max)
}

// launchAngle samples the direction inside the emitter cone.
func (f *ParticleFactory) launchAngle(cfg components.EmitterConfig) float64 {
	if cfg.Radius <= 0 {
		return cfg.Direction
	}
	half := cfg.Radius / 2
	return f.randomBetween(cfg.Direction-half, cfg.Direction+half)
}

// spawnPosition picks a point in the spawn rectangle centred on the emitter.
func (f *ParticleFactory) spawnPosition(cfg components.EmitterConfig) (float64, float64) {
	x, y := cfg.Position.X, cfg.Position.Y
	if cfg.Area.Width > 1 {
		x += f.rng.Float64()*cfg.Area.Width - cfg.Area.Width/2
	}
	if cfg.Area.Height > 1 {
		y += f.rng.Float64()*cfg.Area.Height - cfg.Area.Height/2
	}
	return x, y
}
