package components

import "image/color"

// Vec2 is a point in surface pixels.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height float64
}

// Range is a randomized per-particle attribute. Particles sample it over the
// inclusive integer range [Default, Max]. When Max is not positive, or is
// smaller than Default, the attribute is always Default.
type Range struct {
	Default float64 `yaml:"default"`
	Max     float64 `yaml:"max,omitempty"`
}

// Fixed returns a deterministic Range.
func Fixed(v float64) Range {
	return Range{Default: v}
}

// Between returns a Range sampled over [def, max].
func Between(def, max float64) Range {
	return Range{Default: def, Max: max}
}

// Randomized reports whether sampling the range is random.
func (r Range) Randomized() bool {
	return r.Max > 0 && r.Max >= r.Default
}

// Configured reports whether any part of the range is positive.
func (r Range) Configured() bool {
	return r.Default > 0 || r.Max > 0
}

// EmitterConfig is the immutable configuration of one emitter. A copy is taken
// when the emitter is built, so changing a config value after Build never
// affects a running emitter.
type EmitterConfig struct {
	// Emitter placement (发射器位置与方向)
	Position  Vec2    // Spawn origin
	Radius    float64 // Width of the launch cone in degrees (0 = exactly Direction)
	Direction float64 // Launch direction in degrees, 0 = right, 90 = down

	// Emission (发射控制)
	ParticlesPerSecond float64
	MaxParticles       int     // Pool cap; non-positive values disable emission
	FireDuration       float64 // Seconds during which particles are created (0 = forever)

	Gravity float64 // Vertical acceleration in pixels/second²

	// Per-particle attributes (粒子属性)
	Speed    Range // pixels/second
	Size     Range // diameter in pixels
	Lifetime Range // seconds
	Spin     Range // degrees per frame

	Area Size // Spawn rectangle centred on Position; ignored when both sides <= 1

	// MaxDelta clamps the per-frame delta in seconds. 0 keeps deltas as measured.
	MaxDelta float64

	Color color.Color // Fill colour used by the default drawer
	Debug bool        // Draw each particle's speed next to it
}

// Emitter defaults, taken per instance rather than shared between emitters.
const (
	DefaultRadius             = 90.0
	DefaultDirection          = 90.0
	DefaultParticlesPerSecond = 60.0
	DefaultMaxParticles       = 999999
)

// DefaultEmitterConfig returns the default configuration for an emitter placed
// at the centre of a width x height surface.
func DefaultEmitterConfig(width, height float64) EmitterConfig {
	return EmitterConfig{
		Position:           Vec2{X: width / 2, Y: height / 2},
		Radius:             DefaultRadius,
		Direction:          DefaultDirection,
		ParticlesPerSecond: DefaultParticlesPerSecond,
		MaxParticles:       DefaultMaxParticles,
		Speed:              Between(150, 160),
		Size:               Between(5, 8),
		Lifetime:           Between(0, 1),
		Color:              color.White,
	}
}

// FrameEmitter is the per-frame contract an emitter exposes to hosts that
// drive several emitters at once.
type FrameEmitter interface {
	Fire(timestamp float64)
	Stop()
	IsAlive() bool
	Len() int
	Position() Vec2
}

// EmitterComponent attaches a running emitter to an entity.
//
// This is a pure data component following ECS principles - it contains no methods.
type EmitterComponent struct {
	Emitter FrameEmitter
	Name    string // Preset or effect name, informational
}
