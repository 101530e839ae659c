package components

// Lifecycle is the life stage of a particle. Its numeric values follow the
// ordering Born < Living < Dying; Dead is zero so a zero Particle is dead.
type Lifecycle uint8

const (
	LifecycleDead   Lifecycle = 0
	LifecycleBorn   Lifecycle = 1
	LifecycleLiving Lifecycle = 2
	LifecycleDying  Lifecycle = 3
)

// String returns the lifecycle name.
func (l Lifecycle) String() string {
	switch l {
	case LifecycleDead:
		return "Dead"
	case LifecycleBorn:
		return "Born"
	case LifecycleLiving:
		return "Living"
	case LifecycleDying:
		return "Dying"
	}
	return "Unknown"
}

// Particle is a single simulated particle owned by one ParticleSystem pool.
//
// Velocity is derived once from Angle and Speed when the particle is created;
// afterwards only gravity changes VelocityY. Opacity is not clamped and drives
// the lifecycle transitions.
//
// This is a pure data component - it contains no behaviour beyond Alive.
type Particle struct {
	// Position (像素)
	X float64
	Y float64

	// Velocity (像素/秒)
	VelocityX float64
	VelocityY float64

	Angle float64 // Launch direction in degrees, fixed at birth
	Speed float64 // Launch speed in pixels/second
	Size  float64 // Diameter in pixels

	Spin     float64 // Rotation increment in degrees per frame
	Rotation float64 // Current rotation in degrees

	Opacity   float64
	Lifecycle Lifecycle

	Born     float64 // Creation timestamp (ms, emitter clock)
	Lifetime float64 // Age in ms at which a living particle starts dying
	Frame    int     // Frames rendered so far
}

// Alive reports whether the particle still takes part in per-frame processing.
func (p *Particle) Alive() bool {
	return p.Lifecycle >= LifecycleBorn
}
