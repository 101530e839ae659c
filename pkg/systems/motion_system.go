package systems

import "github.com/gonewx/sparkle/pkg/components"

// Opacity steps applied once per frame.
const (
	OpacityFadeIn  = 0.2
	OpacityFadeOut = 0.05
)

// Integrate advances p by deltaSeconds.
//
// Position and gravity are scaled by the delta. Spin is a per-frame increment
// and is not. The opacity step depends on the current lifecycle, and
// AdvanceLifecycle reads the stepped opacity right after.
func Integrate(p *components.Particle, deltaSeconds, gravity float64) {
	p.X += p.VelocityX * deltaSeconds
	p.Y += p.VelocityY * deltaSeconds

	p.VelocityY += gravity * deltaSeconds

	p.Rotation += p.Spin

	switch p.Lifecycle {
	case components.LifecycleBorn:
		p.Opacity += OpacityFadeIn
	case components.LifecycleLiving:
	case components.LifecycleDying:
		p.Opacity -= OpacityFadeOut
	}
}
