package systems

import "github.com/gonewx/sparkle/pkg/components"

// ParticleAge returns how long ago p was born, in milliseconds.
func ParticleAge(p *components.Particle, nowMs float64) float64 {
	return nowMs - p.Born
}

// AdvanceLifecycle applies at most one lifecycle transition to p and returns
// the resulting state.
//
//	Born   -> Living  once opacity >= 1
//	Living -> Dying   once age >= lifetime
//	Dying  -> Dead    once opacity <= 0
//
// Dead is terminal.
func AdvanceLifecycle(p *components.Particle, nowMs float64) components.Lifecycle {
	switch p.Lifecycle {
	case components.LifecycleBorn:
		if p.Opacity >= 1 {
			p.Lifecycle = components.LifecycleLiving
		}
	case components.LifecycleLiving:
		if ParticleAge(p, nowMs) >= p.Lifetime {
			p.Lifecycle = components.LifecycleDying
		}
	case components.LifecycleDying:
		if p.Opacity <= 0 {
			p.Lifecycle = components.LifecycleDead
		}
	}
	return p.Lifecycle
}
