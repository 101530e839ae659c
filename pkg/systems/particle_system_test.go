package systems

import (
	"math"
	"testing"

	"github.com/gonewx/sparkle/pkg/components"
	"github.com/gonewx/sparkle/pkg/surface"
)

const frameMs = 1000.0 / 60

func newTestSystem(rec *surface.Recorder) *ParticleSystem {
	var renderer *ParticleRenderer
	if rec != nil {
		renderer = NewParticleRenderer(rec, nil)
	}
	return NewParticleSystem(newTestFactory(), renderer)
}

func TestAddParticles_OnePerFrameAt60PPS(t *testing.T) {
	ps := newTestSystem(nil)
	cfg := testConfig()
	cfg.ParticlesPerSecond = 60

	for i := 0; i < 120; i++ {
		frame := Frame{NowMs: float64(i) * frameMs, DeltaSeconds: frameMs / 1000}
		if got := ps.AddParticles(cfg, frame); got != 1 {
			t.Fatalf("frame %d: created %d particles, want 1", i, got)
		}
	}
	if ps.Len() != 120 {
		t.Errorf("Len() = %d, want 120", ps.Len())
	}
}

func TestAddParticles_Accumulates(t *testing.T) {
	ps := newTestSystem(nil)
	cfg := testConfig()
	cfg.ParticlesPerSecond = 10

	frame := Frame{DeltaSeconds: 0.04} // 0.4 particles per frame
	want := []int{0, 0, 1, 0, 0, 1}
	for i, w := range want {
		if got := ps.AddParticles(cfg, frame); got != w {
			t.Errorf("frame %d: created %d, want %d (pending %v)", i, got, w, ps.Pending())
		}
	}
}

func TestAddParticles_LargeDeltaEmitsBurst(t *testing.T) {
	ps := newTestSystem(nil)
	cfg := testConfig()
	cfg.ParticlesPerSecond = 60

	if got := ps.AddParticles(cfg, Frame{DeltaSeconds: 0.1}); got != 6 {
		t.Errorf("created %d, want 6", got)
	}
	if ps.Pending() != 0 {
		t.Errorf("Pending() = %v, want 0 after a burst", ps.Pending())
	}
}

func TestAddParticles_RespectsCap(t *testing.T) {
	ps := newTestSystem(nil)
	cfg := testConfig()
	cfg.ParticlesPerSecond = 600
	cfg.MaxParticles = 25

	for i := 0; i < 30; i++ {
		ps.AddParticles(cfg, Frame{NowMs: float64(i) * frameMs, DeltaSeconds: frameMs / 1000})
		if ps.Len() > cfg.MaxParticles {
			t.Fatalf("frame %d: Len() = %d exceeds MaxParticles %d", i, ps.Len(), cfg.MaxParticles)
		}
	}
	if ps.Len() != 25 {
		t.Errorf("Len() = %d, want 25", ps.Len())
	}
}

func TestAddParticles_HugeRateFillsToCap(t *testing.T) {
	tests := []struct {
		name string
		pps  float64
	}{
		{"1e30", 1e30},
		{"MaxFloat", math.MaxFloat64},
		{"Inf", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := newTestSystem(nil)
			cfg := testConfig()
			cfg.ParticlesPerSecond = tt.pps
			cfg.MaxParticles = 10

			if got := ps.AddParticles(cfg, Frame{DeltaSeconds: frameMs / 1000}); got != 10 {
				t.Errorf("created %d, want 10", got)
			}
			if ps.Len() != 10 {
				t.Errorf("Len() = %d, want 10", ps.Len())
			}
			if ps.Pending() != 0 {
				t.Errorf("Pending() = %v, want 0", ps.Pending())
			}
		})
	}
}

func TestAddParticles_NoEmission(t *testing.T) {
	tests := []struct {
		name string
		pps  float64
		dt   float64
		max  int
	}{
		{"ZeroRate", 0, 1, 100},
		{"NegativeRate", -5, 1, 100},
		{"ZeroDelta", 60, 0, 100},
		{"ZeroCap", 60, 1, 0},
		{"NaNRate", math.NaN(), 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := newTestSystem(nil)
			cfg := testConfig()
			cfg.ParticlesPerSecond = tt.pps
			cfg.MaxParticles = tt.max

			if got := ps.AddParticles(cfg, Frame{DeltaSeconds: tt.dt}); got != 0 {
				t.Errorf("created %d, want 0", got)
			}
			if ps.Len() != 0 {
				t.Errorf("Len() = %d, want 0", ps.Len())
			}
		})
	}
}

func TestRenderParticles_RendersBeforeUpdate(t *testing.T) {
	rec := surface.NewRecorder(800, 600)
	ps := newTestSystem(rec)
	cfg := testConfig()

	ps.AddParticle(cfg, 0)
	ps.RenderParticles(cfg, Frame{NowMs: frameMs, DeltaSeconds: frameMs / 1000})

	// The first draw uses the birth state: zero opacity at the spawn point.
	var alpha, tx, ty float64 = -1, -1, -1
	for _, op := range rec.Ops {
		switch op.Name {
		case "SetGlobalAlpha":
			alpha = op.Args[0]
		case "Translate":
			tx, ty = op.Args[0], op.Args[1]
		}
	}
	if alpha != 0 {
		t.Errorf("rendered alpha = %v, want 0 (pre-update state)", alpha)
	}
	if tx != 400 || ty != 300 {
		t.Errorf("rendered at (%v, %v), want (400, 300)", tx, ty)
	}

	p := ps.Particles()[0]
	if p.Opacity <= 0 || p.Frame != 1 {
		t.Errorf("after update Opacity = %v Frame = %d, want >0 and 1", p.Opacity, p.Frame)
	}
	if rec.Depth() != 0 {
		t.Errorf("Save/Restore unbalanced, depth %d", rec.Depth())
	}
}

func TestRenderParticles_ReapsDeadInOrder(t *testing.T) {
	ps := newTestSystem(nil)
	cfg := testConfig()
	for i := 0; i < 5; i++ {
		ps.AddParticle(cfg, float64(i))
	}

	// Particles born at 1 and 3 are about to die.
	ps.particles[1].Lifecycle = components.LifecycleDying
	ps.particles[1].Opacity = 0.01
	ps.particles[3].Lifecycle = components.LifecycleDying
	ps.particles[3].Opacity = 0.01

	ps.RenderParticles(cfg, Frame{NowMs: 10, DeltaSeconds: 0.001})

	got := ps.Particles()
	if len(got) != 3 {
		t.Fatalf("Len() = %d, want 3", len(got))
	}
	wantBorn := []float64{0, 2, 4}
	for i, p := range got {
		if p.Born != wantBorn[i] {
			t.Errorf("particle %d Born = %v, want %v", i, p.Born, wantBorn[i])
		}
	}
}

func TestRenderParticles_SkipsDead(t *testing.T) {
	rec := surface.NewRecorder(800, 600)
	ps := newTestSystem(rec)
	cfg := testConfig()
	ps.AddParticle(cfg, 0)
	ps.particles[0].Lifecycle = components.LifecycleDead

	ps.RenderParticles(cfg, Frame{DeltaSeconds: 0.01})

	if n := rec.Count("Save"); n != 0 {
		t.Errorf("dead particle rendered %d times, want 0", n)
	}
	if ps.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ps.Len())
	}
}

func TestParticleSystem_FullLifetime(t *testing.T) {
	ps := newTestSystem(nil)
	cfg := testConfig()
	cfg.Lifetime = components.Fixed(0.5)
	ps.AddParticle(cfg, 0)

	now := 0.0
	frames := 0
	for ps.Len() > 0 && frames < 1000 {
		now += frameMs
		ps.RenderParticles(cfg, Frame{NowMs: now, DeltaSeconds: frameMs / 1000})
		frames++
	}

	// 0.5s of life plus 20 frames of fade out.
	if frames < 30+20 || frames > 30+25 {
		t.Errorf("particle lived %d frames, want about 50", frames)
	}
}

func TestParticleSystem_Clear(t *testing.T) {
	ps := newTestSystem(nil)
	cfg := testConfig()
	cfg.ParticlesPerSecond = 10
	ps.AddParticles(cfg, Frame{DeltaSeconds: 0.05})
	ps.AddParticle(cfg, 0)

	ps.Clear()

	if ps.Len() != 0 || ps.Pending() != 0 {
		t.Errorf("after Clear Len() = %d Pending() = %v, want 0 and 0", ps.Len(), ps.Pending())
	}
}

func TestReap_ReturnsRemovedCount(t *testing.T) {
	ps := newTestSystem(nil)
	cfg := testConfig()
	for i := 0; i < 4; i++ {
		ps.AddParticle(cfg, 0)
	}
	ps.particles[0].Lifecycle = components.LifecycleDead
	ps.particles[2].Lifecycle = components.LifecycleDead

	if got := ps.Reap(); got != 2 {
		t.Errorf("Reap() = %d, want 2", got)
	}
	if ps.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ps.Len())
	}
}
