package emitter

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/gonewx/sparkle/pkg/clock"
	"github.com/gonewx/sparkle/pkg/components"
	"github.com/gonewx/sparkle/pkg/surface"
)

const frameMs = 1000.0 / 60

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// step advances the clock by one frame and fires.
func step(e *Emitter, c *clock.ManualClock) {
	c.Advance(frameMs)
	e.Fire(c.Now())
}

func TestNewBuilder_Defaults(t *testing.T) {
	rec := surface.NewRecorder(800, 600)
	e := NewBuilder(rec).Clock(clock.NewManualClock(0)).Build()
	cfg := e.Config()

	if got := e.Position(); got.X != 400 || got.Y != 300 {
		t.Errorf("Position() = %v, want surface centre (400, 300)", got)
	}
	if cfg.Radius != 90 || cfg.Direction != 90 {
		t.Errorf("radius/direction = %v/%v, want 90/90", cfg.Radius, cfg.Direction)
	}
	if cfg.ParticlesPerSecond != 60 || cfg.MaxParticles != 999999 {
		t.Errorf("pps/max = %v/%d, want 60/999999", cfg.ParticlesPerSecond, cfg.MaxParticles)
	}
	if cfg.FireDuration != 0 || cfg.Gravity != 0 {
		t.Errorf("fireDuration/gravity = %v/%v, want 0/0", cfg.FireDuration, cfg.Gravity)
	}
	if cfg.Speed != components.Between(150, 160) || cfg.Size != components.Between(5, 8) || cfg.Lifetime != components.Between(0, 1) {
		t.Errorf("ranges = %v %v %v, want [150 160] [5 8] [0 1]", cfg.Speed, cfg.Size, cfg.Lifetime)
	}
	if !e.IsAlive() || !e.CreatingParticles() {
		t.Error("new emitter should be alive and creating")
	}
}

func TestBuilder_Setters(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	e := NewBuilder(nil).
		ParticlesPerSecond(120).
		Gravity(300).
		MaxParticles(50).
		FireDuration(2).
		Radius(30).
		Direction(-90).
		Position(10, 20).
		Speed(100, 200).
		Size(4).
		Lifetime(1, 3).
		Spin(2, 5).
		Area(40, 10).
		Debug(true).
		MaxDelta(0.25).
		Color(red).
		Build()

	want := components.EmitterConfig{
		Position:           components.Vec2{X: 10, Y: 20},
		Radius:             30,
		Direction:          -90,
		ParticlesPerSecond: 120,
		MaxParticles:       50,
		FireDuration:       2,
		Gravity:            300,
		Speed:              components.Between(100, 200),
		Size:               components.Fixed(4),
		Lifetime:           components.Between(1, 3),
		Spin:               components.Between(2, 5),
		Area:               components.Size{Width: 40, Height: 10},
		MaxDelta:           0.25,
		Color:              red,
		Debug:              true,
	}
	if got := e.Config(); got != want {
		t.Errorf("Config() = %+v, want %+v", got, want)
	}
}

func TestBuilder_IndependentInstances(t *testing.T) {
	rec := surface.NewRecorder(200, 100)
	a := NewBuilder(rec).Gravity(10).Build()
	b := NewBuilder(rec).Build()

	if a.Config().Gravity != 10 || b.Config().Gravity != 0 {
		t.Errorf("Gravity = %v/%v, want 10/0", a.Config().Gravity, b.Config().Gravity)
	}

	builder := NewBuilder(rec).Speed(10)
	first := builder.Build()
	builder.Speed(99)
	if first.Config().Speed.Default != 10 {
		t.Errorf("built emitter changed after builder update: speed %v", first.Config().Speed.Default)
	}
}

func TestFire_UnboundedStaysAlive(t *testing.T) {
	c := clock.NewManualClock(1000)
	e := NewBuilder(surface.NewRecorder(100, 100)).Clock(c).Rand(seeded()).Lifetime(0.1).Build()

	for i := 0; i < 600; i++ {
		step(e, c)
	}

	if !e.IsAlive() || !e.CreatingParticles() {
		t.Errorf("alive/creating = %v/%v, want true/true with no fire duration", e.IsAlive(), e.CreatingParticles())
	}
	if e.Frame() != 600 {
		t.Errorf("Frame() = %d, want 600", e.Frame())
	}
}

func TestFire_FireDurationThenDeath(t *testing.T) {
	c := clock.NewManualClock(0)
	e := NewBuilder(surface.NewRecorder(100, 100)).
		Clock(c).
		Rand(seeded()).
		FireDuration(0.5).
		Lifetime(0.1).
		Build()

	frames := 0
	for e.IsAlive() && frames < 2000 {
		step(e, c)
		frames++

		if e.Lifetime() <= 0.5 && !e.CreatingParticles() {
			t.Fatalf("emission closed early at age %vs", e.Lifetime())
		}
		if e.Lifetime() > 0.5 && e.CreatingParticles() {
			t.Fatalf("still creating at age %vs", e.Lifetime())
		}
	}

	if e.IsAlive() {
		t.Fatal("emitter never died")
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d at death, want 0", e.Len())
	}

	frame := e.Frame()
	for i := 0; i < 10; i++ {
		step(e, c)
	}
	if e.IsAlive() {
		t.Error("dead emitter came back to life")
	}
	if e.Frame() != frame {
		t.Errorf("Frame() = %d after firing a dead emitter, want %d", e.Frame(), frame)
	}
}

func TestFire_RespectsMaxParticles(t *testing.T) {
	c := clock.NewManualClock(0)
	e := NewBuilder(nil).Clock(c).Rand(seeded()).ParticlesPerSecond(5000).MaxParticles(40).Lifetime(5).Build()

	for i := 0; i < 120; i++ {
		step(e, c)
		if e.Len() > 40 {
			t.Fatalf("frame %d: Len() = %d exceeds 40", i, e.Len())
		}
	}
	if e.Len() != 40 {
		t.Errorf("Len() = %d, want pool filled to 40", e.Len())
	}
}

func TestFire_OneParticlePerFrame(t *testing.T) {
	c := clock.NewManualClock(0)
	e := NewBuilder(nil).Clock(c).Rand(seeded()).Lifetime(10).Build()

	for i := 1; i <= 30; i++ {
		step(e, c)
		if e.Len() != i {
			t.Fatalf("after %d frames Len() = %d, want %d", i, e.Len(), i)
		}
	}
}

func TestFire_FirstFrameHasNoDelta(t *testing.T) {
	c := clock.NewManualClock(500)
	e := NewBuilder(nil).Clock(c).Build()

	e.Fire(0)

	if e.DeltaSeconds() != 0 || e.Len() != 0 {
		t.Errorf("DeltaSeconds/Len = %v/%d, want 0/0 on an immediate first frame", e.DeltaSeconds(), e.Len())
	}
}

func TestFire_MaxDeltaClamp(t *testing.T) {
	tests := []struct {
		name     string
		maxDelta float64
		advance  float64
		want     float64
	}{
		{"NoClamp", 0, 2000, 2},
		{"Clamped", 0.1, 2000, 0.1},
		{"BelowClamp", 0.1, 50, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := clock.NewManualClock(0)
			e := NewBuilder(nil).Clock(c).MaxDelta(tt.maxDelta).Build()

			c.Advance(tt.advance)
			e.Fire(c.Now())

			if e.DeltaSeconds() != tt.want {
				t.Errorf("DeltaSeconds() = %v, want %v", e.DeltaSeconds(), tt.want)
			}
		})
	}
}

// backwardsClock steps back in time on every read after the first.
type backwardsClock struct{ now float64 }

func (b *backwardsClock) Now() float64 {
	v := b.now
	b.now -= 10
	return v
}

func TestFire_NegativeDeltaTreatedAsZero(t *testing.T) {
	e := New(nil, components.DefaultEmitterConfig(100, 100), WithClock(&backwardsClock{now: 1000}))

	e.Fire(0)

	if e.DeltaSeconds() != 0 {
		t.Errorf("DeltaSeconds() = %v, want 0", e.DeltaSeconds())
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}
}

func TestStop_DrainsThenDies(t *testing.T) {
	c := clock.NewManualClock(0)
	e := NewBuilder(nil).Clock(c).Rand(seeded()).Lifetime(0.2).Build()

	for i := 0; i < 30; i++ {
		step(e, c)
	}
	before := e.Len()
	if before == 0 {
		t.Fatal("expected live particles before Stop")
	}

	e.Stop()
	step(e, c)
	if e.CreatingParticles() {
		t.Error("CreatingParticles() = true after Stop")
	}
	if e.Len() > before {
		t.Errorf("pool grew after Stop: %d > %d", e.Len(), before)
	}

	for i := 0; i < 200 && e.IsAlive(); i++ {
		step(e, c)
	}
	if e.IsAlive() {
		t.Error("stopped emitter never died")
	}
}

func TestFire_NoEmissionConfigDies(t *testing.T) {
	c := clock.NewManualClock(0)
	e := NewBuilder(nil).Clock(c).ParticlesPerSecond(0).FireDuration(0.1).Build()

	for i := 0; i < 10; i++ {
		step(e, c)
	}

	if e.IsAlive() {
		t.Error("emitter with no emission should die once its window closes")
	}
}

func TestFire_RendersBalanced(t *testing.T) {
	rec := surface.NewRecorder(320, 240)
	c := clock.NewManualClock(0)
	e := NewBuilder(rec).Clock(c).Rand(seeded()).Debug(true).Spin(3, 6).Build()

	for i := 0; i < 20; i++ {
		step(e, c)
	}

	if rec.Count("Save") == 0 {
		t.Fatal("nothing rendered")
	}
	if rec.Count("Save") != rec.Count("Restore") || rec.Depth() != 0 {
		t.Errorf("Save/Restore unbalanced: %d/%d", rec.Count("Save"), rec.Count("Restore"))
	}
	if rec.MaxDepth() != 1 {
		t.Errorf("MaxDepth() = %d, want 1 (particles never nest)", rec.MaxDepth())
	}
	if rec.Count("FillText") != rec.Count("Save") {
		t.Errorf("debug labels = %d, want one per render (%d)", rec.Count("FillText"), rec.Count("Save"))
	}
}

func TestFire_DeterministicWithSeed(t *testing.T) {
	run := func() []components.Particle {
		c := clock.NewManualClock(0)
		e := NewBuilder(nil).Clock(c).Rand(seeded()).Spin(1, 4).Area(20, 20).Build()
		for i := 0; i < 10; i++ {
			step(e, c)
		}
		return e.Particles()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("pool sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestAttach_OverridesLaunch(t *testing.T) {
	c := clock.NewManualClock(0)
	e := NewBuilder(nil).Clock(c).Attach(func(p *components.Particle) {
		p.Angle = 0
		p.Speed = 60
	}).Build()

	step(e, c)

	ps := e.Particles()
	if len(ps) != 1 {
		t.Fatalf("Len() = %d, want 1", len(ps))
	}
	if ps[0].VelocityX != 60 || ps[0].VelocityY != 0 {
		t.Errorf("velocity = (%v, %v), want (60, 0)", ps[0].VelocityX, ps[0].VelocityY)
	}
}
