package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/gonewx/sparkle/pkg/components"
	"github.com/gonewx/sparkle/pkg/surface"
)

func opNames(ops []surface.Op) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

func TestRender_CallSequence(t *testing.T) {
	rec := surface.NewRecorder(100, 100)
	r := NewParticleRenderer(rec, nil)
	p := &components.Particle{X: 10, Y: 20, Size: 8, Rotation: 90, Opacity: 0.5}
	cfg := testConfig()
	cfg.Color = color.RGBA{R: 255, A: 255}

	r.Render(p, cfg)

	want := []string{"Save", "SetGlobalAlpha", "Translate", "Rotate", "BeginPath", "Arc", "SetFillColor", "Fill", "Restore"}
	got := opNames(rec.Ops)
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ops = %v, want %v", got, want)
		}
	}

	if a := rec.Ops[1].Args[0]; a != 0.5 {
		t.Errorf("alpha = %v, want 0.5", a)
	}
	if rad := rec.Ops[3].Args[0]; math.Abs(rad-math.Pi/2) > 1e-12 {
		t.Errorf("rotation = %v rad, want pi/2", rad)
	}
	if radius := rec.Ops[5].Args[2]; radius != 4 {
		t.Errorf("arc radius = %v, want 4 (half the size)", radius)
	}
	if c := rec.Ops[6].Color; c != cfg.Color {
		t.Errorf("fill colour = %v, want %v", c, cfg.Color)
	}
}

func TestRender_DebugLabel(t *testing.T) {
	rec := surface.NewRecorder(100, 100)
	r := NewParticleRenderer(rec, nil)
	p := &components.Particle{Size: 6, Speed: 152, Opacity: 1}
	cfg := testConfig()
	cfg.Debug = true

	r.Render(p, cfg)

	var font, text string
	var tx float64
	for _, op := range rec.Ops {
		switch op.Name {
		case "SetFont":
			font = op.Text
		case "FillText":
			text, tx = op.Text, op.Args[0]
		}
	}
	if font != "8px sans-serif" {
		t.Errorf("font = %q, want %q", font, "8px sans-serif")
	}
	if text != "152" {
		t.Errorf("label = %q, want %q", text, "152")
	}
	if tx != 8 {
		t.Errorf("label x = %v, want size+2 = 8", tx)
	}
	if rec.Ops[len(rec.Ops)-1].Name != "Restore" {
		t.Error("label must be drawn before Restore")
	}
}

func TestRender_DebugLabelUnrotated(t *testing.T) {
	rec := surface.NewRecorder(100, 100)
	r := NewParticleRenderer(rec, nil)
	p := &components.Particle{X: 30, Y: 40, Size: 6, Speed: 150, Rotation: 90, Opacity: 1}
	cfg := testConfig()
	cfg.Debug = true

	r.Render(p, cfg)

	textAt, rotateAt := -1, -1
	for i, op := range rec.Ops {
		switch op.Name {
		case "FillText":
			textAt = i
		case "Rotate":
			rotateAt = i
		}
	}
	if textAt < 0 || rotateAt < 0 {
		t.Fatalf("ops = %v, want both FillText and Rotate", opNames(rec.Ops))
	}
	if textAt > rotateAt {
		t.Errorf("FillText at op %d after Rotate at op %d; label would spin with the particle", textAt, rotateAt)
	}

	// Replay the transforms preceding the label: it lands at (x+size+2, y).
	s := surface.NewStateStack()
	for _, op := range rec.Ops[:textAt] {
		switch op.Name {
		case "Translate":
			s.Translate(op.Args[0], op.Args[1])
		case "Rotate":
			s.Rotate(op.Args[0])
		}
	}
	label := rec.Ops[textAt]
	lx, ly, _ := s.Project(label.Args[0], label.Args[1], 0)
	if lx != 38 || ly != 40 {
		t.Errorf("label position = (%v, %v), want (38, 40)", lx, ly)
	}
}

func TestRender_CustomDrawer(t *testing.T) {
	rec := surface.NewRecorder(100, 100)
	called := 0
	r := NewParticleRenderer(rec, func(ctx surface.Context, p *components.Particle, fill color.Color) {
		called++
		ctx.FillText("x", 0, 0)
	})

	r.Render(&components.Particle{Opacity: 1}, testConfig())

	if called != 1 {
		t.Errorf("drawer called %d times, want 1", called)
	}
	if rec.Count("Arc") != 0 {
		t.Error("default circle drawn despite custom drawer")
	}
	if rec.Depth() != 0 {
		t.Errorf("Save/Restore unbalanced, depth %d", rec.Depth())
	}
}

func TestRender_NilColourFallsBackToWhite(t *testing.T) {
	rec := surface.NewRecorder(100, 100)
	r := NewParticleRenderer(rec, nil)
	cfg := testConfig()
	cfg.Color = nil

	r.Render(&components.Particle{Opacity: 1, Size: 2}, cfg)

	for _, op := range rec.Ops {
		if op.Name == "SetFillColor" && op.Color != color.White {
			t.Errorf("fill colour = %v, want white", op.Color)
		}
	}
}
