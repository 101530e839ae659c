package systems

import (
	"image/color"
	"math"
	"strconv"

	"github.com/gonewx/sparkle/pkg/components"
	"github.com/gonewx/sparkle/pkg/surface"
)

// debugFont is the font of the speed label drawn in debug mode.
const debugFont = "8px sans-serif"

// ParticleDrawer paints one particle in its local coordinate space: the
// surface origin is the particle centre and the surface is already rotated
// and faded.
type ParticleDrawer func(ctx surface.Context, p *components.Particle, fill color.Color)

// DrawCircle fills a circle with the particle's diameter.
func DrawCircle(ctx surface.Context, p *components.Particle, fill color.Color) {
	ctx.BeginPath()
	ctx.Arc(0, 0, p.Size/2, 0, 2*math.Pi)
	ctx.SetFillColor(fill)
	ctx.Fill()
}

// ParticleRenderer draws particles onto a surface. Each particle is drawn
// between Save and Restore so its transform and alpha never leak into the next.
type ParticleRenderer struct {
	ctx    surface.Context
	drawer ParticleDrawer
}

// NewParticleRenderer creates a renderer for ctx. A nil drawer uses DrawCircle.
func NewParticleRenderer(ctx surface.Context, drawer ParticleDrawer) *ParticleRenderer {
	if drawer == nil {
		drawer = DrawCircle
	}
	return &ParticleRenderer{ctx: ctx, drawer: drawer}
}

// Surface returns the surface the renderer paints on.
func (r *ParticleRenderer) Surface() surface.Context {
	return r.ctx
}

// Render draws p with the emitter's colour and debug setting.
func (r *ParticleRenderer) Render(p *components.Particle, cfg components.EmitterConfig) {
	if r.ctx == nil {
		return
	}
	fill := cfg.Color
	if fill == nil {
		fill = color.White
	}

	r.ctx.Save()
	r.ctx.SetGlobalAlpha(p.Opacity)
	r.ctx.Translate(p.X, p.Y)

	// The label stays upright beside the particle.
	if cfg.Debug {
		r.ctx.SetFont(debugFont)
		r.ctx.FillText(strconv.FormatFloat(p.Speed, 'f', -1, 64), p.Size+2, 0)
	}

	r.ctx.Rotate(p.Rotation * math.Pi / 180)
	r.drawer(r.ctx, p, fill)

	r.ctx.Restore()
}
