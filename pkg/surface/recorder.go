package surface

import "image/color"

// Op is one recorded drawing call.
type Op struct {
	Name  string
	Args  []float64
	Text  string
	Color color.Color
}

// Recorder is a Context that records calls instead of drawing. It is used by
// tests and by headless hosts that only need the particle simulation.
type Recorder struct {
	Width, Height float64
	Ops           []Op

	depth    int
	maxDepth int
}

// NewRecorder creates a Recorder reporting the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) add(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

// Size returns the configured size.
func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) Save() {
	r.depth++
	if r.depth > r.maxDepth {
		r.maxDepth = r.depth
	}
	r.add("Save")
}

func (r *Recorder) Restore() {
	r.depth--
	r.add("Restore")
}

func (r *Recorder) SetGlobalAlpha(alpha float64) { r.add("SetGlobalAlpha", alpha) }
func (r *Recorder) Translate(x, y float64)       { r.add("Translate", x, y) }
func (r *Recorder) Rotate(radians float64)       { r.add("Rotate", radians) }
func (r *Recorder) BeginPath()                   { r.add("BeginPath") }
func (r *Recorder) Fill()                        { r.add("Fill") }

func (r *Recorder) SetFillColor(c color.Color) {
	r.Ops = append(r.Ops, Op{Name: "SetFillColor", Color: c})
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.add("Arc", x, y, radius, startAngle, endAngle)
}

func (r *Recorder) SetFont(font string) {
	r.Ops = append(r.Ops, Op{Name: "SetFont", Text: font})
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.Ops = append(r.Ops, Op{Name: "FillText", Text: text, Args: []float64{x, y}})
}

// Depth returns the current Save nesting depth; 0 when balanced.
func (r *Recorder) Depth() int { return r.depth }

// MaxDepth returns the deepest Save nesting seen.
func (r *Recorder) MaxDepth() int { return r.maxDepth }

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.depth = 0
	r.maxDepth = 0
}
