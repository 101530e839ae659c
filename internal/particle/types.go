// Package particle defines the preset file format for emitters and parses
// its values.
//
// Presets are YAML documents whose numeric fields are strings, so a field
// can hold either a fixed value or a randomized range:
//   - Fixed value: "150"
//   - Range: "[150 160]" (sampled over the inclusive range)
package particle

// PresetFile is the root of a presets document.
type PresetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Preset is one named emitter configuration. Empty fields keep the emitter
// default.
type Preset struct {
	// Name is the unique identifier for this preset
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Emission (发射控制)
	ParticlesPerSecond string `yaml:"particlesPerSecond,omitempty"`
	MaxParticles       string `yaml:"maxParticles,omitempty"`
	FireDuration       string `yaml:"fireDuration,omitempty"` // seconds, 0 = forever

	// Launch (发射参数)
	Radius    string `yaml:"radius,omitempty"`    // cone width, degrees
	Direction string `yaml:"direction,omitempty"` // degrees, 90 = down
	Gravity   string `yaml:"gravity,omitempty"`   // pixels/second²

	// Particle attributes (粒子属性), fixed or ranged
	Speed    string `yaml:"speed,omitempty"`
	Size     string `yaml:"size,omitempty"`
	Lifetime string `yaml:"lifetime,omitempty"` // seconds
	Spin     string `yaml:"spin,omitempty"`     // degrees per frame

	Area     string `yaml:"area,omitempty"` // "[width height]"
	MaxDelta string `yaml:"maxDelta,omitempty"`
	Color    string `yaml:"color,omitempty"` // "#rrggbb" or "#rrggbbaa"
	Debug    bool   `yaml:"debug,omitempty"`
}
