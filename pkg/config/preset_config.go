package config

import (
	"fmt"

	"github.com/gonewx/sparkle/internal/particle"
	"github.com/gonewx/sparkle/pkg/components"
)

// BuiltinPresetsPath is the embedded presets document.
const BuiltinPresetsPath = "data/presets.yaml"

// EmitterConfigFromPreset converts a preset into an emitter configuration for
// a width x height surface. Fields the preset leaves empty keep the defaults
// of components.DefaultEmitterConfig.
func EmitterConfigFromPreset(p particle.Preset, width, height float64) (components.EmitterConfig, error) {
	cfg := components.DefaultEmitterConfig(width, height)

	scalars := []struct {
		field string
		value string
		dst   *float64
	}{
		{"particlesPerSecond", p.ParticlesPerSecond, &cfg.ParticlesPerSecond},
		{"fireDuration", p.FireDuration, &cfg.FireDuration},
		{"radius", p.Radius, &cfg.Radius},
		{"direction", p.Direction, &cfg.Direction},
		{"gravity", p.Gravity, &cfg.Gravity},
		{"maxDelta", p.MaxDelta, &cfg.MaxDelta},
	}
	for _, s := range scalars {
		if s.value == "" {
			continue
		}
		v, err := particle.ParseValue(s.value)
		if err != nil {
			return cfg, fmt.Errorf("preset %s: %s: %w", p.Name, s.field, err)
		}
		*s.dst = v
	}

	if p.MaxParticles != "" {
		v, err := particle.ParseValue(p.MaxParticles)
		if err != nil {
			return cfg, fmt.Errorf("preset %s: maxParticles: %w", p.Name, err)
		}
		cfg.MaxParticles = int(v)
	}

	ranges := []struct {
		field string
		value string
		dst   *components.Range
	}{
		{"speed", p.Speed, &cfg.Speed},
		{"size", p.Size, &cfg.Size},
		{"lifetime", p.Lifetime, &cfg.Lifetime},
		{"spin", p.Spin, &cfg.Spin},
	}
	for _, r := range ranges {
		if r.value == "" {
			continue
		}
		def, max, err := particle.ParseRange(r.value)
		if err != nil {
			return cfg, fmt.Errorf("preset %s: %s: %w", p.Name, r.field, err)
		}
		*r.dst = components.Range{Default: def, Max: max}
	}

	if p.Area != "" {
		w, h, err := particle.ParsePair(p.Area)
		if err != nil {
			return cfg, fmt.Errorf("preset %s: area: %w", p.Name, err)
		}
		cfg.Area = components.Size{Width: w, Height: h}
	}

	if p.Color != "" {
		c, err := particle.ParseColor(p.Color)
		if err != nil {
			return cfg, fmt.Errorf("preset %s: color: %w", p.Name, err)
		}
		cfg.Color = c
	}

	cfg.Debug = p.Debug
	return cfg, nil
}

// PresetFromEmitterConfig converts cfg back into a preset. Position is not
// stored: presets are placed by the host.
func PresetFromEmitterConfig(name string, cfg components.EmitterConfig) particle.Preset {
	p := particle.Preset{
		Name:               name,
		ParticlesPerSecond: particle.FormatValue(cfg.ParticlesPerSecond),
		MaxParticles:       particle.FormatValue(float64(cfg.MaxParticles)),
		Radius:             particle.FormatValue(cfg.Radius),
		Direction:          particle.FormatValue(cfg.Direction),
		Speed:              particle.FormatRange(cfg.Speed.Default, cfg.Speed.Max),
		Size:               particle.FormatRange(cfg.Size.Default, cfg.Size.Max),
		Lifetime:           particle.FormatRange(cfg.Lifetime.Default, cfg.Lifetime.Max),
		Debug:              cfg.Debug,
	}
	if cfg.FireDuration != 0 {
		p.FireDuration = particle.FormatValue(cfg.FireDuration)
	}
	if cfg.Gravity != 0 {
		p.Gravity = particle.FormatValue(cfg.Gravity)
	}
	if cfg.Spin.Configured() {
		p.Spin = particle.FormatRange(cfg.Spin.Default, cfg.Spin.Max)
	}
	if cfg.Area.Width > 0 || cfg.Area.Height > 0 {
		p.Area = "[" + particle.FormatValue(cfg.Area.Width) + " " + particle.FormatValue(cfg.Area.Height) + "]"
	}
	if cfg.MaxDelta != 0 {
		p.MaxDelta = particle.FormatValue(cfg.MaxDelta)
	}
	if cfg.Color != nil {
		p.Color = particle.FormatColor(cfg.Color)
	}
	return p
}

// PresetLibrary is an ordered, name-indexed set of presets.
type PresetLibrary struct {
	presets []particle.Preset
	index   map[string]int
}

// NewPresetLibrary creates a library from presets. Later entries replace
// earlier ones with the same name but keep the earlier position.
func NewPresetLibrary(presets []particle.Preset) *PresetLibrary {
	lib := &PresetLibrary{index: make(map[string]int, len(presets))}
	for _, p := range presets {
		lib.Put(p)
	}
	return lib
}

// LoadPresetLibrary loads the presets document at path from the embedded data.
func LoadPresetLibrary(path string) (*PresetLibrary, error) {
	file, err := particle.LoadPresetFile(path)
	if err != nil {
		return nil, err
	}
	return NewPresetLibrary(file.Presets), nil
}

// Put adds or replaces a preset.
func (l *PresetLibrary) Put(p particle.Preset) {
	if i, ok := l.index[p.Name]; ok {
		l.presets[i] = p
		return
	}
	l.index[p.Name] = len(l.presets)
	l.presets = append(l.presets, p)
}

// Get returns the preset named name.
func (l *PresetLibrary) Get(name string) (particle.Preset, bool) {
	i, ok := l.index[name]
	if !ok {
		return particle.Preset{}, false
	}
	return l.presets[i], true
}

// Names returns preset names in library order.
func (l *PresetLibrary) Names() []string {
	names := make([]string, len(l.presets))
	for i, p := range l.presets {
		names[i] = p.Name
	}
	return names
}

// Len returns the number of presets.
func (l *PresetLibrary) Len() int {
	return len(l.presets)
}

// EmitterConfig resolves the named preset for a width x height surface.
func (l *PresetLibrary) EmitterConfig(name string, width, height float64) (components.EmitterConfig, error) {
	p, ok := l.Get(name)
	if !ok {
		return components.EmitterConfig{}, fmt.Errorf("unknown preset %q", name)
	}
	return EmitterConfigFromPreset(p, width, height)
}
