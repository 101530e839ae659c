// Package main provides an emitter preset viewer for tuning particle effects.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--filter <keyword>    Initial filter by preset name
//	--preset <name>       Start with a specific preset
//	--auto-play           Spawn the next preset every 3 seconds
//	--data <dir>          Load data/ from a directory instead of the embedded files
//	--verbose             Enable logging
//
// Controls:
//
//	Mouse Click       - Spawn the current preset at the cursor
//	Left/Right Arrow  - Switch to previous/next preset
//	Home/End          - Jump to first/last preset
//	1-9               - Quick jump to preset by index
//	Space             - Spawn at screen center
//	P                 - Toggle pause (freeze the simulation)
//	F or /            - Enter search mode
//	R                 - Remove all emitters
//	T                 - Stop all emitters and let them drain
//	G                 - Toggle debug labels
//	[ / ]             - Rotate spawn direction by -15°/+15°
//	\                 - Reset direction offset
//	S                 - Save current preset (with offset) as a user preset
//	Delete            - Delete the current user preset
//	Q/Escape          - Quit
//
// Search Mode (press F or /):
//
//	Type letters      - Filter presets by name
//	Backspace         - Delete last character
//	Enter/Escape      - Exit search mode
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/sparkle/internal/particle"
	"github.com/gonewx/sparkle/pkg/clock"
	"github.com/gonewx/sparkle/pkg/config"
	"github.com/gonewx/sparkle/pkg/ecs"
	"github.com/gonewx/sparkle/pkg/embedded"
	"github.com/gonewx/sparkle/pkg/emitter"
	"github.com/gonewx/sparkle/pkg/game"
	"github.com/gonewx/sparkle/pkg/surface/ebitensurface"
	"github.com/gonewx/sparkle/pkg/systems"
)

var (
	filterFlag   = flag.String("filter", "", "Initial filter by name keyword")
	presetFlag   = flag.String("preset", "", "Start with specific preset name")
	autoPlayFlag = flag.Bool("auto-play", false, "Auto cycle through presets every 3 seconds")
	dataFlag     = flag.String("data", "", "Directory containing data/ to use instead of the embedded files")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

// ViewerGame implements ebiten.Game for the preset viewer
type ViewerGame struct {
	viewer        *config.ViewerConfig
	entityManager *ecs.EntityManager
	emitterSystem *systems.EmitterSystem
	presets       *game.PresetManager
	settings      *game.SettingsManager
	surf          *ebitensurface.EbitenSurface

	// The viewer clock only advances while unpaused, so emitters freeze
	// instead of seeing a large delta on resume.
	clock    *clock.ManualClock
	lastTick time.Time

	// Preset lists
	allNames      []string
	filteredNames []string
	currentIndex  int

	// Search mode
	searchMode  bool
	searchQuery string

	// Auto-play mode
	autoPlay      bool
	lastSpawnTime time.Time

	paused bool

	statusMessage string
}

// NewViewerGame creates a new viewer instance
func NewViewerGame() (*ViewerGame, error) {
	viewer, err := config.LoadViewerConfig(config.ViewerConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load viewer config: %w", err)
	}

	builtin, err := particle.LoadPresetFile(config.BuiltinPresetsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}

	storage := game.OpenStorage(game.AppName)
	settings := game.NewSettingsManager(storage)

	g := newViewerGame(viewer, game.NewPresetManager(storage, builtin.Presets), settings)
	g.autoPlay = *autoPlayFlag || settings.GetSettings().AutoPlay
	g.searchQuery = *filterFlag
	g.filteredNames = filterPresets(g.allNames, g.searchQuery)
	if len(g.filteredNames) == 0 {
		log.Printf("Warning: No presets match initial filter %q, showing all", g.searchQuery)
		g.searchQuery = ""
		g.filteredNames = g.allNames
	}

	start := *presetFlag
	if start == "" {
		start = settings.GetSettings().LastPreset
	}
	if start == "" {
		start = viewer.StartPreset
	}
	for i, name := range g.filteredNames {
		if name == start {
			g.currentIndex = i
			break
		}
	}

	log.Printf("Preset viewer initialized: %d presets, %d after filter", len(g.allNames), len(g.filteredNames))
	g.updateStatusMessage()
	g.spawnCurrent(g.center())

	return g, nil
}

// newViewerGame wires a viewer around already loaded presets and settings.
// It opens no window, so helpers can run without a display.
func newViewerGame(viewer *config.ViewerConfig, presets *game.PresetManager, settings *game.SettingsManager) *ViewerGame {
	em := ecs.NewEntityManager()
	g := &ViewerGame{
		viewer:        viewer,
		entityManager: em,
		emitterSystem: systems.NewEmitterSystem(em),
		presets:       presets,
		settings:      settings,
		surf:          ebitensurface.New(viewer.Width, viewer.Height),
		clock:         clock.NewManualClock(0),
		lastTick:      time.Now(),
		lastSpawnTime: time.Now(),
	}
	g.allNames = presets.Library().Names()
	g.filteredNames = g.allNames
	return g
}

// filterPresets returns names matching the query (case-insensitive substring match)
func filterPresets(allNames []string, query string) []string {
	if query == "" {
		return allNames
	}

	queryLower := strings.ToLower(query)
	filtered := make([]string, 0)
	for _, name := range allNames {
		if strings.Contains(strings.ToLower(name), queryLower) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

func (g *ViewerGame) center() (float64, float64) {
	return float64(g.viewer.Width) / 2, float64(g.viewer.Height) / 2
}

// Update handles input; the simulation itself runs in Draw
func (g *ViewerGame) Update() error {
	now := time.Now()
	if !g.paused {
		g.clock.Advance(float64(now.Sub(g.lastTick)) / float64(time.Millisecond))
	}
	g.lastTick = now

	if g.searchMode {
		g.updateSearchMode()
		return nil
	}
	return g.updateNormalMode()
}

// updateSearchMode handles input when in search mode
func (g *ViewerGame) updateSearchMode() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.searchMode = false
		g.statusMessage = fmt.Sprintf("Search: %q (%d results)", g.searchQuery, len(g.filteredNames))
		log.Printf("Exited search mode. Query: %q, Results: %d", g.searchQuery, len(g.filteredNames))
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if len(g.searchQuery) > 0 {
			g.searchQuery = g.searchQuery[:len(g.searchQuery)-1]
			g.applySearch()
		}
		return
	}

	runes := ebiten.AppendInputChars(nil)
	if len(runes) > 0 {
		for _, r := range runes {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
				g.searchQuery += string(r)
			}
		}
		g.applySearch()
	}
}

// applySearch filters the preset list and resets index
func (g *ViewerGame) applySearch() {
	g.filteredNames = filterPresets(g.allNames, g.searchQuery)
	g.currentIndex = 0
	log.Printf("Search query: %q, Results: %d", g.searchQuery, len(g.filteredNames))
}

// updateNormalMode handles input when in normal mode
func (g *ViewerGame) updateNormalMode() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.settings.SetAutoPlay(g.autoPlay)
		if err := g.settings.Save(); err != nil {
			log.Printf("Failed to save viewer settings: %v", err)
		}
		return errQuit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) || inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		g.searchMode = true
		g.statusMessage = "Search mode: Type to filter presets..."
		log.Println("Entered search mode")
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if g.paused {
			g.statusMessage = "PAUSED - Press P to resume"
		} else {
			g.statusMessage = "Resumed"
		}
		return nil
	}

	for i := 1; i <= 9; i++ {
		if inpututil.IsKeyJustPressed(ebiten.Key(int(ebiten.Key0) + i)) {
			if i-1 < len(g.filteredNames) {
				g.selectPreset(i - 1)
			}
			return nil
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.jumpPresets(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.jumpPresets(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.selectPreset(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		g.selectPreset(len(g.filteredNames) - 1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.emitterSystem.Clear()
		g.statusMessage = "Removed all emitters"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.emitterSystem.StopAll()
		g.statusMessage = "Stopped all emitters"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.settings.SetDebug(!g.settings.GetSettings().Debug)
		g.statusMessage = fmt.Sprintf("Debug labels: %v (new spawns)", g.settings.GetSettings().Debug)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.settings.RotateBy(-15.0)
		g.statusMessage = fmt.Sprintf("Direction offset: %.0f°", g.settings.GetSettings().AngleOffset)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.settings.RotateBy(15.0)
		g.statusMessage = fmt.Sprintf("Direction offset: %.0f°", g.settings.GetSettings().AngleOffset)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackslash) {
		g.settings.SetAngleOffset(0)
		g.statusMessage = "Direction offset reset to 0°"
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveCurrent()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		g.deleteCurrent()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.spawnCurrent(g.center())
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.spawnCurrent(float64(x), float64(y))
	}

	if g.autoPlay && !g.paused && time.Since(g.lastSpawnTime) > 3*time.Second {
		g.jumpPresets(1)
		g.lastSpawnTime = time.Now()
	}

	return nil
}

// Draw fires every emitter onto the screen
func (g *ViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.viewer.BackgroundColor())

	g.surf.SetTarget(screen)
	if !g.paused {
		g.emitterSystem.Fire(g.clock.Now())
	}

	g.drawUI(screen)
}

// drawUI draws the overlay UI with preset info and controls
func (g *ViewerGame) drawUI(screen *ebiten.Image) {
	if len(g.filteredNames) == 0 {
		ebitenutil.DebugPrintAt(screen, "No presets match current filter", 10, 10)
		return
	}

	name := g.filteredNames[g.currentIndex]
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Preset Viewer - %d/%d", g.currentIndex+1, len(g.filteredNames)), 10, 10)

	if g.searchQuery != "" {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Filter: %q (%d/%d presets)", g.searchQuery, len(g.filteredNames), len(g.allNames)), 10, 30)
	}

	ebitenutil.DebugPrintAt(screen, "Preset: "+name, 10, 50)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Emitters: %d  Particles: %d", g.emitterSystem.Count(), g.emitterSystem.ParticleCount()), 10, 70)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Direction Offset: %.0f°", g.settings.GetSettings().AngleOffset), 10, 90)

	if g.searchMode {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SEARCH: %s_", g.searchQuery), 10, 110)
		ebitenutil.DebugPrintAt(screen, "(Type to filter, Backspace to delete, Enter/Esc to exit)", 10, 130)
	} else if g.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 110)
	}

	controls := []string{
		"Navigation: <-/-> = Prev/Next  Home/End = First/Last  1-9 = Quick Jump  F = Search",
		"Actions:    Click/Space = Spawn  R = Remove  T = Stop  P = Pause  G = Debug  Q = Quit",
		"Presets:    [ ] = Direction -/+15°  \\ = Reset  S = Save  Delete = Delete user preset",
	}
	y := g.viewer.Height - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}
}

// Layout returns the viewer's logical screen size
func (g *ViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewer.Width, g.viewer.Height
}

// spawnCurrent spawns the selected preset at the given position
func (g *ViewerGame) spawnCurrent(x, y float64) {
	if len(g.filteredNames) == 0 {
		g.statusMessage = "No presets to spawn"
		return
	}
	name := g.filteredNames[g.currentIndex]

	w, h := g.surf.Size()
	cfg, err := g.presets.Library().EmitterConfig(name, w, h)
	if err != nil {
		log.Printf("Failed to create preset %s: %v", name, err)
		g.statusMessage = fmt.Sprintf("Error: %v", err)
		return
	}
	cfg.Position.X, cfg.Position.Y = x, y
	cfg.Direction += g.settings.GetSettings().AngleOffset
	cfg.Debug = cfg.Debug || g.settings.GetSettings().Debug
	if cfg.MaxDelta == 0 {
		cfg.MaxDelta = g.viewer.MaxDelta
	}

	g.emitterSystem.Spawn(name, emitter.New(g.surf, cfg, emitter.WithClock(g.clock)))
	log.Printf("Spawned preset: %s at (%.0f, %.0f) with direction offset %.0f°", name, x, y, g.settings.GetSettings().AngleOffset)
	g.statusMessage = fmt.Sprintf("Spawned: %s", name)
}

// saveCurrent stores the selected preset, with the direction offset applied,
// as a user preset
func (g *ViewerGame) saveCurrent() {
	if len(g.filteredNames) == 0 {
		return
	}
	name := g.filteredNames[g.currentIndex]

	w, h := g.surf.Size()
	cfg, err := g.presets.Library().EmitterConfig(name, w, h)
	if err != nil {
		g.statusMessage = fmt.Sprintf("Error: %v", err)
		return
	}
	cfg.Direction += g.settings.GetSettings().AngleOffset
	cfg.Debug = cfg.Debug || g.settings.GetSettings().Debug

	if err := g.presets.SavePreset(config.PresetFromEmitterConfig(name, cfg)); err != nil {
		log.Printf("Failed to save preset %s: %v", name, err)
		g.statusMessage = fmt.Sprintf("Error: %v", err)
		return
	}
	g.settings.SetAngleOffset(0)
	g.statusMessage = fmt.Sprintf("Saved preset: %s", name)
}

// deleteCurrent removes the selected user preset
func (g *ViewerGame) deleteCurrent() {
	if len(g.filteredNames) == 0 {
		return
	}
	name := g.filteredNames[g.currentIndex]

	if err := g.presets.DeletePreset(name); err != nil {
		g.statusMessage = fmt.Sprintf("Error: %v", err)
		return
	}

	// The selection stays at the same slot, or the last one if the list shrank.
	index := g.currentIndex
	g.allNames = g.presets.Library().Names()
	g.applySearch()
	if index >= len(g.filteredNames) {
		index = len(g.filteredNames) - 1
	}
	if index > 0 {
		g.currentIndex = index
	}
	g.statusMessage = fmt.Sprintf("Deleted user preset: %s", name)
}

// selectPreset selects a preset by index and spawns it at the center
func (g *ViewerGame) selectPreset(index int) {
	if index < 0 || index >= len(g.filteredNames) {
		return
	}
	g.currentIndex = index
	g.settings.SetLastPreset(g.filteredNames[index])
	g.updateStatusMessage()
	g.spawnCurrent(g.center())
}

// jumpPresets moves forward or backward by delta presets and spawns
func (g *ViewerGame) jumpPresets(delta int) {
	n := len(g.filteredNames)
	if n == 0 {
		return
	}
	g.selectPreset(((g.currentIndex+delta)%n + n) % n)
}

// updateStatusMessage updates the status message when switching presets
func (g *ViewerGame) updateStatusMessage() {
	if len(g.filteredNames) == 0 {
		g.statusMessage = "No presets available"
		return
	}
	name := g.filteredNames[g.currentIndex]
	g.statusMessage = fmt.Sprintf("Selected: %s", name)
	log.Printf("Current preset: %s (%d/%d)", name, g.currentIndex+1, len(g.filteredNames))
}

func main() {
	flag.Parse()

	if *dataFlag != "" {
		embedded.Init(os.DirFS(*dataFlag))
	}

	viewer, err := NewViewerGame()
	if err != nil {
		log.Fatal("Failed to initialize viewer: ", err)
	}

	// 默认静音运行；如需详细调试，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	ebiten.SetWindowSize(viewer.viewer.Width, viewer.viewer.Height)
	ebiten.SetWindowTitle("sparkle - Preset Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}

	log.Println("Preset viewer closed")
}
