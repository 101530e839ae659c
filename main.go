package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/sparkle/pkg/config"
	"github.com/gonewx/sparkle/pkg/emitter"
	"github.com/gonewx/sparkle/pkg/surface/ebitensurface"
)

var (
	presetFlag  = flag.String("preset", "", "Preset to play (default: viewer startPreset)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

var errQuit = errors.New("quit requested")

// Game shows a single emitter and rebuilds it when it dies.
type Game struct {
	viewer  *config.ViewerConfig
	library *config.PresetLibrary
	preset  string

	surf    *ebitensurface.EbitenSurface
	emitter *emitter.Emitter
	debug   bool
}

// NewGame loads the embedded viewer config and presets.
func NewGame(preset string) (*Game, error) {
	viewer, err := config.LoadViewerConfig(config.ViewerConfigPath)
	if err != nil {
		return nil, err
	}
	library, err := config.LoadPresetLibrary(config.BuiltinPresetsPath)
	if err != nil {
		return nil, err
	}
	if preset == "" {
		preset = viewer.StartPreset
	}

	g := &Game{
		viewer:  viewer,
		library: library,
		preset:  preset,
		surf:    ebitensurface.New(viewer.Width, viewer.Height),
	}
	if err := g.rebuild(); err != nil {
		return nil, err
	}
	return g, nil
}

// rebuild replaces the emitter with a fresh one from the current preset.
func (g *Game) rebuild() error {
	w, h := g.surf.Size()
	cfg, err := g.library.EmitterConfig(g.preset, w, h)
	if err != nil {
		return err
	}
	if cfg.MaxDelta == 0 {
		cfg.MaxDelta = g.viewer.MaxDelta
	}
	cfg.Debug = cfg.Debug || g.debug

	g.emitter = emitter.New(g.surf, cfg)
	log.Printf("[Game] Playing preset %q", g.preset)
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
		return g.rebuild()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.emitter.Stop()
	}
	if !g.emitter.IsAlive() || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return g.rebuild()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.viewer.BackgroundColor())

	g.surf.SetTarget(screen)
	g.emitter.Fire(float64(time.Now().UnixMilli()))

	ebitenutil.DebugPrintAt(screen, "Space = Restart  S = Stop  D = Debug  Q = Quit", 10, 10)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewer.Width, g.viewer.Height
}

func main() {
	flag.Parse()

	game, err := NewGame(*presetFlag)
	if err != nil {
		log.Fatal("Failed to initialize game: ", err)
	}

	// 默认静音运行；如需调试日志，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	ebiten.SetWindowSize(game.viewer.Width, game.viewer.Height)
	ebiten.SetWindowTitle("sparkle")

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
