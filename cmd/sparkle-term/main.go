// Command sparkle-term plays emitter presets in the terminal.
//
// Controls:
//
//	Click / Space     - Spawn the current preset
//	Left/Right Arrow  - Switch preset
//	r                 - Remove all emitters
//	t                 - Stop all emitters and let them drain
//	d                 - Toggle debug labels
//	Esc / Ctrl+C      - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/sparkle/internal/particle"
	"github.com/gonewx/sparkle/pkg/config"
	"github.com/gonewx/sparkle/pkg/ecs"
	"github.com/gonewx/sparkle/pkg/emitter"
	"github.com/gonewx/sparkle/pkg/game"
	"github.com/gonewx/sparkle/pkg/surface"
	"github.com/gonewx/sparkle/pkg/systems"
)

var (
	presetFlag = flag.String("preset", "", "Preset to start with (default: viewer startPreset)")
	logFlag    = flag.String("log", "", "Write logs to this file (default: discard)")
)

// TermViewer drives emitters on a tcell screen.
type TermViewer struct {
	screen   tcell.Screen
	surf     *surface.TermSurface
	emitters *systems.EmitterSystem
	library  *config.PresetLibrary
	viewer   *config.ViewerConfig

	names   []string
	current int
	debug   bool
}

// NewTermViewer loads presets and binds them to screen. The screen must
// already be initialised.
func NewTermViewer(screen tcell.Screen, viewer *config.ViewerConfig, library *config.PresetLibrary, start string) *TermViewer {
	v := &TermViewer{
		screen:   screen,
		surf:     surface.NewTermSurface(screen, float64(viewer.Terminal.CellWidth), float64(viewer.Terminal.CellHeight)),
		emitters: systems.NewEmitterSystem(ecs.NewEntityManager()),
		library:  library,
		viewer:   viewer,
		names:    library.Names(),
	}
	for i, name := range v.names {
		if name == start {
			v.current = i
		}
	}
	return v
}

// spawn starts the current preset at the given surface position.
func (v *TermViewer) spawn(x, y float64) {
	if len(v.names) == 0 {
		return
	}
	name := v.names[v.current]
	w, h := v.surf.Size()
	cfg, err := v.library.EmitterConfig(name, w, h)
	if err != nil {
		log.Printf("[TermViewer] Failed to spawn %s: %v", name, err)
		return
	}
	cfg.Position.X, cfg.Position.Y = x, y
	cfg.Debug = cfg.Debug || v.debug
	if cfg.MaxDelta == 0 {
		cfg.MaxDelta = v.viewer.MaxDelta
	}
	v.emitters.Spawn(name, emitter.New(v.surf, cfg))
	log.Printf("[TermViewer] Spawned %s at (%.0f, %.0f)", name, x, y)
}

// jump moves the selection by delta presets, wrapping, and spawns it.
func (v *TermViewer) jump(delta int) {
	n := len(v.names)
	if n == 0 {
		return
	}
	v.current = ((v.current+delta)%n + n) % n
	v.spawnCenter()
}

func (v *TermViewer) spawnCenter() {
	w, h := v.surf.Size()
	v.spawn(w/2, h/2)
}

// handleInput applies one event and reports whether to keep running.
func (v *TermViewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		switch ev.Key() {
		case tcell.KeyLeft:
			v.jump(-1)
		case tcell.KeyRight:
			v.jump(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				v.spawnCenter()
			case 'r':
				v.emitters.Clear()
			case 't':
				v.emitters.StopAll()
			case 'd':
				v.debug = !v.debug
			case 'q':
				return false
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			col, row := ev.Position()
			v.spawn((float64(col)+0.5)*v.surf.CellWidth, (float64(row)+0.5)*v.surf.CellHeight)
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// draw clears the screen, fires every emitter and shows the status line.
func (v *TermViewer) draw(nowMs float64) {
	v.screen.Clear()
	v.emitters.Fire(nowMs)

	v.drawStatus()
	v.screen.Show()
}

// drawStatus writes the status line on the last row.
func (v *TermViewer) drawStatus() {
	preset := "no presets"
	if len(v.names) > 0 {
		preset = fmt.Sprintf("%s (%d/%d)", v.names[v.current], v.current+1, len(v.names))
	}
	status := []rune(fmt.Sprintf(" %s  emitters %d  particles %d  [<-/-> preset, space spawn, t stop, r clear, d debug, esc quit]",
		preset, v.emitters.Count(), v.emitters.ParticleCount()))

	cols, rows := v.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		v.screen.SetContent(x, rows-1, r, nil, style)
	}
}

func (v *TermViewer) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !v.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			v.draw(float64(now.UnixMilli()))
		}
	}
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	viewer, err := config.LoadViewerConfig(config.ViewerConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	builtin, err := particle.LoadPresetFile(config.BuiltinPresetsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	presets := game.NewPresetManager(game.OpenStorage(game.AppName), builtin.Presets)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	screen.EnableMouse()

	start := *presetFlag
	if start == "" {
		start = viewer.StartPreset
	}
	v := NewTermViewer(screen, viewer, presets.Library(), start)
	v.spawnCenter()
	v.run()

	screen.Fini()
}
