package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/cmoyates/platformer/common"
	"github.com/cmoyates/platformer/level"
	"github.com/cmoyates/platformer/levels"
	"github.com/cmoyates/platformer/obj"
)

type Game struct {
	frames int

	input  *obj.Input
	player *obj.Player
	level  *level.Level

	// levelPath is the on-disk source of the current level, empty when
	// running an embedded level. Hot reload recompiles from it.
	levelPath string
	watcher   *level.Watcher

	paused  bool
	pauseUI *ebitenui.UI
	quit    bool

	debug bool
}

func NewGame(levelPath string, watch, debug bool) (*Game, error) {
	var lvl *level.Level
	var err error
	if levelPath != "" {
		lvl, err = level.LoadFile(levelPath)
	} else {
		lvl, err = levels.Load(levels.DefaultName)
	}
	if err != nil {
		return nil, err
	}

	input := obj.NewInput()
	g := &Game{
		input:     input,
		player:    obj.NewPlayer(lvl, input),
		level:     lvl,
		levelPath: levelPath,
		debug:     debug,
	}
	g.pauseUI = NewPauseUI(g)

	if watch && levelPath != "" {
		w, err := level.NewWatcher(watchDirOf(levelPath))
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", levelPath, err)
		}
		g.watcher = w
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		g.Close()
		return ebiten.Termination
	}
	g.frames++

	g.input.Update()
	if g.input.PausePressed {
		g.paused = !g.paused
	}

	g.pollReload()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		fmt.Println("respawn requested")
		g.player.Respawn()
	}

	g.player.Update(1)
	return nil
}

// pollReload drains any pending level-file change without blocking the
// game loop. A level that fails to compile is logged and the running
// level stays in place.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case path, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		lvl, err := level.LoadFile(path)
		if err != nil {
			log.Printf("reload %s: %v", path, err)
			return
		}
		fmt.Println("reloaded level", path)
		g.level = lvl
		g.player.SetLevel(lvl)
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("level watcher: %v", err)
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawLevel(screen, g.level)
	g.player.Draw(screen)
	if g.debug {
		g.player.DrawVelocity(screen)
		g.drawDebug(screen)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// drawLevel strokes every polygon edge, colored by what the loop
// encloses: solid loops in white, holes in slate gray.
func drawLevel(screen *ebiten.Image, lvl *level.Level) {
	for i := range lvl.Polygons {
		p := &lvl.Polygons[i]
		col := colornames.White
		if p.Winding < 0 {
			col = colornames.Slategray
		}
		for j := 1; j < len(p.Points); j++ {
			a, b := p.Points[j-1], p.Points[j]
			vector.StrokeLine(screen,
				float32(a.X), float32(a.Y),
				float32(b.X), float32(b.Y),
				1, col, true)
		}
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))

	b := &g.player.Body
	c := &g.player.Contact
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"pos (%.1f, %.1f)  vel (%.2f, %.2f)\nnormal (%.2f, %.2f)  wall %d\nground %.0f  wall %.0f  buffer %.0f",
		b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y,
		c.Normal.X, c.Normal.Y, c.WallSide(),
		c.GroundedTimer, c.WallTimer, g.player.JumpBufferTimer(),
	), 0, 16)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// Close releases the watcher. Safe to call more than once.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close watcher: %v", err)
		}
	}
}
