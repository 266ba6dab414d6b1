package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelPath := flag.String("level", "", "path to a level file (.yaml or .tmx); empty runs the built-in arena")
	watch := flag.Bool("watch", false, "reload the level when its file changes (needs -level)")
	debug := flag.Bool("debug", false, "draw velocity and contact state overlays")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("platformer")

	game, err := NewGame(*levelPath, *watch, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// watchDirOf is the directory the hot-reload watcher registers for a
// level file; fsnotify watches directories, not single files.
func watchDirOf(path string) string {
	return filepath.Dir(path)
}
