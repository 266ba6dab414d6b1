// levelcheck compiles level files and reports their collision geometry
// without starting the game. Exit status is non-zero when any file
// fails to compile, which makes it usable as a pre-commit check for
// level edits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cmoyates/platformer/level"
)

func main() {
	verbose := flag.Bool("v", false, "print every polygon, not just the summary")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: levelcheck [-v] level.yaml [level2.tmx ...]")
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		lvl, err := level.LoadFile(path)
		if err != nil {
			log.Printf("FAIL %s: %v", path, err)
			failed = true
			continue
		}
		report(path, lvl, *verbose)
	}
	if failed {
		os.Exit(1)
	}
}

func report(path string, lvl *level.Level, verbose bool) {
	edges := 0
	solid, holes := 0, 0
	for i := range lvl.Polygons {
		p := &lvl.Polygons[i]
		edges += p.EdgeCount()
		if p.Winding > 0 {
			solid++
		} else {
			holes++
		}
	}
	fmt.Printf("OK   %s: %dx%d cells @ %gpx, %d polygons (%d solid, %d holes), %d edges, spawn (%g, %g)\n",
		path, lvl.Width, lvl.Height, lvl.Unit, len(lvl.Polygons), solid, holes, edges,
		lvl.Spawn.X, lvl.Spawn.Y)

	if !verbose {
		return
	}
	for i := range lvl.Polygons {
		p := &lvl.Polygons[i]
		kind := "solid"
		if p.Winding < 0 {
			kind = "hole"
		}
		fmt.Printf("  polygon %d: %s, %d edges, area %.0f, bounds [%g %g %g %g]\n",
			i, kind, p.EdgeCount(), p.Area(), p.Bounds.L, p.Bounds.B, p.Bounds.R, p.Bounds.T)
	}
}
