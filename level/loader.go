package level

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/cmoyates/platformer/common"
)

// Def is the on-disk YAML shape of a level.
type Def struct {
	Name string `yaml:"name"`
	// Unit is the cell size in world pixels; defaults to common.TileSize.
	Unit float64 `yaml:"unit"`
	// Spawn is the body's starting cell as [column, row].
	Spawn []int `yaml:"spawn"`
	Grid  [][]int `yaml:"grid"`
}

// Parse decodes a YAML level definition and compiles it. Any malformed
// input is an error; callers must not start a session on a partial
// Level.
func Parse(data []byte) (*Level, error) {
	var def Def
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if len(def.Grid) == 0 {
		return nil, fmt.Errorf("parse level %q: empty grid", def.Name)
	}
	unit := def.Unit
	if unit == 0 {
		unit = common.TileSize
	}

	lvl, err := Compile(def.Grid, unit)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", def.Name, err)
	}
	lvl.Name = def.Name
	lvl.Spawn = spawnPosition(def.Spawn, lvl)
	return lvl, nil
}

// spawnPosition maps a spawn cell to the cell's center in world pixels,
// clamping out-of-range cells to the grid origin.
func spawnPosition(cell []int, lvl *Level) cp.Vector {
	x, y := 1, 1
	if len(cell) == 2 {
		x, y = cell[0], cell[1]
	}
	if x < 0 || x >= lvl.Width {
		x = 0
	}
	if y < 0 || y >= lvl.Height {
		y = 0
	}
	return cp.Vector{
		X: (float64(x) + 0.5) * lvl.Unit,
		Y: (float64(y) + 0.5) * lvl.Unit,
	}
}

// LoadFile loads a level from disk, dispatching on extension: .tmx goes
// through the Tiled importer, everything else is parsed as YAML.
func LoadFile(path string) (*Level, error) {
	if strings.EqualFold(filepath.Ext(path), ".tmx") {
		return LoadTMX(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	return lvl, nil
}
