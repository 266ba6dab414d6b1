package level

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/lafriks/go-tiled"
)

// LoadTMX imports collision geometry from a Tiled map. The first tile
// layer is treated as the collision grid: an empty cell is empty, and a
// placed tile's local ID selects the tile code (ID 0 = solid square,
// IDs 1-4 the triangle variants). A "spawn" object group may provide
// the body's starting position in world pixels.
func LoadTMX(path string) (*Level, error) {
	m, err := tiled.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", path, err)
	}
	if len(m.Layers) == 0 {
		return nil, fmt.Errorf("load TMX %s: no tile layers", path)
	}

	layer := m.Layers[0]
	grid := make(TileGrid, m.Height)
	for y := 0; y < m.Height; y++ {
		row := make([]int, m.Width)
		for x := 0; x < m.Width; x++ {
			tile := layer.Tiles[y*m.Width+x]
			if tile.IsNil() {
				continue
			}
			row[x] = int(tile.ID) + 1
		}
		grid[y] = row
	}

	unit := float64(m.TileWidth)
	lvl, err := Compile(grid, unit)
	if err != nil {
		return nil, fmt.Errorf("TMX %s: %w", path, err)
	}
	lvl.Name = layer.Name
	lvl.Spawn = cp.Vector{X: 1.5 * unit, Y: 1.5 * unit}
	for _, og := range m.ObjectGroups {
		if og.Name != "spawn" || len(og.Objects) == 0 {
			continue
		}
		lvl.Spawn = cp.Vector{X: og.Objects[0].X, Y: og.Objects[0].Y}
		break
	}
	return lvl, nil
}
