// Package level turns tile grids into the closed collision polygons the
// physics step resolves against. A Level is built once at load time and
// never mutated afterwards.
package level

import (
	"github.com/jakecoffman/cp"
)

// Tile codes recognized by the compiler. Anything else in a grid is a
// load-time error.
const (
	TileEmpty = 0
	TileSolid = 1
	// Right-triangle tiles, named for the cell corner the solid half
	// occupies. Screen coordinates, y grows downward.
	TileSlopeBL = 2
	TileSlopeBR = 3
	TileSlopeTL = 4
	TileSlopeTR = 5
)

// TileGrid is a row-major grid of tile codes. Rows may have different
// lengths; cells past the end of a row are empty.
type TileGrid [][]int

// At returns the tile code at column x, row y, or TileEmpty when the
// coordinates fall outside the grid.
func (g TileGrid) At(x, y int) int {
	if y < 0 || y >= len(g) {
		return TileEmpty
	}
	if x < 0 || x >= len(g[y]) {
		return TileEmpty
	}
	return g[y][x]
}

// Edge is an oriented segment of level boundary. Edges are emitted so
// that solid material lies on the positive-determinant side of A->B; the
// open side a body can approach from is the negative side.
type Edge struct {
	A cp.Vector
	B cp.Vector
}

// Polygon is a closed loop of boundary points. The first point is
// repeated at the end, so consecutive pairs cover every edge including
// the closing one.
type Polygon struct {
	Points []cp.Vector

	// Winding is +1 when the loop encloses solid material and -1 when it
	// encloses open space (a hole carved out of surrounding solid), from
	// the sign of the shoelace area.
	Winding int

	// Bounds is the loop's axis-aligned bounding box, used to reject
	// polygons cheaply before the per-edge collision tests.
	Bounds cp.BB
}

// EdgeCount returns the number of edges in the closed loop.
func (p *Polygon) EdgeCount() int {
	if len(p.Points) < 2 {
		return 0
	}
	return len(p.Points) - 1
}

// Area returns the signed shoelace area of the loop. Positive means the
// loop winds clockwise in screen space (solid interior).
func (p *Polygon) Area() float64 {
	var sum float64
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1], p.Points[i]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// insideRayDir is the fixed ray direction for point-in-polygon parity
// tests. Deliberately not axis-aligned so the ray cannot run along a
// grid-aligned edge.
var insideRayDir = cp.Vector{X: 2, Y: 1}.Mult(10000)

// Contains reports whether pt lies inside the loop, by counting edge
// crossings of a fixed ray (odd count = inside).
func (p *Polygon) Contains(pt cp.Vector) bool {
	count := 0
	far := pt.Add(insideRayDir)
	for i := 1; i < len(p.Points); i++ {
		if _, ok := segmentIntersect(p.Points[i-1], p.Points[i], pt, far); ok {
			count++
		}
	}
	return count%2 == 1
}

// Level is the immutable compiled collision geometry of one map.
type Level struct {
	Name string
	Unit float64

	// Grid dimensions in cells.
	Width  int
	Height int

	// Spawn is the body's starting position in world pixels.
	Spawn cp.Vector

	Polygons []Polygon
}

// SolidAt reports whether the world-space point sits inside solid
// geometry: inside any solid loop and outside every hole loop it would
// otherwise be in.
func (l *Level) SolidAt(pt cp.Vector) bool {
	solid := false
	for i := range l.Polygons {
		p := &l.Polygons[i]
		if !p.Contains(pt) {
			continue
		}
		if p.Winding > 0 {
			solid = true
		} else {
			return false
		}
	}
	return solid
}
