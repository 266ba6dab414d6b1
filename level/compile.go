package level

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Geometric tolerance in world pixels. Grid vertices land on exact
// multiples of the unit size, so this only has to absorb float noise.
const epsilon = 1e-6

// Compile converts a tile grid into a Level of closed, wound collision
// polygons. It fails on unrecognized tile codes and on edge graphs that
// do not close into loops; no partial Level is ever returned.
func Compile(grid TileGrid, unit float64) (*Level, error) {
	if unit <= 0 {
		return nil, fmt.Errorf("compile: unit size must be positive, got %g", unit)
	}
	width := 0
	for y, row := range grid {
		for x, code := range row {
			if code < TileEmpty || code > TileSlopeTR {
				return nil, fmt.Errorf("compile: unsupported tile code %d at cell (%d,%d)", code, x, y)
			}
		}
		if len(row) > width {
			width = len(row)
		}
	}

	edges := extractEdges(grid, unit)
	edges = mergeEdges(edges)

	polygons, err := assemblePolygons(edges)
	if err != nil {
		return nil, err
	}

	return &Level{
		Unit:     unit,
		Width:    width,
		Height:   len(grid),
		Polygons: polygons,
	}, nil
}

// boundaryEdge is an emitted edge tagged with the tile region it
// bounds. Loops from different regions can share a vertex (a square
// pinching a slope tile's corner); the tag keeps each walk on its own
// region's boundary instead of splicing the loops together.
type boundaryEdge struct {
	Edge
	region int
}

// solidRegions labels every solid-square cell with the id of its
// face-connected component and returns the next free id. Triangles get
// their own id at emission, since they never share a full cell face
// with anything.
func solidRegions(grid TileGrid) ([][]int, int) {
	labels := make([][]int, len(grid))
	for y, row := range grid {
		labels[y] = make([]int, len(row))
		for x := range labels[y] {
			labels[y][x] = -1
		}
	}

	next := 0
	for y, row := range grid {
		for x, code := range row {
			if code != TileSolid || labels[y][x] >= 0 {
				continue
			}
			stack := [][2]int{{x, y}}
			labels[y][x] = next
			for len(stack) > 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					nx, ny := c[0]+d[0], c[1]+d[1]
					if grid.At(nx, ny) != TileSolid || labels[ny][nx] >= 0 {
						continue
					}
					labels[ny][nx] = next
					stack = append(stack, [2]int{nx, ny})
				}
			}
			next++
		}
	}
	return labels, next
}

// extractEdges emits the boundary edges of every solid tile, oriented
// clockwise in screen space so solid material is always on the
// positive-determinant side. Squares omit edges shared with a
// neighboring square; triangles never share a full cell boundary, so
// all three of their edges are emitted.
func extractEdges(grid TileGrid, unit float64) []boundaryEdge {
	labels, nextRegion := solidRegions(grid)

	var edges []boundaryEdge
	emit := func(region int, segs ...Edge) {
		for _, s := range segs {
			edges = append(edges, boundaryEdge{Edge: s, region: region})
		}
	}

	for y, row := range grid {
		for x, code := range row {
			if code == TileEmpty {
				continue
			}
			tl := cp.Vector{X: float64(x) * unit, Y: float64(y) * unit}
			tr := cp.Vector{X: float64(x+1) * unit, Y: float64(y) * unit}
			br := cp.Vector{X: float64(x+1) * unit, Y: float64(y+1) * unit}
			bl := cp.Vector{X: float64(x) * unit, Y: float64(y+1) * unit}

			switch code {
			case TileSolid:
				region := labels[y][x]
				if grid.At(x, y-1) != TileSolid {
					emit(region, Edge{tl, tr})
				}
				if grid.At(x+1, y) != TileSolid {
					emit(region, Edge{tr, br})
				}
				if grid.At(x, y+1) != TileSolid {
					emit(region, Edge{br, bl})
				}
				if grid.At(x-1, y) != TileSolid {
					emit(region, Edge{bl, tl})
				}
			case TileSlopeBL:
				emit(nextRegion, Edge{tl, br}, Edge{br, bl}, Edge{bl, tl})
				nextRegion++
			case TileSlopeBR:
				emit(nextRegion, Edge{tr, br}, Edge{br, bl}, Edge{bl, tr})
				nextRegion++
			case TileSlopeTL:
				emit(nextRegion, Edge{tl, tr}, Edge{tr, bl}, Edge{bl, tl})
				nextRegion++
			case TileSlopeTR:
				emit(nextRegion, Edge{tl, tr}, Edge{tr, br}, Edge{br, tl})
				nextRegion++
			}
		}
	}
	return edges
}

// mergeEdges repeatedly joins pairs of collinear, co-directed edges of
// the same region that chain head to tail. This is a graph contraction
// to cut the segment count before assembly; correctness does not
// depend on it. The region guard matters: hypotenuses of separate
// slope tiles can chain collinearly through a shared corner, and
// merging those would weld two loops together.
func mergeEdges(edges []boundaryEdge) []boundaryEdge {
	merged := true
	for merged {
		merged = false
		for i := 0; i < len(edges) && !merged; i++ {
			for j := 0; j < len(edges); j++ {
				if i == j || edges[i].region != edges[j].region {
					continue
				}
				if !samePoint(edges[i].B, edges[j].A) {
					continue
				}
				d1 := edges[i].B.Sub(edges[i].A)
				d2 := edges[j].B.Sub(edges[j].A)
				if math.Abs(d1.Cross(d2)) > epsilon*d1.Length()*d2.Length() {
					continue
				}
				if d1.Dot(d2) <= 0 {
					continue
				}
				edges[i].B = edges[j].B
				edges = append(edges[:j], edges[j+1:]...)
				merged = true
				break
			}
		}
	}
	return edges
}

// assemblePolygons walks the edge graph, chaining edges that share
// endpoints until each walk returns to its start. A walk never leaves
// its region. Where a region's own boundary pinches at a vertex (two
// diagonally adjacent squares of one component), two of its outgoing
// edges coincide there; the walk takes the one turning most sharply
// across the open side of the incoming edge, which keeps each enclosed
// air pocket its own loop instead of splicing loops into a figure
// eight. Every edge must end up in exactly one closed loop; anything
// else is a data error in the source grid.
func assemblePolygons(edges []boundaryEdge) ([]Polygon, error) {
	used := make([]bool, len(edges))
	var polygons []Polygon

	for start := range edges {
		if used[start] {
			continue
		}
		used[start] = true
		points := []cp.Vector{edges[start].A, edges[start].B}
		cur := edges[start].B
		dir := edges[start].B.Sub(edges[start].A)

		for !samePoint(cur, edges[start].A) {
			next := -1
			var bestTurn float64
			for j := range edges {
				if used[j] || edges[j].region != edges[start].region || !samePoint(edges[j].A, cur) {
					continue
				}
				turn := turnAngle(dir.Neg(), edges[j].B.Sub(edges[j].A))
				if next < 0 || turn < bestTurn {
					next = j
					bestTurn = turn
				}
			}
			if next < 0 {
				return nil, fmt.Errorf("compile: open edge chain at (%g,%g); grid does not form closed geometry", cur.X, cur.Y)
			}
			used[next] = true
			cur = edges[next].B
			dir = edges[next].B.Sub(edges[next].A)
			points = append(points, cur)
		}
		// Snap the closing point exactly onto the start.
		points[len(points)-1] = points[0]

		poly := Polygon{Points: points}
		area := poly.Area()
		if math.Abs(area) < epsilon {
			return nil, fmt.Errorf("compile: degenerate polygon with zero area at (%g,%g)", points[0].X, points[0].Y)
		}
		if area > 0 {
			poly.Winding = 1
		} else {
			poly.Winding = -1
		}
		poly.Bounds = boundsOf(points)
		polygons = append(polygons, poly)
	}
	return polygons, nil
}

func boundsOf(points []cp.Vector) cp.BB {
	bb := cp.BB{L: points[0].X, B: points[0].Y, R: points[0].X, T: points[0].Y}
	for _, p := range points[1:] {
		bb.L = math.Min(bb.L, p.X)
		bb.B = math.Min(bb.B, p.Y)
		bb.R = math.Max(bb.R, p.X)
		bb.T = math.Max(bb.T, p.Y)
	}
	return bb
}

func samePoint(a, b cp.Vector) bool {
	return a.Near(b, epsilon)
}

// turnAngle is the rotation from one direction to another, swept in the
// x-toward-y sense, in (0, 2π]. Measured from the reversed incoming
// edge this sweeps across the incoming edge's open side first, so the
// smallest angle is the sharpest turn that keeps open space enclosed.
func turnAngle(from, to cp.Vector) float64 {
	a := math.Atan2(to.Y, to.X) - math.Atan2(from.Y, from.X)
	for a <= 0 {
		a += 2 * math.Pi
	}
	for a > 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// segmentIntersect returns the intersection point of segments a1-a2 and
// b1-b2, if any. Parallel segments never intersect here; the parallelism
// check is tolerance-based rather than an exact zero comparison.
func segmentIntersect(a1, a2, b1, b2 cp.Vector) (cp.Vector, bool) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	denom := da.Cross(db)
	if math.Abs(denom) < epsilon {
		return cp.Vector{}, false
	}
	ab := b1.Sub(a1)
	t := ab.Cross(db) / denom
	u := ab.Cross(da) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return cp.Vector{}, false
	}
	return a1.Add(da.Mult(t)), true
}
