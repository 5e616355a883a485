package dungeon

import "fmt"

// CoverExtra records a destructible cover item occupying a cell (spec §3,
// invariant 4: durability always in (0, MaxDurability]).
type CoverExtra struct {
	Durability    int
	MaxDurability int
	Tier          CoverTier
	Underlying    Feature
}

// Cell is the per-position record stored in Grid. It stays a small,
// copyable struct, the way pkg/game/tile.go keeps Tile a flat value type;
// its one pointer, Cover, is copied separately by Grid.Clone.
type Cell struct {
	Feature    Feature
	Flags      Flags
	Elevation  Elevation
	Sector     SectorKind
	MonsterID  int
	ObjectHead int // index into an external object pool; 0 = none
	Cover      *CoverExtra
}

// Grid is the dungeon's 2-D cell array. Default dimensions match spec §3
// (height 66, width 198).
type Grid struct {
	Width, Height int
	cells         [][]Cell
}

// DefaultHeight and DefaultWidth are the spec's default grid dimensions.
const (
	DefaultHeight = 66
	DefaultWidth  = 198
)

// NewGrid allocates a width x height grid. Every cell starts as permanent
// solid wall; callers are expected to background-fill via the Level
// Director before painting rooms.
func NewGrid(width, height int) *Grid {
	g := &Grid{Width: width, Height: height}
	g.cells = make([][]Cell, height)
	for y := range g.cells {
		g.cells[y] = make([]Cell, width)
		for x := range g.cells[y] {
			g.cells[y][x] = Cell{Feature: FeaturePermSolid}
		}
	}
	return g
}

// InBounds reports whether (x,y) is within the grid, including the outer
// ring.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// InBoundsFully reports whether (x,y) excludes the permanent outer ring
// (spec §3 invariant 1, §4.A in_bounds_fully).
func (g *Grid) InBoundsFully(x, y int) bool {
	return x > 0 && x < g.Width-1 && y > 0 && y < g.Height-1
}

// At returns the cell at (x,y). Panics on out-of-bounds coordinates — per
// spec §7 mode 3, an out-of-bounds access is an invalid-input fatal
// condition, not a recoverable one.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("dungeon: cell (%d,%d) out of bounds for %dx%d grid", x, y, g.Width, g.Height))
	}
	return g.cells[y][x]
}

// Set overwrites the cell at (x,y).
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("dungeon: cell (%d,%d) out of bounds for %dx%d grid", x, y, g.Width, g.Height))
	}
	g.cells[y][x] = c
}

// SetFeature is a convenience that overwrites only the feature, preserving
// the rest of the cell.
func (g *Grid) SetFeature(x, y int, f Feature) {
	c := g.At(x, y)
	c.Feature = f
	g.Set(x, y, c)
}

// AddFlags ORs extra bits into the cell's flag set.
func (g *Grid) AddFlags(x, y int, extra Flags) {
	c := g.At(x, y)
	c.Flags |= extra
	g.Set(x, y, c)
}

// IsFloor reports whether the cell at (x,y) is a walkable floor surface.
func (g *Grid) IsFloor(x, y int) bool { return g.At(x, y).Feature.IsFloor() }

// IsNaked reports floor with no object, no monster, and no glyph —
// required for stair/altar/trap placement (spec §4.D).
func (g *Grid) IsNaked(x, y int) bool {
	c := g.At(x, y)
	return c.Feature.IsFloor() && c.ObjectHead == 0 && c.MonsterID == 0 && c.Feature != FeatureGlyph
}

// IsClean reports floor with no object (monsters permitted).
func (g *Grid) IsClean(x, y int) bool {
	c := g.At(x, y)
	return c.Feature.IsFloor() && c.ObjectHead == 0
}

// IsPerma reports whether the cell is one of the indestructible permanent
// wall features.
func (g *Grid) IsPerma(x, y int) bool { return g.At(x, y).Feature.IsPerma() }

// CountAdjacentWalls counts wall-like cells in the 8-neighborhood of
// (x,y), treating off-grid neighbors as walls. Used by stair placement's
// adjacent-wall relaxation and by the director's dead-end check for
// heroic remains.
func (g *Grid) CountAdjacentWalls(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				count++
				continue
			}
			if g.At(nx, ny).Feature.IsWallLike() {
				count++
			}
		}
	}
	return count
}

// PaintOuterRing stamps the permanent-solid border required by spec §3
// invariant 1 / §8 invariant 1.
func (g *Grid) PaintOuterRing() {
	for x := 0; x < g.Width; x++ {
		g.SetFeature(x, 0, FeaturePermSolid)
		g.SetFeature(x, g.Height-1, FeaturePermSolid)
	}
	for y := 0; y < g.Height; y++ {
		g.SetFeature(0, y, FeaturePermSolid)
		g.SetFeature(g.Width-1, y, FeaturePermSolid)
	}
}

// Each iterates every cell in row-major order, calling fn(x, y, cell).
func (g *Grid) Each(fn func(x, y int, c Cell)) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fn(x, y, g.cells[y][x])
		}
	}
}

// Clone returns a deep copy, including each cell's CoverExtra record.
func (g *Grid) Clone() *Grid {
	out := &Grid{Width: g.Width, Height: g.Height}
	out.cells = make([][]Cell, g.Height)
	for y := range g.cells {
		row := make([]Cell, g.Width)
		copy(row, g.cells[y])
		for x := range row {
			if row[x].Cover != nil {
				cover := *row[x].Cover
				row[x].Cover = &cover
			}
		}
		out.cells[y] = row
	}
	return out
}
