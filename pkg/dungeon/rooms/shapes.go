package rooms

import "dungeoncore/pkg/dungeon"

// CircularBuilder is archetype 12: a circular room traced with a
// midpoint-circle style radius test, grounded on the same "distance from
// center" idiom pkg/pcg/levels/rooms.go uses for its radial
// TreasureRoomGenerator variant.
type CircularBuilder struct{}

func (CircularBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeCircular }
func (CircularBuilder) MinDepth() int                    { return 1 }
func (CircularBuilder) BlockSpan() (dy, dx int)          { return 5, 5 }

// circularMinRadius and circularMaxRadius bound the traced radius (spec
// §4.E type 12: "Circular (radius 3-7)"), independent of the reserved
// block-grid footprint.
const (
	circularMinRadius = 3
	circularMaxRadius = 7
)

func (b CircularBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := dungeon.Rectangle{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}
	cx, cy := rect.Center()
	radius := circularMinRadius + rng.RandomChoice(circularMaxRadius-circularMinRadius+1)

	for yy := rect.Y1; yy <= rect.Y2; yy++ {
		for xx := rect.X1; xx <= rect.X2; xx++ {
			dx, dy := xx-cx, yy-cy
			dist2 := dx*dx + dy*dy
			switch {
			case dist2 <= (radius-1)*(radius-1):
				grid.SetFeature(xx, yy, dungeon.FeatureFloor)
				grid.AddFlags(xx, yy, dungeon.FlagRoom)
			case dist2 <= radius*radius:
				grid.SetFeature(xx, yy, dungeon.FeatureWallOuter)
			}
		}
	}

	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}}, nil
}

// CompositeBuilder is archetype 13: two or three base rectangles fused
// along a shared edge, each independently door-able.
type CompositeBuilder struct{}

func (CompositeBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeComposite }
func (CompositeBuilder) MinDepth() int                    { return 1 }
func (CompositeBuilder) BlockSpan() (dy, dx int)          { return 5, 5 }

func (b CompositeBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	outer := dungeon.Rectangle{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}

	lobes := 2 + rng.RandomChoice(2) // 2 or 3 sub-rectangles
	lobeW := w / lobes
	var doors [][2]int
	for i := 0; i < lobes; i++ {
		lx1 := outer.X1 + i*lobeW
		lx2 := lx1 + lobeW - 1
		if i == lobes-1 {
			lx2 = outer.X2
		}
		sub := dungeon.Rectangle{X1: lx1, Y1: outer.Y1 + rng.RandomChoice(2), X2: lx2, Y2: outer.Y2 - rng.RandomChoice(2)}
		dungeon.PaintFloor(grid, sub, params.Depth, rng)
		dungeon.PaintWallRect(grid, sub, dungeon.FeatureWallOuter)
		if i > 0 {
			jx := lx1
			jy := (sub.Y1 + sub.Y2) / 2
			grid.SetFeature(jx, jy, dungeon.FeatureDoorOpen)
			doors = append(doors, [2]int{jx, jy})
		}
	}

	cx, cy := outer.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: outer, Center: [2]int{cx, cy}, DoorCells: doors}, nil
}

// organicCavernSize is the fixed cell-grid footprint for archetype 14
// (spec's exact "20x20 cellular automata room" dimensions).
const organicCavernSize = 20

// OrganicCavernBuilder is archetype 14: a 20x20 cellular-automata cavern
// room. Initial fill 45%, 4 iterations, alive if neighbor-wall-count>=4,
// dead-cell revival if neighbor-wall-count>=5 — parameters and the
// count-neighbors-then-threshold idiom grounded on
// _examples/other_examples's Gearworld cellular_automata_dungeon.go.
type OrganicCavernBuilder struct{}

func (OrganicCavernBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeOrganicCavern }
func (OrganicCavernBuilder) MinDepth() int                    { return 1 }
func (OrganicCavernBuilder) BlockSpan() (dy, dx int)          { return 5, 5 }

func (b OrganicCavernBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	const n = organicCavernSize
	cells := make([][]bool, n) // true == wall
	for yy := 0; yy < n; yy++ {
		cells[yy] = make([]bool, n)
		for xx := 0; xx < n; xx++ {
			cells[yy][xx] = rng.RandomChoice(100) < 45
		}
	}

	for iter := 0; iter < 4; iter++ {
		next := make([][]bool, n)
		for yy := 0; yy < n; yy++ {
			next[yy] = make([]bool, n)
			for xx := 0; xx < n; xx++ {
				walls := countCAWallNeighbors(cells, xx, yy, n)
				if cells[yy][xx] {
					next[yy][xx] = walls >= 4
				} else {
					next[yy][xx] = walls >= 5
				}
			}
		}
		cells = next
	}

	reserveW, reserveH := cellSpan(b.BlockSpan())
	originX := x + (reserveW-n)/2
	originY := y + (reserveH-n)/2

	rect := dungeon.Rectangle{X1: originX, Y1: originY, X2: originX + n - 1, Y2: originY + n - 1}
	for yy := 0; yy < n; yy++ {
		for xx := 0; xx < n; xx++ {
			gx, gy := originX+xx, originY+yy
			if !grid.InBounds(gx, gy) {
				continue
			}
			if cells[yy][xx] {
				grid.SetFeature(gx, gy, dungeon.FeatureWallInner)
			} else {
				grid.SetFeature(gx, gy, dungeon.FeatureFloor)
				grid.AddFlags(gx, gy, dungeon.FlagRoom)
			}
		}
	}
	dungeon.PaintWallRect(grid, rect, dungeon.FeatureWallOuter)

	cx, cy := rect.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}}, nil
}

func countCAWallNeighbors(cells [][]bool, x, y, n int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= n || ny >= n {
				count++ // off-grid counts as wall, same convention as Grid.CountAdjacentWalls
				continue
			}
			if cells[ny][nx] {
				count++
			}
		}
	}
	return count
}
