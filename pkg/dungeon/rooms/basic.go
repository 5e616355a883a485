package rooms

import (
	"dungeoncore/pkg/dungeon"
)

// RectangularBuilder is archetype 1: a plain rectangle, with a 1/20
// pillar-grid variant and a 1/50 ragged-edge variant (spec §4.E table).
type RectangularBuilder struct{}

func (RectangularBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeRectangular }
func (RectangularBuilder) MinDepth() int                    { return 1 }
func (RectangularBuilder) BlockSpan() (dy, dx int)          { return 3, 1 }

func (b RectangularBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := baseRoom(grid, x, y, w, h, params.Depth, rng)

	roll := rng.RandomChoice(100)
	switch {
	case roll < 2: // 2/100 = 1/50
		raggedEdge(grid, rect, rng)
	case roll < 7: // 5/100 = 1/20
		pillarGrid(grid, rect)
	}

	cx, cy := rect.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}}, nil
}

// pillarGrid stamps stone pillars on a regular every-other-cell pattern.
func pillarGrid(grid *dungeon.Grid, rect dungeon.Rectangle) {
	for y := rect.Y1 + 1; y < rect.Y2; y += 2 {
		for x := rect.X1 + 1; x < rect.X2; x += 2 {
			grid.SetFeature(x, y, dungeon.FeatureStonePillar)
		}
	}
}

// raggedEdge randomly converts a handful of border floor cells back to
// wall, giving the rectangle an irregular silhouette.
func raggedEdge(grid *dungeon.Grid, rect dungeon.Rectangle, rng *dungeon.GenerationContext) {
	perimeter := 2*(rect.Width()+rect.Height()) - 4
	nicks := perimeter / 8
	for i := 0; i < nicks; i++ {
		side := rng.RandomChoice(4)
		var x, y int
		switch side {
		case 0:
			x, y = rect.X1+rng.RandomChoice(rect.Width()), rect.Y1
		case 1:
			x, y = rect.X1+rng.RandomChoice(rect.Width()), rect.Y2
		case 2:
			x, y = rect.X1, rect.Y1+rng.RandomChoice(rect.Height())
		default:
			x, y = rect.X2, rect.Y1+rng.RandomChoice(rect.Height())
		}
		grid.SetFeature(x, y, dungeon.FeatureWallOuter)
	}
}

// OverlappingBuilder is archetype 2: two overlapping rectangles.
type OverlappingBuilder struct{}

func (OverlappingBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeOverlapping }
func (OverlappingBuilder) MinDepth() int                    { return 1 }
func (OverlappingBuilder) BlockSpan() (dy, dx int)          { return 3, 1 }

func (b OverlappingBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	outer := dungeon.Rectangle{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}

	first := dungeon.Rectangle{X1: outer.X1, Y1: outer.Y1, X2: outer.X1 + w*2/3, Y2: outer.Y1 + h*2/3}
	second := dungeon.Rectangle{X1: outer.X2 - w*2/3, Y1: outer.Y2 - h*2/3, X2: outer.X2, Y2: outer.Y2}

	dungeon.PaintFloor(grid, first, params.Depth, rng)
	dungeon.PaintFloor(grid, second, params.Depth, rng)
	dungeon.PaintWallRect(grid, first, dungeon.FeatureWallOuter)
	dungeon.PaintWallRect(grid, second, dungeon.FeatureWallOuter)

	cx, cy := outer.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: outer, Center: [2]int{cx, cy}}, nil
}

// CrossBuilder is archetype 3: a cross shape with four equally likely
// centers: plain (no central feature), a solid inner-wall pillar, a
// locked-door vault cell, or a ring of inner walls around the center
// cell. build_type3's documented case-0 "do nothing" (spec §9 open
// question) is kept as the plain-cross outcome, so there is no separate
// plus/pillar variant — see DESIGN.md's Open Question decision.
type CrossBuilder struct{}

func (CrossBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeCross }
func (CrossBuilder) MinDepth() int                    { return 3 }
func (CrossBuilder) BlockSpan() (dy, dx int)          { return 3, 1 }

func (b CrossBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	outer := dungeon.Rectangle{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}
	cx, cy := outer.Center()

	armW, armH := w/4, h/4
	horiz := dungeon.Rectangle{X1: outer.X1, Y1: cy - armH/2, X2: outer.X2, Y2: cy + armH/2}
	vert := dungeon.Rectangle{X1: cx - armW/2, Y1: outer.Y1, X2: cx + armW/2, Y2: outer.Y2}
	dungeon.PaintFloor(grid, horiz, params.Depth, rng)
	dungeon.PaintFloor(grid, vert, params.Depth, rng)
	dungeon.PaintWallRect(grid, horiz, dungeon.FeatureWallOuter)
	dungeon.PaintWallRect(grid, vert, dungeon.FeatureWallOuter)

	switch rng.RandomChoice(4) {
	case 0:
		// Plain cross: no central feature.
	case 1:
		grid.SetFeature(cx, cy, dungeon.FeatureWallInner)
	case 2:
		grid.SetFeature(cx, cy, dungeon.FeatureDoorLocked)
	case 3:
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				grid.SetFeature(cx+dx, cy+dy, dungeon.FeatureWallInner)
			}
		}
	}

	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: outer, Center: [2]int{cx, cy}}, nil
}

// LargeInnerBuilder is archetype 4: a large rectangle with an inner
// feature chosen from {monster, treasure-vault w/ locked door, pillared,
// checkerboard maze, four-quarters}.
type LargeInnerBuilder struct{}

func (LargeInnerBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeLargeInner }
func (LargeInnerBuilder) MinDepth() int                    { return 3 }
func (LargeInnerBuilder) BlockSpan() (dy, dx int)          { return 3, 1 }

func (b LargeInnerBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := baseRoom(grid, x, y, w, h, params.Depth, rng)

	switch rng.RandomChoice(5) {
	case 0: // monster den: no extra terrain, director's monster pass handles it
	case 1: // treasure vault with locked door
		inner := shrink(rect, 2)
		dungeon.PaintWallRect(grid, inner, dungeon.FeatureWallInner)
		cx, _ := inner.Center()
		grid.SetFeature(cx, inner.Y1-1, dungeon.FeatureDoorLocked)
	case 2:
		pillarGrid(grid, rect)
	case 3:
		checkerboardMaze(grid, rect)
	case 4:
		fourQuarters(grid, rect)
	}

	cx, cy := rect.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}}, nil
}

func shrink(r dungeon.Rectangle, n int) dungeon.Rectangle {
	return dungeon.Rectangle{X1: r.X1 + n, Y1: r.Y1 + n, X2: r.X2 - n, Y2: r.Y2 - n}
}

func checkerboardMaze(grid *dungeon.Grid, rect dungeon.Rectangle) {
	for y := rect.Y1 + 1; y < rect.Y2; y++ {
		for x := rect.X1 + 1; x < rect.X2; x++ {
			if (x+y)%2 == 0 {
				grid.SetFeature(x, y, dungeon.FeatureWallInner)
			}
		}
	}
}

func fourQuarters(grid *dungeon.Grid, rect dungeon.Rectangle) {
	cx, cy := rect.Center()
	for x := rect.X1 + 1; x < rect.X2; x++ {
		grid.SetFeature(x, cy, dungeon.FeatureWallInner)
	}
	for y := rect.Y1 + 1; y < rect.Y2; y++ {
		grid.SetFeature(cx, y, dungeon.FeatureWallInner)
	}
	grid.SetFeature(cx, cy, dungeon.FeatureDoorOpen)
}
