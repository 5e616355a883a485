package rooms

import "dungeoncore/pkg/dungeon"

// GuardPostBuilder is archetype 17, MinDepth 10: it raises the four inner
// corner cells to high ground and lines four boulders along the middle
// row around a central stone pillar. It places no defenders and no
// patrol; GuardPost is set on the RoomPlan, and the Level Director's room
// pass does not read it.
type GuardPostBuilder struct{}

func (GuardPostBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeGuardPost }
func (GuardPostBuilder) MinDepth() int                    { return 10 }
func (GuardPostBuilder) BlockSpan() (dy, dx int)          { return 3, 1 }

func (b GuardPostBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := baseRoom(grid, x, y, w, h, params.Depth, rng)

	corners := [][2]int{
		{rect.X1 + 1, rect.Y1 + 1},
		{rect.X2 - 1, rect.Y1 + 1},
		{rect.X1 + 1, rect.Y2 - 1},
		{rect.X2 - 1, rect.Y2 - 1},
	}
	for _, c := range corners {
		cell := grid.At(c[0], c[1])
		cell.Elevation = dungeon.ElevationHigh
		grid.Set(c[0], c[1], cell)
	}

	for i := -2; i <= 2; i++ {
		if i == 0 {
			continue
		}
		grid.SetFeature(rect.X1+w/2+i, rect.Y1+h/2, dungeon.FeatureBoulder)
	}
	cx, cy := rect.Center()
	grid.SetFeature(cx, cy, dungeon.FeatureStonePillar)

	return dungeon.RoomPlan{
		Archetype: b.Archetype(),
		Bounds:    rect,
		Center:    [2]int{cx, cy},
		GuardPost: true,
	}, nil
}

// AmbushBuilder is archetype 18: a center floor stripe flanked by tall
// grass, MinDepth 15. It places no ambushers in the grass.
type AmbushBuilder struct{}

func (AmbushBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeAmbush }
func (AmbushBuilder) MinDepth() int                    { return 15 }
func (AmbushBuilder) BlockSpan() (dy, dx int)          { return 3, 1 }

func (b AmbushBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := baseRoom(grid, x, y, w, h, params.Depth, rng)
	cy := (rect.Y1 + rect.Y2) / 2

	for xx := rect.X1 + 1; xx < rect.X2; xx++ {
		grid.SetFeature(xx, cy, dungeon.FeatureFloor)
		for dy := 1; dy <= (rect.Y2-rect.Y1)/2-1; dy++ {
			grid.SetFeature(xx, cy-dy, dungeon.FeatureTallGrass)
			grid.SetFeature(xx, cy+dy, dungeon.FeatureTallGrass)
		}
	}
	grid.AddFlags(rect.X1, rect.Y1, dungeon.FlagIcky)

	cx, _ := rect.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}, Crowded: true}, nil
}
