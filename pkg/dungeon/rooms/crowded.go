package rooms

import "dungeoncore/pkg/dungeon"

// NestBuilder is archetype 5: a monster nest. Sets Crowded on its plan so
// the Level Director can enforce spec §3's "crowded limits further
// crowded rooms" dun-state rule.
type NestBuilder struct{}

func (NestBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeNest }
func (NestBuilder) MinDepth() int                    { return 5 }
func (NestBuilder) BlockSpan() (dy, dx int)          { return 3, 1 }

func (b NestBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := baseRoom(grid, x, y, w, h, params.Depth, rng)
	grid.AddFlags(rect.X1, rect.Y1, dungeon.FlagIcky)

	cx, cy := rect.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}, Crowded: true}, nil
}

// PitBuilder is archetype 6: a monster pit. Also sets Crowded.
type PitBuilder struct{}

func (PitBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypePit }
func (PitBuilder) MinDepth() int                    { return 5 }
func (PitBuilder) BlockSpan() (dy, dx int)          { return 3, 1 }

func (b PitBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := baseRoom(grid, x, y, w, h, params.Depth, rng)

	inner := shrink(rect, 1)
	for yy := inner.Y1; yy <= inner.Y2; yy++ {
		for xx := inner.X1; xx <= inner.X2; xx++ {
			c := grid.At(xx, yy)
			c.Elevation = dungeon.ElevationLow
			grid.Set(xx, yy, c)
		}
	}

	cx, cy := rect.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}, Crowded: true}, nil
}
