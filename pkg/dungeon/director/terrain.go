package director

import (
	"dungeoncore/pkg/dungeon"
	"dungeoncore/pkg/dungeon/plasma"
	"dungeoncore/pkg/dungeon/rooms"
)

// WildernessParams carries the world-coordinate tile being generated,
// separate from GenerationParams' dungeon Depth/Seed (spec §4.H: the
// wilderness is an infinite plane of tiles, not a depth-indexed level).
type WildernessParams struct {
	WorldX, WorldY int
	Seed           int64
	Watery         bool
	Vaults         []*rooms.VaultRecord
}

const wildernessDepthMax = 5
const wildernessRoughness = 2

// vaultDropChance is the percent chance a wilderness tile drops a small
// vault (spec §4.H's "small-probability wilderness vault" note).
const vaultDropChance = 4

// TerrainGen implements spec §4.J's terrain_gen wilderness entry point:
// a plasma-fractal tile whose 4 corner heights are the stable corner hash
// of its world coordinates, so adjacent tiles share identical edge
// values and tile seamlessly across scroll events.
func (d *Director) TerrainGen(params WildernessParams) (*Level, error) {
	grid := dungeon.NewGrid(dungeon.DefaultWidth, dungeon.DefaultHeight)
	rng := dungeon.NewGenerationContext(plasma.InteriorHash(params.WorldX, params.WorldY, params.Seed) | 1)

	corners := [4]int{
		normalizeHash(plasma.CornerHash(params.WorldX, params.WorldY, params.Seed)),
		normalizeHash(plasma.CornerHash(params.WorldX+1, params.WorldY, params.Seed)),
		normalizeHash(plasma.CornerHash(params.WorldX, params.WorldY+1, params.Seed)),
		normalizeHash(plasma.CornerHash(params.WorldX+1, params.WorldY+1, params.Seed)),
	}

	hm := plasma.Generate(grid.Width, grid.Height, wildernessDepthMax, wildernessRoughness, corners, rng)
	table := plasma.NormalTable
	if params.Watery {
		table = plasma.WateryTable
	}
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			grid.SetFeature(x, y, table.Feature(hm.At(x, y)))
		}
	}
	grid.PaintOuterRing()

	if len(params.Vaults) > 0 && rng.PercentChance(vaultDropChance) {
		v := params.Vaults[rng.RandomChoice(len(params.Vaults))]
		x := 2 + rng.RandomChoice(grid.Width-int(v.Width)-4)
		y := 2 + rng.RandomChoice(grid.Height-int(v.Height)-4)
		rooms.Paint(grid, v, x, y, d.Objects, d.Traps, rng)
	}

	originX, originY := grid.Width/2, grid.Height/2

	return &Level{
		Grid:          grid,
		IsTown:        false,
		PlayerOriginX: originX,
		PlayerOriginY: originY,
		Published:     true,
	}, nil
}

func normalizeHash(v int) int {
	if v < 0 {
		v = -v
	}
	return v % (wildernessDepthMax + 1)
}
