package director

import (
	"dungeoncore/pkg/dungeon"
	"dungeoncore/pkg/dungeon/patrol"
	"dungeoncore/pkg/dungeon/rooms"
)

// specialSublevelSize is the fixed small grid every store/arena/quest
// sublevel uses (spec §4.J: these are single-vault sublevels, not full
// generate_cave passes).
const specialSublevelSize = 66

func bedrockGrid() *dungeon.Grid {
	grid := dungeon.NewGrid(specialSublevelSize, specialSublevelSize)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			grid.SetFeature(x, y, dungeon.FeaturePermSolid)
		}
	}
	return grid
}

func (d *Director) paintCentered(grid *dungeon.Grid, v *rooms.VaultRecord, depth int, rng *dungeon.GenerationContext) (x, y int, guards []*patrol.GuardRecord) {
	x = (grid.Width - int(v.Width)) / 2
	y = (grid.Height - int(v.Height)) / 2
	spawns := rooms.Paint(grid, v, x, y, d.Objects, d.Traps, rng)
	guards = d.materializeVaultMonsters(grid, spawns, depth, 0, rng)
	return x, y, guards
}

// StoreGen implements spec §4.J's store_gen: paints one vault on
// permanently-solid bedrock, as stores are a single fixed room reached
// via town features rather than a generated level.
func (d *Director) StoreGen(v *rooms.VaultRecord, seed int64) *Level {
	grid := bedrockGrid()
	rng := dungeon.NewGenerationContext(seed)
	x, y, guards := d.paintCentered(grid, v, 0, rng)
	cx, cy := x+int(v.Width)/2, y+int(v.Height)/2
	return &Level{Grid: grid, IsTown: true, PlayerOriginX: cx, PlayerOriginY: cy, GuardRecords: guards, Published: true}
}

// ArenaGen implements spec §4.J's arena_gen: identical shape to
// StoreGen, a single vault on bedrock, distinguished only by which
// vault the caller supplies.
func (d *Director) ArenaGen(v *rooms.VaultRecord, seed int64) *Level {
	return d.StoreGen(v, seed)
}

// QuestGen implements spec §4.J's quest_gen: paints a quest-specific
// vault, optionally over a wilderness base tile rather than bedrock, for
// quests staged in the overworld. seed drives the vault's monster-stream
// rolls when base is nil; a non-nil base reuses its own seed instead so
// a given world tile's quest dressing stays stable.
func (d *Director) QuestGen(v *rooms.VaultRecord, base *WildernessParams, seed int64) (*Level, error) {
	if base == nil {
		grid := bedrockGrid()
		rng := dungeon.NewGenerationContext(seed)
		x, y, guards := d.paintCentered(grid, v, wildernessDepthMax, rng)
		cx, cy := x+int(v.Width)/2, y+int(v.Height)/2
		return &Level{Grid: grid, IsTown: false, PlayerOriginX: cx, PlayerOriginY: cy, GuardRecords: guards, Published: true}, nil
	}

	level, err := d.TerrainGen(*base)
	if err != nil {
		return nil, err
	}
	rng := dungeon.NewGenerationContext(base.Seed)
	x, y, guards := d.paintCentered(level.Grid, v, wildernessDepthMax, rng)
	level.PlayerOriginX = x + int(v.Width)/2
	level.PlayerOriginY = y + int(v.Height)/2
	level.GuardRecords = append(level.GuardRecords, guards...)
	return level, nil
}

// TownGen implements spec §4.J's town_gen: towns route through the same
// wilderness tile synthesis as any other overworld tile, per the spec's
// treatment of town as depth 0 of the ordinary level sequence.
func (d *Director) TownGen(params WildernessParams) (*Level, error) {
	level, err := d.TerrainGen(params)
	if err != nil {
		return nil, err
	}
	level.IsTown = true
	return level, nil
}
