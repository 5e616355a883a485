package director

import (
	"dungeoncore/pkg/dungeon"
	"dungeoncore/pkg/dungeon/patrol"
	"dungeoncore/pkg/dungeon/tunnel"
)

// backgroundFill implements spec §4.J step 2: with small odds the whole
// grid gets one of 5 uniform backgrounds; otherwise each cell independently
// rolls floor/granite/quartz/magma, floor favored at >=75%. Returns
// whether the level rolled "lit" (used by the uniform-background branch;
// the unspecified/granite branch always reports unlit, matching its role
// as the WALL_EXTRA background streamers carve into in step 10).
func backgroundFill(grid *dungeon.Grid, depth int, rng *dungeon.GenerationContext) (lit bool) {
	roll := rng.RandomChoice(100)
	switch {
	case roll < 2:
		fillAll(grid, dungeon.FeatureOpenFloorLit)
		return true
	case roll < 4:
		fillAll(grid, dungeon.FeatureShallowWaterLit)
		return true
	case roll < 6:
		fillAll(grid, dungeon.FeatureChaosFogDark)
		return false
	case roll < 8:
		fillAll(grid, dungeon.FeatureEmptyVoidLit)
		return true
	case roll < 10:
		fillAll(grid, dungeon.FeatureFogDark)
		return false
	default:
		for y := 0; y < grid.Height; y++ {
			for x := 0; x < grid.Width; x++ {
				grid.SetFeature(x, y, rollPerCellBackground(rng))
			}
		}
		return false
	}
}

func fillAll(grid *dungeon.Grid, feat dungeon.Feature) {
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			grid.SetFeature(x, y, feat)
		}
	}
}

func rollPerCellBackground(rng *dungeon.GenerationContext) dungeon.Feature {
	roll := rng.RandomChoice(100)
	switch {
	case roll < 75:
		return dungeon.FeatureFloor
	case roll < 88:
		return dungeon.FeatureWallExtra
	case roll < 94:
		return dungeon.FeatureQuartz
	default:
		return dungeon.FeatureMagma
	}
}

// rollSectorKind picks one of the 7 sector kinds per spec §4.F: CAVERN
// probability is depth/2%, then PLAZA/DARK/HILL/PIT/CLIFF at fixed 5%
// offsets, default RUINS.
func rollSectorKind(depth int, rng *dungeon.GenerationContext) dungeon.SectorKind {
	cavernPct := depth / 2
	if cavernPct > 60 {
		cavernPct = 60
	}
	roll := rng.RandomChoice(100)
	if roll < cavernPct {
		return dungeon.SectorCavern
	}
	roll -= cavernPct
	switch {
	case roll < 5:
		return dungeon.SectorPlaza
	case roll < 10:
		return dungeon.SectorDark
	case roll < 15:
		return dungeon.SectorHill
	case roll < 20:
		return dungeon.SectorPit
	case roll < 25:
		return dungeon.SectorCliff
	default:
		return dungeon.SectorRuins
	}
}

// sectorSpan is the 2x2-block footprint every sector occupies (spec §4.F:
// "the grid is quilted at 2x2-block granularity").
const sectorSpan = 2

// sectorPass implements spec §4.J step 5, returning the accumulated
// sector rating contribution to the level's feeling score.
func (d *Director) sectorPass(grid *dungeon.Grid, blocks *blockGrid, dun *dunState, params dungeon.GenerationParams, rng *dungeon.GenerationContext) int {
	rating := 0
	for by := 0; by+sectorSpan <= blocks.rows; by += sectorSpan {
		for bx := 0; bx+sectorSpan <= blocks.cols; bx += sectorSpan {
			kind := rollSectorKind(params.Depth, rng)
			if kind == dungeon.SectorRuins {
				continue
			}
			builder, err := d.Registry.GetSectorBuilder(kind)
			if err != nil {
				continue
			}
			x1, y1 := blocks.cellOrigin(by, bx)
			bounds := dungeon.Rectangle{
				X1: x1, Y1: y1,
				X2: x1 + sectorSpan*dungeon.BlockGridSize - 1,
				Y2: y1 + sectorSpan*dungeon.BlockGridSize - 1,
			}
			if bounds.X2 >= grid.Width || bounds.Y2 >= grid.Height {
				continue
			}
			plan, err := builder.Build(grid, bounds, params, rng)
			if err != nil {
				continue
			}
			blocks.reserve(by, bx, sectorSpan, sectorSpan)
			blocks.setKind(by, bx, sectorSpan, sectorSpan, kind)
			dun.addCenter(plan.Center[0], plan.Center[1])
			rating += plan.Rating
		}
	}
	return rating
}

// dunRooms is DUN_ROOMS from spec §4.J step 6: the number of placement
// attempts per generation pass.
const dunRooms = 400

// dunUnusual is DUN_UNUSUAL, the depth-scaled "is this room unusual"
// threshold divisor from spec §4.J step 6.
const dunUnusual = 200

// roomPass implements spec §4.J step 6: attempts dunRooms placements at
// random Ruins blocks, selecting an archetype per the ascending-rarity
// ladder, and returns the accumulated room rating contribution.
func (d *Director) roomPass(grid *dungeon.Grid, blocks *blockGrid, dun *dunState, params dungeon.GenerationParams, destroyed, weirdIsRare bool, rng *dungeon.GenerationContext) int {
	rating := 0
	for i := 0; i < dunRooms; i++ {
		archetype := d.pickRoomArchetype(params.Depth, destroyed, weirdIsRare, dun.Crowded, rng)
		builder, err := d.Registry.GetRoomBuilder(archetype)
		if err != nil {
			continue
		}
		if params.Depth < builder.MinDepth() {
			builder, err = d.Registry.GetRoomBuilder(dungeon.ArchetypeRectangular)
			if err != nil {
				continue
			}
		}

		dy, dx := builder.BlockSpan()
		by, bx, ok := blocks.randomFreeOrigin(rng, dy, dx, 20)
		if !ok {
			continue
		}

		x, y := blocks.cellOrigin(by, bx)
		plan, err := builder.Build(grid, x, y, params, rng)
		if err != nil {
			continue
		}

		blocks.reserve(by, bx, dy, dx)
		dun.addCenter(plan.Center[0], plan.Center[1])
		for _, door := range plan.DoorCells {
			dun.addDoor(door[0], door[1])
		}
		if plan.Crowded {
			dun.Crowded = true
		}
		dun.addVaultMonsters(plan.VaultMonsters)
		rating += plan.FeelingAdd
	}
	return rating
}

// pickRoomArchetype implements spec §4.J step 6's selection ladder.
func (d *Director) pickRoomArchetype(depth int, destroyed, weirdIsRare, crowded bool, rng *dungeon.GenerationContext) dungeon.RoomArchetype {
	if destroyed {
		return dungeon.ArchetypeRectangular
	}

	themedChance := 70
	if weirdIsRare {
		themedChance = 10
	}
	if rng.PercentChance(themedChance) {
		if b, err := d.Registry.GetRoomBuilder(dungeon.ArchetypeThemedVault); err == nil && depth >= b.MinDepth() {
			return dungeon.ArchetypeThemedVault
		}
	}

	if rng.RandomChoice(dunUnusual) < depth {
		ladder := []dungeon.RoomArchetype{
			dungeon.ArchetypeGuardPost,
			dungeon.ArchetypeAmbush,
			dungeon.ArchetypeFollyVault,
			dungeon.ArchetypeSanctum,
			dungeon.ArchetypeGreaterVault,
			dungeon.ArchetypeLesserVault,
			dungeon.ArchetypePit,
			dungeon.ArchetypeNest,
			dungeon.ArchetypeLargeInner,
			dungeon.ArchetypeCross,
			dungeon.ArchetypeOverlapping,
		}
		for _, at := range ladder {
			if crowded && (at == dungeon.ArchetypeNest || at == dungeon.ArchetypePit) {
				continue // crowded already limits further nest/pit placements
			}
			b, err := d.Registry.GetRoomBuilder(at)
			if err != nil || depth < b.MinDepth() {
				continue
			}
			if rng.PercentChance(50) {
				return at
			}
		}
	}

	return dungeon.ArchetypeRectangular
}

// tunnelPass implements spec §4.J step 8's connectivity contract: shuffle
// centers, connect consecutive pairs with a 75%/25% winding/straight
// split, then for 40% of rooms add one extra winding link to a random
// other center.
func (d *Director) tunnelPass(grid *dungeon.Grid, dun *dunState, rng *dungeon.GenerationContext) {
	centers := append([][2]int(nil), dun.Centers...)
	shuffle(centers, rng)
	if len(centers) < 2 {
		return
	}

	straight := tunnel.StraightTunneler{DunTunCon: 50}
	winding := tunnel.WindingTunneler{Fallback: straight}

	carve := func(a, b [2]int) {
		var res tunnel.Result
		if rng.PercentChance(75) {
			res = winding.Carve(grid, a[0], a[1], b[0], b[1], rng)
		} else {
			res = straight.Carve(grid, a[0], a[1], b[0], b[1], rng)
		}
		dun.addWalls(res.Walls)
		dun.addTunnel(res.Tunnel)
		for _, door := range res.Doors {
			dun.addDoor(door[0], door[1])
		}
	}

	for i := 0; i < len(centers)-1; i++ {
		carve(centers[i], centers[i+1])
	}

	for i, c := range centers {
		if !rng.PercentChance(40) {
			continue
		}
		j := rng.RandomChoice(len(centers))
		if j == i {
			continue
		}
		carve(c, centers[j])
	}
}

func shuffle(pts [][2]int, rng *dungeon.GenerationContext) {
	for i := len(pts) - 1; i > 0; i-- {
		j := rng.RandomChoice(i + 1)
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// carveStreamers implements spec §4.J step 10: magma/quartz veins scaled
// by level area, each 32..64 cells long via a drunken walk, with small
// odds of a treasure-bearing variant.
func carveStreamers(grid *dungeon.Grid, rng *dungeon.GenerationContext) {
	area := grid.Width * grid.Height
	count := (area + 64*64 - 1) / (64 * 64)

	for i := 0; i < count; i++ {
		magma := rng.PercentChance(60)
		feat := dungeon.FeatureQuartz
		treasureFeat := dungeon.FeatureQuartzTreasure
		treasureOdds := 40
		if magma {
			feat, treasureFeat, treasureOdds = dungeon.FeatureMagma, dungeon.FeatureMagmaTreasure, 90
		}

		x := rng.RandomChoice(grid.Width)
		y := rng.RandomChoice(grid.Height)
		length := 32 + rng.RandomChoice(33)
		const radius = 2

		for step := 0; step < length; step++ {
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if !grid.InBoundsFully(nx, ny) || !grid.At(nx, ny).Feature.IsGraniteOrHarder() {
						continue
					}
					if grid.At(nx, ny).Feature.IsPerma() {
						continue
					}
					out := feat
					if rng.RandomChoice(treasureOdds) == 0 {
						out = treasureFeat
					}
					grid.SetFeature(nx, ny, out)
				}
			}
			switch rng.RandomChoice(4) {
			case 0:
				x++
			case 1:
				x--
			case 2:
				y++
			default:
				y--
			}
		}
	}
}

// perturbDestroyed implements spec §4.J step 11: ~2 epicenters, Euclidean
// radius 16, monsters/objects cleared, feature rerolled from a
// granite/quartz/magma/floor distribution, ROOM/MARK/GLOW flags stripped.
// ICKY cells are never touched (spec §3 invariant 3, §9 resolution: a
// vault's interior must survive destruction untouched).
func perturbDestroyed(grid *dungeon.Grid, rng *dungeon.GenerationContext) {
	epicenters := 1 + rng.RandomChoice(2)
	const radius = 16

	for e := 0; e < epicenters; e++ {
		cx := rng.RandomChoice(grid.Width)
		cy := rng.RandomChoice(grid.Height)

		for y := cy - radius; y <= cy+radius; y++ {
			for x := cx - radius; x <= cx+radius; x++ {
				if !grid.InBoundsFully(x, y) {
					continue
				}
				if (x-cx)*(x-cx)+(y-cy)*(y-cy) > radius*radius {
					continue
				}
				c := grid.At(x, y)
				if c.Flags.Has(dungeon.FlagIcky) || c.Feature.IsPerma() {
					continue
				}
				c.Flags &^= dungeon.FlagRoom | dungeon.FlagMark | dungeon.FlagGlow
				c.MonsterID = 0
				c.ObjectHead = 0
				c.Feature = rollDestroyedFeature(rng)
				grid.Set(x, y, c)
			}
		}
	}
}

func rollDestroyedFeature(rng *dungeon.GenerationContext) dungeon.Feature {
	roll := rng.RandomChoice(200)
	switch {
	case roll < 80:
		return dungeon.FeatureFloor
	case roll < 160:
		return dungeon.FeatureWallExtra
	case roll < 180:
		return dungeon.FeatureQuartz
	default:
		return dungeon.FeatureMagma
	}
}

// addNatureStreamers implements spec §4.J step 12: depth-tiered ambient
// terrain scattered across existing floor cells.
func addNatureStreamers(grid *dungeon.Grid, depth int, rng *dungeon.GenerationContext) {
	samples := grid.Width * grid.Height / 200
	for i := 0; i < samples; i++ {
		x := rng.RandomChoice(grid.Width)
		y := rng.RandomChoice(grid.Height)
		if !grid.InBoundsFully(x, y) || !grid.IsFloor(x, y) {
			continue
		}

		switch {
		case depth <= 5:
			if rng.PercentChance(10) {
				grid.SetFeature(x, y, dungeon.FeatureTrees)
			} else if rng.PercentChance(5) {
				grid.SetFeature(x, y, dungeon.FeatureWaterShallow)
			}
		case depth <= 20:
			if rng.PercentChance(8) {
				grid.SetFeature(x, y, dungeon.FeatureWaterDeep)
			} else if rng.PercentChance(4) {
				grid.SetFeature(x, y, dungeon.FeatureSwamp)
			}
		default:
			if rng.PercentChance(8) {
				grid.SetFeature(x, y, dungeon.FeatureLavaShallow)
			} else if rng.PercentChance(3) {
				grid.SetFeature(x, y, dungeon.FeatureLavaDeep)
			}
		}

		if rng.PercentChance(1) {
			switch rng.RandomChoice(4) {
			case 0:
				grid.SetFeature(x, y, dungeon.FeatureChaosFogDark)
			case 1:
				grid.SetFeature(x, y, dungeon.FeatureOil)
			case 2:
				grid.SetFeature(x, y, dungeon.FeatureIce)
			default:
				grid.SetFeature(x, y, dungeon.FeatureAcid)
			}
		}
	}
}

// allocateStairs implements spec §4.J step 13. For up-stairs the target
// count is 1-3 (spec §8 invariant 3); for down-stairs exactly one.
// Returns the number actually placed.
func allocateStairs(grid *dungeon.Grid, kind dungeon.StairKind, minTries, maxTries, minWalls int, rng *dungeon.GenerationContext) int {
	target := 1
	if kind == dungeon.StairUp {
		target = 1 + rng.RandomChoice(3)
	}
	tries := minTries + rng.RandomChoice(maxTries-minTries+1)

	placed := 0
	for i := 0; i < tries && placed < target; i++ {
		if _, _, ok := dungeon.PlaceStairs(grid, kind, minWalls, 1, rng); ok {
			placed++
		}
	}
	return placed
}

// findPlayerOrigin implements spec §4.J step 14: prefer an up-stair cell,
// else scan outward from the grid center for naked floor.
func findPlayerOrigin(grid *dungeon.Grid, hasUpStairs bool, rng *dungeon.GenerationContext) (x, y int) {
	if hasUpStairs {
		for gy := 0; gy < grid.Height; gy++ {
			for gx := 0; gx < grid.Width; gx++ {
				if grid.At(gx, gy).Feature == dungeon.FeatureStairsUp {
					return gx, gy
				}
			}
		}
	}

	cx, cy := grid.Width/2, grid.Height/2
	const maxSearch = 1000
	for r := 0; r < maxSearch; r++ {
		x := cx + rng.RandomIntRange(-r, r)
		y := cy + rng.RandomIntRange(-r, r)
		if grid.InBoundsFully(x, y) && grid.IsNaked(x, y) {
			return x, y
		}
	}
	return cx, cy
}

// allocateMonsters implements spec §4.J step 15: base count plus a
// depth-proportional term, plus a crowded-level bonus, each monster
// seeded as a guard record with the SLEEP-equivalent initial state.
func (d *Director) allocateMonsters(grid *dungeon.Grid, dun *dunState, params dungeon.GenerationParams, rng *dungeon.GenerationContext) []*patrol.GuardRecord {
	const minMAllocLevel = 5
	base := (minMAllocLevel + rng.RandomChoice(8)) * 4
	k := clampInt(params.Depth/3, 2, 10)
	total := base + k
	if !dun.Crowded {
		total += 100
	}

	var guards []*patrol.GuardRecord
	for i := 0; i < total; i++ {
		x := rng.RandomChoice(grid.Width)
		y := rng.RandomChoice(grid.Height)
		if !grid.InBoundsFully(x, y) || !grid.IsNaked(x, y) {
			continue
		}

		var race dungeon.MonsterRaceRecord
		if d.Races != nil {
			race = d.Races.RandomRace(rng, params.Depth)
		}

		monsterID := i + 1
		c := grid.At(x, y)
		c.MonsterID = monsterID
		grid.Set(x, y, c)

		patrolType := patrol.PatrolRandom
		switch rng.RandomChoice(4) {
		case 1:
			patrolType = patrol.PatrolCircuit
		case 2:
			patrolType = patrol.PatrolBackForth
		case 3:
			patrolType = patrol.PatrolStationary
		}

		g := patrol.NewGuardRecord(monsterID, x, y, patrolType, 6, grid, rng)
		g.State = patrol.StateSleep
		g.Smart = race.Smart
		g.PackMember = race.PackFriends
		guards = append(guards, g)
	}
	return guards
}

// materializeVaultMonsters resolves the monster-stream spawn requests a
// vault's Paint call produced (spec §4.E vault painter's second RLE
// stream) into guard records: digit glyphs fix an explicit race by
// table index, letter glyphs restrict the race by species display
// character, and ';' rolls a race at double depth ("a meaner monster
// than normal" per the glyph alphabet). idOffset keeps monster IDs from
// colliding with an earlier allocateMonsters pass sharing the same grid.
func (d *Director) materializeVaultMonsters(grid *dungeon.Grid, spawns []dungeon.VaultMonsterSpawn, depth, idOffset int, rng *dungeon.GenerationContext) []*patrol.GuardRecord {
	if d.Races == nil {
		return nil
	}

	var guards []*patrol.GuardRecord
	for i, s := range spawns {
		if !grid.InBoundsFully(s.X, s.Y) || !grid.IsNaked(s.X, s.Y) {
			continue
		}

		var race dungeon.MonsterRaceRecord
		var ok bool
		switch {
		case s.Glyph != 0:
			race, ok = d.Races.RaceByChar(s.Glyph)
		case s.Meaner:
			race, ok = d.Races.RandomRace(rng, depth*2), true
		default:
			race, ok = d.Races.RaceByIndex(s.RaceIndex)
		}
		if !ok {
			continue
		}

		monsterID := idOffset + i + 1
		c := grid.At(s.X, s.Y)
		c.MonsterID = monsterID
		grid.Set(s.X, s.Y, c)

		g := patrol.NewGuardRecord(monsterID, s.X, s.Y, patrol.PatrolStationary, 6, grid, rng)
		g.State = patrol.StateSleep
		g.Smart = race.Smart
		g.PackMember = race.PackFriends
		guards = append(guards, g)
	}
	return guards
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// allocateObjectsAndHazards implements spec §4.J step 16: good items,
// small gold piles, area-scaled traps, corridor rubble and altars, each
// at random cells anywhere on the level. Degrades gracefully when a content table is nil (no data file
// wired yet), per this module's "opaque external interface" treatment.
func (d *Director) allocateObjectsAndHazards(grid *dungeon.Grid, params dungeon.GenerationParams, crowded bool, rng *dungeon.GenerationContext) {
	if d.Objects != nil {
		const goodItems = 6
		for i := 0; i < goodItems; i++ {
			if x, y, ok := randomNaked(grid, rng); ok {
				dungeon.PlaceObject(grid, x, y, d.Objects, rng)
			}
		}
		const goldPiles = 50
		for i := 0; i < goldPiles; i++ {
			if x, y, ok := randomNaked(grid, rng); ok {
				dungeon.PlaceObject(grid, x, y, d.Objects, rng)
			}
		}
	}

	if d.Traps != nil {
		trapCount := grid.Width * grid.Height / 500
		for i := 0; i < trapCount; i++ {
			if x, y, ok := randomNaked(grid, rng); ok {
				dungeon.PlaceTrap(grid, x, y, d.Traps, rng)
			}
		}
	}

	rubbleCount := grid.Width * grid.Height / 1000
	for i := 0; i < rubbleCount; i++ {
		x := rng.RandomChoice(grid.Width)
		y := rng.RandomChoice(grid.Height)
		if grid.InBoundsFully(x, y) && grid.IsFloor(x, y) && !grid.At(x, y).Flags.Has(dungeon.FlagRoom) {
			dungeon.PlaceRubble(grid, x, y)
		}
	}

	if len(d.Deities) > 0 {
		altarCount := 1 + rng.RandomChoice(3)
		for i := 0; i < altarCount; i++ {
			if x, y, ok := randomNaked(grid, rng); ok {
				dungeon.PlaceAltar(grid, x, y, params.Depth, d.Deities, rng)
			}
		}
	}
}

func randomNaked(grid *dungeon.Grid, rng *dungeon.GenerationContext) (x, y int, ok bool) {
	for attempt := 0; attempt < 1000; attempt++ {
		x = rng.RandomChoice(grid.Width)
		y = rng.RandomChoice(grid.Height)
		if grid.InBoundsFully(x, y) && grid.IsNaked(x, y) {
			return x, y, true
		}
	}
	return 0, 0, false
}

// populateFeatures implements spec §4.J step 17: glowing tiles,
// fountains, a cartographer desk, and heroic remains in dead ends. It
// places no ancient-ruin block.
func populateFeatures(grid *dungeon.Grid, rng *dungeon.GenerationContext) {
	glowCount := 3 + rng.RandomChoice(6)
	for i := 0; i < glowCount; i++ {
		if x, y, ok := randomNaked(grid, rng); ok {
			grid.SetFeature(x, y, dungeon.FeatureGlowingTile)
		}
	}

	fountainCount := 2 + rng.RandomChoice(4)
	for i := 0; i < fountainCount; i++ {
		if x, y, ok := randomNaked(grid, rng); ok {
			grid.SetFeature(x, y, dungeon.FeatureFountain)
		}
	}

	if rng.PercentChance(40) {
		if x, y, ok := randomNaked(grid, rng); ok {
			grid.SetFeature(x, y, dungeon.FeatureCartographerDesk)
		}
	}

	remainsCount := 1 + rng.RandomChoice(3)
	for i := 0; i < remainsCount; i++ {
		if x, y, ok := findDeadEnd(grid, rng); ok {
			grid.SetFeature(x, y, dungeon.FeatureHeroicRemains)
		}
	}
}

func findDeadEnd(grid *dungeon.Grid, rng *dungeon.GenerationContext) (x, y int, ok bool) {
	for attempt := 0; attempt < 1000; attempt++ {
		cx := rng.RandomChoice(grid.Width)
		cy := rng.RandomChoice(grid.Height)
		if grid.InBoundsFully(cx, cy) && grid.IsNaked(cx, cy) && grid.CountAdjacentWalls(cx, cy) >= 3 {
			return cx, cy, true
		}
	}
	return 0, 0, false
}

// populateCoverFeatures implements spec §4.J step 18: for each room
// center, 50% chance to scatter 2-5 destructible cover items.
func populateCoverFeatures(grid *dungeon.Grid, centers [][2]int, rng *dungeon.GenerationContext) {
	for _, c := range centers {
		if !rng.PercentChance(50) {
			continue
		}
		count := 2 + rng.RandomChoice(4)
		for i := 0; i < count; i++ {
			dx := rng.RandomChoice(5) - 2
			dy := rng.RandomChoice(5) - 2
			x, y := c[0]+dx, c[1]+dy
			if !grid.InBoundsFully(x, y) || !grid.IsClean(x, y) {
				continue
			}
			feat, durability := rollCoverFeature(rng)
			cell := grid.At(x, y)
			cell.Feature = feat
			cell.Cover = &dungeon.CoverExtra{Durability: durability, MaxDurability: durability, Underlying: dungeon.FeatureFloor}
			grid.Set(x, y, cell)
		}
	}
}

func rollCoverFeature(rng *dungeon.GenerationContext) (dungeon.Feature, int) {
	roll := rng.RandomChoice(100)
	switch {
	case roll < 30:
		return dungeon.FeatureBoulder, 40
	case roll < 60:
		return dungeon.FeatureCrate, 10
	case roll < 80:
		return dungeon.FeatureBarrel, 10
	default:
		return dungeon.FeatureStonePillar, 60
	}
}

// applyLighting implements spec §4.J step 19: a lit level gets GLOW on
// every non-room and wall cell (room cells were already lit per-room by
// PaintFloor's own roll).
func applyLighting(grid *dungeon.Grid) {
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := grid.At(x, y)
			if !c.Flags.Has(dungeon.FlagRoom) || c.Feature.IsWallLike() {
				c.Flags |= dungeon.FlagGlow
				grid.Set(x, y, c)
			}
		}
	}
}
