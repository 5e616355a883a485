package dungeon

// This file implements spec §4.D, Room Primitives: low-level paint
// operations shared by every room archetype and sector builder. Grounded
// on pkg/pcg/levels/rooms.go's generateBasicRoom helper shape (bounds ->
// tile-fill -> feature placement), generalized to this module's richer
// feature/flag set.

// PaintFloor marks every cell in rect as floor, sets the ROOM flag, and
// rolls whether the room is lit (spec §4.D: "lit" probability
// depth <= 1+rand(25), so shallow levels are mostly lit).
func PaintFloor(grid *Grid, rect Rectangle, depth int, rng *GenerationContext) {
	lit := depth <= 1+rng.RandomChoice(25)
	for y := rect.Y1; y <= rect.Y2; y++ {
		for x := rect.X1; x <= rect.X2; x++ {
			if !grid.InBounds(x, y) {
				continue
			}
			c := grid.At(x, y)
			c.Feature = FeatureFloor
			c.Flags |= FlagRoom
			if lit {
				c.Flags |= FlagGlow
			}
			grid.Set(x, y, c)
		}
	}
}

// PaintWallRect stamps feat (normally FeatureWallOuter) around the
// rectangle's border, one cell larger than rect on all sides.
func PaintWallRect(grid *Grid, rect Rectangle, feat Feature) {
	for x := rect.X1 - 1; x <= rect.X2+1; x++ {
		if grid.InBounds(x, rect.Y1-1) {
			grid.SetFeature(x, rect.Y1-1, feat)
		}
		if grid.InBounds(x, rect.Y2+1) {
			grid.SetFeature(x, rect.Y2+1, feat)
		}
	}
	for y := rect.Y1 - 1; y <= rect.Y2+1; y++ {
		if grid.InBounds(rect.X1-1, y) {
			grid.SetFeature(rect.X1-1, y, feat)
		}
		if grid.InBounds(rect.X2+1, y) {
			grid.SetFeature(rect.X2+1, y, feat)
		}
	}
}

// doorStateFeature maps a DoorState to its grid Feature.
func doorStateFeature(state DoorState) Feature {
	switch state {
	case DoorStateOpen:
		return FeatureDoorOpen
	case DoorStateBroken:
		return FeatureDoorBroken
	case DoorStateSecret:
		return FeatureDoorSecret
	case DoorStateLocked:
		return FeatureDoorLocked
	case DoorStateJammed:
		return FeatureDoorJammed
	default:
		return FeatureDoorClosed0
	}
}

// RollDoorState samples the discrete distribution from spec §4.D: open
// 30%, broken 10%, secret 20%, closed 30%, locked 9.9%, jammed 0.1%.
func RollDoorState(rng *GenerationContext) DoorState {
	roll := rng.RandomChoice(1000)
	switch {
	case roll < 300:
		return DoorStateOpen
	case roll < 400:
		return DoorStateBroken
	case roll < 600:
		return DoorStateSecret
	case roll < 900:
		return DoorStateClosed
	case roll < 999:
		return DoorStateLocked
	default:
		return DoorStateJammed
	}
}

// PlaceDoor paints a door of a rolled state at (x,y).
func PlaceDoor(grid *Grid, x, y int, rng *GenerationContext) DoorState {
	state := RollDoorState(rng)
	grid.SetFeature(x, y, doorStateFeature(state))
	return state
}

// DeityRarity is the external deity_record surface this module reads
// (spec §6): only rarity gates altar placement.
type DeityRarity struct {
	Name   string
	Rarity uint8
}

// PlaceAltar chooses an altar feature whose deity's rarity tier is
// satisfied by depth (spec §4.D "Altars choose a deity index such that
// the minimum dungeon depth matches the deity's rarity tier").
func PlaceAltar(grid *Grid, x, y int, depth int, deities []DeityRarity, rng *GenerationContext) bool {
	var eligible []int
	for i, d := range deities {
		if int(d.Rarity) <= depth {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return false
	}
	chosen := eligible[rng.RandomChoice(len(eligible))]
	idx := chosen % 32
	grid.SetFeature(x, y, FeatureAltar0+Feature(idx))
	return true
}

// StairKind selects which staircase family to place.
type StairKind uint8

const (
	StairDown StairKind = iota
	StairUp
)

// PlaceStairs searches for a naked floor cell with at least minWalls
// adjacent wall cells, relaxing minWalls toward 0 if attempts are
// exhausted (spec §4.D). Town levels only ever request StairDown;
// terminal-depth or special sublevels only ever request StairUp — that
// constraint is enforced by the caller (the Level Director), not here.
func PlaceStairs(grid *Grid, kind StairKind, minWalls, maxAttempts int, rng *GenerationContext) (x, y int, ok bool) {
	feat := FeatureStairsDown
	if kind == StairUp {
		feat = FeatureStairsUp
	}

	for walls := minWalls; walls >= 0; walls-- {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			cx := rng.RandomChoice(grid.Width)
			cy := rng.RandomChoice(grid.Height)
			if !grid.InBoundsFully(cx, cy) || !grid.IsNaked(cx, cy) {
				continue
			}
			if grid.CountAdjacentWalls(cx, cy) >= walls {
				grid.SetFeature(cx, cy, feat)
				return cx, cy, true
			}
		}
	}
	return 0, 0, false
}

// PlaceRubble marks (x,y) as rubble, a destructible MEDIUM-cover feature.
func PlaceRubble(grid *Grid, x, y int) {
	grid.SetFeature(x, y, FeatureRubble)
}

// TrapTable is the external trap kind selection surface; kept abstract
// (an index into caller-owned trap data) since trap *content* is outside
// this module's scope, matching spec §1's "quest/store/arena content...
// consumed via an opaque interface" treatment.
type TrapTable interface {
	RandomTrap(rng *GenerationContext) int
}

// PlaceTrap marks (x,y) with a caller-supplied trap index via the cell's
// ObjectHead slot (the trap table itself lives outside this module).
func PlaceTrap(grid *Grid, x, y int, table TrapTable, rng *GenerationContext) int {
	idx := table.RandomTrap(rng)
	c := grid.At(x, y)
	c.ObjectHead = idx
	grid.Set(x, y, c)
	return idx
}

// ObjectTable is the external object-selection surface, mirroring
// TrapTable.
type ObjectTable interface {
	RandomObject(rng *GenerationContext, treasureTier int) int
}

// MonsterRaceRecord is the subset of the external monster_race_record
// (spec §6) a generator reads: SMART/FRIENDS/ANCIENT flags, alertness,
// and display character for restricted vault-glyph selection.
type MonsterRaceRecord struct {
	Index       int
	MinDepth    int
	Smart       bool
	PackFriends bool
	Ancient     bool
	Alertness   int
	DisplayChar byte
}

// MonsterRaceTable is the opaque monster-data surface this module
// consumes, mirroring TrapTable/ObjectTable's treatment of
// externally-owned content.
type MonsterRaceTable interface {
	RandomRace(rng *GenerationContext, minDepth int) MonsterRaceRecord
	RaceByChar(ch byte) (MonsterRaceRecord, bool)
	// RaceByIndex resolves one of a vault's explicit digit-glyph monster
	// fixups (spec §4.E vault painter, "digits 0-7 map to ... explicit
	// monster-list entries") to a race record.
	RaceByIndex(idx int) (MonsterRaceRecord, bool)
}

// PlaceMonster marks (x,y) with a caller-assigned monster instance id.
func PlaceMonster(grid *Grid, x, y, monsterID int) {
	c := grid.At(x, y)
	c.MonsterID = monsterID
	grid.Set(x, y, c)
}

// VaultMonsterSpawn is one cell a vault painter's monster/object glyph
// stream marked for later population, per spec §4.E's vault painter:
// digit glyphs carry an explicit RaceIndex fixup, letter glyphs restrict
// by species Glyph, and ';' requests a Meaner (out-of-depth) monster.
// Vault geometry painting has no patrol-radius or grid-reservation
// context of its own, so it reports spawn requests rather than
// allocating guard records directly; the Level Director's monster
// allocation step (spec §4.J step 15) materializes them.
type VaultMonsterSpawn struct {
	X, Y      int
	RaceIndex int
	Glyph     byte
	Meaner    bool
}

// PlaceObject marks (x,y) with a caller-supplied object index, rolling a
// treasure tier: 75% normal, 20% good, 5% great (spec §4.E vault painter
// "." glyph distribution, reused generically here).
func PlaceObject(grid *Grid, x, y int, table ObjectTable, rng *GenerationContext) int {
	roll := rng.RandomChoice(100)
	tier := 0
	switch {
	case roll < 75:
		tier = 0
	case roll < 95:
		tier = 1
	default:
		tier = 2
	}
	idx := table.RandomObject(rng, tier)
	c := grid.At(x, y)
	c.ObjectHead = idx
	grid.Set(x, y, c)
	return idx
}
