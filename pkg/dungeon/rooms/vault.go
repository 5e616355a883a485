package rooms

import "dungeoncore/pkg/dungeon"

// VaultRecord is the external, opaque vault_record surface this module
// consumes (spec §6): two parallel RLE streams of equal length, one
// glyph->feature, one glyph->monster/object. Content and glyph semantics
// are owned by the host engine's data files; this module only interprets
// the glyph table described in spec §4.E.
//
// Grounded on _examples/other_examples's gruid rl-mapgen.go Vault type,
// which parses a textual vault body into a grid via an Iter/Draw pair —
// this module's Paint follows the same "iterate glyphs, dispatch each
// through a rune->feature function" shape, using the fixed GlyphFeature
// table and RLE streams instead of a raw string body.
type VaultRecord struct {
	Type       uint8
	Width      uint8
	Height     uint8
	Rating     int16
	GenInfo    uint8
	Text       []dungeon.RunPair // glyph -> feature, RLE encoded
	MonText    []dungeon.RunPair // glyph -> monster/object, RLE encoded
	Monsters   [10]int           // race-index fixups for digit glyphs
}

// GlyphFeature maps the spec §4.E vault glyph alphabet's feature stream
// to a Feature. The monster/object-stream glyphs (digits, letters, `;`,
// `*`, `^`, `.`) are decoded separately by Paint from a vault's parallel
// MonText stream, so here they fall back to plain floor.
func GlyphFeature(glyph byte) (dungeon.Feature, bool) {
	switch glyph {
	case '%':
		return dungeon.FeatureWallOuter, true
	case '#':
		return dungeon.FeatureWallInner, true
	case 'X':
		return dungeon.FeaturePermInner, true
	case '+':
		return dungeon.FeatureDoorSecret, true
	case 'D':
		return dungeon.FeatureDoorClosed0, true
	case '@':
		return dungeon.FeatureFloor, true // quest player position
	case ' ':
		return dungeon.FeatureFloor, true
	default:
		return dungeon.FeatureFloor, false
	}
}

// Paint decodes a VaultRecord's two parallel glyph streams — Text
// (glyph->feature) and MonText (glyph->monster/object) — and stamps them
// into grid at the given top-left corner, row-major. Traps and the `.`
// probabilistic-treasure/`*` trap-or-object glyphs are placed directly;
// digit/letter/`;` monster glyphs are returned as spawn requests for the
// Level Director's monster allocation step to materialize into guard
// records (spec §4.E vault painter).
func Paint(grid *dungeon.Grid, v *VaultRecord, topLeftX, topLeftY int, objects dungeon.ObjectTable, traps dungeon.TrapTable, rng *dungeon.GenerationContext) []dungeon.VaultMonsterSpawn {
	glyphs := dungeon.DecodeRLE(v.Text)
	monGlyphs := dungeon.DecodeRLE(v.MonText)
	w := int(v.Width)

	var spawns []dungeon.VaultMonsterSpawn
	for i, g := range glyphs {
		x := topLeftX + i%w
		y := topLeftY + i/w
		if !grid.InBounds(x, y) {
			continue
		}
		if feat, ok := GlyphFeature(g); ok {
			grid.SetFeature(x, y, feat)
		}

		var mg byte
		if i < len(monGlyphs) {
			mg = monGlyphs[i]
		}
		switch {
		case mg >= '0' && mg <= '7':
			idx := int(mg - '0')
			spawns = append(spawns, dungeon.VaultMonsterSpawn{X: x, Y: y, RaceIndex: v.Monsters[idx]})
		case (mg >= 'a' && mg <= 'z') || (mg >= 'A' && mg <= 'Z'):
			spawns = append(spawns, dungeon.VaultMonsterSpawn{X: x, Y: y, Glyph: mg})
		case mg == ';':
			spawns = append(spawns, dungeon.VaultMonsterSpawn{X: x, Y: y, Meaner: true})
		case mg == '^':
			if traps != nil {
				dungeon.PlaceTrap(grid, x, y, traps, rng)
			}
		case mg == '*':
			if rng.PercentChance(50) {
				if traps != nil {
					dungeon.PlaceTrap(grid, x, y, traps, rng)
				}
			} else if objects != nil {
				dungeon.PlaceObject(grid, x, y, objects, rng)
			}
		case mg == '.':
			if objects != nil {
				dungeon.PlaceObject(grid, x, y, objects, rng)
			}
		}
	}
	return spawns
}

// LesserVaultBuilder is archetype 7: consumes a vault_record with type
// tag 7.
type LesserVaultBuilder struct {
	Vaults  []*VaultRecord
	Objects dungeon.ObjectTable
	Traps   dungeon.TrapTable
}

func (LesserVaultBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeLesserVault }
func (LesserVaultBuilder) MinDepth() int                    { return 5 }
func (LesserVaultBuilder) BlockSpan() (dy, dx int)          { return 3, 2 }

func (b LesserVaultBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := dungeon.Rectangle{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}

	var spawns []dungeon.VaultMonsterSpawn
	if v := pickVault(b.Vaults, 7, rng); v != nil {
		spawns = Paint(grid, v, x, y, b.Objects, b.Traps, rng)
	} else {
		dungeon.PaintFloor(grid, rect, params.Depth, rng)
		dungeon.PaintWallRect(grid, rect, dungeon.FeatureWallOuter)
	}

	cx, cy := rect.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}, VaultMonsters: spawns}, nil
}

// pickVault selects a random vault record matching typ from pool, or nil
// if the pool has no matches (the caller falls back to a plain room —
// this module never fabricates vault content, per spec §1's "consumed
// via an opaque vault_record interface").
func pickVault(pool []*VaultRecord, typ uint8, rng *dungeon.GenerationContext) *VaultRecord {
	var matches []*VaultRecord
	for _, v := range pool {
		if v.Type == typ {
			matches = append(matches, v)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return matches[rng.RandomChoice(len(matches))]
}

// GreaterVaultBuilder is archetype 8.
type GreaterVaultBuilder struct {
	Vaults  []*VaultRecord
	Objects dungeon.ObjectTable
	Traps   dungeon.TrapTable
}

func (GreaterVaultBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeGreaterVault }
func (GreaterVaultBuilder) MinDepth() int                    { return 10 }
func (GreaterVaultBuilder) BlockSpan() (dy, dx int)          { return 6, 4 }

func (b GreaterVaultBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := dungeon.Rectangle{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}

	var spawns []dungeon.VaultMonsterSpawn
	if v := pickVault(b.Vaults, 8, rng); v != nil {
		spawns = Paint(grid, v, x, y, b.Objects, b.Traps, rng)
	} else {
		dungeon.PaintFloor(grid, rect, params.Depth, rng)
		dungeon.PaintWallRect(grid, rect, dungeon.FeaturePermInner)
	}
	grid.AddFlags(rect.X1, rect.Y1, dungeon.FlagIcky)

	cx, cy := rect.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}, VaultMonsters: spawns}, nil
}

// ThemedVaultBuilder is archetype 9.
type ThemedVaultBuilder struct {
	Vaults  []*VaultRecord
	Objects dungeon.ObjectTable
	Traps   dungeon.TrapTable
}

func (ThemedVaultBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeThemedVault }
func (ThemedVaultBuilder) MinDepth() int                    { return 5 }
func (ThemedVaultBuilder) BlockSpan() (dy, dx int)          { return 6, 4 }

func (b ThemedVaultBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := dungeon.Rectangle{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}

	var spawns []dungeon.VaultMonsterSpawn
	if v := pickVault(b.Vaults, 9, rng); v != nil {
		spawns = Paint(grid, v, x, y, b.Objects, b.Traps, rng)
	} else {
		dungeon.PaintFloor(grid, rect, params.Depth, rng)
		dungeon.PaintWallRect(grid, rect, dungeon.FeatureWallOuter)
	}

	cx, cy := rect.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}, VaultMonsters: spawns}, nil
}

// SanctumPuzzle identifies one of the 3 puzzle variants gating a
// sanctum's reward chamber (GLOSSARY: "Sanctum").
type SanctumPuzzle uint8

const (
	PuzzleEchoLock SanctumPuzzle = iota
	PuzzleFlowConduit
	PuzzleMirrorAlignment
)

// SanctumBuilder is archetype 10: depth-40+ puzzle+reward chamber.
type SanctumBuilder struct{ Vaults []*VaultRecord }

func (SanctumBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeSanctum }
func (SanctumBuilder) MinDepth() int                    { return 40 }
func (SanctumBuilder) BlockSpan() (dy, dx int)          { return 6, 4 }

func (b SanctumBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := dungeon.Rectangle{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}
	dungeon.PaintFloor(grid, rect, params.Depth, rng)
	dungeon.PaintWallRect(grid, rect, dungeon.FeatureSanctumWall)

	cx, cy := rect.Center()
	puzzle := SanctumPuzzle(rng.RandomChoice(3))
	switch puzzle {
	case PuzzleEchoLock:
		grid.SetFeature(cx-1, cy, dungeon.FeatureRuneA)
		grid.SetFeature(cx+1, cy, dungeon.FeatureRuneB)
	case PuzzleFlowConduit:
		grid.SetFeature(cx-1, cy, dungeon.FeatureLeverLeft)
		grid.SetFeature(cx+1, cy, dungeon.FeatureLeverRight)
	case PuzzleMirrorAlignment:
		grid.SetFeature(cx, cy-1, dungeon.FeatureMirrorPlate)
		grid.SetFeature(cx, cy+1, dungeon.FeatureCrystal)
	}
	grid.SetFeature(cx, cy, dungeon.FeatureSanctumDoor)
	grid.AddFlags(rect.X1, rect.Y1, dungeon.FlagIcky)

	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}}, nil
}

// FollyVaultBuilder is archetype 11: a monster horde vault.
type FollyVaultBuilder struct {
	Vaults  []*VaultRecord
	Objects dungeon.ObjectTable
	Traps   dungeon.TrapTable
}

func (FollyVaultBuilder) Archetype() dungeon.RoomArchetype { return dungeon.ArchetypeFollyVault }
func (FollyVaultBuilder) MinDepth() int                    { return 30 }
func (FollyVaultBuilder) BlockSpan() (dy, dx int)          { return 6, 6 }

func (b FollyVaultBuilder) Build(grid *dungeon.Grid, x, y int, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.RoomPlan, error) {
	w, h := cellSpan(b.BlockSpan())
	rect := dungeon.Rectangle{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}

	var spawns []dungeon.VaultMonsterSpawn
	if v := pickVault(b.Vaults, 11, rng); v != nil {
		spawns = Paint(grid, v, x, y, b.Objects, b.Traps, rng)
	} else {
		dungeon.PaintFloor(grid, rect, params.Depth, rng)
		dungeon.PaintWallRect(grid, rect, dungeon.FeatureWallOuter)
	}
	grid.AddFlags(rect.X1, rect.Y1, dungeon.FlagIcky)

	cx, cy := rect.Center()
	return dungeon.RoomPlan{Archetype: b.Archetype(), Bounds: rect, Center: [2]int{cx, cy}, Crowded: true, VaultMonsters: spawns}, nil
}
