package dungeon

// This file implements spec §4.C, the Cover Engine: per-feature cover
// tiers, directional line-of-sight cover queries, and damage resolution
// against destructible cover. Grounded on the ordered-tier-plus-lookup
// shape used throughout pkg/pcg/types.go's rarity/difficulty enums,
// generalized with a feature->tier table instead of a struct field.

// featureCoverTier classifies a feature into its cover tier (spec §4.C).
func featureCoverTier(f Feature) CoverTier {
	switch {
	case f == FeatureWallInner || f == FeatureWallOuter || f == FeatureWallSolid ||
		f == FeaturePermInner || f == FeaturePermOuter || f == FeaturePermSolid ||
		f == FeatureStonePillar:
		return CoverHeavy
	case f == FeatureTrees || f == FeatureBoulder || f == FeatureRubble:
		return CoverMedium
	case f == FeatureFallenTree || f == FeatureCrate || f == FeatureTallGrass ||
		f == FeatureReeds || f == FeatureShrub || f == FeatureFogDark ||
		f == FeatureDenseFog || f == FeatureSmoke || f == FeatureChaosFogDark ||
		f == FeatureBarrel:
		return CoverLight
	default:
		return CoverNone
	}
}

// isFogFamily reports whether f is one of the stealth-only fog features,
// which are skipped for line-of-sight blocking purposes (spec §4.C step 1)
// even though they register as light cover for self-cover purposes.
func isFogFamily(f Feature) bool {
	switch f {
	case FeatureFogDark, FeatureDenseFog, FeatureSmoke, FeatureChaosFogDark:
		return true
	default:
		return false
	}
}

// CoverEngine evaluates line-of-sight cover and resolves attacks through
// cover against a Grid.
type CoverEngine struct {
	grid *Grid
}

// NewCoverEngine binds a cover engine to grid. Queries are pure reads with
// no locking, per spec §5.
func NewCoverEngine(grid *Grid) *CoverEngine {
	return &CoverEngine{grid: grid}
}

// GetCoverAt returns the cover tier of the feature occupying (x,y).
func (e *CoverEngine) GetCoverAt(x, y int) CoverTier {
	return featureCoverTier(e.grid.At(x, y).Feature)
}

// CoverVsDirection traces an integer-stepped line from attacker to
// target, returning the best (highest) cover tier encountered (spec
// §4.C "Directional cover query").
func (e *CoverEngine) CoverVsDirection(targetX, targetY, attackerX, attackerY int) CoverTier {
	dist := chebyshevSteps(attackerX, attackerY, targetX, targetY)
	best := CoverNone

	if dist > 0 {
		dx := targetX - attackerX
		dy := targetY - attackerY
		for i := 1; i < dist; i++ {
			x := attackerX + (dx*i)/dist
			y := attackerY + (dy*i)/dist
			feat := e.grid.At(x, y).Feature
			if isFogFamily(feat) {
				continue
			}
			tier := featureCoverTier(feat)
			if tier == CoverTotal {
				return CoverTotal
			}
			if tier > best {
				best = tier
			}
		}
	}

	// Step 3: consult the target's own cell for LIGHT/MEDIUM self-cover.
	selfTier := featureCoverTier(e.grid.At(targetX, targetY).Feature)
	if selfTier == CoverLight || selfTier == CoverMedium {
		if selfTier > best {
			best = selfTier
		}
	}

	return best
}

// chebyshevSteps returns the number of integer steps used by the line
// tracer — the larger of the two axis deltas, so diagonal traces sample
// one point per cell crossed.
func chebyshevSteps(x1, y1, x2, y2 int) int {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// quadrant identifies one of the 8 directions from a target toward a
// point, used by the blocked query's adjacency bitmap.
type quadrant int

const (
	quadN quadrant = iota
	quadNE
	quadE
	quadSE
	quadS
	quadSW
	quadW
	quadNW
)

func quadrantOf(dx, dy int) quadrant {
	switch {
	case dx == 0 && dy < 0:
		return quadN
	case dx > 0 && dy < 0:
		return quadNE
	case dx > 0 && dy == 0:
		return quadE
	case dx > 0 && dy > 0:
		return quadSE
	case dx == 0 && dy > 0:
		return quadS
	case dx < 0 && dy > 0:
		return quadSW
	case dx < 0 && dy == 0:
		return quadW
	default:
		return quadNW
	}
}

var quadrantOffsets = map[quadrant][2]int{
	quadN: {0, -1}, quadNE: {1, -1}, quadE: {1, 0}, quadSE: {1, 1},
	quadS: {0, 1}, quadSW: {-1, 1}, quadW: {-1, 0}, quadNW: {-1, -1},
}

// IsBlocked picks which of target's 8 neighbours faces attacker and
// reports whether that one cell holds HEAVY-or-better cover (spec §4.C
// "Blocked query").
func (e *CoverEngine) IsBlocked(targetX, targetY, attackerX, attackerY int) bool {
	q := quadrantOf(sign(attackerX-targetX), sign(attackerY-targetY))
	off := quadrantOffsets[q]
	nx, ny := targetX+off[0], targetY+off[1]
	if !e.grid.InBounds(nx, ny) {
		return false
	}
	return e.GetCoverAt(nx, ny) >= CoverHeavy
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// coverAbsorbPercent is the tier-dependent damage-absorption percentage
// used on a hit (spec §4.C "On hit, cover absorbs a tier-dependent
// percent... monotonically increasing, ≤100").
var coverAbsorbPercent = map[CoverTier]int{
	CoverNone:   0,
	CoverLight:  20,
	CoverMedium: 45,
	CoverHeavy:  70,
	CoverTotal:  100,
}

// coverMissChance is the probability (0-100) that an attack entirely
// misses the target, striking the intervening cover instead (spec §4.C).
var coverMissChance = map[CoverTier]int{
	CoverNone:   0,
	CoverLight:  25,
	CoverMedium: 40,
	CoverHeavy:  60,
	CoverTotal:  100,
}

// AttackResult is the outcome of AttackThroughCover.
type AttackResult struct {
	Hit         bool
	DamageToTgt int
	DamageToCvr int
}

// AttackThroughCover resolves an attack from attacker to target through
// any intervening cover, optionally forcing a miss roll for deterministic
// tests (spec §8 scenario 4).
func (e *CoverEngine) AttackThroughCover(targetX, targetY, attackerX, attackerY, damage int, rng *GenerationContext, forceMiss *bool) AttackResult {
	tier := e.CoverVsDirection(targetX, targetY, attackerX, attackerY)

	if tier == CoverNone {
		return AttackResult{Hit: true, DamageToTgt: damage}
	}

	if e.IsBlocked(targetX, targetY, attackerX, attackerY) && tier >= CoverHeavy {
		return AttackResult{Hit: false, DamageToTgt: 0, DamageToCvr: damage}
	}

	missed := false
	if forceMiss != nil {
		missed = *forceMiss
	} else if rng != nil {
		missed = rng.RandomChoice(100) < coverMissChance[tier]
	}

	if missed {
		return AttackResult{Hit: false, DamageToTgt: 0, DamageToCvr: damage}
	}

	absorbed := damage * coverAbsorbPercent[tier] / 100
	return AttackResult{Hit: true, DamageToTgt: damage - absorbed, DamageToCvr: absorbed}
}

// DamageCover applies dmg to the cover record at (x,y), handling the
// feature-specific side effects from spec §4.C "Cover damage": barrels
// detonate, trees may topple into fallen-tree cover at half durability,
// crates lazily gain a record on first hit. Returns true if the cover was
// destroyed this call (reverting the cell to floor per invariant 7).
func (e *CoverEngine) DamageCover(x, y, dmg int, rng *GenerationContext) (destroyed bool, detonated bool) {
	cell := e.grid.At(x, y)

	if cell.Cover == nil {
		tier := featureCoverTier(cell.Feature)
		if tier == CoverNone {
			return false, false
		}
		cell.Cover = &CoverExtra{
			Durability:    coverDefaultDurability(cell.Feature),
			MaxDurability: coverDefaultDurability(cell.Feature),
			Tier:          tier,
			Underlying:    cell.Feature,
		}
		e.grid.Set(x, y, cell)
	}

	if cell.Feature == FeatureTrees && rng != nil {
		toppleChance := dmg
		if toppleChance > 100 {
			toppleChance = 100
		}
		if rng.RandomChoice(100) < toppleChance {
			cell.Feature = FeatureFallenTree
			cell.Cover.Underlying = FeatureFallenTree
			cell.Cover.MaxDurability = cell.Cover.MaxDurability / 2
			if cell.Cover.Durability > cell.Cover.MaxDurability {
				cell.Cover.Durability = cell.Cover.MaxDurability
			}
			e.grid.Set(x, y, cell)
		}
	}

	cell = e.grid.At(x, y)
	cell.Cover.Durability -= dmg
	if cell.Feature == FeatureBarrel {
		detonated = true
	}

	if cell.Cover.Durability <= 0 {
		cell.Cover = nil
		cell.Feature = FeatureFloor
		e.grid.Set(x, y, cell)
		return true, detonated
	}

	e.grid.Set(x, y, cell)
	return false, detonated
}

// coverDefaultDurability gives each destructible feature a starting
// max durability.
func coverDefaultDurability(f Feature) int {
	switch f {
	case FeatureTrees:
		return 60
	case FeatureBoulder, FeatureStonePillar:
		return 150
	case FeatureCrate:
		return 30
	case FeatureBarrel:
		return 20
	case FeatureRubble:
		return 40
	default:
		return 50
	}
}
