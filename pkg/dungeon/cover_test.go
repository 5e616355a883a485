package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newFloorGrid(w, h int) *Grid {
	g := NewGrid(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			g.SetFeature(x, y, FeatureFloor)
		}
	}
	return g
}

func TestCoverVsDirection_StonePillarGivesHeavy(t *testing.T) {
	// Spec §8 scenario 4: wall of STONE_PILLAR at (5,5), attacker (0,5),
	// target (10,5).
	g := newFloorGrid(12, 12)
	g.SetFeature(5, 5, FeatureStonePillar)
	engine := NewCoverEngine(g)

	tier := engine.CoverVsDirection(10, 5, 0, 5)

	assert.Equal(t, CoverHeavy, tier)
}

func TestCoverVsDirection_PermSolidGivesHeavyCover(t *testing.T) {
	g := newFloorGrid(12, 12)
	g.SetFeature(3, 5, FeaturePermSolid)
	engine := NewCoverEngine(g)

	tier := engine.CoverVsDirection(10, 5, 0, 5)

	assert.Equal(t, CoverHeavy, tier)
}

func TestCoverVsDirection_FogIsSkippedForBlocking(t *testing.T) {
	g := newFloorGrid(12, 12)
	g.SetFeature(5, 5, FeatureFogDark)
	engine := NewCoverEngine(g)

	tier := engine.CoverVsDirection(10, 5, 0, 5)

	assert.Equal(t, CoverNone, tier)
}

func TestAttackThroughCover_ForcedMissSendsFullDamageToCover(t *testing.T) {
	// Spec §8 scenario 4: attack_through_cover(..., 100) with forced miss
	// -> dmg_to_target=0, dmg_to_cover=100.
	g := newFloorGrid(12, 12)
	g.SetFeature(5, 5, FeatureStonePillar)
	engine := NewCoverEngine(g)
	forceMiss := true

	result := engine.AttackThroughCover(10, 5, 0, 5, 100, nil, &forceMiss)

	assert.False(t, result.Hit)
	assert.Equal(t, 0, result.DamageToTgt)
	assert.Equal(t, 100, result.DamageToCvr)
}

func TestAttackThroughCover_NoCoverIsFullDamageHit(t *testing.T) {
	g := newFloorGrid(12, 12)
	engine := NewCoverEngine(g)

	result := engine.AttackThroughCover(10, 5, 0, 5, 50, nil, nil)

	assert.True(t, result.Hit)
	assert.Equal(t, 50, result.DamageToTgt)
	assert.Equal(t, 0, result.DamageToCvr)
}

func TestDamageCover_DestroysAndRevertsToFloor(t *testing.T) {
	g := newFloorGrid(12, 12)
	g.SetFeature(5, 5, FeatureCrate)
	engine := NewCoverEngine(g)
	ctx := NewGenerationContext(1)

	destroyed, _ := engine.DamageCover(5, 5, 5, ctx)
	assert.False(t, destroyed)
	assert.NotNil(t, g.At(5, 5).Cover)

	destroyed, _ = engine.DamageCover(5, 5, 100, ctx)
	assert.True(t, destroyed)
	assert.Equal(t, FeatureFloor, g.At(5, 5).Feature)
	assert.Nil(t, g.At(5, 5).Cover)
}

func TestDamageCover_BarrelDetonates(t *testing.T) {
	g := newFloorGrid(12, 12)
	g.SetFeature(5, 5, FeatureBarrel)
	engine := NewCoverEngine(g)
	ctx := NewGenerationContext(1)

	_, detonated := engine.DamageCover(5, 5, 5, ctx)

	assert.True(t, detonated)
}
