package director

import (
	"testing"

	"dungeoncore/pkg/dungeon"
	"dungeoncore/pkg/dungeon/patrol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTraps struct{}

func (fakeTraps) RandomTrap(rng *dungeon.GenerationContext) int { return 1 + rng.RandomChoice(20) }

type fakeObjects struct{}

func (fakeObjects) RandomObject(rng *dungeon.GenerationContext, treasureTier int) int {
	return 1 + rng.RandomChoice(50)
}

type fakeRaces struct{}

func (fakeRaces) RandomRace(rng *dungeon.GenerationContext, minDepth int) dungeon.MonsterRaceRecord {
	return dungeon.MonsterRaceRecord{Index: 1 + rng.RandomChoice(30), MinDepth: minDepth, DisplayChar: 'o'}
}

func (fakeRaces) RaceByChar(ch byte) (dungeon.MonsterRaceRecord, bool) {
	return dungeon.MonsterRaceRecord{DisplayChar: ch}, true
}

func (fakeRaces) RaceByIndex(idx int) (dungeon.MonsterRaceRecord, bool) {
	return dungeon.MonsterRaceRecord{Index: idx, DisplayChar: 'o'}, true
}

func newTestDirector(t *testing.T) *Director {
	t.Helper()
	d, err := NewDirector(nil, nil, fakeTraps{}, fakeObjects{}, fakeRaces{}, nil)
	require.NoError(t, err)
	return d
}

func asGuardViews(guards []*patrol.GuardRecord) []dungeon.GuardRecordView {
	out := make([]dungeon.GuardRecordView, len(guards))
	for i, g := range guards {
		coords := make([][2]int, len(g.Waypoints))
		for j, wp := range g.Waypoints {
			coords[j] = [2]int{wp.X, wp.Y}
		}
		out[i] = dungeon.GuardRecordView{
			HomeX: g.HomeX, HomeY: g.HomeY,
			Waypoints: coords,
		}
	}
	return out
}

func TestGenerateCave_ProducesValidatedLevel(t *testing.T) {
	d := newTestDirector(t)

	level, err := d.GenerateCave(dungeon.GenerationParams{Seed: 42, Depth: 10})
	require.NoError(t, err)
	require.NotNil(t, level)
	assert.True(t, level.Published)

	result := d.Validator.Validate(&dungeon.GeneratedLevel{
		Grid:          level.Grid,
		PlayerOriginX: level.PlayerOriginX,
		PlayerOriginY: level.PlayerOriginY,
		Depth:         level.Depth,
		IsTown:        level.IsTown,
		IsTerminal:    level.IsTerminal,
		GuardRecords:  asGuardViews(level.GuardRecords),
	})
	if !result.Passed {
		for _, issue := range result.Issues {
			t.Logf("validation issue: %s: %s", issue.Rule, issue.Message)
		}
	}
	assert.True(t, result.Passed)
}

func TestGenerateCave_DeterministicUnderSameSeed(t *testing.T) {
	d := newTestDirector(t)

	a, err := d.GenerateCave(dungeon.GenerationParams{Seed: 7, Depth: 15})
	require.NoError(t, err)
	b, err := d.GenerateCave(dungeon.GenerationParams{Seed: 7, Depth: 15})
	require.NoError(t, err)

	assert.Equal(t, a.Grid, b.Grid)
	assert.Equal(t, a.PlayerOriginX, b.PlayerOriginX)
	assert.Equal(t, a.PlayerOriginY, b.PlayerOriginY)
	assert.Equal(t, a.Rating, b.Rating)
}

func TestGenerateCave_TownLevelHasNoUpStairs(t *testing.T) {
	d := newTestDirector(t)

	level, err := d.GenerateCave(dungeon.GenerationParams{Seed: 1, Depth: 0})
	require.NoError(t, err)
	assert.True(t, level.IsTown)

	count := 0
	level.Grid.Each(func(x, y int, c dungeon.Cell) {
		if c.Feature == dungeon.FeatureStairsUp {
			count++
		}
	})
	assert.Zero(t, count)
}

func TestGenerateCave_RejectsNegativeDepth(t *testing.T) {
	d := newTestDirector(t)
	_, err := d.GenerateCave(dungeon.GenerationParams{Seed: 1, Depth: -1})
	assert.True(t, dungeon.IsInvalidInput(err))
}

func TestRollSectorKind_ZeroDepthNeverRollsCavern(t *testing.T) {
	rng := dungeon.NewGenerationContext(1)
	for i := 0; i < 200; i++ {
		assert.NotEqual(t, dungeon.SectorCavern, rollSectorKind(0, rng))
	}
}

func TestAllocateStairs_UpStairCountWithinInvariantBounds(t *testing.T) {
	rng := dungeon.NewGenerationContext(3)
	grid := dungeon.NewGrid(dungeon.DefaultWidth, dungeon.DefaultHeight)
	for y := 1; y < grid.Height-1; y++ {
		for x := 1; x < grid.Width-1; x++ {
			grid.SetFeature(x, y, dungeon.FeatureFloor)
		}
	}

	count := allocateStairs(grid, dungeon.StairUp, 40, 60, 0, rng)
	assert.GreaterOrEqual(t, count, 1)
	assert.LessOrEqual(t, count, 3)
}

func TestPerturbDestroyed_NeverTouchesIckyCells(t *testing.T) {
	rng := dungeon.NewGenerationContext(5)
	grid := dungeon.NewGrid(dungeon.DefaultWidth, dungeon.DefaultHeight)
	for y := 1; y < grid.Height-1; y++ {
		for x := 1; x < grid.Width-1; x++ {
			c := grid.At(x, y)
			c.Feature = dungeon.FeatureFloor
			c.Flags |= dungeon.FlagIcky
			c.MonsterID = 99
			grid.Set(x, y, c)
		}
	}

	perturbDestroyed(grid, rng)

	for y := 1; y < grid.Height-1; y++ {
		for x := 1; x < grid.Width-1; x++ {
			c := grid.At(x, y)
			assert.Equal(t, dungeon.FeatureFloor, c.Feature)
			assert.Equal(t, 99, c.MonsterID)
		}
	}
}
