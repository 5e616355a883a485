package sectors

import (
	"testing"

	"dungeoncore/pkg/dungeon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid() *dungeon.Grid {
	return dungeon.NewGrid(dungeon.DefaultWidth, dungeon.DefaultHeight)
}

func testBounds() dungeon.Rectangle {
	return dungeon.Rectangle{X1: 5, Y1: 5, X2: 26, Y2: 26}
}

func TestRegisterAll_RegistersAll6Sectors(t *testing.T) {
	reg := dungeon.NewRegistry(nil)
	require.NoError(t, RegisterAll(reg))

	for _, kind := range []dungeon.SectorKind{
		dungeon.SectorCavern, dungeon.SectorPlaza, dungeon.SectorDark,
		dungeon.SectorHill, dungeon.SectorPit, dungeon.SectorCliff,
	} {
		b, err := reg.GetSectorBuilder(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, b.Kind())
	}
}

func TestEveryBuilder_ProducesPlanWithinBounds(t *testing.T) {
	builders := []dungeon.SectorBuilder{
		CavernBuilder{}, PlazaBuilder{}, DarkBuilder{}, HillBuilder{}, PitBuilder{}, CliffBuilder{},
	}
	for i, b := range builders {
		b := b
		t.Run(string(rune('a'+i)), func(t *testing.T) {
			grid := newTestGrid()
			rng := dungeon.NewGenerationContext(int64(100 + i))
			bounds := testBounds()

			plan, err := b.Build(grid, bounds, dungeon.GenerationParams{Depth: 20}, rng)
			require.NoError(t, err)
			assert.Equal(t, b.Kind(), plan.Kind)
			assert.True(t, bounds.Contains(plan.Center[0], plan.Center[1]))
		})
	}
}

func TestHillBuilder_SummitIsHigherThanOuterRing(t *testing.T) {
	grid := newTestGrid()
	rng := dungeon.NewGenerationContext(5)
	bounds := testBounds()

	plan, err := HillBuilder{}.Build(grid, bounds, dungeon.GenerationParams{Depth: 10}, rng)
	require.NoError(t, err)

	cx, cy := plan.Center[0], plan.Center[1]
	assert.Equal(t, dungeon.ElevationHigh, grid.At(cx, cy).Elevation)
	assert.Equal(t, dungeon.ElevationGround, grid.At(bounds.X1, bounds.Y1).Elevation)
}

func TestPitBuilder_CenterIsLow(t *testing.T) {
	grid := newTestGrid()
	rng := dungeon.NewGenerationContext(6)
	bounds := testBounds()

	plan, err := PitBuilder{}.Build(grid, bounds, dungeon.GenerationParams{Depth: 10}, rng)
	require.NoError(t, err)

	cx, cy := plan.Center[0], plan.Center[1]
	assert.Equal(t, dungeon.ElevationLow, grid.At(cx, cy).Elevation)
}

func TestDarkBuilder_PlacesGlowingHeartAtCenter(t *testing.T) {
	grid := newTestGrid()
	rng := dungeon.NewGenerationContext(9)
	bounds := testBounds()

	plan, err := DarkBuilder{}.Build(grid, bounds, dungeon.GenerationParams{Depth: 5}, rng)
	require.NoError(t, err)
	assert.Equal(t, 15, plan.Rating)

	cx, cy := plan.Center[0], plan.Center[1]
	assert.Equal(t, dungeon.FeatureGlowingTile, grid.At(cx, cy).Feature)
}

func TestEnsureConnectivity_MergesTwoDisjointRooms(t *testing.T) {
	grid := newTestGrid()
	bounds := dungeon.Rectangle{X1: 0, Y1: 0, X2: 19, Y2: 9}
	// Two 2x2 floor islands with a wall gap between them.
	for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		grid.SetFeature(p[0], p[1], dungeon.FeatureFloor)
	}
	for _, p := range [][2]int{{15, 7}, {16, 7}, {15, 8}, {16, 8}} {
		grid.SetFeature(p[0], p[1], dungeon.FeatureFloor)
	}

	EnsureConnectivity(grid, bounds)

	components := labelComponents(grid, bounds)
	assert.Len(t, components, 1)
}

func TestCliffBuilder_HasDistinctHighAndGroundSides(t *testing.T) {
	grid := newTestGrid()
	rng := dungeon.NewGenerationContext(8)
	bounds := testBounds()

	_, err := CliffBuilder{}.Build(grid, bounds, dungeon.GenerationParams{Depth: 10}, rng)
	require.NoError(t, err)

	seenHigh, seenGround := false, false
	for y := bounds.Y1; y <= bounds.Y2; y++ {
		for x := bounds.X1; x <= bounds.X2; x++ {
			switch grid.At(x, y).Elevation {
			case dungeon.ElevationHigh:
				seenHigh = true
			case dungeon.ElevationGround:
				seenGround = true
			}
		}
	}
	assert.True(t, seenHigh)
	assert.True(t, seenGround)
}
