package rooms

import (
	"testing"

	"dungeoncore/pkg/dungeon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid() *dungeon.Grid {
	return dungeon.NewGrid(dungeon.DefaultWidth, dungeon.DefaultHeight)
}

func TestRegisterAll_RegistersAll16Archetypes(t *testing.T) {
	reg := dungeon.NewRegistry(nil)
	require.NoError(t, RegisterAll(reg))
	for _, a := range reg.RoomArchetypes() {
		b, err := reg.GetRoomBuilder(a)
		require.NoError(t, err)
		assert.Equal(t, a, b.Archetype())
	}
	assert.Len(t, reg.RoomArchetypes(), 16)
}

// allBuilders lists every builder; TestEveryBuilder_ProducesPlanWithinBounds
// builds each at (3,3) and checks that the plan carries the builder's
// archetype and that its center sits inside its own bounds.
func allBuilders() []dungeon.RoomBuilder {
	return []dungeon.RoomBuilder{
		RectangularBuilder{},
		OverlappingBuilder{},
		CrossBuilder{},
		LargeInnerBuilder{},
		NestBuilder{},
		PitBuilder{},
		LesserVaultBuilder{},
		GreaterVaultBuilder{},
		ThemedVaultBuilder{},
		SanctumBuilder{},
		FollyVaultBuilder{},
		CircularBuilder{},
		CompositeBuilder{},
		OrganicCavernBuilder{},
		GuardPostBuilder{},
		AmbushBuilder{},
	}
}

func TestEveryBuilder_ProducesPlanWithinBounds(t *testing.T) {
	for i, b := range allBuilders() {
		b := b
		t.Run(string(rune('a'+i)), func(t *testing.T) {
			grid := newTestGrid()
			rng := dungeon.NewGenerationContext(42)
			params := dungeon.GenerationParams{Seed: 42, Depth: b.MinDepth() + 1}

			plan, err := b.Build(grid, 3, 3, params, rng)
			require.NoError(t, err)
			assert.Equal(t, b.Archetype(), plan.Archetype)
			assert.True(t, plan.Bounds.Contains(plan.Center[0], plan.Center[1]))
		})
	}
}

func TestNestAndPitBuilders_SetCrowded(t *testing.T) {
	grid := newTestGrid()
	rng := dungeon.NewGenerationContext(1)
	params := dungeon.GenerationParams{Depth: 6}

	nestPlan, err := NestBuilder{}.Build(grid, 3, 3, params, rng)
	require.NoError(t, err)
	assert.True(t, nestPlan.Crowded)

	pitPlan, err := PitBuilder{}.Build(grid, 20, 3, params, rng)
	require.NoError(t, err)
	assert.True(t, pitPlan.Crowded)
}

func TestGuardPostBuilder_ReportsGuardPost(t *testing.T) {
	grid := newTestGrid()
	rng := dungeon.NewGenerationContext(7)
	params := dungeon.GenerationParams{Depth: 10}

	plan, err := GuardPostBuilder{}.Build(grid, 3, 3, params, rng)
	require.NoError(t, err)
	assert.True(t, plan.GuardPost)
}

func TestCircularBuilder_PaintsCircularFloor(t *testing.T) {
	grid := newTestGrid()
	rng := dungeon.NewGenerationContext(3)
	params := dungeon.GenerationParams{Depth: 4}

	plan, err := CircularBuilder{}.Build(grid, 3, 3, params, rng)
	require.NoError(t, err)
	cx, cy := plan.Center[0], plan.Center[1]
	assert.True(t, grid.At(cx, cy).Feature.IsFloor())
}

func TestOrganicCavernBuilder_FixedFootprint(t *testing.T) {
	grid := newTestGrid()
	rng := dungeon.NewGenerationContext(9)
	params := dungeon.GenerationParams{Depth: 9}

	b := OrganicCavernBuilder{}
	plan, err := b.Build(grid, 3, 3, params, rng)
	require.NoError(t, err)
	assert.Equal(t, organicCavernSize, plan.Bounds.Width())
	assert.Equal(t, organicCavernSize, plan.Bounds.Height())
}

func TestSanctumBuilder_PaintsSanctumDoorWithoutVaultRecord(t *testing.T) {
	grid := newTestGrid()
	rng := dungeon.NewGenerationContext(5)
	params := dungeon.GenerationParams{Depth: 40}

	plan, err := SanctumBuilder{}.Build(grid, 3, 3, params, rng)
	require.NoError(t, err)
	assert.Equal(t, dungeon.ArchetypeSanctum, plan.Archetype)
	assert.True(t, grid.At(plan.Center[0], plan.Center[1]).Feature == dungeon.FeatureSanctumDoor)
}

func TestPickVault_ReturnsNilWhenPoolEmpty(t *testing.T) {
	rng := dungeon.NewGenerationContext(1)
	assert.Nil(t, pickVault(nil, 7, rng))
}

func TestPaint_DecodesRLEStreamOntoGrid(t *testing.T) {
	grid := newTestGrid()
	glyphs := []byte("%%%\n#.#\n%%%")
	runs := dungeon.EncodeRLE(glyphs)
	v := &VaultRecord{Type: 7, Width: 3, Height: 3, Text: runs}
	Paint(grid, v, 3, 3, nil, nil, dungeon.NewGenerationContext(1))
	assert.Equal(t, dungeon.FeatureWallOuter, grid.At(3, 3).Feature)
}
