package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoomBuilder struct {
	archetype RoomArchetype
}

func (f fakeRoomBuilder) Archetype() RoomArchetype { return f.archetype }
func (f fakeRoomBuilder) MinDepth() int            { return 0 }
func (f fakeRoomBuilder) BlockSpan() (dy, dx int)  { return 1, 1 }
func (f fakeRoomBuilder) Build(grid *Grid, topLeftX, topLeftY int, params GenerationParams, rng *GenerationContext) (RoomPlan, error) {
	return RoomPlan{Archetype: f.archetype}, nil
}

type fakeSectorBuilder struct {
	kind SectorKind
}

func (f fakeSectorBuilder) Kind() SectorKind { return f.kind }
func (f fakeSectorBuilder) Build(grid *Grid, bounds Rectangle, params GenerationParams, rng *GenerationContext) (SectorPlan, error) {
	return SectorPlan{Kind: f.kind}, nil
}

func TestRegistry_RegisterAndGetRoomBuilder(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.RegisterRoomBuilder(fakeRoomBuilder{archetype: ArchetypePit}))

	got, err := reg.GetRoomBuilder(ArchetypePit)
	require.NoError(t, err)
	assert.Equal(t, ArchetypePit, got.Archetype())
}

func TestRegistry_DuplicateRoomArchetypeRejected(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.RegisterRoomBuilder(fakeRoomBuilder{archetype: ArchetypeNest}))
	err := reg.RegisterRoomBuilder(fakeRoomBuilder{archetype: ArchetypeNest})
	assert.Error(t, err)
}

func TestRegistry_GetUnregisteredBuilderErrors(t *testing.T) {
	reg := NewRegistry(nil)
	_, err := reg.GetRoomBuilder(ArchetypeNest)
	assert.Error(t, err)

	_, err = reg.GetSectorBuilder(SectorCavern)
	assert.Error(t, err)
}

func TestRegistry_RoomArchetypesReturnsSortedAndStable(t *testing.T) {
	reg := NewRegistry(nil)
	archetypes := []RoomArchetype{
		ArchetypePit, ArchetypeNest, ArchetypeCross, ArchetypeGuardPost,
	}
	for _, a := range archetypes {
		require.NoError(t, reg.RegisterRoomBuilder(fakeRoomBuilder{archetype: a}))
	}

	first := reg.RoomArchetypes()
	second := reg.RoomArchetypes()
	assert.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.LessOrEqual(t, first[i-1], first[i])
	}
}
