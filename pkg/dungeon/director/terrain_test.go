package director

import (
	"testing"

	"dungeoncore/pkg/dungeon"
	"dungeoncore/pkg/dungeon/rooms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerrainGen_SharesEdgeHeightsWithAdjacentTile(t *testing.T) {
	d := newTestDirector(t)

	a, err := d.TerrainGen(WildernessParams{WorldX: 0, WorldY: 0, Seed: 99})
	require.NoError(t, err)
	b, err := d.TerrainGen(WildernessParams{WorldX: 1, WorldY: 0, Seed: 99})
	require.NoError(t, err)

	assert.Equal(t, a.Grid.At(a.Grid.Width-1, 0).Feature, b.Grid.At(0, 0).Feature)
}

func TestTerrainGen_WateryUsesWaterFeatures(t *testing.T) {
	d := newTestDirector(t)

	level, err := d.TerrainGen(WildernessParams{WorldX: 5, WorldY: 5, Seed: 1, Watery: true})
	require.NoError(t, err)

	found := false
	level.Grid.Each(func(x, y int, c dungeon.Cell) {
		switch c.Feature {
		case dungeon.FeatureWaterDeep, dungeon.FeatureWaterShallow, dungeon.FeatureMud, dungeon.FeatureSwamp, dungeon.FeatureGrass, dungeon.FeatureFloor:
			found = true
		}
	})
	assert.True(t, found)
}

func testVault() *rooms.VaultRecord {
	return &rooms.VaultRecord{
		Type:   1,
		Width:  5,
		Height: 3,
		Text:   dungeon.EncodeRLE([]byte("%%%%%#...#%%%%%")),
	}
}

func TestStoreGen_PaintsVaultOnBedrock(t *testing.T) {
	d := newTestDirector(t)
	level := d.StoreGen(testVault(), 1)

	assert.True(t, level.IsTown)
	assert.True(t, level.Published)
	assert.Equal(t, dungeon.FeaturePermSolid, level.Grid.At(0, 0).Feature)
}

func TestQuestGen_WithNilBaseUsesBedrock(t *testing.T) {
	d := newTestDirector(t)
	level, err := d.QuestGen(testVault(), nil, 1)
	require.NoError(t, err)
	assert.False(t, level.IsTown)
	assert.Equal(t, dungeon.FeaturePermSolid, level.Grid.At(0, 0).Feature)
}

func TestQuestGen_WithWildernessBasePaintsOverTile(t *testing.T) {
	d := newTestDirector(t)
	base := &WildernessParams{WorldX: 2, WorldY: 2, Seed: 3}
	level, err := d.QuestGen(testVault(), base, 1)
	require.NoError(t, err)
	assert.Equal(t, dungeon.DefaultWidth, level.Grid.Width)
}

func TestTownGen_MarksLevelAsTown(t *testing.T) {
	d := newTestDirector(t)
	level, err := d.TownGen(WildernessParams{WorldX: 0, WorldY: 0, Seed: 1})
	require.NoError(t, err)
	assert.True(t, level.IsTown)
}
