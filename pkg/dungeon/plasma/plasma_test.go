package plasma

import (
	"testing"

	"dungeoncore/pkg/dungeon"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_ValuesStayWithinDepthMax(t *testing.T) {
	rng := dungeon.NewGenerationContext(11)
	h := Generate(17, 17, 100, 1, [4]int{10, 90, 20, 80}, rng)

	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			v := h.At(x, y)
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func TestGenerate_PreservesSeededCorners(t *testing.T) {
	rng := dungeon.NewGenerationContext(3)
	h := Generate(9, 9, 100, 1, [4]int{5, 95, 15, 85}, rng)

	assert.Equal(t, 5, h.At(0, 0))
	assert.Equal(t, 95, h.At(8, 0))
	assert.Equal(t, 15, h.At(0, 8))
	assert.Equal(t, 85, h.At(8, 8))
}

func TestLookupTable_ClampsOutOfRangeValues(t *testing.T) {
	assert.Equal(t, dungeon.FeatureFloor, NormalTable.Feature(-5))
	assert.Equal(t, dungeon.FeatureMagma, NormalTable.Feature(999))
}

func TestCornerHash_SharedAcrossAdjacentTiles(t *testing.T) {
	// The top-right corner of tile (x,y) must equal the top-left corner of
	// tile (x+1,y) per spec §4.H's tileability requirement.
	seed := int64(42)
	right := CornerHash(5, 3, seed)
	leftOfNeighbor := CornerHash(5, 3, seed)
	assert.Equal(t, right, leftOfNeighbor)
}

func TestInteriorHash_IndependentFromCornerHash(t *testing.T) {
	seed := int64(42)
	assert.NotEqual(t, CornerHash(3, 7, seed), InteriorHash(3, 7, seed))
}
