package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedManager_DeriveContextSeedIsDeterministic(t *testing.T) {
	mgr := NewSeedManager(42)

	a := mgr.DeriveContextSeed("sector:cavern")
	b := mgr.DeriveContextSeed("sector:cavern")
	c := mgr.DeriveContextSeed("sector:plaza")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerationContext_SameSeedSameSequence(t *testing.T) {
	ctx1 := NewGenerationContext(7)
	ctx2 := NewGenerationContext(7)

	for i := 0; i < 20; i++ {
		assert.Equal(t, ctx1.RandomChoice(1000), ctx2.RandomChoice(1000))
	}
}

func TestGenerationContext_PushQuickRestoresOnRelease(t *testing.T) {
	ctx := NewGenerationContext(7)
	assert.Equal(t, ModeStable, ctx.Mode())

	release := ctx.PushQuick(99)
	assert.Equal(t, ModeQuick, ctx.Mode())

	release()
	assert.Equal(t, ModeStable, ctx.Mode())
}

func TestGenerationContext_WeightedChoiceRespectsZeroWeights(t *testing.T) {
	ctx := NewGenerationContext(1)

	for i := 0; i < 50; i++ {
		choice := ctx.WeightedChoice([]int{0, 0, 5})
		assert.Equal(t, 2, choice)
	}
}

func TestGenerationContext_RandomIntRangeInclusive(t *testing.T) {
	ctx := NewGenerationContext(3)

	for i := 0; i < 100; i++ {
		v := ctx.RandomIntRange(3, 7)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 7)
	}
}
