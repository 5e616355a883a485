package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_StartsAllPermSolid(t *testing.T) {
	g := NewGrid(20, 10)

	assert.Equal(t, 20, g.Width)
	assert.Equal(t, 10, g.Height)
	g.Each(func(x, y int, c Cell) {
		assert.Equal(t, FeaturePermSolid, c.Feature)
	})
}

func TestGrid_PaintOuterRing(t *testing.T) {
	g := NewGrid(20, 10)
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			g.SetFeature(x, y, FeatureFloor)
		}
	}

	g.PaintOuterRing()

	for x := 0; x < g.Width; x++ {
		assert.Equal(t, FeaturePermSolid, g.At(x, 0).Feature)
		assert.Equal(t, FeaturePermSolid, g.At(x, g.Height-1).Feature)
	}
	for y := 0; y < g.Height; y++ {
		assert.Equal(t, FeaturePermSolid, g.At(0, y).Feature)
		assert.Equal(t, FeaturePermSolid, g.At(g.Width-1, y).Feature)
	}
	assert.Equal(t, FeatureFloor, g.At(5, 5).Feature)
}

func TestGrid_InBoundsFullyExcludesOuterRing(t *testing.T) {
	g := NewGrid(10, 10)

	assert.False(t, g.InBoundsFully(0, 5))
	assert.False(t, g.InBoundsFully(9, 5))
	assert.True(t, g.InBoundsFully(1, 1))
	assert.True(t, g.InBoundsFully(8, 8))
}

func TestGrid_IsNakedRequiresNoObjectMonsterOrGlyph(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetFeature(5, 5, FeatureFloor)

	assert.True(t, g.IsNaked(5, 5))

	c := g.At(5, 5)
	c.MonsterID = 3
	g.Set(5, 5, c)
	assert.False(t, g.IsNaked(5, 5))
}

func TestGrid_CountAdjacentWallsTreatsOffGridAsWall(t *testing.T) {
	g := NewGrid(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			g.SetFeature(x, y, FeatureFloor)
		}
	}

	// Corner cell: 5 of 8 neighbors are off-grid.
	assert.Equal(t, 5, g.CountAdjacentWalls(0, 0))
}

func TestGrid_SetPanicsOutOfBounds(t *testing.T) {
	g := NewGrid(5, 5)
	require.Panics(t, func() {
		g.SetFeature(-1, 0, FeatureFloor)
	})
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetFeature(2, 2, FeatureFloor)

	clone := g.Clone()
	clone.SetFeature(2, 2, FeatureWallExtra)

	assert.Equal(t, FeatureFloor, g.At(2, 2).Feature)
	assert.Equal(t, FeatureWallExtra, clone.At(2, 2).Feature)
}
