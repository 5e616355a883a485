package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullyEnclosedFloorGrid() *Grid {
	g := NewGrid(10, 10)
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			g.SetFeature(x, y, FeatureFloor)
			g.AddFlags(x, y, FlagRoom)
		}
	}
	g.PaintOuterRing()
	return g
}

func TestValidator_PassesOnWellFormedLevel(t *testing.T) {
	g := fullyEnclosedFloorGrid()
	g.SetFeature(2, 2, FeatureStairsUp)

	v := NewContentValidator(nil)
	level := &GeneratedLevel{Grid: g, PlayerOriginX: 5, PlayerOriginY: 5, Depth: 3}

	result := v.Validate(level)

	assert.True(t, result.Passed, "%+v", result.Issues)
}

func TestValidator_FlagsOuterRingViolation(t *testing.T) {
	g := fullyEnclosedFloorGrid()
	g.SetFeature(0, 0, FeatureFloor) // corrupt the ring
	g.SetFeature(2, 2, FeatureStairsUp)

	v := NewContentValidator(nil)
	level := &GeneratedLevel{Grid: g, PlayerOriginX: 5, PlayerOriginY: 5, Depth: 3}

	result := v.Validate(level)

	assert.False(t, result.Passed)
}

func TestValidator_FlagsUnreachableRoomCell(t *testing.T) {
	g := NewGrid(10, 10)
	g.PaintOuterRing()
	g.SetFeature(5, 5, FeatureFloor)
	g.AddFlags(5, 5, FlagRoom) // reachable origin
	g.SetFeature(2, 2, FeatureFloor)
	g.AddFlags(2, 2, FlagRoom) // isolated, unreachable
	g.SetFeature(5, 5, FeatureStairsUp)

	v := NewContentValidator(nil)
	level := &GeneratedLevel{Grid: g, PlayerOriginX: 5, PlayerOriginY: 5, Depth: 3}

	result := v.Validate(level)

	assert.False(t, result.Passed)
}

func TestValidator_FlagsGuardHomeOffFloor(t *testing.T) {
	g := fullyEnclosedFloorGrid()
	g.SetFeature(2, 2, FeatureStairsUp)

	v := NewContentValidator(nil)
	level := &GeneratedLevel{
		Grid: g, PlayerOriginX: 5, PlayerOriginY: 5, Depth: 3,
		GuardRecords: []GuardRecordView{{HomeX: 0, HomeY: 0}},
	}

	result := v.Validate(level)

	assert.False(t, result.Passed)
}
