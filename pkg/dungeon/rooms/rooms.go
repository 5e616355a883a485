// Package rooms implements 16 typed Room Archetype builders (spec §4.E;
// types 15 and 16 are reserved): small strategy objects that each paint
// one room kind at a given grid location and return a RoomPlan
// describing what they painted.
//
// Grounded on pkg/pcg/levels/rooms.go's per-type RoomGenerator
// implementations (CombatRoomGenerator, TreasureRoomGenerator, ...), each
// built on a shared generateBasicRoom-style helper; the organic-cavern
// archetype (type 14) additionally cross-checks against
// _examples/other_examples's Gearworld cellular_automata_dungeon.go CA
// threshold/cleanup idiom.
package rooms

import (
	"dungeoncore/pkg/dungeon"

	"github.com/sirupsen/logrus"
)

// baseRoom paints a simple rectangular room given a cell-grid top-left
// corner and block span, shared by every archetype that starts from a
// plain rectangle before adding type-specific interior features.
func baseRoom(grid *dungeon.Grid, topLeftX, topLeftY, width, height int, depth int, rng *dungeon.GenerationContext) dungeon.Rectangle {
	rect := dungeon.Rectangle{X1: topLeftX, Y1: topLeftY, X2: topLeftX + width - 1, Y2: topLeftY + height - 1}
	dungeon.PaintFloor(grid, rect, depth, rng)
	dungeon.PaintWallRect(grid, rect, dungeon.FeatureWallOuter)
	return rect
}

// cellSpan converts a block-grid (dy, dx) span into a cell-grid
// (width, height) using the spec §3 block size.
func cellSpan(dy, dx int) (width, height int) {
	return dx * dungeon.BlockGridSize, dy * dungeon.BlockGridSize
}

var log = logrus.New()

// RegisterAll registers every archetype builder in this package against
// reg, mirroring pkg/pcg/levels/generator.go's
// registerDefaultRoomGenerators.
func RegisterAll(reg *dungeon.Registry) error {
	builders := []dungeon.RoomBuilder{
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
	for _, b := range builders {
		if err := reg.RegisterRoomBuilder(b); err != nil {
			return err
		}
	}
	return nil
}
