// Package director implements the Level Director (spec §4.J): the
// top-level generate_cave orchestrator that composes every other
// pkg/dungeon subpackage into one finished, populated grid, plus the
// terrain_gen wilderness entry point and the store/arena/quest special
// sublevel generators.
//
// Grounded on pkg/pcg/dungeon.go's DungeonGenerator.Generate (overall
// generate-validate-retry shape) and pkg/pcg/manager.go's PCGManager
// (registry + metrics + validator wiring); depth-proportional scaling
// knobs follow pkg/pcg/balancer.go.
package director

import (
	"context"
	"fmt"

	"dungeoncore/pkg/dungeon"
	"dungeoncore/pkg/dungeon/patrol"
	"dungeoncore/pkg/dungeon/rooms"
	"dungeoncore/pkg/dungeon/sectors"
	"dungeoncore/pkg/dungeon/tunnel"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Level is the published result of a generate_cave call (spec §7: "either
// a level is fully produced... or the caller waits while the director
// retries").
type Level struct {
	ID            string
	Grid          *dungeon.Grid
	Depth         int
	IsTown        bool
	IsTerminal    bool
	Destroyed     bool
	Lit           bool
	PlayerOriginX int
	PlayerOriginY int
	GuardRecords  []*patrol.GuardRecord
	Rating        int
	GoodItemFlag  bool
	Published     bool
}

// Director owns the registry of archetype/sector builders, the read-only
// content tables it consumes, and the quality-gate metrics/validator
// pair, per spec §9's "rearchitect ambient globals as a context object
// owning the grid, RNG façade, dun-state arena, and references to
// read-only data tables."
type Director struct {
	Registry  *dungeon.Registry
	Metrics   *dungeon.GenerationMetrics
	Validator *dungeon.ContentValidator

	Deities []dungeon.DeityRarity
	Traps   dungeon.TrapTable
	Objects dungeon.ObjectTable
	Races   dungeon.MonsterRaceTable

	// RetryLimiter throttles the attemptGenerate retry loop, mirroring
	// pkg/server/ratelimit.go's token-bucket shape applied to a different
	// concern: bounding how fast a caller can hammer GenerateCave with a
	// pathological seed/depth that keeps auto-scumming, rather than
	// bounding HTTP requests. Nil disables throttling (the default).
	RetryLimiter *rate.Limiter

	logger *logrus.Logger
}

// NewDirector builds a Director with every room/sector builder
// registered, wiring vaults into the vault archetypes 7, 8, 9 and 11 (the
// sanctum builder also receives them but does not read them). Pass
// nil for any content table the caller has no data for yet; the
// corresponding allocation steps degrade gracefully (skip, not panic).
func NewDirector(vaults []*rooms.VaultRecord, deities []dungeon.DeityRarity, traps dungeon.TrapTable, objects dungeon.ObjectTable, races dungeon.MonsterRaceTable, logger *logrus.Logger) (*Director, error) {
	if logger == nil {
		logger = logrus.New()
	}
	reg := dungeon.NewRegistry(logger)

	roomBuilders := []dungeon.RoomBuilder{
		rooms.RectangularBuilder{},
		rooms.OverlappingBuilder{},
		rooms.CrossBuilder{},
		rooms.LargeInnerBuilder{},
		rooms.NestBuilder{},
		rooms.PitBuilder{},
		rooms.LesserVaultBuilder{Vaults: vaults, Objects: objects, Traps: traps},
		rooms.GreaterVaultBuilder{Vaults: vaults, Objects: objects, Traps: traps},
		rooms.ThemedVaultBuilder{Vaults: vaults, Objects: objects, Traps: traps},
		rooms.SanctumBuilder{Vaults: vaults},
		rooms.FollyVaultBuilder{Vaults: vaults, Objects: objects, Traps: traps},
		rooms.CircularBuilder{},
		rooms.CompositeBuilder{},
		rooms.OrganicCavernBuilder{},
		rooms.GuardPostBuilder{},
		rooms.AmbushBuilder{},
	}
	for _, b := range roomBuilders {
		if err := reg.RegisterRoomBuilder(b); err != nil {
			return nil, fmt.Errorf("director: registering room builder: %w", err)
		}
	}
	if err := sectors.RegisterAll(reg); err != nil {
		return nil, fmt.Errorf("director: registering sector builders: %w", err)
	}

	return &Director{
		Registry:  reg,
		Metrics:   dungeon.NewGenerationMetrics(nil),
		Validator: dungeon.NewContentValidator(logger),
		Deities:   deities,
		Traps:     traps,
		Objects:   objects,
		Races:     races,
		logger:    logger,
	}, nil
}

// maxGenerationAttempts bounds the retry loop against a pathological
// seed/depth combination that never satisfies auto-scum or overflows
// every attempt — spec §7 mode 1 describes retry-on-reject, not
// infinite retry.
const maxGenerationAttempts = 50

// feelingThreshold gates auto-scum rejection (spec §4.J step 20, §9
// GLOSSARY "Rating/feeling"); chosen low enough that only a nearly empty
// level (no sectors, no crowded room, no good item) gets rejected.
const feelingThreshold = 1

// GenerateCave is the top-level entry point (spec §4.J): it mutates a
// fresh grid through every director step, retrying from a new RNG state
// on auto-scum rejection, and returns the published Level.
func (d *Director) GenerateCave(params dungeon.GenerationParams) (*Level, error) {
	if params.Depth < 0 {
		return nil, dungeon.NewInvalidInputError(fmt.Sprintf("depth %d out of range", params.Depth))
	}

	rng := dungeon.NewGenerationContext(params.Seed)
	isTown := params.Depth == 0
	isTerminal := params.Depth >= 127 // spec leaves the terminal depth unspecified beyond "terminal depth"; 127 matches the classic roguelike ceiling this lineage targets

	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		if d.RetryLimiter != nil {
			if err := d.RetryLimiter.Wait(context.Background()); err != nil {
				return nil, fmt.Errorf("director: retry limiter: %w", err)
			}
		}
		level, err := d.attemptGenerate(params, isTown, isTerminal, rng)
		if err != nil {
			if dungeon.IsRejection(err) {
				d.Metrics.RecordAutoScumReject()
				d.logger.WithFields(logrus.Fields{"depth": params.Depth, "attempt": attempt, "cause": err}).Info("level rejected, retrying")
				continue
			}
			return nil, err
		}
		d.Metrics.RecordLevelGenerated(level.Rating)
		return level, nil
	}
	return nil, dungeon.NewRejectionError(fmt.Sprintf("exceeded %d generation attempts at depth %d", maxGenerationAttempts, params.Depth))
}

// toGeneratedLevel adapts a Level and its guard records to the
// validator's GeneratedLevel/GuardRecordView shape, which avoids a
// direct dependency on pkg/dungeon/patrol to keep spec §8's rule set
// free of an import cycle.
func toGeneratedLevel(level *Level) *dungeon.GeneratedLevel {
	views := make([]dungeon.GuardRecordView, len(level.GuardRecords))
	for i, g := range level.GuardRecords {
		wps := make([][2]int, len(g.Waypoints))
		for j, wp := range g.Waypoints {
			wps[j] = [2]int{wp.X, wp.Y}
		}
		views[i] = dungeon.GuardRecordView{HomeX: g.HomeX, HomeY: g.HomeY, Waypoints: wps}
	}
	return &dungeon.GeneratedLevel{
		Grid:          level.Grid,
		PlayerOriginX: level.PlayerOriginX,
		PlayerOriginY: level.PlayerOriginY,
		Depth:         level.Depth,
		IsTown:        level.IsTown,
		IsTerminal:    level.IsTerminal,
		GuardRecords:  views,
	}
}

// attemptGenerate runs the 20-step sequence once, per spec §4.J.
func (d *Director) attemptGenerate(params dungeon.GenerationParams, isTown, isTerminal bool, rng *dungeon.GenerationContext) (*Level, error) {
	grid := dungeon.NewGrid(dungeon.DefaultWidth, dungeon.DefaultHeight)
	dun := newDunState()

	// Step 2: background fill.
	lit := backgroundFill(grid, params.Depth, rng)

	// Step 3: destroyed-level roll.
	destroyed := params.Depth > 10 && rng.RandomChoice(15) == 0

	// Step 4: block grid + sector map.
	blocks := newBlockGrid(grid.Width, grid.Height)

	// Step 5: sector pass.
	cumulativeRating := d.sectorPass(grid, blocks, dun, params, rng)

	// Step 6: room placement ladder.
	weirdIsRare := isTown // towns favor plain rooms over themed vaults
	cumulativeRating += d.roomPass(grid, blocks, dun, params, destroyed, weirdIsRare, rng)

	// Step 7: outer permanent-solid ring.
	grid.PaintOuterRing()

	// Step 8: tunnel pass.
	d.tunnelPass(grid, dun, rng)

	// Step 9: junction doors.
	tunnel.JunctionDoors(grid, dun.Doors, rng)

	// Step 10: streamers, for every unlit background: the WALL_EXTRA
	// ("unspecified") fill and also the chaos-fog and fog-dark fills.
	if !lit {
		carveStreamers(grid, rng)
	}

	// Step 11: destroyed-level perturbation.
	if destroyed {
		perturbDestroyed(grid, rng)
	}

	// Step 12: nature streamers.
	addNatureStreamers(grid, params.Depth, rng)

	// Step 13: stair allocation.
	var downCount, upCount int
	if !isTown {
		upCount = allocateStairs(grid, dungeon.StairUp, 40, 60, 3, rng)
	}
	if !isTerminal {
		downCount = allocateStairs(grid, dungeon.StairDown, 100, 120, 3, rng)
	}

	// Step 14: player origin.
	originX, originY := findPlayerOrigin(grid, upCount > 0, rng)

	// Step 15: monster allocation + patrol/guard records.
	guards := d.allocateMonsters(grid, dun, params, rng)
	guards = append(guards, d.materializeVaultMonsters(grid, dun.VaultMonsters, params.Depth, len(guards), rng)...)

	// Step 16: items/traps/rubble/altars/gold.
	d.allocateObjectsAndHazards(grid, params, dun.Crowded, rng)

	// Step 17: populate_features.
	populateFeatures(grid, rng)

	// Step 18: populate_cover_features, run only after all terrain mutation
	// (spec §9's resolution of the populate_cover_features ordering note).
	populateCoverFeatures(grid, dun.Centers, rng)

	// Step 19: lighting pass.
	if lit {
		applyLighting(grid)
	}

	goodItemFlag := cumulativeRating > 20
	rating := dungeon.FeelingScore(cumulativeRating, goodItemFlag)

	level := &Level{
		ID:            uuid.NewString(),
		Grid:          grid,
		Depth:         params.Depth,
		IsTown:        isTown,
		IsTerminal:    isTerminal,
		Destroyed:     destroyed,
		Lit:           lit,
		PlayerOriginX: originX,
		PlayerOriginY: originY,
		GuardRecords:  guards,
		Rating:        rating,
		GoodItemFlag:  goodItemFlag,
	}

	// Step 20: feeling-score evaluation with auto-scum retry, plus
	// overflow rejection (spec §7 mode 1).
	if dungeon.ShouldAutoScum(rating, feelingThreshold) {
		return nil, dungeon.NewRejectionError("feeling score below threshold")
	}
	if downCount == 0 && !isTown && !isTerminal {
		return nil, dungeon.NewRejectionError("no down-stairs placed")
	}
	if result := d.Validator.Validate(toGeneratedLevel(level)); !result.Passed {
		d.logger.WithField("issues", result.Issues).Info("level failed content validation, retrying")
		return nil, dungeon.NewRejectionError(fmt.Sprintf("content validation failed: %d issue(s)", len(result.Issues)))
	}

	level.Published = true
	return level, nil
}
