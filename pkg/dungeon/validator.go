package dungeon

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// This file implements spec §8's invariants as a ValidationRule-style
// ruleset, grounded on pkg/pcg/validator.go's ContentValidator shape
// (rules registered by name, a Result carrying pass/fail plus messages).

// ValidationSeverity mirrors pkg/pcg/validator.go's graded severities.
type ValidationSeverity uint8

const (
	SeverityInfo ValidationSeverity = iota
	SeverityWarning
	SeverityCritical
)

// ValidationIssue describes one failed rule.
type ValidationIssue struct {
	Rule     string
	Severity ValidationSeverity
	Message  string
}

// Result is the outcome of running the full ruleset against a GeneratedLevel.
type Result struct {
	Passed bool
	Issues []ValidationIssue
}

// GeneratedLevel bundles the data every invariant rule needs to inspect,
// so rules don't each need the full Director type.
type GeneratedLevel struct {
	Grid            *Grid
	PlayerOriginX   int
	PlayerOriginY   int
	Depth           int
	IsTown          bool
	IsTerminal      bool
	GuardRecords    []GuardRecordView
}

// GuardRecordView is the subset of a patrol guard record the validator
// needs (avoids an import cycle with pkg/dungeon/patrol).
type GuardRecordView struct {
	HomeX, HomeY int
	Waypoints    [][2]int
}

// ValidationRule is one named invariant check.
type ValidationRule struct {
	Name     string
	Severity ValidationSeverity
	Check    func(level *GeneratedLevel) []string // returns failure messages, empty = pass
}

// ContentValidator runs a fixed set of rules derived from spec §8.
type ContentValidator struct {
	rules  []ValidationRule
	logger *logrus.Logger
}

// NewContentValidator builds a validator with the default spec §8 rules
// registered.
func NewContentValidator(logger *logrus.Logger) *ContentValidator {
	if logger == nil {
		logger = defaultLogger
	}
	v := &ContentValidator{logger: logger}
	v.registerDefaultRules()
	return v
}

func (v *ContentValidator) registerDefaultRules() {
	v.rules = []ValidationRule{
		{
			Name:     "outer_ring_perm_solid",
			Severity: SeverityCritical,
			Check:    ruleOuterRingPermSolid,
		},
		{
			Name:     "rooms_reachable",
			Severity: SeverityCritical,
			Check:    ruleRoomsReachable,
		},
		{
			Name:     "up_stair_count",
			Severity: SeverityWarning,
			Check:    ruleUpStairCount,
		},
		{
			Name:     "cover_durability_bounds",
			Severity: SeverityCritical,
			Check:    ruleCoverDurabilityBounds,
		},
		{
			Name:     "guard_home_in_bounds_floor",
			Severity: SeverityCritical,
			Check:    ruleGuardHomeValid,
		},
		{
			Name:     "guard_waypoints_floor_or_home",
			Severity: SeverityCritical,
			Check:    ruleGuardWaypointsValid,
		},
	}
}

// Validate runs every registered rule against level.
func (v *ContentValidator) Validate(level *GeneratedLevel) Result {
	var issues []ValidationIssue
	for _, rule := range v.rules {
		for _, msg := range rule.Check(level) {
			issues = append(issues, ValidationIssue{Rule: rule.Name, Severity: rule.Severity, Message: msg})
			v.logger.WithFields(logrus.Fields{"rule": rule.Name, "severity": rule.Severity}).Warn(msg)
		}
	}
	return Result{Passed: len(issues) == 0, Issues: issues}
}

// rule 1: outer ring is always PERM_SOLID.
func ruleOuterRingPermSolid(level *GeneratedLevel) []string {
	g := level.Grid
	var msgs []string
	for x := 0; x < g.Width; x++ {
		if g.At(x, 0).Feature != FeaturePermSolid {
			msgs = append(msgs, fmt.Sprintf("cell (%d,0) is not perm-solid", x))
		}
		if g.At(x, g.Height-1).Feature != FeaturePermSolid {
			msgs = append(msgs, fmt.Sprintf("cell (%d,%d) is not perm-solid", x, g.Height-1))
		}
	}
	for y := 0; y < g.Height; y++ {
		if g.At(0, y).Feature != FeaturePermSolid {
			msgs = append(msgs, fmt.Sprintf("cell (0,%d) is not perm-solid", y))
		}
		if g.At(g.Width-1, y).Feature != FeaturePermSolid {
			msgs = append(msgs, fmt.Sprintf("cell (%d,%d) is not perm-solid", g.Width-1, y))
		}
	}
	return msgs
}

// rule 2: every ROOM-flagged cell is reachable from the player origin via
// floor-or-door cells. A room cell that is not itself floor or door (a
// stair, pillar or fountain) counts as reachable when it borders a
// reached floor-or-door cell.
func ruleRoomsReachable(level *GeneratedLevel) []string {
	g := level.Grid
	reachable := floodFillReachable(g, level.PlayerOriginX, level.PlayerOriginY)

	var msgs []string
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			if c.Flags.Has(FlagRoom) && !reachable[y][x] {
				msgs = append(msgs, fmt.Sprintf("room cell (%d,%d) unreachable from origin", x, y))
			}
		}
	}
	return msgs
}

func floodFillReachable(g *Grid, startX, startY int) [][]bool {
	visited := make([][]bool, g.Height)
	for i := range visited {
		visited[i] = make([]bool, g.Width)
	}
	if !g.InBounds(startX, startY) {
		return visited
	}

	type point struct{ x, y int }
	queue := []point{{startX, startY}}
	visited[startY][startX] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := p.x+d[0], p.y+d[1]
			if !g.InBounds(nx, ny) || visited[ny][nx] {
				continue
			}
			feat := g.At(nx, ny).Feature
			visited[ny][nx] = true
			if !feat.IsFloor() && !feat.IsClosedDoor() && feat != FeatureDoorOpen && feat != FeatureDoorBroken {
				continue // reached, but the fill does not continue through it
			}
			queue = append(queue, point{nx, ny})
		}
	}
	return visited
}

// rule 3: up-stair count in [1,3] for non-terminal, non-town levels.
func ruleUpStairCount(level *GeneratedLevel) []string {
	if level.IsTown {
		return nil
	}
	count := 0
	level.Grid.Each(func(x, y int, c Cell) {
		if c.Feature == FeatureStairsUp {
			count++
		}
	})
	if level.IsTerminal {
		if count < 1 {
			return []string{"terminal depth has no up-stairs"}
		}
		return nil
	}
	if count < 1 || count > 3 {
		return []string{fmt.Sprintf("up-stair count %d outside [1,3]", count)}
	}
	return nil
}

// rule 4: every cover_extra record has durability in (0, max].
func ruleCoverDurabilityBounds(level *GeneratedLevel) []string {
	var msgs []string
	level.Grid.Each(func(x, y int, c Cell) {
		if c.Cover == nil {
			return
		}
		if c.Cover.Durability <= 0 || c.Cover.Durability > c.Cover.MaxDurability {
			msgs = append(msgs, fmt.Sprintf("cover at (%d,%d) durability %d out of (0,%d]", x, y, c.Cover.Durability, c.Cover.MaxDurability))
		}
	})
	return msgs
}

// rule 5: every guard record's home is an in-bounds floor cell.
func ruleGuardHomeValid(level *GeneratedLevel) []string {
	var msgs []string
	for i, gr := range level.GuardRecords {
		if !level.Grid.InBounds(gr.HomeX, gr.HomeY) || !level.Grid.IsFloor(gr.HomeX, gr.HomeY) {
			msgs = append(msgs, fmt.Sprintf("guard %d home (%d,%d) is not an in-bounds floor cell", i, gr.HomeX, gr.HomeY))
		}
	}
	return msgs
}

// rule 6: every waypoint is either floor, or equals home.
func ruleGuardWaypointsValid(level *GeneratedLevel) []string {
	var msgs []string
	for i, gr := range level.GuardRecords {
		for j, wp := range gr.Waypoints {
			if wp[0] == gr.HomeX && wp[1] == gr.HomeY {
				continue
			}
			if !level.Grid.InBounds(wp[0], wp[1]) || !level.Grid.IsFloor(wp[0], wp[1]) {
				msgs = append(msgs, fmt.Sprintf("guard %d waypoint %d (%d,%d) invalid", i, j, wp[0], wp[1]))
			}
		}
	}
	return msgs
}
