// Package patrol implements the per-monster Patrol State Machine (spec
// §4.I): guard records, waypoint route generation, the 6-state
// transition table, alert propagation, and squad patrol offsetting.
//
// New package: the teacher has no monster-AI subsystem to ground this
// on directly, so the struct-plus-methods shape (a config-style record
// type with small, single-purpose methods) follows the convention used
// throughout pkg/pcg's generator types (e.g. SeedManager, GenerationContext).
package patrol

import (
	"math"

	"dungeoncore/pkg/dungeon"
)

// State is one of the 6 guard states (spec §4.I).
type State uint8

const (
	StatePatrol State = iota
	StateGuard
	StateSleep
	StateAlert
	StateChase
	StateReturn
)

// PatrolType selects how waypoints are generated and advanced.
type PatrolType uint8

const (
	PatrolRandom PatrolType = iota
	PatrolCircuit
	PatrolBackForth
	PatrolStationary
)

// Waypoint is one stop on a patrol route.
type Waypoint struct {
	Y, X      int
	WaitTurns int
}

// GuardRecord is the per-monster patrol state, lazily allocated on first
// assignment (spec §4.I). current_waypoint's historical top-bit direction
// hack (spec §9) is rearchitected here as an explicit Direction field.
// CurrentX/CurrentY track the monster's live position; HomeX/HomeY never
// change once assigned.
type GuardRecord struct {
	MonsterID  int
	State      State
	PatrolType PatrolType

	HomeY, HomeX       int
	CurrentY, CurrentX int
	AlertY, AlertX     int
	ChaseTimer         int

	Waypoints       []Waypoint
	CurrentWaypoint int
	Direction       int // +1 forward, -1 backward; only meaningful for PatrolBackForth

	PatrolRadius int

	// Smart and PackMember gate whether alert_nearby_guards recruits this
	// monster (spec §4.I: "SMART or a pack-member (race-flag FRIENDS)").
	Smart      bool
	PackMember bool
}

// NewGuardRecord allocates a guard record rooted at (homeX, homeY),
// generating its waypoint route immediately.
func NewGuardRecord(monsterID, homeX, homeY int, patrolType PatrolType, patrolRadius int, grid *dungeon.Grid, rng *dungeon.GenerationContext) *GuardRecord {
	g := &GuardRecord{
		MonsterID:    monsterID,
		State:        StatePatrol,
		PatrolType:   patrolType,
		HomeX:        homeX,
		HomeY:        homeY,
		CurrentX:     homeX,
		CurrentY:     homeY,
		Direction:    1,
		PatrolRadius: patrolRadius,
	}
	g.Waypoints = GenerateWaypoints(grid, homeX, homeY, patrolType, patrolRadius, rng)
	return g
}

// GenerateWaypoints builds a route per spec §4.I: CIRCUIT/BACKFORTH place
// 4-7 waypoints evenly around a circle of radius 3..patrolRadius centered
// on home, each with a 5..(5+rest) wait; invalid cells collapse to home.
// RANDOM keeps an empty route (it wanders instead). STATIONARY stores
// exactly one waypoint at home.
func GenerateWaypoints(grid *dungeon.Grid, homeX, homeY int, patrolType PatrolType, patrolRadius int, rng *dungeon.GenerationContext) []Waypoint {
	switch patrolType {
	case PatrolStationary:
		return []Waypoint{{Y: homeY, X: homeX, WaitTurns: 0}}
	case PatrolRandom:
		return nil
	case PatrolCircuit, PatrolBackForth:
		return generateRingWaypoints(grid, homeX, homeY, patrolRadius, rng)
	default:
		return nil
	}
}

func generateRingWaypoints(grid *dungeon.Grid, homeX, homeY, patrolRadius int, rng *dungeon.GenerationContext) []Waypoint {
	if patrolRadius < 3 {
		patrolRadius = 3
	}
	count := 4 + rng.RandomChoice(4) // 4..7
	radius := 3 + rng.RandomChoice(patrolRadius-2)
	rest := rng.RandomChoice(6) // rest ∈ [0,5]

	waypoints := make([]Waypoint, count)
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		dx := int(float64(radius) * math.Cos(angle))
		dy := int(float64(radius) * math.Sin(angle))
		wx, wy := homeX+dx, homeY+dy

		wait := 5 + rng.RandomChoice(rest+1)
		if !grid.InBounds(wx, wy) || !grid.IsFloor(wx, wy) {
			wx, wy = homeX, homeY
		}
		waypoints[i] = Waypoint{Y: wy, X: wx, WaitTurns: wait}
	}
	return waypoints
}

// AdvanceWaypoint moves to the next waypoint per the algorithm-dependent
// rule from spec §4.I: CIRCUIT wraps modulo N; BACKFORTH reverses at the
// ends via Direction; RANDOM reseeds its single waypoint within a box of
// half-side patrol_radius around home.
func AdvanceWaypoint(g *GuardRecord, grid *dungeon.Grid, rng *dungeon.GenerationContext) {
	switch g.PatrolType {
	case PatrolCircuit:
		if len(g.Waypoints) == 0 {
			return
		}
		g.CurrentWaypoint = (g.CurrentWaypoint + 1) % len(g.Waypoints)
	case PatrolBackForth:
		if len(g.Waypoints) == 0 {
			return
		}
		next := g.CurrentWaypoint + g.Direction
		if next >= len(g.Waypoints) || next < 0 {
			g.Direction = -g.Direction
			next = g.CurrentWaypoint + g.Direction
		}
		g.CurrentWaypoint = next
	case PatrolRandom:
		half := g.PatrolRadius
		if half < 1 {
			half = 1
		}
		wx := g.HomeX + rng.RandomIntRange(-half, half)
		wy := g.HomeY + rng.RandomIntRange(-half, half)
		if !grid.InBounds(wx, wy) || !grid.IsFloor(wx, wy) {
			wx, wy = g.HomeX, g.HomeY
		}
		if len(g.Waypoints) == 0 {
			g.Waypoints = []Waypoint{{Y: wy, X: wx}}
		} else {
			g.Waypoints[0] = Waypoint{Y: wy, X: wx}
		}
	}
}

// AlertNearbyGuards scans every candidate within Chebyshev distance
// radius of (y,x) and, for each SMART-or-pack-member guard currently in
// SLEEP/GUARD/PATROL, transitions it to ALERT with alert_* set to (y,x)
// (spec §4.I).
func AlertNearbyGuards(candidates []*GuardRecord, y, x, radius int) {
	for _, g := range candidates {
		if !g.Smart && !g.PackMember {
			continue
		}
		if g.State != StateSleep && g.State != StateGuard && g.State != StatePatrol {
			continue
		}
		if chebyshev(g.CurrentX-x, g.CurrentY-y) > radius {
			continue
		}
		g.State = StateAlert
		g.AlertY, g.AlertX = y, x
	}
}

func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// SetupSquadPatrol assigns one shared waypoint ring to every member of a
// group, offsetting each member's CurrentWaypoint by i*N/groupSize so
// they spread evenly around the loop (spec §4.I "Squad patrol").
func SetupSquadPatrol(members []*GuardRecord, ring []Waypoint) {
	n := len(ring)
	groupSize := len(members)
	if n == 0 || groupSize == 0 {
		return
	}
	for i, g := range members {
		g.Waypoints = ring
		g.CurrentWaypoint = (i * n / groupSize) % n
	}
}

// TickInput is the caller-supplied combat/perception state a single
// Tick call needs; patrol has no visibility into the combat system
// itself (spec §1's "combat resolution... out of scope"), so LoS and
// stealth values are passed in rather than computed here.
type TickInput struct {
	PlayerHasLoS       bool
	PlayerStealthScore int // stealth + cover-stealth, precomputed by the caller
	MonsterAlertness   int
	PlayerY, PlayerX   int
	Nearby             []*GuardRecord // candidates for alert_nearby_guards
}

// Step reports whether Tick moved the guard and by how much; g's
// CurrentX/CurrentY are already updated by the time Tick returns.
type Step struct {
	DY, DX int
	Moved  bool
}

const defaultChaseTimer = 8

// Tick applies the spec §4.I transition table once, mutating g in place
// (state, position, waypoint bookkeeping) and returning the movement
// step taken, if any.
func Tick(g *GuardRecord, grid *dungeon.Grid, in TickInput, rng *dungeon.GenerationContext) Step {
	switch g.State {
	case StateSleep:
		if in.PlayerHasLoS && in.PlayerStealthScore < in.MonsterAlertness {
			g.State = StateChase
			g.ChaseTimer = defaultChaseTimer
			g.AlertY, g.AlertX = in.PlayerY, in.PlayerX
			AlertNearbyGuards(in.Nearby, g.CurrentY, g.CurrentX, 10)
		}
		return Step{}

	case StateGuard:
		if in.PlayerHasLoS {
			g.State = StateChase
			g.ChaseTimer = defaultChaseTimer
			g.AlertY, g.AlertX = in.PlayerY, in.PlayerX
			AlertNearbyGuards(in.Nearby, g.CurrentY, g.CurrentX, 10)
		}
		return Step{}

	case StateAlert:
		if g.CurrentX == g.AlertX && g.CurrentY == g.AlertY {
			g.State = StateReturn
			return Step{}
		}
		if in.PlayerHasLoS {
			g.State = StateChase
			g.ChaseTimer = defaultChaseTimer
			return Step{}
		}
		return moveToward(g, g.AlertX, g.AlertY, grid)

	case StateChase:
		if in.PlayerHasLoS {
			g.AlertY, g.AlertX = in.PlayerY, in.PlayerX
			g.ChaseTimer = defaultChaseTimer
			return moveToward(g, in.PlayerX, in.PlayerY, grid)
		}
		if g.ChaseTimer > 0 {
			g.ChaseTimer--
			return moveToward(g, g.AlertX, g.AlertY, grid)
		}
		g.State = StateReturn
		return Step{}

	case StateReturn:
		tx, ty := returnTarget(g)
		if g.CurrentX == tx && g.CurrentY == ty {
			if g.PatrolType == PatrolStationary || (g.PatrolType == PatrolRandom && len(g.Waypoints) == 0) {
				g.State = StateGuard
			} else {
				g.State = StatePatrol
			}
			return Step{}
		}
		return moveToward(g, tx, ty, grid)

	case StatePatrol:
		return tickPatrol(g, grid, in, rng)
	}
	return Step{}
}

func returnTarget(g *GuardRecord) (x, y int) {
	if len(g.Waypoints) == 0 {
		return g.HomeX, g.HomeY
	}
	wp := g.Waypoints[g.CurrentWaypoint]
	return wp.X, wp.Y
}

func tickPatrol(g *GuardRecord, grid *dungeon.Grid, in TickInput, rng *dungeon.GenerationContext) Step {
	if in.PlayerHasLoS {
		g.State = StateChase
		g.ChaseTimer = defaultChaseTimer
		g.AlertY, g.AlertX = in.PlayerY, in.PlayerX
		AlertNearbyGuards(in.Nearby, g.CurrentY, g.CurrentX, 10)
		return Step{}
	}

	if len(g.Waypoints) == 0 {
		if rng.PercentChance(30) {
			return randomCardinalStep(g, rng)
		}
		return Step{}
	}

	wp := g.Waypoints[g.CurrentWaypoint]
	if g.CurrentX == wp.X && g.CurrentY == wp.Y {
		wp.WaitTurns--
		g.Waypoints[g.CurrentWaypoint] = wp
		if wp.WaitTurns <= 0 {
			AdvanceWaypoint(g, grid, rng)
			rest := rng.RandomChoice(6)
			refreshed := g.Waypoints[g.CurrentWaypoint]
			refreshed.WaitTurns = 5 + rng.RandomChoice(rest+1)
			g.Waypoints[g.CurrentWaypoint] = refreshed
		}
		return Step{}
	}
	return moveToward(g, wp.X, wp.Y, grid)
}

// moveToward advances g one cardinal step toward (tx,ty), preferring
// whichever axis has the larger remaining distance, and applies it to
// g.CurrentX/CurrentY.
func moveToward(g *GuardRecord, tx, ty int, grid *dungeon.Grid) Step {
	dx, dy := tx-g.CurrentX, ty-g.CurrentY
	if dx == 0 && dy == 0 {
		return Step{}
	}

	var stepX, stepY int
	if abs(dx) >= abs(dy) {
		stepX = sign(dx)
	} else {
		stepY = sign(dy)
	}

	nx, ny := g.CurrentX+stepX, g.CurrentY+stepY
	if !grid.InBounds(nx, ny) || !grid.IsFloor(nx, ny) {
		return Step{}
	}
	g.CurrentX, g.CurrentY = nx, ny
	return Step{DX: stepX, DY: stepY, Moved: true}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func randomCardinalStep(g *GuardRecord, rng *dungeon.GenerationContext) Step {
	var dx, dy int
	switch rng.RandomChoice(4) {
	case 0:
		dy = -1
	case 1:
		dy = 1
	case 2:
		dx = -1
	default:
		dx = 1
	}
	g.CurrentX += dx
	g.CurrentY += dy
	return Step{DX: dx, DY: dy, Moved: true}
}
