// Package tunnel implements the Tunneler (spec §4.G): the shared
// wall-piercing bookkeeping plus the straight-with-bends and
// winding/drunkard corridor algorithms, and the junction-door pass.
//
// Grounded on pkg/pcg/levels/corridors.go's CorridorPlanner, whose
// style-dispatched generateStraightPath/generateWindyPath pair is the
// direct ancestor of Straight/Winding below; the piercing/door-queue
// bookkeeping is spec-original since the teacher's corridors never
// carve through solid terrain.
package tunnel

import "dungeoncore/pkg/dungeon"

// Direction is one of the 4 cardinal directions.
type Direction uint8

const (
	DirNorth Direction = iota
	DirSouth
	DirEast
	DirWest
)

// Result is the bookkeeping a tunneler accumulates while carving: the
// granite-family cells converted to floor, the WALL_OUTER cells pierced,
// the cells where a door may later be placed, and whether carving
// finished. Reached is true when the target was reached, and also when
// the straight tunneler stopped early on its DunTunCon roll.
type Result struct {
	Tunnel  [][2]int
	Walls   [][2]int
	Doors   [][2]int
	Reached bool
}

// correctDir returns the cardinal direction along the axis with the
// greater absolute distance to the target, choosing the x axis on a tie
// (spec §4.G "correct_dir(src→dst)").
func correctDir(fromX, fromY, toX, toY int) Direction {
	dx, dy := toX-fromX, toY-fromY
	if abs(dx) >= abs(dy) {
		if dx >= 0 {
			return DirEast
		}
		return DirWest
	}
	if dy >= 0 {
		return DirSouth
	}
	return DirNorth
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func step(x, y int, dir Direction) (int, int) {
	switch dir {
	case DirNorth:
		return x, y - 1
	case DirSouth:
		return x, y + 1
	case DirEast:
		return x + 1, y
	default:
		return x - 1, y
	}
}

// category classifies a cell the tunneler is about to step onto, per
// spec §4.G's shared bookkeeping rules.
type category uint8

const (
	catReject    category = iota // permanent-outer/solid or wall-solid: tunneler must pick another direction
	catRoom                      // ROOM-flagged: move freely, no carving
	catWallOuter                 // entering WALL_OUTER: accept into walls[], pierce neighborhood to solid
	catGranite                   // granite family: accept into tunnel[] for later floor conversion
	catFloor                     // existing corridor/room floor: candidate for doors[]
)

// pierce classifies (x,y) and, for WALL_OUTER, performs the 3x3
// neighborhood-to-solid conversion side effect described in spec §4.G.
func pierce(grid *dungeon.Grid, x, y int, dir Direction) category {
	feat := grid.At(x, y).Feature
	if feat == dungeon.FeaturePermOuter || feat == dungeon.FeaturePermSolid || feat == dungeon.FeatureWallSolid {
		return catReject
	}
	if grid.At(x, y).Flags.Has(dungeon.FlagRoom) {
		return catRoom
	}
	if feat == dungeon.FeatureWallOuter {
		nx, ny := step(x, y, dir)
		if !grid.InBounds(nx, ny) {
			return catReject
		}
		nextFeat := grid.At(nx, ny).Feature
		if nextFeat == dungeon.FeaturePermOuter || nextFeat == dungeon.FeaturePermSolid {
			return catReject
		}
		convertNeighborhoodToSolid(grid, x, y)
		return catWallOuter
	}
	if feat.IsGraniteOrHarder() {
		return catGranite
	}
	return catFloor
}

// convertNeighborhoodToSolid converts the 3x3 WALL_OUTER neighborhood of
// (x,y) to WALL_SOLID, preventing adjacent double-piercing.
func convertNeighborhoodToSolid(grid *dungeon.Grid, x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if !grid.InBounds(nx, ny) {
				continue
			}
			if grid.At(nx, ny).Feature == dungeon.FeatureWallOuter {
				grid.SetFeature(nx, ny, dungeon.FeatureWallSolid)
			}
		}
	}
}

// commit converts every cell in tunnel to floor.
func commit(grid *dungeon.Grid, r *Result) {
	for _, p := range r.Tunnel {
		grid.SetFeature(p[0], p[1], dungeon.FeatureFloor)
	}
}

// StraightTunneler implements spec §4.G's straight-with-bends algorithm:
// 30% re-correct chance per step, 10% of those randomize to any
// cardinal, 2000-iteration cap, with early termination once at least 10
// cells off-axis and a coin of probability 100-dunTunCon passes.
type StraightTunneler struct {
	// DunTunCon is DUN_TUN_CON, the tunnel-connectivity tuning knob (spec
	// §4.G); higher values make the tunneler less willing to stop early.
	DunTunCon int
}

const straightMaxIterations = 2000

func (t StraightTunneler) Carve(grid *dungeon.Grid, startX, startY, targetX, targetY int, rng *dungeon.GenerationContext) Result {
	r := Result{}
	x, y := startX, startY
	dir := correctDir(x, y, targetX, targetY)
	doorFlag := false
	offAxis := 0

	for i := 0; i < straightMaxIterations; i++ {
		if x == targetX && y == targetY {
			r.Reached = true
			break
		}

		if rng.PercentChance(30) {
			dir = correctDir(x, y, targetX, targetY)
			if rng.PercentChance(10) {
				dir = Direction(rng.RandomChoice(4))
			}
		}

		nx, ny := step(x, y, dir)
		if !grid.InBounds(nx, ny) {
			dir = correctDir(x, y, targetX, targetY)
			continue
		}

		cat := pierce(grid, nx, ny, dir)
		switch cat {
		case catReject:
			dir = Direction(rng.RandomChoice(4))
			continue
		case catWallOuter:
			r.Walls = append(r.Walls, [2]int{nx, ny})
			doorFlag = true
		case catGranite:
			r.Tunnel = append(r.Tunnel, [2]int{nx, ny})
			doorFlag = true
		case catFloor:
			if doorFlag {
				r.Doors = append(r.Doors, [2]int{nx, ny})
			}
			doorFlag = false
		case catRoom:
			doorFlag = false
		}
		x, y = nx, ny

		if abs(x-startX)+abs(y-startY) >= 10 {
			offAxis++
			if offAxis >= 10 && rng.PercentChance(100-t.DunTunCon) {
				r.Reached = true
				break
			}
		}
	}

	commit(grid, &r)
	return r
}

// WindingTunneler implements spec §4.G's drunkard variant: 60% moves a
// cardinal component toward target each step (breaking diagonal ties
// with a coin), 40% picks a uniform cardinal. Falls back to the straight
// tunneler if it fails to reach the target within 20000 iterations.
type WindingTunneler struct {
	Fallback StraightTunneler
}

const windingMaxIterations = 20000

func (t WindingTunneler) Carve(grid *dungeon.Grid, startX, startY, targetX, targetY int, rng *dungeon.GenerationContext) Result {
	r := Result{}
	x, y := startX, startY
	doorFlag := false

	for i := 0; i < windingMaxIterations; i++ {
		if x == targetX && y == targetY {
			r.Reached = true
			break
		}

		var dir Direction
		if rng.PercentChance(60) {
			dir = towardTarget(x, y, targetX, targetY, rng)
		} else {
			dir = Direction(rng.RandomChoice(4))
		}

		nx, ny := step(x, y, dir)
		if !grid.InBounds(nx, ny) {
			continue
		}

		cat := pierce(grid, nx, ny, dir)
		switch cat {
		case catReject:
			continue
		case catWallOuter:
			r.Walls = append(r.Walls, [2]int{nx, ny})
			doorFlag = true
		case catGranite:
			r.Tunnel = append(r.Tunnel, [2]int{nx, ny})
			doorFlag = true
		case catFloor:
			if doorFlag {
				r.Doors = append(r.Doors, [2]int{nx, ny})
			}
			doorFlag = false
		case catRoom:
			doorFlag = false
		}
		x, y = nx, ny
	}

	if !r.Reached {
		return t.Fallback.Carve(grid, startX, startY, targetX, targetY, rng)
	}

	commit(grid, &r)
	return r
}

// towardTarget picks the cardinal direction whose axis has greater
// remaining distance; if both axes are equally off, a coin breaks the tie.
func towardTarget(x, y, targetX, targetY int, rng *dungeon.GenerationContext) Direction {
	dx, dy := targetX-x, targetY-y
	if dx == 0 && dy == 0 {
		return Direction(rng.RandomChoice(4))
	}
	useX := abs(dx) > abs(dy) || (abs(dx) == abs(dy) && rng.PercentChance(50))
	if useX {
		if dx > 0 {
			return DirEast
		}
		return DirWest
	}
	if dy > 0 {
		return DirSouth
	}
	return DirNorth
}

// JunctionDoors runs the post-tunneling door pass (spec §4.G): for each
// candidate cell, if it sits between two walls and next to two corridor
// floors, and a 90% coin passes, place a random door.
func JunctionDoors(grid *dungeon.Grid, candidates [][2]int, rng *dungeon.GenerationContext) {
	for _, p := range candidates {
		x, y := p[0], p[1]
		if !isJunctionCandidate(grid, x, y) {
			continue
		}
		if !rng.PercentChance(90) {
			continue
		}
		dungeon.PlaceDoor(grid, x, y, rng)
	}
}

func isJunctionCandidate(grid *dungeon.Grid, x, y int) bool {
	n, s := neighborFeature(grid, x, y-1), neighborFeature(grid, x, y+1)
	e, w := neighborFeature(grid, x+1, y), neighborFeature(grid, x-1, y)

	nsWalls := n.IsWallLike() && s.IsWallLike() && e.IsFloor() && w.IsFloor()
	ewWalls := e.IsWallLike() && w.IsWallLike() && n.IsFloor() && s.IsFloor()
	return nsWalls || ewWalls
}

func neighborFeature(grid *dungeon.Grid, x, y int) dungeon.Feature {
	if !grid.InBounds(x, y) {
		return dungeon.FeaturePermSolid
	}
	return grid.At(x, y).Feature
}
