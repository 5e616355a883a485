// Package sectors implements the 6 non-Ruins Sector Builders (spec
// §4.F): 2-block-square region synthesizers selected by the Level
// Director's sector pass.
//
// Grounded on pkg/pcg/terrain/biomes.go's per-kind definition-table
// dispatch and pkg/pcg/terrain/cellular_automata.go's CA step/threshold
// idiom (reused directly by Dark); Cavern additionally uses
// pkg/dungeon/plasma for its diamond-square threshold.
package sectors

import (
	"dungeoncore/pkg/dungeon"
	"dungeoncore/pkg/dungeon/plasma"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// RegisterAll registers every sector builder in this package against reg.
func RegisterAll(reg *dungeon.Registry) error {
	builders := []dungeon.SectorBuilder{
		CavernBuilder{},
		PlazaBuilder{},
		DarkBuilder{},
		HillBuilder{},
		PitBuilder{},
		CliffBuilder{},
	}
	for _, b := range builders {
		if err := reg.RegisterSectorBuilder(b); err != nil {
			return err
		}
	}
	return nil
}

// EnsureConnectivity flood-fills floor-cell components within bounds and,
// while more than one remains, bridges the closest pair of cells between
// component 1 and any other with a straight-ish carve, relabeling after
// each bridge. Aborts after 100 iterations against pathological grids
// (spec §4.F).
func EnsureConnectivity(grid *dungeon.Grid, bounds dungeon.Rectangle) {
	const maxIterations = 100

	for iter := 0; iter < maxIterations; iter++ {
		components := labelComponents(grid, bounds)
		if len(components) <= 1 {
			return
		}
		a, b := closestPair(components[0], components[1:])
		bridge(grid, a, b)
	}
	log.WithFields(logrus.Fields{"bounds": bounds}).Warn("ensure_connectivity aborted after max iterations")
}

type point struct{ x, y int }

func labelComponents(grid *dungeon.Grid, bounds dungeon.Rectangle) [][]point {
	visited := make(map[point]bool)
	var components [][]point

	for y := bounds.Y1; y <= bounds.Y2; y++ {
		for x := bounds.X1; x <= bounds.X2; x++ {
			p := point{x, y}
			if visited[p] || !grid.InBounds(x, y) || !grid.IsFloor(x, y) {
				continue
			}
			components = append(components, floodFill(grid, bounds, p, visited))
		}
	}
	return components
}

func floodFill(grid *dungeon.Grid, bounds dungeon.Rectangle, start point, visited map[point]bool) []point {
	var area []point
	stack := []point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[p] || !bounds.Contains(p.x, p.y) || !grid.InBounds(p.x, p.y) || !grid.IsFloor(p.x, p.y) {
			continue
		}
		visited[p] = true
		area = append(area, p)
		stack = append(stack, point{p.x + 1, p.y}, point{p.x - 1, p.y}, point{p.x, p.y + 1}, point{p.x, p.y - 1})
	}
	return area
}

func closestPair(from []point, others [][]point) (point, point) {
	best := point{}
	bestOther := point{}
	bestDist := -1
	for _, other := range others {
		for _, a := range from {
			for _, b := range other {
				d := (a.x-b.x)*(a.x-b.x) + (a.y-b.y)*(a.y-b.y)
				if bestDist == -1 || d < bestDist {
					bestDist = d
					best = a
					bestOther = b
				}
			}
		}
	}
	return best, bestOther
}

// bridge carves a straight-ish line between a and b, converting any
// non-floor cell encountered to floor.
func bridge(grid *dungeon.Grid, a, b point) {
	x, y := a.x, a.y
	for x != b.x || y != b.y {
		if x != b.x {
			if x < b.x {
				x++
			} else {
				x--
			}
		} else if y != b.y {
			if y < b.y {
				y++
			} else {
				y--
			}
		}
		if grid.InBounds(x, y) && !grid.IsFloor(x, y) {
			grid.SetFeature(x, y, dungeon.FeatureFloor)
			grid.AddFlags(x, y, dungeon.FlagRoom)
		}
	}
}

// CavernBuilder is the Cavern sector: plasma-threshold terrain (spec
// §4.F). Corners seeded uniform 0..99, roughness 1, depth 100; threshold
// at 50: >50 is floor, else inner-wall.
type CavernBuilder struct{}

func (CavernBuilder) Kind() dungeon.SectorKind { return dungeon.SectorCavern }

func (b CavernBuilder) Build(grid *dungeon.Grid, bounds dungeon.Rectangle, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.SectorPlan, error) {
	w, h := bounds.Width(), bounds.Height()
	corners := [4]int{rng.RandomChoice(100), rng.RandomChoice(100), rng.RandomChoice(100), rng.RandomChoice(100)}
	heightmap := plasma.Generate(w, h, 100, 1, corners, rng)

	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			gx, gy := bounds.X1+xx, bounds.Y1+yy
			if !grid.InBounds(gx, gy) {
				continue
			}
			if heightmap.At(xx, yy) > 50 {
				grid.SetFeature(gx, gy, dungeon.FeatureFloor)
				grid.AddFlags(gx, gy, dungeon.FlagRoom)
			} else {
				grid.SetFeature(gx, gy, dungeon.FeatureWallInner)
			}
		}
	}

	cx, cy := bounds.Center()
	return dungeon.SectorPlan{Kind: b.Kind(), Bounds: bounds, Center: [2]int{cx, cy}}, nil
}

// PlazaBuilder is the Plaza sector: floor-fill with 1-3 drunken-walk
// hazard streams and two 3x3 bridge patches, connectivity-repaired.
type PlazaBuilder struct{}

func (PlazaBuilder) Kind() dungeon.SectorKind { return dungeon.SectorPlaza }

var plazaHazards = []dungeon.Feature{dungeon.FeatureLavaShallow, dungeon.FeatureAcid, dungeon.FeatureIce}

func (b PlazaBuilder) Build(grid *dungeon.Grid, bounds dungeon.Rectangle, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.SectorPlan, error) {
	for y := bounds.Y1; y <= bounds.Y2; y++ {
		for x := bounds.X1; x <= bounds.X2; x++ {
			grid.SetFeature(x, y, dungeon.FeatureFloor)
			grid.AddFlags(x, y, dungeon.FlagRoom)
		}
	}

	streamCount := 1 + rng.RandomChoice(3)
	for i := 0; i < streamCount; i++ {
		hazard := plazaHazards[rng.RandomChoice(len(plazaHazards))]
		drunkenStream(grid, bounds, hazard, rng)
	}

	for i := 0; i < 2; i++ {
		px := bounds.X1 + rng.RandomChoice(bounds.Width()-2) + 1
		py := bounds.Y1 + rng.RandomChoice(bounds.Height()-2) + 1
		for yy := py - 1; yy <= py+1; yy++ {
			for xx := px - 1; xx <= px+1; xx++ {
				if grid.InBounds(xx, yy) {
					grid.SetFeature(xx, yy, dungeon.FeatureFloor)
				}
			}
		}
	}

	EnsureConnectivity(grid, bounds)

	cx, cy := bounds.Center()
	return dungeon.SectorPlan{Kind: b.Kind(), Bounds: bounds, Center: [2]int{cx, cy}}, nil
}

// drunkenStream carves a random-walk line of hazard terrain from one
// border of bounds to roughly the opposite border.
func drunkenStream(grid *dungeon.Grid, bounds dungeon.Rectangle, hazard dungeon.Feature, rng *dungeon.GenerationContext) {
	x := bounds.X1 + rng.RandomChoice(bounds.Width())
	y := bounds.Y1
	steps := bounds.Height() * 3
	for i := 0; i < steps; i++ {
		if grid.InBounds(x, y) {
			grid.SetFeature(x, y, hazard)
		}
		switch rng.RandomChoice(3) {
		case 0:
			x--
		case 1:
			x++
		}
		y++
		if x < bounds.X1 {
			x = bounds.X1
		}
		if x > bounds.X2 {
			x = bounds.X2
		}
		if y > bounds.Y2 {
			break
		}
	}
}

// DarkBuilder is the Dark sector: CA smoothing identical to room
// archetype 14's rules, plus a Heart-of-the-Maze glowing item.
type DarkBuilder struct{}

func (DarkBuilder) Kind() dungeon.SectorKind { return dungeon.SectorDark }

func (b DarkBuilder) Build(grid *dungeon.Grid, bounds dungeon.Rectangle, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.SectorPlan, error) {
	w, h := bounds.Width(), bounds.Height()
	cells := make([][]bool, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			cells[y][x] = rng.RandomChoice(100) < 40
		}
	}

	for iter := 0; iter < 4; iter++ {
		next := make([][]bool, h)
		for y := 0; y < h; y++ {
			next[y] = make([]bool, w)
			for x := 0; x < w; x++ {
				walls := countCAWallNeighbors(cells, x, y, w, h)
				if cells[y][x] {
					next[y][x] = walls >= 4
				} else {
					next[y][x] = walls >= 5
				}
			}
		}
		cells = next
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx, gy := bounds.X1+x, bounds.Y1+y
			if !grid.InBounds(gx, gy) {
				continue
			}
			if cells[y][x] {
				grid.SetFeature(gx, gy, dungeon.FeatureWallInner)
			} else {
				grid.SetFeature(gx, gy, dungeon.FeatureFloor)
				grid.AddFlags(gx, gy, dungeon.FlagRoom)
			}
		}
	}

	EnsureConnectivity(grid, bounds)

	cx, cy := bounds.Center()
	if grid.InBounds(cx, cy) {
		grid.SetFeature(cx, cy, dungeon.FeatureGlowingTile)
		grid.AddFlags(cx, cy, dungeon.FlagGlow)
	}

	return dungeon.SectorPlan{Kind: b.Kind(), Bounds: bounds, Center: [2]int{cx, cy}, Rating: params.Depth + 10}, nil
}

func countCAWallNeighbors(cells [][]bool, x, y, w, h int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				count++
				continue
			}
			if cells[ny][nx] {
				count++
			}
		}
	}
	return count
}

// HillBuilder is the Hill sector: concentric elevation tiers centered on
// the sector, 60% chance of a defender group on the summit.
type HillBuilder struct{}

func (HillBuilder) Kind() dungeon.SectorKind { return dungeon.SectorHill }

func (b HillBuilder) Build(grid *dungeon.Grid, bounds dungeon.Rectangle, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.SectorPlan, error) {
	cx, cy := bounds.Center()
	maxRadius := min2(bounds.Width(), bounds.Height()) / 2

	for y := bounds.Y1; y <= bounds.Y2; y++ {
		for x := bounds.X1; x <= bounds.X2; x++ {
			if !grid.InBounds(x, y) {
				continue
			}
			dist := chebyshev(x-cx, y-cy)
			c := grid.At(x, y)
			c.Feature = dungeon.FeatureFloor
			c.Flags |= dungeon.FlagRoom
			switch {
			case dist <= maxRadius/3:
				c.Elevation = dungeon.ElevationHigh
				c.Feature = dungeon.FeatureHillTop
			case dist <= 2*maxRadius/3:
				c.Elevation = dungeon.ElevationHill
				c.Feature = dungeon.FeatureSlopeUp
			default:
				c.Elevation = dungeon.ElevationGround
				if dist == maxRadius {
					c.Feature = dungeon.FeatureSlopeDown
				}
			}
			grid.Set(x, y, c)
		}
	}

	rating := 0
	if rng.PercentChance(60) {
		placeGroupOnSummit(grid, cx, cy)
		rating = 1
	}

	return dungeon.SectorPlan{Kind: b.Kind(), Bounds: bounds, Center: [2]int{cx, cy}, Rating: rating}, nil
}

func placeGroupOnSummit(grid *dungeon.Grid, cx, cy int) {
	offsets := [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}}
	for _, o := range offsets {
		x, y := cx+o[0], cy+o[1]
		if grid.InBounds(x, y) {
			c := grid.At(x, y)
			c.MonsterID = -1 // -1 marks a defender slot; no concrete monster is allocated for it
			grid.Set(x, y, c)
		}
	}
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
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

// PitBuilder is the Pit sector: the inverse of Hill, center LOW with a
// pit feature, outer GROUND slope-down, single hazard roll for the
// entire pit.
type PitBuilder struct{}

func (PitBuilder) Kind() dungeon.SectorKind { return dungeon.SectorPit }

func (b PitBuilder) Build(grid *dungeon.Grid, bounds dungeon.Rectangle, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.SectorPlan, error) {
	cx, cy := bounds.Center()
	maxRadius := min2(bounds.Width(), bounds.Height()) / 2

	for y := bounds.Y1; y <= bounds.Y2; y++ {
		for x := bounds.X1; x <= bounds.X2; x++ {
			if !grid.InBounds(x, y) {
				continue
			}
			dist := chebyshev(x-cx, y-cy)
			c := grid.At(x, y)
			c.Feature = dungeon.FeatureFloor
			c.Flags |= dungeon.FlagRoom
			switch {
			case dist <= maxRadius/3:
				c.Elevation = dungeon.ElevationLow
				c.Feature = dungeon.FeaturePit
			default:
				c.Elevation = dungeon.ElevationGround
				if dist == maxRadius {
					c.Feature = dungeon.FeatureSlopeDown
				}
			}
			grid.Set(x, y, c)
		}
	}

	// Single hazard roll for the whole pit: 30% shallow water, 15% traps,
	// 20% monsters, remaining 35% no hazard (spec §4.F).
	switch roll := rng.RandomChoice(100); {
	case roll < 30:
		for r := 0; r < 5; r++ {
			x := cx + rng.RandomChoice(5) - 2
			y := cy + rng.RandomChoice(5) - 2
			if grid.InBounds(x, y) {
				grid.SetFeature(x, y, dungeon.FeatureWaterShallow)
			}
		}
	case roll < 45:
		for r := 0; r < 3; r++ {
			x := cx + rng.RandomChoice(5) - 2
			y := cy + rng.RandomChoice(5) - 2
			if grid.InBounds(x, y) && grid.IsNaked(x, y) {
				c := grid.At(x, y)
				c.ObjectHead = -1
				grid.Set(x, y, c)
			}
		}
	case roll < 65:
		placeGroupOnSummit(grid, cx, cy)
	}

	return dungeon.SectorPlan{Kind: b.Kind(), Bounds: bounds, Center: [2]int{cx, cy}}, nil
}

// CliffBuilder is the Cliff sector: a vertical or horizontal split, HIGH
// on one side and GROUND on the other, with 1-2 climbable ledges.
type CliffBuilder struct{}

func (CliffBuilder) Kind() dungeon.SectorKind { return dungeon.SectorCliff }

func (b CliffBuilder) Build(grid *dungeon.Grid, bounds dungeon.Rectangle, params dungeon.GenerationParams, rng *dungeon.GenerationContext) (dungeon.SectorPlan, error) {
	vertical := rng.PercentChance(50)

	for y := bounds.Y1; y <= bounds.Y2; y++ {
		for x := bounds.X1; x <= bounds.X2; x++ {
			if !grid.InBounds(x, y) {
				continue
			}
			var high bool
			var edge bool
			if vertical {
				mid := (bounds.X1 + bounds.X2) / 2
				high = x < mid
				edge = x == mid || x == mid+1
			} else {
				mid := (bounds.Y1 + bounds.Y2) / 2
				high = y < mid
				edge = y == mid || y == mid+1
			}

			c := grid.At(x, y)
			c.Feature = dungeon.FeatureFloor
			c.Flags |= dungeon.FlagRoom
			switch {
			case edge && high:
				c.Elevation = dungeon.ElevationHigh
				c.Feature = dungeon.FeatureCliffUp
			case edge:
				c.Elevation = dungeon.ElevationGround
				c.Feature = dungeon.FeatureCliffDown
			case high:
				c.Elevation = dungeon.ElevationHigh
			default:
				c.Elevation = dungeon.ElevationGround
			}
			grid.Set(x, y, c)
		}
	}

	ledgeCount := 1 + rng.RandomChoice(2)
	for i := 0; i < ledgeCount; i++ {
		lx := bounds.X1 + rng.RandomChoice(bounds.Width())
		ly := bounds.Y1 + rng.RandomChoice(bounds.Height())
		if grid.InBounds(lx, ly) {
			c := grid.At(lx, ly)
			c.Elevation = dungeon.ElevationHill
			c.Feature = dungeon.FeatureLedge
			grid.Set(lx, ly, c)
		}
	}

	rating := 0
	if rng.PercentChance(50) {
		rating = 1 // rating only; no archers are placed on the high side
	}

	cx, cy := bounds.Center()
	return dungeon.SectorPlan{Kind: b.Kind(), Bounds: bounds, Center: [2]int{cx, cy}, Rating: rating}, nil
}
