// Package plasma implements the Plasma Fractal diamond-square height
// synthesizer (spec §4.H): a recursive midpoint-displacement heightmap
// used by the Cavern sector builder and by wilderness terrain generation.
//
// Grounded on pkg/pcg/utils/noise.go's seeded-permutation idiom
// (deterministic shuffle of a fixed table from an int64 seed) for the
// wilderness corner-hash helpers; the diamond-square recursion itself is
// spec-original since the teacher has no equivalent algorithm.
package plasma

import "dungeoncore/pkg/dungeon"

// Heightmap is a scratch grid of values in [0, DepthMax], independent of
// the dungeon.Grid it will eventually be painted onto.
type Heightmap struct {
	Width, Height int
	values        [][]int
}

// NewHeightmap allocates a zeroed heightmap.
func NewHeightmap(width, height int) *Heightmap {
	h := &Heightmap{Width: width, Height: height}
	h.values = make([][]int, height)
	for y := range h.values {
		h.values[y] = make([]int, width)
	}
	return h
}

// At returns the value at (x,y), or 0 if out of bounds.
func (h *Heightmap) At(x, y int) int {
	if x < 0 || y < 0 || x >= h.Width || y >= h.Height {
		return 0
	}
	return h.values[y][x]
}

func (h *Heightmap) set(x, y, v int) {
	if x < 0 || y < 0 || x >= h.Width || y >= h.Height {
		return
	}
	h.values[y][x] = v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Generate fills a Width x Height heightmap via recursive diamond-square
// midpoint displacement, corners seeded with the given values, clamped to
// [0, depthMax]. roughness controls the ±(roughness+1) perturbation at
// each recursion level (spec §4.H: perturbation magnitude is constant
// across levels, not halved, matching the spec's literal description).
func Generate(width, height, depthMax, roughness int, corners [4]int, rng *dungeon.GenerationContext) *Heightmap {
	h := NewHeightmap(width, height)
	h.set(0, 0, corners[0])
	h.set(width-1, 0, corners[1])
	h.set(0, height-1, corners[2])
	h.set(width-1, height-1, corners[3])
	square(h, 0, 0, width-1, height-1, depthMax, roughness, rng)
	return h
}

// square recursively fills the rectangle bounded by the 4 known corners.
func square(h *Heightmap, x1, y1, x2, y2, depthMax, roughness int, rng *dungeon.GenerationContext) {
	if x2-x1 <= 1 && y2-y1 <= 1 {
		return
	}

	midX, midY := (x1+x2)/2, (y1+y2)/2
	perturb := func() int { return rng.RandomIntRange(-(roughness + 1), roughness+1) }

	c00, c10, c01, c11 := h.At(x1, y1), h.At(x2, y1), h.At(x1, y2), h.At(x2, y2)

	if x2 > x1 {
		h.set(midX, y1, clamp((c00+c10)/2+perturb(), 0, depthMax))
		h.set(midX, y2, clamp((c01+c11)/2+perturb(), 0, depthMax))
	}
	if y2 > y1 {
		h.set(x1, midY, clamp((c00+c01)/2+perturb(), 0, depthMax))
		h.set(x2, midY, clamp((c10+c11)/2+perturb(), 0, depthMax))
	}
	if x2 > x1 && y2 > y1 {
		center := (c00 + c10 + c01 + c11) / 4
		h.set(midX, midY, clamp(center+perturb(), 0, depthMax))
	}

	if midX > x1 || midY > y1 {
		square(h, x1, y1, midX, midY, depthMax, roughness, rng)
	}
	if midX < x2 || midY > y1 {
		square(h, midX, y1, x2, midY, depthMax, roughness, rng)
	}
	if midX > x1 || midY < y2 {
		square(h, x1, midY, midX, y2, depthMax, roughness, rng)
	}
	if midX < x2 || midY < y2 {
		square(h, midX, midY, x2, y2, depthMax, roughness, rng)
	}
}

// LookupTable maps normalized heightmap values (0..len(Features)-1) to
// terrain features; separate tables exist for normal vs. watery terrain
// (spec §4.H "per-table lookup").
type LookupTable struct {
	Features []dungeon.Feature
}

// Feature resolves a heightmap value through the table, clamping to the
// table's bounds.
func (t LookupTable) Feature(value int) dungeon.Feature {
	if len(t.Features) == 0 {
		return dungeon.FeatureFloor
	}
	idx := clamp(value, 0, len(t.Features)-1)
	return t.Features[idx]
}

// NormalTable is the default dry-terrain lookup (low values are floor,
// rising through rubble and granite walls to magma at the high end).
var NormalTable = LookupTable{Features: []dungeon.Feature{
	dungeon.FeatureFloor,
	dungeon.FeatureFloor,
	dungeon.FeatureRubble,
	dungeon.FeatureWallInner,
	dungeon.FeatureWallExtra,
	dungeon.FeatureMagma,
}}

// WateryTable is the wilderness/swamp lookup (low values are deep water,
// rising through shallow water and mud to dry floor).
var WateryTable = LookupTable{Features: []dungeon.Feature{
	dungeon.FeatureWaterDeep,
	dungeon.FeatureWaterShallow,
	dungeon.FeatureMud,
	dungeon.FeatureSwamp,
	dungeon.FeatureGrass,
	dungeon.FeatureFloor,
}}

// CornerHash computes the stable wilderness corner hash from spec §4.H:
// hash(x,y) = (x-y) XOR ((x+seed) AND y). Adjacent world tiles compute
// the same value for their shared edge, giving seamless wilderness tiling.
func CornerHash(x, y int, seed int64) int {
	s := int(seed)
	return (x - y) ^ ((x + s) & y)
}

// InteriorHash computes the independent interior-plasma hash from spec
// §4.H: (y-x) XOR (y AND (x+seed)). Used for points inside a wilderness
// tile rather than on its shared edges, so interior terrain does not
// repeat the edge pattern.
func InteriorHash(x, y int, seed int64) int {
	s := int(seed)
	return (y - x) ^ (y & (x + s))
}
