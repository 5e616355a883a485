package director

import "dungeoncore/pkg/dungeon"

// blockGrid is the coarse row_rooms x col_rooms reservation map from spec
// §3: a block is dungeon.BlockGridSize cells square, and a reservation
// forbids further room placement on those blocks for the rest of the pass.
// Grounded on pkg/pcg/levels/rooms.go's room-placement grid, generalized
// to also carry each block's assigned sector kind.
type blockGrid struct {
	rows, cols int
	reserved   [][]bool
	kind       [][]dungeon.SectorKind
}

func newBlockGrid(gridWidth, gridHeight int) *blockGrid {
	rows := gridHeight / dungeon.BlockGridSize
	cols := gridWidth / dungeon.BlockGridSize
	b := &blockGrid{rows: rows, cols: cols}
	b.reserved = make([][]bool, rows)
	b.kind = make([][]dungeon.SectorKind, rows)
	for y := 0; y < rows; y++ {
		b.reserved[y] = make([]bool, cols)
		b.kind[y] = make([]dungeon.SectorKind, cols) // zero value is SectorRuins
	}
	return b
}

// cellOrigin converts a block coordinate to its top-left cell coordinate.
func (b *blockGrid) cellOrigin(by, bx int) (x, y int) {
	return bx * dungeon.BlockGridSize, by * dungeon.BlockGridSize
}

// fits reports whether a dy x dx block span starting at (by,bx) lies
// within bounds and is entirely unreserved Ruins territory.
func (b *blockGrid) fits(by, bx, dy, dx int) bool {
	if by < 0 || bx < 0 || by+dy > b.rows || bx+dx > b.cols {
		return false
	}
	for y := by; y < by+dy; y++ {
		for x := bx; x < bx+dx; x++ {
			if b.reserved[y][x] || b.kind[y][x] != dungeon.SectorRuins {
				return false
			}
		}
	}
	return true
}

func (b *blockGrid) reserve(by, bx, dy, dx int) {
	for y := by; y < by+dy; y++ {
		for x := bx; x < bx+dx; x++ {
			b.reserved[y][x] = true
		}
	}
}

func (b *blockGrid) setKind(by, bx, dy, dx int, kind dungeon.SectorKind) {
	for y := by; y < by+dy; y++ {
		for x := bx; x < bx+dx; x++ {
			if y < b.rows && x < b.cols {
				b.kind[y][x] = kind
			}
		}
	}
}

// randomFreeOrigin tries up to maxAttempts random block positions for a
// dy x dx footprint, returning the first that fits.
func (b *blockGrid) randomFreeOrigin(rng *dungeon.GenerationContext, dy, dx, maxAttempts int) (by, bx int, ok bool) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		cby := rng.RandomChoice(b.rows)
		cbx := rng.RandomChoice(b.cols)
		if b.fits(cby, cbx, dy, dx) {
			return cby, cbx, true
		}
	}
	return 0, 0, false
}
