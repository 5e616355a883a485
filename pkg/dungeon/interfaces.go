package dungeon

// This file defines the capability interfaces implemented by the
// pkg/dungeon/rooms, pkg/dungeon/sectors, pkg/dungeon/tunnel and
// pkg/dungeon/plasma subpackages. It mirrors pkg/pcg/interfaces.go's
// Generator/TerrainGenerator/LevelGenerator split: one small common
// interface plus specialized variants, each taking a *GenerationContext.
// Builders paint the grid directly and return a RoomPlan/SectorPlan that
// describes what they painted; the director reads the plan's summary
// fields and does not replay it onto the grid.

// GenerationParams carries the caller-tunable knobs shared by every
// builder, yaml-taggable the way pkg/pcg's GenerationParams is.
type GenerationParams struct {
	Seed       int64 `yaml:"seed"`
	Depth      int   `yaml:"depth"`
	Difficulty int   `yaml:"difficulty"`
}

// RoomPlan is the output of a Room Archetype builder: a summary of the
// room the builder has already painted (bounds, center, flags and vault
// spawn requests), not a list of cell mutations.
type RoomPlan struct {
	Archetype  RoomArchetype
	Bounds     Rectangle // cell-grid bounds actually painted
	Center     [2]int
	DoorCells  [][2]int
	GuardPost  bool
	Crowded    bool
	FeelingAdd int

	// VaultMonsters carries the monster-stream spawn requests a vault
	// archetype's Paint call produced (spec §4.E vault painter's second
	// RLE stream); empty for every non-vault archetype.
	VaultMonsters []VaultMonsterSpawn
}

// RoomBuilder is implemented by each of the 16 typed room archetype
// generators in pkg/dungeon/rooms (types 15 and 16 are reserved).
type RoomBuilder interface {
	// Archetype identifies which of the 18 types this builder produces.
	Archetype() RoomArchetype
	// MinDepth is the minimum dungeon depth at which this archetype may
	// appear (spec §4.E table).
	MinDepth() int
	// BlockSpan returns the archetype's required block-grid footprint
	// (dy, dx) as declared in spec §4.E's per-type table.
	BlockSpan() (dy, dx int)
	// Build paints the archetype at the given cell-grid top-left corner
	// and returns the resulting plan.
	Build(grid *Grid, topLeftX, topLeftY int, params GenerationParams, rng *GenerationContext) (RoomPlan, error)
}

// SectorPlan is the output of a Sector Builder.
type SectorPlan struct {
	Kind   SectorKind
	Bounds Rectangle
	Center [2]int
	Rating int
}

// SectorBuilder is implemented by each of the 6 non-Ruins sector
// generators (Cavern/Plaza/Dark/Hill/Pit/Cliff) in pkg/dungeon/sectors.
type SectorBuilder interface {
	Kind() SectorKind
	Build(grid *Grid, bounds Rectangle, params GenerationParams, rng *GenerationContext) (SectorPlan, error)
}
