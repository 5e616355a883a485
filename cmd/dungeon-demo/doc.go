// Package main provides a demonstration application for the Level
// Director dungeon generation system in the dungeoncore engine.
//
// The dungeon-demo application showcases generate_cave producing a
// sequence of depths from a single seed: sectors, rooms, tunnels,
// streamers, stairs, monsters and items, then summarizes each level's
// feeling score and content counts.
//
// # Usage
//
// Run the demo directly:
//
//	go run ./cmd/dungeon-demo
//
// Or build and execute:
//
//	go build -o dungeon-demo ./cmd/dungeon-demo
//	./dungeon-demo
//
// # Generation Features
//
//   - Multiple depths generated from one base seed, each independently
//     validated and retried on auto-scum rejection
//   - Sector and room archetype placement via the shared Registry
//   - Tunnel connectivity, streamers, stairs, and guard/patrol records
//   - Per-level feeling score and content summary
//
// # Generation Parameters
//
//   - Seed: base seed for reproducible generation
//   - StartDepth/DepthCount: the depth range to generate
//
// # Output
//
// The demo outputs, per level: depth, dimensions, rating, stair counts,
// guard count, and whether the level was destroyed.
//
// # Integration Example
//
//	director, err := director.NewDirector(nil, nil, nil, nil, nil, logger)
//	level, err := director.GenerateCave(dungeon.GenerationParams{Seed: 42, Depth: 5})
package main
