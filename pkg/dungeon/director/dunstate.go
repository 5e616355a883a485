package director

import "dungeoncore/pkg/dungeon"

// dunState is the ephemeral per-generation arena described in spec §3
// ("Dun-state (ephemeral, lives only during one generation)"): scoped to a
// single generate_cave call and discarded once the level publishes.
// Capacity caps mirror the spec's literal bounds, silently dropping
// further entries rather than growing without limit (spec §5's "bounded
// loop, silent abort" treatment of divergence risk).
type dunState struct {
	Centers       [][2]int
	Doors         [][2]int
	Walls         [][2]int
	Tunnel        [][2]int
	VaultMonsters []dungeon.VaultMonsterSpawn
	Crowded       bool
}

const (
	maxCenters       = 1000
	maxDoors         = 1000
	maxWalls         = 2000
	maxTunnel        = 9000
	maxVaultMonsters = 500
)

func newDunState() *dunState { return &dunState{} }

func (d *dunState) addCenter(x, y int) {
	if len(d.Centers) < maxCenters {
		d.Centers = append(d.Centers, [2]int{x, y})
	}
}

func (d *dunState) addDoor(x, y int) {
	if len(d.Doors) < maxDoors {
		d.Doors = append(d.Doors, [2]int{x, y})
	}
}

func (d *dunState) addWalls(pts [][2]int) {
	for _, p := range pts {
		if len(d.Walls) >= maxWalls {
			return
		}
		d.Walls = append(d.Walls, p)
	}
}

func (d *dunState) addTunnel(pts [][2]int) {
	for _, p := range pts {
		if len(d.Tunnel) >= maxTunnel {
			return
		}
		d.Tunnel = append(d.Tunnel, p)
	}
}

func (d *dunState) addVaultMonsters(spawns []dungeon.VaultMonsterSpawn) {
	for _, s := range spawns {
		if len(d.VaultMonsters) >= maxVaultMonsters {
			return
		}
		d.VaultMonsters = append(d.VaultMonsters, s)
	}
}
