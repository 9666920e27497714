// Package grid is the per-turn read view of the map: tile lookup, adjacency,
// terrain predicates and the gold-mine index.
package grid

import (
	"fmt"

	"github.com/nstehr/necro/necro-core/model"
)

// Grid is rebuilt from every snapshot. Terrain never changes; occupancy is
// mirrored by Occupy/Vacate when our own actions are accepted mid-turn so that
// later decisions in the same turn see them.
type Grid struct {
	Width  int
	Height int

	tiles     []*model.Tile // row-major: tiles[y*Width + x]
	byID      map[int]*model.Tile
	neighbors [][]*model.Tile

	player   string
	opponent string
	caps     map[model.UnitKind]int

	workerSpawns []*model.Tile
	unitSpawns   []*model.Tile
	enemyCastle  *model.Tile

	Mines *MineIndex
}

// New indexes the snapshot's tiles. The snapshot itself is never mutated.
func New(gs model.GameState) (*Grid, error) {
	w, h := gs.MapWidth, gs.MapHeight
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", w, h)
	}
	if len(gs.Tiles) != w*h {
		return nil, fmt.Errorf("tile count %d does not match %dx%d map", len(gs.Tiles), w, h)
	}

	g := &Grid{
		Width:     w,
		Height:    h,
		tiles:     make([]*model.Tile, w*h),
		byID:      make(map[int]*model.Tile, w*h),
		neighbors: make([][]*model.Tile, w*h),
		player:    gs.Player.ID,
		opponent:  gs.Opponent.ID,
		caps:      make(map[model.UnitKind]int, len(gs.Jobs)),
	}

	for i := range gs.Tiles {
		t := gs.Tiles[i]
		if t.X < 0 || t.X >= w || t.Y < 0 || t.Y >= h {
			return nil, fmt.Errorf("tile %d at (%d, %d) outside %dx%d map", t.ID, t.X, t.Y, w, h)
		}
		if t.Occupant != nil {
			occ := *t.Occupant
			t.Occupant = &occ
		}
		g.tiles[t.Y*w+t.X] = &t
		g.byID[t.ID] = &t
	}

	// N, E, S, W. Edges simply have fewer neighbours.
	dirs := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	for i, t := range g.tiles {
		if t == nil {
			return nil, fmt.Errorf("missing tile at index %d", i)
		}
		for _, d := range dirs {
			if n := g.At(t.X+d[0], t.Y+d[1]); n != nil {
				g.neighbors[i] = append(g.neighbors[i], n)
			}
		}
	}

	for _, j := range gs.Jobs {
		if k := j.Kind(); k != model.KindUnknown {
			g.caps[k] = j.PerTile
		}
	}

	g.Refresh()
	return g, nil
}

// Refresh recomputes the derived per-turn caches: spawners, enemy castle and
// the gold-mine index.
func (g *Grid) Refresh() {
	g.workerSpawns = g.workerSpawns[:0]
	g.unitSpawns = g.unitSpawns[:0]
	g.enemyCastle = nil
	for _, t := range g.tiles {
		if t.Owner == g.player && g.IsWorkerSpawn(t) {
			g.workerSpawns = append(g.workerSpawns, t)
		}
		if t.Owner == g.player && g.IsUnitSpawn(t) {
			g.unitSpawns = append(g.unitSpawns, t)
		}
		if g.enemyCastle == nil && g.IsEnemyCastle(t) {
			g.enemyCastle = t
		}
	}
	g.Mines = newMineIndex(g.tiles)
}

// At returns the tile at (x, y), or nil when out of bounds.
func (g *Grid) At(x, y int) *model.Tile {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return nil
	}
	return g.tiles[y*g.Width+x]
}

// ByID returns the tile with the given id.
func (g *Grid) ByID(id int) (*model.Tile, bool) {
	t, ok := g.byID[id]
	return t, ok
}

// UnitTile resolves a unit's current tile. Dead units have none.
func (g *Grid) UnitTile(u model.Unit) (*model.Tile, bool) {
	if u.TileID == nil {
		return nil, false
	}
	return g.ByID(*u.TileID)
}

// Neighbors returns the 4-connected neighbours of t in N, E, S, W order.
func (g *Grid) Neighbors(t *model.Tile) []*model.Tile {
	return g.neighbors[t.Y*g.Width+t.X]
}

// Tiles returns every tile in row-major order.
func (g *Grid) Player() string { return g.player }

func (g *Grid) IsWorkerSpawn(t *model.Tile) bool { return t.IsWorkerSpawn }
func (g *Grid) IsUnitSpawn(t *model.Tile) bool   { return t.IsUnitSpawn }

// IsGoldMine includes the island variant.
func (g *Grid) IsGoldMine(t *model.Tile) bool {
	return t.Type == model.GoldMine || t.Type == model.IslandGoldMine
}

func (g *Grid) IsRiver(t *model.Tile) bool { return t.Type == model.River }

func (g *Grid) IsEnemyCastle(t *model.Tile) bool {
	if t.Type != model.Castle {
		return false
	}
	if t.Owner == g.opponent {
		return true
	}
	return t.Tower != nil && t.Tower.Owner == g.opponent
}

// WorkerSpawns and UnitSpawns return our own spawners in row-major order.
func (g *Grid) WorkerSpawns() []*model.Tile { return g.workerSpawns }
func (g *Grid) UnitSpawns() []*model.Tile   { return g.unitSpawns }

// EnemyCastle returns the opposing castle tile, or nil when the map has none.
func (g *Grid) EnemyCastle() *model.Tile { return g.enemyCastle }

// Cap is the per-tile stacking limit for kind. Kinds missing from the
// catalogue stack one per tile.
func (g *Grid) Cap(k model.UnitKind) int {
	if c, ok := g.caps[k]; ok && c > 0 {
		return c
	}
	return 1
}

// HasRoom reports whether one more of our units of kind k may stand on t.
// Towers block, as do the other player's units, units of another kind and
// full stacks.
func (g *Grid) HasRoom(t *model.Tile, k model.UnitKind) bool {
	if t.Tower != nil {
		return false
	}
	o := t.Occupant
	if o == nil || o.Count <= 0 {
		return true
	}
	if o.Owner != g.player || o.Kind() != k {
		return false
	}
	return o.Count < g.Cap(k)
}

// HasEnemy reports whether t holds an enemy tower or enemy units.
func (g *Grid) HasEnemy(t *model.Tile) bool {
	if t.Tower != nil && t.Tower.Owner == g.opponent {
		return true
	}
	return t.Occupant != nil && t.Occupant.Count > 0 && t.Occupant.Owner == g.opponent
}

// Occupy records one of our units of kind k arriving on t.
func (g *Grid) Occupy(t *model.Tile, k model.UnitKind) {
	if t.Occupant == nil || t.Occupant.Count <= 0 {
		t.Occupant = &model.Occupant{Job: k.String(), Owner: g.player}
	}
	t.Occupant.Count++
	g.Mines.update(t)
}

// Vacate records one of our units leaving t.
func (g *Grid) Vacate(t *model.Tile) {
	if t.Occupant == nil {
		return
	}
	t.Occupant.Count--
	if t.Occupant.Count <= 0 {
		t.Occupant = nil
	}
	g.Mines.update(t)
}

// Hemisphere returns -1 for tiles left of the vertical centre line and +1
// otherwise.
func (g *Grid) Hemisphere(t *model.Tile) int {
	if t.X < g.Width/2 {
		return -1
	}
	return 1
}

// Distance is the Manhattan distance between two tiles.
func Distance(a, b *model.Tile) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
