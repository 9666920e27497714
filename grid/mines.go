package grid

import (
	"math"

	"github.com/nstehr/necro/necro-core/model"
)

// MineIndex caches gold-mine tiles (island mines included) so nearest-mine
// queries don't rescan the map.
type MineIndex struct {
	mines    []*model.Tile
	xs, ys   []int
	occupied []bool
	pos      map[int]int // tile id -> index into mines
}

func newMineIndex(tiles []*model.Tile) *MineIndex {
	m := &MineIndex{pos: make(map[int]int)}
	for _, t := range tiles {
		if t.Type != model.GoldMine && t.Type != model.IslandGoldMine {
			continue
		}
		m.pos[t.ID] = len(m.mines)
		m.mines = append(m.mines, t)
		m.xs = append(m.xs, t.X)
		m.ys = append(m.ys, t.Y)
		m.occupied = append(m.occupied, occupied(t))
	}
	return m
}

func occupied(t *model.Tile) bool {
	return t.Occupant != nil && t.Occupant.Count > 0
}

func (m *MineIndex) update(t *model.Tile) {
	if i, ok := m.pos[t.ID]; ok {
		m.occupied[i] = occupied(t)
	}
}

// Occupied reports whether a mine tile currently holds units.
func (m *MineIndex) Occupied(t *model.Tile) bool {
	i, ok := m.pos[t.ID]
	return ok && m.occupied[i]
}

// Nearest returns the closest unoccupied mine to (x, y). When every mine is
// occupied it falls back to the closest mine regardless. Ties keep the mine
// that comes first in row-major order. Returns nil when the map has no mines.
func (m *MineIndex) Nearest(x, y int) *model.Tile {
	if len(m.mines) == 0 {
		return nil
	}
	dists := m.distances(x, y)

	best, bestFree := -1, -1
	minAll, minFree := math.MaxInt, math.MaxInt
	for i, d := range dists {
		if d < minAll {
			minAll, best = d, i
		}
		if !m.occupied[i] && d < minFree {
			minFree, bestFree = d, i
		}
	}
	if bestFree >= 0 {
		return m.mines[bestFree]
	}
	return m.mines[best]
}

// distances computes Manhattan distance from (x, y) to every mine in one pass.
func (m *MineIndex) distances(x, y int) []int {
	out := make([]int, len(m.xs))
	for i := range m.xs {
		out[i] = abs(m.xs[i]-x) + abs(m.ys[i]-y)
	}
	return out
}
