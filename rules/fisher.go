package rules

import (
	"log/slog"

	"github.com/nstehr/necro/necro-core/model"
	"github.com/nstehr/necro/necro-core/pathfind"
)

// controlFisher fishes a river next to the unit, or walks to the shoreline on
// the unit's side of the map and fishes on arrival.
func (t *turn) controlFisher(u *model.Unit) {
	here, ok := t.grid.UnitTile(*u)
	if !ok {
		return
	}
	if river := t.neighborWhere(here, t.grid.IsRiver); river != nil {
		t.fish(u, river)
		return
	}
	target := t.shoreline(here)
	if target == nil {
		slog.Debug("no shoreline for fisher", "unit", u.ID)
		return
	}
	if !t.travel(u, target) {
		return
	}
	if river := t.neighborWhere(target, t.grid.IsRiver); river != nil {
		t.fish(u, river)
	}
}

// shoreline finds a free river-adjacent tile for a fisher standing on from.
// Rows are tried nearest first; within a row the scan starts at the
// innermost column of from's half and walks out toward its edge.
func (t *turn) shoreline(from *model.Tile) *model.Tile {
	g := t.grid
	dir := g.Hemisphere(from)
	x0 := g.Width / 2
	if dir < 0 {
		x0--
	}
	for _, y := range rowsOutward(from.Y, g.Height) {
		for x := x0; x >= 0 && x < g.Width; x += dir {
			c := g.At(x, y)
			if c == nil || !pathfind.Traversable(g, c, model.Worker) {
				continue
			}
			if t.neighborWhere(c, g.IsRiver) != nil {
				return c
			}
		}
	}
	return nil
}

// rowsOutward lists 0..height-1 ordered by distance from y, upper row first
// on ties.
func rowsOutward(y, height int) []int {
	rows := make([]int, 0, height)
	if y >= 0 && y < height {
		rows = append(rows, y)
	}
	for d := 1; len(rows) < height && d < 2*height; d++ {
		if up := y - d; up >= 0 && up < height {
			rows = append(rows, up)
		}
		if down := y + d; down >= 0 && down < height {
			rows = append(rows, down)
		}
	}
	return rows
}

func (t *turn) fish(u *model.Unit, river *model.Tile) {
	if u.Acted {
		return
	}
	if !t.actions.Fish(*u, river) {
		t.rejected("fish", u, river)
		return
	}
	u.Acted = true
}
