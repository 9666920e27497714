package rules

import (
	"log/slog"

	"github.com/nstehr/necro/necro-core/model"
)

// controlBuilder walks the unit to the next free tower slot on its side of
// the map and builds there.
func (t *turn) controlBuilder(u *model.Unit) {
	here, ok := t.grid.UnitTile(*u)
	if !ok {
		return
	}
	slot := t.towerSlot(u, here)
	if slot == nil {
		slog.Debug("no tower slot for builder", "unit", u.ID)
		return
	}
	if t.travel(u, slot) {
		t.build(u, slot)
	}
}

// towerSlot sweeps from the corner of from's quadrant toward the centre: x
// steps toward the middle column, then y steps toward the middle row. The
// first buildable tile wins, so builders fill the same slots in the same
// order every match.
func (t *turn) towerSlot(u *model.Unit, from *model.Tile) *model.Tile {
	g := t.grid
	x0, sx := 0, 1
	if g.Hemisphere(from) > 0 {
		x0, sx = g.Width-1, -1
	}
	y0, sy := 0, 1
	if from.Y >= g.Height/2 {
		y0, sy = g.Height-1, -1
	}
	for y := y0; y >= 0 && y < g.Height; y += sy {
		for x := x0; x >= 0 && x < g.Width; x += sx {
			c := g.At(x, y)
			if g.Hemisphere(c) != g.Hemisphere(from) {
				break
			}
			if t.buildable(u, c, from) {
				return c
			}
		}
	}
	return nil
}

func (t *turn) buildable(u *model.Unit, c, from *model.Tile) bool {
	g := t.grid
	if c.Type != model.Grass || c.Tower != nil || g.IsWorkerSpawn(c) || g.IsUnitSpawn(c) {
		return false
	}
	return c.ID == from.ID || g.HasRoom(c, u.Kind())
}

// build picks a random affordable tower job and requests it on tile.
func (t *turn) build(u *model.Unit, tile *model.Tile) {
	if u.Acted {
		return
	}
	var options []model.TowerJob
	for _, j := range t.gs.TowerJobs {
		if j.Title == model.CastleTower {
			continue
		}
		if CanAfford(j.Cost, t.gate.Treasury()) {
			options = append(options, j)
		}
	}
	if len(options) == 0 {
		slog.Debug("no affordable tower", "unit", u.ID, "gold", t.gate.Treasury().Gold, "mana", t.gate.Treasury().Mana)
		return
	}
	job := options[t.rng.Intn(len(options))]
	if !t.actions.Build(*u, job.Title) {
		t.rejected("build", u, tile)
		return
	}
	t.gate.Spend(job.Cost)
	tile.Tower = &model.Tower{Job: job.Title, Owner: t.grid.Player()}
	u.Acted = true
	slog.Debug("tower built", "unit", u.ID, "tower", job.Title, "x", tile.X, "y", tile.Y)
}
