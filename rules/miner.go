package rules

import (
	"log/slog"

	"github.com/nstehr/necro/necro-core/model"
)

// controlMiner mines where the unit stands, or heads for the nearest free
// gold mine and mines on arrival.
func (t *turn) controlMiner(u *model.Unit) {
	here, ok := t.grid.UnitTile(*u)
	if !ok {
		return
	}
	if t.grid.IsGoldMine(here) {
		t.mine(u, here)
		return
	}
	target := t.grid.Mines.Nearest(here.X, here.Y)
	if target == nil {
		slog.Debug("no gold mine for miner", "unit", u.ID)
		return
	}
	if t.grid.Mines.Occupied(target) {
		slog.Debug("every gold mine taken, heading for the nearest", "unit", u.ID, "x", target.X, "y", target.Y)
	}
	if t.travel(u, target) {
		t.mine(u, target)
	}
}

func (t *turn) mine(u *model.Unit, tile *model.Tile) {
	if u.Acted {
		return
	}
	if !t.actions.Mine(*u, tile) {
		t.rejected("mine", u, tile)
		return
	}
	u.Acted = true
}
