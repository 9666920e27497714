package rules

import (
	"log/slog"

	"github.com/nstehr/necro/necro-core/model"
)

// attackerKinds lists the non-worker kinds present in the catalogue in
// enumeration order.
func (t *turn) attackerKinds() []model.UnitKind {
	var kinds []model.UnitKind
	for _, k := range model.AttackerKinds() {
		if _, err := t.gate.Job(k); err == nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// advance marches an attacker toward the enemy castle.
func (t *turn) advance(u *model.Unit) {
	t.controlled[u.ID] = true
	castle := t.grid.EnemyCastle()
	if castle == nil {
		return
	}
	t.travel(u, castle)
}

// engage attacks the first adjacent enemy tower or unit stack. A unit that
// has already acted this turn is left alone.
func (t *turn) engage(u *model.Unit) {
	if u.Acted {
		return
	}
	here, ok := t.grid.UnitTile(*u)
	if !ok {
		return
	}
	for _, n := range t.grid.Neighbors(here) {
		if !t.grid.HasEnemy(n) {
			continue
		}
		if !t.actions.Attack(*u, n) {
			t.rejected("attack", u, n)
			continue
		}
		u.Acted = true
		slog.Debug("attack", "unit", u.ID, "kind", u.Kind(), "x", n.X, "y", n.Y)
		return
	}
}
