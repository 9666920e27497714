package rules

import (
	"github.com/nstehr/necro/necro-core/model"
)

// SpawnEnv exposes the turn's state to spawn-rule expressions.
type SpawnEnv struct {
	t *turn
}

func (e SpawnEnv) Gold() int {
	if e.t == nil {
		return 0
	}
	return e.t.gate.Treasury().Gold
}

func (e SpawnEnv) Mana() int {
	if e.t == nil {
		return 0
	}
	return e.t.gate.Treasury().Mana
}

func (e SpawnEnv) Turn() int {
	if e.t == nil {
		return 0
	}
	return e.t.gs.Turn
}

// RoleCount counts live units claimed by role; "attacker" counts every live
// non-worker unit.
func (e SpawnEnv) RoleCount(role string) int {
	if e.t == nil {
		return 0
	}
	if role == attackerRole {
		n := 0
		for _, u := range e.t.liveUnits() {
			if u.Kind() != model.Worker {
				n++
			}
		}
		return n
	}
	r, ok := ParseRole(role)
	if !ok {
		return 0
	}
	n := 0
	for _, id := range e.t.rosters.Members(r) {
		if u, ok := e.t.units[id]; ok && u.Alive() {
			n++
		}
	}
	return n
}

// UnitCount counts live units of the given job title.
func (e SpawnEnv) UnitCount(kind string) int {
	if e.t == nil {
		return 0
	}
	k := model.ParseUnitKind(kind)
	n := 0
	for _, u := range e.t.liveUnits() {
		if u.Kind() == k {
			n++
		}
	}
	return n
}

func (e SpawnEnv) GoldCost(kind string) int {
	if e.t == nil {
		return 0
	}
	j, err := e.t.gate.Job(model.ParseUnitKind(kind))
	if err != nil {
		return 0
	}
	return j.Cost.Gold
}

func (e SpawnEnv) ManaCost(kind string) int {
	if e.t == nil {
		return 0
	}
	j, err := e.t.gate.Job(model.ParseUnitKind(kind))
	if err != nil {
		return 0
	}
	return j.Cost.Mana
}
