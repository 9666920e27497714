package rules

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/necro/necro-core/model"
)

// Engine is the per-match decision core. It owns the role rosters, the spawn
// registry and the attacker weights; everything derived from the map is
// rebuilt from each snapshot.
type Engine struct {
	policy  Policy
	rules   map[string]*SpawnRule
	rng     Random
	actions Actions
	towers  TowerCombat

	rosters  *Rosters
	registry map[model.UnitKind][]int
	weights  map[model.UnitKind]float64
	weighted bool
	last     Sample
}

// Sample is the bookkeeping record taken at the end of every turn.
type Sample struct {
	Turn              int  `json:"turn"`
	EnemyCastleHealth int  `json:"enemyCastleHealth"`
	Valid             bool `json:"valid"` // false until a map with an enemy castle was seen
}

// Classify reads a final sample: an enemy castle at or below zero health is a
// win, anything else a loss.
func Classify(s Sample) string {
	if s.Valid && s.EnemyCastleHealth <= 0 {
		return "win"
	}
	return "loss"
}

// maxSpawnsPerTurn bounds a spawn loop whose costs are all zero.
const maxSpawnsPerTurn = maxPopulation

// NewEngine compiles the policy's spawn rules. A nil rng is seeded from the
// clock.
func NewEngine(p Policy, actions Actions, rng Random) (*Engine, error) {
	if actions == nil {
		return nil, fmt.Errorf("engine needs an action surface")
	}
	p.Validate()
	compiled, err := compileRules(CompilePolicy(p))
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRandom(0)
	}
	return &Engine{
		policy:   p,
		rules:    compiled,
		rng:      rng,
		actions:  actions,
		rosters:  NewRosters(),
		registry: make(map[model.UnitKind][]int),
	}, nil
}

// SetTowerCombat installs the collaborator that resolves the tower phase.
func (e *Engine) SetTowerCombat(tc TowerCombat) { e.towers = tc }

func (e *Engine) Rosters() *Rosters { return e.rosters }

func (e *Engine) LastSample() Sample { return e.last }

// Spawned returns the ids of every unit of kind k the engine has spawned.
func (e *Engine) Spawned(k model.UnitKind) []int {
	return append([]int(nil), e.registry[k]...)
}

// AttackerWeights returns the weights in use, keyed by job title. Nil until
// the first attacker spawn phase.
func (e *Engine) AttackerWeights() map[string]float64 {
	if !e.weighted {
		return nil
	}
	out := make(map[string]float64, len(e.weights))
	for k, w := range e.weights {
		out[k.String()] = w
	}
	return out
}

// Turn runs one decision pass over gs:
// spawn workers, control workers, spawn attackers, move attackers, combat,
// tower combat, bookkeeping. Per-unit failures are logged and skipped; only a
// catalogue mismatch aborts the pass.
func (e *Engine) Turn(gs model.GameState) error {
	t, err := newTurn(gs, e)
	if err != nil {
		return fmt.Errorf("turn %d: %w", gs.Turn, err)
	}
	if _, err := t.gate.Job(model.Worker); err != nil {
		return fmt.Errorf("turn %d: %w", gs.Turn, err)
	}

	e.adopt(t)
	for _, r := range workerRoles {
		if err := e.spawnLoop(t, r.String(), func() (bool, error) { return e.spawnWorker(t, r) }); err != nil {
			return fmt.Errorf("turn %d: %w", gs.Turn, err)
		}
	}
	e.controlWorkers(t)

	kinds := t.attackerKinds()
	e.initWeights(kinds)
	if err := e.spawnLoop(t, attackerRole, func() (bool, error) { return e.spawnAttacker(t, kinds) }); err != nil {
		return fmt.Errorf("turn %d: %w", gs.Turn, err)
	}
	for _, u := range t.liveUnits() {
		if u.Kind() != model.Worker && !t.controlled[u.ID] {
			t.advance(u)
		}
	}

	for _, u := range t.liveUnits() {
		if u.Kind() != model.Worker {
			t.engage(u)
		}
	}

	if e.towers != nil {
		if err := e.towers.TowerCombat(gs.Turn); err != nil {
			slog.Warn("tower combat failed", "turn", gs.Turn, "error", err)
		}
	}

	e.bookkeeping(t)
	return nil
}

// spawnLoop keeps calling once while the role's rule allows it and once
// reports progress.
func (e *Engine) spawnLoop(t *turn, role string, once func() (bool, error)) error {
	rule, ok := e.rules[role]
	if !ok {
		return nil
	}
	env := SpawnEnv{t: t}
	for i := 0; i < maxSpawnsPerTurn; i++ {
		allow, err := rule.Allow(env)
		if err != nil {
			slog.Warn("spawn rule error", "rule", rule.Name, "error", err)
			return nil
		}
		if !allow {
			return nil
		}
		spawned, err := once()
		if err != nil {
			return err
		}
		if !spawned {
			return nil
		}
	}
	return nil
}

func (e *Engine) spawnWorker(t *turn, r Role) (bool, error) {
	u, ok, err := t.spawn(model.Worker)
	if !ok || err != nil {
		return false, err
	}
	t.rosters.Assign(u.ID, r)
	slog.Info("worker spawned", "role", r, "unit", u.ID, "turn", t.gs.Turn)
	e.control(t, r, u)
	return true, nil
}

func (e *Engine) spawnAttacker(t *turn, kinds []model.UnitKind) (bool, error) {
	k := chooseWeighted(t.rng, kinds, e.weights)
	if k == model.KindUnknown {
		return false, nil
	}
	u, ok, err := t.spawn(k)
	if !ok || err != nil {
		return false, err
	}
	slog.Info("attacker spawned", "kind", k, "unit", u.ID, "turn", t.gs.Turn)
	t.advance(u)
	return true, nil
}

func (e *Engine) control(t *turn, r Role, u *model.Unit) {
	if t.controlled[u.ID] || !u.Alive() {
		return
	}
	t.controlled[u.ID] = true
	switch r {
	case RoleMiner:
		t.controlMiner(u)
	case RoleFisher:
		t.controlFisher(u)
	case RoleBuilder:
		t.controlBuilder(u)
	}
}

// controlWorkers runs every roster member that has not acted yet this turn,
// then drops dead units from the rosters.
func (e *Engine) controlWorkers(t *turn) {
	for _, r := range workerRoles {
		for _, id := range t.rosters.Members(r) {
			if u, ok := t.units[id]; ok {
				e.control(t, r, u)
			}
		}
	}
	if removed := t.rosters.Prune(t.alive); len(removed) > 0 {
		slog.Info("pruned dead workers", "units", removed)
	}
}

// adopt hands live workers no roster claims to the role furthest below its
// cap. Ties go to the earlier role; with every role full, miners take them.
func (e *Engine) adopt(t *turn) {
	for _, u := range t.liveUnits() {
		if u.Kind() != model.Worker {
			continue
		}
		if _, claimed := t.rosters.Role(u.ID); claimed {
			continue
		}
		best, bestDeficit := RoleMiner, 0
		for _, r := range workerRoles {
			live := 0
			for _, id := range t.rosters.Members(r) {
				if t.alive(id) {
					live++
				}
			}
			if d := e.policy.Cap(r) - live; d > bestDeficit {
				best, bestDeficit = r, d
			}
		}
		t.rosters.Assign(u.ID, best)
		slog.Debug("worker adopted", "unit", u.ID, "role", best)
	}
}

func (e *Engine) initWeights(kinds []model.UnitKind) {
	if e.weighted || len(kinds) == 0 {
		return
	}
	switch {
	case e.policy.Explore:
		e.weights = sampleWeights(e.rng, kinds)
	case len(e.policy.AttackerWeights) > 0:
		e.weights = make(map[model.UnitKind]float64, len(kinds))
		for _, k := range kinds {
			e.weights[k] = e.policy.AttackerWeights[k.String()]
		}
	default:
		e.weights = make(map[model.UnitKind]float64, len(kinds))
		for _, k := range kinds {
			e.weights[k] = 1 / float64(len(kinds))
		}
	}
	e.weighted = true
	slog.Info("attacker weights set", "weights", e.AttackerWeights(), "explore", e.policy.Explore)
}

func (e *Engine) bookkeeping(t *turn) {
	castle := t.grid.EnemyCastle()
	if castle == nil {
		e.last = Sample{Turn: t.gs.Turn}
		return
	}
	health := 0
	if castle.Tower != nil {
		health = castle.Tower.Health
	}
	e.last = Sample{Turn: t.gs.Turn, EnemyCastleHealth: health, Valid: true}
	slog.Debug("turn complete", "turn", t.gs.Turn, "enemyCastleHealth", health,
		"gold", t.gate.Treasury().Gold, "mana", t.gate.Treasury().Mana)
}
