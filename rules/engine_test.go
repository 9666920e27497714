package rules

import (
	"errors"
	"math"
	"testing"

	"github.com/nstehr/necro/necro-core/grid/gridtest"
	"github.com/nstehr/necro/necro-core/model"
)

// noAttackers keeps the attacker spawn loop closed.
func noAttackers(p Policy) Policy {
	p.Conditions = map[string]string{"attacker": "false"}
	return p
}

func TestTurnSpawnsMinersUpToCap(t *testing.T) {
	gs := gridtest.Parse("Wg..")
	fake := newFake()
	e := newTestEngine(t, noAttackers(Policy{Miners: 2}), fake)

	if err := e.Turn(gs); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if n := fake.count("spawn_worker"); n != 2 {
		t.Errorf("expected 2 worker spawns, got %d (%v)", n, fake.calls)
	}
	// The first miner walks onto the mine and mines the same turn.
	if !fake.has("move 101 1") || !fake.has("mine 101 1") {
		t.Errorf("expected first miner to move and mine, got %v", fake.calls)
	}
	if n := fake.count("mine"); n != 1 {
		t.Errorf("expected one mine action, got %d", n)
	}
	if n := e.Rosters().Count(RoleMiner); n != 2 {
		t.Errorf("miner roster = %d, want 2", n)
	}
	if ids := e.Spawned(model.Worker); len(ids) != 2 || ids[0] != 101 || ids[1] != 102 {
		t.Errorf("registry = %v, want [101 102]", ids)
	}
	if s := e.LastSample(); s.Valid {
		t.Errorf("sample = %+v, want invalid without an enemy castle", s)
	}
}

func TestTurnStopsSpawningWhenBroke(t *testing.T) {
	gs := gridtest.Parse("Wg..")
	gs.Player.Gold = 15
	fake := newFake()
	e := newTestEngine(t, noAttackers(Policy{Miners: 4}), fake)

	if err := e.Turn(gs); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if n := fake.count("spawn_worker"); n != 1 {
		t.Errorf("expected 1 worker spawn, got %d", n)
	}
	if n := len(e.Spawned(model.Worker)); n != 1 {
		t.Errorf("registry has %d workers, want 1", n)
	}
}

func TestTurnRefusedSpawnLeavesRosterEmpty(t *testing.T) {
	gs := gridtest.Parse("W...")
	fake := newFake()
	fake.refuse["spawn_worker"] = true
	e := newTestEngine(t, noAttackers(Policy{Miners: 4}), fake)

	if err := e.Turn(gs); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if n := fake.count("spawn_worker"); n != 1 {
		t.Errorf("expected one attempt, got %d", n)
	}
	if e.Rosters().Count(RoleMiner) != 0 || len(e.Spawned(model.Worker)) != 0 {
		t.Error("refused spawn must not be recorded")
	}
}

func TestTurnAdoptsUnclaimedWorkers(t *testing.T) {
	gs := gridtest.Parse(".....")
	for i := 1; i <= 4; i++ {
		gridtest.AddUnit(&gs, i, gridtest.Player, "worker", i-1, 0)
	}
	e := newTestEngine(t, noAttackers(Policy{Miners: 1, Fishers: 2}), newFake())

	if err := e.Turn(gs); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	want := map[int]Role{1: RoleFisher, 2: RoleMiner, 3: RoleFisher, 4: RoleMiner}
	for id, role := range want {
		got, ok := e.Rosters().Role(id)
		if !ok || got != role {
			t.Errorf("unit %d role = %v (%v), want %v", id, got, ok, role)
		}
	}
}

func TestTurnPrunesDeadWorkers(t *testing.T) {
	gs := gridtest.Parse("....")
	gs.Player.Units = []model.Unit{{ID: 1, Owner: gridtest.Player, Job: "worker"}}
	e := newTestEngine(t, noAttackers(Policy{Miners: 2}), newFake())
	e.Rosters().Assign(1, RoleMiner)
	e.Rosters().Assign(2, RoleMiner) // missing from the snapshot entirely

	if err := e.Turn(gs); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if n := e.Rosters().Count(RoleMiner); n != 0 {
		t.Errorf("miner roster = %d, want 0 after pruning", n)
	}
}

func TestTurnConfigurationMissing(t *testing.T) {
	gs := gridtest.Parse("W...")
	gs.Jobs = gs.Jobs[1:] // drop worker
	e := newTestEngine(t, DefaultPolicy(), newFake())
	if err := e.Turn(gs); !errors.Is(err, ErrConfigurationMissing) {
		t.Errorf("expected ErrConfigurationMissing, got %v", err)
	}

	bad := gridtest.Parse("W...")
	bad.Tiles = bad.Tiles[:2]
	if err := e.Turn(bad); err == nil {
		t.Error("expected error for malformed map")
	}
}

func TestTurnAttackerMarchesAndAttacks(t *testing.T) {
	gs := gridtest.Parse("U###E")
	fake := newFake()
	p := Policy{Attackers: 1, AttackerWeights: map[string]float64{"hound": 1}}
	e := newTestEngine(t, p, fake)
	towers := &towerRecorder{}
	e.SetTowerCombat(towers)

	if err := e.Turn(gs); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	for _, call := range []string{"spawn_unit 0 hound", "move 101 1", "move 101 2", "move 101 3", "attack 101 4"} {
		if !fake.has(call) {
			t.Errorf("missing %q in %v", call, fake.calls)
		}
	}
	if n := fake.count("move"); n != 3 {
		t.Errorf("expected hound to spend 3 moves, got %d", n)
	}
	if len(towers.turns) != 1 || towers.turns[0] != 1 {
		t.Errorf("tower combat turns = %v, want [1]", towers.turns)
	}
	s := e.LastSample()
	if !s.Valid || s.Turn != 1 || s.EnemyCastleHealth != 100 {
		t.Errorf("sample = %+v, want turn 1 health 100", s)
	}
	if Classify(s) != "loss" {
		t.Errorf("Classify(%+v) = %s, want loss", s, Classify(s))
	}
	if w := e.AttackerWeights(); w["hound"] != 1 || w["zombie"] != 0 {
		t.Errorf("weights = %v", w)
	}
}

func TestTurnAttackerCapCountsExisting(t *testing.T) {
	gs := gridtest.Parse("U###E")
	gridtest.AddUnit(&gs, 1, gridtest.Player, "zombie", 1, 0)
	fake := newFake()
	e := newTestEngine(t, Policy{Attackers: 1}, fake)

	if err := e.Turn(gs); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if n := fake.count("spawn_unit"); n != 0 {
		t.Errorf("expected no attacker spawn at cap, got %d", n)
	}
	if !fake.has("move 1 2") {
		t.Errorf("expected existing zombie to advance, got %v", fake.calls)
	}
}

func TestTurnAttackOncePerUnit(t *testing.T) {
	build := func() model.GameState {
		gs := gridtest.Parse(
			"#E",
			"#.",
		)
		gridtest.AddUnit(&gs, 1, gridtest.Player, "zombie", 0, 0)
		gridtest.AddUnit(&gs, 50, gridtest.Opponent, "zombie", 0, 1)
		return gs
	}
	p := noAttackers(DefaultPolicy())

	t.Run("first target accepted", func(t *testing.T) {
		fake := newFake()
		if err := newTestEngine(t, p, fake).Turn(build()); err != nil {
			t.Fatalf("Turn: %v", err)
		}
		if n := fake.count("attack"); n != 1 {
			t.Errorf("expected 1 attack, got %d (%v)", n, fake.calls)
		}
		if !fake.has("attack 1 1") {
			t.Errorf("expected castle attacked first, got %v", fake.calls)
		}
	})

	t.Run("rejected attacks try every target", func(t *testing.T) {
		fake := newFake()
		fake.refuse["attack"] = true
		if err := newTestEngine(t, p, fake).Turn(build()); err != nil {
			t.Fatalf("Turn: %v", err)
		}
		if n := fake.count("attack"); n != 2 {
			t.Errorf("expected 2 attempts, got %d", n)
		}
	})

	t.Run("already acted", func(t *testing.T) {
		gs := build()
		gs.Player.Units[0].Acted = true
		fake := newFake()
		if err := newTestEngine(t, p, fake).Turn(gs); err != nil {
			t.Fatalf("Turn: %v", err)
		}
		if n := fake.count("attack"); n != 0 {
			t.Errorf("expected no attack, got %d", n)
		}
	})
}

func TestTurnCastleDestroyedIsWin(t *testing.T) {
	gs := gridtest.Parse("U#E")
	gs.Tiles[2].Tower = nil
	e := newTestEngine(t, noAttackers(DefaultPolicy()), newFake())
	towers := &towerRecorder{err: errors.New("host went away")}
	e.SetTowerCombat(towers)

	if err := e.Turn(gs); err != nil {
		t.Fatalf("Turn should absorb tower combat errors: %v", err)
	}
	s := e.LastSample()
	if !s.Valid || s.EnemyCastleHealth != 0 {
		t.Errorf("sample = %+v, want valid with zero health", s)
	}
	if Classify(s) != "win" {
		t.Errorf("Classify = %s, want win", Classify(s))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		s    Sample
		want string
	}{
		{Sample{Valid: true, EnemyCastleHealth: -5}, "win"},
		{Sample{Valid: true, EnemyCastleHealth: 0}, "win"},
		{Sample{Valid: true, EnemyCastleHealth: 1}, "loss"},
		{Sample{}, "loss"},
	}
	for _, tt := range tests {
		if got := Classify(tt.s); got != tt.want {
			t.Errorf("Classify(%+v) = %s, want %s", tt.s, got, tt.want)
		}
	}
}

func TestExploreWeightsSampledOnce(t *testing.T) {
	gs := gridtest.Parse("U#E")
	e, err := NewEngine(noAttackers(Policy{Explore: true}), newFake(), NewRandom(7))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if e.AttackerWeights() != nil {
		t.Error("weights should be unset before the first turn")
	}
	if err := e.Turn(gs); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	first := e.AttackerWeights()
	sum := 0.0
	for _, w := range first {
		sum += w
	}
	if len(first) != 6 || math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights = %v (sum %v), want 6 kinds summing to 1", first, sum)
	}

	gs.Turn = 2
	if err := e.Turn(gs); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	for k, w := range e.AttackerWeights() {
		if first[k] != w {
			t.Errorf("weight %s changed from %v to %v", k, first[k], w)
		}
	}
}

func TestNewEngineNeedsActions(t *testing.T) {
	if _, err := NewEngine(DefaultPolicy(), nil, nil); err == nil {
		t.Error("expected error without actions")
	}
}
