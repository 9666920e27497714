package rules

import (
	"testing"

	"github.com/nstehr/necro/necro-core/grid/gridtest"
	"github.com/nstehr/necro/necro-core/model"
)

func newTestEngine(t *testing.T, p Policy, fake *fakeActions) *Engine {
	t.Helper()
	e, err := NewEngine(p, fake, &fixedRandom{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestSpawnEnv(t *testing.T) {
	gs := gridtest.Parse(
		"W...#",
		"....#",
	)
	gs.Turn = 7
	gs.Player.Gold = 42
	gs.Player.Mana = 9
	w := gridtest.AddUnit(&gs, 1, gridtest.Player, "worker", 1, 0)
	gridtest.AddUnit(&gs, 2, gridtest.Player, "zombie", 4, 0)
	gridtest.AddUnit(&gs, 3, gridtest.Player, "hound", 4, 1)
	dead := model.Unit{ID: 4, Owner: gridtest.Player, Job: "zombie"}
	gs.Player.Units = append(gs.Player.Units, dead)

	e := newTestEngine(t, DefaultPolicy(), newFake())
	e.rosters.Assign(w.ID, RoleMiner)
	e.rosters.Assign(99, RoleMiner) // not in the snapshot
	tr, err := newTurn(gs, e)
	if err != nil {
		t.Fatalf("newTurn: %v", err)
	}
	env := SpawnEnv{t: tr}

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"Gold", env.Gold(), 42},
		{"Mana", env.Mana(), 9},
		{"Turn", env.Turn(), 7},
		{"RoleCount(miner)", env.RoleCount("miner"), 1},
		{"RoleCount(fisher)", env.RoleCount("fisher"), 0},
		{"RoleCount(attacker)", env.RoleCount("attacker"), 2},
		{"RoleCount(bogus)", env.RoleCount("bogus"), 0},
		{"UnitCount(zombie)", env.UnitCount("zombie"), 1},
		{"GoldCost(ghoul)", env.GoldCost("ghoul"), 15},
		{"ManaCost(ghoul)", env.ManaCost("ghoul"), 10},
		{"GoldCost(tank)", env.GoldCost("tank"), 0},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
}

func TestSpawnEnvZeroValue(t *testing.T) {
	var env SpawnEnv
	if env.Gold() != 0 || env.RoleCount("miner") != 0 || env.GoldCost("worker") != 0 {
		t.Error("zero SpawnEnv should report zeros")
	}
}

func TestSpawnRuleAllow(t *testing.T) {
	gs := gridtest.Parse("W..")
	gs.Player.Gold = 60
	e := newTestEngine(t, DefaultPolicy(), newFake())
	tr, err := newTurn(gs, e)
	if err != nil {
		t.Fatalf("newTurn: %v", err)
	}
	compiled, err := compileRules([]*SpawnRule{
		{Name: "rich", Role: "a", ConditionSrc: `Gold() >= GoldCost("horseman")`},
		{Name: "poor", Role: "b", ConditionSrc: `Mana() >= 1000`},
	})
	if err != nil {
		t.Fatalf("compileRules: %v", err)
	}
	if ok, err := compiled["a"].Allow(SpawnEnv{t: tr}); err != nil || !ok {
		t.Errorf("rich = %v, %v; want true", ok, err)
	}
	if ok, err := compiled["b"].Allow(SpawnEnv{t: tr}); err != nil || ok {
		t.Errorf("poor = %v, %v; want false", ok, err)
	}
	if _, err := (&SpawnRule{Name: "raw"}).Allow(SpawnEnv{}); err == nil {
		t.Error("expected error for uncompiled rule")
	}
}
