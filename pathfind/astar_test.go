package pathfind

import (
	"errors"
	"testing"

	"github.com/nstehr/necro/necro-core/grid"
	"github.com/nstehr/necro/necro-core/grid/gridtest"
	"github.com/nstehr/necro/necro-core/model"
)

func mustGrid(t *testing.T, gs model.GameState) *grid.Grid {
	t.Helper()
	g, err := grid.New(gs)
	if err != nil {
		t.Fatalf("grid.New() failed: %v", err)
	}
	return g
}

func xs(path []*model.Tile) []int {
	out := make([]int, len(path))
	for i, t := range path {
		out[i] = t.X
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStraightCorridor(t *testing.T) {
	gs := gridtest.Parse("#####")
	u := gridtest.AddUnit(&gs, 1, gridtest.Player, "zombie", 0, 0)
	g := mustGrid(t, gs)

	path, err := New(g).FindPath(UnitEndpoint{u}, TileEndpoint{g.At(4, 0)}, model.Zombie)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if got, want := xs(path), []int{1, 2, 3, 4}; !equalInts(got, want) {
		t.Errorf("path = %v, want %v", got, want)
	}
}

func TestBlockedCorridorReturnsPartialPath(t *testing.T) {
	gs := gridtest.Parse("#####")
	u := gridtest.AddUnit(&gs, 1, gridtest.Player, "zombie", 0, 0)
	gridtest.AddUnit(&gs, 2, gridtest.Player, "ghoul", 2, 0)
	g := mustGrid(t, gs)

	path, err := New(g).FindPath(UnitEndpoint{u}, TileEndpoint{g.At(4, 0)}, model.Zombie)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if got, want := xs(path), []int{1}; !equalInts(got, want) {
		t.Errorf("path = %v, want %v", got, want)
	}
}

func TestGoalOverride(t *testing.T) {
	gs := gridtest.Parse("####E")
	u := gridtest.AddUnit(&gs, 1, gridtest.Player, "hound", 0, 0)
	gridtest.AddUnit(&gs, 9, gridtest.Opponent, "zombie", 3, 0)
	g := mustGrid(t, gs)

	// The enemy stack on (3,0) is the goal, so it is enterable.
	path, err := New(g).FindPath(UnitEndpoint{u}, TileEndpoint{g.At(3, 0)}, model.Hound)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if got, want := xs(path), []int{1, 2, 3}; !equalInts(got, want) {
		t.Errorf("path = %v, want %v", got, want)
	}

	// The castle is not a path tile, yet attackers can route onto it.
	path, err = New(g).FindPath(TileEndpoint{g.At(3, 0)}, TileEndpoint{g.EnemyCastle()}, model.Hound)
	if err != nil {
		t.Fatalf("FindPath to castle failed: %v", err)
	}
	if len(path) == 0 || path[len(path)-1] != g.EnemyCastle() {
		t.Errorf("path to castle = %v, want it to end on the castle", xs(path))
	}
}

func TestEnclosedStart(t *testing.T) {
	gs := gridtest.Parse(
		"...",
		".#.",
		"..#",
	)
	g := mustGrid(t, gs)
	path, err := New(g).FindPath(TileEndpoint{g.At(1, 1)}, TileEndpoint{g.At(2, 2)}, model.Zombie)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if len(path) != 0 {
		t.Errorf("enclosed start path = %v, want empty", xs(path))
	}
}

func TestStartEqualsGoal(t *testing.T) {
	g := mustGrid(t, gridtest.Parse("###"))
	path, err := New(g).FindPath(TileEndpoint{g.At(1, 0)}, TileEndpoint{g.At(1, 0)}, model.Zombie)
	if err != nil || len(path) != 0 {
		t.Errorf("FindPath(same tile) = %v, %v; want empty, nil", xs(path), err)
	}
}

func TestDeadUnitEndpoint(t *testing.T) {
	g := mustGrid(t, gridtest.Parse("###"))
	dead := model.Unit{ID: 7, Job: "zombie"}
	_, err := New(g).FindPath(UnitEndpoint{dead}, TileEndpoint{g.At(2, 0)}, model.Zombie)
	if !errors.Is(err, ErrPathNotFound) {
		t.Errorf("err = %v, want ErrPathNotFound", err)
	}
	_, err = New(g).FindPath(TileEndpoint{g.At(0, 0)}, TileEndpoint{nil}, model.Zombie)
	if !errors.Is(err, ErrPathNotFound) {
		t.Errorf("err = %v, want ErrPathNotFound", err)
	}
}

func TestWorkerAvoidsPaths(t *testing.T) {
	gs := gridtest.Parse(
		"..#..",
		"..#..",
		".....",
	)
	g := mustGrid(t, gs)
	path, err := New(g).FindPath(TileEndpoint{g.At(0, 0)}, TileEndpoint{g.At(4, 0)}, model.Worker)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if len(path) != 8 {
		t.Errorf("len(path) = %d, want 8 (around the path column)", len(path))
	}
	for _, tile := range path {
		if tile.Type == model.Path {
			t.Errorf("worker path crosses path tile (%d, %d)", tile.X, tile.Y)
		}
	}
}

func TestShortestOnOpenGrid(t *testing.T) {
	g := mustGrid(t, gridtest.Parse(
		"......",
		"......",
		"......",
		"......",
		"......",
	))
	path, err := New(g).FindPath(TileEndpoint{g.At(0, 0)}, TileEndpoint{g.At(5, 4)}, model.Worker)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if len(path) != 9 {
		t.Errorf("len(path) = %d, want 9", len(path))
	}
}

func TestMatchesManhattanOnOpenGrid(t *testing.T) {
	g := mustGrid(t, gridtest.Parse(
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
	))
	tests := []struct{ sx, sy, gx, gy int }{
		{0, 0, 9, 6},
		{0, 6, 9, 0},
		{3, 2, 0, 4},
		{9, 2, 0, 0},
		{5, 3, 5, 0},
		{4, 4, 7, 4},
	}
	for _, tc := range tests {
		start, goal := g.At(tc.sx, tc.sy), g.At(tc.gx, tc.gy)
		path, err := New(g).FindPath(TileEndpoint{start}, TileEndpoint{goal}, model.Worker)
		if err != nil {
			t.Errorf("(%d,%d)->(%d,%d): %v", tc.sx, tc.sy, tc.gx, tc.gy, err)
			continue
		}
		if want := grid.Distance(start, goal); len(path) != want {
			t.Errorf("(%d,%d)->(%d,%d): len(path) = %d, want %d", tc.sx, tc.sy, tc.gx, tc.gy, len(path), want)
		}
		if len(path) > 0 && path[len(path)-1] != goal {
			t.Errorf("(%d,%d)->(%d,%d): path does not end on the goal", tc.sx, tc.sy, tc.gx, tc.gy)
		}
		prev := start
		for _, step := range path {
			if grid.Distance(prev, step) != 1 {
				t.Errorf("(%d,%d)->(%d,%d): non-adjacent step to (%d, %d)", tc.sx, tc.sy, tc.gx, tc.gy, step.X, step.Y)
			}
			prev = step
		}
	}
}

func TestDeterministic(t *testing.T) {
	gs := gridtest.Parse(
		"########",
		"#..#...#",
		"########",
	)
	g := mustGrid(t, gs)
	pf := New(g)
	first, _ := pf.FindPath(TileEndpoint{g.At(0, 0)}, TileEndpoint{g.At(7, 2)}, model.Zombie)
	for i := 0; i < 10; i++ {
		again, _ := pf.FindPath(TileEndpoint{g.At(0, 0)}, TileEndpoint{g.At(7, 2)}, model.Zombie)
		if len(again) != len(first) {
			t.Fatalf("run %d: len %d, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: step %d differs", i, j)
			}
		}
	}
}

func TestPathRespectsOccupancy(t *testing.T) {
	gs := gridtest.Parse(
		"########",
		"#......#",
		"########",
	)
	gridtest.AddUnit(&gs, 2, gridtest.Player, "ghoul", 3, 0)
	gridtest.AddUnit(&gs, 3, gridtest.Opponent, "zombie", 5, 2)
	gridtest.AddUnit(&gs, 4, gridtest.Player, "zombie", 2, 2)
	g := mustGrid(t, gs)

	path, err := New(g).FindPath(TileEndpoint{g.At(0, 1)}, TileEndpoint{g.At(7, 0)}, model.Zombie)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if len(path) == 0 {
		t.Fatal("expected a path")
	}
	for _, tile := range path[:len(path)-1] {
		if !Traversable(g, tile, model.Zombie) {
			t.Errorf("path crosses untraversable tile (%d, %d)", tile.X, tile.Y)
		}
	}
}

func TestTraversableTerrain(t *testing.T) {
	g := mustGrid(t, gridtest.Parse(".#~giC"))
	tests := []struct {
		x    int
		kind model.UnitKind
		want bool
	}{
		{0, model.Worker, true},
		{1, model.Worker, false},
		{2, model.Worker, false},
		{3, model.Worker, true},
		{4, model.Worker, true},
		{5, model.Worker, false},
		{0, model.Zombie, false},
		{1, model.Zombie, true},
		{1, model.Horseman, true},
		{2, model.Wraith, false},
		{1, model.KindUnknown, false},
	}
	for _, tc := range tests {
		if got := Traversable(g, g.At(tc.x, 0), tc.kind); got != tc.want {
			t.Errorf("Traversable(%d, %v) = %v, want %v", tc.x, tc.kind, got, tc.want)
		}
	}
}
