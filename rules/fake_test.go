package rules

import (
	"fmt"

	"github.com/nstehr/necro/necro-core/model"
)

// fakeActions accepts everything unless told otherwise and records each call.
type fakeActions struct {
	nextID int
	calls  []string

	refuse map[string]bool // action name → reject
	// refuseTile rejects moves onto the listed tile ids.
	refuseTile map[int]bool
}

func newFake() *fakeActions {
	return &fakeActions{nextID: 100, refuse: map[string]bool{}, refuseTile: map[int]bool{}}
}

func (f *fakeActions) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeActions) spawned(tile *model.Tile, job string) model.Unit {
	f.nextID++
	id := tile.ID
	return model.Unit{ID: f.nextID, Job: job, TileID: &id}
}

func (f *fakeActions) SpawnWorker(tile *model.Tile) (model.Unit, bool) {
	f.record("spawn_worker %d", tile.ID)
	if f.refuse["spawn_worker"] {
		return model.Unit{}, false
	}
	return f.spawned(tile, "worker"), true
}

func (f *fakeActions) SpawnUnit(tile *model.Tile, job string) (model.Unit, bool) {
	f.record("spawn_unit %d %s", tile.ID, job)
	if f.refuse["spawn_unit"] {
		return model.Unit{}, false
	}
	return f.spawned(tile, job), true
}

func (f *fakeActions) Move(u model.Unit, tile *model.Tile) bool {
	f.record("move %d %d", u.ID, tile.ID)
	return !f.refuse["move"] && !f.refuseTile[tile.ID]
}

func (f *fakeActions) Mine(u model.Unit, tile *model.Tile) bool {
	f.record("mine %d %d", u.ID, tile.ID)
	return !f.refuse["mine"]
}

func (f *fakeActions) Fish(u model.Unit, tile *model.Tile) bool {
	f.record("fish %d %d", u.ID, tile.ID)
	return !f.refuse["fish"]
}

func (f *fakeActions) Build(u model.Unit, towerJob string) bool {
	f.record("build %d %s", u.ID, towerJob)
	return !f.refuse["build"]
}

func (f *fakeActions) Attack(u model.Unit, tile *model.Tile) bool {
	f.record("attack %d %d", u.ID, tile.ID)
	return !f.refuse["attack"]
}

// count returns how many recorded calls start with prefix.
func (f *fakeActions) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *fakeActions) has(call string) bool {
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

// fixedRandom replays a script; Intn always returns 0 when none is set.
type fixedRandom struct {
	ints   []int
	floats []float64
}

func (r *fixedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *fixedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

type towerRecorder struct {
	turns []int
	err   error
}

func (r *towerRecorder) TowerCombat(turn int) error {
	r.turns = append(r.turns, turn)
	return r.err
}
