package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nstehr/necro/necro-core/grid"
	"github.com/nstehr/necro/necro-core/model"
	"github.com/nstehr/necro/necro-core/pathfind"
)

// turn is the state one decision pass works on. It is built fresh from the
// snapshot and thrown away when the pass ends.
type turn struct {
	gs      model.GameState
	grid    *grid.Grid
	paths   *pathfind.Pathfinder
	gate    *Gate
	actions Actions
	rosters *Rosters
	rng     Random

	units      map[int]*model.Unit
	order      []int
	controlled map[int]bool
}

func newTurn(gs model.GameState, e *Engine) (*turn, error) {
	g, err := grid.New(gs)
	if err != nil {
		return nil, err
	}
	t := &turn{
		gs:         gs,
		grid:       g,
		paths:      pathfind.New(g),
		gate:       NewGate(g, e.actions, gs, e.registry),
		actions:    e.actions,
		rosters:    e.rosters,
		rng:        e.rng,
		units:      make(map[int]*model.Unit, len(gs.Player.Units)),
		controlled: make(map[int]bool),
	}
	for _, u := range gs.Player.Units {
		t.addUnit(u)
	}
	return t, nil
}

func (t *turn) addUnit(u model.Unit) *model.Unit {
	p := &u
	if _, ok := t.units[u.ID]; !ok {
		t.order = append(t.order, u.ID)
	}
	t.units[u.ID] = p
	return p
}

// liveUnits returns our units that still stand on a tile, in snapshot order
// followed by this turn's spawns.
func (t *turn) liveUnits() []*model.Unit {
	var out []*model.Unit
	for _, id := range t.order {
		if u := t.units[id]; u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

func (t *turn) alive(id int) bool {
	u, ok := t.units[id]
	return ok && u.Alive()
}

// travel walks u along a path to dest, one move action per tile, until it
// arrives, runs out of moves or a step is refused. It reports arrival.
func (t *turn) travel(u *model.Unit, dest *model.Tile) bool {
	here, ok := t.grid.UnitTile(*u)
	if !ok {
		return false
	}
	if here.ID == dest.ID {
		return true
	}
	path, err := t.paths.FindPath(pathfind.UnitEndpoint{Unit: *u}, pathfind.TileEndpoint{Tile: dest}, u.Kind())
	if err != nil {
		slog.Warn("no path", "unit", u.ID, "kind", u.Kind(), "x", dest.X, "y", dest.Y, "error", err)
		return false
	}
	for _, next := range path {
		if u.Moves <= 0 || !t.step(u, next) {
			break
		}
	}
	here, ok = t.grid.UnitTile(*u)
	return ok && here.ID == dest.ID
}

// step moves u onto the adjacent tile next. A tile u may not stand on is
// never requested, so a walk toward a blocked goal stops beside it.
func (t *turn) step(u *model.Unit, next *model.Tile) bool {
	from, ok := t.grid.UnitTile(*u)
	if !ok {
		return false
	}
	k := u.Kind()
	if !pathfind.Traversable(t.grid, next, k) {
		return false
	}
	if !t.actions.Move(*u, next) {
		t.rejected("move", u, next)
		return false
	}
	t.grid.Vacate(from)
	t.grid.Occupy(next, k)
	id := next.ID
	u.TileID = &id
	u.Moves--
	return true
}

func (t *turn) rejected(action string, u *model.Unit, tile *model.Tile) {
	err := fmt.Errorf("%s by unit %d: %w", action, u.ID, ErrActionRejected)
	if tile != nil {
		slog.Warn("action rejected", "action", action, "unit", u.ID, "x", tile.X, "y", tile.Y, "error", err)
		return
	}
	slog.Warn("action rejected", "action", action, "unit", u.ID, "error", err)
}

// spawn runs one spawn attempt for kind k at its designated spawner. A false
// result ends the caller's spawn loop; err is only set for a catalogue
// mismatch.
func (t *turn) spawn(k model.UnitKind) (*model.Unit, bool, error) {
	if _, err := t.gate.Job(k); err != nil {
		return nil, false, err
	}
	tile, ok := t.gate.SelectSpawnPoint(k)
	if !ok {
		slog.Warn("spawner busy", "kind", k)
		return nil, false, nil
	}
	u, err := t.gate.Spawn(k, tile)
	if err != nil {
		if errors.Is(err, ErrConfigurationMissing) {
			return nil, false, err
		}
		slog.Log(context.Background(), spawnLogLevel(err), "spawn denied", "kind", k, "error", err)
		return nil, false, nil
	}
	return t.addUnit(u), true, nil
}

// spawnLogLevel keeps running out of money quiet; anything else that stops a
// spawn loop is worth a warning.
func spawnLogLevel(err error) slog.Level {
	if errors.Is(err, errUnaffordable) {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// neighborWhere returns the first neighbour of tile that satisfies match.
func (t *turn) neighborWhere(tile *model.Tile, match func(*model.Tile) bool) *model.Tile {
	for _, n := range t.grid.Neighbors(tile) {
		if match(n) {
			return n
		}
	}
	return nil
}
