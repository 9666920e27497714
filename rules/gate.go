package rules

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/necro/necro-core/grid"
	"github.com/nstehr/necro/necro-core/model"
)

// CanAfford reports whether both balances cover the cost.
func CanAfford(cost model.Cost, t model.Treasury) bool {
	return t.Gold >= cost.Gold && t.Mana >= cost.Mana
}

// Gate guards every spend for one turn. It keeps a local copy of the treasury
// and deducts on each accepted request, so a spawn it believes succeeded is
// never paid for twice within the turn.
type Gate struct {
	grid     *grid.Grid
	actions  Actions
	treasury model.Treasury
	jobs     map[model.UnitKind]model.Job
	registry map[model.UnitKind][]int
}

// NewGate prepares the gate for a turn. registry is the engine's by-kind
// record of units it has spawned and outlives the turn.
func NewGate(g *grid.Grid, actions Actions, gs model.GameState, registry map[model.UnitKind][]int) *Gate {
	jobs := make(map[model.UnitKind]model.Job, len(gs.Jobs))
	for _, j := range gs.Jobs {
		if k := j.Kind(); k != model.KindUnknown {
			jobs[k] = j
		}
	}
	if registry == nil {
		registry = make(map[model.UnitKind][]int)
	}
	return &Gate{
		grid:     g,
		actions:  actions,
		treasury: gs.Player.Treasury(),
		jobs:     jobs,
		registry: registry,
	}
}

func (g *Gate) Treasury() model.Treasury { return g.treasury }

// Job returns the catalogue entry for k.
func (g *Gate) Job(k model.UnitKind) (model.Job, error) {
	j, ok := g.jobs[k]
	if !ok {
		return model.Job{}, fmt.Errorf("no %v job in catalogue: %w", k, ErrConfigurationMissing)
	}
	return j, nil
}

// Spend deducts cost when affordable.
func (g *Gate) Spend(cost model.Cost) bool {
	if !CanAfford(cost, g.treasury) {
		return false
	}
	g.treasury.Gold -= cost.Gold
	g.treasury.Mana -= cost.Mana
	return true
}

// SelectSpawnPoint returns the designated spawner for k: the first worker
// spawn for workers, the first unit spawn otherwise. A full spawner is not
// substituted; the request just fails.
func (g *Gate) SelectSpawnPoint(k model.UnitKind) (*model.Tile, bool) {
	spawns := g.grid.UnitSpawns()
	if k == model.Worker {
		spawns = g.grid.WorkerSpawns()
	}
	if len(spawns) == 0 {
		return nil, false
	}
	tile := spawns[0]
	if !g.grid.HasRoom(tile, k) {
		return nil, false
	}
	return tile, true
}

// Spawn requests a unit of kind k on tile. On success the cost is deducted,
// the tile's occupancy mirrored and the unit recorded in the registry.
func (g *Gate) Spawn(k model.UnitKind, tile *model.Tile) (model.Unit, error) {
	job, err := g.Job(k)
	if err != nil {
		return model.Unit{}, err
	}
	if !CanAfford(job.Cost, g.treasury) {
		return model.Unit{}, fmt.Errorf("%v costs %d gold/%d mana, have %d/%d: %w",
			k, job.Cost.Gold, job.Cost.Mana, g.treasury.Gold, g.treasury.Mana, errUnaffordable)
	}

	var (
		u  model.Unit
		ok bool
	)
	if k == model.Worker {
		u, ok = g.actions.SpawnWorker(tile)
	} else {
		u, ok = g.actions.SpawnUnit(tile, job.Title)
	}
	if !ok {
		return model.Unit{}, fmt.Errorf("engine refused %v at (%d, %d): %w", k, tile.X, tile.Y, ErrSpawnDenied)
	}

	g.Spend(job.Cost)
	if u.TileID == nil {
		id := tile.ID
		u.TileID = &id
	}
	if u.Job == "" {
		u.Job = job.Title
	}
	if u.Moves == 0 {
		u.Moves = job.Moves
	}
	g.grid.Occupy(tile, k)
	g.registry[k] = append(g.registry[k], u.ID)
	slog.Debug("unit spawned", "kind", k, "unit", u.ID, "x", tile.X, "y", tile.Y, "gold", g.treasury.Gold, "mana", g.treasury.Mana)
	return u, nil
}

// Spawned returns the ids of every unit of kind k this gate's registry has
// recorded.
func (g *Gate) Spawned(k model.UnitKind) []int { return g.registry[k] }
