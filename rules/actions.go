package rules

import (
	"github.com/nstehr/necro/necro-core/model"
)

// Actions is the host's action surface. Every call reports whether the game
// engine accepted the action; nothing beyond that flag is assumed.
type Actions interface {
	// SpawnWorker and SpawnUnit return the created unit on success.
	SpawnWorker(tile *model.Tile) (model.Unit, bool)
	SpawnUnit(tile *model.Tile, job string) (model.Unit, bool)
	Move(u model.Unit, tile *model.Tile) bool
	Mine(u model.Unit, tile *model.Tile) bool
	Fish(u model.Unit, tile *model.Tile) bool
	Build(u model.Unit, towerJob string) bool
	Attack(u model.Unit, tile *model.Tile) bool
}

// TowerCombat runs the tower phase, which the host resolves on its side.
type TowerCombat interface {
	TowerCombat(turn int) error
}
