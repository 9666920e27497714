package ipc

// Command type constants; must stay in sync with the host's action dispatcher.
const (
	TypeSpawnWorker = "spawn_worker"
	TypeSpawnUnit   = "spawn_unit"
	TypeMove        = "move"
	TypeMine        = "mine"
	TypeFish        = "fish"
	TypeBuild       = "build"
	TypeAttack      = "attack"
	TypeTowerCombat = "tower_combat"
)

type SpawnWorkerCommand struct {
	TileID int `json:"tile_id"`
}

type SpawnUnitCommand struct {
	TileID int    `json:"tile_id"`
	Job    string `json:"job"`
}

type MoveCommand struct {
	UnitID int `json:"unit_id"`
	TileID int `json:"tile_id"`
}

type MineCommand struct {
	UnitID int `json:"unit_id"`
	TileID int `json:"tile_id"`
}

// FishCommand targets the river tile, not the tile the fisher stands on.
type FishCommand struct {
	UnitID int `json:"unit_id"`
	TileID int `json:"tile_id"`
}

type BuildCommand struct {
	UnitID int    `json:"unit_id"`
	Tower  string `json:"tower"`
}

type AttackCommand struct {
	UnitID int `json:"unit_id"`
	TileID int `json:"tile_id"`
}

type TowerCombatCommand struct {
	Turn int `json:"turn"`
}
