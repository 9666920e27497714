package model

// GameState is the per-turn snapshot the host sends before asking for a decision pass.
type GameState struct {
	Session   string     `json:"session"`
	Turn      int        `json:"turn"`
	MapWidth  int        `json:"mapWidth"`
	MapHeight int        `json:"mapHeight"`
	Tiles     []Tile     `json:"tiles"` // row-major: Tiles[y*MapWidth + x]
	Player    Player     `json:"player"`
	Opponent  Player     `json:"opponent"`
	Jobs      []Job      `json:"jobs"`
	TowerJobs []TowerJob `json:"towerJobs"`
}

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Gold  int    `json:"gold"`
	Mana  int    `json:"mana"`
	Units []Unit `json:"units"`
}

// Treasury is the spendable balance used by affordability checks.
func (p Player) Treasury() Treasury {
	return Treasury{Gold: p.Gold, Mana: p.Mana}
}

type Treasury struct {
	Gold int
	Mana int
}

type Cost struct {
	Gold int `json:"gold"`
	Mana int `json:"mana"`
}

type Unit struct {
	ID     int    `json:"id"`
	Owner  string `json:"owner"`
	Job    string `json:"job"`
	Moves  int    `json:"moves"`
	Acted  bool   `json:"acted"`
	TileID *int   `json:"tileId"` // nil once combat has removed the unit
}

func (u Unit) Kind() UnitKind { return ParseUnitKind(u.Job) }

// Alive reports whether the unit still stands on a tile.
func (u Unit) Alive() bool { return u.TileID != nil }

type Tile struct {
	ID            int       `json:"id"`
	X             int       `json:"x"`
	Y             int       `json:"y"`
	Type          TileType  `json:"type"`
	Owner         string    `json:"owner"`
	IsWorkerSpawn bool      `json:"isWorkerSpawn"`
	IsUnitSpawn   bool      `json:"isUnitSpawn"`
	Occupant      *Occupant `json:"occupant,omitempty"`
	Tower         *Tower    `json:"tower,omitempty"`
}

// Occupant describes the stack of units on a tile. A tile only ever holds one
// player's units of a single kind.
type Occupant struct {
	Job   string `json:"job"`
	Owner string `json:"owner"`
	Count int    `json:"count"`
}

func (o Occupant) Kind() UnitKind { return ParseUnitKind(o.Job) }

type Tower struct {
	ID     int    `json:"id"`
	Job    string `json:"job"`
	Owner  string `json:"owner"`
	Health int    `json:"health"`
}

// Job is a producible unit kind from the host's catalogue.
type Job struct {
	Title   string `json:"title"`
	Cost    Cost   `json:"cost"`
	PerTile int    `json:"perTile"`
	Moves   int    `json:"moves"`
}

func (j Job) Kind() UnitKind { return ParseUnitKind(j.Title) }

type TowerJob struct {
	Title string `json:"title"`
	Cost  Cost   `json:"cost"`
}
