// Package gridtest builds snapshots from ASCII maps for tests.
//
// Legend:
//
//	.  grass            #  path
//	~  river            g  gold mine
//	i  island gold mine W  our worker spawn (grass)
//	U  our unit spawn (path)
//	C  our castle       E  enemy castle
package gridtest

import (
	"github.com/nstehr/necro/necro-core/model"
)

const (
	Player   = "p1"
	Opponent = "p2"
)

// Jobs is a small catalogue shaped like the real one.
func Jobs() []model.Job {
	return []model.Job{
		{Title: "worker", Cost: model.Cost{Gold: 10}, PerTile: 1, Moves: 1},
		{Title: "zombie", Cost: model.Cost{Gold: 5}, PerTile: 10, Moves: 1},
		{Title: "ghoul", Cost: model.Cost{Gold: 15, Mana: 10}, PerTile: 1, Moves: 2},
		{Title: "hound", Cost: model.Cost{Gold: 15, Mana: 5}, PerTile: 2, Moves: 3},
		{Title: "abomination", Cost: model.Cost{Gold: 40, Mana: 20}, PerTile: 1, Moves: 1},
		{Title: "wraith", Cost: model.Cost{Gold: 40, Mana: 30}, PerTile: 1, Moves: 2},
		{Title: "horseman", Cost: model.Cost{Gold: 60, Mana: 40}, PerTile: 1, Moves: 3},
	}
}

func TowerJobs() []model.TowerJob {
	return []model.TowerJob{
		{Title: "castle", Cost: model.Cost{}},
		{Title: "arrow", Cost: model.Cost{Gold: 20}},
		{Title: "aoe", Cost: model.Cost{Gold: 30, Mana: 10}},
	}
}

// Parse turns equal-length rows into a snapshot for Player vs Opponent with a
// 100 gold / 100 mana treasury.
func Parse(rows ...string) model.GameState {
	gs := model.GameState{
		Session:   "test",
		Turn:      1,
		MapHeight: len(rows),
		Player:    model.Player{ID: Player, Name: "Player", Gold: 100, Mana: 100},
		Opponent:  model.Player{ID: Opponent, Name: "Opponent"},
		Jobs:      Jobs(),
		TowerJobs: TowerJobs(),
	}
	if len(rows) > 0 {
		gs.MapWidth = len(rows[0])
	}
	for y, row := range rows {
		for x, c := range row {
			t := model.Tile{ID: y*gs.MapWidth + x, X: x, Y: y, Type: model.Grass}
			switch c {
			case '#':
				t.Type = model.Path
			case '~':
				t.Type = model.River
			case 'g':
				t.Type = model.GoldMine
			case 'i':
				t.Type = model.IslandGoldMine
			case 'W':
				t.IsWorkerSpawn = true
				t.Owner = Player
			case 'U':
				t.Type = model.Path
				t.IsUnitSpawn = true
				t.Owner = Player
			case 'C':
				t.Type = model.Castle
				t.Owner = Player
				t.Tower = &model.Tower{ID: 1000 + t.ID, Job: model.CastleTower, Owner: Player, Health: 100}
			case 'E':
				t.Type = model.Castle
				t.Owner = Opponent
				t.Tower = &model.Tower{ID: 1000 + t.ID, Job: model.CastleTower, Owner: Opponent, Health: 100}
			}
			gs.Tiles = append(gs.Tiles, t)
		}
	}
	return gs
}

// AddUnit places a unit at (x, y), stacks it onto the tile occupant and, when
// owned by Player, appends it to the player roster.
func AddUnit(gs *model.GameState, id int, owner, job string, x, y int) model.Unit {
	idx := y*gs.MapWidth + x
	tile := &gs.Tiles[idx]
	tileID := tile.ID
	moves := 1
	for _, j := range gs.Jobs {
		if j.Title == job {
			moves = j.Moves
		}
	}
	u := model.Unit{ID: id, Owner: owner, Job: job, Moves: moves, TileID: &tileID}
	if tile.Occupant == nil {
		tile.Occupant = &model.Occupant{Job: job, Owner: owner}
	}
	tile.Occupant.Count++
	if owner == Player {
		gs.Player.Units = append(gs.Player.Units, u)
	} else {
		gs.Opponent.Units = append(gs.Opponent.Units, u)
	}
	return u
}

// AddTower places a tower at (x, y).
func AddTower(gs *model.GameState, id int, owner, job string, x, y int) {
	gs.Tiles[y*gs.MapWidth+x].Tower = &model.Tower{ID: id, Job: job, Owner: owner, Health: 10}
}
