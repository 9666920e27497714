package pathfind

import (
	"github.com/nstehr/necro/necro-core/grid"
	"github.com/nstehr/necro/necro-core/model"
)

// Traversable reports whether a unit of kind k may step onto t: the terrain
// must suit the kind and the tile must have room for it.
func Traversable(g *grid.Grid, t *model.Tile, k model.UnitKind) bool {
	return terrainAllows(t.Type, k) && g.HasRoom(t, k)
}

func terrainAllows(tt model.TileType, k model.UnitKind) bool {
	switch k {
	case model.Worker:
		return workerTerrain(tt)
	case model.Zombie, model.Ghoul, model.Hound, model.Abomination, model.Wraith, model.Horseman:
		return attackerTerrain(tt)
	default:
		return false
	}
}

// Workers stay off the paths: grass and mines only.
func workerTerrain(tt model.TileType) bool {
	return tt == model.Grass || tt == model.GoldMine || tt == model.IslandGoldMine
}

func attackerTerrain(tt model.TileType) bool {
	return tt == model.Path
}
