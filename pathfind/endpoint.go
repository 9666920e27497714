package pathfind

import (
	"github.com/nstehr/necro/necro-core/grid"
	"github.com/nstehr/necro/necro-core/model"
)

// Endpoint is either end of a path request. Only UnitEndpoint and
// TileEndpoint implement it.
type Endpoint interface {
	Resolve(g *grid.Grid) (*model.Tile, bool)
	endpoint()
}

// UnitEndpoint resolves to the tile the unit stands on; dead units don't resolve.
type UnitEndpoint struct{ Unit model.Unit }

func (e UnitEndpoint) Resolve(g *grid.Grid) (*model.Tile, bool) { return g.UnitTile(e.Unit) }
func (UnitEndpoint) endpoint()                                   {}

type TileEndpoint struct{ Tile *model.Tile }

func (e TileEndpoint) Resolve(*grid.Grid) (*model.Tile, bool) { return e.Tile, e.Tile != nil }
func (TileEndpoint) endpoint()                                 {}
