// Package pathfind routes units across the grid with A*, honouring each
// kind's terrain and stacking rules.
package pathfind

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/nstehr/necro/necro-core/grid"
	"github.com/nstehr/necro/necro-core/model"
)

var ErrPathNotFound = errors.New("path not found")

// Heuristic estimates the remaining cost between two tiles. It must not
// overestimate.
type Heuristic func(a, b *model.Tile) int

type Pathfinder struct {
	Grid      *grid.Grid
	Heuristic Heuristic
}

// New returns a pathfinder using Manhattan distance, which is exact-or-under
// on a 4-connected grid with unit step cost.
func New(g *grid.Grid) *Pathfinder {
	return &Pathfinder{Grid: g, Heuristic: grid.Distance}
}

// FindPath returns the tiles to walk from `from` to `to`, excluding the start
// tile. The goal tile is always enterable even if kind k could not otherwise
// stand there.
//
// When an expanded tile has no usable neighbour (every one is untraversable
// or already expanded) the search stops and returns the path to that tile, so
// a unit blocked short of its objective still gets as close as it can. An
// exhausted frontier returns ErrPathNotFound.
func (p *Pathfinder) FindPath(from, to Endpoint, k model.UnitKind) ([]*model.Tile, error) {
	start, ok := from.Resolve(p.Grid)
	if !ok {
		return nil, fmt.Errorf("unresolvable start: %w", ErrPathNotFound)
	}
	goal, ok := to.Resolve(p.Grid)
	if !ok {
		return nil, fmt.Errorf("unresolvable goal: %w", ErrPathNotFound)
	}
	if start == goal {
		return nil, nil
	}

	open := &nodeHeap{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &node{tile: start, g: 0, f: p.Heuristic(start, goal), seq: seq})

	came := make(map[int]*model.Tile)
	gScore := map[int]int{start.ID: 0}
	closed := make(map[int]bool)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if closed[cur.tile.ID] {
			continue // stale entry
		}
		if cur.tile == goal {
			return reconstructPath(came, start, goal), nil
		}
		closed[cur.tile.ID] = true

		neighbors := p.Grid.Neighbors(cur.tile)
		rejected := 0
		for _, n := range neighbors {
			if closed[n.ID] || (n != goal && !Traversable(p.Grid, n, k)) {
				rejected++
				continue
			}
			tentG := cur.g + 1
			if old, ok := gScore[n.ID]; ok && tentG >= old {
				continue
			}
			gScore[n.ID] = tentG
			came[n.ID] = cur.tile
			seq++
			heap.Push(open, &node{tile: n, g: tentG, f: tentG + p.Heuristic(n, goal), seq: seq})
		}
		if rejected == len(neighbors) {
			return reconstructPath(came, start, cur.tile), nil
		}
	}
	return nil, fmt.Errorf("%v to (%d, %d) from (%d, %d): %w", k, goal.X, goal.Y, start.X, start.Y, ErrPathNotFound)
}

// reconstructPath walks came-from links back from end and returns the tiles
// in start→end order, start excluded.
func reconstructPath(came map[int]*model.Tile, start, end *model.Tile) []*model.Tile {
	var path []*model.Tile
	for cur := end; cur != start; {
		path = append(path, cur)
		prev, ok := came[cur.ID]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// --- Priority queue ---

// Ties on f pop in insertion order, which keeps results deterministic.
type node struct {
	tile *model.Tile
	g, f int
	seq  int
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
