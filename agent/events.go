package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nstehr/necro/necro-core/model"
)

// EventKind identifies the category of a match event worth surfacing in the
// logs and the outcome record.
type EventKind string

const (
	EventUnitsLost          EventKind = "units_lost"
	EventTowerLost          EventKind = "tower_lost"
	EventCastleDamaged      EventKind = "castle_damaged"
	EventEnemyCastleDamaged EventKind = "enemy_castle_damaged"
	EventEconomyStalled     EventKind = "economy_stalled"
	EventFirstContact       EventKind = "first_contact"
)

// Event is a significant change detected by diffing consecutive snapshots.
type Event struct {
	Kind   EventKind
	Turn   int
	Detail string
}

// stateSnapshot captures the diffable fields of one turn's snapshot.
type stateSnapshot struct {
	turn              int
	units             map[int]string // live unit id → job
	towers            map[int]string // our non-castle tower id → job
	castleHealth      int
	enemyCastleHealth int
	enemyAdjacent     bool // an enemy unit stands next to one of ours
}

func takeSnapshot(gs model.GameState) stateSnapshot {
	s := stateSnapshot{
		turn:   gs.Turn,
		units:  make(map[int]string),
		towers: make(map[int]string),
	}
	for _, u := range gs.Player.Units {
		if u.Alive() {
			s.units[u.ID] = u.Job
		}
	}
	for _, t := range gs.Tiles {
		if t.Tower == nil {
			continue
		}
		switch {
		case t.Tower.Owner == gs.Player.ID && t.Tower.Job == model.CastleTower:
			s.castleHealth = t.Tower.Health
		case t.Tower.Owner == gs.Opponent.ID && t.Tower.Job == model.CastleTower:
			s.enemyCastleHealth = t.Tower.Health
		case t.Tower.Owner == gs.Player.ID:
			s.towers[t.Tower.ID] = t.Tower.Job
		}
	}
	s.enemyAdjacent = enemyAdjacent(gs)
	return s
}

// enemyAdjacent reports whether any opponent stack borders one of ours.
func enemyAdjacent(gs model.GameState) bool {
	w, h := gs.MapWidth, gs.MapHeight
	if w*h != len(gs.Tiles) {
		return false
	}
	owner := func(x, y int) string {
		if x < 0 || y < 0 || x >= w || y >= h {
			return ""
		}
		if o := gs.Tiles[y*w+x].Occupant; o != nil && o.Count > 0 {
			return o.Owner
		}
		return ""
	}
	for _, t := range gs.Tiles {
		if owner(t.X, t.Y) != gs.Player.ID {
			continue
		}
		for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			if owner(t.X+d[0], t.Y+d[1]) == gs.Opponent.ID {
				return true
			}
		}
	}
	return false
}

// detectEvents compares the current snapshot with the previous one. A nil
// prev only yields events that need no history.
func detectEvents(gs model.GameState, cur, prev *stateSnapshot) []Event {
	var events []Event
	add := func(kind EventKind, format string, args ...any) {
		events = append(events, Event{Kind: kind, Turn: gs.Turn, Detail: fmt.Sprintf(format, args...)})
	}

	if workerCost, ok := jobCost(gs, model.Worker); ok && countJob(cur.units, "worker") == 0 && gs.Player.Gold < workerCost.Gold {
		add(EventEconomyStalled, "no workers and %d gold (worker costs %d)", gs.Player.Gold, workerCost.Gold)
	}

	if prev == nil {
		return events
	}

	lost := map[string]int{}
	for id, job := range prev.units {
		if _, ok := cur.units[id]; !ok {
			lost[job]++
		}
	}
	if len(lost) > 0 {
		add(EventUnitsLost, "lost %s", formatCounts(lost))
	}

	for id, job := range prev.towers {
		if _, ok := cur.towers[id]; !ok {
			add(EventTowerLost, "%s tower %d destroyed", job, id)
		}
	}
	if cur.castleHealth < prev.castleHealth {
		add(EventCastleDamaged, "castle %d → %d", prev.castleHealth, cur.castleHealth)
	}
	if cur.enemyCastleHealth < prev.enemyCastleHealth {
		add(EventEnemyCastleDamaged, "enemy castle %d → %d", prev.enemyCastleHealth, cur.enemyCastleHealth)
	}
	if cur.enemyAdjacent && !prev.enemyAdjacent {
		add(EventFirstContact, "enemy units adjacent to ours")
	}
	return events
}

func jobCost(gs model.GameState, k model.UnitKind) (model.Cost, bool) {
	for _, j := range gs.Jobs {
		if j.Kind() == k {
			return j.Cost, true
		}
	}
	return model.Cost{}, false
}

func countJob(units map[int]string, job string) int {
	n := 0
	for _, j := range units {
		if strings.EqualFold(j, job) {
			n++
		}
	}
	return n
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d %s", counts[k], k)
	}
	return strings.Join(parts, ", ")
}

func formatEvents(events []Event) string {
	var b strings.Builder
	for i, e := range events {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "[%s] %s", e.Kind, e.Detail)
	}
	return b.String()
}
