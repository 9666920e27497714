package model

import "strings"

// TileType is the terrain category of a tile. It never changes during a match.
type TileType string

const (
	Grass          TileType = "grass"
	Path           TileType = "path"
	River          TileType = "river"
	GoldMine       TileType = "goldMine"
	IslandGoldMine TileType = "islandGoldMine"
	Castle         TileType = "castle"
)

// UnitKind is the closed set of producible unit kinds.
type UnitKind int

const (
	KindUnknown UnitKind = iota
	Worker
	Zombie
	Ghoul
	Hound
	Abomination
	Wraith
	Horseman
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	Worker:      "worker",
	Zombie:      "zombie",
	Ghoul:       "ghoul",
	Hound:       "hound",
	Abomination: "abomination",
	Wraith:      "wraith",
	Horseman:    "horseman",
}

func (k UnitKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// ParseUnitKind maps a catalogue title to its kind (case-insensitive).
func ParseUnitKind(title string) UnitKind {
	for k, name := range kindNames {
		if k != int(KindUnknown) && strings.EqualFold(name, title) {
			return UnitKind(k)
		}
	}
	return KindUnknown
}

// AttackerKinds lists every non-worker kind in catalogue order.
func AttackerKinds() []UnitKind {
	return []UnitKind{Zombie, Ghoul, Hound, Abomination, Wraith, Horseman}
}

// CastleTower is the tower job every player starts with; it cannot be built.
const CastleTower = "castle"
