package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nstehr/necro/necro-core/model"
)

// HostActions issues the decision core's actions as synchronous commands on a
// connection. Transport failures are logged and reported as rejections.
type HostActions struct {
	conn *Connection
}

func NewHostActions(conn *Connection) *HostActions {
	return &HostActions{conn: conn}
}

func (h *HostActions) call(msgType string, cmd any) ActionResult {
	res, err := h.conn.Call(msgType, cmd)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrInterrupted) {
			level = slog.LevelDebug
		}
		slog.Log(context.Background(), level, "command failed", "type", msgType, "player", h.conn.Player, "error", err)
		return ActionResult{}
	}
	return res
}

func (h *HostActions) spawn(msgType string, cmd any) (model.Unit, bool) {
	res := h.call(msgType, cmd)
	if !res.OK {
		return model.Unit{}, false
	}
	if res.Unit == nil {
		slog.Warn("spawn accepted without a unit", "type", msgType)
		return model.Unit{}, false
	}
	return *res.Unit, true
}

func (h *HostActions) SpawnWorker(tile *model.Tile) (model.Unit, bool) {
	return h.spawn(TypeSpawnWorker, SpawnWorkerCommand{TileID: tile.ID})
}

func (h *HostActions) SpawnUnit(tile *model.Tile, job string) (model.Unit, bool) {
	return h.spawn(TypeSpawnUnit, SpawnUnitCommand{TileID: tile.ID, Job: job})
}

func (h *HostActions) Move(u model.Unit, tile *model.Tile) bool {
	return h.call(TypeMove, MoveCommand{UnitID: u.ID, TileID: tile.ID}).OK
}

func (h *HostActions) Mine(u model.Unit, tile *model.Tile) bool {
	return h.call(TypeMine, MineCommand{UnitID: u.ID, TileID: tile.ID}).OK
}

func (h *HostActions) Fish(u model.Unit, tile *model.Tile) bool {
	return h.call(TypeFish, FishCommand{UnitID: u.ID, TileID: tile.ID}).OK
}

func (h *HostActions) Build(u model.Unit, towerJob string) bool {
	return h.call(TypeBuild, BuildCommand{UnitID: u.ID, Tower: towerJob}).OK
}

func (h *HostActions) Attack(u model.Unit, tile *model.Tile) bool {
	return h.call(TypeAttack, AttackCommand{UnitID: u.ID, TileID: tile.ID}).OK
}

// TowerCombat asks the host to resolve tower fire for the turn.
func (h *HostActions) TowerCombat(turn int) error {
	res, err := h.conn.Call(TypeTowerCombat, TowerCombatCommand{Turn: turn})
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("tower combat for turn %d refused", turn)
	}
	return nil
}
