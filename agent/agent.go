package agent

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nstehr/necro/necro-core/ipc"
	"github.com/nstehr/necro/necro-core/model"
	"github.com/nstehr/necro/necro-core/rules"
)

// Options configure every agent the sidecar creates.
type Options struct {
	Policy  rules.Policy
	Seed    int64            // 0 = pick one from the clock
	Outcome *OutcomeRecorder // nil disables the outcome record
	// Actions overrides the host action surface; nil issues commands on the
	// agent's connection.
	Actions rules.Actions
}

// Agent owns the decision-making for a single player session.
type Agent struct {
	Conn     *ipc.Connection
	Player   string
	Opponent string
	Session  string
	Engine   *rules.Engine

	opts   Options
	seed   int64
	prev   *stateSnapshot
	events map[EventKind]int
	turn   int
}

var _ rules.Actions = (*ipc.HostActions)(nil)
var _ rules.TowerCombat = (*ipc.HostActions)(nil)

func New(conn *ipc.Connection, opts Options) *Agent {
	return &Agent{Conn: conn, opts: opts, events: make(map[EventKind]int)}
}

// Register installs the agent's handlers on its connection.
func (a *Agent) Register() {
	a.Conn.RegisterHandler(ipc.TypeHello, a.HandleHello)
	a.Conn.RegisterHandler(ipc.TypeGameState, a.HandleGameState)
	a.Conn.RegisterHandler(ipc.TypeGameOver, a.HandleGameOver)
}

// HandleHello completes the handshake and starts a fresh match.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}

	a.Player = hello.Player
	a.Opponent = hello.Opponent
	a.Session = hello.Session
	if a.Session == "" {
		a.Session = uuid.NewString()
	}
	if a.Conn != nil {
		a.Conn.Player = a.Player
	}
	if err := a.startMatch(); err != nil {
		return nil, err
	}
	slog.Info("player identified", "player", a.Player, "name", hello.Name, "opponent", a.Opponent, "session", a.Session, "seed", a.seed)

	return ack("ok", 0)
}

func (a *Agent) startMatch() error {
	a.seed = a.opts.Seed
	if a.seed == 0 {
		a.seed = time.Now().UnixNano()
	}
	actions := a.opts.Actions
	if actions == nil {
		actions = ipc.NewHostActions(a.Conn)
	}
	engine, err := rules.NewEngine(a.opts.Policy, actions, rules.NewRandom(a.seed))
	if err != nil {
		return fmt.Errorf("start match: %w", err)
	}
	if tc, ok := actions.(rules.TowerCombat); ok {
		engine.SetTowerCombat(tc)
	}
	a.Engine = engine
	a.prev = nil
	a.events = make(map[EventKind]int)
	a.turn = 0
	return nil
}

func (a *Agent) HandleGameState(env ipc.Envelope) (*ipc.Envelope, error) {
	var gs model.GameState
	if err := env.Decode(&gs); err != nil {
		return nil, err
	}

	// Hosts that skip the handshake still get a match.
	if a.Engine == nil {
		a.Player = gs.Player.ID
		a.Opponent = gs.Opponent.ID
		a.Session = gs.Session
		if a.Session == "" {
			a.Session = uuid.NewString()
		}
		if err := a.startMatch(); err != nil {
			return nil, err
		}
	}
	a.turn = gs.Turn

	unitTypes := make(map[string]int)
	for _, u := range gs.Player.Units {
		if u.Alive() {
			unitTypes[u.Job]++
		}
	}
	slog.Info("game state received",
		"player", gs.Player.Name,
		"turn", gs.Turn,
		"gold", gs.Player.Gold,
		"mana", gs.Player.Mana,
		"units", unitTypes,
	)

	snap := takeSnapshot(gs)
	if events := detectEvents(gs, &snap, a.prev); len(events) > 0 {
		for _, e := range events {
			a.events[e.Kind]++
		}
		slog.Info("match events", "turn", gs.Turn, "events", formatEvents(events))
	}
	a.prev = &snap

	if err := a.Engine.Turn(gs); err != nil {
		slog.Error("turn failed", "turn", gs.Turn, "error", err)
		return ack("error", gs.Turn)
	}
	return ack("ok", gs.Turn)
}

// HandleGameOver classifies the match from the last castle sample and appends
// the outcome record.
func (a *Agent) HandleGameOver(env ipc.Envelope) (*ipc.Envelope, error) {
	var over ipc.GameOverMessage
	if err := env.Decode(&over); err != nil {
		return nil, err
	}

	var sample rules.Sample
	var weights map[string]float64
	if a.Engine != nil {
		sample = a.Engine.LastSample()
		weights = a.Engine.AttackerWeights()
	}
	result := rules.Classify(sample)
	finalTurn := over.Turn
	if finalTurn == 0 {
		finalTurn = max(a.turn, sample.Turn)
	}
	slog.Info("game over",
		"session", a.Session,
		"turn", finalTurn,
		"result", result,
		"hostWon", over.Won,
		"enemyCastleHealth", sample.EnemyCastleHealth,
		"winReason", over.WinReason,
		"loseReason", over.LoseReason,
	)
	if (result == "win") != over.Won {
		slog.Warn("outcome disagrees with host", "result", result, "hostWon", over.Won)
	}

	if a.opts.Outcome != nil {
		err := a.opts.Outcome.Record(Outcome{
			Time:              time.Now().UTC(),
			Session:           a.Session,
			Player:            a.Player,
			Opponent:          a.Opponent,
			FinalTurn:         finalTurn,
			EnemyCastleHealth: sample.EnemyCastleHealth,
			Result:            result,
			HostWon:           over.Won,
			WinReason:         over.WinReason,
			LoseReason:        over.LoseReason,
			Config: OutcomeConfig{
				Policy:          a.opts.Policy,
				Seed:            a.seed,
				AttackerWeights: weights,
			},
			Events: a.events,
		})
		if err != nil {
			slog.Warn("failed to record outcome", "session", a.Session, "error", err)
		}
	}

	return ack("ok", finalTurn)
}

func ack(status string, turn int) (*ipc.Envelope, error) {
	env, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: status, Turn: turn})
	if err != nil {
		return nil, err
	}
	return &env, nil
}
