package agent

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"

	"github.com/nstehr/necro/necro-core/rules"
)

// Outcome is one line of the match log.
type Outcome struct {
	Time              time.Time         `json:"time"`
	Session           string            `json:"session"`
	Player            string            `json:"player"`
	Opponent          string            `json:"opponent,omitempty"`
	FinalTurn         int               `json:"finalTurn"`
	EnemyCastleHealth int               `json:"enemyCastleHealth"`
	Result            string            `json:"result"` // from the last castle sample
	HostWon           bool              `json:"hostWon"`
	WinReason         string            `json:"winReason,omitempty"`
	LoseReason        string            `json:"loseReason,omitempty"`
	Config            OutcomeConfig     `json:"config"`
	Events            map[EventKind]int `json:"events,omitempty"`
}

// OutcomeConfig records what the match was played with.
type OutcomeConfig struct {
	Policy          rules.Policy       `json:"policy"`
	Seed            int64              `json:"seed"`
	AttackerWeights map[string]float64 `json:"attackerWeights,omitempty"`
}

// OutcomeRecorder appends outcomes as JSON lines. It is shared by every
// connection, so writes are serialised.
type OutcomeRecorder struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// NewOutcomeRecorder opens a size-rotated log at path. Sizes are in megabytes.
func NewOutcomeRecorder(path string, maxSize int) *OutcomeRecorder {
	return &OutcomeRecorder{w: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    max(1, maxSize),
		MaxBackups: 5,
	}}
}

func (r *OutcomeRecorder) Record(o Outcome) error {
	line, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.w.Write(line); err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}
	return nil
}

func (r *OutcomeRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w.Close()
}
