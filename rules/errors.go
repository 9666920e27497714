package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrSpawnDenied covers unaffordable requests, busy spawners and spawns
	// the engine refused. Nothing is recorded when it is returned.
	ErrSpawnDenied = errors.New("spawn denied")

	// ErrActionRejected is logged when the engine refuses a move, mine, fish,
	// build or attack. The unit simply tries again next turn.
	ErrActionRejected = errors.New("action rejected")

	// ErrConfigurationMissing means the host's job catalogue lacks an entry
	// the core cannot work without. It aborts the turn.
	ErrConfigurationMissing = errors.New("configuration missing")

	// errUnaffordable marks the denial a spawn loop expects once the
	// treasury runs dry.
	errUnaffordable = fmt.Errorf("unaffordable: %w", ErrSpawnDenied)
)
