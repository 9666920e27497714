package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// SpawnRule gates one role's spawn loop: while the condition holds (and the
// spawner is free and the treasury allows) the engine keeps spawning.
type SpawnRule struct {
	Name         string      // human-readable identifier
	Role         string      // miner, fisher, builder or attacker
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode
}

// Allow evaluates the rule's condition against env.
func (r *SpawnRule) Allow(env SpawnEnv) (bool, error) {
	if r.program == nil {
		return false, fmt.Errorf("rule %q not compiled", r.Name)
	}
	out, err := vm.Run(r.program, env)
	if err != nil {
		return false, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

func compileRules(rules []*SpawnRule) (map[string]*SpawnRule, error) {
	byRole := make(map[string]*SpawnRule, len(rules))
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(SpawnEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
		byRole[r.Role] = r
	}
	return byRole, nil
}
