package rules

import "fmt"

// CompilePolicy generates one spawn rule per role from the policy's caps.
// User conditions are wrapped in parentheses and ANDed on, so they can only
// narrow the generated gate.
func CompilePolicy(p Policy) []*SpawnRule {
	p.Validate()
	var rules []*SpawnRule

	for _, r := range workerRoles {
		rules = append(rules, &SpawnRule{
			Name:         "spawn-" + r.String(),
			Role:         r.String(),
			ConditionSrc: withCondition(fmt.Sprintf(`RoleCount(%q) < %d`, r.String(), p.Cap(r)), p.Conditions[r.String()]),
		})
	}

	attackerCond := "true"
	if p.Attackers > 0 {
		attackerCond = fmt.Sprintf(`RoleCount(%q) < %d`, attackerRole, p.Attackers)
	}
	rules = append(rules, &SpawnRule{
		Name:         "spawn-" + attackerRole,
		Role:         attackerRole,
		ConditionSrc: withCondition(attackerCond, p.Conditions[attackerRole]),
	})
	return rules
}

func withCondition(base, extra string) string {
	if extra == "" {
		return base
	}
	return fmt.Sprintf("%s && (%s)", base, extra)
}
