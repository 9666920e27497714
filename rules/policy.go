package rules

import (
	"strings"

	"github.com/nstehr/necro/necro-core/model"
)

// Policy is the static strategic posture for a match: how many workers each
// role keeps, how attackers are chosen and any extra spawn gates.
type Policy struct {
	Miners    int `mapstructure:"miners" json:"miners"`
	Fishers   int `mapstructure:"fishers" json:"fishers"`
	Builders  int `mapstructure:"builders" json:"builders"`
	Attackers int `mapstructure:"attackers" json:"attackers"` // 0 = no cap

	// AttackerWeights maps attacker job titles to relative spawn weights.
	// Empty means uniform over the catalogue.
	AttackerWeights map[string]float64 `mapstructure:"attackerWeights" json:"attackerWeights,omitempty"`
	// Explore replaces AttackerWeights with a random vector sampled once per match.
	Explore bool `mapstructure:"explore" json:"explore"`

	// Conditions holds optional expr gates per role ("miner", "fisher",
	// "builder", "attacker"), ANDed with the generated population cap.
	Conditions map[string]string `mapstructure:"conditions" json:"conditions,omitempty"`
}

// DefaultPolicy keeps a small economy and spends the rest on attackers.
func DefaultPolicy() Policy {
	return Policy{
		Miners:   4,
		Fishers:  2,
		Builders: 2,
	}
}

// Validate clamps caps and weights to sane ranges, keys weights by canonical
// job title and drops weights for unknown or non-attacker kinds.
func (p *Policy) Validate() {
	p.Miners = clampInt(p.Miners, 0, maxPopulation)
	p.Fishers = clampInt(p.Fishers, 0, maxPopulation)
	p.Builders = clampInt(p.Builders, 0, maxPopulation)
	p.Attackers = clampInt(p.Attackers, 0, maxPopulation)

	if len(p.AttackerWeights) > 0 {
		weights := make(map[string]float64, len(p.AttackerWeights))
		for title, w := range p.AttackerWeights {
			k := model.ParseUnitKind(title)
			if k == model.KindUnknown || k == model.Worker {
				continue
			}
			weights[k.String()] = clamp(w, 0, 1000)
		}
		p.AttackerWeights = weights
	}
	for role, cond := range p.Conditions {
		if strings.TrimSpace(cond) == "" {
			delete(p.Conditions, role)
		}
	}
}

// Cap returns the population cap for role.
func (p Policy) Cap(r Role) int {
	switch r {
	case RoleMiner:
		return p.Miners
	case RoleFisher:
		return p.Fishers
	case RoleBuilder:
		return p.Builders
	}
	return 0
}

const maxPopulation = 200

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
