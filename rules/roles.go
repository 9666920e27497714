package rules

import "strings"

// Role is a worker job the core manages a roster for. Attackers have no
// roster: every non-worker unit we own is an attacker.
type Role int

const (
	RoleMiner Role = iota
	RoleFisher
	RoleBuilder
)

// workerRoles is the order roles spawn, act and adopt unclaimed workers in.
var workerRoles = []Role{RoleMiner, RoleFisher, RoleBuilder}

var roleNames = map[Role]string{
	RoleMiner:   "miner",
	RoleFisher:  "fisher",
	RoleBuilder: "builder",
}

func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return "unknown"
}

// ParseRole maps a role name (case-insensitive) to its Role.
func ParseRole(s string) (Role, bool) {
	for r, n := range roleNames {
		if strings.EqualFold(n, s) {
			return r, true
		}
	}
	return 0, false
}

// attackerRole is the pseudo-role name used by spawn rules and RoleCount.
const attackerRole = "attacker"
