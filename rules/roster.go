package rules

// Rosters gives worker units a persistent job across turns. A unit belongs to
// at most one roster; a live worker may belong to none until it is adopted.
type Rosters struct {
	members map[Role][]int
	owner   map[int]Role
}

func NewRosters() *Rosters {
	return &Rosters{
		members: make(map[Role][]int),
		owner:   make(map[int]Role),
	}
}

// Assign claims unit id for role. It returns false when the unit already has
// a role.
func (r *Rosters) Assign(id int, role Role) bool {
	if _, taken := r.owner[id]; taken {
		return false
	}
	r.owner[id] = role
	r.members[role] = append(r.members[role], id)
	return true
}

// Role returns the role unit id is claimed by.
func (r *Rosters) Role(id int) (Role, bool) {
	role, ok := r.owner[id]
	return role, ok
}

// Members returns a copy of role's roster in assignment order.
func (r *Rosters) Members(role Role) []int {
	return append([]int(nil), r.members[role]...)
}

func (r *Rosters) Count(role Role) int { return len(r.members[role]) }

// Prune drops every unit alive reports dead and returns the removed ids.
func (r *Rosters) Prune(alive func(id int) bool) []int {
	var removed []int
	for role, ids := range r.members {
		kept := ids[:0]
		for _, id := range ids {
			if alive(id) {
				kept = append(kept, id)
				continue
			}
			delete(r.owner, id)
			removed = append(removed, id)
		}
		r.members[role] = kept
	}
	return removed
}
