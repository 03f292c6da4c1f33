package models

// Capability names one permission flag on a Role.
type Capability int

const (
	CapCreatePlayers Capability = iota + 1
	CapReadPlayers
	CapUpdatePlayers
	CapDeletePlayers
	CapManageUsers
)

func (c Capability) String() string {
	switch c {
	case CapCreatePlayers:
		return "can_create_players"
	case CapReadPlayers:
		return "can_read_players"
	case CapUpdatePlayers:
		return "can_update_players"
	case CapDeletePlayers:
		return "can_delete_players"
	case CapManageUsers:
		return "can_manage_users"
	default:
		return "unknown"
	}
}

// Allows reports whether the role grants c. Inactive roles grant nothing.
func (r *Role) Allows(c Capability) bool {
	if r == nil || !r.IsActive {
		return false
	}
	switch c {
	case CapCreatePlayers:
		return r.CanCreatePlayers
	case CapReadPlayers:
		return r.CanReadPlayers
	case CapUpdatePlayers:
		return r.CanUpdatePlayers
	case CapDeletePlayers:
		return r.CanDeletePlayers
	case CapManageUsers:
		return r.CanManageUsers
	default:
		return false
	}
}
