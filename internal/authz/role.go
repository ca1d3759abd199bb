package authz

import "fmt"

// Role represents a position in the reporting hierarchy.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
	RoleMember     Role = "member"
)

// roleLevels orders roles from the bottom of the hierarchy upward.
var roleLevels = map[Role]int{
	RoleMember:     0,
	RoleSupervisor: 1,
	RoleManager:    2,
	RoleSuperAdmin: 3,
}

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the hierarchy level of the role, higher means more authority.
// Unknown roles return -1.
func (r Role) Level() int {
	level, ok := roleLevels[r]
	if !ok {
		return -1
	}
	return level
}

// IsAncestorOf reports whether r sits strictly above other in the hierarchy.
func (r Role) IsAncestorOf(other Role) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}
	return r.Level() > other.Level()
}

// LinkField names an upward hierarchy reference on a user record.
type LinkField string

const (
	LinkSupervisor LinkField = "supervisor_id"
	LinkManager    LinkField = "manager_id"
)

// RequiredLinks returns the upward references that must be set for a user
// holding the given role. Members report to both a supervisor and a manager,
// supervisors report to a manager, everyone above that reports to nobody.
func RequiredLinks(r Role) []LinkField {
	switch r {
	case RoleMember:
		return []LinkField{LinkSupervisor, LinkManager}
	case RoleSupervisor:
		return []LinkField{LinkManager}
	default:
		return nil
	}
}
