package authz

// UserRef is a resolved hierarchy link: the referenced user's identity, role
// and whether the account is active.
type UserRef struct {
	ID     uint64
	Role   Role
	Active bool
}

// AssignmentError describes why a proposed role/hierarchy assignment is
// invalid. The message is safe to surface to API callers.
type AssignmentError struct {
	Message string
}

func (e *AssignmentError) Error() string {
	return e.Message
}

func invalidAssignment(message string) error {
	return &AssignmentError{Message: message}
}

// ValidateAssignment checks that a proposed role carries the mandatory
// upward links for that role. It is the single source of truth for hierarchy
// well-formedness and is invoked both when approving a pending registrant and
// when creating a user directly. userID is the subject's id, zero when the
// user does not exist yet.
func ValidateAssignment(userID uint64, role Role, supervisor, manager *UserRef) error {
	if !role.Valid() {
		return invalidAssignment("Invalid role assignment")
	}

	if supervisor != nil && userID != 0 && supervisor.ID == userID {
		return invalidAssignment("A user cannot be their own supervisor")
	}
	if manager != nil && userID != 0 && manager.ID == userID {
		return invalidAssignment("A user cannot be their own manager")
	}

	switch role {
	case RoleMember:
		if supervisor == nil || manager == nil {
			return invalidAssignment("Team members must have both a supervisor and manager assigned")
		}
		if supervisor.Role != RoleSupervisor || !supervisor.Active {
			return invalidAssignment("Assigned supervisor must be an active user with the supervisor role")
		}
		if manager.Role != RoleManager || !manager.Active {
			return invalidAssignment("Assigned manager must be an active user with the manager role")
		}
	case RoleSupervisor:
		if manager == nil {
			return invalidAssignment("Supervisors must have a manager assigned")
		}
		if manager.Role != RoleManager || !manager.Active {
			return invalidAssignment("Assigned manager must be an active user with the manager role")
		}
	}

	return nil
}
