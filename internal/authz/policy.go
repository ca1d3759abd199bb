package authz

// Action is an operation an actor may attempt against a record.
type Action string

const (
	ActionViewRoster       Action = "users:view_roster"
	ActionCreateUser       Action = "users:create"
	ActionApproveUser      Action = "users:approve"
	ActionRejectUser       Action = "users:reject"
	ActionDeleteUser       Action = "users:delete"
	ActionCreateTask       Action = "tasks:create"
	ActionEditTaskDetails  Action = "tasks:edit_details"
	ActionEditTaskAssignee Action = "tasks:edit_assignee"
	ActionEditTaskStatus   Action = "tasks:edit_status"
	ActionDeleteTask       Action = "tasks:delete"
)

// UserSnapshot is a point-in-time copy of the user fields that matter for
// authorization decisions. Policy functions never touch the database; callers
// resolve snapshots at request time.
type UserSnapshot struct {
	ID           uint64
	Role         Role
	Active       bool
	SupervisorID *uint64
	ManagerID    *uint64
}

// TaskSnapshot is a point-in-time copy of the task fields that matter for
// authorization decisions.
type TaskSnapshot struct {
	ID         uint64
	CreatorID  uint64
	AssigneeID uint64
}

// Target carries the record snapshots an action is evaluated against. Only
// the fields relevant to the action need to be set.
type Target struct {
	// User is the user record being acted on (approve, reject, delete).
	User *UserSnapshot
	// Task is the task record being acted on.
	Task *TaskSnapshot
	// Assignee is the current assignee of Target.Task.
	Assignee *UserSnapshot
	// NewAssignee is the proposed assignee for create/reassign actions.
	NewAssignee *UserSnapshot
}

// Can reports whether the actor may perform the action against the target.
// It is a pure function: identical snapshots always produce identical
// results.
func Can(actor UserSnapshot, action Action, target Target) bool {
	switch action {
	case ActionViewRoster:
		return actor.Role != RoleMember

	case ActionCreateUser, ActionApproveUser, ActionRejectUser:
		return actor.Role == RoleSuperAdmin

	case ActionDeleteUser:
		if actor.Role != RoleSuperAdmin {
			return false
		}
		return target.User == nil || target.User.ID != actor.ID

	case ActionCreateTask:
		if actor.Role == RoleMember {
			return false
		}
		if target.NewAssignee == nil {
			return false
		}
		return InDownwardSet(actor, *target.NewAssignee)

	case ActionEditTaskDetails, ActionDeleteTask:
		if target.Task == nil {
			return false
		}
		return actor.Role == RoleSuperAdmin || actor.ID == target.Task.CreatorID

	case ActionEditTaskAssignee:
		if target.Task == nil {
			return false
		}
		if actor.Role == RoleSuperAdmin || actor.ID == target.Task.CreatorID {
			return true
		}
		switch actor.Role {
		case RoleSupervisor:
			// Supervisors may only hand off tasks currently on their own plate.
			return target.Task.AssigneeID == actor.ID
		case RoleManager:
			if target.Assignee != nil && InDownwardSet(actor, *target.Assignee) {
				return true
			}
			return target.NewAssignee != nil && InDownwardSet(actor, *target.NewAssignee)
		default:
			return false
		}

	case ActionEditTaskStatus:
		if target.Task == nil {
			return false
		}
		if actor.Role == RoleSuperAdmin || actor.ID == target.Task.AssigneeID {
			return true
		}
		if target.Assignee == nil {
			return false
		}
		return refEquals(target.Assignee.SupervisorID, actor.ID) ||
			refEquals(target.Assignee.ManagerID, actor.ID)

	default:
		return false
	}
}

// InDownwardSet reports whether user belongs to the actor's downward
// reporting set: themselves plus everyone whose upward link points at them.
// Super admins see the whole tree.
func InDownwardSet(actor UserSnapshot, user UserSnapshot) bool {
	switch actor.Role {
	case RoleSuperAdmin:
		return true
	case RoleManager:
		return user.ID == actor.ID || refEquals(user.ManagerID, actor.ID)
	case RoleSupervisor:
		return user.ID == actor.ID || refEquals(user.SupervisorID, actor.ID)
	default:
		return false
	}
}

// Scope describes which slice of the user roster an actor may list.
type Scope struct {
	// All grants visibility over every active user.
	All bool
	// ManagerID restricts visibility to users whose manager_id matches.
	ManagerID *uint64
	// SupervisorID restricts visibility to users whose supervisor_id matches.
	SupervisorID *uint64
	// None means the actor sees no roster at all.
	None bool
}

// RosterScope returns the roster slice visible to the actor.
func RosterScope(actor UserSnapshot) Scope {
	switch actor.Role {
	case RoleSuperAdmin:
		return Scope{All: true}
	case RoleManager:
		id := actor.ID
		return Scope{ManagerID: &id}
	case RoleSupervisor:
		id := actor.ID
		return Scope{SupervisorID: &id}
	default:
		return Scope{None: true}
	}
}

func refEquals(ref *uint64, id uint64) bool {
	return ref != nil && *ref == id
}
