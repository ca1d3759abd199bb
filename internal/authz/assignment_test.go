package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeRef(id uint64, role Role) *UserRef {
	return &UserRef{ID: id, Role: role, Active: true}
}

func TestValidateAssignment_Member(t *testing.T) {
	supervisor := activeRef(3, RoleSupervisor)
	manager := activeRef(2, RoleManager)

	assert.NoError(t, ValidateAssignment(4, RoleMember, supervisor, manager))

	err := ValidateAssignment(4, RoleMember, nil, manager)
	require.Error(t, err)
	assert.Equal(t, "Team members must have both a supervisor and manager assigned", err.Error())

	err = ValidateAssignment(4, RoleMember, supervisor, nil)
	require.Error(t, err)
	assert.Equal(t, "Team members must have both a supervisor and manager assigned", err.Error())

	err = ValidateAssignment(4, RoleMember, nil, nil)
	require.Error(t, err)
	assert.Equal(t, "Team members must have both a supervisor and manager assigned", err.Error())
}

func TestValidateAssignment_LinkRoles(t *testing.T) {
	// Supervisor link pointing at a manager-role user.
	err := ValidateAssignment(4, RoleMember, activeRef(2, RoleManager), activeRef(2, RoleManager))
	require.Error(t, err)
	var assignmentErr *AssignmentError
	require.ErrorAs(t, err, &assignmentErr)

	// Inactive supervisor.
	inactive := &UserRef{ID: 3, Role: RoleSupervisor, Active: false}
	err = ValidateAssignment(4, RoleMember, inactive, activeRef(2, RoleManager))
	assert.Error(t, err)

	// Manager link pointing at a member-role user.
	err = ValidateAssignment(4, RoleMember, activeRef(3, RoleSupervisor), activeRef(5, RoleMember))
	assert.Error(t, err)
}

func TestValidateAssignment_Supervisor(t *testing.T) {
	assert.NoError(t, ValidateAssignment(3, RoleSupervisor, nil, activeRef(2, RoleManager)))

	err := ValidateAssignment(3, RoleSupervisor, nil, nil)
	require.Error(t, err)
	assert.Equal(t, "Supervisors must have a manager assigned", err.Error())
}

func TestValidateAssignment_ManagerAndAbove(t *testing.T) {
	assert.NoError(t, ValidateAssignment(2, RoleManager, nil, nil))
	assert.NoError(t, ValidateAssignment(1, RoleSuperAdmin, nil, nil))
}

func TestValidateAssignment_UnknownRole(t *testing.T) {
	err := ValidateAssignment(4, Role("intern"), nil, nil)
	require.Error(t, err)
	assert.Equal(t, "Invalid role assignment", err.Error())
}

func TestValidateAssignment_SelfReference(t *testing.T) {
	err := ValidateAssignment(3, RoleMember, activeRef(3, RoleSupervisor), activeRef(2, RoleManager))
	require.Error(t, err)
	assert.Equal(t, "A user cannot be their own supervisor", err.Error())

	err = ValidateAssignment(2, RoleSupervisor, nil, activeRef(2, RoleManager))
	require.Error(t, err)
	assert.Equal(t, "A user cannot be their own manager", err.Error())
}
