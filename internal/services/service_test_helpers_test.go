package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	taskRepo   repository.TaskRepository
	reportRepo repository.ReportRepository
}

func setupServiceTest(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Report{},
		&models.ReportTask{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return serviceTestEnv{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		taskRepo:   repository.NewTaskRepository(db),
		reportRepo: repository.NewReportRepository(db),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, name string, role authz.Role, status models.UserStatus, supervisorID, managerID *uint64) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
		Status:       status,
		SupervisorID: supervisorID,
		ManagerID:    managerID,
	}
	require.NoError(t, env.db.Create(&user).Error)
	return user
}

// createHierarchy seeds the standard four-level chain used by most tests.
func (env serviceTestEnv) createHierarchy(t *testing.T) (admin, manager, supervisor, member models.User) {
	t.Helper()

	admin = env.createUser(t, "admin", authz.RoleSuperAdmin, models.UserStatusActive, nil, nil)
	manager = env.createUser(t, "manager", authz.RoleManager, models.UserStatusActive, nil, nil)
	supervisor = env.createUser(t, "supervisor", authz.RoleSupervisor, models.UserStatusActive, nil, &manager.ID)
	member = env.createUser(t, "member", authz.RoleMember, models.UserStatusActive, &supervisor.ID, &manager.ID)
	return admin, manager, supervisor, member
}
