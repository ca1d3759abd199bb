package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	"github.com/teamtrackhq/teamtrack-api/internal/constants"
	"github.com/teamtrackhq/teamtrack-api/internal/database"
	"github.com/teamtrackhq/teamtrack-api/internal/dto"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/repository"
	"github.com/teamtrackhq/teamtrack-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Report{},
		&models.ReportTask{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, userRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(name string, role authz.Role, supervisorID, managerID *uint64) models.User {
	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
		Status:       models.UserStatusActive,
		SupervisorID: supervisorID,
		ManagerID:    managerID,
	}
	suite.db.Create(&user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestHierarchy() (manager, supervisor, member models.User) {
	manager = suite.createTestUser("manager", authz.RoleManager, nil, nil)
	supervisor = suite.createTestUser("supervisor", authz.RoleSupervisor, nil, &manager.ID)
	member = suite.createTestUser("member", authz.RoleMember, &supervisor.ID, &manager.ID)
	return manager, supervisor, member
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, creator, assignee models.User) models.Task {
	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	service := services.NewTaskService(taskRepo, userRepo)

	task, err := service.CreateTask(services.CreateTaskInput{
		Title:      title,
		AssigneeID: assignee.ID,
	}, creator)
	suite.Require().NoError(err)
	return *task
}

// createAuthContext builds a gin context carrying the acting user, as
// RequireAuth would.
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, actor models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, actor.ID)
	c.Set(constants.ContextKeyActor, actor)

	return c, w
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	manager, _, member := suite.createTestHierarchy()

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Prepare quarterly summary",
		"description": "Figures from all teams",
		"assignee_id": member.ID,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks", body, manager)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Prepare quarterly summary", response.Title)
	assert.Equal(suite.T(), models.TaskStatusNotStarted, response.Status)
	assert.Equal(suite.T(), member.ID, response.AssigneeID)
	assert.Equal(suite.T(), manager.ID, response.CreatorID)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MemberForbidden() {
	_, _, member := suite.createTestHierarchy()

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Prepare quarterly summary",
		"assignee_id": member.ID,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks", body, member)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_ScopedToActor() {
	manager, _, member := suite.createTestHierarchy()
	otherManager := suite.createTestUser("other-manager", authz.RoleManager, nil, nil)
	outsider := suite.createTestUser("outsider", authz.RoleMember, nil, &otherManager.ID)

	suite.createTestTask("Team task", manager, member)
	suite.createTestTask("Outside task", otherManager, outsider)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, manager)
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Tasks, 1)
	assert.Equal(suite.T(), "Team task", response.Tasks[0].Title)
	assert.Equal(suite.T(), int64(1), response.Pagination.Total)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_StatusStampsCompletedDate() {
	manager, _, member := suite.createTestHierarchy()
	task := suite.createTestTask("Team task", manager, member)

	body, _ := json.Marshal(map[string]interface{}{
		"status": "completed",
	})

	c, w := suite.createAuthContext("PATCH", fmt.Sprintf("/api/tasks/%d", task.ID), body, member)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.TaskStatusCompleted, response.Status)
	assert.NotNil(suite.T(), response.CompletedDate)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_SupervisorCannotEditTitle() {
	manager, supervisor, member := suite.createTestHierarchy()
	task := suite.createTestTask("Team task", manager, member)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Renamed",
	})

	c, w := suite.createAuthContext("PATCH", fmt.Sprintf("/api/tasks/%d", task.ID), body, supervisor)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	manager, _, _ := suite.createTestHierarchy()

	c, w := suite.createAuthContext("GET", "/api/tasks/999", nil, manager)
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_CreatorOnly() {
	manager, supervisor, member := suite.createTestHierarchy()
	task := suite.createTestTask("Team task", manager, member)

	c, w := suite.createAuthContext("DELETE", fmt.Sprintf("/api/tasks/%d", task.ID), nil, supervisor)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}
	suite.handler.DeleteTask(c)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	c, w = suite.createAuthContext("DELETE", fmt.Sprintf("/api/tasks/%d", task.ID), nil, manager)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}
	suite.handler.DeleteTask(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
