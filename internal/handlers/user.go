package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	"github.com/teamtrackhq/teamtrack-api/internal/dto"
	apierrors "github.com/teamtrackhq/teamtrack-api/internal/errors"
	"github.com/teamtrackhq/teamtrack-api/internal/middleware"
	"github.com/teamtrackhq/teamtrack-api/internal/services"
)

// UserHandler coordinates user roster and approval HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns the active roster visible to the actor.
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	users, err := h.userService.ListUsers(actor)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}

// ListPending returns users awaiting approval.
func (h *UserHandler) ListPending(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	users, err := h.userService.ListPending(actor)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}

// GetUser returns a single user with hierarchy links resolved.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser creates an active user directly with role and hierarchy links.
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateUserRequest struct {
		Name         string  `json:"name" binding:"required,min=2,max=100"`
		Email        string  `json:"email" binding:"required,email"`
		Password     string  `json:"password" binding:"required"`
		Role         string  `json:"role" binding:"required"`
		SupervisorID *uint64 `json:"supervisor_id"`
		ManagerID    *uint64 `json:"manager_id"`
		AvatarURL    string  `json:"avatar_url"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		apierrors.ValidationFailed(c, "Invalid role assignment")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         role,
		SupervisorID: req.SupervisorID,
		ManagerID:    req.ManagerID,
		AvatarURL:    req.AvatarURL,
	}, actor)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ApproveUser activates a pending user with role and hierarchy assignment.
func (h *UserHandler) ApproveUser(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type ApproveUserRequest struct {
		Role         string  `json:"role" binding:"required"`
		SupervisorID *uint64 `json:"supervisor_id"`
		ManagerID    *uint64 `json:"manager_id"`
	}

	var req ApproveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		apierrors.ValidationFailed(c, "Invalid role assignment")
		return
	}

	user, err := h.userService.ApproveUser(services.ApproveUserInput{
		UserID:       id,
		Role:         role,
		SupervisorID: req.SupervisorID,
		ManagerID:    req.ManagerID,
	}, actor)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// RejectUser removes a pending registration.
func (h *UserHandler) RejectUser(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type RejectUserRequest struct {
		Reason string `json:"reason"`
	}

	var req RejectUserRequest
	// The body is optional; a missing body just means no reason given.
	_ = c.ShouldBindJSON(&req)

	if err := h.userService.RejectUser(id, req.Reason, actor); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration rejected"})
}

// DeleteUser removes a user record.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id, actor); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func respondUserError(c *gin.Context, err error) {
	var assignmentErr *authz.AssignmentError

	switch {
	case errors.As(err, &assignmentErr):
		apierrors.ValidationFailed(c, assignmentErr.Message)
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCannotDeleteSelf):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUserNotPending):
		apierrors.ValidationFailed(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
