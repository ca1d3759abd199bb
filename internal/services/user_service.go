package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	"github.com/teamtrackhq/teamtrack-api/internal/constants"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
	ErrCannotDeleteSelf = errors.New("you cannot delete your own account")
	ErrUserNotPending   = errors.New("user is not awaiting approval")
)

// UserService provides business logic for user records and the approval
// workflow.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns the active roster visible to the actor. Members see an
// empty roster.
func (s *UserService) ListUsers(actor models.User) ([]models.User, error) {
	snapshot := actor.Snapshot()
	if !authz.Can(snapshot, authz.ActionViewRoster, authz.Target{}) {
		return []models.User{}, nil
	}

	users, err := s.userRepo.ListActive(authz.RosterScope(snapshot))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListPending returns users awaiting approval.
func (s *UserService) ListPending(actor models.User) ([]models.User, error) {
	if !authz.Can(actor.Snapshot(), authz.ActionApproveUser, authz.Target{}) {
		return nil, ErrPermissionDenied
	}

	users, err := s.userRepo.ListPending()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending users: %w", err)
	}
	return users, nil
}

// GetUser returns a user with hierarchy links resolved.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Supervisor", "Manager")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateUserInput represents input for creating a user directly as active.
type CreateUserInput struct {
	Name         string
	Email        string
	Password     string
	Role         authz.Role
	SupervisorID *uint64
	ManagerID    *uint64
	AvatarURL    string
}

// CreateUser creates an active user record directly, bypassing
// self-registration. The hierarchy assignment is validated the same way an
// approval is.
func (s *UserService) CreateUser(input CreateUserInput, actor models.User) (*models.User, error) {
	if !authz.Can(actor.Snapshot(), authz.ActionCreateUser, authz.Target{}) {
		return nil, ErrPermissionDenied
	}

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	supervisor, manager, err := s.resolveLinks(input.SupervisorID, input.ManagerID)
	if err != nil {
		return nil, err
	}
	if err := authz.ValidateAssignment(0, input.Role, supervisor, manager); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Status:       models.UserStatusActive,
		AvatarURL:    input.AvatarURL,
		SupervisorID: input.SupervisorID,
		ManagerID:    input.ManagerID,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ApproveUserInput represents the role and hierarchy assignment applied when
// approving a pending registrant.
type ApproveUserInput struct {
	UserID       uint64
	Role         authz.Role
	SupervisorID *uint64
	ManagerID    *uint64
}

// ApproveUser activates a pending user, assigning role and hierarchy links in
// the same operation.
func (s *UserService) ApproveUser(input ApproveUserInput, actor models.User) (*models.User, error) {
	if !authz.Can(actor.Snapshot(), authz.ActionApproveUser, authz.Target{}) {
		return nil, ErrPermissionDenied
	}

	user, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Status != models.UserStatusPending {
		return nil, ErrUserNotPending
	}

	supervisor, manager, err := s.resolveLinks(input.SupervisorID, input.ManagerID)
	if err != nil {
		return nil, err
	}
	if err := authz.ValidateAssignment(user.ID, input.Role, supervisor, manager); err != nil {
		return nil, err
	}

	user.Role = input.Role
	user.SupervisorID = input.SupervisorID
	user.ManagerID = input.ManagerID
	user.Status = models.UserStatusActive

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to approve user: %w", err)
	}

	return user, nil
}

// RejectUser removes a pending registration.
func (s *UserService) RejectUser(userID uint64, reason string, actor models.User) error {
	if !authz.Can(actor.Snapshot(), authz.ActionRejectUser, authz.Target{}) {
		return ErrPermissionDenied
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.Status != models.UserStatusPending {
		return ErrUserNotPending
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		return fmt.Errorf("failed to reject user: %w", err)
	}

	return nil
}

// DeleteUser removes a user record. Super admins cannot delete themselves.
func (s *UserService) DeleteUser(userID uint64, actor models.User) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	snapshot := user.Snapshot()
	if !authz.Can(actor.Snapshot(), authz.ActionDeleteUser, authz.Target{User: &snapshot}) {
		if actor.Role == authz.RoleSuperAdmin && actor.ID == user.ID {
			return ErrCannotDeleteSelf
		}
		return ErrPermissionDenied
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// resolveLinks loads the referenced supervisor/manager records so the
// assignment validator can check role and status. A dangling id is reported
// as an invalid assignment rather than a lookup failure.
func (s *UserService) resolveLinks(supervisorID, managerID *uint64) (*authz.UserRef, *authz.UserRef, error) {
	var supervisor, manager *authz.UserRef

	if supervisorID != nil {
		user, err := s.userRepo.FindByID(*supervisorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, &authz.AssignmentError{Message: "Assigned supervisor does not exist"}
			}
			return nil, nil, fmt.Errorf("failed to resolve supervisor: %w", err)
		}
		ref := user.Ref()
		supervisor = &ref
	}

	if managerID != nil {
		user, err := s.userRepo.FindByID(*managerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, &authz.AssignmentError{Message: "Assigned manager does not exist"}
			}
			return nil, nil, fmt.Errorf("failed to resolve manager: %w", err)
		}
		ref := user.Ref()
		manager = &ref
	}

	return supervisor, manager, nil
}
