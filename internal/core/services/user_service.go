package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/cambiosoft/exchange_backend/internal/utils"
)

// userService manages tenant members and credential checks.
type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a tenant member with a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, tenantID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         req.Role,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %q already taken", apperrors.ErrDuplicate, req.Username)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// GetUserByID retrieves one user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers returns a page of tenant members.
func (s *userService) ListUsers(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx, tenantID, params.Limit, params.Offset)
}

// UpdateUser patches user details.
func (s *userService) UpdateUser(ctx context.Context, tenantID, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TenantID != tenantID {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeactivateUser marks a user inactive; their tokens stop authorizing writes.
func (s *userService) DeactivateUser(ctx context.Context, tenantID, userID, updaterUserID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TenantID != tenantID {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return s.userRepo.DeactivateUser(ctx, userID, updaterUserID, time.Now().UTC())
}

// Authenticate verifies credentials. Unknown usernames and wrong passwords
// are indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return user, nil
}

// AuthorizeUserAction verifies tenant membership and role sufficiency.
func (s *userService) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.UserRole) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TenantID != tenantID || !user.IsActive {
		return fmt.Errorf("%w: user %s cannot act on tenant %s", apperrors.ErrForbidden, userID, tenantID)
	}
	switch requiredRole {
	case domain.RoleAdmin:
		if user.Role != domain.RoleAdmin {
			return fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
		}
	case domain.RoleMember:
		if !user.Role.CanWrite() {
			return fmt.Errorf("%w: write role required", apperrors.ErrForbidden)
		}
	}
	return nil
}
