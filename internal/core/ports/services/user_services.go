package services

import (
	"context"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

// UserSvcFacade manages tenant members.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, tenantID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	ListUsers(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.User, error)

	UpdateUser(ctx context.Context, tenantID, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)

	DeactivateUser(ctx context.Context, tenantID, userID, updaterUserID string) error

	// Authenticate verifies credentials and returns the user on success.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// AuthorizeUserAction verifies that the user belongs to the tenant and
	// holds at least the required role.
	AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.UserRole) error
}

// AuthSvcFacade issues bearer tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
