package dto

import (
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// CreateUserRequest registers a tenant member.
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Username string          `json:"username" binding:"required,min=3"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UpdateUserRequest updates user details.
type UpdateUserRequest struct {
	Name     *string          `json:"name"`
	Role     *domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN MEMBER READONLY"`
	IsActive *bool            `json:"isActive"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse mirrors domain.User without credentials.
type UserResponse struct {
	UserID   string          `json:"userID"`
	TenantID string          `json:"tenantID"`
	Name     string          `json:"name"`
	Username string          `json:"username"`
	Role     domain.UserRole `json:"role"`
	IsActive bool            `json:"isActive"`
}

// ToUserResponse converts a domain.User to its DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		TenantID: u.TenantID,
		Name:     u.Name,
		Username: u.Username,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

// ToListUserResponse converts a slice of users.
func ToListUserResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = ToUserResponse(&u)
	}
	return res
}
