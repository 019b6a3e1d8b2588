package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/cambiosoft/exchange_backend/internal/utils"
)

// authService exchanges credentials for bearer tokens.
type authService struct {
	userSvc   portssvc.UserSvcFacade
	jwtSecret string
	jwtExpiry time.Duration
	issuer    string
}

// NewAuthService creates the auth service.
func NewAuthService(userSvc portssvc.UserSvcFacade, jwtSecret string, jwtExpiry time.Duration, issuer string) portssvc.AuthSvcFacade {
	return &authService{userSvc: userSvc, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry, issuer: issuer}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues a tenant-scoped JWT.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userSvc.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, user.TenantID, string(user.Role), s.jwtSecret, s.jwtExpiry, s.issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}
