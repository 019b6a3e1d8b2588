package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

// TokenPrefix marks plaintext API tokens so secret scanners and the auth
// middleware can recognize them.
const TokenPrefix = "cxb_"

const tokenByteLength = 32

// apiTokenService manages long-lived automation tokens.
type apiTokenService struct {
	tokenRepo portsrepo.APITokenRepository
}

// NewAPITokenService creates the API token service.
func NewAPITokenService(tokenRepo portsrepo.APITokenRepository) portssvc.APITokenSvcFacade {
	return &apiTokenService{tokenRepo: tokenRepo}
}

var _ portssvc.APITokenSvcFacade = (*apiTokenService)(nil)

// CreateToken issues a token. The plaintext is returned once and never
// stored; only its SHA-256 hash persists.
func (s *apiTokenService) CreateToken(ctx context.Context, userID string, req dto.CreateAPITokenRequest) (*dto.APITokenResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: expiry must be in the future", apperrors.ErrValidation)
	}

	random, err := utils.GenerateSecureRandomString(tokenByteLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	plainToken := TokenPrefix + random

	now := time.Now().UTC()
	token := domain.APIToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		TokenHash: utils.HashToken(plainToken),
		ExpiresAt: req.ExpiresAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.tokenRepo.Create(ctx, &token); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}

	logger.Info("API token created", slog.String("token_id", token.ID), slog.String("name", token.Name))
	resp := dto.ToAPITokenResponse(&token)
	resp.PlainToken = plainToken
	return &resp, nil
}

// ListTokens returns the caller's tokens, hashes omitted.
func (s *apiTokenService) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	return s.tokenRepo.FindByUserID(ctx, userID)
}

// RevokeToken deletes a token owned by the caller.
func (s *apiTokenService) RevokeToken(ctx context.Context, userID, tokenID string) error {
	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return err
	}
	if token.UserID != userID {
		return fmt.Errorf("%w: token %s", apperrors.ErrNotFound, tokenID)
	}
	return s.tokenRepo.Delete(ctx, tokenID)
}

// ValidateToken resolves a presented plaintext token to its owner and stamps
// the last-used time. Expired tokens never authenticate.
func (s *apiTokenService) ValidateToken(ctx context.Context, plainToken string) (*domain.APIToken, error) {
	if !strings.HasPrefix(plainToken, TokenPrefix) {
		return nil, fmt.Errorf("%w: malformed token", apperrors.ErrForbidden)
	}

	token, err := s.tokenRepo.FindByTokenHash(ctx, utils.HashToken(plainToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown token", apperrors.ErrForbidden)
		}
		return nil, err
	}

	now := time.Now().UTC()
	if token.IsExpired(now) {
		return nil, fmt.Errorf("%w: token expired", apperrors.ErrForbidden)
	}

	token.LastUsedAt = &now
	if err := s.tokenRepo.Update(ctx, token); err != nil {
		// Best effort; auth still succeeds.
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to stamp token last_used_at",
			slog.String("token_id", token.ID), slog.String("error", err.Error()))
	}
	return token, nil
}
