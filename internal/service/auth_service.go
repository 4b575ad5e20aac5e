package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/atelierhq/agency-api/internal/auth"
	"github.com/atelierhq/agency-api/internal/config"
	"github.com/atelierhq/agency-api/internal/domain"
	"go.uber.org/zap"
)

// AuthService handles operator logins against the statically configured
// admin and viewer credentials.
type AuthService struct {
	cfg    *config.AuthConfig
	issuer *auth.TokenIssuer
	logger *zap.Logger
}

func NewAuthService(cfg *config.AuthConfig, issuer *auth.TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		cfg:    cfg,
		issuer: issuer,
		logger: logger,
	}
}

func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	role, ok := s.matchCredentials(req.Username, req.Password)
	if !ok {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(req.Username, role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format("2006-01-02T15:04:05Z"),
		Role:      string(role),
	}, nil
}

// matchCredentials compares both credential pairs in constant time so a
// username mismatch is indistinguishable from a password mismatch.
func (s *AuthService) matchCredentials(username, password string) (auth.Role, bool) {
	if s.cfg.AdminPassword != "" &&
		subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1 &&
		subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1 {
		return auth.RoleAdmin, true
	}

	if s.cfg.ViewerPassword != "" &&
		subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.ViewerUsername)) == 1 &&
		subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.ViewerPassword)) == 1 {
		return auth.RoleViewer, true
	}

	return "", false
}
