package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/dto"
	"github.com/rafaelleal24/storefront/internal/core/logger"
	"github.com/rafaelleal24/storefront/internal/core/port"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
)

// AuthService issues admin sessions and implements port.AdminGate over them.
type AuthService struct {
	sessions     port.CachePort[domain.AdminSession]
	username     string
	passwordHash []byte
	sessionTTL   time.Duration
}

func NewAuthService(
	sessions port.CachePort[domain.AdminSession],
	username string,
	passwordHash string,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		sessions:     sessions,
		username:     username,
		passwordHash: []byte(passwordHash),
		sessionTTL:   sessionTTL,
	}
}

func HashAdminPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) checkCredentials(username, password string) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	return usernameOK && passwordOK
}

func (s *AuthService) Login(ctx context.Context, request *dto.LoginRequest) (*domain.AdminSession, error) {
	if !s.checkCredentials(request.Username, request.Password) {
		logger.Warn(ctx, "auth: invalid admin credentials", map[string]any{
			"username": request.Username,
		})
		return nil, serviceerrors.NewUnauthorizedError("invalid credentials")
	}

	session := domain.NewAdminSession(uuid.NewString(), s.username, s.sessionTTL)
	if err := s.sessions.Set(ctx, session.Token, session, s.sessionTTL); err != nil {
		logger.Error(ctx, "auth: store session failed", err, map[string]any{
			"username": s.username,
		})
		return nil, err
	}

	logger.Info(ctx, "Admin logged in", map[string]any{
		"username":   s.username,
		"expires_at": session.ExpiresAt,
	})
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	authorized, err := s.IsAuthorized(ctx, token)
	if err != nil {
		return err
	}
	if !authorized {
		return serviceerrors.NewUnauthorizedError("unauthorized")
	}

	if err := s.sessions.Del(ctx, token); err != nil {
		logger.Error(ctx, "auth: delete session failed", err, nil)
		return err
	}
	logger.Info(ctx, "Admin logged out", nil)
	return nil
}

func (s *AuthService) IsAuthorized(ctx context.Context, credential string) (bool, error) {
	if credential == "" {
		return false, nil
	}

	session, err := s.sessions.Get(ctx, credential)
	if err != nil {
		return false, fmt.Errorf("load admin session: %w", err)
	}
	if session == nil || session.IsExpired(time.Now()) {
		return false, nil
	}
	return true, nil
}
