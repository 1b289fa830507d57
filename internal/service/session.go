package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/dtroode/passworld/internal/logger"
	"github.com/dtroode/passworld/internal/model"
)

// Session exchanges the configured PIN for session tokens.
type Session struct {
	pin     string
	manager model.TokenManager
	logger  *logger.Logger
}

// NewSession creates a session service. An empty pin disables sessions.
func NewSession(pin string, manager model.TokenManager, logger *logger.Logger) *Session {
	return &Session{pin: pin, manager: manager, logger: logger}
}

// Enabled reports whether requests must carry a session token.
func (s *Session) Enabled() bool {
	return s.pin != ""
}

// Open checks the PIN and issues a session token.
func (s *Session) Open(_ context.Context, pin string) (model.Session, error) {
	if !s.Enabled() {
		return model.Session{}, model.ErrSessionsDisabled
	}

	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) != 1 {
		s.logger.Warn("Session service: incorrect pin")
		return model.Session{}, model.ErrIncorrectPIN
	}

	token, expiresAt, err := s.manager.GenerateSessionToken()
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue session: %w", err)
	}

	return model.Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Validate returns the session id carried by token.
func (s *Session) Validate(_ context.Context, token string) (string, error) {
	return s.manager.ParseSessionToken(token)
}
