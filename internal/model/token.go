package model

import "time"

// TokenManager issues and validates session tokens.
type TokenManager interface {
	GenerateSessionToken() (token string, expiresAt time.Time, err error)
	ParseSessionToken(token string) (sessionID string, err error)
}

// Session is an issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
