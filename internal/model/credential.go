package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CredentialStore defines persistence operations for credential records.
type CredentialStore interface {
	List(ctx context.Context) ([]Credential, error)
	Create(ctx context.Context, credential Credential) (Credential, error)
	Update(ctx context.Context, credential Credential) (Credential, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, credentials []Credential) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

// Credential represents a saved login.
type Credential struct {
	ID       uuid.UUID
	Site     string
	Username string
	Password string
}

// CreateCredentialParams contains parameters to create a credential.
type CreateCredentialParams struct {
	Site     string
	Username string
	Password string
}

// UpdateCredentialParams contains parameters to replace a credential.
type UpdateCredentialParams struct {
	ID       uuid.UUID
	Site     string
	Username string
	Password string
}

// ParseID converts an opaque identifier received over the wire into a store id.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
