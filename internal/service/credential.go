package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/passworld/internal/logger"
	"github.com/dtroode/passworld/internal/model"
)

// Credential implements the credential store API on top of a CredentialStore.
type Credential struct {
	store  model.CredentialStore
	logger *logger.Logger
}

func NewCredential(store model.CredentialStore, logger *logger.Logger) *Credential {
	return &Credential{
		store:  store,
		logger: logger,
	}
}

func (s *Credential) ListCredentials(ctx context.Context) ([]model.Credential, error) {
	credentials, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	return credentials, nil
}

// CreateCredential assigns a fresh id and persists the record. Fields are not validated.
func (s *Credential) CreateCredential(ctx context.Context, params model.CreateCredentialParams) (model.Credential, error) {
	credential := model.Credential{
		ID:       uuid.New(),
		Site:     params.Site,
		Username: params.Username,
		Password: params.Password,
	}

	saved, err := s.store.Create(ctx, credential)
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to create credential: %w", err)
	}

	s.logger.Debug("Credential service: credential created", "credential_id", saved.ID)

	return saved, nil
}

// UpdateCredential replaces all three fields of the record matching params.ID.
func (s *Credential) UpdateCredential(ctx context.Context, params model.UpdateCredentialParams) (model.Credential, error) {
	if params.ID == uuid.Nil {
		return model.Credential{}, model.ErrInvalidID
	}

	saved, err := s.store.Update(ctx, model.Credential{
		ID:       params.ID,
		Site:     params.Site,
		Username: params.Username,
		Password: params.Password,
	})
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to update credential %s: %w", params.ID, err)
	}

	return saved, nil
}

// DeleteCredential removes the record. Deleting an absent id reports ErrNotFound.
func (s *Credential) DeleteCredential(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrInvalidID
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete credential %s: %w", id, err)
	}

	return nil
}

// Ping reports whether the store is reachable.
func (s *Credential) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
