package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dtroode/passworld/internal/logger"
	"github.com/dtroode/passworld/internal/model"
)

const backupPrefix = "backups/"

// Backup writes vault snapshots to object storage and restores them.
type Backup struct {
	store   model.CredentialStore
	storage model.Storage
	logger  *logger.Logger
	now     func() time.Time
}

func NewBackup(store model.CredentialStore, storage model.Storage, logger *logger.Logger) *Backup {
	return &Backup{
		store:   store,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Backup uploads a snapshot of every credential.
func (s *Backup) Backup(ctx context.Context) (model.BackupResult, error) {
	credentials, err := s.store.List(ctx)
	if err != nil {
		return model.BackupResult{}, fmt.Errorf("failed to list credentials: %w", err)
	}

	createdAt := s.now().UTC()
	snapshot := model.Snapshot{
		CreatedAt:   createdAt,
		Credentials: make([]model.SnapshotCredential, 0, len(credentials)),
	}
	for _, c := range credentials {
		snapshot.Credentials = append(snapshot.Credentials, model.SnapshotCredential{
			ID:       c.ID.String(),
			Site:     c.Site,
			Username: c.Username,
			Password: c.Password,
		})
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return model.BackupResult{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := backupPrefix + createdAt.Format("20060102T150405.000000000Z") + ".json"
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data)); err != nil {
		return model.BackupResult{}, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.logger.Info("Backup service: snapshot uploaded", "key", key, "count", len(credentials))

	return model.BackupResult{Key: key, Count: len(credentials)}, nil
}

// Restore upserts every credential of the snapshot stored under key.
func (s *Backup) Restore(ctx context.Context, key string) (int, error) {
	if !strings.HasPrefix(key, backupPrefix) || !strings.HasSuffix(key, ".json") {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidBackupKey, key)
	}

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to check snapshot: %w", err)
	}
	if !exists {
		return 0, model.ErrNotFound
	}

	reader, err := s.storage.Download(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to download snapshot: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.logger.Error("Backup service: failed to close snapshot reader", "error", err)
		}
	}()

	var snapshot model.Snapshot
	if err := json.NewDecoder(reader).Decode(&snapshot); err != nil {
		return 0, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	credentials := make([]model.Credential, 0, len(snapshot.Credentials))
	for _, c := range snapshot.Credentials {
		id, err := model.ParseID(c.ID)
		if err != nil {
			return 0, fmt.Errorf("snapshot %s is corrupted: %v", key, err)
		}
		credentials = append(credentials, model.Credential{
			ID:       id,
			Site:     c.Site,
			Username: c.Username,
			Password: c.Password,
		})
	}

	n, err := s.store.Restore(ctx, credentials)
	if err != nil {
		return 0, fmt.Errorf("failed to restore snapshot: %w", err)
	}

	s.logger.Info("Backup service: snapshot restored", "key", key, "count", n)

	return n, nil
}
