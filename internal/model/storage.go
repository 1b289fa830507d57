package model

import (
	"context"
	"io"
	"time"
)

// Storage is an object store holding vault snapshots.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Snapshot is the serialized form of the whole vault.
type Snapshot struct {
	CreatedAt   time.Time            `json:"created_at"`
	Credentials []SnapshotCredential `json:"credentials"`
}

// SnapshotCredential is a credential as stored inside a snapshot.
type SnapshotCredential struct {
	ID       string `json:"id"`
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// BackupResult describes an uploaded snapshot.
type BackupResult struct {
	Key   string
	Count int
}
