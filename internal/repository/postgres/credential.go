package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/passworld/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

type CredentialRepository struct {
	db *Connection
}

func NewCredentialRepository(db *Connection) *CredentialRepository {
	return &CredentialRepository{
		db: db,
	}
}

func (r *CredentialRepository) List(ctx context.Context) ([]model.Credential, error) {
	const query = `SELECT id, site, username, password FROM credentials`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer rows.Close()

	credentials := make([]model.Credential, 0)
	for rows.Next() {
		var c model.Credential
		if err := rows.Scan(&c.ID, &c.Site, &c.Username, &c.Password); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		credentials = append(credentials, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credentials: %w", err)
	}

	return credentials, nil
}

func (r *CredentialRepository) Create(ctx context.Context, credential model.Credential) (model.Credential, error) {
	const query = `
		INSERT INTO credentials (id, site, username, password)
		VALUES (COALESCE(NULLIF($1::uuid, '00000000-0000-0000-0000-000000000000'), gen_random_uuid()), $2, $3, $4)
		RETURNING id, site, username, password`

	var saved model.Credential
	err := r.db.QueryRow(ctx, query,
		credential.ID, credential.Site, credential.Username, credential.Password,
	).Scan(&saved.ID, &saved.Site, &saved.Username, &saved.Password)
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to insert credential: %w", err)
	}

	return saved, nil
}

func (r *CredentialRepository) Update(ctx context.Context, credential model.Credential) (model.Credential, error) {
	const query = `
		UPDATE credentials SET site = $2, username = $3, password = $4
		WHERE id = $1
		RETURNING id, site, username, password`

	var saved model.Credential
	err := r.db.QueryRow(ctx, query,
		credential.ID, credential.Site, credential.Username, credential.Password,
	).Scan(&saved.ID, &saved.Site, &saved.Username, &saved.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to update credential: %w", err)
	}

	return saved, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM credentials WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Restore upserts credentials by id in a single transaction.
func (r *CredentialRepository) Restore(ctx context.Context, credentials []model.Credential) (int, error) {
	const query = `
		INSERT INTO credentials (id, site, username, password)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET site = EXCLUDED.site, username = EXCLUDED.username, password = EXCLUDED.password`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin restore: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, c := range credentials {
		batch.Queue(query, c.ID, c.Site, c.Username, c.Password)
	}

	results := tx.SendBatch(ctx, batch)
	for range credentials {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("failed to restore credential: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close restore batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit restore: %w", err)
	}

	return len(credentials), nil
}

func (r *CredentialRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *CredentialRepository) Close() error {
	return r.db.Close()
}
