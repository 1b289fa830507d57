package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/passworld/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

type CredentialRepository struct {
	db *DB
}

func NewCredentialRepository(db *DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) List(ctx context.Context) ([]model.Credential, error) {
	const query = `SELECT id, site, username, password FROM credentials`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer rows.Close()

	credentials := make([]model.Credential, 0)
	for rows.Next() {
		var (
			c  model.Credential
			id string
		)
		if err := rows.Scan(&id, &c.Site, &c.Username, &c.Password); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse credential id %q: %w", id, err)
		}
		credentials = append(credentials, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credentials: %w", err)
	}

	return credentials, nil
}

func (r *CredentialRepository) Create(ctx context.Context, credential model.Credential) (model.Credential, error) {
	const query = `INSERT INTO credentials (id, site, username, password) VALUES (?, ?, ?, ?)`

	if credential.ID == uuid.Nil {
		credential.ID = uuid.New()
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		credential.ID.String(), credential.Site, credential.Username, credential.Password)
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to insert credential: %w", err)
	}

	return credential, nil
}

func (r *CredentialRepository) Update(ctx context.Context, credential model.Credential) (model.Credential, error) {
	const query = `UPDATE credentials SET site = ?, username = ?, password = ? WHERE id = ?`

	res, err := r.db.Writer.ExecContext(ctx, query,
		credential.Site, credential.Username, credential.Password, credential.ID.String())
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to update credential: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return model.Credential{}, err
	}

	return credential, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM credentials WHERE id = ?`

	res, err := r.db.Writer.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return expectAffected(res)
}

// Restore upserts credentials by id in a single transaction.
func (r *CredentialRepository) Restore(ctx context.Context, credentials []model.Credential) (int, error) {
	const query = `
		INSERT INTO credentials (id, site, username, password) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET site = excluded.site, username = excluded.username, password = excluded.password`

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin restore: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare restore: %w", err)
	}
	defer stmt.Close()

	for _, c := range credentials {
		if _, err := stmt.ExecContext(ctx, c.ID.String(), c.Site, c.Username, c.Password); err != nil {
			return 0, fmt.Errorf("failed to restore credential %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit restore: %w", err)
	}

	return len(credentials), nil
}

func (r *CredentialRepository) Ping(ctx context.Context) error {
	return r.db.Reader.PingContext(ctx)
}

func (r *CredentialRepository) Close() error {
	return r.db.Close()
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
