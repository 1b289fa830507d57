package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dtroode/passworld/database"
)

// DB holds a single-connection writer and a small reader pool over one file.
type DB struct {
	Writer *sql.DB
	Reader *sql.DB
}

// Open opens the database at path with WAL enabled and applies migrations.
// An in-memory path (":memory:" or a URI with mode=memory) gets a uniquely
// named shared-cache database so the writer and reader see the same data.
func Open(ctx context.Context, path string) (*DB, error) {
	if isMemory(path) {
		dsn := fmt.Sprintf("file:passworld-%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", uuid.NewString())
		return open(ctx, dsn)
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		path,
	)
	return open(ctx, dsn)
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

func open(ctx context.Context, dsn string) (*DB, error) {
	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	if err := writer.PingContext(ctx); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("failed to ping writer: %w", err)
	}

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("failed to open reader: %w", err)
	}
	reader.SetMaxOpenConns(4)

	db := &DB{Writer: writer, Reader: reader}

	if err := database.MigrateDB(ctx, writer, database.DialectSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, nil
}

// Close closes both pools and returns the first error.
func (db *DB) Close() error {
	var firstErr error

	if err := db.Reader.Close(); err != nil {
		firstErr = fmt.Errorf("failed to close reader: %w", err)
	}
	if err := db.Writer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close writer: %w", err)
	}

	return firstErr
}
