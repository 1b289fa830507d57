//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/passworld/internal/model"
	repo "github.com/dtroode/passworld/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "passworld_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/postgres?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func openRepository(t *testing.T) *repo.CredentialRepository {
	t.Helper()

	conn, err := repo.NewConnection(context.Background(), dsn, "passworld_test")
	require.NoError(t, err)

	r := repo.NewCredentialRepository(conn)
	t.Cleanup(func() { _ = r.Close() })

	_, err = conn.Exec(context.Background(), `TRUNCATE credentials`)
	require.NoError(t, err)

	return r
}

func TestCredentialRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	rr := openRepository(t)

	require.NoError(t, rr.Ping(ctx))

	c := model.Credential{ID: uuid.New(), Site: "example.com", Username: "alice", Password: "secret1"}
	saved, err := rr.Create(ctx, c)
	require.NoError(t, err)
	require.Equal(t, c, saved)

	list, err := rr.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Credential{c}, list)

	c.Password = "secret2"
	updated, err := rr.Update(ctx, c)
	require.NoError(t, err)
	require.Equal(t, "secret2", updated.Password)

	_, err = rr.Update(ctx, model.Credential{ID: uuid.New()})
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, rr.Delete(ctx, c.ID))
	require.ErrorIs(t, rr.Delete(ctx, c.ID), model.ErrNotFound)

	list, err = rr.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCredentialRepository_CreateWithoutIDUsesStoreDefault(t *testing.T) {
	ctx := context.Background()
	rr := openRepository(t)

	saved, err := rr.Create(ctx, model.Credential{Site: "a", Username: "b", Password: "c"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
}

func TestCredentialRepository_Restore(t *testing.T) {
	ctx := context.Background()
	rr := openRepository(t)

	existing, err := rr.Create(ctx, model.Credential{ID: uuid.New(), Site: "old", Username: "u", Password: "p"})
	require.NoError(t, err)

	snapshot := []model.Credential{
		{ID: existing.ID, Site: "new", Username: "u", Password: "p2"},
		{ID: uuid.New(), Site: "other", Username: "v", Password: "q"},
	}
	n, err := rr.Restore(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := rr.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, snapshot, list)
}
