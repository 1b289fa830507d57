package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   map[string]string
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *recordedRequest) {
	t.Helper()

	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		rec.body = nil
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestClient_List(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[{"id":"1","site":"example.com","username":"alice","password":"secret1"}]`)

	got, err := New(srv.URL+"/").List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Credential{{ID: "1", Site: "example.com", Username: "alice", Password: "secret1"}}, got)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/", rec.path)
	assert.Empty(t, rec.auth)
}

func TestClient_CreateDropsID(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"id":"new","site":"s","username":"u","password":"p"}`)

	got, err := New(srv.URL).Create(context.Background(), Credential{ID: "stale", Site: "s", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.NotContains(t, rec.body, "id")
	assert.Equal(t, "s", rec.body["site"])
}

func TestClient_UpdateAndDelete(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"id":"1","site":"s","username":"u","password":"p2"}`)
	c := New(srv.URL, WithToken("tok"))

	_, err := c.Update(context.Background(), Credential{ID: "1", Site: "s", Username: "u", Password: "p2"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "1", rec.body["id"])
	assert.Equal(t, "Bearer tok", rec.auth)

	require.NoError(t, c.Delete(context.Background(), "1"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, map[string]string{"id": "1"}, rec.body)
}

func TestClient_OpenSessionStoresToken(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"token":"abc","expires_at":"2026-10-18T10:00:00Z"}`)
	c := New(srv.URL)

	s, err := c.OpenSession(context.Background(), "627426")
	require.NoError(t, err)
	assert.Equal(t, "abc", s.Token)
	assert.Equal(t, "abc", c.Token())
	assert.Equal(t, "/session", rec.path)
	assert.Equal(t, "627426", rec.body["pin"])
}

func TestClient_BackupAndRestore(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"key":"backups/a.json","count":2}`)
	c := New(srv.URL)

	b, err := c.Backup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Backup{Key: "backups/a.json", Count: 2}, b)
	assert.Equal(t, "/backups", rec.path)

	n, err := c.Restore(context.Background(), "backups/a.json")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "/backups/restore", rec.path)
	assert.Equal(t, "backups/a.json", rec.body["key"])
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind error
		wantMsg  string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"error":"Not found"}`, wantKind: ErrNotFound, wantMsg: "Not found"},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"Invalid id"}`, wantKind: ErrBadRequest, wantMsg: "Invalid id"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"Missing authorization token"}`, wantKind: ErrUnauthorized, wantMsg: "Missing authorization token"},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"Failed to delete"}`, wantMsg: "Failed to delete"},
		{name: "non json body", status: http.StatusBadGateway, body: `<html>`, wantMsg: "status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)

			err := New(srv.URL).Delete(context.Background(), "1")
			require.Error(t, err)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
			}
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
