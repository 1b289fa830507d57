package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSecurityLayer struct {
	mock.Mock
}

func (m *MockSecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	args := m.Called(protocol, addr)
	ln, _ := args.Get(0).(net.Listener)
	return ln, args.Error(1)
}

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":4000", time.Second, time.Second)
	assert.Equal(t, ":4000", s.Address())
}

func TestHTTPServer_StartServesAndStops(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	sl := &MockSecurityLayer{}
	sl.On("Listen", "tcp", ":0").Return(ln, nil)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
	s := NewHTTPServer(handler, ":0", time.Second, time.Second)

	done := make(chan error, 1)
	go func() { done <- s.Start(sl) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "pong", string(body))

	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, <-done)
	sl.AssertExpectations(t)
}

func TestHTTPServer_StartListenError(t *testing.T) {
	sl := &MockSecurityLayer{}
	sl.On("Listen", "tcp", ":1").Return(nil, errors.New("address in use"))

	err := NewHTTPServer(http.NotFoundHandler(), ":1", time.Second, time.Second).Start(sl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
