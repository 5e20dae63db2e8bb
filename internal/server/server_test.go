package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/handler"
	handlerhttp "github.com/MKhiriev/go-notes-keeper/internal/handler/http"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestHandlers() *handler.Handlers {
	return &handler.Handlers{
		HTTP: handlerhttp.NewHandler(&service.Services{}, nil, nil, models.NewAppBuildInfo("", "", ""), logger.Nop()),
	}
}

func TestNewServer_NoServers(t *testing.T) {
	tests := []struct {
		name     string
		handlers *handler.Handlers
		cfg      config.Server
	}{
		{name: "nil handlers", handlers: nil, cfg: config.Server{HTTPAddress: "127.0.0.1:0"}},
		{name: "no http handler", handlers: &handler.Handlers{}, cfg: config.Server{HTTPAddress: "127.0.0.1:0"}},
		{name: "no address", handlers: newTestHandlers(), cfg: config.Server{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewServer(tt.handlers, tt.cfg, logger.Nop())
			assert.ErrorIs(t, err, errNoServersAreCreated)
		})
	}
}

func TestNewServer_DefaultShutdownTimeout(t *testing.T) {
	s, err := NewServer(newTestHandlers(), config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, defaultShutdownTimeout, s.(*server).shutdownTimeout)
}

func TestServer_Run_ServesUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s, err := NewServer(newTestHandlers(), config.Server{
		HTTPAddress:     "127.0.0.1:0",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	srv := s.(*server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return srv.httpServer.addr() != "" }, 2*time.Second, 10*time.Millisecond)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + srv.httpServer.addr() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Hello World"}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_Run_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	s, err := NewServer(newTestHandlers(), config.Server{HTTPAddress: ln.Addr().String()}, logger.Nop())
	require.NoError(t, err)

	err = s.Run(context.Background())

	assert.Error(t, err)
}

func TestHTTPServer_RunServer_WithoutListen(t *testing.T) {
	h := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())

	assert.ErrorIs(t, h.RunServer(), errNotListening)
	assert.Empty(t, h.addr())
}
