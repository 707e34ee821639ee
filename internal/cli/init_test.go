package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"datesheet/internal/config"
	applog "datesheet/internal/log"
)

type fakeServer struct {
	listenErr error
	stopped   chan struct{}
	shutdowns int
}

func newFakeServer(listenErr error) *fakeServer {
	return &fakeServer{listenErr: listenErr, stopped: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdowns++
	if f.listenErr == nil {
		close(f.stopped)
	}
	return nil
}

func quietLogger() *applog.Logger {
	return applog.New(applog.Config{Level: slog.LevelError, Output: &bytes.Buffer{}})
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := newFakeServer(nil)

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, quietLogger(), srv, time.Second) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
	if srv.shutdowns != 1 {
		t.Fatalf("shutdowns = %d, want 1", srv.shutdowns)
	}
}

func TestServeReturnsListenError(t *testing.T) {
	boom := errors.New("address already in use")
	err := Serve(context.Background(), quietLogger(), newFakeServer(boom), time.Second)
	if !errors.Is(err, boom) {
		t.Fatalf("Serve error = %v, want %v", err, boom)
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{LogLevel: "warn", LogFormat: "json"}
	logger := SetupLogger(cfg, &buf, applog.ComponentCLI)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, `"component":"cli"`) {
		t.Fatalf("component missing from %q", out)
	}
}
