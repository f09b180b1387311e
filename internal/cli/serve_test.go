package cli

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/emiliopalmerini/timedash/internal/config"
)

func withDiscardLogger(t *testing.T) {
	t.Helper()
	prev := logger
	logger = log.New(io.Discard)
	t.Cleanup(func() { logger = prev })
}

func startServe(t *testing.T, c *config.Config) (*AppContext, context.CancelFunc, <-chan error) {
	t.Helper()
	withDiscardLogger(t)

	app, err := NewAppContext(context.Background(), c, logger)
	if err != nil {
		t.Fatalf("NewAppContext: %v", err)
	}
	t.Cleanup(func() { _ = app.Close(context.Background()) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveDashboard(ctx, app, 0) }()
	return app, cancel, done
}

func waitServe(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop after cancel")
		return nil
	}
}

func TestServeDashboard_LoadsAndStopsOnCancel(t *testing.T) {
	app, cancel, done := startServe(t, &config.Config{Source: config.SourceEmbedded})

	deadline := time.Now().Add(5 * time.Second)
	for !app.Dashboard.Snapshot().Loaded {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("dataset was not loaded while serving")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := waitServe(t, done); err != nil {
		t.Errorf("serveDashboard() = %v, want nil after cancel", err)
	}
}

func TestServeDashboard_FailedLoadKeepsServing(t *testing.T) {
	c := &config.Config{Source: config.SourceFile, DataFile: "does-not-exist.json"}
	_, cancel, done := startServe(t, c)

	select {
	case err := <-done:
		cancel()
		t.Fatalf("serveDashboard stopped early: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	if err := waitServe(t, done); err != nil {
		t.Errorf("serveDashboard() = %v, want clean exit", err)
	}
}
