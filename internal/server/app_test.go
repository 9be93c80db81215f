package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/logging"
	"github.com/dmitrijs2005/foodlog/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.RecordBackend = config.RecordBackendSQLite
	c.SQLitePath = filepath.Join(dir, "foodlog.db")
	c.ObjectBackend = config.ObjectBackendLocal
	c.LocalStorageRoot = filepath.Join(dir, "storage")
	c.PublicBaseURL = "http://127.0.0.1:8080/files"
	return c
}

func TestNewApp_LocalBackends(t *testing.T) {
	app, err := newApp(context.Background(), localConfig(t), logging.Nop{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestNewApp_RejectsUnknownPolicy(t *testing.T) {
	c := localConfig(t)
	c.UploadFailurePolicy = "retry"

	_, err := newApp(context.Background(), c, logging.Nop{})
	assert.Error(t, err)
}

func TestNewApp_RejectsUnknownBackend(t *testing.T) {
	c := localConfig(t)
	c.RecordBackend = "mysql"

	_, err := newApp(context.Background(), c, logging.Nop{})
	assert.Error(t, err)
}
