package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dragboard/internal/config"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
)

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.API.BaseURL = "http://boards.test/"
	cfg.API.Token = "secret"

	reg := prometheus.NewRegistry()
	app, err := New(cfg, WithRegisterer(reg))
	require.NoError(t, err)
	require.NotNil(t, app.Engine)

	assert.True(t, app.Client.HasCredential())
	assert.Equal(t, "http://boards.test", app.Client.BaseURL())

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNew_TokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))

	cfg := config.Default()
	cfg.API.TokenFile = path

	app, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, app.Client.HasCredential())
}

func TestNew_MissingTokenFile(t *testing.T) {
	cfg := config.Default()
	cfg.API.TokenFile = filepath.Join(t.TempDir(), "missing")

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_NoCredential(t *testing.T) {
	app, err := New(nil)
	require.NoError(t, err)
	assert.False(t, app.Client.HasCredential())
	assert.NoError(t, app.Close())
}

func TestPolicyFromConfig(t *testing.T) {
	zero := 0
	p := PolicyFromConfig(config.SyncConfig{
		Timeout:        3 * time.Second,
		MaxRetries:     &zero,
		RetryBaseDelay: 50 * time.Millisecond,
	})
	assert.Equal(t, 3*time.Second, p.Timeout)
	assert.Equal(t, 0, p.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, p.RetryBaseDelay)
	assert.NotNil(t, p.Retryable)

	def := PolicyFromConfig(config.SyncConfig{})
	assert.Equal(t, reconcile.DefaultPolicy().Timeout, def.Timeout)
	assert.Equal(t, config.DefaultMaxRetries, def.MaxRetries)
}
