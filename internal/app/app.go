package app

import (
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/dragboard/internal/config"
	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/remote"
)

// App holds the client-side services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config
	Client *remote.Client
	Engine *engine.Engine
}

// New creates a new App from cfg. A missing credential is not an error:
// the engine then works locally and skips persistence.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	ac := &appConfig{}
	for _, opt := range opts {
		opt(ac)
	}
	if ac.logger == nil {
		ac.logger = slog.Default()
	}

	token, err := cfg.ResolveToken()
	if err != nil {
		return nil, fmt.Errorf("resolve credential: %w", err)
	}
	if token == "" {
		ac.logger.Warn("no API credential configured; changes will not be saved")
	}

	var clientOpts []remote.Option
	if ac.httpClient != nil {
		clientOpts = append(clientOpts, remote.WithHTTPClient(ac.httpClient))
	}
	client := remote.NewClient(cfg.API.BaseURL, token, clientOpts...)

	engineOpts := []engine.Option{
		engine.WithLogger(ac.logger),
		engine.WithPolicy(PolicyFromConfig(cfg.Sync)),
		engine.WithMetrics(reconcile.NewMetrics(ac.registerer)),
	}
	if ac.newID != nil {
		engineOpts = append(engineOpts, engine.WithIDGenerator(ac.newID))
	}

	return &App{
		Config: cfg,
		Client: client,
		Engine: engine.New(client, engineOpts...),
	}, nil
}

// PolicyFromConfig converts the sync settings into a reconciler policy
func PolicyFromConfig(s config.SyncConfig) reconcile.Policy {
	p := reconcile.DefaultPolicy()
	if s.Timeout > 0 {
		p.Timeout = s.Timeout
	}
	if s.RetryBaseDelay > 0 {
		p.RetryBaseDelay = s.RetryBaseDelay
	}
	p.MaxRetries = max(s.Retries(), 0)
	return p
}

// Close aborts in-flight requests and unloads the board
func (a *App) Close() error {
	a.Engine.Close()
	return nil
}
