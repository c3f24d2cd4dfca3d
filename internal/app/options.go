package app

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	httpClient *http.Client
	newID      func() string
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithRegisterer registers the sync metrics with reg
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(cfg *appConfig) {
		cfg.registerer = reg
	}
}

// WithHTTPClient replaces the HTTP client used to reach the board API
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *appConfig) {
		cfg.httpClient = hc
	}
}

// WithIDGenerator sets how placeholder ids are generated
func WithIDGenerator(fn func() string) Option {
	return func(cfg *appConfig) {
		cfg.newID = fn
	}
}
