package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// Environment variables read by the daemon
const (
	EnvAddr      = "BOARDD_ADDR"
	EnvDB        = "BOARDD_DB"
	EnvJWTSecret = "BOARDD_JWT_SECRET"
)

// ErrNoSecret indicates that no token signing secret was configured
var ErrNoSecret = errors.New("no signing secret")

const (
	defaultAddr     = "127.0.0.1:8080"
	shutdownTimeout = 5 * time.Second
)

// DaemonConfig configures a boardd process
type DaemonConfig struct {
	Addr   string
	DBPath string
	Secret string
}

// DaemonConfigFromEnv reads the daemon configuration from the environment
func DaemonConfigFromEnv() (DaemonConfig, error) {
	cfg := DaemonConfig{
		Addr:   os.Getenv(EnvAddr),
		DBPath: os.Getenv(EnvDB),
		Secret: os.Getenv(EnvJWTSecret),
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.DBPath == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return cfg, err
		}
		cfg.DBPath = path
	}
	if cfg.Secret == "" {
		return cfg, fmt.Errorf("%s must be set: %w", EnvJWTSecret, ErrNoSecret)
	}
	return cfg, nil
}

// Run serves the board API until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, cfg DaemonConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	auth, err := NewAuth(cfg.Secret)
	if err != nil {
		return err
	}

	db, err := OpenDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeDB(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := NewServer(NewRepository(db), auth, logger, reg)
	logger.Info("boardd starting", "addr", cfg.Addr, "db", cfg.DBPath, "pid", os.Getpid())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(cfg.Addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("boardd shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
