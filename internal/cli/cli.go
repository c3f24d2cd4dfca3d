package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/dragboard/internal/app"
	"github.com/thenoetrevino/dragboard/internal/config"
)

type contextKey string

const appKey contextKey = "app"

// CLI represents the CLI application context
type CLI struct {
	App *app.App
	ctx context.Context
	// borrowed apps were injected by the caller, who closes them
	borrowed bool
}

// WithApp returns a context carrying a prebuilt application container.
// Commands executed with it use the container instead of loading config.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// NewCLI initializes the CLI from the user's config file
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	application, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return &CLI{App: application, ctx: ctx}, nil
}

// GetCLIFromContext returns the CLI for a command context, reusing an
// injected app when present
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a, ctx: ctx, borrowed: true}, nil
	}
	return NewCLI(ctx)
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.borrowed {
		return nil
	}
	return c.App.Close()
}
