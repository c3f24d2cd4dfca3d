package engine

import (
	"context"
	"sync"

	"github.com/thenoetrevino/dragboard/internal/reconcile"
)

// Runner performs engine requests in the background for callers without
// their own event loop (CLI commands, tests). The goroutine that calls
// Engine methods must also be the one calling Drain, which settles results.
type Runner struct {
	engine  *Engine
	ctx     context.Context
	cancel  context.CancelFunc
	results chan reconcile.Result

	wg      sync.WaitGroup
	pending int
	closed  bool
}

// NewRunner creates a runner whose requests are bounded by ctx
func NewRunner(ctx context.Context, e *Engine) *Runner {
	ctx, cancel := context.WithCancel(ctx)
	return &Runner{
		engine:  e,
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan reconcile.Result),
	}
}

// Go starts req in the background. A nil request is ignored.
func (r *Runner) Go(req *reconcile.Request) {
	if req == nil || r.closed {
		return
	}
	r.pending++
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.results <- req.Do(r.ctx)
	}()
}

// Pending returns the number of started requests not yet settled
func (r *Runner) Pending() int {
	return r.pending
}

// Drain settles results until every started request has been settled or
// ctx is done. It returns the settled results in completion order.
func (r *Runner) Drain(ctx context.Context) ([]reconcile.Result, error) {
	var settled []reconcile.Result
	for r.pending > 0 {
		select {
		case res := <-r.results:
			r.pending--
			settled = append(settled, r.engine.Settle(res))
		case <-ctx.Done():
			return settled, ctx.Err()
		}
	}
	return settled, nil
}

// Close cancels the runner's in-flight requests, waits for their goroutines
// and settles what they return. The engine and its board stay loaded; use
// Engine.Close to unload them.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.cancel()
	go func() {
		r.wg.Wait()
		close(r.results)
	}()
	for res := range r.results {
		r.pending--
		r.engine.Settle(res)
	}
}
