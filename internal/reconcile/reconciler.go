package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/dragboard/internal/board"
	"github.com/thenoetrevino/dragboard/internal/remote"
)

// Default request policy
const (
	DefaultTimeout        = 10 * time.Second
	DefaultMaxRetries     = 2
	DefaultRetryBaseDelay = 200 * time.Millisecond
)

// Credentials reports whether requests may be sent at all.
// *remote.Client satisfies it.
type Credentials interface {
	HasCredential() bool
}

// Policy bounds every request
type Policy struct {
	// Timeout is the deadline of a single attempt. Expiry counts as a failure.
	Timeout time.Duration
	// MaxRetries is the number of attempts after the first for transient failures
	MaxRetries int
	// RetryBaseDelay is the first backoff delay; it doubles on every retry
	RetryBaseDelay time.Duration
	// Retryable classifies errors as transient
	Retryable func(error) bool
}

// DefaultPolicy returns the default request policy
func DefaultPolicy() Policy {
	return Policy{
		Timeout:        DefaultTimeout,
		MaxRetries:     DefaultMaxRetries,
		RetryBaseDelay: DefaultRetryBaseDelay,
		Retryable:      remote.IsRetryable,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.Timeout <= 0 {
		p.Timeout = d.Timeout
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.RetryBaseDelay <= 0 {
		p.RetryBaseDelay = d.RetryBaseDelay
	}
	if p.Retryable == nil {
		p.Retryable = d.Retryable
	}
	return p
}

// Option configures a Reconciler
type Option func(*Reconciler)

// WithPolicy sets the request policy
func WithPolicy(p Policy) Option {
	return func(r *Reconciler) { r.policy = p.withDefaults() }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *Metrics) Option {
	return func(r *Reconciler) { r.metrics = m }
}

// entry is the sync state of one key with an unconfirmed mutation
type entry struct {
	generation uint64
	cancel     context.CancelFunc
	// baseline restores the last confirmed state. It is the undo of the first
	// unconfirmed mutation and survives until a request for the key resolves.
	baseline Patch
}

// Reconciler tracks unconfirmed mutations per key. Submit and Settle are
// called from the loop that owns the store; Request.Do may run anywhere.
type Reconciler struct {
	store   *board.Store
	creds   Credentials
	policy  Policy
	logger  *slog.Logger
	metrics *Metrics

	mu      sync.Mutex
	entries map[Key]*entry
}

// New creates a reconciler applying settlements to store
func New(store *board.Store, creds Credentials, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:   store,
		creds:   creds,
		policy:  DefaultPolicy(),
		logger:  slog.Default(),
		entries: make(map[Key]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submit registers a mutation that has already been applied to the store and
// returns the request that persists it. Any in-flight request for the same
// key is cancelled and its result will settle as Superseded.
func (r *Reconciler) Submit(m Mutation) *Request {
	if r.creds == nil || !r.creds.HasCredential() {
		r.logger.Debug("no credential, keeping mutation local", "op", m.Op, "key", m.Key.String())
		return &Request{key: m.Key, op: m.Op, skipped: true, logger: r.logger}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[m.Key]
	if ok {
		e.cancel()
		r.logger.Debug("superseding in-flight request", "op", m.Op, "key", m.Key.String(), "generation", e.generation)
	} else {
		e = &entry{baseline: m.Undo}
		r.entries[m.Key] = e
	}
	e.generation++

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	r.metrics.setInFlight(len(r.entries))

	return &Request{
		key:        m.Key,
		op:         m.Op,
		generation: e.generation,
		call:       m.Call,
		policy:     r.policy,
		superseded: ctx,
		logger:     r.logger,
		metrics:    r.metrics,
	}
}

// Settle applies a request's result to the store as one atomic update and
// returns the effective result together with the resulting snapshot. A
// result whose generation is no longer current is reported as Superseded
// and changes nothing.
func (r *Reconciler) Settle(res Result) (Result, *board.Snapshot) {
	if res.Outcome == Skipped {
		r.metrics.observeResult(res.Op, Skipped)
		return res, r.store.Snapshot()
	}

	r.mu.Lock()
	e, ok := r.entries[res.Key]
	if !ok || e.generation != res.Generation {
		r.mu.Unlock()
		res.Outcome = Superseded
		r.metrics.observeResult(res.Op, Superseded)
		r.logger.Debug("ignoring stale result", "op", res.Op, "key", res.Key.String(), "generation", res.Generation)
		return res, r.store.Snapshot()
	}
	if res.Outcome == Superseded {
		// cancelled without a newer generation taking over, e.g. shutdown
		r.mu.Unlock()
		r.metrics.observeResult(res.Op, Superseded)
		return res, r.store.Snapshot()
	}

	delete(r.entries, res.Key)
	e.cancel()
	baseline := e.baseline
	r.metrics.setInFlight(len(r.entries))
	r.mu.Unlock()

	r.metrics.observeResult(res.Op, res.Outcome)

	switch res.Outcome {
	case Confirmed:
		if res.confirm == nil {
			return res, r.store.Snapshot()
		}
		snap, err := r.store.Update(res.Op+"_confirm", res.confirm)
		if err != nil {
			r.logger.Warn("could not apply confirmed entity", "op", res.Op, "key", res.Key.String(), "error", err)
		}
		return res, snap

	case Failed:
		r.logger.Error("persistence failed, rolling back",
			"op", res.Op,
			"key", res.Key.String(),
			"attempts", res.Attempts,
			"error", res.Err)
		if baseline == nil {
			return res, r.store.Snapshot()
		}
		r.metrics.observeRollback(res.Op)
		snap, err := r.store.Update(res.Op+"_rollback", baseline)
		if err != nil {
			r.logger.Warn("rollback could not be applied", "op", res.Op, "key", res.Key.String(), "error", err)
		}
		return res, snap
	}

	return res, r.store.Snapshot()
}

// InFlight reports whether key has an unconfirmed mutation
func (r *Reconciler) InFlight(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[key]
	return ok
}

// Pending returns the number of keys with an unconfirmed mutation
func (r *Reconciler) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// CancelAll aborts every in-flight request and forgets all unconfirmed
// state. Results that arrive afterwards settle as Superseded.
func (r *Reconciler) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.entries {
		e.cancel()
		delete(r.entries, key)
	}
	r.metrics.setInFlight(0)
}

// Request is one persistence call. Do performs it with the reconciler's
// timeout and retry policy and never touches the store.
type Request struct {
	key        Key
	op         string
	generation uint64
	skipped    bool

	call       Call
	policy     Policy
	superseded context.Context
	logger     *slog.Logger
	metrics    *Metrics
}

// Key returns the key the request persists
func (q *Request) Key() Key { return q.key }

// Op returns the operation name
func (q *Request) Op() string { return q.op }

// Do performs the request. It blocks until the call succeeds, fails for
// good, is superseded or ctx is done.
func (q *Request) Do(ctx context.Context) Result {
	res := Result{Key: q.key, Op: q.op, Generation: q.generation}
	if q.skipped {
		res.Outcome = Skipped
		return res
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(q.superseded, cancel)
	defer stop()

	start := time.Now()
	defer func() { q.metrics.observeLatency(q.op, time.Since(start).Seconds()) }()

	delay := q.policy.RetryBaseDelay
	for attempt := 0; ; attempt++ {
		res.Attempts = attempt + 1

		attemptCtx, cancelAttempt := context.WithTimeout(ctx, q.policy.Timeout)
		confirm, err := q.call(attemptCtx)
		cancelAttempt()

		if err == nil {
			if attempt > 0 {
				q.logger.Debug("request succeeded after retry", "op", q.op, "key", q.key.String(), "attempt", attempt+1)
			}
			res.Outcome = Confirmed
			res.confirm = confirm
			return res
		}
		res.Err = err

		if q.superseded.Err() != nil {
			res.Outcome = Superseded
			return res
		}
		if ctx.Err() != nil || attempt >= q.policy.MaxRetries || !q.policy.Retryable(err) {
			res.Outcome = Failed
			return res
		}

		q.metrics.observeRetry(q.op)
		q.logger.Debug("request failed, retrying",
			"op", q.op,
			"key", q.key.String(),
			"attempt", attempt+1,
			"max_retries", q.policy.MaxRetries,
			"retry_delay", delay,
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			if q.superseded.Err() != nil {
				res.Outcome = Superseded
			} else {
				res.Outcome = Failed
				res.Err = errors.Join(err, ctx.Err())
			}
			return res
		}
		delay *= 2
	}
}
