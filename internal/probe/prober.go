// Package probe checks whether candidate asset URLs exist in the remote
// catalog.
//
// Each candidate gets one HEAD request bounded by its own timeout. A 200
// response is a hit; timeouts and transport failures are logged and skipped;
// any other status is a miss. There are no retries.
//
// Probing is sequential by default. With WithConcurrency(n > 1) up to n
// checks run at once through an errgroup, and results are merged by
// candidate index: the lowest-index hit wins no matter which response
// arrives first.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmr-tortoise/emojimix/internal/model"
)

const (
	// DefaultTimeout bounds a single existence check.
	DefaultTimeout = 5 * time.Second

	// DefaultUserAgent is sent with every check.
	DefaultUserAgent = "emojimix/1.0 (+https://github.com/mmr-tortoise/emojimix)"

	// maxDrain caps how much of an unexpected response body is read before
	// closing, so keep-alive connections can be reused.
	maxDrain = 4 << 10
)

// Doer is the subset of *http.Client used by the prober.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// outcome is the classified result of one existence check.
type outcome int

const (
	outcomePending outcome = iota
	outcomeHit
	outcomeMiss
	outcomeFailed
	outcomeCanceled
)

// Prober issues existence checks. It holds no per-request state and is
// safe for concurrent use.
type Prober struct {
	client      Doer
	timeout     time.Duration
	overall     time.Duration
	concurrency int
	userAgent   string
	logger      *zap.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout sets the per-check timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithOverallDeadline bounds a whole Probe call. Zero means no overall
// deadline beyond the sum of per-check timeouts.
func WithOverallDeadline(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.overall = d
		}
	}
}

// WithConcurrency sets how many checks may run at once. Values below 2
// select sequential probing.
func WithConcurrency(n int) Option {
	return func(p *Prober) {
		if n < 1 {
			n = 1
		}
		p.concurrency = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(p *Prober) {
		if ua != "" {
			p.userAgent = ua
		}
	}
}

// WithLogger sets the logger. A nil logger is replaced with a no-op one.
func WithLogger(l *zap.Logger) Option {
	return func(p *Prober) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Prober that sends requests through client.
// A nil client falls back to http.DefaultClient.
func New(client Doer, opts ...Option) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	p := &Prober{
		client:      client,
		timeout:     DefaultTimeout,
		concurrency: 1,
		userAgent:   DefaultUserAgent,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("probe")
	return p
}

// Timeout returns the per-check timeout.
func (p *Prober) Timeout() time.Duration {
	return p.timeout
}

// Concurrency returns the configured worker limit.
func (p *Prober) Concurrency() int {
	return p.concurrency
}

// Probe returns the first candidate, in slice order, whose URL answers 200.
// The boolean is false when every candidate missed or failed, or when ctx
// was cancelled before an in-order answer was known.
func (p *Prober) Probe(ctx context.Context, candidates []model.CandidateURL) (model.CandidateURL, bool) {
	if len(candidates) == 0 {
		return model.CandidateURL{}, false
	}

	if p.overall > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.overall)
		defer cancel()
	}

	var (
		hit   model.CandidateURL
		found bool
	)
	if p.concurrency > 1 && len(candidates) > 1 {
		hit, found = p.probeConcurrent(ctx, candidates)
	} else {
		hit, found = p.probeSequential(ctx, candidates)
	}

	if !found {
		p.logger.Info("no candidate matched", zap.Int("candidates", len(candidates)))
	}
	return hit, found
}

// Check performs a single existence check. It returns true for a 200
// response. Timeouts and transport failures come back as
// *model.ProbeTransientError; cancellation of ctx is returned as ctx.Err().
func (p *Prober) Check(ctx context.Context, url string) (bool, error) {
	status, err := p.head(ctx, url)
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

func (p *Prober) probeSequential(ctx context.Context, candidates []model.CandidateURL) (model.CandidateURL, bool) {
	for i, c := range candidates {
		if ctx.Err() != nil {
			p.logger.Debug("probing abandoned", zap.Error(ctx.Err()), zap.Int("remaining", len(candidates)-i))
			return model.CandidateURL{}, false
		}
		if p.checkCandidate(ctx, i, c) == outcomeHit {
			return c, true
		}
	}
	return model.CandidateURL{}, false
}

func (p *Prober) probeConcurrent(parent context.Context, candidates []model.CandidateURL) (model.CandidateURL, bool) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	n := len(candidates)
	outcomes := make([]outcome, n)
	best := n

	var mu sync.Mutex

	// settled reports whether every candidate below best has a final
	// negative answer, which makes best the in-order winner.
	settled := func() bool {
		if best == n {
			return false
		}
		for i := 0; i < best; i++ {
			if outcomes[i] == outcomePending || outcomes[i] == outcomeCanceled {
				return false
			}
		}
		return true
	}

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i := range candidates {
		mu.Lock()
		stop := best < i
		mu.Unlock()
		if stop || ctx.Err() != nil {
			break
		}

		i := i
		g.Go(func() error {
			mu.Lock()
			skip := best < i
			mu.Unlock()
			if skip {
				return nil
			}

			result := p.checkCandidate(ctx, i, candidates[i])

			mu.Lock()
			defer mu.Unlock()
			outcomes[i] = result
			if result == outcomeHit && i < best {
				best = i
			}
			if settled() {
				cancel()
			}
			return nil
		})
	}
	_ = g.Wait()

	if parent.Err() != nil || !settled() {
		return model.CandidateURL{}, false
	}
	return candidates[best], true
}

// checkCandidate runs one check and logs it according to the outcome.
// A panic in the client counts as a failed check. Concurrent checks run on
// errgroup goroutines, where the caller's recover cannot reach them.
func (p *Prober) checkCandidate(ctx context.Context, index int, c model.CandidateURL) (result outcome) {
	log := p.logger.With(zap.Int("index", index), zap.String("url", c.URL))
	log.Debug("checking candidate")

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("probe panicked", zap.String("panic", fmt.Sprint(rec)), zap.Stack("stack"))
			result = outcomeFailed
		}
	}()

	status, err := p.head(ctx, c.URL)
	if err != nil {
		var transient *model.ProbeTransientError
		switch {
		case errors.As(err, &transient) && transient.Timeout:
			log.Warn("probe timed out", zap.Duration("timeout", p.timeout))
			return outcomeFailed
		case errors.As(err, &transient):
			log.Warn("probe failed", zap.Error(transient.Err))
			return outcomeFailed
		default:
			log.Debug("probe cancelled", zap.Error(err))
			return outcomeCanceled
		}
	}

	if status == http.StatusOK {
		log.Info("candidate found")
		return outcomeHit
	}
	log.Debug("candidate missing", zap.Int("status", status))
	return outcomeMiss
}

// head sends one HEAD request under its own timeout and returns the status.
func (p *Prober) head(ctx context.Context, url string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, url, nil)
	if err != nil {
		return 0, &model.ProbeTransientError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		// The caller gave up: not a property of this candidate.
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, &model.ProbeTransientError{URL: url, Timeout: isTimeout(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
	return resp.StatusCode, nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
