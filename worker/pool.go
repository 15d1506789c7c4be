// Package worker runs generation jobs under a global admission limit and
// a per-job timeout.
//
// A [Pool] hands admitted jobs to a [Runner]. [InProcess] renders in the
// calling process with a per-job pen and canvas; [Subprocess] runs every
// job in its own OS process and exchanges parameters and results through
// uniquely named temporary files.
package worker

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/gogpu/motif"
	"github.com/gogpu/motif/internal/cache"
)

// ErrNotAdmitted is returned when a caller gives up before a slot frees.
var ErrNotAdmitted = errors.New("worker: job not admitted")

// Runner renders one job.
type Runner interface {
	Run(ctx context.Context, p motif.Params) (*image.NRGBA, error)
}

// Pool bounds the number of concurrently running jobs.
// It is safe for concurrent use.
type Pool struct {
	runner  Runner
	sem     *semaphore.Weighted
	limit   int
	timeout time.Duration
	running atomic.Int64
	results *cache.LRU[motif.Params, *image.NRGBA] // nil when disabled
}

// NewPool creates a pool that runs jobs with r.
func NewPool(r Runner, opts ...Option) (*Pool, error) {
	if r == nil {
		return nil, fmt.Errorf("runner is required")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Pool{
		runner:  r,
		sem:     semaphore.NewWeighted(int64(o.maxConcurrent)),
		limit:   o.maxConcurrent,
		timeout: o.timeout,
	}
	if o.cacheEntries > 0 {
		p.results = cache.New[motif.Params, *image.NRGBA](o.cacheEntries)
	}
	return p, nil
}

// Limit returns the maximum number of concurrent jobs.
func (p *Pool) Limit() int { return p.limit }

// Timeout returns the per-job timeout.
func (p *Pool) Timeout() time.Duration { return p.timeout }

// Running returns the number of jobs currently holding a slot.
func (p *Pool) Running() int { return int(p.running.Load()) }

// CacheStats returns the result cache counters; all zero when the cache
// is disabled.
func (p *Pool) CacheStats() cache.Stats {
	if p.results == nil {
		return cache.Stats{}
	}
	return p.results.Stats()
}

type result struct {
	img *image.NRGBA
	err error
}

// Generate waits for a free slot, then runs params with a hard timeout.
//
// If ctx ends before admission, Generate returns ErrNotAdmitted. If the
// job fails or exceeds the timeout, the error wraps motif.ErrGenerationFailed.
// A slot is released only once the runner has returned, so a job that is
// abandoned after a timeout still counts against the limit until it stops.
//
// With WithCache, repeated params are answered from memory without
// taking a slot. The returned image is always a private copy.
func (p *Pool) Generate(ctx context.Context, params motif.Params) (*image.NRGBA, error) {
	id := uuid.NewString()
	log := motif.Logger().With("job", id, "mode", params.Mode)

	if p.results != nil {
		if img, ok := p.results.Get(params); ok {
			log.Debug("worker: cache hit")
			return imaging.Clone(img), nil
		}
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		log.Warn("worker: job not admitted", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrNotAdmitted, err)
	}
	p.running.Add(1)
	start := time.Now()
	log.Info("worker: job admitted", "running", p.Running())

	jobCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		defer p.sem.Release(1)
		defer p.running.Add(-1)
		img, err := p.runner.Run(jobCtx, params)
		done <- result{img: img, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			log.Warn("worker: job failed", "err", r.err, "elapsed", time.Since(start))
			if errors.Is(r.err, motif.ErrInvalidParameters) || errors.Is(r.err, motif.ErrGenerationFailed) {
				return nil, r.err
			}
			return nil, fmt.Errorf("%w: %w", motif.ErrGenerationFailed, r.err)
		}
		log.Info("worker: job finished", "elapsed", time.Since(start))
		if p.results != nil {
			p.results.Put(params, imaging.Clone(r.img))
		}
		return r.img, nil

	case <-jobCtx.Done():
		err := jobCtx.Err()
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			log.Warn("worker: job timed out", "timeout", p.timeout)
			return nil, fmt.Errorf("%w: timed out after %s", motif.ErrGenerationFailed, p.timeout)
		}
		log.Warn("worker: job canceled", "err", err)
		return nil, fmt.Errorf("%w: %w", motif.ErrGenerationFailed, err)
	}
}
