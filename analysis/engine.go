// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package analysis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"runtime"
	"time"

	"github.com/siemens/hardig/types"

	"github.com/gammazero/workerpool"
	"github.com/oschwald/geoip2-golang"
)

// ErrNilCapability signals that an Engine was to be created without one of
// its capabilities.
var ErrNilCapability = errors.New("missing analysis capability")

// Resolver resolves a DNS name into its IP addresses. Resolvers must be safe
// for concurrent use.
type Resolver interface {
	Resolve(ctx context.Context, name string) ([]net.IP, error)
}

// Prober measures the round-trip time to an IP address. Probers must be safe
// for concurrent use.
type Prober interface {
	Probe(ctx context.Context, addr net.IP) (time.Duration, error)
}

// Locator looks up the geographic location of an IP address. Locators must
// be safe for concurrent use; a *geoip2.Reader is a Locator.
type Locator interface {
	City(ip net.IP) (*geoip2.City, error)
}

// Engine analyses lists of domains using a goroutine-limited worker pool.
// Each domain is resolved, its first address probed, and all its addresses
// located.
type Engine struct {
	resolver Resolver
	prober   Prober
	locator  Locator
	workers  int                // maximum number of domains analysed in parallel.
	news     func(types.Record) // optional notification of finished records.
}

// Option can be passed to New when creating new Engine objects.
type Option func(*Engine)

// New returns a new analysis [Engine] using the specified capabilities, which
// are shared between all workers. The number of workers defaults to the
// number of CPUs; use [WithWorkers] to change this.
func New(resolver Resolver, prober Prober, locator Locator, options ...Option) (*Engine, error) {
	switch {
	case resolver == nil:
		return nil, fmt.Errorf("%w: no resolver", ErrNilCapability)
	case prober == nil:
		return nil, fmt.Errorf("%w: no prober", ErrNilCapability)
	case locator == nil:
		return nil, fmt.Errorf("%w: no locator", ErrNilCapability)
	}
	e := &Engine{
		resolver: resolver,
		prober:   prober,
		locator:  locator,
		workers:  runtime.NumCPU(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.NumCPU()
	}
	return e, nil
}

// WithWorkers sets the maximum number of domains to analyse in parallel. Zero
// or negative numbers select the default of one worker per CPU.
func WithWorkers(workers int) Option {
	return func(e *Engine) {
		e.workers = workers
	}
}

// WithNews sets a function that gets called with each Record as soon as its
// analysis has finished. The function gets called from the workers, so it
// must be safe for concurrent use and should return quickly.
func WithNews(fn func(types.Record)) Option {
	return func(e *Engine) {
		e.news = fn
	}
}

// Analyze the specified domains and return their Records in the same order
// as the domains. Analyze always returns exactly one Record per domain: any
// failure is recorded in the Record of the failing domain only.
//
// Cancelling the context aborts pending resolutions and probes, which then
// show up as failed Records.
func (e *Engine) Analyze(ctx context.Context, domains []string) []types.Record {
	records := make([]types.Record, len(domains))
	workers := workerpool.New(e.workers)
	for idx, domain := range domains {
		idx, domain := idx, domain
		// Each worker writes only into its own, preassigned slot, so neither
		// locking nor sorting afterwards is needed.
		workers.Submit(func() {
			records[idx] = e.analyze(ctx, domain)
			if e.news != nil {
				e.news(records[idx])
			}
		})
	}
	workers.StopWait()
	return records
}
