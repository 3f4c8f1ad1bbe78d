// Package observability lets the application attach instrumentation to
// proof runs, companion checks, cache lookups and HTTP requests without
// the library packages depending on a metrics backend.
//
// Hooks are registered once at startup:
//
//	observability.SetProofHooks(observability.NewLogHooks(logger))
//
// and invoked by the callers of the library:
//
//	observability.Proof().OnProveStart(ctx, claim)
//	res, err := prover.Prove(ctx, c, obs)
//	observability.Proof().OnProveComplete(ctx, claim, res.Branches, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ProofHooks receives proof run events.
type ProofHooks interface {
	OnProveStart(ctx context.Context, claim string)
	OnProveComplete(ctx context.Context, claim string, branches int, duration time.Duration, err error)
}

// SweepHooks receives companion check events.
type SweepHooks interface {
	OnSweepStart(ctx context.Context, name string)
	OnSweepComplete(ctx context.Context, name string, pairs int, duration time.Duration, err error)
}

// CacheHooks receives cache events. kind is "claim" or "sweep".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks receives served HTTP request events.
type HTTPHooks interface {
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopProofHooks ignores every event.
type NoopProofHooks struct{}

func (NoopProofHooks) OnProveStart(context.Context, string)                               {}
func (NoopProofHooks) OnProveComplete(context.Context, string, int, time.Duration, error) {}

// NoopSweepHooks ignores every event.
type NoopSweepHooks struct{}

func (NoopSweepHooks) OnSweepStart(context.Context, string)                               {}
func (NoopSweepHooks) OnSweepComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	hooksMu    sync.RWMutex
	proofHooks ProofHooks = NoopProofHooks{}
	sweepHooks SweepHooks = NoopSweepHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
)

// SetProofHooks registers h. A nil h is ignored.
func SetProofHooks(h ProofHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		proofHooks = h
	}
}

// SetSweepHooks registers h. A nil h is ignored.
func SetSweepHooks(h SweepHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sweepHooks = h
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

func Proof() ProofHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return proofHooks
}

func Sweep() SweepHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sweepHooks
}

func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	proofHooks = NoopProofHooks{}
	sweepHooks = NoopSweepHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
