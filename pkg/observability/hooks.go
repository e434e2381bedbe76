// Package observability lets a host process watch the labeler pipeline
// without the pipeline depending on any metrics or tracing backend.
//
// Three hook sets exist, one per event source: [PipelineHooks] for the
// parse, layout and render stages, [CacheHooks] for memo lookups and
// [ServerHooks] for HTTP requests. Each starts as a no-op; a host swaps in
// its own implementation once at startup:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//
// Emitters fetch the current set on every event, so registration may
// happen after packages are initialized:
//
//	observability.Pipeline().OnLayoutStart(ctx, chart, candidates)
//
// [LogHooks] is the implementation shipped here; it logs every event at
// debug level.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives stage events. chart is the scene's chart kind;
// err is nil on success.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, chart string, duration time.Duration, err error)
	OnLayoutStart(ctx context.Context, chart string, candidates int)
	OnLayoutComplete(ctx context.Context, chart string, visible int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives memo events. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives HTTP events from the layout service.
type ServerHooks interface {
	OnRequest(ctx context.Context, requestID, method, path string)
	OnResponse(ctx context.Context, requestID, method, path string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, time.Duration, error)       {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)    {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks ignores every event.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}

// slot holds one registered hook set. Loads are lock-free, since every
// layout pass fetches hooks several times.
type slot[H any] struct {
	v    atomic.Pointer[H]
	noop H
}

func (s *slot[H]) get() H {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[H]) set(h H) { s.v.Store(&h) }

func (s *slot[H]) reset() { s.v.Store(nil) }

var (
	pipelineSlot = slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheSlot    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	serverSlot   = slot[ServerHooks]{noop: NoopServerHooks{}}
)

// SetPipelineHooks registers pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetServerHooks registers server hooks. nil is ignored.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		serverSlot.set(h)
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// Server returns the registered server hooks.
func Server() ServerHooks { return serverSlot.get() }

// Reset restores the no-op hooks. Tests use it to isolate registrations.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	serverSlot.reset()
}
