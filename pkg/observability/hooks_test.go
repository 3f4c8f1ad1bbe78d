package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	NoopProofHooks{}.OnProveStart(ctx, "h1")
	NoopProofHooks{}.OnProveComplete(ctx, "h1", 1467, time.Second, nil)
	NoopSweepHooks{}.OnSweepStart(ctx, "lemma-2.4")
	NoopSweepHooks{}.OnSweepComplete(ctx, "lemma-2.4", 441, time.Second, nil)
	NoopCacheHooks{}.OnCacheHit(ctx, "claim")
	NoopCacheHooks{}.OnCacheMiss(ctx, "claim")
	NoopCacheHooks{}.OnCacheSet(ctx, "claim", 128)
	NoopHTTPHooks{}.OnResponse(ctx, "GET", "/claims", 200, time.Millisecond)
}

type countingCache struct{ hits, misses, sets int }

func (c *countingCache) OnCacheHit(context.Context, string)      { c.hits++ }
func (c *countingCache) OnCacheMiss(context.Context, string)     { c.misses++ }
func (c *countingCache) OnCacheSet(context.Context, string, int) { c.sets++ }

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Proof().(NoopProofHooks); !ok {
		t.Error("Proof() should return NoopProofHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	c := &countingCache{}
	SetCacheHooks(c)
	SetCacheHooks(nil) // ignored
	Cache().OnCacheHit(context.Background(), "claim")
	Cache().OnCacheMiss(context.Background(), "sweep")
	if c.hits != 1 || c.misses != 1 {
		t.Errorf("hits=%d misses=%d, want 1 1", c.hits, c.misses)
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})).Register()

	ctx := context.Background()
	Proof().OnProveComplete(ctx, "p4", 6155, time.Second, nil)
	Sweep().OnSweepComplete(ctx, "figure-2", 0, time.Second, errors.New("boom"))
	HTTP().OnResponse(ctx, "POST", "/claims/{name}/prove", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"prove done", "claim=p4", "check failed", "err=boom", "route=/claims/{name}/prove"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
