package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks { return &LogHooks{Logger: l} }

// Register installs h for every hook kind.
func (h *LogHooks) Register() {
	SetProofHooks(h)
	SetSweepHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnProveStart(_ context.Context, claim string) {
	h.Logger.Debug("prove start", "claim", claim)
}

func (h *LogHooks) OnProveComplete(_ context.Context, claim string, branches int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("prove failed", "claim", claim, "branches", branches, "elapsed", d, "err", err)
		return
	}
	h.Logger.Debug("prove done", "claim", claim, "branches", branches, "elapsed", d)
}

func (h *LogHooks) OnSweepStart(_ context.Context, name string) {
	h.Logger.Debug("check start", "name", name)
}

func (h *LogHooks) OnSweepComplete(_ context.Context, name string, pairs int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("check failed", "name", name, "elapsed", d, "err", err)
		return
	}
	h.Logger.Debug("check done", "name", name, "pairs", pairs, "elapsed", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, kind string) {
	h.Logger.Debug("cache hit", "kind", kind)
}
func (h *LogHooks) OnCacheMiss(_ context.Context, kind string) {
	h.Logger.Debug("cache miss", "kind", kind)
}

func (h *LogHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.Logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("http", "method", method, "route", route, "status", status, "elapsed", d.Round(time.Microsecond))
}
