package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/claims"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/observability"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/pattern"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// textObserver prints one line per search event. In quiet mode only
// banners are printed and progress goes to the debug log.
type textObserver struct {
	w      io.Writer
	logger *log.Logger
	quiet  bool

	total int
}

func newTextObserver(w io.Writer, logger *log.Logger, quiet bool) *textObserver {
	return &textObserver{w: w, logger: logger, quiet: quiet}
}

func (o *textObserver) OnProofStart(c *prover.Claim) {
	o.total = c.ExpectedLeaves
	title := "Proving " + StyleTitle.Render(c.Name)
	if c.Description != "" {
		title += StyleDim.Render(" (" + c.Description + ")")
	}
	printInfo(o.w, "%s", title)
	if names := c.LemmaNames(); len(names) > 0 {
		printDetail(o.w, "known lemmas: %s", strings.Join(names, ", "))
	}
}

func (o *textObserver) OnProofEnd(c *prover.Claim) {
	printSuccess(o.w, "Finished the proof of %s", c.Name)
}

func (o *textObserver) OnAllProofsFinished() {
	printSuccess(o.w, "%s", StyleSuccess.Render("The proof is complete"))
}

func (o *textObserver) event(tag, body string) {
	if o.quiet {
		o.logger.Debug(tag, "detail", body)
		return
	}
	printDetail(o.w, "%s %s", StyleEvent.Render(tag), body)
}

func (o *textObserver) OnShortcutFound(_ state.Snapshot, walk []lattice.Point) {
	o.event("SHORTCUT", claims.FormatPath(walk))
}

func (o *textObserver) OnPatternMatched(_ state.Snapshot, p pattern.Pattern) {
	o.event("PATTERN", claims.FormatPairs(p))
}

func (o *textObserver) OnUniquePathDeduced(_ state.Snapshot, walk []lattice.Point) {
	o.event("UNIQUE PATH", claims.FormatPath(walk))
}

func (o *textObserver) OnContradiction(_ state.Snapshot, p, q lattice.Point) {
	o.event("IMPOSSIBLE TO JOIN", claims.FormatPoint(p)+" and "+claims.FormatPoint(q))
}

func (o *textObserver) OnBranchExplored(_ state.Snapshot, count int) {
	if o.quiet {
		o.logger.Debug("PROGRESS", "branch", count, "expected", o.total)
		return
	}
	printDetail(o.w, "PROGRESS: %d/%d", count, o.total)
}

// eventCounts tallies the events seen for one claim.
type eventCounts struct {
	Branches       int
	Shortcuts      int
	Patterns       int
	Deductions     int
	Contradictions int
}

// countingObserver forwards events to an inner observer and keeps
// per-claim tallies, start times and the last configuration seen. It also
// reports proof start and completion to the observability hooks.
type countingObserver struct {
	ctx     context.Context
	inner   prover.Observer
	counts  map[string]*eventCounts
	started map[string]time.Time
	last    map[string]state.Snapshot
	cur     *eventCounts
	claim   string
}

func newCountingObserver(ctx context.Context, inner prover.Observer) *countingObserver {
	if inner == nil {
		inner = prover.NoopObserver{}
	}
	return &countingObserver{
		ctx:     ctx,
		inner:   inner,
		counts:  make(map[string]*eventCounts),
		started: make(map[string]time.Time),
		last:    make(map[string]state.Snapshot),
	}
}

// Started returns when the proof of a claim began, or now if it never
// started.
func (o *countingObserver) Started(claim string) time.Time {
	if t, ok := o.started[claim]; ok {
		return t
	}
	return time.Now()
}

// Failed reports the failure of the running claim to the hooks.
func (o *countingObserver) Failed(claim string, err error) {
	observability.Proof().OnProveComplete(o.ctx, claim, o.Counts(claim).Branches, time.Since(o.Started(claim)), err)
}

// Counts returns the tallies for a claim; zero if it never started.
func (o *countingObserver) Counts(claim string) eventCounts {
	if c, ok := o.counts[claim]; ok {
		return *c
	}
	return eventCounts{}
}

// Last returns the last configuration reported for a claim.
func (o *countingObserver) Last(claim string) (state.Snapshot, bool) {
	s, ok := o.last[claim]
	return s, ok
}

func (o *countingObserver) seen(s state.Snapshot) { o.last[o.claim] = s }

func (o *countingObserver) OnProofStart(c *prover.Claim) {
	o.claim = c.Name
	o.cur = &eventCounts{}
	o.counts[c.Name] = o.cur
	o.started[c.Name] = time.Now()
	observability.Proof().OnProveStart(o.ctx, c.Name)
	o.inner.OnProofStart(c)
}

func (o *countingObserver) OnProofEnd(c *prover.Claim) {
	observability.Proof().OnProveComplete(o.ctx, c.Name, o.cur.Branches, time.Since(o.started[c.Name]), nil)
	o.inner.OnProofEnd(c)
}

func (o *countingObserver) OnAllProofsFinished() { o.inner.OnAllProofsFinished() }

func (o *countingObserver) OnShortcutFound(s state.Snapshot, walk []lattice.Point) {
	o.cur.Shortcuts++
	o.seen(s)
	o.inner.OnShortcutFound(s, walk)
}

func (o *countingObserver) OnPatternMatched(s state.Snapshot, p pattern.Pattern) {
	o.cur.Patterns++
	o.seen(s)
	o.inner.OnPatternMatched(s, p)
}

func (o *countingObserver) OnUniquePathDeduced(s state.Snapshot, walk []lattice.Point) {
	o.cur.Deductions++
	o.seen(s)
	o.inner.OnUniquePathDeduced(s, walk)
}

func (o *countingObserver) OnContradiction(s state.Snapshot, p, q lattice.Point) {
	o.cur.Contradictions++
	o.seen(s)
	o.inner.OnContradiction(s, p, q)
}

func (o *countingObserver) OnBranchExplored(s state.Snapshot, count int) {
	o.cur.Branches++
	o.seen(s)
	o.inner.OnBranchExplored(s, count)
}
