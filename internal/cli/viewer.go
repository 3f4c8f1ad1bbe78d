package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/claims"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/pattern"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/render"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// viewerWindow is the lattice box shown by the viewer.
var viewerWindow = render.Window{Lo: lattice.Pt(-5, -5), Hi: lattice.Pt(6, 6)}

var cellStyles = map[render.CellKind]lipgloss.Style{
	render.CellGrid:      lipgloss.NewStyle().Foreground(colorDim),
	render.CellVertex:    lipgloss.NewStyle().Foreground(colorWhite),
	render.CellEdge:      lipgloss.NewStyle().Foreground(colorCyan),
	render.CellForbidden: lipgloss.NewStyle().Foreground(colorRed),
	render.CellHighlight: lipgloss.NewStyle().Bold(true).Foreground(colorPink),
	render.CellMark:      lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
}

// frame is one picture shown by the viewer.
type frame struct {
	claim  string
	event  string
	detail string
	snap   state.Snapshot
	opts   render.Options
	count  int
	total  int
}

type frameMsg struct {
	frame frame
	seq   int
	ack   chan struct{}
}

type advanceMsg struct{ seq int }

// viewerModel is the bubbletea model of the step-by-step viewer. Each
// frame holds the search until it is acknowledged by a key press or, in
// auto mode, by a timer.
type viewerModel struct {
	frame         frame
	seq           int
	ack           chan struct{}
	auto          bool
	delay         time.Duration
	hideForbidden bool
	cancel        context.CancelFunc
	quitting      bool
}

func newViewerModel(auto bool, delay time.Duration, hideForbidden bool, cancel context.CancelFunc) viewerModel {
	return viewerModel{auto: auto, delay: delay, hideForbidden: hideForbidden, cancel: cancel}
}

func (m viewerModel) Init() tea.Cmd { return nil }

func (m viewerModel) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return advanceMsg{seq: seq} })
}

// release lets the search continue past the current frame.
func (m *viewerModel) release() {
	if m.ack != nil {
		close(m.ack)
		m.ack = nil
	}
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.release()
		m.frame, m.seq, m.ack = msg.frame, msg.seq, msg.ack
		if m.auto {
			return m, m.tick()
		}
	case advanceMsg:
		if msg.seq == m.seq {
			m.release()
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			m.release()
			return m, tea.Quit
		case " ", "enter", "n":
			m.release()
		case "a":
			m.auto = !m.auto
			if m.auto && m.ack != nil {
				return m, m.tick()
			}
		case "f":
			m.hideForbidden = !m.hideForbidden
		case "+":
			m.delay = max(m.delay/2, time.Millisecond)
		case "-":
			m.delay *= 2
		}
	}
	return m, nil
}

func (m viewerModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	f := m.frame
	if f.claim == "" {
		b.WriteString(StyleDim.Render("waiting for the search to start..."))
		return b.String()
	}

	b.WriteString(StyleTitle.Render("Claim "+f.claim) + "  " + StyleEvent.Render(f.event) + "\n")
	if f.detail != "" {
		b.WriteString(StyleDim.Render(f.detail) + "\n")
	}
	b.WriteString("\n")

	opts := f.opts
	opts.Window = viewerWindow
	opts.HideForbidden = m.hideForbidden
	b.WriteString(colorize(render.Draw(f.snap, opts)))
	b.WriteString("\n\n")

	b.WriteString(progressBar(f.count, f.total, 40) + "\n")
	mode := "manual"
	if m.auto {
		mode = fmt.Sprintf("auto %s", m.delay)
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("space next · a toggle auto (%s) · +/- speed · f forbidden · q abort", mode)))
	return b.String()
}

// colorize renders a canvas with one style per cell kind.
func colorize(c *render.Canvas) string {
	var b strings.Builder
	for r, row := range c.Cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		end := len(row)
		for end > 0 && row[end-1].Kind == render.CellEmpty {
			end--
		}
		for _, cell := range row[:end] {
			if st, ok := cellStyles[cell.Kind]; ok {
				b.WriteString(st.Render(string(cell.Rune)))
			} else {
				b.WriteRune(cell.Rune)
			}
		}
	}
	return b.String()
}

func progressBar(count, total, width int) string {
	if total <= 0 {
		return StyleDim.Render(fmt.Sprintf("branches %d", count))
	}
	filled := min(width*count/total, width)
	bar := StyleSuccess.Render(strings.Repeat("█", filled)) + StyleDim.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %s", bar, StyleNumber.Render(fmt.Sprintf("%d/%d", count, total)))
}

// tuiObserver drives a bubbletea program from the search goroutine.
type tuiObserver struct {
	ctx  context.Context
	prog *tea.Program
	done chan error
	once sync.Once

	seq   int
	claim *prover.Claim
	count int
}

// newTUIObserver starts the viewer. Pressing q cancels the context
// returned alongside the observer.
func newTUIObserver(parent context.Context, auto bool, delay time.Duration, hideForbidden bool, opts ...tea.ProgramOption) (*tuiObserver, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	model := newViewerModel(auto, delay, hideForbidden, cancel)
	o := &tuiObserver{
		ctx:  ctx,
		prog: tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...),
		done: make(chan error, 1),
	}
	go func() {
		_, err := o.prog.Run()
		cancel()
		o.done <- err
	}()
	return o, ctx
}

// Close stops the viewer and waits for the terminal to be restored.
func (o *tuiObserver) Close() error {
	var err error
	o.once.Do(func() {
		o.prog.Quit()
		err = <-o.done
	})
	return err
}

// show displays f and blocks until the user advances or aborts.
func (o *tuiObserver) show(f frame) {
	if o.ctx.Err() != nil {
		return
	}
	o.seq++
	f.claim = o.claim.Name
	f.count = o.count
	f.total = o.claim.ExpectedLeaves
	if t := o.claim.Target; t != nil {
		f.opts.Marks = append(f.opts.Marks, t.U, t.V)
	}
	ack := make(chan struct{})
	o.prog.Send(frameMsg{frame: f, seq: o.seq, ack: ack})
	select {
	case <-ack:
	case <-o.ctx.Done():
	}
}

func (o *tuiObserver) OnProofStart(c *prover.Claim) {
	o.claim, o.count = c, 0
	o.show(frame{
		event:  "START",
		detail: fmt.Sprintf("%s · known lemmas: %s", c.Description, strings.Join(c.LemmaNames(), ", ")),
		snap:   state.Snapshot{},
		opts:   render.Options{Highlight: lattice.PathEdges(c.Seed)},
	})
}

func (o *tuiObserver) OnProofEnd(c *prover.Claim) {
	o.show(frame{event: "FINISHED", detail: "finished the proof of " + c.Name})
}

func (o *tuiObserver) OnAllProofsFinished() {
	if o.claim != nil {
		o.show(frame{event: "COMPLETE", detail: "the proof is complete"})
	}
}

func (o *tuiObserver) OnShortcutFound(s state.Snapshot, walk []lattice.Point) {
	o.show(frame{event: "SHORTCUT", detail: claims.FormatPath(walk), snap: s,
		opts: render.Options{Highlight: lattice.PathEdges(walk)}})
}

func (o *tuiObserver) OnPatternMatched(s state.Snapshot, p pattern.Pattern) {
	o.show(frame{event: "PATTERN", detail: claims.FormatPairs(p), snap: s,
		opts: render.Options{Highlight: p}})
}

func (o *tuiObserver) OnUniquePathDeduced(s state.Snapshot, walk []lattice.Point) {
	o.show(frame{event: "UNIQUE PATH", detail: claims.FormatPath(walk), snap: s,
		opts: render.Options{Highlight: lattice.PathEdges(walk)}})
}

func (o *tuiObserver) OnContradiction(s state.Snapshot, p, q lattice.Point) {
	o.show(frame{event: "IMPOSSIBLE TO JOIN", detail: claims.FormatPoint(p) + " and " + claims.FormatPoint(q), snap: s,
		opts: render.Options{Marks: []lattice.Point{p, q}}})
}

func (o *tuiObserver) OnBranchExplored(s state.Snapshot, count int) {
	o.count = count
	o.show(frame{event: "BRANCH", detail: fmt.Sprintf("branch %d", count), snap: s})
}
