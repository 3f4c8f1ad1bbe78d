package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/cache"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	pkgio "github.com/damien-gal/degree-three-spanners-square-lattice/pkg/io"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/observability"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/render"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/store"
)

type proveOpts struct {
	all     bool
	text    bool
	tui     bool
	quiet   bool
	noCache bool
	strict  bool
	check   bool
	svgDir  string
}

func (c *CLI) proveCommand() *cobra.Command {
	var opts proveOpts

	cmd := &cobra.Command{
		Use:   "prove [name...]",
		Short: "Run the case analysis for one or more claims",
		Long: `Prove runs the backtracking search for the named claims, in catalog
order, and stops at the first claim that cannot be established.

A claim whose definition is unchanged since its last successful run is
answered from the cache unless --no-cache is given.`,
		Example: `  spanners prove --all
  spanners prove h1 h2 --quiet
  spanners prove p4 --tui
  spanners prove --all --strict --svg out/`,
		ValidArgsFunction: c.completeClaimNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.all && len(args) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "name at least one claim or pass --all")
			}
			if opts.all && len(args) > 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--all does not take claim names")
			}
			if opts.svgDir != "" {
				if err := errors.ValidatePath(opts.svgDir); err != nil {
					return err
				}
			}
			return c.runProve(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "prove every claim in the catalog")
	cmd.Flags().BoolVar(&opts.text, "text", true, "print one line per search event")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "step through the search in the interactive viewer")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only banners and the summary")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when a claim's branch count differs from its expectation")
	cmd.Flags().BoolVar(&opts.check, "check", false, "verify graph invariants after every mutation (slow)")
	cmd.Flags().StringVar(&opts.svgDir, "svg", "", "write the last configuration of each claim as SVG into `dir`")
	cmd.MarkFlagsMutuallyExclusive("tui", "quiet")

	return cmd
}

func (c *CLI) completeClaimNames(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	cat, err := c.catalog()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return cat.Names(), cobra.ShellCompDirectiveNoFileComp
}

func (c *CLI) runProve(ctx context.Context, names []string, opts proveOpts) error {
	cat, err := c.catalog()
	if err != nil {
		return err
	}
	selected := cat.Ordered()
	if !opts.all {
		if selected, err = cat.Select(names); err != nil {
			return err
		}
	}

	cch, keyer, err := c.openCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer cch.Close()

	runs, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer runs.Close()

	pending := make([]*prover.Claim, 0, len(selected))
	for _, cl := range selected {
		if rep, ok := c.cachedRun(ctx, cch, keyer.ClaimKey(cl)); ok {
			printSuccess(c.Out, "%s proved", StyleTitle.Render(cl.Name))
			printStats(c.Out, rep.Branches, rep.Patterns, rep.Shortcuts, true)
			rep.ID, rep.Status, rep.StartedAt, rep.Duration = store.NewID(), store.StatusCached, time.Now().UTC(), 0
			c.saveRun(ctx, runs, rep)
			continue
		}
		pending = append(pending, cl)
	}
	if len(pending) == 0 {
		return nil
	}

	var inner prover.Observer
	var viewer *tuiObserver
	if opts.tui {
		vc := c.config().Viewer
		viewer, ctx = newTUIObserver(ctx, vc.Auto, vc.Delay.Duration, vc.HideForbidden)
		defer viewer.Close()
		inner = viewer
	} else {
		inner = newTextObserver(c.Out, c.Logger, opts.quiet)
	}
	counter := newCountingObserver(ctx, inner)

	proverOpts := []prover.Option{prover.WithLogger(c.Logger)}
	if opts.check {
		proverOpts = append(proverOpts, prover.WithInvariantChecks())
	}

	results, proveErr := prover.ProveAll(ctx, pending, counter, proverOpts...)
	if viewer != nil {
		if err := viewer.Close(); err != nil {
			c.Logger.Warn("Viewer", "err", err)
		}
	}

	ttl := c.config().Cache.TTL.Duration
	var strictErr error
	for i, res := range results {
		cl := pending[i]
		rep := store.NewReport(cl, res, nil, counter.Started(cl.Name))
		c.saveRun(ctx, runs, rep)
		if opts.tui {
			printSuccess(c.Out, "%s proved", StyleTitle.Render(cl.Name))
		}
		printStats(c.Out, res.Branches, res.Patterns, res.Shortcuts, false)

		if n := counter.Counts(cl.Name).Branches; cl.ExpectedLeaves > 0 && n != cl.ExpectedLeaves {
			mismatch := res.CheckLeaves()
			if opts.strict {
				printError(c.Out, "%s", errors.UserMessage(mismatch))
				if strictErr == nil {
					strictErr = mismatch
				}
			} else {
				printWarning(c.Out, "%s", errors.UserMessage(mismatch))
			}
		} else {
			c.storeRun(ctx, cch, keyer.ClaimKey(cl), rep, ttl)
		}
		c.writeLastSVG(ctx, opts.svgDir, cl, counter)
	}

	if proveErr != nil {
		failed := pending[len(results)]
		counter.Failed(failed.Name, proveErr)
		c.saveRun(ctx, runs, store.NewReport(failed, nil, proveErr, counter.Started(failed.Name)))
		c.writeLastSVG(ctx, opts.svgDir, failed, counter)
		printError(c.Out, "%s: %s", failed.Name, errors.UserMessage(proveErr))
		return proveErr
	}
	return strictErr
}

// cachedRun returns the stored report of a successful run, if any.
func (c *CLI) cachedRun(ctx context.Context, cch cache.Cache, key string) (*store.Report, bool) {
	data, ok, err := cch.Get(ctx, key)
	if err != nil {
		c.Logger.Warn("Cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	var rep store.Report
	if err := json.Unmarshal(data, &rep); err != nil || !rep.OK() {
		c.Logger.Debug("Ignoring cache entry", "key", key, "err", err)
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return &rep, true
}

func (c *CLI) storeRun(ctx context.Context, cch cache.Cache, key string, rep *store.Report, ttl time.Duration) {
	data, err := json.Marshal(rep)
	if err != nil {
		c.Logger.Warn("Encode report", "err", err)
		return
	}
	if err := cch.Set(ctx, key, data, ttl); err != nil {
		c.Logger.Warn("Cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

func (c *CLI) saveRun(ctx context.Context, runs store.Store, rep *store.Report) {
	if err := runs.Save(context.WithoutCancel(ctx), rep); err != nil {
		c.Logger.Warn("Saving run report failed", "claim", rep.Claim, "err", err)
		return
	}
	c.Logger.Debug("Saved run", "id", rep.ID, "claim", rep.Claim, "status", rep.Status)
}

// writeLastSVG draws the last configuration the search reported for cl:
// the final branch of a proved claim or the stuck one of a failed claim.
// The configuration itself is saved next to the drawing as JSON.
func (c *CLI) writeLastSVG(ctx context.Context, dir string, cl *prover.Claim, counter *countingObserver) {
	if dir == "" {
		return
	}
	snap, ok := counter.Last(cl.Name)
	if !ok {
		snap = state.Snapshot{}
	}
	path := filepath.Join(dir, cl.Name+".svg")
	if err := writeSVG(context.WithoutCancel(ctx), path, snap, seedOptions(cl)); err != nil {
		c.Logger.Warn("Writing SVG failed", "claim", cl.Name, "err", err)
		return
	}
	printFile(c.Out, path)

	jsonPath := filepath.Join(dir, cl.Name+".json")
	if err := pkgio.ExportJSON(snap, jsonPath); err != nil {
		c.Logger.Warn("Writing configuration failed", "claim", cl.Name, "err", err)
		return
	}
	printFile(c.Out, jsonPath)
}

func writeSVG(ctx context.Context, path string, snap state.Snapshot, opts render.Options) error {
	svg, err := render.RenderSVG(ctx, render.ToDOT(snap, opts))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, svg, 0o644)
}
