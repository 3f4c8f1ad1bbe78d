package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/cache"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/claims"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/observability"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/sweep"
)

// sweepFunc runs one companion check.
type sweepFunc func(ctx context.Context) (*sweep.Report, error)

type checkOpts struct {
	noCache bool
	radius  int
}

func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the companion exhaustive checks",
		Long: `Check runs the finite computations that accompany the case analysis:

  lemma-2.4   distances in the graph with Manhattan-weighted edges
  prop-2.1    the 16 variants of the periodic graph H
  figure-2    the three periodic graphs of Figure 2
  lemma-3.8   candidate shortest walks from (0,0) to (1,2)
  all         all of the above`,
	}
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "ignore cached results")

	lemma24 := &cobra.Command{
		Use:   "lemma-2.4",
		Short: "Check the Manhattan-weighted distance bound",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSweeps(cmd.Context(), opts, "lemma-2.4")
		},
	}
	lemma24.Flags().IntVar(&opts.radius, "radius", sweep.DefaultLemma24Radius, "half-width of the checked window")

	cmd.AddCommand(lemma24)
	for _, name := range []string{"prop-2.1", "figure-2"} {
		cmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: "Check the local dilation of " + name,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runSweeps(cmd.Context(), opts, name)
			},
		})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "lemma-3.8",
		Short: "List the candidate shortest walks from (0,0) to (1,2)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLemma38(cmd.Context())
		},
	})
	all := &cobra.Command{
		Use:   "all",
		Short: "Run every check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.runSweeps(cmd.Context(), opts, "lemma-2.4", "prop-2.1", "figure-2"); err != nil {
				return err
			}
			return c.runLemma38(cmd.Context())
		},
	}
	all.Flags().IntVar(&opts.radius, "radius", sweep.DefaultLemma24Radius, "half-width of the lemma-2.4 window")
	cmd.AddCommand(all)

	return cmd
}

func sweepByName(name string, radius int) (sweepFunc, []any) {
	switch name {
	case "lemma-2.4":
		return func(context.Context) (*sweep.Report, error) { return sweep.Lemma24(radius) }, []any{radius}
	case "prop-2.1":
		return sweep.Proposition21, nil
	case "figure-2":
		return sweep.Figure2, nil
	}
	return nil, nil
}

func (c *CLI) runSweeps(ctx context.Context, opts checkOpts, names ...string) error {
	cch, keyer, err := c.openCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer cch.Close()

	for _, name := range names {
		fn, params := sweepByName(name, opts.radius)
		if fn == nil {
			return errors.New(errors.ErrCodeInvalidInput, "unknown check %q", name)
		}
		if err := c.runSweep(ctx, cch, keyer.SweepKey(name, params...), name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLI) runSweep(ctx context.Context, cch cache.Cache, key, name string, fn sweepFunc) error {
	if data, ok, err := cch.Get(ctx, key); err == nil && ok {
		var rep sweep.Report
		if json.Unmarshal(data, &rep) == nil {
			observability.Cache().OnCacheHit(ctx, key)
			printSuccess(c.Out, "%s %s", rep.String(), styleCached.Render(iconCached))
			return nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, key)

	observability.Sweep().OnSweepStart(ctx, name)
	spin := newSpinner(ctx, c.Out, "checking "+name)
	spin.Start()
	start := time.Now()
	rep, err := fn(ctx)
	observability.Sweep().OnSweepComplete(ctx, name, pairsOf(rep), time.Since(start), err)
	if err != nil {
		spin.StopWithError("%s: %s", name, errors.UserMessage(err))
		return err
	}
	spin.StopWithSuccess("%s", rep.String())

	if data, err := json.Marshal(rep); err == nil {
		if err := cch.Set(ctx, key, data, c.config().Cache.TTL.Duration); err != nil {
			c.Logger.Warn("Cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}
	return nil
}

func pairsOf(r *sweep.Report) int {
	if r == nil {
		return 0
	}
	return r.Pairs
}

func (c *CLI) runLemma38(ctx context.Context) error {
	observability.Sweep().OnSweepStart(ctx, "lemma-3.8")
	rep := sweep.Lemma38()
	observability.Sweep().OnSweepComplete(ctx, rep.Name, rep.Pairs, rep.Duration, nil)

	printSuccess(c.Out, "lemma-3.8: %d walks enumerated, %d remain", rep.Cases, len(rep.Valid))
	for _, w := range rep.Valid {
		printDetail(c.Out, "%s", claims.FormatPath(w))
	}
	for _, r := range rep.Rejected {
		c.Logger.Debug("Rejected", "walk", claims.FormatPath(r.Walk),
			"from", claims.FormatPoint(r.Reason.P), "to", claims.FormatPoint(r.Reason.Q))
	}
	fmt.Fprintln(c.Out)
	return nil
}
