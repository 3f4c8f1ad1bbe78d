package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	pkgio "github.com/damien-gal/degree-three-spanners-square-lattice/pkg/io"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/render"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

type renderOpts struct {
	output   string
	snapshot string
	scale    float64
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render NAME",
		Short: "Draw a claim's seed configuration",
		Long: `Render draws the seed path of a claim with its target pair marked.
With --snapshot, the configuration saved by "prove --svg" is drawn under
the seed instead of the seed alone.

The format follows the output extension: .svg, .dot, .pdf, .png or .txt.
PDF and PNG output need rsvg-convert on the PATH.`,
		Example: `  spanners render p4 -o p4.svg
  spanners render h1 -o h1.txt
  spanners render p4 --snapshot out/p4.json -o p4-last.png`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeClaimNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalog()
			if err != nil {
				return err
			}
			cl, err := cat.Get(args[0])
			if err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = cl.Name + ".svg"
			}
			if err := errors.ValidatePath(opts.output); err != nil {
				return err
			}
			prog := newProgress(c.Logger)
			if err := renderClaim(cmd.Context(), cl, opts); err != nil {
				return err
			}
			prog.done("Rendered " + cl.Name)
			printFile(c.Out, opts.output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default NAME.svg)")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "configuration JSON `file` to draw under the seed")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "zoom factor for PNG output")

	return cmd
}

// seedOptions draws the seed highlighted and the target marked.
func seedOptions(cl *prover.Claim) render.Options {
	var marks []lattice.Point
	if t := cl.Target; t != nil {
		marks = []lattice.Point{t.U, t.V}
	}
	return render.SeedOptions(cl.Name, cl.Seed, marks...)
}

func renderClaim(ctx context.Context, cl *prover.Claim, opts renderOpts) error {
	ext := strings.ToLower(filepath.Ext(opts.output))

	var snap state.Snapshot
	if opts.snapshot != "" {
		var err error
		if snap, err = pkgio.ImportJSON(opts.snapshot); err != nil {
			return err
		}
	}

	var data []byte
	var err error
	switch ext {
	case ".txt":
		drawOpts := seedOptions(cl)
		drawOpts.Title = ""
		data = []byte(render.ASCII(snap, drawOpts) + "\n")
	case ".dot":
		data = []byte(render.ToDOT(snap, seedOptions(cl)))
	case ".svg", ".pdf", ".png":
		data, err = render.RenderSVG(ctx, render.ToDOT(snap, seedOptions(cl)))
		if err != nil {
			return err
		}
		switch ext {
		case ".pdf":
			data, err = render.ToPDF(ctx, data)
		case ".png":
			data, err = render.ToPNG(ctx, data, opts.scale)
		}
		if err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported output format %q (want .svg, .dot, .pdf, .png or .txt)", ext)
	}

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(opts.output, data, 0o644)
}
