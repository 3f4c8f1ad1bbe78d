package cli

import (
	"github.com/spf13/cobra"

	"github.com/damien-gal/degree-three-spanners-square-lattice/internal/server"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and the prover over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config().Server
			if addr == "" {
				addr = cfg.Addr
			}
			if err := errors.ValidateAddr(addr); err != nil {
				return err
			}
			cat, err := c.catalog()
			if err != nil {
				return err
			}
			runs, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer runs.Close()

			srv := server.New(cat, runs,
				server.WithLogger(c.Logger),
				server.WithProveTimeout(cfg.ProveTimeout.Duration),
			)
			printInfo(c.Out, "Serving %d claims on %s", cat.Len(), StyleHighlight.Render(addr))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
