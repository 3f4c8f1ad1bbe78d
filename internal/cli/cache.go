package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/damien-gal/degree-three-spanners-square-lattice/internal/config"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cch, _, err := c.openCache(ctx, false)
			if err != nil {
				return err
			}
			defer cch.Close()

			var n int
			switch b := cch.(type) {
			case *cache.FileCache:
				n, err = b.Clear(ctx)
			case *cache.BadgerCache:
				n, err = b.Clear(ctx)
			case *cache.RedisCache:
				n, err = b.Clear(ctx, c.config().Cache.Prefix)
			default:
				printInfo(c.Out, "Cache is disabled")
				return nil
			}
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo(c.Out, "Cache is empty")
				return nil
			}
			printSuccess(c.Out, "Cleared %d cached entries", n)
			printDetail(c.Out, "Backend: %s", c.config().Cache.Backend)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config().Cache
			switch cfg.Backend {
			case config.BackendRedis:
				fmt.Fprintf(c.Out, "redis://%s/%d\n", cfg.RedisAddr, cfg.RedisDB)
			case config.BackendNone:
				printInfo(c.Out, "Cache is disabled")
			default:
				fmt.Fprintln(c.Out, cfg.Dir)
			}
			return nil
		},
	}
}
