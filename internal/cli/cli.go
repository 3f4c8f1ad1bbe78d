// Package cli implements the spanners command-line interface.
//
// # Commands
//
//   - prove: run the case analysis for one or more claims
//   - claims: list and describe the claim catalog
//   - check: run the companion exhaustive checks
//   - render: draw a claim's seed configuration
//   - runs: inspect stored run reports
//   - cache: manage the result cache
//   - serve: expose the catalog and the prover over HTTP
//
// All commands accept --verbose for debug logging and --config to read a
// configuration file other than the default one.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/damien-gal/degree-three-spanners-square-lattice/internal/config"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/buildinfo"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/cache"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/claims"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/observability"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/store"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output; tests replace it.
	Out io.Writer

	configPath string
	claimsPath string
	cfg        *config.Config
}

// New returns a CLI printing results to out and logging to logw at level.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(logw, level), Out: out}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Verify locally optimal degree-3 spanners of the square lattice",
		Long: `spanners replays the computer-assisted case analysis showing that no
degree-3 geometric graph on Z² has dilation below 1+√2 locally, together
with the finite checks on the periodic examples.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			observability.NewLogHooks(c.Logger).Register()
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default $XDG_CONFIG_HOME/spanners/config.toml)")
	root.PersistentFlags().StringVar(&c.claimsPath, "claims", "", "claim catalog TOML file (default: built-in catalog)")

	root.AddCommand(c.proveCommand())
	root.AddCommand(c.claimsCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config returns the loaded configuration, or the defaults when a command
// runs without the root pre-run (as in tests).
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// catalog returns the built-in catalog or the one named by --claims.
func (c *CLI) catalog() (*claims.Catalog, error) {
	if c.claimsPath == "" {
		return claims.Default(), nil
	}
	return claims.LoadFile(c.claimsPath)
}

// openCache opens the configured cache backend together with its keyer.
func (c *CLI) openCache(ctx context.Context, disabled bool) (cache.Cache, cache.Keyer, error) {
	cfg := c.config().Cache
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Prefix)
	if disabled {
		return cache.NewNullCache(), keyer, nil
	}

	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), keyer, nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeNetwork, err, "open redis cache")
		}
		return rc, keyer, nil
	case config.BackendBadger:
		bc, err := cache.NewBadgerCache(cfg.Dir)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "open badger cache at %s", cfg.Dir)
		}
		return bc, keyer, nil
	default:
		fc, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			c.Logger.Warn("Cache disabled", "dir", cfg.Dir, "err", err)
			return cache.NewNullCache(), keyer, nil
		}
		return fc, keyer, nil
	}
}

// openStore opens the configured run report store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg := c.config().Store
	if cfg.MongoURI != "" {
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
	}
	if cfg.Dir == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewFileStore(cfg.Dir)
}
