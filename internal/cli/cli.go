package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uccalint/pkg/buildinfo"
	"github.com/matzehuels/uccalint/pkg/cache"
	"github.com/matzehuels/uccalint/pkg/config"
	"github.com/matzehuels/uccalint/pkg/observability"
	"github.com/matzehuels/uccalint/pkg/pipeline"
	"github.com/matzehuels/uccalint/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "uccalint"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrInvalid is returned by validate when at least one passage has
// diagnostics. main maps it to exit status 1 without printing it.
var ErrInvalid = errors.New("invalid passages")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output (reports, DOT, JSON). Status lines go to stdout.
	Out io.Writer

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "uccalint checks UCCA passages against the foundational layer grammar",
		Long: `uccalint validates UCCA passage graphs: terminal hygiene, acyclicity,
unit cardinalities, sibling and descendant constraints, and linkage structure.
Every violation is reported as a separate diagnostic.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			registerLogHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/uccalint/config.toml)")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// registerLogHooks routes validation and cache events to the debug log.
func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetValidationHooks(h)
	observability.SetCacheHooks(h)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from the loaded configuration.
// The caller must Close the runner.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}

	var keyer cache.Keyer
	if c.cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.cfg.Cache.Prefix)
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	if c.cfg.Cache.TTL > 0 {
		runner.TTL = c.cfg.Cache.TTL
	}

	if uri := c.cfg.Store.MongoURI; uri != "" {
		s, err := store.NewMongoStore(ctx, uri, c.cfg.Store.Database)
		if err != nil {
			_ = runner.Close()
			return nil, fmt.Errorf("open report store: %w", err)
		}
		runner.Store = s
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return rc, nil
	default:
		dir, err := c.cfg.CacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// defaults returns the validation options from the config file.
func (c *CLI) defaults() pipeline.Options {
	return pipeline.Options{
		Validation:     c.cfg.Validation.Options(),
		MaxDiagnostics: c.cfg.Validation.MaxDiagnostics,
	}
}

// validationOptions returns the configured defaults with any flags the user
// set on cmd applied on top.
func (c *CLI) validationOptions(cmd *cobra.Command, linkage, multigraph bool, maxDiags int) pipeline.Options {
	opts := c.defaults()
	if cmd.Flags().Changed("linkage") {
		opts.Validation.Linkage = linkage
	}
	if cmd.Flags().Changed("multigraph") {
		opts.Validation.Multigraph = multigraph
	}
	if cmd.Flags().Changed("max") {
		opts.MaxDiagnostics = maxDiags
	}
	return opts
}

// addValidationFlags registers --linkage, --multigraph and --max.
func addValidationFlags(cmd *cobra.Command, linkage, multigraph *bool, maxDiags *int) {
	cmd.Flags().BoolVar(linkage, "linkage", true, "check linkage units (LKG)")
	cmd.Flags().BoolVar(multigraph, "multigraph", false, "allow several edges between the same parent and child")
	cmd.Flags().IntVar(maxDiags, "max", 0, "stop after this many diagnostics per passage (0 = all)")
}
