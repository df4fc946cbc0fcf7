package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgexplorer/pkg/buildinfo"
	"github.com/matzehuels/cfgexplorer/pkg/cache"
	"github.com/matzehuels/cfgexplorer/pkg/config"
	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/graph"
	"github.com/matzehuels/cfgexplorer/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "cfgexplorer walks the control-flow graphs of compiled functions",
		Long:         `cfgexplorer lays out the basic blocks of each function in a crate document and lets you walk them block by block, in the terminal, over HTTP or headless.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetCacheHooks(cacheLogHooks{})
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cfgexplorer/config.toml)")

	// Register all subcommands
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.asciiCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.functionsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Cache
// =============================================================================

// loadConfig reads the --config file, or the default one when present.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newCache opens the render cache described by cfg. Entries are scoped to the
// running build so an upgrade never serves stale output.
func newCache(cfg config.Config, noCache bool) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache(), keyer, nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), keyer, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return cache.Instrument(fc, "render"), keyer, nil
}

// =============================================================================
// Documents
// =============================================================================

// document is a loaded crate document and the file it came from.
type document struct {
	*graph.CrateDocument
	path string
}

// loadDocument reads and validates the document at path.
func loadDocument(ctx context.Context, path string) (*document, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := graph.ReadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loaded %s: %d functions", path, len(doc.Functions))
	prog.debug("Parsed document")
	return &document{CrateDocument: doc, path: path}, nil
}

// function returns the function at index i.
func (d *document) function(i int) (*graph.FunctionDoc, error) {
	if err := errors.ValidateIndex("function", i, len(d.Functions)); err != nil {
		return nil, fmt.Errorf("%s: %w", d.path, err)
	}
	return &d.Functions[i], nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseList splits a comma-separated flag value, falling back to def.
func parseList(s, def string) []string {
	if s == "" {
		return []string{def}
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// validateFormats checks that all requested formats are in valid.
func validateFormats(formats []string, valid ...string) error {
	for _, f := range formats {
		ok := false
		for _, v := range valid {
			ok = ok || f == v
		}
		if !ok {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %s (must be one of %s)", f, strings.Join(valid, ", "))
		}
	}
	return nil
}

// functionFlag registers the shared --function flag and the completions for
// the document argument it indexes into.
func functionFlag(cmd *cobra.Command, p *int) {
	cmd.Flags().IntVarP(p, "function", "n", 0, "function index in the document")
	_ = cmd.RegisterFlagCompletionFunc("function", completeFunction)
	cmd.ValidArgsFunction = completeDocument
}
