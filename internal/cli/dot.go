package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgexplorer/pkg/cache"
	"github.com/matzehuels/cfgexplorer/pkg/config"
	"github.com/matzehuels/cfgexplorer/pkg/explorer"
	"github.com/matzehuels/cfgexplorer/pkg/render"
	"github.com/matzehuels/cfgexplorer/pkg/render/nodelink"
	"github.com/matzehuels/cfgexplorer/pkg/render/sink"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// dotFormats are the Graphviz export formats.
var dotFormats = []string{nodelink.FormatDOT, render.FormatSVG, render.FormatPNG, render.FormatPDF}

type dotOpts struct {
	output   string
	function int
	formats  []string
	keys     []string
	detailed bool
	scale    float64
	noCache  bool
}

// dotCommand creates the dot command, which exports a function as a
// Graphviz node-link diagram.
func (c *CLI) dotCommand() *cobra.Command {
	var keysStr, formatsStr string
	opts := dotOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "dot [doc.json]",
		Short: "Export a function's CFG as a Graphviz diagram",
		Long: `Dot converts one function to Graphviz DOT and optionally renders it.
With --keys the walk produced by replaying those keys is highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.keys = splitKeys(keysStr)
			opts.formats = parseList(formatsStr, render.FormatSVG)
			if err := validateFormats(opts.formats, dotFormats...); err != nil {
				return err
			}
			return c.runDot(cmd.Context(), args[0], opts)
		},
	}

	functionFlag(cmd, &opts.function)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&keysStr, "keys", "", "comma-separated keys whose walk is highlighted")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list statements and terminators in node labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

func (c *CLI) runDot(ctx context.Context, input string, opts dotOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	doc, err := loadDocument(ctx, input)
	if err != nil {
		return err
	}
	fn, err := doc.function(opts.function)
	if err != nil {
		return err
	}
	fnHash, err := cache.FunctionHash(fn)
	if err != nil {
		return err
	}
	store, keyer, err := newCache(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	nlOpts := nodelink.DefaultOptions()
	nlOpts.Theme = cfg.Theme
	nlOpts.Detailed = opts.detailed
	if len(opts.keys) > 0 {
		nlOpts.Path, nlOpts.Current, err = walk(doc, opts.function, opts.keys)
		if err != nil {
			return err
		}
		logger.Debugf("Highlighting walk %v -> bb%d", nlOpts.Path, nlOpts.Current)
	}
	dot := nodelink.ToDOT(fn, nlOpts)

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		key := keyer.DotKey(fnHash, cache.DotKeyOpts{
			Function: opts.function,
			Format:   format,
			Detailed: opts.detailed,
			Keys:     opts.keys,
			Theme:    themeHash(cfg.Theme),
		})
		data, hit, err := store.Get(ctx, key)
		if err != nil {
			logger.Debugf("cache get: %v", err)
		}
		if !hit {
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s with Graphviz...", format))
			spinner.Start()
			data, err = nodelink.Render(ctx, dot, format, opts.scale)
			if err != nil {
				spinner.StopWithError(fmt.Sprintf("Rendering %s failed", format))
				return fmt.Errorf("%s: %w", format, err)
			}
			spinner.Stop()
			if err := store.Set(ctx, key, data, cfg.Cache.TTL.Duration); err != nil {
				logger.Debugf("cache set: %v", err)
			}
		}

		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := writeOutput(path, data); err != nil {
			return err
		}
		if path != "-" {
			printFile(path)
			printStats(hit, plural(len(fn.Blocks), "block"), plural(len(data), "byte"))
		}
	}
	return nil
}

// walk replays keys on a headless explorer and returns the resulting path
// and current block.
func walk(doc *document, function int, keys []string) ([]int, int, error) {
	ex, err := explorer.New(sink.NewRecorder(viewport.Size{Width: config.DefaultCanvasWidth, Height: config.DefaultCanvasHeight}), explorer.NopPanel{})
	if err != nil {
		return nil, 0, err
	}
	if err := ex.LoadDocument(doc.CrateDocument); err != nil {
		return nil, 0, err
	}
	ex.SelectFunction(function)
	for _, k := range keys {
		ex.HandleKey(k)
	}
	current, _ := ex.Current()
	return ex.Path(), current, nil
}
