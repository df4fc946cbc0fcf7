package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgexplorer/pkg/cache"
	"github.com/matzehuels/cfgexplorer/pkg/config"
	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/explorer"
	"github.com/matzehuels/cfgexplorer/pkg/render"
	"github.com/matzehuels/cfgexplorer/pkg/render/sink"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// renderFormats are the headless frame formats.
var renderFormats = []string{render.FormatSVG, render.FormatPNG, render.FormatPDF}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	function int      // function index
	keys     []string // keys replayed before the frame is captured
	formats  []string // output formats: "svg", "png", "pdf"
	width    float64  // canvas width, 0 means the configured width
	height   float64  // canvas height, 0 means the configured height
	noCache  bool     // bypass the render cache
}

// renderCommand creates the render command for headless frames.
func (c *CLI) renderCommand() *cobra.Command {
	var keysStr, formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [doc.json]",
		Short: "Render an explorer frame headlessly after replaying keys",
		Long: `Render loads a function, replays the given keys exactly as the
interactive explorer would, and writes the resulting frame.

  cfgexplorer render crate.json --keys j,Enter,Enter -f svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.keys = splitKeys(keysStr)
			opts.formats = parseList(formatsStr, render.FormatSVG)
			if err := validateFormats(opts.formats, renderFormats...); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	functionFlag(cmd, &opts.function)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&keysStr, "keys", "", "comma-separated keys to replay (e.g. j,Enter,h)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// splitKeys parses the --keys flag. A literal comma key is not expressible.
func splitKeys(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
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

	size := canvasSize(cfg, opts.width, opts.height)
	base := basePath(opts.output, input)
	themeKey := themeHash(cfg.Theme)

	for _, format := range opts.formats {
		key := keyer.FrameKey(fnHash, cache.FrameKeyOpts{
			Function: opts.function,
			Keys:     opts.keys,
			Format:   format,
			Width:    size.Width,
			Height:   size.Height,
			Theme:    themeKey,
		})
		data, hit, err := store.Get(ctx, key)
		if err != nil {
			logger.Debugf("cache get: %v", err)
		}
		if !hit {
			prog := newProgress(logger)
			data, err = renderFrame(ctx, doc, cfg, size, format, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			prog.debug("Rendered " + format)
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
			printStats(hit, plural(len(opts.keys), "key"), plural(len(data), "byte"))
		}
	}
	return nil
}

// renderFrame replays opts.keys on a fresh explorer drawing onto a surface
// for format and returns the encoded frame.
func renderFrame(ctx context.Context, doc *document, cfg config.Config, size viewport.Size, format string, opts renderOpts) ([]byte, error) {
	explorerOpts := []explorer.Option{
		explorer.WithLogger(loggerFromContext(ctx)),
		explorer.WithTheme(cfg.Theme),
	}

	switch format {
	case render.FormatPNG:
		surface, err := sink.NewRaster(size)
		if err != nil {
			return nil, err
		}
		if err := replay(doc, surface, opts, explorerOpts); err != nil {
			return nil, err
		}
		return surface.PNG()
	default:
		surface := sink.NewSVG(size, sink.WithTitle(doc.Functions[opts.function].DisplayName()))
		if err := replay(doc, surface, opts, explorerOpts); err != nil {
			return nil, err
		}
		return render.Convert(ctx, surface.Bytes(), format, 1)
	}
}

// replay loads doc into an explorer on surface, selects the function and
// sends every key.
func replay(doc *document, surface render.Surface, opts renderOpts, explorerOpts []explorer.Option) error {
	ex, err := explorer.New(surface, explorer.NopPanel{}, explorerOpts...)
	if err != nil {
		return err
	}
	if err := ex.LoadDocument(doc.CrateDocument); err != nil {
		return err
	}
	ex.SelectFunction(opts.function)
	for _, k := range opts.keys {
		ex.HandleKey(k)
	}
	return nil
}

// canvasSize applies flag overrides to the configured canvas.
func canvasSize(cfg config.Config, width, height float64) viewport.Size {
	size := viewport.Size{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}
	if width > 0 {
		size.Width = width
	}
	if height > 0 {
		size.Height = height
	}
	return size
}

// themeHash keys cached output by the colors it was drawn with.
func themeHash(t render.Theme) string {
	data, _ := json.Marshal(t)
	return cache.Hash(data)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a known format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	switch ext {
	case render.FormatSVG, render.FormatPNG, render.FormatPDF, "dot", "json":
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
