package cli

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgexplorer/internal/server"
)

// serveCommand creates the serve command, which hosts explorer sessions
// over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [doc.json]",
		Short: "Host explorer sessions over HTTP",
		Long: `Serve starts an HTTP server on which clients create explorer sessions,
send them keys, wheel and drag events, and fetch SVG frames.

Without a document every session must be created with one in the request body.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runServe(cmd.Context(), input, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	var data []byte
	if input != "" {
		// Validate up front so a bad file fails here and not on first request.
		if _, err := loadDocument(ctx, input); err != nil {
			return err
		}
		if data, err = os.ReadFile(input); err != nil {
			return err
		}
	}

	opts := server.OptionsFromConfig(cfg, data)
	opts.Logger = c.Logger
	srv := server.New(opts)

	printSuccess("Serving on http://%s", addr)
	if input != "" {
		printKeyValue("Document", input)
	} else {
		printWarning("No default document: every session must be created with one")
	}
	printKeyValue("Session TTL", cfg.Server.SessionTTL.String())
	printNextStep("Create a session", "curl -X POST http://"+addr+"/sessions")

	err = srv.Run(ctx, addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
