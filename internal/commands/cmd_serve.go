package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/scrimkit/scrim/internal/printer"
	"github.com/scrimkit/scrim/internal/render"
	"github.com/scrimkit/scrim/internal/server"
)

type ServeCmd struct {
	flags  *Flags
	modals modalFlags
	addr   string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve a rendered document over HTTP for browser previews",
		UsageText: "scrim serve [options] [document]",
		Description: `Serves the document with the requested modals mounted. When live reload is
enabled the page is re-rendered whenever the document changes on disk.

With no document argument a built-in sample page is served.`,
		Flags: append(cmd.modals.cliFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (overrides config)",
				Destination: &cmd.addr,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	cfg, err := cmd.flags.RequireConfig()
	if err != nil {
		return err
	}

	sourcePath := c.Args().First()
	if c.Args().Len() > 1 {
		return fmt.Errorf("serve takes at most one document, got %d", c.Args().Len())
	}

	specs := cmd.modals.specs(c)
	if len(specs) == 0 {
		specs = []render.ModalSpec{{Kind: render.KindText, Content: "Hello from scrim"}}
	}

	addr := cmd.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	logger := log.With().Str("component", "server").Logger()

	srv, err := server.New(addr, sourcePath, specs, cfg.Animation(), logger)
	if err != nil {
		return err
	}

	if cfg.Server.LiveReload && sourcePath != "" {
		if err := srv.Watch(); err != nil {
			return fmt.Errorf("start live reload: %w", err)
		}
		p.Infof("live reload enabled for %s", sourcePath)
	}

	p.Infof("preview at http://%s/", addr)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(runCtx)
}
