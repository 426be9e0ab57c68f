package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/scrimkit/scrim/internal/printer"
	"github.com/scrimkit/scrim/internal/render"
)

type RenderCmd struct {
	flags  *Flags
	modals modalFlags
	outDir string
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Render documents with modals mounted to static HTML",
		UsageText: "scrim render [options] [glob ...]",
		Description: `Renders HTML documents with the requested modals mounted and fades settled.

Globs support ** patterns, so 'scrim render docs/**/*.html' works. With no
globs, a built-in sample document is rendered to stdout.`,
		Flags: append(cmd.modals.cliFlags(),
			&cli.StringFlag{
				Name:        "out-dir",
				Aliases:     []string{"o"},
				Usage:       "directory for rendered output (default: next to each source)",
				Destination: &cmd.outDir,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	cfg, err := cmd.flags.RequireConfig()
	if err != nil {
		return err
	}

	specs := cmd.modals.specs(c)
	if len(specs) == 0 {
		specs = []render.ModalSpec{{Kind: render.KindText, Content: "Hello from scrim"}}
	}

	logger := log.With().Str("component", "render").Logger()

	// No globs: render the sample document to stdout.
	if c.Args().Len() == 0 {
		out, err := render.Document(strings.NewReader(render.Sample), specs, cfg.Animation(), logger)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(c.Root().Writer, out)
		return nil
	}

	files, err := render.Expand(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents match %s", strings.Join(c.Args().Slice(), " "))
	}

	if cmd.outDir != "" {
		if err := os.MkdirAll(cmd.outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}

		out, err := render.Document(strings.NewReader(string(data)), specs, cfg.Animation(), logger)
		if err != nil {
			return fmt.Errorf("render %s: %w", file, err)
		}

		outPath := cmd.outputPath(file)
		if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		p.Successf("%s -> %s", file, outPath)
	}

	return nil
}

// outputPath places rendered output in out-dir when set, otherwise next to
// the source with a .scrim.html suffix.
func (cmd *RenderCmd) outputPath(sourcePath string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath)) + ".scrim.html"
	if cmd.outDir != "" {
		return filepath.Join(cmd.outDir, base)
	}
	return filepath.Join(filepath.Dir(sourcePath), base)
}
