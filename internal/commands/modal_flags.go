package commands

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/scrimkit/scrim/internal/render"
	"github.com/scrimkit/scrim/pkg/modal"
)

// modalFlags holds the shared modal definition flags for the render and
// serve commands. Each content flag mounts one modal in the order text,
// html, image.
type modalFlags struct {
	text       string
	html       string
	image      string
	durationMS int
	noDismiss  bool
}

func (f *modalFlags) cliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "text",
			Usage:       "mount a modal with the given text content",
			Destination: &f.text,
		},
		&cli.StringFlag{
			Name:        "html",
			Usage:       "mount a modal with the given HTML content",
			Destination: &f.html,
		},
		&cli.StringFlag{
			Name:        "image",
			Usage:       "mount an image modal with the given source",
			Destination: &f.image,
		},
		&cli.IntFlag{
			Name:        "duration",
			Usage:       "fade duration in milliseconds (0 disables)",
			Destination: &f.durationMS,
		},
		&cli.BoolFlag{
			Name:        "no-dismiss",
			Usage:       "keep modals open on cover clicks",
			Destination: &f.noDismiss,
		},
	}
}

// specs builds the modal list from the parsed flags. c is consulted so an
// explicit "--duration 0" is distinguishable from the flag being absent.
func (f *modalFlags) specs(c *cli.Command) []render.ModalSpec {
	var animation *time.Duration
	if c.IsSet("duration") {
		animation = modal.Duration(time.Duration(f.durationMS) * time.Millisecond)
	}

	var dismiss *bool
	if f.noDismiss {
		dismiss = modal.Bool(false)
	}

	var specs []render.ModalSpec
	if f.text != "" {
		specs = append(specs, render.ModalSpec{
			Kind: render.KindText, Content: f.text,
			Animation: animation, Dismiss: dismiss,
		})
	}
	if f.html != "" {
		specs = append(specs, render.ModalSpec{
			Kind: render.KindHTML, Content: f.html,
			Animation: animation, Dismiss: dismiss,
		})
	}
	if f.image != "" {
		specs = append(specs, render.ModalSpec{
			Kind: render.KindImage, Source: f.image,
			Animation: animation, Dismiss: dismiss,
		})
	}
	return specs
}
