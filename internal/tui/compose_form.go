package tui

import (
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/scrimkit/scrim/internal/styles"
	"github.com/scrimkit/scrim/pkg/modal"
)

// Content kinds a composed modal can carry.
const (
	kindText     = "text"
	kindMarkdown = "markdown"
	kindHTML     = "html"
	kindImage    = "image"
)

// ComposeForm wraps a huh.Form for building a custom modal.
type ComposeForm struct {
	form *huh.Form

	kind       string
	content    string
	source     string
	durationMS string
	dismiss    bool

	cancelled bool
}

// NewComposeForm creates the compose form with workbench defaults.
func NewComposeForm(defaultAnimation time.Duration) *ComposeForm {
	f := &ComposeForm{
		kind:       kindText,
		durationMS: strconv.Itoa(int(defaultAnimation.Milliseconds())),
		dismiss:    true,
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Text", kindText),
					huh.NewOption("Markdown", kindMarkdown),
					huh.NewOption("HTML", kindHTML),
					huh.NewOption("Image", kindImage),
				).
				Value(&f.kind),
			huh.NewInput().
				Title("Content").
				Description("text, markdown, or markup depending on kind").
				Value(&f.content),
			huh.NewInput().
				Title("Image source").
				Description("only used for image modals").
				Value(&f.source),
			huh.NewInput().
				Title("Animation (ms)").
				Value(&f.durationMS).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil {
						return errors.New("must be a number")
					}
					if n < 0 {
						return errors.New("must be non-negative")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Dismiss on cover click").
				Value(&f.dismiss),
		),
	).WithTheme(styles.FormTheme())

	return f
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *ComposeForm) Form() *huh.Form {
	return f.form
}

// Cancelled returns true if the form was cancelled.
func (f *ComposeForm) Cancelled() bool {
	return f.cancelled
}

// SetCancelled marks the form as cancelled.
func (f *ComposeForm) SetCancelled() {
	f.cancelled = true
}

// Result converts the submitted form into modal options. Only valid once the
// form has completed.
func (f *ComposeForm) Result() (opts modal.Options, kind string) {
	opts = modal.Options{
		CloseOnCoverClick: modal.Bool(f.dismiss),
	}

	if ms, err := strconv.Atoi(f.durationMS); err == nil {
		opts.Animation = modal.Duration(time.Duration(ms) * time.Millisecond)
	}

	switch f.kind {
	case kindHTML:
		opts.HTML = f.content
	case kindImage:
		opts.Source = f.source
	default:
		// Markdown rides in Text; the workbench renders it with glamour.
		opts.Text = f.content
	}

	return opts, f.kind
}
