package modal

import (
	"errors"
	"time"

	"github.com/hay-kot/criterio"
)

// DefaultAnimation is the fade duration used when neither the options nor
// the page specify one.
const DefaultAnimation = 250 * time.Millisecond

// ErrConflictingContent is returned when Options carry both text and markup
// content at once.
var ErrConflictingContent = errors.New("text and html content are mutually exclusive")

// Options configures a single modal. Unset fields fall back to defaults.
type Options struct {
	// Text sets the content box's rendered text. Mutually exclusive with
	// HTML.
	Text string

	// HTML sets the content box's parsed inner markup. Mutually exclusive
	// with Text.
	HTML string

	// CloseOnCoverClick controls whether clicking the cover outside the
	// content box dismisses the modal. nil means true.
	CloseOnCoverClick *bool

	// Animation is the fade duration. nil means the page default; zero
	// disables transitions entirely.
	Animation *time.Duration

	// Source is the image URI for image modals. Ignored by plain modals.
	Source string
}

// Validate checks for conflicting content fields. All other fields are
// accepted permissively.
func (o Options) Validate() error {
	var errs criterio.FieldErrorsBuilder
	if o.Text != "" && o.HTML != "" {
		errs = errs.Append("content", ErrConflictingContent)
	}
	return errs.ToError()
}

// animation resolves the effective fade duration against the page default.
// Negative durations behave as zero.
func (o Options) animation(def time.Duration) time.Duration {
	d := def
	if o.Animation != nil {
		d = *o.Animation
	}
	if d < 0 {
		return 0
	}
	return d
}

// closeOnCoverClick resolves the dismiss flag (default true).
func (o Options) closeOnCoverClick() bool {
	if o.CloseOnCoverClick == nil {
		return true
	}
	return *o.CloseOnCoverClick
}

// Duration returns a pointer to d, for use in Options.
func Duration(d time.Duration) *time.Duration { return &d }

// Bool returns a pointer to b, for use in Options.
func Bool(b bool) *bool { return &b }
