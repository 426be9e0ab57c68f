// Package render builds static HTML snapshots of documents with scrim
// modals mounted, for the render command and the preview server.
package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/scrimkit/scrim/pkg/dom"
	"github.com/scrimkit/scrim/pkg/modal"
	"github.com/scrimkit/scrim/pkg/sched"
)

// ModalSpec describes one modal to mount into a rendered document.
type ModalSpec struct {
	Kind      string // "text", "html", or "image"
	Content   string // text or markup, depending on Kind
	Source    string // image source, Kind "image" only
	Animation *time.Duration
	Dismiss   *bool
}

// Recognized ModalSpec Kind values.
const (
	KindText  = "text"
	KindHTML  = "html"
	KindImage = "image"
)

// Document parses an HTML document from src, mounts the given modals, and
// returns the serialized result with the base stylesheet injected. Fades are
// settled before serialization so every cover renders fully visible.
func Document(src io.Reader, specs []ModalSpec, defaultAnim time.Duration, log zerolog.Logger) (string, error) {
	doc, err := dom.ParseDocument(src)
	if err != nil {
		return "", err
	}

	clock := sched.NewManual()
	loop := sched.New(clock)

	page, err := modal.NewPageFor(doc, loop, log)
	if err != nil {
		return "", err
	}
	page.SetDefaultAnimation(defaultAnim)

	for i, spec := range specs {
		if err := mount(page, spec); err != nil {
			return "", fmt.Errorf("mount modal %d: %w", i, err)
		}
	}

	// Settle all fade-ins by pumping through the longest possible duration.
	loop.PumpFor(clock, defaultAnim+maxAnimation(specs))

	injectStylesheet(doc)

	return dom.RenderString(doc)
}

// Sample is a small built-in document for previews without a source file.
const Sample = `<!DOCTYPE html>
<html>
<head><title>scrim preview</title></head>
<body>
<h1>scrim preview</h1>
<p>This page is rendered by the scrim preview server. The dimmed cover and
centered content box below it come from mounted modals.</p>
</body>
</html>
`

func mount(page *modal.Page, spec ModalSpec) error {
	opts := modal.Options{
		Animation:         spec.Animation,
		CloseOnCoverClick: spec.Dismiss,
	}

	var err error
	switch spec.Kind {
	case KindImage:
		opts.Source = spec.Source
		_, err = modal.NewImage(page, opts)
	case KindHTML:
		opts.HTML = spec.Content
		_, err = modal.New(page, opts)
	case KindText, "":
		opts.Text = spec.Content
		_, err = modal.New(page, opts)
	default:
		return fmt.Errorf("unknown modal kind %q", spec.Kind)
	}
	return err
}

func maxAnimation(specs []ModalSpec) time.Duration {
	var max time.Duration
	for _, s := range specs {
		if s.Animation != nil && *s.Animation > max {
			max = *s.Animation
		}
	}
	return max
}

// injectStylesheet appends the base scrim stylesheet to the document head.
// html.Parse always produces a head element, so the lookup cannot miss on a
// parsed document.
func injectStylesheet(doc *html.Node) {
	head := dom.Find(doc, "head")
	if head == nil {
		return
	}

	style := dom.El("style", map[string]string{"data-scrim-style": ""})
	dom.SetText(style, "\n"+modal.BaseCSS)
	dom.Append(head, style)
}

// Expand resolves document glob patterns to a sorted, de-duplicated file
// list. Patterns support doublestar syntax, so "docs/**/*.html" works.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}
