package modal

import (
	"golang.org/x/net/html"

	"github.com/scrimkit/scrim/pkg/dom"
)

// NewImage constructs an image modal: the content element is an img whose
// source comes from Options.Source. The lifecycle is the plain modal's,
// unchanged.
func NewImage(page *Page, opts Options) (*Modal, error) {
	m, err := newModal(page, opts, imageContent)
	if err != nil {
		return nil, err
	}

	dom.SetAttr(m.content, "src", opts.Source)
	dom.SetAttr(m.content, "alt", "")
	return m, nil
}

func imageContent(Options) *html.Node {
	return dom.El("img", map[string]string{"class": "scrim-content scrim-image"})
}
