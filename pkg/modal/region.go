package modal

import (
	"golang.org/x/net/html"

	"github.com/scrimkit/scrim/pkg/dom"
)

// Region is the single attachment point for every modal cover on a page. It
// keeps no membership list of its own: the set of active modals is derived
// from the container's current children on every query.
type Region struct {
	page      *Page
	container *html.Node
}

// AcquireRegion returns the page's region, creating it on first use. A new
// container element is inserted as the body's very first child and published
// on the page, so every later acquisition yields the same instance.
func AcquireRegion(p *Page) *Region {
	if p.region != nil {
		return p.region
	}

	container := dom.El("div", map[string]string{
		"class":             "scrim-region",
		"data-scrim-region": "",
	})
	dom.PrependChild(p.body, container)

	p.region = &Region{page: p, container: container}
	p.log.Debug().Msg("region created")
	return p.region
}

// Container returns the region's container element.
func (r *Region) Container() *html.Node { return r.container }

// Modals returns the active modals in DOM order, recovered from the
// container's current element children through the page's side table.
func (r *Region) Modals() []*Modal {
	var modals []*Modal
	for _, c := range dom.ElementChildren(r.container) {
		if m, ok := r.page.owners[c]; ok {
			modals = append(modals, m)
		}
	}
	return modals
}
