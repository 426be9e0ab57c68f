package modal

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/scrimkit/scrim/pkg/dom"
	"github.com/scrimkit/scrim/pkg/sched"
)

// Page is the context object shared by every modal on one document. It owns
// the document tree, the run loop, the region slot, and the side tables that
// map cover elements back to their modals. All methods must be called from
// the goroutine that pumps the loop.
type Page struct {
	doc  *html.Node
	body *html.Node
	loop *sched.Loop

	region      *Region
	owners      map[*html.Node]*Modal
	clicks      map[*html.Node]func(target *html.Node)
	defaultAnim time.Duration

	log zerolog.Logger
}

// NewPage creates a page around a fresh minimal document.
func NewPage(loop *sched.Loop, log zerolog.Logger) *Page {
	p, err := NewPageFor(dom.NewDocument(), loop, log)
	if err != nil {
		// NewDocument always has a body.
		panic(err)
	}
	return p
}

// NewPageFor creates a page around an existing parsed document. The document
// must have a body element.
func NewPageFor(doc *html.Node, loop *sched.Loop, log zerolog.Logger) (*Page, error) {
	body := dom.Body(doc)
	if body == nil {
		return nil, fmt.Errorf("document has no body element")
	}

	return &Page{
		doc:         doc,
		body:        body,
		loop:        loop,
		owners:      make(map[*html.Node]*Modal),
		clicks:      make(map[*html.Node]func(*html.Node)),
		defaultAnim: DefaultAnimation,
		log:         log,
	}, nil
}

// Document returns the page's document root.
func (p *Page) Document() *html.Node { return p.doc }

// Body returns the page's body element.
func (p *Page) Body() *html.Node { return p.body }

// Loop returns the run loop modals on this page schedule against.
func (p *Page) Loop() *sched.Loop { return p.loop }

// SetDefaultAnimation overrides the fade duration used when options omit
// one.
func (p *Page) SetDefaultAnimation(d time.Duration) {
	if d < 0 {
		d = 0
	}
	p.defaultAnim = d
}

// Click simulates a click on target. The event walks up the parent chain
// until a cover with a registered handler is found; covers whose modals
// disabled dismiss-on-cover-click have no handler and swallow the click.
func (p *Page) Click(target *html.Node) {
	for n := target; n != nil; n = n.Parent {
		if handler, ok := p.clicks[n]; ok {
			handler(target)
			return
		}
	}
}

var (
	defaultPageOnce sync.Once
	defaultPage     *Page
)

// DefaultPage returns the lazily initialized process-wide page, backed by a
// real clock. It exists for the outermost application boundary; prefer
// constructing an explicit Page and passing it around.
func DefaultPage() *Page {
	defaultPageOnce.Do(func() {
		defaultPage = NewPage(sched.New(sched.RealClock()), zerolog.Nop())
	})
	return defaultPage
}
