// Package modal implements dimmed full-screen modal overlays over a headless
// HTML document: a cover element, a centered content box, fade transitions,
// and dismiss-on-outside-click behavior. Modals register themselves into a
// per-page region whose membership is derived from the live node tree.
package modal

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/scrimkit/scrim/pkg/dom"
	"github.com/scrimkit/scrim/pkg/randid"
	"github.com/scrimkit/scrim/pkg/sched"
)

// State is a modal's lifecycle position. There is no transition out of
// StateClosed.
type State int

const (
	StateConstructing State = iota
	StateVisible
	StateClosing
	StateClosed
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateConstructing:
		return "constructing"
	case StateVisible:
		return "visible"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ContentFactory builds a modal's content element from its options. The
// default factory produces a plain content box; image modals substitute an
// img element.
type ContentFactory func(opts Options) *html.Node

// Modal owns a full-viewport cover element and the content element inside
// it. A closed modal is detached from the document and must not be reused.
type Modal struct {
	page    *Page
	id      string
	cover   *html.Node
	content *html.Node

	anim    time.Duration
	dismiss bool
	state   State

	fade    *fade        // in-flight opacity interpolation, nil when settled
	pending *sched.Timer // cancellable next transition step

	shown      chan struct{}
	shownDone  bool
	closed     chan struct{}
	closedDone bool

	log zerolog.Logger
}

// New constructs a modal and attaches it to the page: content element via
// the default factory, cover with dismiss wiring, fade-in, and registration
// into the page's region. When New returns, the cover is part of the
// document; wait on Shown for the fade-in to settle.
func New(page *Page, opts Options) (*Modal, error) {
	return newModal(page, opts, defaultContent)
}

func defaultContent(Options) *html.Node {
	return dom.El("div", map[string]string{"class": "scrim-content"})
}

func newModal(page *Page, opts Options, factory ContentFactory) (*Modal, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("configure modal: %w", err)
	}

	id := randid.WithPrefix("scrim", 8)
	m := &Modal{
		page:    page,
		id:      id,
		anim:    opts.animation(page.defaultAnim),
		dismiss: opts.closeOnCoverClick(),
		state:   StateConstructing,
		shown:   make(chan struct{}),
		closed:  make(chan struct{}),
		log:     page.log.With().Str("modal", id).Logger(),
	}

	m.content = factory(opts)
	switch {
	case opts.Text != "":
		dom.SetText(m.content, opts.Text)
	case opts.HTML != "":
		if err := dom.SetInnerHTML(m.content, opts.HTML); err != nil {
			return nil, fmt.Errorf("set content markup: %w", err)
		}
	}

	m.cover = dom.El("div", map[string]string{
		"class":         "scrim-cover",
		"data-scrim-id": m.id,
	})
	page.owners[m.cover] = m
	dom.Append(m.cover, m.content)

	if m.dismiss {
		page.clicks[m.cover] = m.coverClicked
	}

	// Fade-in is fire-and-forget: attachment below must not wait for it,
	// the element has to be in the tree to be paintable at all.
	m.appear()

	region := AcquireRegion(page)
	dom.Append(region.container, m.cover)
	m.state = StateVisible

	m.log.Debug().Dur("animation", m.anim).Bool("dismiss", m.dismiss).Msg("modal attached")
	return m, nil
}

// ID returns the modal's generated identifier, also present on the cover as
// data-scrim-id.
func (m *Modal) ID() string { return m.id }

// Cover returns the modal's cover element.
func (m *Modal) Cover() *html.Node { return m.cover }

// Content returns the modal's content element.
func (m *Modal) Content() *html.Node { return m.content }

// State returns the modal's current lifecycle state.
func (m *Modal) State() State { return m.state }

// Shown is closed once the fade-in has fully settled (immediately for a
// zero animation duration). It is also closed when the modal is dismissed
// mid-appear, so waiters never block on a modal that will not finish
// appearing.
func (m *Modal) Shown() <-chan struct{} { return m.shown }

// Closed is closed once the fade-out has finished and the cover has been
// detached from the region.
func (m *Modal) Closed() <-chan struct{} { return m.closed }

// Close plays the fade-out, then detaches the cover from the region. No
// notification to the region is needed: membership is re-derived from the
// container's children on the next query. Closing an already closing or
// closed modal is a no-op.
func (m *Modal) Close() {
	if m.state == StateClosing || m.state == StateClosed {
		return
	}
	m.state = StateClosing

	// Cancel a pending appear step so the two transitions cannot race.
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	m.signalShown()

	m.disappear(m.remove)
}

// coverClicked handles a click dispatched to the cover. Clicks on the
// content element or any of its descendants are ignored.
func (m *Modal) coverClicked(target *html.Node) {
	if target == m.content || dom.Contains(target, m.content) {
		return
	}
	m.log.Debug().Msg("cover clicked, dismissing")
	m.Close()
}

// appear begins the fade-in. The cover starts fully transparent and the
// opacity flip happens one tick later, otherwise the transition would start
// from an unregistered style and no visible fade occurs.
func (m *Modal) appear() {
	if m.anim == 0 {
		m.signalShown()
		return
	}

	dom.SetStyle(m.cover, "opacity", "0")
	dom.SetStyle(m.cover, "transition", fmt.Sprintf("opacity %dms ease", m.anim.Milliseconds()))

	m.pending = m.page.loop.NextTick(func() {
		dom.SetStyle(m.cover, "opacity", "1")
		m.fade = newFade(m.page.loop.Clock().Now(), 0, 1, m.anim)
		m.pending = m.page.loop.After(m.anim, func() {
			m.pending = nil
			m.fade = nil
			m.signalShown()
		})
	})
}

// disappear fades the cover out and calls done once the full animation
// duration has elapsed. A zero duration completes synchronously.
func (m *Modal) disappear(done func()) {
	if m.anim == 0 {
		done()
		return
	}

	from := m.Opacity()
	dom.SetStyle(m.cover, "opacity", "0")
	m.fade = newFade(m.page.loop.Clock().Now(), from, 0, m.anim)
	m.pending = m.page.loop.After(m.anim, func() {
		m.pending = nil
		m.fade = nil
		done()
	})
}

func (m *Modal) remove() {
	dom.Detach(m.cover)
	delete(m.page.owners, m.cover)
	delete(m.page.clicks, m.cover)
	m.state = StateClosed

	if !m.closedDone {
		m.closedDone = true
		close(m.closed)
	}
	m.log.Debug().Msg("modal closed")
}

func (m *Modal) signalShown() {
	if !m.shownDone {
		m.shownDone = true
		close(m.shown)
	}
}

// Opacity returns the cover's current effective opacity, interpolating an
// in-flight fade against the loop clock. A cover with no opacity style is
// fully visible.
func (m *Modal) Opacity() float64 {
	if m.fade != nil {
		return m.fade.at(m.page.loop.Clock().Now())
	}
	switch dom.Style(m.cover, "opacity") {
	case "", "1":
		return 1
	case "0":
		return 0
	default:
		return 1
	}
}
