package modal

import (
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrimkit/scrim/pkg/dom"
	"github.com/scrimkit/scrim/pkg/sched"
)

func newTestPage(t *testing.T) (*Page, *sched.Loop, *sched.Manual) {
	t.Helper()
	clock := sched.NewManual()
	loop := sched.New(clock)
	return NewPage(loop, zerolog.Nop()), loop, clock
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestNew_EmptyOptions(t *testing.T) {
	page, _, _ := newTestPage(t)

	m, err := New(page, Options{})
	require.NoError(t, err)

	assert.Equal(t, StateVisible, m.State())
	assert.Equal(t, "", dom.Text(m.Content()))
	assert.Len(t, AcquireRegion(page).Modals(), 1)
}

func TestNew_ConflictingContent(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"plain values", Options{Text: "hello", HTML: "<b>hi</b>"}},
		{"whitespace values", Options{Text: " ", HTML: "<p></p>"}},
		{"image options too", Options{Text: "x", HTML: "y", Source: "cat.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, _, _ := newTestPage(t)

			m, err := New(page, tt.opts)
			require.Error(t, err)
			assert.Nil(t, m)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, "content", fieldErrs[0].Field)
			assert.ErrorIs(t, fieldErrs[0].Err, ErrConflictingContent)

			// Construction aborts before any document mutation.
			assert.Nil(t, page.Body().FirstChild)
			assert.Nil(t, page.region)
		})
	}
}

func TestNew_ZeroAnimationIsImmediatelyVisible(t *testing.T) {
	page, loop, _ := newTestPage(t)

	m, err := New(page, Options{Animation: Duration(0)})
	require.NoError(t, err)

	// No intermediate opacity is ever set and the fade is already settled.
	assert.Equal(t, "", dom.Style(m.Cover(), "opacity"))
	assert.InDelta(t, 1.0, m.Opacity(), 0.0001)
	assert.True(t, isClosed(m.Shown()))
	assert.False(t, loop.Pending())
}

func TestNew_FadeIn(t *testing.T) {
	page, loop, clock := newTestPage(t)

	m, err := New(page, Options{Animation: Duration(100 * time.Millisecond)})
	require.NoError(t, err)

	// Cover attaches transparent with the transition declared; the flip to
	// full opacity waits for the next tick.
	assert.Equal(t, StateVisible, m.State())
	assert.Equal(t, "0", dom.Style(m.Cover(), "opacity"))
	assert.Equal(t, "opacity 100ms ease", dom.Style(m.Cover(), "transition"))
	assert.False(t, isClosed(m.Shown()))

	loop.Pump()
	assert.Equal(t, "1", dom.Style(m.Cover(), "opacity"))
	assert.InDelta(t, 0.0, m.Opacity(), 0.0001)
	assert.False(t, isClosed(m.Shown()), "fade never completes in zero time")

	clock.Advance(50 * time.Millisecond)
	loop.Pump()
	assert.InDelta(t, 0.5, m.Opacity(), 0.0001)
	assert.False(t, isClosed(m.Shown()))

	clock.Advance(50 * time.Millisecond)
	loop.Pump()
	assert.InDelta(t, 1.0, m.Opacity(), 0.0001)
	assert.True(t, isClosed(m.Shown()))
}

func TestAcquireRegion_Idempotent(t *testing.T) {
	page, _, _ := newTestPage(t)

	first := AcquireRegion(page)
	for range 5 {
		m, err := New(page, Options{Animation: Duration(0)})
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Same(t, first, AcquireRegion(page))
	}

	assert.Len(t, first.Modals(), 5)
}

func TestAcquireRegion_ContainerIsFirstBodyChild(t *testing.T) {
	doc := dom.NewDocument()
	body := dom.Body(doc)
	existing := dom.El("p", nil)
	dom.Append(body, existing)

	page, err := NewPageFor(doc, sched.New(sched.NewManual()), zerolog.Nop())
	require.NoError(t, err)

	region := AcquireRegion(page)
	assert.Same(t, region.Container(), body.FirstChild)
	assert.Same(t, existing, region.Container().NextSibling)

	// Still first after more modals attach.
	_, err = New(page, Options{Animation: Duration(0)})
	require.NoError(t, err)
	assert.Same(t, region.Container(), body.FirstChild)
}

func TestRegion_ModalsTracksDOMOrder(t *testing.T) {
	page, _, _ := newTestPage(t)

	var created []*Modal
	for range 3 {
		m, err := New(page, Options{Animation: Duration(0)})
		require.NoError(t, err)
		created = append(created, m)
	}

	region := AcquireRegion(page)
	require.Len(t, region.Modals(), 3)
	for i, m := range region.Modals() {
		assert.Same(t, created[i], m)
	}

	// Closing the middle modal removes it without disturbing order.
	created[1].Close()
	remaining := region.Modals()
	require.Len(t, remaining, 2)
	assert.Same(t, created[0], remaining[0])
	assert.Same(t, created[2], remaining[1])
}

func TestClick_ContentNeverDismisses(t *testing.T) {
	page, _, _ := newTestPage(t)

	m, err := New(page, Options{HTML: "<b>bold</b>", Animation: Duration(0)})
	require.NoError(t, err)

	page.Click(m.Content())
	assert.Equal(t, StateVisible, m.State())

	descendant := dom.Find(m.Content(), "b")
	require.NotNil(t, descendant)
	page.Click(descendant)
	assert.Equal(t, StateVisible, m.State())
}

func TestClick_CoverDismisses(t *testing.T) {
	page, _, _ := newTestPage(t)

	m, err := New(page, Options{Animation: Duration(0)})
	require.NoError(t, err)

	page.Click(m.Cover())

	assert.Equal(t, StateClosed, m.State())
	assert.Empty(t, AcquireRegion(page).Modals())
}

func TestClick_DisabledDismiss(t *testing.T) {
	page, _, _ := newTestPage(t)

	m, err := New(page, Options{CloseOnCoverClick: Bool(false), Animation: Duration(0)})
	require.NoError(t, err)

	page.Click(m.Cover())
	page.Click(m.Content())

	assert.Equal(t, StateVisible, m.State())
	assert.Len(t, AcquireRegion(page).Modals(), 1)
}

func TestClose_WaitsFullDuration(t *testing.T) {
	page, loop, clock := newTestPage(t)

	m, err := New(page, Options{Animation: Duration(100 * time.Millisecond)})
	require.NoError(t, err)

	loop.Pump() // flip to full opacity
	clock.Advance(100 * time.Millisecond)
	loop.Pump() // fade-in settled
	require.True(t, isClosed(m.Shown()))

	m.Close()
	assert.Equal(t, StateClosing, m.State())
	assert.Equal(t, "0", dom.Style(m.Cover(), "opacity"))
	assert.Len(t, AcquireRegion(page).Modals(), 1, "cover stays attached while fading out")

	clock.Advance(99 * time.Millisecond)
	loop.Pump()
	assert.False(t, isClosed(m.Closed()))

	clock.Advance(1 * time.Millisecond)
	loop.Pump()
	assert.True(t, isClosed(m.Closed()))
	assert.Equal(t, StateClosed, m.State())
	assert.Empty(t, AcquireRegion(page).Modals())
}

func TestClose_Idempotent(t *testing.T) {
	page, loop, clock := newTestPage(t)

	m, err := New(page, Options{Animation: Duration(0)})
	require.NoError(t, err)

	m.Close()
	require.Equal(t, StateClosed, m.State())

	// A second close against the detached cover is a no-op.
	m.Close()
	assert.Equal(t, StateClosed, m.State())
	assert.Empty(t, AcquireRegion(page).Modals())

	// Same while a fade-out is still in flight.
	m2, err := New(page, Options{Animation: Duration(50 * time.Millisecond)})
	require.NoError(t, err)
	loop.Pump()
	m2.Close()
	m2.Close()
	clock.Advance(50 * time.Millisecond)
	loop.Pump()
	assert.Equal(t, StateClosed, m2.State())
	assert.False(t, loop.Pending())
}

func TestClose_MidAppearCancelsFadeIn(t *testing.T) {
	page, loop, clock := newTestPage(t)

	m, err := New(page, Options{Animation: Duration(100 * time.Millisecond)})
	require.NoError(t, err)

	loop.Pump()
	clock.Advance(30 * time.Millisecond)
	loop.Pump()

	m.Close()
	assert.True(t, isClosed(m.Shown()), "waiters must not block on a dismissed modal")

	clock.Advance(100 * time.Millisecond)
	loop.Pump()

	assert.Equal(t, StateClosed, m.State())
	assert.Empty(t, AcquireRegion(page).Modals())
	assert.False(t, loop.Pending(), "cancelled appear step leaves no stray work")
}

func TestEndToEnd_TextModal(t *testing.T) {
	page, _, _ := newTestPage(t)

	m, err := New(page, Options{Text: "Hello", Animation: Duration(0)})
	require.NoError(t, err)

	assert.Equal(t, "Hello", dom.Text(m.Content()))
	assert.Len(t, AcquireRegion(page).Modals(), 1)

	m.Close()
	assert.Empty(t, AcquireRegion(page).Modals())
}

func TestEndToEnd_HTMLModalNoDismiss(t *testing.T) {
	page, _, _ := newTestPage(t)

	m, err := New(page, Options{HTML: "<b>x</b>", CloseOnCoverClick: Bool(false), Animation: Duration(0)})
	require.NoError(t, err)

	page.Click(m.Cover())
	page.Click(dom.Find(m.Content(), "b"))

	assert.Equal(t, StateVisible, m.State())
	assert.Len(t, AcquireRegion(page).Modals(), 1)
	assert.Equal(t, "x", dom.Text(m.Content()))
}

func TestNewImage(t *testing.T) {
	page, _, _ := newTestPage(t)

	m, err := NewImage(page, Options{Source: "https://example.com/cat.png", Animation: Duration(0)})
	require.NoError(t, err)

	assert.Equal(t, "img", m.Content().Data)
	assert.Equal(t, "https://example.com/cat.png", dom.Attr(m.Content(), "src"))
	assert.Equal(t, "", dom.Attr(m.Content(), "alt"))
	assert.Len(t, AcquireRegion(page).Modals(), 1)
}

func TestPage_DefaultAnimationApplied(t *testing.T) {
	page, _, _ := newTestPage(t)
	page.SetDefaultAnimation(40 * time.Millisecond)

	m, err := New(page, Options{})
	require.NoError(t, err)

	assert.Equal(t, "opacity 40ms ease", dom.Style(m.Cover(), "transition"))
}

func TestDefaultPage_Identity(t *testing.T) {
	assert.Same(t, DefaultPage(), DefaultPage())
}
