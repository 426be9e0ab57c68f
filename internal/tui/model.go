package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/scrimkit/scrim/internal/core/config"
	"github.com/scrimkit/scrim/pkg/modal"
	"github.com/scrimkit/scrim/pkg/sched"
)

// UIState represents the current state of the workbench.
type UIState int

const (
	stateNormal UIState = iota
	stateComposing
)

// Key constants for event handling.
const (
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
)

// pumpInterval is how often the workbench pumps the page's run loop; it
// doubles as the fade animation frame rate.
const pumpInterval = 50 * time.Millisecond

// pumpTickMsg is sent to advance the run loop and animation frames.
type pumpTickMsg struct{}

// schedulePumpTick returns a command that schedules the next loop pump.
func schedulePumpTick() tea.Cmd {
	return tea.Tick(pumpInterval, func(time.Time) tea.Msg {
		return pumpTickMsg{}
	})
}

// Model is the main Bubble Tea model for the workbench.
type Model struct {
	cfg  *config.Config
	page *modal.Page
	loop *sched.Loop

	state    UIState
	form     *ComposeForm
	width    int
	height   int
	err      error
	quitting bool

	// markdown holds raw markdown sources by modal ID so the view can
	// render them with glamour instead of as plain text.
	markdown map[string]string
	spawned  int

	// vp scrolls the topmost modal's content box. vpFor tracks which modal
	// the viewport currently holds.
	vp    viewport.Model
	vpFor string

	log zerolog.Logger
}

// New creates the workbench model with a fresh page driven by a real clock.
func New(cfg *config.Config, log zerolog.Logger) Model {
	loop := sched.New(sched.RealClock())
	page := modal.NewPage(loop, log)
	page.SetDefaultAnimation(cfg.Animation())

	return Model{
		cfg:      cfg,
		page:     page,
		loop:     loop,
		markdown: make(map[string]string),
		log:      log,
	}
}

// Page returns the headless page the workbench drives. Exposed for tests.
func (m Model) Page() *modal.Page {
	return m.page
}

func (m Model) Init() tea.Cmd {
	return schedulePumpTick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vpFor = "" // force viewport resize on next sync
		return m.syncViewport(), nil

	case pumpTickMsg:
		// Pumping can complete a close and remove its modal, so the
		// viewport is re-synced afterwards.
		m.loop.Pump()
		return m.syncViewport(), schedulePumpTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Forms consume non-key messages too (blink, etc).
	if m.state == stateComposing && m.form != nil {
		return m.updateComposeForm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == keyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state == stateComposing {
		return m.handleComposeKey(msg, keyStr)
	}
	return m.handleNormalKey(keyStr)
}

func (m Model) handleComposeKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	if keyStr == keyEsc {
		m.form.SetCancelled()
		m.state = stateNormal
		m.form = nil
		return m, nil
	}
	return m.updateComposeForm(msg)
}

// updateComposeForm routes a message to the form and creates the modal when
// the form completes.
func (m Model) updateComposeForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f

		switch f.State {
		case huh.StateCompleted:
			opts, kind := m.form.Result()
			m.state = stateNormal
			m.form = nil
			return m.create(kind, opts), cmd

		case huh.StateAborted:
			m.state = stateNormal
			m.form = nil
			return m, cmd
		}
	}
	return m, cmd
}

func (m Model) handleNormalKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case keyEsc:
		// Close the topmost modal; quit when none is open.
		if top := m.topmost(); top != nil {
			top.Close()
			return m.syncViewport(), nil
		}
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.vpFor != "" {
			m.vp.ScrollUp(1)
		}
		return m, nil

	case "down", "j":
		if m.vpFor != "" {
			m.vp.ScrollDown(1)
		}
		return m, nil
	}

	kb, ok := m.cfg.Keybindings[keyStr]
	if !ok {
		return m, nil
	}

	switch kb.Action {
	case config.ActionText:
		m.spawned++
		return m.create(kindText, modal.Options{
			Text: fmt.Sprintf("Hello from modal #%d", m.spawned),
		}), nil

	case config.ActionMarkdown:
		m.spawned++
		return m.create(kindMarkdown, modal.Options{Text: sampleMarkdown}), nil

	case config.ActionImage:
		m.spawned++
		return m.create(kindImage, modal.Options{Source: sampleImageSource}), nil

	case config.ActionCompose:
		m.state = stateComposing
		m.form = NewComposeForm(m.cfg.Animation())
		return m, m.form.Form().Init()

	case config.ActionCoverClick:
		if top := m.topmost(); top != nil {
			m.page.Click(top.Cover())
		}
		return m.syncViewport(), nil

	case config.ActionContentClick:
		if top := m.topmost(); top != nil {
			m.page.Click(top.Content())
		}
		return m, nil
	}

	return m, nil
}

// create constructs a modal of the given kind and records any error for the
// status line.
func (m Model) create(kind string, opts modal.Options) Model {
	var (
		mod *modal.Modal
		err error
	)

	if kind == kindImage {
		mod, err = modal.NewImage(m.page, opts)
	} else {
		mod, err = modal.New(m.page, opts)
	}

	if err != nil {
		m.err = err
		return m
	}

	m.err = nil
	if kind == kindMarkdown {
		m.markdown[mod.ID()] = opts.Text
	}
	return m.syncViewport()
}

// syncViewport points the viewport at the topmost modal's content,
// rebuilding it when the topmost modal changes or the window resizes.
func (m Model) syncViewport() Model {
	top := m.topmost()
	if top == nil {
		m.vpFor = ""
		return m
	}
	if m.vpFor == top.ID() {
		return m
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	contentWidth := min(w-modalBoxMargin, modalBoxMaxWidth) - modalBoxPadding
	contentHeight := min(h-modalBoxMargin, modalBoxMaxHeight) - modalBoxChrome

	m.vp = viewport.New(contentWidth, contentHeight)
	m.vp.SetContent(m.modalBody(top, contentWidth))
	m.vpFor = top.ID()
	return m
}

// topmost returns the most recently attached active modal, or nil.
func (m Model) topmost() *modal.Modal {
	mods := modal.AcquireRegion(m.page).Modals()
	if len(mods) == 0 {
		return nil
	}
	return mods[len(mods)-1]
}

// Sample content for one-key modals.
const (
	sampleImageSource = "https://placehold.co/600x400.png"

	sampleMarkdown = `# scrim

A dimmed cover, a centered content box, and a fade.

- click the cover to dismiss
- click the content: nothing happens
`
)
