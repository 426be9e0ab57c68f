package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrimkit/scrim/internal/core/config"
	"github.com/scrimkit/scrim/pkg/modal"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	zero := 0
	cfg.AnimationMS = &zero // keep tests free of pending transitions
	cfg.Keybindings = map[string]config.Keybinding{
		"t": {Action: config.ActionText, Help: "text modal"},
		"m": {Action: config.ActionMarkdown, Help: "markdown modal"},
		"i": {Action: config.ActionImage, Help: "image modal"},
		"c": {Action: config.ActionCoverClick, Help: "click cover"},
		"x": {Action: config.ActionContentClick, Help: "click content"},
	}
	return New(&cfg, zerolog.Nop())
}

func pressKey(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()

	var msg tea.KeyMsg
	switch key {
	case keyEsc:
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model, cmd
}

func activeModals(m Model) []*modal.Modal {
	return modal.AcquireRegion(m.Page()).Modals()
}

func TestModel_SpawnText(t *testing.T) {
	m := testModel(t)

	m, _ = pressKey(t, m, "t")

	mods := activeModals(m)
	require.Len(t, mods, 1)
	assert.Contains(t, m.contentSummary(mods[0]), "Hello from modal #1")
}

func TestModel_SpawnImage(t *testing.T) {
	m := testModel(t)

	m, _ = pressKey(t, m, "i")

	mods := activeModals(m)
	require.Len(t, mods, 1)
	assert.Equal(t, "img", mods[0].Content().Data)
	assert.Contains(t, m.contentSummary(mods[0]), "img: ")
}

func TestModel_SpawnMarkdownTracksSource(t *testing.T) {
	m := testModel(t)

	m, _ = pressKey(t, m, "m")

	mods := activeModals(m)
	require.Len(t, mods, 1)
	assert.Contains(t, m.markdown[mods[0].ID()], "# scrim")
}

func TestModel_EscClosesTopmostThenQuits(t *testing.T) {
	m := testModel(t)
	m, _ = pressKey(t, m, "t")
	m, _ = pressKey(t, m, "t")
	require.Len(t, activeModals(m), 2)

	m, _ = pressKey(t, m, keyEsc)
	assert.Len(t, activeModals(m), 1)

	m, _ = pressKey(t, m, keyEsc)
	assert.Empty(t, activeModals(m))

	m, cmd := pressKey(t, m, keyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
}

func TestModel_ClickKeys(t *testing.T) {
	m := testModel(t)
	m, _ = pressKey(t, m, "t")

	// Content clicks never dismiss.
	m, _ = pressKey(t, m, "x")
	require.Len(t, activeModals(m), 1)

	// Cover clicks do.
	m, _ = pressKey(t, m, "c")
	assert.Empty(t, activeModals(m))
}

func TestComposeForm_Result(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		content string
		source  string
		check   func(t *testing.T, opts modal.Options)
	}{
		{
			name:    "text",
			kind:    kindText,
			content: "hello",
			check: func(t *testing.T, opts modal.Options) {
				assert.Equal(t, "hello", opts.Text)
				assert.Empty(t, opts.HTML)
			},
		},
		{
			name:    "markdown rides in text",
			kind:    kindMarkdown,
			content: "# hi",
			check: func(t *testing.T, opts modal.Options) {
				assert.Equal(t, "# hi", opts.Text)
			},
		},
		{
			name:    "html",
			kind:    kindHTML,
			content: "<b>x</b>",
			check: func(t *testing.T, opts modal.Options) {
				assert.Equal(t, "<b>x</b>", opts.HTML)
				assert.Empty(t, opts.Text)
			},
		},
		{
			name:   "image",
			kind:   kindImage,
			source: "cat.png",
			check: func(t *testing.T, opts modal.Options) {
				assert.Equal(t, "cat.png", opts.Source)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewComposeForm(120 * time.Millisecond)
			f.kind = tt.kind
			f.content = tt.content
			f.source = tt.source

			opts, kind := f.Result()
			assert.Equal(t, tt.kind, kind)
			require.NotNil(t, opts.Animation)
			assert.Equal(t, 120*time.Millisecond, *opts.Animation)
			require.NotNil(t, opts.CloseOnCoverClick)
			assert.True(t, *opts.CloseOnCoverClick)
			tt.check(t, opts)
		})
	}
}

func TestModel_ViewportTracksTopmost(t *testing.T) {
	m := testModel(t)
	assert.Empty(t, m.vpFor)

	m, _ = pressKey(t, m, "t")
	mods := activeModals(m)
	require.Len(t, mods, 1)
	assert.Equal(t, mods[0].ID(), m.vpFor)

	m, _ = pressKey(t, m, "t")
	mods = activeModals(m)
	require.Len(t, mods, 2)
	assert.Equal(t, mods[1].ID(), m.vpFor)

	// Closing the topmost modal re-syncs to the one below it.
	m, _ = pressKey(t, m, keyEsc)
	assert.Equal(t, mods[0].ID(), m.vpFor)

	m, _ = pressKey(t, m, keyEsc)
	assert.Empty(t, m.vpFor)
}

func TestView_Smoke(t *testing.T) {
	m := testModel(t)

	out := m.View()
	assert.Contains(t, out, "Region")
	assert.Contains(t, out, "no active modals")

	m, _ = pressKey(t, m, "t")
	out = m.View()
	assert.Contains(t, out, "Hello from modal #1")
}
