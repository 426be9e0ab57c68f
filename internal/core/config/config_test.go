package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scrim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Animation())
	assert.Equal(t, "tokyo-night", cfg.MarkdownStyle)
	assert.Equal(t, "localhost:8089", cfg.Server.Addr)
	assert.Equal(t, ActionText, cfg.Keybindings["t"].Action)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
animation_ms: 0
markdown_style: dracula
server:
  addr: localhost:9000
keybindings:
  t:
    action: markdown
    help: custom
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.Animation())
	assert.Equal(t, "dracula", cfg.MarkdownStyle)
	assert.Equal(t, "localhost:9000", cfg.Server.Addr)

	// Overridden key replaces the default, untouched defaults remain.
	assert.Equal(t, ActionMarkdown, cfg.Keybindings["t"].Action)
	assert.Equal(t, ActionImage, cfg.Keybindings["i"].Action)
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{
			name:      "negative animation",
			content:   "animation_ms: -5",
			wantField: "animation_ms",
		},
		{
			name: "unknown action",
			content: `
keybindings:
  z:
    action: explode
`,
			wantField: "keybindings.z.action",
		},
		{
			name: "reserved key",
			content: `
keybindings:
  q:
    action: text
`,
			wantField: "keybindings.q",
		},
		{
			name: "missing action",
			content: `
keybindings:
  z:
    help: no action
`,
			wantField: "keybindings.z.action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
		})
	}
}

func TestAnimation_NegativeBehavesAsZero(t *testing.T) {
	n := -1
	cfg := Config{AnimationMS: &n}
	assert.Equal(t, time.Duration(0), cfg.Animation())
}
