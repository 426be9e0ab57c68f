package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_MountsModalsAndStylesheet(t *testing.T) {
	specs := []ModalSpec{
		{Kind: KindText, Content: "hello there"},
		{Kind: KindImage, Source: "cat.png"},
	}

	out, err := Document(strings.NewReader(Sample), specs, 250*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)

	assert.Contains(t, out, "scrim-region")
	assert.Contains(t, out, "hello there")
	assert.Contains(t, out, `src="cat.png"`)
	assert.Contains(t, out, ".scrim-cover")

	// Fades are settled, so no cover is left transparent.
	assert.NotContains(t, out, "opacity: 0")
	assert.Contains(t, out, "opacity: 1")
}

func TestDocument_HTMLContent(t *testing.T) {
	specs := []ModalSpec{{Kind: KindHTML, Content: "<b>bold</b>"}}

	out, err := Document(strings.NewReader(Sample), specs, 0, zerolog.Nop())
	require.NoError(t, err)
	assert.Contains(t, out, "<b>bold</b>")
}

func TestDocument_InvalidModal(t *testing.T) {
	specs := []ModalSpec{{Kind: "sparkle"}}

	_, err := Document(strings.NewReader(Sample), specs, 0, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown modal kind")
}

func TestDocument_KeepsSourceContent(t *testing.T) {
	src := `<!DOCTYPE html><html><head><title>t</title></head><body><p id="keep">original</p></body></html>`

	out, err := Document(strings.NewReader(src), []ModalSpec{{Content: "x"}}, 0, zerolog.Nop())
	require.NoError(t, err)
	assert.Contains(t, out, `<p id="keep">original</p>`)

	// The region container precedes the original body content.
	assert.Less(t, strings.Index(out, "scrim-region"), strings.Index(out, `id="keep"`))
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.html", "b.html", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := Expand([]string{
		filepath.Join(dir, "*.html"),
		filepath.Join(dir, "a.html"), // duplicate of the glob match
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.html"),
		filepath.Join(dir, "b.html"),
	}, files)
}

func TestExpand_BadPattern(t *testing.T) {
	_, err := Expand([]string{"[unterminated"})
	require.Error(t, err)
}
