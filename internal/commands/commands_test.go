package commands

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrimkit/scrim/internal/core/config"
)

func TestFlags_RequireConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	flags := &Flags{Config: &cfg}

	got, err := flags.RequireConfig()
	require.NoError(t, err)
	assert.Same(t, &cfg, got)

	flags = &Flags{ConfigErr: errors.New("boom")}
	_, err = flags.RequireConfig()
	assert.EqualError(t, err, "boom")
}

func TestRenderCmd_OutputPath(t *testing.T) {
	cmd := &RenderCmd{}
	assert.Equal(t,
		filepath.Join("docs", "page.scrim.html"),
		cmd.outputPath(filepath.Join("docs", "page.html")))

	cmd.outDir = "out"
	assert.Equal(t,
		filepath.Join("out", "page.scrim.html"),
		cmd.outputPath(filepath.Join("docs", "page.html")))
}

func TestExtractFieldErrors(t *testing.T) {
	assert.Nil(t, extractFieldErrors(nil))

	fieldErrs := criterio.NewFieldErrors("animation_ms", errors.New("must not be negative"))
	got := extractFieldErrors(fieldErrs)
	require.Len(t, got, 1)
	assert.Equal(t, "animation_ms", got[0].Field)

	got = extractFieldErrors(errors.New("plain"))
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Field)
	assert.EqualError(t, got[0].Err, "plain")
}
