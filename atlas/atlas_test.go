package atlas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindFontPrefersExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not-a-real-font-but-readable"), 0644))

	data, err := findFont(path)
	require.NoError(t, err)
	require.Equal(t, "not-a-real-font-but-readable", string(data))
}

func TestFindFontErrorsWhenNothingReadable(t *testing.T) {
	old := candidatePaths
	candidatePaths = []string{"/nonexistent/path/one.ttf", "/nonexistent/path/two.ttf"}
	defer func() { candidatePaths = old }()

	_, err := findFont("")
	require.Error(t, err)
}

func TestGlyphFallsBackToSpaceOutsideRange(t *testing.T) {
	a := &Atlas{
		Size:   atlasSize,
		Glyphs: map[rune]Glyph{' ': {Width: 0.5, Height: 0.5}},
	}
	g, ok := a.Glyph(0xff)
	require.True(t, ok)
	require.Equal(t, a.Glyphs[' '], g)
}
