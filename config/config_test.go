package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if contents != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".xst"), []byte(contents), 0644))
	}
	t.Setenv("HOME", dir)
	return dir
}

func TestFontSizeFromCLIArgWins(t *testing.T) {
	withHome(t, "24\n")
	require.Equal(t, 30, FontSize("30"))
}

func TestFontSizeFromConfigFile(t *testing.T) {
	withHome(t, "22\n")
	require.Equal(t, 22, FontSize(""))
}

func TestFontSizeDefaultsWhenConfigMissing(t *testing.T) {
	withHome(t, "")
	require.Equal(t, DefaultFontSize, FontSize(""))
}

func TestFontSizeDefaultsWhenConfigTooSmall(t *testing.T) {
	withHome(t, "3\n")
	require.Equal(t, DefaultFontSize, FontSize(""))
}

func TestFontSizeDefaultsWhenConfigUnparseable(t *testing.T) {
	withHome(t, "not-a-number\n")
	require.Equal(t, DefaultFontSize, FontSize(""))
}
