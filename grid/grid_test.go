package grid

import (
	"testing"

	"github.com/relayterm/xst/palette"
	"github.com/stretchr/testify/require"
)

func TestNewFillsEmptyCells(t *testing.T) {
	g := New(80, 24)
	require.Equal(t, 80*24, len(g.cells))
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			require.Equal(t, Empty(), g.At(x, y))
		}
	}
}

func TestPrintCommitAdvancesCursor(t *testing.T) {
	g := New(10, 5)
	g.PrintCommit('H', 0, palette.DefaultFg, palette.DefaultBg)
	g.PrintCommit('i', 0, palette.DefaultFg, palette.DefaultBg)
	require.Equal(t, byte('H'), g.At(0, 0).Ch)
	require.Equal(t, byte('i'), g.At(1, 0).Ch)
	require.Equal(t, 2, g.CursorX)
	require.Equal(t, 0, g.CursorY)
}

func TestDeferredWrap(t *testing.T) {
	g := New(3, 3)
	g.PrintCommit('a', 0, palette.DefaultFg, palette.DefaultBg)
	g.PrintCommit('b', 0, palette.DefaultFg, palette.DefaultBg)
	g.PrintCommit('c', 0, palette.DefaultFg, palette.DefaultBg)
	// Cursor sits at x==cols here; nothing should have wrapped yet.
	require.Equal(t, 3, g.CursorX)
	require.Equal(t, 0, g.CursorY)

	g.PrintCommit('d', 0, palette.DefaultFg, palette.DefaultBg)
	require.Equal(t, byte('d'), g.At(0, 1).Ch)
	require.Equal(t, 1, g.CursorX)
	require.Equal(t, 1, g.CursorY)
}

func TestScrollUpOneDiscardsTopRow(t *testing.T) {
	g := New(4, 2)
	g.Set(0, 0, Cell{Ch: 'X'})
	g.Set(0, 1, Cell{Ch: 'Y'})
	g.ScrollUpOne()
	require.Equal(t, byte('Y'), g.At(0, 0).Ch)
	require.Equal(t, Empty(), g.At(0, 1))
}

func TestResizePreservesTopLeftRectangle(t *testing.T) {
	g := New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g.Set(x, y, Cell{Ch: byte('a' + y)})
		}
	}
	require.NoError(t, g.Resize(2, 2))
	require.Equal(t, 2*2, len(g.cells))
	require.Equal(t, byte('a'), g.At(0, 0).Ch)
	require.Equal(t, byte('b'), g.At(1, 1).Ch)
}

func TestResizeRejectsNonPositiveDimensions(t *testing.T) {
	g := New(4, 4)
	err := g.Resize(0, 4)
	require.Error(t, err)
	var allocErr *AllocError
	require.ErrorAs(t, err, &allocErr)
}

func TestClearScreenModeTwoClearsAllAndHomesCursor(t *testing.T) {
	g := New(5, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			g.Set(x, y, Cell{Ch: 'x'})
		}
	}
	g.SetCursor(2, 1)
	g.ClearScreen(2)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			require.Equal(t, Empty(), g.At(x, y))
		}
	}
	require.Equal(t, 0, g.CursorX)
	require.Equal(t, 0, g.CursorY)
}

func TestClearLineModeZeroFromCursor(t *testing.T) {
	g := New(5, 1)
	for x := 0; x < 5; x++ {
		g.Set(x, 0, Cell{Ch: 'x'})
	}
	g.SetCursor(2, 0)
	g.ClearLine(0)
	require.Equal(t, byte('x'), g.At(0, 0).Ch)
	require.Equal(t, byte('x'), g.At(1, 0).Ch)
	require.Equal(t, Empty(), g.At(2, 0))
	require.Equal(t, Empty(), g.At(4, 0))
}

func TestNormalizeScrollClampsAfterManyNewlines(t *testing.T) {
	g := New(1, 1)
	g.SetCursor(0, 0)
	for i := 0; i < 24; i++ {
		g.Newline()
		g.NormalizeScroll()
	}
	require.Equal(t, 0, g.CursorY)
}
