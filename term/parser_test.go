package term

import (
	"testing"

	"github.com/relayterm/xst/grid"
	"github.com/relayterm/xst/palette"
	"github.com/stretchr/testify/require"
)

func TestScenarioHelloNewline(t *testing.T) {
	term := New(80, 24)
	term.Feed([]byte("Hi\n"))
	require.Equal(t, byte('H'), term.Grid.At(0, 0).Ch)
	require.Equal(t, byte('i'), term.Grid.At(1, 0).Ch)
	require.Equal(t, 0, term.Grid.CursorX)
	require.Equal(t, 1, term.Grid.CursorY)
}

func TestScenarioCursorPosition(t *testing.T) {
	term := New(80, 24)
	term.Feed([]byte("A\x1b[2;5HB"))
	require.Equal(t, byte('A'), term.Grid.At(0, 0).Ch)
	require.Equal(t, byte('B'), term.Grid.At(4, 1).Ch)
	require.Equal(t, 5, term.Grid.CursorX)
	require.Equal(t, 1, term.Grid.CursorY)
}

func TestScenarioEraseLine(t *testing.T) {
	term := New(80, 24)
	term.Feed([]byte("X\x1b[1;1H\x1b[K"))
	require.Equal(t, grid.Empty(), term.Grid.At(0, 0))
	require.Equal(t, 0, term.Grid.CursorX)
	require.Equal(t, 0, term.Grid.CursorY)
}

func TestScenarioSGRResetsOnZero(t *testing.T) {
	term := New(80, 24)
	term.Feed([]byte("\x1b[31mR\x1b[0mG"))
	r := term.Grid.At(0, 0)
	require.Equal(t, byte('R'), r.Ch)
	require.Equal(t, uint16(1), r.Fg)
	g := term.Grid.At(1, 0)
	require.Equal(t, byte('G'), g.Ch)
	require.Equal(t, palette.DefaultFg, g.Fg)
}

func TestScenario256ColorForeground(t *testing.T) {
	term := New(80, 24)
	term.Feed([]byte("\x1b[38;5;201mQ"))
	q := term.Grid.At(0, 0)
	require.Equal(t, byte('Q'), q.Ch)
	require.Equal(t, uint16(201), q.Fg)
}

func TestScenarioWrapAcrossFullRow(t *testing.T) {
	term := New(80, 24)
	line := make([]byte, 80)
	for i := range line {
		line[i] = 'a'
	}
	term.Feed(line)
	term.Feed([]byte("b"))
	require.Equal(t, byte('b'), term.Grid.At(0, 1).Ch)
	require.Equal(t, 1, term.Grid.CursorX)
	require.Equal(t, 1, term.Grid.CursorY)
}

func TestScenarioManyNewlinesScrollEverythingAway(t *testing.T) {
	term := New(80, 24)
	term.Grid.SetCursor(0, 23)
	for i := 0; i < 24; i++ {
		term.Feed([]byte("\n"))
	}
	for y := 0; y < term.Grid.Rows; y++ {
		for x := 0; x < term.Grid.Cols; x++ {
			require.Equal(t, grid.Empty(), term.Grid.At(x, y))
		}
	}
	require.Equal(t, 0, term.Grid.CursorX)
	require.Equal(t, 23, term.Grid.CursorY)
}

func TestScenarioOSCSetsTitle(t *testing.T) {
	term := New(80, 24)
	var gotTitle string
	term.Title = func(s string) { gotTitle = s }
	term.Feed([]byte("\x1b]2;hi\a"))
	require.Equal(t, "hi", gotTitle)
	require.Equal(t, Normal, term.State())
	require.Equal(t, grid.Empty(), term.Grid.At(0, 0))
}

func TestDoubleClearScreenIsIdempotent(t *testing.T) {
	term := New(10, 5)
	term.Feed([]byte("hello"))
	term.Feed([]byte("\x1b[2J"))
	first := snapshot(term.Grid)
	term.Feed([]byte("\x1b[2J"))
	require.Equal(t, first, snapshot(term.Grid))
}

func TestHomeAtOriginIsNoop(t *testing.T) {
	term := New(10, 5)
	term.Feed([]byte("\x1b[H"))
	require.Equal(t, 0, term.Grid.CursorX)
	require.Equal(t, 0, term.Grid.CursorY)
}

func TestSGRZeroTwiceIsDefault(t *testing.T) {
	term := New(10, 5)
	term.Feed([]byte("\x1b[0m\x1b[0m"))
	require.Equal(t, DefaultPen(), term.Pen)
}

func TestCSIOverflowAbortsWithoutMutation(t *testing.T) {
	term := New(10, 5)
	before := term.Pen
	junk := make([]byte, 0, csiBufCap+10)
	junk = append(junk, '\x1b', '[')
	for i := 0; i < csiBufCap+5; i++ {
		junk = append(junk, '0')
	}
	term.Feed(junk)
	require.Equal(t, before, term.Pen)
	require.Equal(t, Normal, term.State())
}

func TestPrivateModeCSIIsIgnored(t *testing.T) {
	term := New(10, 5)
	term.Feed([]byte("\x1b[?25h"))
	require.Equal(t, 0, term.Grid.CursorX)
	require.Equal(t, 0, term.Grid.CursorY)
}

func TestDSRCursorPositionReport(t *testing.T) {
	term := New(10, 5)
	term.Grid.SetCursor(4, 2)
	var reply []byte
	term.Respond = func(b []byte) { reply = b }
	term.Feed([]byte("\x1b[6n"))
	require.Equal(t, "\x1b[3;5R", string(reply))
}

func snapshot(g *grid.Grid) []grid.Cell {
	out := make([]grid.Cell, 0, g.Cols*g.Rows)
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			out = append(out, g.At(x, y))
		}
	}
	return out
}
