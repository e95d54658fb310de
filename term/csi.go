package term

import (
	"strconv"
	"strings"

	"github.com/relayterm/xst/grid"
	"github.com/relayterm/xst/palette"
)

// dispatchCSI applies a complete CSI sequence sitting in t.csiBuf: the
// final byte is the last element, everything before it is the
// parameter string. A leading '?' marks a private-mode sequence; per
// the resolved open question, private-mode CSI is ignored entirely
// rather than having its marker stripped and the command still run.
func (t *Terminal) dispatchCSI() {
	raw := string(t.csiBuf)
	final := raw[len(raw)-1]
	body := raw[:len(raw)-1]

	if strings.HasPrefix(body, "?") {
		return
	}

	params := parseParams(body)

	switch final {
	case 'H', 'f':
		row := param(params, 0, 1)
		col := param(params, 1, 1)
		t.Grid.SetCursor(maxInt(col-1, 0), maxInt(row-1, 0))
	case 'A':
		t.Grid.MoveCursor(0, -maxInt(param(params, 0, 1), 1))
	case 'B':
		t.Grid.MoveCursor(0, maxInt(param(params, 0, 1), 1))
	case 'C':
		t.Grid.MoveCursor(maxInt(param(params, 0, 1), 1), 0)
	case 'D':
		t.Grid.MoveCursor(-maxInt(param(params, 0, 1), 1), 0)
	case 'J':
		t.Grid.ClearScreen(param(params, 0, 0))
	case 'K':
		t.Grid.ClearLine(param(params, 0, 0))
	case 'm':
		t.dispatchSGR(params)
	case 'n':
		t.dispatchDSR(params)
	default:
		// Unknown final byte: silently ignored.
	}
}

// dispatchDSR answers a Device Status Report request through the
// Respond callback. This is supplemental to the core spec (grounded
// on the teacher's handleDSR) and is ordinary CSI dispatch, not a
// scrollback/mouse/paste feature, so it stays in scope.
func (t *Terminal) dispatchDSR(params []int) {
	if t.Respond == nil {
		return
	}
	switch param(params, 0, 0) {
	case 5:
		t.Respond([]byte("\x1b[0n"))
	case 6:
		t.Respond([]byte(sprintCursorReport(t.Grid.CursorY+1, t.Grid.CursorX+1)))
	}
}

func sprintCursorReport(row, col int) string {
	return "\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "R"
}

// parseParams splits a semicolon-delimited decimal parameter string
// into at most 16 integers, defaulting empty/missing entries to 0.
// Excess parameters beyond 16 are silently dropped.
func parseParams(body string) []int {
	if body == "" {
		return nil
	}
	parts := strings.Split(body, ";")
	if len(parts) > 16 {
		parts = parts[:16]
	}
	params := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			n = 0
		}
		params[i] = n
	}
	return params
}

// param returns params[index] if present and nonzero, else def. This
// implements the "missing/zero first parameter treated as 1" rule the
// cursor-movement commands use.
func param(params []int, index, def int) int {
	if index < len(params) && params[index] != 0 {
		return params[index]
	}
	return def
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// dispatchSGR mutates the pen by iterating the SGR parameter list
// left to right. An empty list is equivalent to [0].
func (t *Terminal) dispatchSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			t.Pen.reset()
		case p == 1:
			t.Pen.Flags |= grid.Bold
		case p == 2:
			t.Pen.Flags |= grid.Faint
		case p == 3:
			t.Pen.Flags |= grid.Italic
		case p == 4:
			t.Pen.Flags |= grid.Underline
		case p == 5:
			t.Pen.Flags |= grid.Blink
		case p == 7:
			t.Pen.Flags |= grid.Reverse
		case p == 8:
			t.Pen.Flags |= grid.Invisible
		case p == 9:
			t.Pen.Flags |= grid.Struck
		case p == 22:
			t.Pen.Flags &^= grid.Bold | grid.Faint
		case p == 23:
			t.Pen.Flags &^= grid.Italic
		case p == 24:
			t.Pen.Flags &^= grid.Underline
		case p == 25:
			t.Pen.Flags &^= grid.Blink
		case p == 27:
			t.Pen.Flags &^= grid.Reverse
		case p == 28:
			t.Pen.Flags &^= grid.Invisible
		case p == 29:
			t.Pen.Flags &^= grid.Struck
		case p >= 30 && p <= 37:
			t.Pen.Fg = uint16(p - 30)
		case p == 38:
			i += t.dispatchExtendedColor(params[i+1:], &t.Pen.Fg)
		case p == 39:
			t.Pen.Fg = palette.DefaultFg
		case p >= 40 && p <= 47:
			t.Pen.Bg = uint16(p - 40)
		case p == 48:
			i += t.dispatchExtendedColor(params[i+1:], &t.Pen.Bg)
		case p == 49:
			t.Pen.Bg = palette.DefaultBg
		case p >= 90 && p <= 97:
			t.Pen.Fg = uint16(p - 90 + 8)
		case p >= 100 && p <= 107:
			t.Pen.Bg = uint16(p - 100 + 8)
		default:
			// Unknown selector: silently ignored.
		}
	}
}

// dispatchExtendedColor handles the "38;5;N" / "48;5;N" indexed-color
// form (consuming two extra parameters) and silently ignores the
// "38;2;R;G;B" truecolor form, which is out of scope. It returns the
// number of extra parameters consumed so the caller can advance its
// index past them.
func (t *Terminal) dispatchExtendedColor(rest []int, target *uint16) int {
	if len(rest) == 0 {
		return 0
	}
	switch rest[0] {
	case 5:
		if len(rest) >= 2 {
			*target = uint16(rest[1]) & 0xFF
			return 2
		}
	case 2:
		if len(rest) >= 4 {
			// Truecolor not supported; consume and ignore.
			return 4
		}
	}
	return 0
}
