// Package term drives the byte-stream interpreter: a four-state
// parser that consumes bytes from the PTY and, once it recognizes a
// complete control sequence, dispatches it against the grid and the
// pen. This is the character handler (C7), the control-sequence
// parser (C4), the CSI dispatcher (C5), and the OSC dispatcher (C6)
// from the design, kept together the way the teacher's parser.Terminal
// keeps its ground/escape/CSI/OSC handling in one type.
package term

import "github.com/relayterm/xst/grid"

// State is one of the parser's four states. Exactly one is active at
// any moment (invariant 4).
type State int

const (
	Normal State = iota
	Esc
	CSI
	OSC
)

const (
	csiBufCap = 256
	oscBufCap = 512
)

// Terminal owns the grid, the pen, and the parser's transient state.
// It is the single owned aggregate the driver passes through the
// event loop; there is no hidden global state.
type Terminal struct {
	Grid *grid.Grid
	Pen  Pen

	state  State
	csiBuf []byte
	oscBuf []byte

	// Title is invoked by the OSC dispatcher (C6) when the window
	// title is set via "OSC 2;<title> BEL". Nil is a valid no-op.
	Title func(string)

	// Respond is invoked by the DSR handler to write a reply back to
	// the PTY. Nil is a valid no-op (the report is simply dropped).
	Respond func([]byte)
}

// New creates a Terminal around a freshly allocated grid of the given
// size, with the pen at its default and the parser in Normal state.
func New(cols, rows int) *Terminal {
	return &Terminal{
		Grid:   grid.New(cols, rows),
		Pen:    DefaultPen(),
		state:  Normal,
		csiBuf: make([]byte, 0, csiBufCap),
		oscBuf: make([]byte, 0, oscBufCap),
	}
}

// State returns the parser's current state, exposed for tests.
func (t *Terminal) State() State {
	return t.state
}

// Feed drives the parser with a run of PTY bytes, one at a time, in
// arrival order (the ordering guarantee in SPEC_FULL.md's concurrency
// section).
func (t *Terminal) Feed(data []byte) {
	for _, b := range data {
		t.feedByte(b)
	}
}

func (t *Terminal) feedByte(b byte) {
	switch t.state {
	case Normal:
		t.stepNormal(b)
		t.Grid.NormalizeScroll()
	case Esc:
		t.stepEsc(b)
	case CSI:
		t.stepCSI(b)
	case OSC:
		t.stepOSC(b)
	}
}

func (t *Terminal) stepNormal(b byte) {
	switch {
	case b == 0x1b:
		t.state = Esc
	case b == '\n':
		t.Grid.Newline()
	case b == '\r':
		t.Grid.CarriageReturn()
	case b == '\b':
		t.Grid.Backspace()
	case b == '\t':
		t.Grid.Tab()
	case b >= 0x20:
		// Printable (0x20-0x7E) or high byte; the spec only asks us
		// to pass through printable ASCII, anything else in this
		// range is written literally but never shows up as a glyph
		// the render adapter recognizes (Ch outside 0x20-0x7E).
		t.Grid.PrintCommit(b, t.Pen.Flags, t.Pen.Fg, t.Pen.Bg)
	default:
		// Other control bytes are ignored.
	}
}

func (t *Terminal) stepEsc(b byte) {
	switch b {
	case '[':
		t.csiBuf = t.csiBuf[:0]
		t.state = CSI
	case ']':
		t.oscBuf = t.oscBuf[:0]
		t.state = OSC
	default:
		t.state = Normal
	}
}

func (t *Terminal) stepCSI(b byte) {
	switch {
	case b >= 0x40 && b <= 0x7e:
		t.csiBuf = append(t.csiBuf, b)
		t.dispatchCSI()
		t.state = Normal
	case b >= 0x20 && b < 0x40:
		if len(t.csiBuf) >= csiBufCap-1 {
			// Buffer overflow: abort with no partial effect.
			t.state = Normal
			return
		}
		t.csiBuf = append(t.csiBuf, b)
	default:
		t.state = Normal
	}
}

func (t *Terminal) stepOSC(b byte) {
	switch b {
	case 0x07:
		t.dispatchOSC()
		t.state = Normal
	case 0x1b:
		// Treat ESC as the start of the String Terminator (ESC \):
		// exit OSC and re-enter Esc, per the resolved open question.
		t.state = Esc
	default:
		if len(t.oscBuf) >= oscBufCap-1 {
			t.state = Normal
			return
		}
		t.oscBuf = append(t.oscBuf, b)
	}
}
