package term

import (
	"github.com/relayterm/xst/grid"
	"github.com/relayterm/xst/palette"
)

// Pen is the attribute/fg/bg triple applied to newly written cells.
// It is independent of cursor position and is mutated only by SGR.
type Pen struct {
	Flags grid.Flags
	Fg    uint16
	Bg    uint16
}

// DefaultPen returns the pen used at startup and after SGR 0.
func DefaultPen() Pen {
	return Pen{Fg: palette.DefaultFg, Bg: palette.DefaultBg}
}

func (p *Pen) reset() {
	*p = DefaultPen()
}
