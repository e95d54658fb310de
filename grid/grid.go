// Package grid implements the terminal's cell buffer: a row-major 2D
// array of cells together with the cursor position, and the resize,
// scroll, and clear operations the parser drives it with.
package grid

import (
	"fmt"

	"github.com/relayterm/xst/palette"
)

// Flags is a bitset over the text attributes a cell can carry.
type Flags uint8

const (
	Bold Flags = 1 << iota
	Faint
	Italic
	Underline
	Blink
	Reverse
	Invisible
	Struck
)

// Cell is one grid position: a printable byte (0x20-0x7E; anything
// else is rendered as absent) plus its rendering attributes.
type Cell struct {
	Ch    byte
	Flags Flags
	Fg    uint16
	Bg    uint16
}

// Empty returns the default cell value used to fill newly allocated
// or cleared grid storage: space, no attributes, default colors.
func Empty() Cell {
	return Cell{Ch: ' ', Fg: palette.DefaultFg, Bg: palette.DefaultBg}
}

// AllocError is returned by Resize when the requested dimensions are
// not representable; the driver treats it as fatal per the spec.
type AllocError struct {
	Cols, Rows int
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("grid: cannot allocate %dx%d cells", e.Cols, e.Rows)
}

// Grid owns cols*rows worth of cell storage and the cursor position.
// It is mutated from a single goroutine (the event loop); the render
// adapter reads it without mutating, so no internal locking is done
// here (see the concurrency model in SPEC_FULL.md).
type Grid struct {
	cells      []Cell
	Cols, Rows int
	CursorX    int
	CursorY    int
}

// New allocates a grid of the given size filled with empty cells.
// Cols and rows are clamped to at least 1, matching invariant 1.
func New(cols, rows int) *Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := &Grid{Cols: cols, Rows: rows}
	g.cells = make([]Cell, cols*rows)
	g.fill(0, len(g.cells))
	return g
}

func (g *Grid) fill(from, to int) {
	for i := from; i < to; i++ {
		g.cells[i] = Empty()
	}
}

func (g *Grid) index(x, y int) int {
	return y*g.Cols + x
}

// At returns the cell at (x, y). Out-of-range coordinates return an
// empty cell rather than panicking.
func (g *Grid) At(x, y int) Cell {
	if x < 0 || x >= g.Cols || y < 0 || y >= g.Rows {
		return Empty()
	}
	return g.cells[g.index(x, y)]
}

// Set writes a cell at (x, y). Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if x < 0 || x >= g.Cols || y < 0 || y >= g.Rows {
		return
	}
	g.cells[g.index(x, y)] = c
}

func (g *Grid) clampCursor() {
	if g.CursorX < 0 {
		g.CursorX = 0
	}
	if g.CursorX >= g.Cols {
		g.CursorX = g.Cols - 1
	}
	if g.CursorY < 0 {
		g.CursorY = 0
	}
	if g.CursorY >= g.Rows {
		g.CursorY = g.Rows - 1
	}
}

// Resize reallocates the grid to new dimensions, copying the
// overlapping top-left rectangle from the old buffer and discarding
// the rest. A no-op when dimensions are unchanged. The cursor is
// clamped into the new bounds.
func (g *Grid) Resize(cols, rows int) error {
	if cols == g.Cols && rows == g.Rows {
		return nil
	}
	if cols < 1 || rows < 1 {
		return &AllocError{Cols: cols, Rows: rows}
	}

	next := make([]Cell, cols*rows)
	for i := range next {
		next[i] = Empty()
	}

	copyRows := min(rows, g.Rows)
	copyCols := min(cols, g.Cols)
	for y := 0; y < copyRows; y++ {
		srcBase := y * g.Cols
		dstBase := y * cols
		copy(next[dstBase:dstBase+copyCols], g.cells[srcBase:srcBase+copyCols])
	}

	g.cells = next
	g.Cols = cols
	g.Rows = rows
	g.clampCursor()
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ScrollUpOne shifts rows [1, Rows) up by one, discarding row 0 and
// filling the new last row with empty cells. Invoked only by the
// character handler's wrap/newline logic.
func (g *Grid) ScrollUpOne() {
	if g.Rows <= 1 {
		g.fill(0, len(g.cells))
		return
	}
	copy(g.cells, g.cells[g.Cols:])
	g.fill((g.Rows-1)*g.Cols, g.Rows*g.Cols)
}

// ClearLine mode 0 clears [cursorX, Cols), mode 1 clears [0, cursorX]
// inclusive, mode 2 clears the whole row. Other modes are no-ops.
func (g *Grid) ClearLine(mode int) {
	row := g.CursorY
	switch mode {
	case 0:
		g.fillRow(row, g.CursorX, g.Cols)
	case 1:
		g.fillRow(row, 0, g.CursorX+1)
	case 2:
		g.fillRow(row, 0, g.Cols)
	}
}

func (g *Grid) fillRow(row, fromCol, toCol int) {
	if fromCol < 0 {
		fromCol = 0
	}
	if toCol > g.Cols {
		toCol = g.Cols
	}
	for x := fromCol; x < toCol; x++ {
		g.Set(x, row, Empty())
	}
}

// ClearScreen mode 0 clears from the cursor to the end of screen,
// mode 1 from the start of screen to the cursor inclusive, modes 2
// and 3 clear everything and reset the cursor to (0,0). Clearing
// always writes the empty cell, never the current pen.
func (g *Grid) ClearScreen(mode int) {
	switch mode {
	case 0:
		g.fillRow(g.CursorY, g.CursorX, g.Cols)
		for y := g.CursorY + 1; y < g.Rows; y++ {
			g.fillRow(y, 0, g.Cols)
		}
	case 1:
		for y := 0; y < g.CursorY; y++ {
			g.fillRow(y, 0, g.Cols)
		}
		g.fillRow(g.CursorY, 0, g.CursorX+1)
	case 2, 3:
		g.fill(0, len(g.cells))
		g.CursorX = 0
		g.CursorY = 0
	}
}

// PrintCommit implements the deferred-wrap print-commit rule: if the
// cursor has run past the last column, wrap to the next line first
// (scrolling if that line is past the bottom), then write the cell
// under the cursor and advance.
func (g *Grid) PrintCommit(ch byte, flags Flags, fg, bg uint16) {
	if g.CursorX >= g.Cols {
		g.CursorX = 0
		g.CursorY++
	}
	if g.CursorY >= g.Rows {
		g.ScrollUpOne()
		g.CursorY = g.Rows - 1
	}
	g.Set(g.CursorX, g.CursorY, Cell{Ch: ch, Flags: flags, Fg: fg, Bg: bg})
	g.CursorX++
}

// Newline advances the cursor to the next row without touching the
// column. It does not scroll itself: a cursor moved past the bottom
// row is pulled back by NormalizeScroll.
func (g *Grid) Newline() {
	g.CursorY++
}

// CarriageReturn moves the cursor to column 0.
func (g *Grid) CarriageReturn() {
	g.CursorX = 0
}

// Backspace moves the cursor left one column, clamped at 0.
func (g *Grid) Backspace() {
	if g.CursorX > 0 {
		g.CursorX--
	}
}

// Tab advances the cursor to the next multiple-of-8 column.
func (g *Grid) Tab() {
	g.CursorX = (g.CursorX + 8) &^ 7
}

// NormalizeScroll is the post-step normalization the parser runs
// after every byte processed in Normal state: if the cursor has
// drifted below the last row (via \n; cursor-down movements clamp), pull
// it back onto the grid by scrolling. This is what makes \n at the
// bottom row scroll.
func (g *Grid) NormalizeScroll() {
	for g.CursorY >= g.Rows {
		g.ScrollUpOne()
		g.CursorY--
	}
}

// MoveCursor shifts the cursor by (dx, dy), clamped to the grid.
func (g *Grid) MoveCursor(dx, dy int) {
	g.CursorX += dx
	g.CursorY += dy
	g.clampCursor()
}

// SetCursor sets the cursor to an absolute 0-based position, clamped
// to the grid.
func (g *Grid) SetCursor(x, y int) {
	g.CursorX = x
	g.CursorY = y
	g.clampCursor()
}
