// Package render draws a grid.Grid to an OpenGL surface, grounded on
// the teacher's render.Renderer (renderGridAt, drawRect, drawChar,
// colorToRGBA, createProgram/compileShader, orthoMatrix). The tab bar,
// panes, menu, search/AI panels, and help overlay the teacher drew are
// gone: this renderer is a pure function of grid state, pen defaults,
// a palette, and a glyph atlas, as spec §4.8 requires.
package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/relayterm/xst/atlas"
	"github.com/relayterm/xst/grid"
	"github.com/relayterm/xst/palette"
)

// Renderer draws terminal grids using a single glyph atlas texture and
// two shader programs: one for flat-colored rectangles, one for
// alpha-blended glyph quads.
type Renderer struct {
	atlas *atlas.Atlas

	quadProgram uint32
	quadProj    int32
	quadColor   int32
	quadVAO     uint32
	quadVBO     uint32

	textProgram uint32
	textProj    int32
	textColor   int32
	textSampler int32
	textVAO     uint32
	textVBO     uint32

	glyphTexture uint32
}

// New compiles the shader programs and uploads the atlas texture.
func New(a *atlas.Atlas) (*Renderer, error) {
	r := &Renderer{atlas: a}

	var err error
	r.quadProgram, err = createProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, err
	}
	r.quadColor = gl.GetUniformLocation(r.quadProgram, gl.Str("color\x00"))
	r.quadProj = gl.GetUniformLocation(r.quadProgram, gl.Str("projection\x00"))

	r.textProgram, err = createProgram(textVertexShader, textFragmentShader)
	if err != nil {
		return nil, err
	}
	r.textColor = gl.GetUniformLocation(r.textProgram, gl.Str("textColor\x00"))
	r.textProj = gl.GetUniformLocation(r.textProgram, gl.Str("projection\x00"))
	r.textSampler = gl.GetUniformLocation(r.textProgram, gl.Str("text\x00"))

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 6*2*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.GenVertexArrays(1, &r.textVAO)
	gl.GenBuffers(1, &r.textVBO)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.GenTextures(1, &r.glyphTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.glyphTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(a.Size), int32(a.Size), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return r, nil
}

// CellSize returns the fixed glyph cell dimensions in pixels.
func (r *Renderer) CellSize() (int, int) {
	return r.atlas.CellWidth, r.atlas.CellHeight
}

// GridSize returns how many columns and rows of cells fit a framebuffer
// of the given pixel dimensions (spec §4.7's resize-to-grid mapping).
func (r *Renderer) GridSize(width, height int) (cols, rows int) {
	cw, ch := r.CellSize()
	cols = width / cw
	rows = height / ch
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// backgroundRGBA is the window clear color: palette's default
// background, painted once per frame before any cell backgrounds.
func backgroundRGBA() [4]float32 {
	c := palette.At(palette.DefaultBg)
	return [4]float32{c.R, c.G, c.B, 1}
}

// Draw runs the spec §4.8 four-pass algorithm: clear, cell
// backgrounds (skipping default), glyphs with decorations, then the
// cursor cell inverted on top. cursorOn lets the caller blink it.
func (r *Renderer) Draw(g *grid.Grid, width, height int, cursorOn bool) {
	gl.Viewport(0, 0, int32(width), int32(height))
	bg := backgroundRGBA()
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	proj := orthoMatrix(0, float32(width), float32(height), 0, -1, 1)
	cw, ch := r.CellSize()

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			cell := g.At(x, y)
			px := float32(x * cw)
			py := float32(y * ch)

			fgIdx, bgIdx := cell.Fg, cell.Bg
			if cell.Flags&grid.Reverse != 0 {
				fgIdx, bgIdx = bgIdx, fgIdx
			}
			if bgIdx != palette.DefaultBg || cell.Flags&grid.Reverse != 0 {
				r.drawRect(px, py, float32(cw), float32(ch), colorFor(bgIdx), proj)
			}

			if cell.Flags&grid.Invisible == 0 && cell.Ch != ' ' && cell.Ch != 0 {
				if cell.Flags&grid.Bold != 0 {
					fgIdx = palette.Bright(fgIdx)
				}
				drawFg := colorFor(fgIdx)
				r.drawChar(px, py+float32(ch), cell.Ch, drawFg, proj)

				if cell.Flags&(grid.Underline|grid.Struck) != 0 {
					lineY := py + float32(ch) - 1
					if cell.Flags&grid.Struck != 0 {
						lineY = py + float32(ch)/2
					}
					r.drawRect(px, lineY, float32(cw), 1, drawFg, proj)
				}
			}
		}
	}

	if cursorOn {
		cx := float32(g.CursorX * cw)
		cy := float32(g.CursorY * ch)
		cell := g.At(g.CursorX, g.CursorY)
		cursorColor := colorFor(cell.Fg)
		r.drawRect(cx, cy, float32(cw), float32(ch), cursorColor, proj)
		if cell.Ch != ' ' && cell.Ch != 0 {
			r.drawChar(cx, cy+float32(ch), cell.Ch, colorFor(cell.Bg), proj)
		}
	}
}

func colorFor(index uint16) [4]float32 {
	c := palette.At(index)
	return [4]float32{c.R, c.G, c.B, 1}
}

func (r *Renderer) drawRect(x, y, w, h float32, clr [4]float32, proj [16]float32) {
	vertices := []float32{
		x, y,
		x + w, y,
		x + w, y + h,
		x, y,
		x + w, y + h,
		x, y + h,
	}

	gl.UseProgram(r.quadProgram)
	gl.UniformMatrix4fv(r.quadProj, 1, false, &proj[0])
	gl.Uniform4fv(r.quadColor, 1, &clr[0])

	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawChar(x, y float32, ch byte, clr [4]float32, proj [16]float32) {
	glyph, ok := r.atlas.Glyph(ch)
	if !ok {
		return
	}

	w := float32(glyph.PixelWidth)
	h := float32(glyph.PixelHeight)
	tx, ty, tw, th := glyph.X, glyph.Y, glyph.Width, glyph.Height

	vertices := []float32{
		x, y - h, tx, ty,
		x + w, y - h, tx + tw, ty,
		x + w, y, tx + tw, ty + th,
		x, y - h, tx, ty,
		x + w, y, tx + tw, ty + th,
		x, y, tx, ty + th,
	}

	gl.UseProgram(r.textProgram)
	gl.UniformMatrix4fv(r.textProj, 1, false, &proj[0])
	gl.Uniform4fv(r.textColor, 1, &clr[0])
	gl.Uniform1i(r.textSampler, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.glyphTexture)

	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// Destroy releases GL resources owned by the renderer.
func (r *Renderer) Destroy() {
	gl.DeleteProgram(r.quadProgram)
	gl.DeleteProgram(r.textProgram)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.textVAO)
	gl.DeleteBuffers(1, &r.textVBO)
	gl.DeleteTextures(1, &r.glyphTexture)
}
