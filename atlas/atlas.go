// Package atlas rasterizes a monospace glyph atlas texture for the
// printable-ASCII range, grounded on the teacher's
// render.Renderer.loadFontData. Unlike the teacher, which bundles an
// embedded Nerd Font and rasterizes thousands of icon codepoints, this
// atlas only covers 0x20-0x7E: spec §9 excludes wide glyphs and
// anything past printable-ASCII passthrough.
package atlas

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// firstGlyph and lastGlyph bound the rasterized range: printable ASCII.
const (
	firstGlyph = 0x20
	lastGlyph  = 0x7e
	atlasSize  = 256
)

// candidatePaths lists the fixed, first-readable-wins font locations
// per spec §6's external font-backend contract.
var candidatePaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationMono-Regular.ttf",
	"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
	"/System/Library/Fonts/Menlo.ttc",
	"/Library/Fonts/Andale Mono.ttf",
}

// Glyph describes one rasterized character's position in the atlas
// texture, in normalized [0,1] coordinates, plus its pixel footprint.
type Glyph struct {
	X, Y          float32
	Width, Height float32
	PixelWidth    int
	PixelHeight   int
}

// Atlas is a single-channel (alpha-only) glyph atlas plus the fixed
// cell metrics every glyph was rasterized against.
type Atlas struct {
	Pixels     []byte // atlasSize*atlasSize, one byte per pixel (alpha)
	Size       int
	CellWidth  int
	CellHeight int
	Glyphs     map[rune]Glyph
}

// Load finds the first readable font among candidatePaths (or path, if
// non-empty) and rasterizes it at the given pixel size.
func Load(path string, size int) (*Atlas, error) {
	data, err := findFont(path)
	if err != nil {
		return nil, err
	}
	return build(data, size)
}

func findFont(explicit string) ([]byte, error) {
	if explicit != "" {
		if data, err := os.ReadFile(explicit); err == nil {
			return data, nil
		}
	}
	for _, p := range candidatePaths {
		if data, err := os.ReadFile(p); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("atlas: no usable font found among candidate paths")
}

func build(fontData []byte, size int) (*Atlas, error) {
	parsed, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("atlas: parse font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     96,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: build face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	cellHeight := (metrics.Ascent + metrics.Descent).Ceil()
	advance, _ := face.GlyphAdvance('M')
	cellWidth := advance.Ceil()

	img := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	drawer := &font.Drawer{Dst: img, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, lastGlyph-firstGlyph+1)
	x, y := 0, metrics.Ascent.Ceil()
	for c := rune(firstGlyph); c <= lastGlyph; c++ {
		if x+cellWidth > atlasSize {
			x = 0
			y += cellHeight
		}
		if y+cellHeight > atlasSize {
			break
		}
		if _, ok := face.GlyphAdvance(c); !ok {
			continue
		}

		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(string(c))

		glyphs[c] = Glyph{
			X:           float32(x) / float32(atlasSize),
			Y:           float32(y-metrics.Ascent.Ceil()) / float32(atlasSize),
			Width:       float32(cellWidth) / float32(atlasSize),
			Height:      float32(cellHeight) / float32(atlasSize),
			PixelWidth:  cellWidth,
			PixelHeight: cellHeight,
		}

		x += cellWidth
	}

	alpha := make([]byte, atlasSize*atlasSize)
	for i := 0; i < atlasSize*atlasSize; i++ {
		alpha[i] = img.Pix[i*4+3]
	}

	return &Atlas{
		Pixels:     alpha,
		Size:       atlasSize,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		Glyphs:     glyphs,
	}, nil
}

// Glyph looks up a rasterized glyph, falling back to the space glyph
// for anything outside the rasterized range (non-ASCII passthrough,
// per spec §9's Non-goal on full UTF-8).
func (a *Atlas) Glyph(ch byte) (Glyph, bool) {
	g, ok := a.Glyphs[rune(ch)]
	if !ok {
		g, ok = a.Glyphs[' ']
	}
	return g, ok
}
