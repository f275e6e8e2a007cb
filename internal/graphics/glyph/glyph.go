// Package glyph bakes a font into a single-channel atlas and lays out text
// as textured quads for the viewer's status overlay.
package glyph

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FloatsPerQuad is six vertices of (x, y, u, v).
const FloatsPerQuad = 6 * 4

// Character describes a single character's placement and metrics within the atlas
type Character struct {
	// Pixel coordinates of the glyph in the atlas (top-left origin)
	AtlasX, AtlasY float32
	Width, Height  float32
	// Offset from the pen position on the baseline
	BearingX, BearingY float32
	Advance            int
}

// Atlas is a baked glyph set.
type Atlas struct {
	Image      *image.Alpha
	Characters map[rune]Character
}

// BakeDefault bakes printable ASCII from the Go Mono font.
func BakeDefault(pixels int) (*Atlas, error) {
	return Bake(gomono.TTF, pixels, 32, 126)
}

// Bake rasterizes runes first..last of a TrueType font at the given pixel size.
func Bake(ttf []byte, pixels int, first, last rune) (*Atlas, error) {
	if pixels <= 0 || last < first {
		return nil, fmt.Errorf("invalid glyph range %d..%d at %dpx", first, last, pixels)
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(pixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	const atlasW, padding = 512, 1

	// First pass: pack rows to find the atlas height.
	offsetX, rowH, height := 0, 0, 0
	for r := first; r <= last; r++ {
		dr, mask, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil || dr.Dx() == 0 || dr.Dy() == 0 {
			continue
		}
		if offsetX+dr.Dx() > atlasW {
			height += rowH + padding
			offsetX, rowH = 0, 0
		}
		offsetX += dr.Dx() + padding
		rowH = max(rowH, dr.Dy())
	}
	height += rowH + padding

	atlas := &Atlas{
		Image:      image.NewAlpha(image.Rect(0, 0, atlasW, height)),
		Characters: make(map[rune]Character, int(last-first)+1),
	}

	// Second pass: render each glyph into the atlas and record metrics.
	offsetX, offsetY, rowH := 0, 0, 0
	for r := first; r <= last; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		c := Character{
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  int(math.Round(float64(advance) / 64.0)),
		}
		gw, gh := dr.Dx(), dr.Dy()
		if mask == nil || gw == 0 || gh == 0 {
			// space or non-drawable glyph; advance only
			atlas.Characters[r] = c
			continue
		}
		if offsetX+gw > atlasW {
			offsetX = 0
			offsetY += rowH + padding
			rowH = 0
		}
		draw.Draw(atlas.Image, image.Rect(offsetX, offsetY, offsetX+gw, offsetY+gh), mask, maskp, draw.Src)

		c.AtlasX, c.AtlasY = float32(offsetX), float32(offsetY)
		c.Width, c.Height = float32(gw), float32(gh)
		atlas.Characters[r] = c

		offsetX += gw + padding
		rowH = max(rowH, gh)
	}
	return atlas, nil
}

// Size returns the atlas dimensions in pixels.
func (a *Atlas) Size() (int, int) {
	b := a.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (a *Atlas) lookup(r rune) (Character, bool) {
	if c, ok := a.Characters[r]; ok {
		return c, true
	}
	c, ok := a.Characters['?']
	return c, ok
}

// Layout appends the quads for text with its baseline starting at (x, y) in
// a top-left origin pixel space.
func (a *Atlas) Layout(dst []float32, text string, x, y, scale float32) []float32 {
	aw, ah := a.Size()
	w, h := float32(aw), float32(ah)
	for _, r := range text {
		c, ok := a.lookup(r)
		if !ok {
			continue
		}
		if c.Width > 0 {
			x0 := x + c.BearingX*scale
			y0 := y - c.BearingY*scale
			x1 := x0 + c.Width*scale
			y1 := y0 + c.Height*scale
			u0, v0 := c.AtlasX/w, c.AtlasY/h
			u1, v1 := (c.AtlasX+c.Width)/w, (c.AtlasY+c.Height)/h
			dst = append(dst,
				x0, y1, u0, v1,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
			)
		}
		x += float32(c.Advance) * scale
	}
	return dst
}

// Measure returns the advance width and tallest glyph height of text.
func (a *Atlas) Measure(text string, scale float32) (float32, float32) {
	var width, height float32
	for _, r := range text {
		c, ok := a.lookup(r)
		if !ok {
			continue
		}
		width += float32(c.Advance) * scale
		height = max(height, c.Height*scale)
	}
	return width, height
}
