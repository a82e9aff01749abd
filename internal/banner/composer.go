// Package banner renders text strips used as title overlays in video
// composition. Given pixel bounds it finds the largest font size whose
// word-wrapped block fits, degrading to a floor size instead of failing.
package banner

import (
	"bytes"
	"image"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Options configures a Composer. Fonts is an ordered fallback chain of TTF
// paths tried in sequence until one loads; when none loads a built-in bitmap
// face is used so rendering never fails.
type Options struct {
	Fonts         []string
	Margin        int
	LineSpacing   int
	MaxFontSize   int
	FloorFontSize int
	MinHeight     int
	MaxHeight     int
}

type Composer struct {
	font *opentype.Font
	opts Options
}

// NewComposer loads the first usable font from the fallback chain.
func NewComposer(opts Options) *Composer {
	if opts.Margin <= 0 {
		opts.Margin = 40
	}
	if opts.LineSpacing <= 0 {
		opts.LineSpacing = 10
	}
	if opts.MaxFontSize <= 0 {
		opts.MaxFontSize = 100
	}
	if opts.FloorFontSize <= 0 {
		opts.FloorFontSize = 8
	}
	if opts.MinHeight <= 0 {
		opts.MinHeight = 120
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = 400
	}
	c := &Composer{opts: opts}
	for _, path := range opts.Fonts {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		c.font = parsed
		break
	}
	return c
}

// TitleStartSize picks the starting font size for a video title by length:
// long titles start the descent lower so they settle faster.
func TitleStartSize(title string) int {
	switch n := len(title); {
	case n > 15:
		return 35
	case n > 10:
		return 40
	default:
		return 70
	}
}

// Render draws text centered onto a white banner of the given width. If
// height is positive the block is fitted into it; otherwise the minimal
// bounding height is computed and clamped between the configured min and max.
func (c *Composer) Render(text string, width, height int) image.Image {
	return c.render(text, width, height, c.opts.MaxFontSize)
}

// RenderTitle is Render with the start of the font descent chosen from the
// title length.
func (c *Composer) RenderTitle(title string, width, height int) image.Image {
	return c.render(title, width, height, TitleStartSize(title))
}

// RenderPNG encodes the rendered banner as PNG bytes.
func (c *Composer) RenderPNG(text string, width, height int) ([]byte, error) {
	return encodePNG(c.Render(text, width, height))
}

// RenderTitlePNG encodes a title banner as PNG bytes.
func (c *Composer) RenderTitlePNG(title string, width, height int) ([]byte, error) {
	return encodePNG(c.RenderTitle(title, width, height))
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForImage(img).EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Composer) render(text string, width, height, startSize int) image.Image {
	size, lines, lineHeight := c.fit(text, width, height, startSize)
	face := c.face(size)

	blockHeight := len(lines)*lineHeight + (len(lines)-1)*c.opts.LineSpacing
	if height <= 0 {
		height = clamp(blockHeight+2*c.opts.Margin, c.opts.MinHeight, c.opts.MaxHeight)
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)

	y := float64(height-blockHeight)/2 + float64(lineHeight)/2
	for _, line := range lines {
		dc.DrawStringAnchored(line, float64(width)/2, y, 0.5, 0.5)
		y += float64(lineHeight + c.opts.LineSpacing)
	}
	return dc.Image()
}

// fit descends over candidate sizes from startSize down and returns the first
// whose wrapped block fits the bounds, or the floor size when none does.
func (c *Composer) fit(text string, width, height, startSize int) (size int, lines []string, lineHeight int) {
	maxTextWidth := float64(width - 2*c.opts.Margin)
	maxBlock := height - 2*c.opts.Margin

	for candidate := startSize; candidate >= c.opts.FloorFontSize; candidate-- {
		face := c.face(candidate)
		dc := gg.NewContext(1, 1)
		dc.SetFontFace(face)
		wrapped := wrap(text, dc, maxTextWidth)
		_, h := dc.MeasureString("Ag")
		lh := int(h + 0.5)
		block := len(wrapped)*lh + (len(wrapped)-1)*c.opts.LineSpacing

		if height <= 0 {
			// No fixed height: only the width constrains the wrap, so take the
			// first size whose block stays under the max banner height.
			if block+2*c.opts.Margin <= c.opts.MaxHeight {
				return candidate, wrapped, lh
			}
			continue
		}
		if block <= maxBlock {
			return candidate, wrapped, lh
		}
	}

	face := c.face(c.opts.FloorFontSize)
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	wrapped := wrap(text, dc, maxTextWidth)
	_, h := dc.MeasureString("Ag")
	return c.opts.FloorFontSize, wrapped, int(h + 0.5)
}

func (c *Composer) face(size int) font.Face {
	if c.font == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// wrap splits text into lines by accumulating words while the measured width
// stays inside the bound. A single word wider than the bound gets its own line
// rather than erroring.
func wrap(text string, dc *gg.Context, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := ""
	for _, word := range words {
		test := strings.TrimSpace(line + " " + word)
		if w, _ := dc.MeasureString(test); w <= maxWidth || line == "" {
			line = test
			continue
		}
		lines = append(lines, line)
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
