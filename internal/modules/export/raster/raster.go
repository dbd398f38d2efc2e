// Package raster renders styled markup into an image at an exact pixel
// geometry. The renderer is pure Go: bundled truetype faces, a freetype
// drawing context and greedy word wrap by measured width.
package raster

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/prompt-styler/core/internal/modules/markup"
	"github.com/prompt-styler/core/internal/modules/style"
	"github.com/prompt-styler/core/internal/pkg/fontkit"
)

// Document is one render request: the parsed markup, the presentation
// settings and the pixel layout to realize them at.
type Document struct {
	Lines       []markup.Line
	Style       style.Settings
	Layout      Layout
	Transparent bool
}

// Backend turns a document into pixels. ContentHeight exposes the measured
// text height so callers can detect overflow without rendering.
type Backend interface {
	Render(ctx context.Context, doc Document) (*image.RGBA, error)
	ContentHeight(doc Document) int
}

// Freetype is the in-process Backend.
type Freetype struct {
	kit *fontkit.Kit
}

func NewFreetype(kit *fontkit.Kit) *Freetype { return &Freetype{kit: kit} }

type token struct {
	text  string
	font  *truetype.Font
	face  font.Face
	size  float64
	span  markup.Span
	width int
}

type visualLine struct {
	tokens []token
	size   float64
	height int
	indent int
	margin int
}

func (f *Freetype) Render(ctx context.Context, doc Document) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := doc.Layout
	img := image.NewRGBA(image.Rect(0, 0, l.Geometry.Width, l.Geometry.Height))
	if !doc.Transparent {
		draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	}
	paintBackground(img, backgroundGradients[doc.Style.Background])

	lines := f.layoutLines(doc)
	look := cardLooks[doc.Style.CardStyle]

	cardW := l.CardWidth()
	cardH := contentHeight(lines) + 2*l.ContentPadV
	if max := l.MaxCardHeight(); cardH > max {
		cardH = max
	}
	cardX := (l.Geometry.Width - cardW) / 2
	cardY := (l.Geometry.Height - cardH) / 2
	card := image.Rect(cardX, cardY, cardX+cardW, cardY+cardH)
	fillRoundedRect(img, card, l.CardRadius, look.fill)

	dc := freetype.NewContext()
	dc.SetDPI(72)
	dc.SetDst(img)
	dc.SetClip(img.Bounds())

	y := cardY + l.ContentPadV
	for _, vl := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		baseline := y + int(vl.size)
		x := cardX + l.ContentPadH + vl.indent
		for _, tk := range vl.tokens {
			if tk.span.Code && strings.TrimSpace(tk.text) != "" {
				pad := 2
				bg := image.Rect(x-pad, baseline-int(tk.size), x+tk.width+pad, baseline+int(tk.size*0.3))
				fillRect(img, bg, look.codeBG)
			}
			dc.SetFont(tk.font)
			dc.SetFontSize(tk.size)
			dc.SetSrc(image.NewUniform(look.text))
			if _, err := dc.DrawString(tk.text, freetype.Pt(x, baseline)); err != nil {
				return nil, err
			}
			thick := int(tk.size / 18)
			if thick < 1 {
				thick = 1
			}
			if tk.span.Underline {
				fillRect(img, image.Rect(x, baseline+2, x+tk.width, baseline+2+thick), look.text)
			}
			if tk.span.Strike {
				mid := baseline - int(tk.size*0.3)
				fillRect(img, image.Rect(x, mid, x+tk.width, mid+thick), look.text)
			}
			x += tk.width
		}
		y += vl.height + vl.margin
	}
	return img, nil
}

// ContentHeight measures the wrapped text height under the document's
// layout, in pixels, without touching a canvas.
func (f *Freetype) ContentHeight(doc Document) int {
	return contentHeight(f.layoutLines(doc))
}

func contentHeight(lines []visualLine) int {
	total := 0
	for i, vl := range lines {
		total += vl.height
		if i < len(lines)-1 {
			total += vl.margin
		}
	}
	return total
}

func (f *Freetype) layoutLines(doc Document) []visualLine {
	l := doc.Layout
	var out []visualLine
	for _, line := range doc.Lines {
		size := l.BodySize
		margin := 0
		indent := 0
		switch line.Kind {
		case markup.LineHeading:
			size = l.BodySize * headingScale[line.Level]
			margin = l.BlockMargin
		case markup.LineListItem:
			indent = l.ListIndent
			margin = l.BlockMargin
		}
		height := int(size * l.LineHeight)

		tokens := f.tokenize(doc.Style.Font, line, size)
		if len(tokens) == 0 {
			out = append(out, visualLine{size: size, height: height, margin: margin})
			continue
		}
		wrapped := wrapTokens(tokens, l.ContentWidth()-indent)
		for i, row := range wrapped {
			vl := visualLine{tokens: row, size: size, height: height, indent: indent}
			if i == len(wrapped)-1 {
				vl.margin = margin
			}
			out = append(out, vl)
		}
	}
	return out
}

func (f *Freetype) tokenize(family style.Font, line markup.Line, size float64) []token {
	var tokens []token
	for _, span := range line.Spans {
		variant := fontkit.Variant{
			Bold:   span.Bold || line.Kind == markup.LineHeading,
			Italic: span.Italic,
		}
		fnt := f.kit.Font(string(family), variant)
		sz := size
		if span.Code {
			fnt = f.kit.MonoFont(variant)
			sz = size * codeScale
		}
		face := newFaceCacheless(fnt, sz)
		for _, part := range splitPreservingSpaces(span.Text) {
			tokens = append(tokens, token{
				text:  part,
				font:  fnt,
				face:  face,
				size:  sz,
				span:  span,
				width: measure(face, part),
			})
		}
	}
	return tokens
}

func newFaceCacheless(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}

func measure(face font.Face, s string) int {
	d := font.Drawer{Face: face}
	return d.MeasureString(s).Round()
}

// splitPreservingSpaces splits into alternating space and word runs so
// wrapped lines keep their inter-word spacing.
func splitPreservingSpaces(s string) []string {
	var parts []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := r == ' ' || r == '\t'
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			parts = append(parts, s[start:i])
			start = i
			inSpace = space
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

func wrapTokens(tokens []token, maxWidth int) [][]token {
	var lines [][]token
	var cur []token
	width := 0
	for _, tk := range tokens {
		blank := strings.TrimSpace(tk.text) == ""
		if width+tk.width > maxWidth && len(cur) > 0 && !blank {
			lines = append(lines, cur)
			cur = nil
			width = 0
		}
		if len(cur) == 0 && blank {
			continue
		}
		cur = append(cur, tk)
		width += tk.width
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}

func paintBackground(img *image.RGBA, g gradient) {
	b := img.Bounds()
	span := float64(b.Dx() + b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, g.at(float64(x+y)/span))
		}
	}
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func fillRoundedRect(img *image.RGBA, r image.Rectangle, radius int, g gradient) {
	r = r.Intersect(img.Bounds())
	span := float64(r.Dx() + r.Dy())
	if span == 0 {
		return
	}
	rad := float64(radius)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if radius > 0 && !insideRounded(x, y, r, rad) {
				continue
			}
			t := float64((x - r.Min.X) + (y - r.Min.Y)) / span
			img.SetRGBA(x, y, g.at(t))
		}
	}
}

func insideRounded(x, y int, r image.Rectangle, rad float64) bool {
	fx, fy := float64(x)+0.5, float64(y)+0.5
	cx := clampf(fx, float64(r.Min.X)+rad, float64(r.Max.X)-rad)
	cy := clampf(fy, float64(r.Min.Y)+rad, float64(r.Max.Y)-rad)
	dx, dy := fx-cx, fy-cy
	return dx*dx+dy*dy <= rad*rad
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
