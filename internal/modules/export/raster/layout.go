package raster

import "github.com/prompt-styler/core/internal/modules/style"

// Layout fixes every pixel value that drives a render. Export layouts use
// absolute values per aspect ratio so the output never depends on the live
// preview size; preview layouts derive from the viewport instead.
type Layout struct {
	Geometry      style.Geometry
	OuterPadding  int
	CardWidthFrac float64
	CardRadius    int
	ContentPadV   int
	ContentPadH   int
	BodySize      float64
	LineHeight    float64
	BlockMargin   int
	ListIndent    int
}

// Heading scale steps relative to the body size.
var headingScale = map[int]float64{1: 1.875, 2: 1.5, 3: 1.25}

const codeScale = 0.9

// ExportLayout returns the authoritative geometry and typography for an
// export. The two aspect ratios carry independent padding, card fraction
// and type scale policies.
func ExportLayout(e style.ExportSettings, card style.CardStyle) Layout {
	s := int(e.Scale)
	l := Layout{
		Geometry:     e.TargetGeometry(),
		OuterPadding: 60 * s,
		CardRadius:   cardRadius(card) * s,
		ListIndent:   20 * s,
	}
	switch e.AspectRatio {
	case style.AspectTall:
		l.CardWidthFrac = 0.95
		l.ContentPadV = 80 * s
		l.ContentPadH = 60 * s
		l.BodySize = float64(44 * s)
		l.LineHeight = 1.6
		l.BlockMargin = 24 * s
	default:
		l.CardWidthFrac = 0.75
		l.ContentPadV = 60 * s
		l.ContentPadH = 80 * s
		l.BodySize = float64(36 * s)
		l.LineHeight = 1.5
		l.BlockMargin = 20 * s
	}
	return l
}

// PreviewLayout mirrors the on-screen surface: viewport-sized, with the
// font size taken from the per-aspect size setting.
func PreviewLayout(aspect style.AspectRatio, st style.Settings, viewport style.Geometry) Layout {
	l := Layout{
		Geometry:     viewport,
		OuterPadding: 24,
		CardRadius:   cardRadius(st.CardStyle),
		BodySize:     float64(st.SizeFor(aspect)),
		LineHeight:   1.625,
		ListIndent:   20,
	}
	switch aspect {
	case style.AspectTall:
		l.CardWidthFrac = 0.85
		l.ContentPadV = 32
		l.ContentPadH = 32
		l.BlockMargin = 12
	default:
		l.CardWidthFrac = 0.75
		l.ContentPadV = 24
		l.ContentPadH = 24
		l.BlockMargin = 10
	}
	return l
}

func cardRadius(card style.CardStyle) int {
	switch card {
	case style.CardDark:
		return 8
	case style.CardSubtleGradient:
		return 12
	default:
		return 16
	}
}

// CardWidth returns the card's pixel width under this layout.
func (l Layout) CardWidth() int {
	return int(float64(l.Geometry.Width) * l.CardWidthFrac)
}

// ContentWidth returns the wrapping width for body text.
func (l Layout) ContentWidth() int {
	return l.CardWidth() - 2*l.ContentPadH
}

// MaxCardHeight returns the tallest the card may grow before content
// overflows the visible region.
func (l Layout) MaxCardHeight() int {
	return l.Geometry.Height - 2*l.OuterPadding
}
