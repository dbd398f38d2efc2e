// Package preview computes the live render surface: the styled markup, the
// card geometry that will frame it at a given viewport, and the overflow
// signal raised when the text no longer fits the visible card.
package preview

import (
	"github.com/prompt-styler/core/internal/modules/export/raster"
	"github.com/prompt-styler/core/internal/modules/markup"
	"github.com/prompt-styler/core/internal/modules/style"
)

// Default viewport per aspect ratio, used when the caller reports none.
var defaultViewports = map[style.AspectRatio]style.Geometry{
	style.AspectWide: {Width: 960, Height: 540},
	style.AspectTall: {Width: 405, Height: 720},
}

// Plan describes one preview render: everything a client needs to lay out
// the surface, plus the overflow warning.
type Plan struct {
	Markup     string            `json:"markup"`
	Aspect     style.AspectRatio `json:"aspect_ratio"`
	Viewport   style.Geometry    `json:"viewport"`
	CardWidth  int               `json:"card_width"`
	CardHeight int               `json:"card_height"`
	FontSize   int               `json:"font_size"`
	Overflow   bool              `json:"overflow"`
}

type Service struct {
	backend raster.Backend
}

func NewService(backend raster.Backend) *Service { return &Service{backend: backend} }

// Compute renders the markup and measures it against the card at the given
// viewport. Overflowing content is not an error: the plan still renders, the
// caller decides how to warn.
func (s *Service) Compute(text string, st style.Settings, aspect style.AspectRatio, viewport style.Geometry) Plan {
	st = st.Normalize()
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = defaultViewports[aspect]
	}

	sanitized := markup.Render(text)
	layout := raster.PreviewLayout(aspect, st, viewport)
	doc := raster.Document{
		Lines:  markup.ParseLines(sanitized),
		Style:  st,
		Layout: layout,
	}

	content := s.backend.ContentHeight(doc)
	cardHeight := content + 2*layout.ContentPadV
	maxHeight := layout.MaxCardHeight()
	overflow := cardHeight > maxHeight
	if overflow {
		cardHeight = maxHeight
	}

	return Plan{
		Markup:     sanitized,
		Aspect:     aspect,
		Viewport:   viewport,
		CardWidth:  layout.CardWidth(),
		CardHeight: cardHeight,
		FontSize:   st.SizeFor(aspect),
		Overflow:   overflow,
	}
}
