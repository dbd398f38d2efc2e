package raster

import (
	"image/color"

	"github.com/prompt-styler/core/internal/modules/style"
)

type gradient struct {
	from, to color.RGBA
}

// lerp interpolates along the top-left to bottom-right diagonal.
func (g gradient) at(t float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return color.RGBA{
		R: mix(g.from.R, g.to.R),
		G: mix(g.from.G, g.to.G),
		B: mix(g.from.B, g.to.B),
		A: 0xFF,
	}
}

var backgroundGradients = map[style.Background]gradient{
	style.BackgroundGradientBlue: {
		from: color.RGBA{0x60, 0xA5, 0xFA, 0xFF},
		to:   color.RGBA{0x93, 0x33, 0xEA, 0xFF},
	},
	style.BackgroundGradientGreen: {
		from: color.RGBA{0x4A, 0xDE, 0x80, 0xFF},
		to:   color.RGBA{0x3B, 0x82, 0xF6, 0xFF},
	},
	style.BackgroundGradientPink: {
		from: color.RGBA{0xF4, 0x72, 0xB6, 0xFF},
		to:   color.RGBA{0xF9, 0x73, 0x16, 0xFF},
	},
}

type cardLook struct {
	fill   gradient
	text   color.RGBA
	codeBG color.RGBA
}

var cardLooks = map[style.CardStyle]cardLook{
	style.CardModernWhite: {
		fill:   gradient{from: white, to: white},
		text:   gray900,
		codeBG: gray100,
	},
	style.CardDark: {
		fill:   gradient{from: gray900, to: gray900},
		text:   white,
		codeBG: gray800,
	},
	style.CardSubtleGradient: {
		fill:   gradient{from: white, to: gray100},
		text:   gray900,
		codeBG: gray100,
	},
}

var (
	white   = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	gray100 = color.RGBA{0xF3, 0xF4, 0xF6, 0xFF}
	gray800 = color.RGBA{0x1F, 0x29, 0x37, 0xFF}
	gray900 = color.RGBA{0x11, 0x18, 0x27, 0xFF}
)
