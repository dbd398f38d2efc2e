package style

import "fmt"

// Font is a named font family choice.
type Font string

const (
	FontMono    Font = "mono"
	FontSerif   Font = "serif"
	FontSans    Font = "sans"
	FontCursive Font = "cursive"
	FontFantasy Font = "fantasy"
)

// Background is a named full-bleed background fill.
type Background string

const (
	BackgroundGradientBlue  Background = "gradient-blue"
	BackgroundGradientGreen Background = "gradient-green"
	BackgroundGradientPink  Background = "gradient-pink"
)

// CardStyle is a named look for the bounded content container.
type CardStyle string

const (
	CardModernWhite    CardStyle = "modern-white"
	CardDark           CardStyle = "dark"
	CardSubtleGradient CardStyle = "subtle-gradient"
)

// FontSize is a named typographic step. The allowed steps and their pixel
// values differ per aspect ratio.
type FontSize string

const (
	SizeSM  FontSize = "sm"
	SizeMD  FontSize = "base"
	SizeLG  FontSize = "lg"
	SizeXL  FontSize = "xl"
	Size2XL FontSize = "2xl"
	Size3XL FontSize = "3xl"
	Size4XL FontSize = "4xl"
	Size5XL FontSize = "5xl"
	Size6XL FontSize = "6xl"
)

const (
	DefaultFont       = FontSans
	DefaultBackground = BackgroundGradientBlue
	DefaultCardStyle  = CardModernWhite
	DefaultSizeWide   = SizeXL
	DefaultSizeTall   = Size3XL
)

var (
	fonts = map[Font]bool{
		FontMono: true, FontSerif: true, FontSans: true,
		FontCursive: true, FontFantasy: true,
	}
	backgrounds = map[Background]bool{
		BackgroundGradientBlue: true, BackgroundGradientGreen: true, BackgroundGradientPink: true,
	}
	cards = map[CardStyle]bool{
		CardModernWhite: true, CardDark: true, CardSubtleGradient: true,
	}

	// Preview pixel value per step, keyed by the aspect ratio the step
	// applies to. The two ladders overlap but are not identical.
	wideSizes = map[FontSize]int{
		SizeSM: 14, SizeMD: 16, SizeLG: 18, SizeXL: 20,
		Size2XL: 24, Size3XL: 30, Size4XL: 36, Size5XL: 48,
	}
	tallSizes = map[FontSize]int{
		SizeMD: 16, SizeLG: 18, SizeXL: 20, Size2XL: 24,
		Size3XL: 30, Size4XL: 36, Size5XL: 48, Size6XL: 60,
	}
)

// Settings is the immutable-per-render presentation configuration.
type Settings struct {
	Font         Font       `json:"font"`
	Background   Background `json:"background"`
	CardStyle    CardStyle  `json:"card_style"`
	Title        string     `json:"title"`
	FontSizeWide FontSize   `json:"font_size_wide"`
	FontSizeTall FontSize   `json:"font_size_tall"`
}

// DefaultSettings returns the session-start configuration.
func DefaultSettings() Settings {
	return Settings{
		Font:         DefaultFont,
		Background:   DefaultBackground,
		CardStyle:    DefaultCardStyle,
		FontSizeWide: DefaultSizeWide,
		FontSizeTall: DefaultSizeTall,
	}
}

// Normalize replaces every unrecognized field value with its default. Used
// when restoring a persisted snapshot: a stale or corrupt value is never
// propagated.
func (s Settings) Normalize() Settings {
	if !fonts[s.Font] {
		s.Font = DefaultFont
	}
	if !backgrounds[s.Background] {
		s.Background = DefaultBackground
	}
	if !cards[s.CardStyle] {
		s.CardStyle = DefaultCardStyle
	}
	if _, ok := wideSizes[s.FontSizeWide]; !ok {
		s.FontSizeWide = DefaultSizeWide
	}
	if _, ok := tallSizes[s.FontSizeTall]; !ok {
		s.FontSizeTall = DefaultSizeTall
	}
	return s
}

// Validate rejects any field outside its closed option set. Total: defined
// for every input, it never panics.
func (s Settings) Validate() error {
	if !fonts[s.Font] {
		return fmt.Errorf("unknown font %q", s.Font)
	}
	if !backgrounds[s.Background] {
		return fmt.Errorf("unknown background %q", s.Background)
	}
	if !cards[s.CardStyle] {
		return fmt.Errorf("unknown card style %q", s.CardStyle)
	}
	if _, ok := wideSizes[s.FontSizeWide]; !ok {
		return fmt.Errorf("unknown wide font size %q", s.FontSizeWide)
	}
	if _, ok := tallSizes[s.FontSizeTall]; !ok {
		return fmt.Errorf("unknown tall font size %q", s.FontSizeTall)
	}
	return nil
}

// SizeFor returns the preview font size in pixels for the given aspect ratio.
func (s Settings) SizeFor(aspect AspectRatio) int {
	if aspect == AspectTall {
		return tallSizes[s.FontSizeTall]
	}
	return wideSizes[s.FontSizeWide]
}
