// Package fontkit loads the bundled Go font families once and hands out
// truetype fonts and measuring faces per family and variant.
package fontkit

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

// Variant selects a weight/slant combination within a family.
type Variant struct {
	Bold   bool
	Italic bool
}

type familySet struct {
	regular, bold, italic, boldItalic *truetype.Font
}

// Kit holds the parsed font families.
type Kit struct {
	families map[string]*familySet
	mono     *familySet
}

// Families recognized by Face and Font. Unknown names fall back to "sans".
// Serif, cursive and fantasy are approximated with the closest bundled Go
// faces since the kit ships no external font files.
const (
	FamilySans    = "sans"
	FamilySerif   = "serif"
	FamilyMono    = "mono"
	FamilyCursive = "cursive"
	FamilyFantasy = "fantasy"
)

// Load parses every bundled TTF. Call once at startup.
func Load() (*Kit, error) {
	parse := func(name string, ttf []byte) (*truetype.Font, error) {
		f, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse bundled font %s: %w", name, err)
		}
		return f, nil
	}

	var err error
	set := func(regular, bold, italic, boldItalic []byte) *familySet {
		if err != nil {
			return nil
		}
		fs := &familySet{}
		if fs.regular, err = parse("regular", regular); err != nil {
			return nil
		}
		if fs.bold, err = parse("bold", bold); err != nil {
			return nil
		}
		if fs.italic, err = parse("italic", italic); err != nil {
			return nil
		}
		if fs.boldItalic, err = parse("bold-italic", boldItalic); err != nil {
			return nil
		}
		return fs
	}

	sans := set(goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF)
	serif := set(gomedium.TTF, gobold.TTF, gomediumitalic.TTF, gobolditalic.TTF)
	mono := set(gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobold.TTF)
	cursive := set(goitalic.TTF, gobolditalic.TTF, goitalic.TTF, gobolditalic.TTF)
	fantasy := set(gosmallcaps.TTF, gosmallcaps.TTF, gosmallcapsitalic.TTF, gosmallcapsitalic.TTF)
	if err != nil {
		return nil, err
	}

	return &Kit{
		families: map[string]*familySet{
			FamilySans:    sans,
			FamilySerif:   serif,
			FamilyMono:    mono,
			FamilyCursive: cursive,
			FamilyFantasy: fantasy,
		},
		mono: mono,
	}, nil
}

func (k *Kit) family(name string) *familySet {
	if fs, ok := k.families[name]; ok {
		return fs
	}
	return k.families[FamilySans]
}

func (fs *familySet) pick(v Variant) *truetype.Font {
	switch {
	case v.Bold && v.Italic:
		return fs.boldItalic
	case v.Bold:
		return fs.bold
	case v.Italic:
		return fs.italic
	default:
		return fs.regular
	}
}

// Font returns the truetype font for drawing with a freetype context.
func (k *Kit) Font(family string, v Variant) *truetype.Font {
	return k.family(family).pick(v)
}

// MonoFont returns the code-span font regardless of the body family.
func (k *Kit) MonoFont(v Variant) *truetype.Font {
	return k.mono.pick(v)
}

// Face builds a measuring/drawing face at the given pixel size.
func (k *Kit) Face(family string, v Variant, size float64) font.Face {
	return newFace(k.Font(family, v), size)
}

// MonoFace builds a code-span face at the given pixel size.
func (k *Kit) MonoFace(v Variant, size float64) font.Face {
	return newFace(k.MonoFont(v), size)
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}
