package raster

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/prompt-styler/core/internal/modules/markup"
	"github.com/prompt-styler/core/internal/modules/style"
	"github.com/prompt-styler/core/internal/pkg/fontkit"
)

func newBackend(t *testing.T) *Freetype {
	t.Helper()
	kit, err := fontkit.Load()
	if err != nil {
		t.Fatal(err)
	}
	return NewFreetype(kit)
}

func testDoc(text string, layout Layout) Document {
	return Document{
		Lines:  markup.ParseLines(markup.Render(text)),
		Style:  style.DefaultSettings(),
		Layout: layout,
	}
}

func TestRenderGeometry(t *testing.T) {
	be := newBackend(t)
	tests := []struct {
		name string
		in   style.ExportSettings
		want style.Geometry
	}{
		{"wide 1x", style.ExportSettings{AspectRatio: style.AspectWide, FileType: style.FilePNG, Scale: style.Scale1x}, style.Geometry{Width: 1920, Height: 1080}},
		{"wide 2x", style.ExportSettings{AspectRatio: style.AspectWide, FileType: style.FilePNG, Scale: style.Scale2x}, style.Geometry{Width: 3840, Height: 2160}},
		{"tall 1x", style.ExportSettings{AspectRatio: style.AspectTall, FileType: style.FilePNG, Scale: style.Scale1x}, style.Geometry{Width: 1080, Height: 1920}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := ExportLayout(tt.in, style.CardModernWhite)
			img, err := be.Render(context.Background(), testDoc("hello", layout))
			if err != nil {
				t.Fatal(err)
			}
			got := style.Geometry{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
			if got != tt.want {
				t.Errorf("rendered %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	be := newBackend(t)
	layout := PreviewLayout(style.AspectWide, style.DefaultSettings(), style.Geometry{Width: 320, Height: 180})
	doc := testDoc("# Title\nsome **body** text", layout)

	a, err := be.Render(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	b, err := be.Render(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two renders of the same document differ")
	}
}

func TestRenderBackgroundGradientOrigin(t *testing.T) {
	be := newBackend(t)
	layout := PreviewLayout(style.AspectWide, style.DefaultSettings(), style.Geometry{Width: 320, Height: 180})
	img, err := be.Render(context.Background(), testDoc("x", layout))
	if err != nil {
		t.Fatal(err)
	}
	want := backgroundGradients[style.BackgroundGradientBlue].at(0)
	if got := img.RGBAAt(0, 0); got != want {
		t.Errorf("top-left pixel = %+v, want gradient start %+v", got, want)
	}
}

func TestRenderCanceledContext(t *testing.T) {
	be := newBackend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	layout := PreviewLayout(style.AspectWide, style.DefaultSettings(), style.Geometry{Width: 64, Height: 64})
	if _, err := be.Render(ctx, testDoc("x", layout)); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestContentHeightGrowsWithText(t *testing.T) {
	be := newBackend(t)
	layout := PreviewLayout(style.AspectTall, style.DefaultSettings(), style.Geometry{Width: 270, Height: 480})

	short := be.ContentHeight(testDoc("one line", layout))
	long := be.ContentHeight(testDoc("one line\ntwo lines\nthree lines\nfour lines", layout))
	if long <= short {
		t.Errorf("height did not grow: short=%d long=%d", short, long)
	}
}

func TestContentHeightWrapsLongText(t *testing.T) {
	be := newBackend(t)
	layout := PreviewLayout(style.AspectWide, style.DefaultSettings(), style.Geometry{Width: 200, Height: 480})

	single := be.ContentHeight(testDoc("word", layout))
	wrapped := be.ContentHeight(testDoc("several words that cannot possibly fit one narrow line", layout))
	if wrapped < 2*single {
		t.Errorf("long text did not wrap: single=%d wrapped=%d", single, wrapped)
	}
}

func TestSplitPreservingSpaces(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a b", []string{"a", " ", "b"}},
		{"  a", []string{"  ", "a"}},
		{"ab", []string{"ab"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := splitPreservingSpaces(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitPreservingSpaces(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestExportLayoutPerAspect(t *testing.T) {
	wide := ExportLayout(style.ExportSettings{AspectRatio: style.AspectWide, FileType: style.FilePNG, Scale: style.Scale1x}, style.CardModernWhite)
	tall := ExportLayout(style.ExportSettings{AspectRatio: style.AspectTall, FileType: style.FilePNG, Scale: style.Scale1x}, style.CardModernWhite)

	if wide.BodySize != 36 || wide.LineHeight != 1.5 || wide.CardWidthFrac != 0.75 {
		t.Errorf("wide layout = %+v", wide)
	}
	if tall.BodySize != 44 || tall.LineHeight != 1.6 || tall.CardWidthFrac != 0.95 {
		t.Errorf("tall layout = %+v", tall)
	}

	scaled := ExportLayout(style.ExportSettings{AspectRatio: style.AspectWide, FileType: style.FilePNG, Scale: style.Scale2x}, style.CardModernWhite)
	if scaled.BodySize != 72 || scaled.OuterPadding != 120 || scaled.BlockMargin != 40 {
		t.Errorf("2x layout not scaled: %+v", scaled)
	}
}
