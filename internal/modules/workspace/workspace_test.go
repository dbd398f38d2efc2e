package workspace

import (
	"encoding/json"
	"testing"

	"github.com/prompt-styler/core/internal/modules/style"
)

func TestDecodeRoundTrip(t *testing.T) {
	snap := DefaultSnapshot()
	snap.Text = "# Draft\nsome text"
	snap.Style.Font = style.FontMono

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	got, err := decode(string(data))
	if err != nil {
		t.Fatal(err)
	}
	if got != snap {
		t.Errorf("round trip changed snapshot:\n got %+v\nwant %+v", got, snap)
	}
}

func TestDecodeRejectsStructuralCorruption(t *testing.T) {
	for _, raw := range []string{
		"{truncated",
		`{"text": 42}`,
		`{"unknown_field": true}`,
		`[]`,
	} {
		if _, err := decode(raw); err == nil {
			t.Errorf("decode(%q) accepted corrupt snapshot", raw)
		}
	}
}

func TestDecodeNormalizesEnumDrift(t *testing.T) {
	raw := `{"text": "hi", "style": {"font": "comic-sans", "background": "gradient-pink", "card_style": "", "title": "", "font_size_wide": "", "font_size_tall": ""}, "export": {"aspect_ratio": "4:3", "file_type": "png", "scale": 0}}`
	snap, err := decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Style.Font != style.DefaultFont {
		t.Errorf("font = %q, want default", snap.Style.Font)
	}
	if snap.Style.Background != style.BackgroundGradientPink {
		t.Errorf("valid background was not preserved: %q", snap.Style.Background)
	}
	if snap.Export.AspectRatio != style.AspectWide || snap.Export.Scale != style.Scale1x {
		t.Errorf("export not normalized: %+v", snap.Export)
	}
	if err := snap.Style.Validate(); err != nil {
		t.Errorf("normalized snapshot invalid: %v", err)
	}
}
