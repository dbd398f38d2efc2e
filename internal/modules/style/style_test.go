package style

import (
	"regexp"
	"testing"
)

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatal(err)
	}
	if err := DefaultExportSettings().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"font", func(s *Settings) { s.Font = "comic-sans" }},
		{"background", func(s *Settings) { s.Background = "plaid" }},
		{"card style", func(s *Settings) { s.CardStyle = "" }},
		{"wide size", func(s *Settings) { s.FontSizeWide = "6xl" }}, // tall-only step
		{"tall size", func(s *Settings) { s.FontSizeTall = "sm" }},  // wide-only step
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Errorf("Validate() accepted %+v", s)
			}
		})
	}
}

func TestNormalizeReplacesOnlyBadFields(t *testing.T) {
	s := Settings{
		Font:         FontMono,
		Background:   "plaid",
		CardStyle:    CardDark,
		FontSizeWide: "huge",
		FontSizeTall: Size6XL,
	}
	got := s.Normalize()
	want := Settings{
		Font:         FontMono,
		Background:   DefaultBackground,
		CardStyle:    CardDark,
		FontSizeWide: DefaultSizeWide,
		FontSizeTall: Size6XL,
	}
	if got != want {
		t.Errorf("Normalize() = %+v, want %+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("normalized settings invalid: %v", err)
	}
}

func TestExportSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      ExportSettings
		wantErr bool
	}{
		{"wide png 1x", ExportSettings{AspectWide, FilePNG, Scale1x}, false},
		{"tall jpeg 2x", ExportSettings{AspectTall, FileJPEG, Scale2x}, false},
		{"bad aspect", ExportSettings{"4:3", FilePNG, Scale1x}, true},
		{"bad type", ExportSettings{AspectWide, "gif", Scale1x}, true},
		{"bad scale", ExportSettings{AspectWide, FilePNG, 3}, true},
		{"zero scale", ExportSettings{AspectWide, FilePNG, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestTargetGeometry(t *testing.T) {
	tests := []struct {
		in   ExportSettings
		want Geometry
	}{
		{ExportSettings{AspectWide, FilePNG, Scale1x}, Geometry{1920, 1080}},
		{ExportSettings{AspectWide, FilePNG, Scale2x}, Geometry{3840, 2160}},
		{ExportSettings{AspectTall, FilePNG, Scale1x}, Geometry{1080, 1920}},
		{ExportSettings{AspectTall, FileJPEG, Scale2x}, Geometry{2160, 3840}},
	}
	for _, tt := range tests {
		if got := tt.in.TargetGeometry(); got != tt.want {
			t.Errorf("TargetGeometry(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		in   ExportSettings
		want string
	}{
		{ExportSettings{AspectWide, FilePNG, Scale1x}, "prompt-16:9-1700000000000.png"},
		{ExportSettings{AspectTall, FileJPEG, Scale1x}, "prompt-9:16-1700000000000.jpeg"},
		{ExportSettings{AspectWide, FilePNG, Scale2x}, "prompt-16:9@2x-1700000000000.png"},
	}
	for _, tt := range tests {
		if got := tt.in.Filename(1700000000000); got != tt.want {
			t.Errorf("Filename(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	pattern := regexp.MustCompile(`^prompt-(16:9|9:16)(@2x)?-\d+\.(png|jpeg)$`)
	for _, tt := range tests {
		if name := tt.in.Filename(1); !pattern.MatchString(name) {
			t.Errorf("filename %q does not match naming contract", name)
		}
	}
}

func TestSizeFor(t *testing.T) {
	s := DefaultSettings()
	if got := s.SizeFor(AspectWide); got != 20 {
		t.Errorf("wide default size = %d, want 20", got)
	}
	if got := s.SizeFor(AspectTall); got != 30 {
		t.Errorf("tall default size = %d, want 30", got)
	}
}
