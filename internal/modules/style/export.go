package style

import "fmt"

// AspectRatio selects one of the two fixed output geometries.
type AspectRatio string

const (
	AspectWide AspectRatio = "16:9"
	AspectTall AspectRatio = "9:16"
)

// FileType selects the image encoding.
type FileType string

const (
	FilePNG  FileType = "png"
	FileJPEG FileType = "jpeg"
)

// Scale is the integer resolution multiplier applied to the base geometry.
type Scale int

const (
	Scale1x Scale = 1
	Scale2x Scale = 2
)

// Geometry is a target pixel size.
type Geometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Base geometry per aspect ratio at 1x, in device pixels.
var formats = map[AspectRatio]Geometry{
	AspectWide: {Width: 1920, Height: 1080},
	AspectTall: {Width: 1080, Height: 1920},
}

// ExportSettings selects the output geometry and encoding for one export.
type ExportSettings struct {
	AspectRatio AspectRatio `json:"aspect_ratio"`
	FileType    FileType    `json:"file_type"`
	Scale       Scale       `json:"scale"`
}

// DefaultExportSettings returns the session-start export configuration.
func DefaultExportSettings() ExportSettings {
	return ExportSettings{AspectRatio: AspectWide, FileType: FilePNG, Scale: Scale1x}
}

// Validate rejects any field outside its closed option set.
func (e ExportSettings) Validate() error {
	if _, ok := formats[e.AspectRatio]; !ok {
		return fmt.Errorf("unknown aspect ratio %q", e.AspectRatio)
	}
	if e.FileType != FilePNG && e.FileType != FileJPEG {
		return fmt.Errorf("unknown file type %q", e.FileType)
	}
	if e.Scale != Scale1x && e.Scale != Scale2x {
		return fmt.Errorf("unknown scale %d", e.Scale)
	}
	return nil
}

// Normalize replaces every unrecognized field value with its default.
func (e ExportSettings) Normalize() ExportSettings {
	if _, ok := formats[e.AspectRatio]; !ok {
		e.AspectRatio = AspectWide
	}
	if e.FileType != FilePNG && e.FileType != FileJPEG {
		e.FileType = FilePNG
	}
	if e.Scale != Scale1x && e.Scale != Scale2x {
		e.Scale = Scale1x
	}
	return e
}

// FormatFor returns the base geometry for an aspect ratio at 1x.
func FormatFor(aspect AspectRatio) Geometry {
	return formats[aspect]
}

// TargetGeometry is the exact pixel size an export must request: the base
// geometry multiplied by the scale factor, never the live viewport size.
func (e ExportSettings) TargetGeometry() Geometry {
	g := formats[e.AspectRatio]
	return Geometry{Width: g.Width * int(e.Scale), Height: g.Height * int(e.Scale)}
}

// Filename builds the user-facing download name for an export finished at
// the given unix-millisecond timestamp.
//
//	prompt-16:9-1700000000000.png
//	prompt-9:16@2x-1700000000000.jpeg
func (e ExportSettings) Filename(unixMillis int64) string {
	suffix := ""
	if e.Scale == Scale2x {
		suffix = "@2x"
	}
	return fmt.Sprintf("prompt-%s%s-%d.%s", e.AspectRatio, suffix, unixMillis, e.FileType)
}
