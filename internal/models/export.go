package models

// ExportRecordModel keeps a history entry per completed image export.
type ExportRecordModel struct {
	Base
	Filename    string `json:"filename"     gorm:"not null"`
	AspectRatio string `json:"aspect_ratio" gorm:"index;not null"` // "16:9" | "9:16"
	FileType    string `json:"file_type"    gorm:"not null"`       // "png" | "jpeg"
	Scale       int    `json:"scale"        gorm:"default:1"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ByteSize    int    `json:"byte_size"`
	ViewerID    string `json:"viewer_id"    gorm:"index"`
}

func (ExportRecordModel) TableName() string { return "export_records" }
