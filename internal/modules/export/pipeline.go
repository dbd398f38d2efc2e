// Package export produces downloadable raster images from the current
// prompt at a fixed target geometry, independent of any preview size.
package export

import (
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prompt-styler/core/internal/models"
	"github.com/prompt-styler/core/internal/modules/export/raster"
	"github.com/prompt-styler/core/internal/modules/markup"
	"github.com/prompt-styler/core/internal/modules/style"
	"github.com/prompt-styler/core/internal/pkg/pagination"
	"github.com/prompt-styler/core/internal/pkg/response"
)

const (
	// Grace period between staging and capture so the pipeline mirrors the
	// settle behavior of a freshly attached render surface.
	settleDelay = 100 * time.Millisecond

	jpegQuality = 90
)

// Request is one export trigger.
type Request struct {
	Text     string
	Style    style.Settings
	Settings style.ExportSettings
	ViewerID string
}

// Result carries the encoded image and its download name.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
	Record      models.ExportRecordModel
}

type Service struct {
	db      *gorm.DB
	backend raster.Backend
	scratch string
	log     *zap.Logger

	// Exports are serialized: at most one staging area exists at a time.
	mu sync.Mutex
}

func NewService(db *gorm.DB, backend raster.Backend, scratchDir string, log *zap.Logger) (*Service, error) {
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir %q: %w", scratchDir, err)
	}
	return &Service{db: db, backend: backend, scratch: scratchDir, log: log}, nil
}

// Export runs the full pipeline: stage, settle, rasterize at the exact
// target geometry, encode, record. The staging directory is removed on
// every path out of this function, success or failure.
func (s *Service) Export(ctx context.Context, req Request) (*Result, error) {
	if err := req.Settings.Validate(); err != nil {
		return nil, err
	}
	st := req.Style.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	staging, err := os.MkdirTemp(s.scratch, "export-*")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			s.log.Warn("staging cleanup failed", zap.String("dir", staging), zap.Error(err))
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(settleDelay):
	}

	layout := raster.ExportLayout(req.Settings, st.CardStyle)
	doc := raster.Document{
		Lines:       markup.ParseLines(markup.Render(req.Text)),
		Style:       st,
		Layout:      layout,
		Transparent: req.Settings.FileType == style.FilePNG,
	}
	img, err := s.backend.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}

	filename := req.Settings.Filename(time.Now().UnixMilli())
	path := filepath.Join(staging, filename)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("stage output: %w", err)
	}
	switch req.Settings.FileType {
	case style.FileJPEG:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	default:
		err = png.Encode(f, img)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", req.Settings.FileType, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read staged output: %w", err)
	}

	rec := models.ExportRecordModel{
		Filename:    filename,
		AspectRatio: string(req.Settings.AspectRatio),
		FileType:    string(req.Settings.FileType),
		Scale:       int(req.Settings.Scale),
		Width:       layout.Geometry.Width,
		Height:      layout.Geometry.Height,
		ByteSize:    len(data),
		ViewerID:    req.ViewerID,
	}
	if s.db != nil {
		if err := s.db.Create(&rec).Error; err != nil {
			s.log.Warn("export record not persisted", zap.Error(err))
		}
	}

	s.log.Info("export finished",
		zap.String("filename", filename),
		zap.Int("width", layout.Geometry.Width),
		zap.Int("height", layout.Geometry.Height),
		zap.Int("bytes", len(data)))

	return &Result{
		Filename:    filename,
		ContentType: "image/" + string(req.Settings.FileType),
		Data:        data,
		Record:      rec,
	}, nil
}

// Records lists a viewer's exports, newest first.
func (s *Service) Records(viewerID string, q pagination.Query) ([]models.ExportRecordModel, response.Pagination, error) {
	tx := s.db.Model(&models.ExportRecordModel{}).
		Where("viewer_id = ?", viewerID).
		Order("created_at DESC")
	var recs []models.ExportRecordModel
	pag, err := pagination.Paginate(tx, q, &recs)
	return recs, pag, err
}
