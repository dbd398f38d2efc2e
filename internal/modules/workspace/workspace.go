// Package workspace persists each viewer's draft: the prompt text plus the
// current style and export selections, stored as one JSON snapshot. The
// reader never trusts a corrupt snapshot; it is discarded wholesale and the
// defaults take over.
package workspace

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prompt-styler/core/internal/models"
	"github.com/prompt-styler/core/internal/modules/style"
	"github.com/prompt-styler/core/internal/pkg/response"
	"github.com/prompt-styler/core/internal/pkg/viewer"
)

const keyPrefix = "workspace:"

// Snapshot is the persisted workspace state.
type Snapshot struct {
	Text   string               `json:"text"`
	Style  style.Settings       `json:"style"`
	Export style.ExportSettings `json:"export"`
}

// DefaultSnapshot is what a fresh or recovered-from-corruption viewer gets.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Style:  style.DefaultSettings(),
		Export: style.DefaultExportSettings(),
	}
}

// decode validates a stored blob. Any structural problem fails the whole
// snapshot; enum drift inside a structurally sound blob is normalized
// field by field instead.
func decode(raw string) (Snapshot, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, err
	}
	snap.Style = snap.Style.Normalize()
	snap.Export = snap.Export.Normalize()
	return snap, nil
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) Load(viewerID string) (Snapshot, error) {
	var opt models.OptionModel
	err := s.db.Where("name = ?", keyPrefix+viewerID).First(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultSnapshot(), nil
	}
	if err != nil {
		return Snapshot{}, err
	}

	snap, decErr := decode(opt.Value)
	if decErr != nil {
		s.log.Warn("discarding corrupt workspace snapshot",
			zap.String("viewer", viewerID), zap.Error(decErr))
		_ = s.db.Where("name = ?", keyPrefix+viewerID).Delete(&models.OptionModel{}).Error
		return DefaultSnapshot(), nil
	}
	return snap, nil
}

func (s *Service) Save(viewerID string, snap Snapshot) (Snapshot, error) {
	snap.Style = snap.Style.Normalize()
	snap.Export = snap.Export.Normalize()
	data, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, err
	}

	opt := models.OptionModel{Name: keyPrefix + viewerID, Value: string(data)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&opt).Error
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/workspace")
	g.GET("", h.get)
	g.PUT("", h.put)
}

func (h *Handler) get(c *gin.Context) {
	snap, err := h.svc.Load(viewer.ID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, snap)
}

func (h *Handler) put(c *gin.Context) {
	var snap Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	saved, err := h.svc.Save(viewer.ID(c), snap)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, saved)
}
