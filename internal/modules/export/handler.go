package export

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prompt-styler/core/internal/modules/style"
	"github.com/prompt-styler/core/internal/pkg/pagination"
	"github.com/prompt-styler/core/internal/pkg/response"
	"github.com/prompt-styler/core/internal/pkg/viewer"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, idempotenceMW gin.HandlerFunc) {
	g := rg.Group("/export")
	g.POST("", idempotenceMW, h.export)
	g.GET("/records", h.records)
}

type exportDTO struct {
	Text   string               `json:"text"`
	Style  style.Settings       `json:"style"`
	Export style.ExportSettings `json:"export"`
}

func (h *Handler) export(c *gin.Context) {
	var dto exportDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := dto.Export.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	res, err := h.svc.Export(c.Request.Context(), Request{
		Text:     dto.Text,
		Style:    dto.Style,
		Settings: dto.Export,
		ViewerID: viewer.ID(c),
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Header("X-Export-Filename", res.Filename)
	c.Data(http.StatusOK, res.ContentType, res.Data)
}

func (h *Handler) records(c *gin.Context) {
	recs, pag, err := h.svc.Records(viewer.ID(c), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, recs, pag)
}
