package preview

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prompt-styler/core/internal/modules/style"
	"github.com/prompt-styler/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/preview")
	g.POST("/plan", h.plan)
	g.POST("", h.document)
}

type previewDTO struct {
	Text     string            `json:"text"`
	Title    string            `json:"title"`
	Style    style.Settings    `json:"style"`
	Aspect   style.AspectRatio `json:"aspect_ratio"`
	Viewport style.Geometry    `json:"viewport"`
}

func (h *Handler) bind(c *gin.Context) (previewDTO, bool) {
	var dto previewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return dto, false
	}
	if dto.Aspect == "" {
		dto.Aspect = style.AspectWide
	}
	if dto.Aspect != style.AspectWide && dto.Aspect != style.AspectTall {
		response.BadRequest(c, "unknown aspect ratio")
		return dto, false
	}
	return dto, true
}

func (h *Handler) plan(c *gin.Context) {
	dto, ok := h.bind(c)
	if !ok {
		return
	}
	response.OK(c, h.svc.Compute(dto.Text, dto.Style, dto.Aspect, dto.Viewport))
}

func (h *Handler) document(c *gin.Context) {
	dto, ok := h.bind(c)
	if !ok {
		return
	}
	st := dto.Style.Normalize()
	plan := h.svc.Compute(dto.Text, st, dto.Aspect, dto.Viewport)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, renderHTML(dto.Title, plan, st))
}
