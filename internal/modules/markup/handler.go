package markup

import (
	"github.com/gin-gonic/gin"
	"github.com/prompt-styler/core/internal/pkg/response"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/markup")
	g.POST("/render", h.render)
	g.POST("/wrap", h.wrap)
	g.POST("/list", h.list)
	g.POST("/ordered-marker", h.orderedMarker)
}

type renderDTO struct {
	Text string `json:"text"`
}

func (h *Handler) render(c *gin.Context) {
	var dto renderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	response.OK(c, gin.H{"markup": Render(dto.Text)})
}

type wrapDTO struct {
	Text   string `json:"text"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Marker string `json:"marker" binding:"required"`
}

var wrapMarkers = map[string]bool{
	"**": true, "*": true, "_": true, "~~": true, "`": true,
}

func (h *Handler) wrap(c *gin.Context) {
	var dto wrapDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if !wrapMarkers[dto.Marker] {
		response.BadRequest(c, "unknown marker")
		return
	}
	text, sel := WrapSelection(dto.Text, Selection{Start: dto.Start, End: dto.End}, dto.Marker)
	response.OK(c, gin.H{"text": text, "start": sel.Start, "end": sel.End})
}

type listDTO struct {
	Text    string `json:"text"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Ordered bool   `json:"ordered"`
}

func (h *Handler) list(c *gin.Context) {
	var dto listDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	sel := Selection{Start: dto.Start, End: dto.End}
	var text string
	if dto.Ordered {
		text, sel = InsertOrderedItem(dto.Text, sel)
	} else {
		text, sel = InsertListPrefix(dto.Text, sel, "• ")
	}
	response.OK(c, gin.H{"text": text, "start": sel.Start, "end": sel.End})
}

type orderedMarkerDTO struct {
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
}

func (h *Handler) orderedMarker(c *gin.Context) {
	var dto orderedMarkerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	response.OK(c, gin.H{"marker": NextOrderedMarker(dto.Text, dto.Cursor)})
}
