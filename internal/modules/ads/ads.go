// Package ads exposes ad-slot configuration to non-premium viewers. No ad
// markup is served here; the client asks which slot to mount, and a 204
// means "mount nothing".
package ads

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prompt-styler/core/internal/config"
	"github.com/prompt-styler/core/internal/modules/entitlement"
	"github.com/prompt-styler/core/internal/pkg/response"
	"github.com/prompt-styler/core/internal/pkg/viewer"
)

type Handler struct {
	cfg config.AdSenseConfig
	ent *entitlement.Service
}

func NewHandler(cfg config.AdSenseConfig, ent *entitlement.Service) *Handler {
	return &Handler{cfg: cfg, ent: ent}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ads/slot", h.slot)
}

type slotResponse struct {
	ClientID  string `json:"client_id"`
	Slot      string `json:"slot"`
	Placement string `json:"placement"`
}

func (h *Handler) slot(c *gin.Context) {
	if strings.TrimSpace(h.cfg.ClientID) == "" {
		response.NoContent(c)
		return
	}

	status, err := h.ent.Get(c.Request.Context(), viewer.ID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if status.IsPremium {
		response.NoContent(c)
		return
	}

	placement := c.DefaultQuery("placement", "banner")
	slot, ok := h.cfg.Slots[placement]
	if !ok {
		response.NoContent(c)
		return
	}
	response.OK(c, slotResponse{ClientID: h.cfg.ClientID, Slot: slot, Placement: placement})
}
