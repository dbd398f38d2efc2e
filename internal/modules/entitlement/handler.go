package entitlement

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prompt-styler/core/internal/pkg/response"
	"github.com/prompt-styler/core/internal/pkg/viewer"
)

type Handler struct {
	svc    *Service
	appURL string
}

func NewHandler(svc *Service, appURL string) *Handler {
	return &Handler{svc: svc, appURL: strings.TrimRight(appURL, "/")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/entitlement", h.get)
}

// RegisterRoot mounts the payment-redirect landing route on the engine
// root, outside the API prefix, because the payment provider redirects to
// a plain page URL.
func (h *Handler) RegisterRoot(r *gin.Engine) {
	r.GET("/app", h.landing)
}

func (h *Handler) get(c *gin.Context) {
	status, err := h.svc.Get(c.Request.Context(), viewer.ID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, status)
}

// landing completes the redirect flow: a success marker plus a transaction
// id activates the grant, then the markers are cleared with a redirect so
// a reload cannot re-trigger activation.
func (h *Handler) landing(c *gin.Context) {
	success := c.Query("success") == "true"
	sessionID := strings.TrimSpace(c.Query("session_id"))

	if success && sessionID != "" {
		if _, err := h.svc.Activate(c.Request.Context(), viewer.ID(c), sessionID); err != nil {
			response.InternalError(c, err)
			return
		}
		c.Redirect(http.StatusFound, h.appURL+"/app")
		return
	}

	status, err := h.svc.Get(c.Request.Context(), viewer.ID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, status)
}
