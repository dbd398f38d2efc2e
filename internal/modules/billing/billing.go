// Package billing drives the premium upgrade flow through Stripe Checkout.
// The redirect back from Stripe lands on the entitlement module; the
// webhook here is the server-side confirmation of the same purchase.
package billing

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/prompt-styler/core/internal/config"
	"github.com/prompt-styler/core/internal/modules/entitlement"
	"github.com/prompt-styler/core/internal/pkg/response"
	"github.com/prompt-styler/core/internal/pkg/viewer"
)

const maxWebhookBody = 64 << 10

type Handler struct {
	cfg    config.StripeConfig
	appURL string
	ent    *entitlement.Service
	log    *zap.Logger
}

func NewHandler(cfg config.StripeConfig, appURL string, ent *entitlement.Service, log *zap.Logger) *Handler {
	if cfg.SecretKey != "" {
		stripe.Key = cfg.SecretKey
	}
	return &Handler{cfg: cfg, appURL: strings.TrimRight(appURL, "/"), ent: ent, log: log}
}

// Enabled reports whether a secret key is configured. Without one the
// checkout and webhook routes refuse service.
func (h *Handler) Enabled() bool { return h.cfg.SecretKey != "" }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.checkout)
	rg.POST("/webhooks/stripe", h.webhook)
}

type checkoutRequest struct {
	PriceID string `json:"priceId"`
}

func (h *Handler) checkout(c *gin.Context) {
	if !h.Enabled() {
		response.ServiceUnavailable(c, "payments are not configured")
		return
	}

	var req checkoutRequest
	_ = c.ShouldBindJSON(&req)
	price := strings.TrimSpace(req.PriceID)
	if price == "" {
		price = h.cfg.PriceID
	}
	if price == "" {
		response.BadRequest(c, "price id is required")
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(price),
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:          stripe.String(h.appURL + "/app?success=true&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:           stripe.String(h.appURL + "/?canceled=true"),
		AllowPromotionCodes: stripe.Bool(true),
		ClientReferenceID:   stripe.String(viewer.ID(c)),
	}
	sess, err := session.New(params)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"id": sess.ID, "url": sess.URL})
}

func (h *Handler) webhook(c *gin.Context) {
	if !h.Enabled() || h.cfg.WebhookSecret == "" {
		response.ServiceUnavailable(c, "payments are not configured")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(c, "unreadable payload")
		return
	}
	// Verify the signature only. Stripe stamps events with the account's
	// API version, which rarely matches the one pinned by the SDK.
	event, err := webhook.ConstructEventWithOptions(payload, c.GetHeader("Stripe-Signature"), h.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		response.BadRequest(c, "invalid webhook signature")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			response.BadRequest(c, "malformed event payload")
			return
		}
		viewerID := strings.TrimSpace(sess.ClientReferenceID)
		if viewerID == "" {
			h.log.Warn("checkout completed without client reference", zap.String("session", sess.ID))
		} else if _, err := h.ent.Activate(c.Request.Context(), viewerID, sess.ID); err != nil {
			response.InternalError(c, err)
			return
		}
	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			response.BadRequest(c, "malformed event payload")
			return
		}
		h.log.Info("subscription lifecycle event",
			zap.String("event", string(event.Type)),
			zap.String("subscription", sub.ID),
			zap.String("status", string(sub.Status)))
	case "invoice.payment_succeeded", "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			response.BadRequest(c, "malformed event payload")
			return
		}
		h.log.Info("invoice event", zap.String("event", string(event.Type)), zap.String("invoice", inv.ID))
	default:
		h.log.Debug("unhandled webhook event", zap.String("event", string(event.Type)))
	}
	response.OK(c, gin.H{"received": true})
}
