package billing

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/prompt-styler/core/internal/config"
	"github.com/prompt-styler/core/internal/modules/entitlement"
)

type mapStore map[string]string

func (m mapStore) Get(_ context.Context, key string) (string, error) { return m[key], nil }
func (m mapStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m[key] = value.(string)
	return nil
}
func (m mapStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m, k)
	}
	return nil
}

func newTestRouter(cfg config.StripeConfig, store mapStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ent := entitlement.NewService(store, zap.NewNop())
	r := gin.New()
	NewHandler(cfg, "http://localhost:2323", ent, zap.NewNop()).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestCheckoutUnavailableWithoutConfig(t *testing.T) {
	r := newTestRouter(config.StripeConfig{}, mapStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	cfg := config.StripeConfig{SecretKey: "sk_test_x", WebhookSecret: "whsec_test"}
	r := newTestRouter(cfg, mapStore{})

	body := strings.NewReader(`{"type": "checkout.session.completed"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", body)
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestWebhookActivatesViewer(t *testing.T) {
	const secret = "whsec_test"
	cfg := config.StripeConfig{SecretKey: "sk_test_x", WebhookSecret: secret}
	store := mapStore{}
	r := newTestRouter(cfg, store)

	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_1", "client_reference_id": "viewer-1"}}
	}`)
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	header := fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", header)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	ent := entitlement.NewService(store, zap.NewNop())
	status, err := ent.Get(context.Background(), "viewer-1")
	if err != nil {
		t.Fatal(err)
	}
	if !status.IsPremium {
		t.Error("completed checkout did not activate entitlement")
	}
}
