// Package entitlement gates premium features behind a cached flag set by
// the payment redirect flow. The cache is authoritative for at most 24
// hours; anything expired or structurally off is discarded, never trusted.
package entitlement

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	CacheTTL = 24 * time.Hour

	keyPrefix = "ps:entitlement:"
)

// Store is the cache surface the service needs. *redis.Client satisfies it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Record is the cached premium grant.
type Record struct {
	IsPremium   bool      `json:"is_premium"`
	SessionID   string    `json:"session_id"`
	ActivatedAt time.Time `json:"activated_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Status is what callers see: the flag plus when it lapses.
type Status struct {
	IsPremium bool      `json:"is_premium"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

type Service struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

func key(viewerID string) string { return keyPrefix + viewerID }

// Get reads the cached record. A missing, corrupt or expired record means
// not-premium; corrupt records are deleted wholesale rather than partially
// trusted.
func (s *Service) Get(ctx context.Context, viewerID string) (Status, error) {
	raw, err := s.store.Get(ctx, key(viewerID))
	if err != nil {
		return Status{}, err
	}
	if raw == "" {
		return Status{}, nil
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec.ExpiresAt.IsZero() {
		s.log.Warn("discarding corrupt entitlement record",
			zap.String("viewer", viewerID), zap.Error(err))
		_ = s.store.Del(ctx, key(viewerID))
		return Status{}, nil
	}
	if !rec.IsPremium || !s.now().Before(rec.ExpiresAt) {
		return Status{}, nil
	}
	return Status{IsPremium: true, ExpiresAt: rec.ExpiresAt}, nil
}

// Activate unconditionally writes a fresh grant for the viewer. Called once
// per completed payment redirect.
func (s *Service) Activate(ctx context.Context, viewerID, sessionID string) (Status, error) {
	now := s.now()
	rec := Record{
		IsPremium:   true,
		SessionID:   strings.TrimSpace(sessionID),
		ActivatedAt: now,
		ExpiresAt:   now.Add(CacheTTL),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return Status{}, err
	}
	if err := s.store.Set(ctx, key(viewerID), string(data), CacheTTL); err != nil {
		return Status{}, err
	}
	s.log.Info("premium entitlement activated",
		zap.String("viewer", viewerID), zap.Time("expires_at", rec.ExpiresAt))
	return Status{IsPremium: true, ExpiresAt: rec.ExpiresAt}, nil
}
