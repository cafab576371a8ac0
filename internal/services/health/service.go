package health

import (
	"context"
	"time"

	"prep-backend/internal/shared/storage/kv"
)

const probeTimeout = 2 * time.Second

// probeKey is read, never written, to check the KV backend responds.
const probeKey = "health.probe"

// Service encapsulates health-related checks.
type Service struct {
	Store   kv.Store
	Backend string
}

// NewService constructs a new health service.
func NewService(store kv.Store, backend string) *Service {
	return &Service{Store: store, Backend: backend}
}

// Status reports whether the KV backend answered a read.
func (s *Service) Status(ctx context.Context) map[string]any {
	out := map[string]any{"ok": true, "kvBackend": s.Backend}
	if s.Store == nil {
		return out
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if _, _, err := s.Store.Get(ctx, probeKey); err != nil {
		out["ok"] = false
		out["error"] = err.Error()
	}
	return out
}
