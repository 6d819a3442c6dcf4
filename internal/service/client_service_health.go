package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/utils"
)

// HealthService reads sys/health.
type HealthService struct {
	adapter adapter.VaultAdapter
}

func NewHealthService(a adapter.VaultAdapter) *HealthService {
	return &HealthService{adapter: a}
}

// Check returns the health payload pretty-printed. Sealed and standby nodes
// are reported as payload, not as errors.
func (s *HealthService) Check(ctx context.Context) (string, error) {
	body, err := s.adapter.Health(ctx)
	if err != nil {
		return "", fmt.Errorf("health check: %w", err)
	}
	return utils.PrettyJSON(body), nil
}
