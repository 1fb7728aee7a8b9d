package services

import (
	"context"
	"log"
	"time"

	health "portfolio/gen/health"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService implements the health service
type HealthService struct {
	name    string
	backend string
	pinger  Pinger
}

// NewHealthService creates a new health service. pinger may be nil when the
// backend has no cheap reachability check.
func NewHealthService(name, backend string, pinger Pinger) *HealthService {
	return &HealthService{name: name, backend: backend, pinger: pinger}
}

// Check implements the health check method
func (s *HealthService) Check(ctx context.Context) (*health.Healthresult, error) {
	status := "healthy"
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			log.Printf("[HEALTH] Backend %s unreachable: %v", s.backend, err)
			status = "degraded"
		}
	}
	service := s.name
	backend := s.backend
	return &health.Healthresult{
		Status:  &status,
		Service: &service,
		Backend: &backend,
	}, nil
}
