package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/arena-booking/internal/access"
)

// ResourceRepository captures the persistence operations for resources.
type ResourceRepository interface {
	GetResource(ctx context.Context, id string) (Resource, error)
	// ListResources returns resources ordered by id, optionally filtered
	// to one location.
	ListResources(ctx context.Context, locationScope string) ([]Resource, error)
}

// ResourceService exposes the read-only resource catalog. Resources are
// reference data maintained through seeding, not through this API.
type ResourceService struct {
	resources ResourceRepository
	logger    *slog.Logger
}

// NewResourceService constructs a resource service.
func NewResourceService(resources ResourceRepository) *ResourceService {
	return NewResourceServiceWithLogger(resources, nil)
}

// NewResourceServiceWithLogger constructs a resource service with a specified logger.
func NewResourceServiceWithLogger(resources ResourceRepository, logger *slog.Logger) *ResourceService {
	return &ResourceService{resources: resources, logger: defaultLogger(logger)}
}

// ListResources enumerates resources visible to the principal: all of them
// for owners, the home location's for admins.
func (s *ResourceService) ListResources(ctx context.Context, principal Principal) ([]Resource, error) {
	if s == nil || s.resources == nil {
		return nil, fmt.Errorf("resource repository not configured")
	}
	resources, err := s.resources.ListResources(ctx, access.LocationScope(principal.Actor()))
	return resources, mapRepoError(err)
}
