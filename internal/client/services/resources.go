package services

import (
	"context"
	"fmt"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/client"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

// ResourceService reads the time-bounded resources: public ones that are
// currently active and private ones with an expiry.
type ResourceService interface {
	Active(ctx context.Context) (normalize.Page, error)
	Private(ctx context.Context) (normalize.Page, error)
	Get(ctx context.Context, id string) (models.Entity, error)
	GetPrivate(ctx context.Context, id string) (models.Entity, error)
	Participants(ctx context.Context, id string) (normalize.Page, error)
	Stats(ctx context.Context) (map[string]any, error)
}

type resourceService struct {
	client client.Client
	log    logging.Logger
}

func NewResourceService(c client.Client, log logging.Logger) ResourceService {
	return &resourceService{client: c, log: logging.OrNop(log)}
}

func (s *resourceService) Active(ctx context.Context) (normalize.Page, error) {
	v, err := s.client.ActiveResources(ctx)
	if err != nil {
		return normalize.Empty(), fmt.Errorf("active resources: %w", err)
	}
	return page(ctx, s.log, "active resources", v, fieldResources), nil
}

func (s *resourceService) Private(ctx context.Context) (normalize.Page, error) {
	v, err := s.client.PrivateResources(ctx)
	if err != nil {
		return normalize.Empty(), fmt.Errorf("private resources: %w", err)
	}
	return page(ctx, s.log, "private resources", v, fieldResources), nil
}

func (s *resourceService) Get(ctx context.Context, id string) (models.Entity, error) {
	v, err := s.client.Resource(ctx, id)
	if err != nil {
		return models.Entity{}, fmt.Errorf("get resource %s: %w", id, err)
	}
	return entity(ctx, s.log, "resource", v, fieldResource, id), nil
}

func (s *resourceService) GetPrivate(ctx context.Context, id string) (models.Entity, error) {
	v, err := s.client.PrivateResource(ctx, id)
	if err != nil {
		return models.Entity{}, fmt.Errorf("get private resource %s: %w", id, err)
	}
	return entity(ctx, s.log, "private resource", v, fieldResource, id), nil
}

func (s *resourceService) Participants(ctx context.Context, id string) (normalize.Page, error) {
	v, err := s.client.Participants(ctx, id)
	if err != nil {
		return normalize.Empty(), fmt.Errorf("participants of %s: %w", id, err)
	}
	return page(ctx, s.log, "participants", v, fieldParticipants), nil
}

func (s *resourceService) Stats(ctx context.Context) (map[string]any, error) {
	v, err := s.client.ResourceStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("resource stats: %w", err)
	}
	return normalize.Object(v, fieldStats), nil
}
