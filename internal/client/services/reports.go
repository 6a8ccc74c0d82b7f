package services

import (
	"context"
	"fmt"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/client"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

// ReportService manages user-submitted moderation reports.
type ReportService interface {
	List(ctx context.Context, filters map[string]string) (normalize.Page, error)
	Stats(ctx context.Context) (map[string]any, error)
	Update(ctx context.Context, id string, fields map[string]any) (models.Entity, error)
	Delete(ctx context.Context, id string) error
}

type reportService struct {
	client client.Client
	log    logging.Logger
}

func NewReportService(c client.Client, log logging.Logger) ReportService {
	return &reportService{client: c, log: logging.OrNop(log)}
}

func (s *reportService) List(ctx context.Context, filters map[string]string) (normalize.Page, error) {
	v, err := s.client.Reports(ctx, filters)
	if err != nil {
		return normalize.Empty(), fmt.Errorf("list reports: %w", err)
	}
	return page(ctx, s.log, "reports", v, fieldReports), nil
}

func (s *reportService) Stats(ctx context.Context) (map[string]any, error) {
	v, err := s.client.ReportStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("report stats: %w", err)
	}
	return normalize.Object(v, fieldStats), nil
}

func (s *reportService) Update(ctx context.Context, id string, fields map[string]any) (models.Entity, error) {
	v, err := s.client.UpdateReport(ctx, id, fields)
	if err != nil {
		return models.Entity{}, fmt.Errorf("update report %s: %w", id, err)
	}
	return entity(ctx, s.log, "update report", v, fieldReport, id), nil
}

func (s *reportService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteReport(ctx, id); err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	return nil
}
