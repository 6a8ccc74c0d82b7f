package services

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

// DefaultAnalyticsDays is the window used when a caller passes days <= 0.
const DefaultAnalyticsDays = 30

// Collection fields used by the upstream list endpoints.
const (
	fieldUsers        = "users"
	fieldUser         = "user"
	fieldResources    = "resources"
	fieldResource     = "resource"
	fieldParticipants = "participants"
	fieldReports      = "reports"
	fieldReport       = "report"
	fieldStats        = "stats"
)

func page(ctx context.Context, log logging.Logger, op string, v *structpb.Value, field string) normalize.Page {
	p := normalize.List(v, field)
	if !p.Matched() {
		log.Warn(ctx, "unrecognized list envelope", "op", op)
	}
	return p
}

// entity normalizes a single-resource response. When the envelope is not
// recognized the result carries only fallbackID.
func entity(ctx context.Context, log logging.Logger, op string, v *structpb.Value, field, fallbackID string) models.Entity {
	e, ok := normalize.Entity(v, field)
	if !ok {
		log.Warn(ctx, "unrecognized entity envelope", "op", op, "id", fallbackID)
		return models.Entity{ID: fallbackID, Attrs: map[string]any{}}
	}
	return e
}

func analyticsDays(days int) int {
	if days <= 0 {
		return DefaultAnalyticsDays
	}
	return days
}
