package client

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"
)

// Client is the upstream API surface used by the services.
type Client interface {
	Close() error

	Login(ctx context.Context, email, password string) (*structpb.Value, error)
	CurrentUser(ctx context.Context) (*structpb.Value, error)
	Logout(ctx context.Context) error

	ActiveResources(ctx context.Context) (*structpb.Value, error)
	PrivateResources(ctx context.Context) (*structpb.Value, error)
	Resource(ctx context.Context, id string) (*structpb.Value, error)
	PrivateResource(ctx context.Context, id string) (*structpb.Value, error)
	Participants(ctx context.Context, id string) (*structpb.Value, error)
	ResourceStats(ctx context.Context) (*structpb.Value, error)

	Users(ctx context.Context, page, limit int, search string) (*structpb.Value, error)
	User(ctx context.Context, id string) (*structpb.Value, error)
	UpdateUser(ctx context.Context, id string, fields map[string]any) (*structpb.Value, error)
	DeleteUser(ctx context.Context, id string) error
	UserStats(ctx context.Context) (*structpb.Value, error)
	DailyActiveUsers(ctx context.Context, days int) (*structpb.Value, error)
	UserGrowth(ctx context.Context, days int) (*structpb.Value, error)

	Reports(ctx context.Context, filters map[string]string) (*structpb.Value, error)
	ReportStats(ctx context.Context) (*structpb.Value, error)
	UpdateReport(ctx context.Context, id string, fields map[string]any) (*structpb.Value, error)
	DeleteReport(ctx context.Context, id string) error
}
