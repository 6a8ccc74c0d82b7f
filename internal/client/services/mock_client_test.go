package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/client"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
)

var _ client.Client = (*mockClient)(nil)

type mockClient struct {
	mock.Mock
}

func value(args mock.Arguments) (*structpb.Value, error) {
	var v *structpb.Value
	switch x := args.Get(0).(type) {
	case string:
		v = normalize.MustDecode(x)
	case *structpb.Value:
		v = x
	}
	return v, args.Error(1)
}

func (m *mockClient) Close() error { return m.Called().Error(0) }

func (m *mockClient) Login(ctx context.Context, email, password string) (*structpb.Value, error) {
	return value(m.Called(ctx, email, password))
}

func (m *mockClient) CurrentUser(ctx context.Context) (*structpb.Value, error) {
	return value(m.Called(ctx))
}

func (m *mockClient) Logout(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *mockClient) ActiveResources(ctx context.Context) (*structpb.Value, error) {
	return value(m.Called(ctx))
}

func (m *mockClient) PrivateResources(ctx context.Context) (*structpb.Value, error) {
	return value(m.Called(ctx))
}

func (m *mockClient) Resource(ctx context.Context, id string) (*structpb.Value, error) {
	return value(m.Called(ctx, id))
}

func (m *mockClient) PrivateResource(ctx context.Context, id string) (*structpb.Value, error) {
	return value(m.Called(ctx, id))
}

func (m *mockClient) Participants(ctx context.Context, id string) (*structpb.Value, error) {
	return value(m.Called(ctx, id))
}

func (m *mockClient) ResourceStats(ctx context.Context) (*structpb.Value, error) {
	return value(m.Called(ctx))
}

func (m *mockClient) Users(ctx context.Context, page, limit int, search string) (*structpb.Value, error) {
	return value(m.Called(ctx, page, limit, search))
}

func (m *mockClient) User(ctx context.Context, id string) (*structpb.Value, error) {
	return value(m.Called(ctx, id))
}

func (m *mockClient) UpdateUser(ctx context.Context, id string, fields map[string]any) (*structpb.Value, error) {
	return value(m.Called(ctx, id, fields))
}

func (m *mockClient) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockClient) UserStats(ctx context.Context) (*structpb.Value, error) {
	return value(m.Called(ctx))
}

func (m *mockClient) DailyActiveUsers(ctx context.Context, days int) (*structpb.Value, error) {
	return value(m.Called(ctx, days))
}

func (m *mockClient) UserGrowth(ctx context.Context, days int) (*structpb.Value, error) {
	return value(m.Called(ctx, days))
}

func (m *mockClient) Reports(ctx context.Context, filters map[string]string) (*structpb.Value, error) {
	return value(m.Called(ctx, filters))
}

func (m *mockClient) ReportStats(ctx context.Context) (*structpb.Value, error) {
	return value(m.Called(ctx))
}

func (m *mockClient) UpdateReport(ctx context.Context, id string, fields map[string]any) (*structpb.Value, error) {
	return value(m.Called(ctx, id, fields))
}

func (m *mockClient) DeleteReport(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
