package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/client"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
)

func TestResourceService_ActiveAndPrivate(t *testing.T) {
	ctx := context.Background()
	m := &mockClient{}
	m.On("ActiveResources", ctx).Return(`{"success":true,"data":[{"_id":"f1","name":"99.1"},{"_id":"f2"}]}`, nil)
	m.On("PrivateResources", ctx).Return(`[{"_id":"p1","expiresAt":"2025-03-01T12:01:05Z"}]`, nil)

	svc := NewResourceService(m, nil)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f2"}, models.IDs(active.Items))

	private, err := svc.Private(ctx)
	require.NoError(t, err)
	require.Len(t, private.Items, 1)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 1, 5, 0, time.UTC), private.Items[0].ExpiresAt.UTC())
}

func TestResourceService_Participants(t *testing.T) {
	ctx := context.Background()
	m := &mockClient{}
	m.On("Participants", ctx, "f1").Return(`{"success":true,"data":{"participants":[{"_id":"u1"},{"_id":"u2"}]}}`, nil)
	m.On("Participants", ctx, "f2").Return(nil, &client.StatusError{Code: 404})

	svc := NewResourceService(m, nil)
	p, err := svc.Participants(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, p.Items, 2)

	_, err = svc.Participants(ctx, "f2")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestResourceService_SingleAndStats(t *testing.T) {
	ctx := context.Background()
	m := &mockClient{}
	m.On("Resource", ctx, "f1").Return(`{"data":{"_id":"f1","name":"99.1"}}`, nil)
	m.On("PrivateResource", ctx, "p1").Return(`{"data":{"resource":{"_id":"p1"}}}`, nil)
	m.On("ResourceStats", ctx).Return(`{"success":true,"data":{"stats":{"active":4}}}`, nil)

	svc := NewResourceService(m, nil)

	f, err := svc.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "99.1", f.String("name"))

	p, err := svc.GetPrivate(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(4), stats["active"])
}
