package services

import (
	"context"
	"fmt"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/client"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

type UserService interface {
	List(ctx context.Context, page, limit int, search string) (normalize.Page, error)
	Get(ctx context.Context, id string) (models.Entity, error)
	Update(ctx context.Context, id string, fields map[string]any) (models.Entity, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (map[string]any, error)
	DailyActive(ctx context.Context, days int) (normalize.Page, error)
	Growth(ctx context.Context, days int) (normalize.Page, error)
}

type userService struct {
	client client.Client
	log    logging.Logger
}

func NewUserService(c client.Client, log logging.Logger) UserService {
	return &userService{client: c, log: logging.OrNop(log)}
}

func (s *userService) List(ctx context.Context, pageNum, limit int, search string) (normalize.Page, error) {
	v, err := s.client.Users(ctx, pageNum, limit, search)
	if err != nil {
		return normalize.Empty(), fmt.Errorf("list users: %w", err)
	}
	return page(ctx, s.log, "users", v, fieldUsers), nil
}

func (s *userService) Get(ctx context.Context, id string) (models.Entity, error) {
	v, err := s.client.User(ctx, id)
	if err != nil {
		return models.Entity{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return entity(ctx, s.log, "user", v, fieldUser, id), nil
}

func (s *userService) Update(ctx context.Context, id string, fields map[string]any) (models.Entity, error) {
	v, err := s.client.UpdateUser(ctx, id, fields)
	if err != nil {
		return models.Entity{}, fmt.Errorf("update user %s: %w", id, err)
	}
	return entity(ctx, s.log, "update user", v, fieldUser, id), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

func (s *userService) Stats(ctx context.Context) (map[string]any, error) {
	v, err := s.client.UserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return normalize.Object(v, fieldStats), nil
}

func (s *userService) DailyActive(ctx context.Context, days int) (normalize.Page, error) {
	v, err := s.client.DailyActiveUsers(ctx, analyticsDays(days))
	if err != nil {
		return normalize.Empty(), fmt.Errorf("daily active users: %w", err)
	}
	return page(ctx, s.log, "daily active", v, ""), nil
}

func (s *userService) Growth(ctx context.Context, days int) (normalize.Page, error) {
	v, err := s.client.UserGrowth(ctx, analyticsDays(days))
	if err != nil {
		return normalize.Empty(), fmt.Errorf("user growth: %w", err)
	}
	return page(ctx, s.log, "growth", v, ""), nil
}
