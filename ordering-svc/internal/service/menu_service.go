package service

import (
	"context"
	"errors"

	"restaurant-ordering/ordering-svc/internal/domain"
)

var ErrNoRestaurants = errors.New("No restaurants found. Please add sample restaurants first.")

type MenuService struct {
	restaurants RestaurantRepository
	menu        MenuRepository
}

func NewMenuService(restaurants RestaurantRepository, menu MenuRepository) *MenuService {
	return &MenuService{restaurants: restaurants, menu: menu}
}

func (s *MenuService) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	return s.menu.FindMenuItems(ctx, domain.MenuFilter{RestaurantID: restaurantID})
}

func (s *MenuService) ListByCategory(ctx context.Context, restaurantID, category string) ([]domain.MenuItem, error) {
	return s.menu.FindMenuItems(ctx, domain.MenuFilter{RestaurantID: restaurantID, Category: category})
}

func (s *MenuService) Categories(ctx context.Context, restaurantID string) ([]string, error) {
	return s.menu.DistinctCategories(ctx, restaurantID)
}

// SeedSamples inserts the sample menu for every stored restaurant.
func (s *MenuService) SeedSamples(ctx context.Context) ([]domain.MenuItem, error) {
	restaurants, err := s.restaurants.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return nil, ErrNoRestaurants
	}
	return s.menu.InsertMenuItems(ctx, domain.SampleMenu(restaurants))
}

var _ MenuServiceInterface = (*MenuService)(nil)
