package service

import (
	"context"
	"fmt"

	"restaurant-ordering/ordering-svc/internal/domain"
)

type RestaurantService struct {
	repo RestaurantRepository
	qr   QRGenerator
}

func NewRestaurantService(repo RestaurantRepository, qr QRGenerator) *RestaurantService {
	return &RestaurantService{repo: repo, qr: qr}
}

func (s *RestaurantService) Find(ctx context.Context, id string) ([]domain.Restaurant, error) {
	return s.repo.FindRestaurants(ctx, id)
}

func (s *RestaurantService) SeedSamples(ctx context.Context) ([]domain.Restaurant, error) {
	samples := domain.SampleRestaurants()
	for _, rest := range samples {
		if err := domain.Validate(rest); err != nil {
			return nil, err
		}
	}
	return s.repo.InsertRestaurants(ctx, samples)
}

func (s *RestaurantService) TableQRCode(ctx context.Context, restaurantID string, tableNumber int) ([]byte, error) {
	if tableNumber <= 0 {
		return nil, fmt.Errorf("%w: tableNumber must be a positive integer", domain.ErrValidation)
	}
	if s.qr == nil {
		return nil, fmt.Errorf("qr generator is not configured")
	}

	restaurants, err := s.repo.FindRestaurants(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return nil, fmt.Errorf("restaurant %s: %w", restaurantID, domain.ErrNotFound)
	}
	return s.qr.Generate(restaurantID, tableNumber)
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)
