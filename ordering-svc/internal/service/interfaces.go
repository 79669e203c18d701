package service

import (
	"context"
	"time"

	"restaurant-ordering/ordering-svc/internal/domain"
	"restaurant-ordering/ordering-svc/internal/storage"
)

type RestaurantRepository interface {
	InsertRestaurants(ctx context.Context, restaurants []domain.Restaurant) ([]domain.Restaurant, error)
	FindRestaurants(ctx context.Context, id string) ([]domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
}

type MenuRepository interface {
	InsertMenuItems(ctx context.Context, items []domain.MenuItem) ([]domain.MenuItem, error)
	FindMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error)
	DistinctCategories(ctx context.Context, restaurantID string) ([]string, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListPendingOrders(ctx context.Context, restaurantID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string, updatedAt time.Time) (*domain.Order, error)
}

// Store is implemented by every storage backend.
type Store interface {
	RestaurantRepository
	MenuRepository
	OrderRepository
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type RestaurantServiceInterface interface {
	Find(ctx context.Context, id string) ([]domain.Restaurant, error)
	SeedSamples(ctx context.Context) ([]domain.Restaurant, error)
	TableQRCode(ctx context.Context, restaurantID string, tableNumber int) ([]byte, error)
}

type MenuServiceInterface interface {
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)
	ListByCategory(ctx context.Context, restaurantID, category string) ([]domain.MenuItem, error)
	Categories(ctx context.Context, restaurantID string) ([]string, error)
	SeedSamples(ctx context.Context) ([]domain.MenuItem, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListPending(ctx context.Context, restaurantID string) ([]domain.Order, error)
	Complete(ctx context.Context, id string) (*domain.Order, error)
}

var (
	_ Store = (*storage.MongoStore)(nil)
	_ Store = (*storage.PostgresRepository)(nil)
	_ Store = (*storage.MemoryStore)(nil)

	_ OrderPublisher = (*storage.KafkaPublisher)(nil)
)
