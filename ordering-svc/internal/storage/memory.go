package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"restaurant-ordering/ordering-svc/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps the three collections in process memory. It enforces the same unique
// keys as the Mongo indexes and hands out ObjectID-shaped internal ids.
type MemoryStore struct {
	mu          sync.RWMutex
	restaurants []domain.Restaurant
	menuItems   []domain.MenuItem
	orders      []domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) InsertRestaurants(ctx context.Context, restaurants []domain.Restaurant) ([]domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.restaurants)+len(restaurants))
	for _, rest := range s.restaurants {
		seen[rest.ID] = true
	}
	for _, rest := range restaurants {
		if seen[rest.ID] {
			return nil, fmt.Errorf("%w: restaurant id %q already exists", domain.ErrDuplicateKey, rest.ID)
		}
		seen[rest.ID] = true
	}

	inserted := make([]domain.Restaurant, 0, len(restaurants))
	for _, rest := range restaurants {
		rest.InternalID = primitive.NewObjectID().Hex()
		inserted = append(inserted, rest)
	}
	s.restaurants = append(s.restaurants, inserted...)
	return inserted, nil
}

func (s *MemoryStore) FindRestaurants(ctx context.Context, id string) ([]domain.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]domain.Restaurant, 0)
	for _, rest := range s.restaurants {
		if rest.ID == id {
			found = append(found, rest)
		}
	}
	return found, nil
}

func (s *MemoryStore) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]domain.Restaurant, 0, len(s.restaurants)), s.restaurants...), nil
}

func (s *MemoryStore) InsertMenuItems(ctx context.Context, items []domain.MenuItem) ([]domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		item.InternalID = primitive.NewObjectID().Hex()
		inserted = append(inserted, item)
	}
	s.menuItems = append(s.menuItems, inserted...)
	return inserted, nil
}

func (s *MemoryStore) FindMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]domain.MenuItem, 0)
	for _, item := range s.menuItems {
		if item.RestaurantID != filter.RestaurantID {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		found = append(found, item)
	}
	return found, nil
}

func (s *MemoryStore) DistinctCategories(ctx context.Context, restaurantID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	categories := make([]string, 0)
	for _, item := range s.menuItems {
		if item.RestaurantID != restaurantID || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *MemoryStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orders {
		if existing.OrderNumber == order.OrderNumber {
			return fmt.Errorf("%w: orderNumber %q already exists", domain.ErrDuplicateKey, order.OrderNumber)
		}
	}

	order.InternalID = primitive.NewObjectID().Hex()
	s.orders = append(s.orders, cloneOrder(*order))
	return nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, invalidOrderID(id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.InternalID == id {
			found := cloneOrder(order)
			return &found, nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

func (s *MemoryStore) ListPendingOrders(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]domain.Order, 0)
	for _, order := range s.orders {
		if order.RestaurantID == restaurantID && !order.IsCompleted() {
			pending = append(pending, cloneOrder(order))
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id, status string, updatedAt time.Time) (*domain.Order, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, invalidOrderID(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].InternalID != id {
			continue
		}
		s.orders[i].OrderStatus = status
		s.orders[i].UpdatedAt = updatedAt
		updated := cloneOrder(s.orders[i])
		return &updated, nil
	}
	return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

func cloneOrder(order domain.Order) domain.Order {
	order.Items = append([]domain.OrderItem(nil), order.Items...)
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}
	return order
}

func invalidOrderID(id string) error {
	return fmt.Errorf("%w: invalid order id %q", domain.ErrValidation, id)
}
