package service

import (
	"context"
	"log"
	"sync"
	"time"

	"restaurant-ordering/ordering-svc/internal/domain"
)

// PublishTimeout bounds a single order event write.
const PublishTimeout = 5 * time.Second

type OrderService struct {
	repo      OrderRepository
	publisher OrderPublisher
	now       func() time.Time
	inflight  sync.WaitGroup
}

// NewOrderService accepts a nil publisher, in which case no events are emitted.
// Events are published in the background; call Wait before closing the publisher.
func NewOrderService(repo OrderRepository, publisher OrderPublisher) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, now: time.Now}
}

// WithClock replaces the timestamp source.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

func (s *OrderService) Create(ctx context.Context, order *domain.Order) error {
	if err := domain.Validate(order); err != nil {
		return err
	}
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}

	now := s.now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return err
	}

	s.publish(ctx, domain.NewOrderEvent(domain.EventOrderCreated, order, now))
	return nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// ListPending returns the restaurant's not-yet-completed orders, oldest first.
func (s *OrderService) ListPending(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	return s.repo.ListPendingOrders(ctx, restaurantID)
}

func (s *OrderService) Complete(ctx context.Context, id string) (*domain.Order, error) {
	now := s.now().UTC()
	order, err := s.repo.UpdateOrderStatus(ctx, id, domain.OrderStatusCompleted, now)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.NewOrderEvent(domain.EventOrderCompleted, order, now))
	return order, nil
}

// Wait blocks until every event handed to the publisher has been written or has failed.
func (s *OrderService) Wait() {
	s.inflight.Wait()
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PublishTimeout)
		defer cancel()
		if err := s.publisher.PublishOrderEvent(pubCtx, event); err != nil {
			log.Printf("Failed to publish %s for order %s: %v", event.Type, event.OrderNumber, err)
		}
	}()
}

var _ OrderServiceInterface = (*OrderService)(nil)
