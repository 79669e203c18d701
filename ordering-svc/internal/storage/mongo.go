package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-ordering/ordering-svc/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	restaurantCollection = "restaurants"
	menuItemCollection   = "menuitems"
	orderCollection      = "orders"
)

type restaurantDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Key         string             `bson:"id"`
	Name        string             `bson:"name"`
	BannerImage string             `bson:"bannerImage,omitempty"`
}

type menuItemDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Restaurant  string             `bson:"id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Image       string             `bson:"image,omitempty"`
}

type orderItemDocument struct {
	ID          string  `bson:"_id"`
	ItemID      string  `bson:"id"`
	Name        string  `bson:"name"`
	Price       float64 `bson:"price"`
	Quantity    int     `bson:"quantity"`
	Image       string  `bson:"image"`
	Description string  `bson:"description"`
}

type orderDocument struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	OrderNumber   string              `bson:"orderNumber"`
	Items         []orderItemDocument `bson:"items"`
	Subtotal      *float64            `bson:"subtotal"`
	Tax           *float64            `bson:"tax"`
	Total         *float64            `bson:"total"`
	TableNumber   *int                `bson:"tableNumber"`
	PaymentMethod string              `bson:"paymentMethod"`
	Paid          *bool               `bson:"paid"`
	UserID        string              `bson:"userId"`
	RestaurantID  string              `bson:"restaurantId"`
	PhoneNumber   string              `bson:"phonenumber"`
	OrderStatus   string              `bson:"orderStatus"`
	CreatedAt     time.Time           `bson:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt"`
}

type MongoStore struct {
	restaurants *mongo.Collection
	menuItems   *mongo.Collection
	orders      *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		restaurants: db.Collection(restaurantCollection),
		menuItems:   db.Collection(menuItemCollection),
		orders:      db.Collection(orderCollection),
	}
}

// EnsureIndexes creates the unique indexes on restaurants.id and orders.orderNumber.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if _, err := s.restaurants.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("restaurants index: %w", err)
	}
	if _, err := s.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("orders index: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertRestaurants(ctx context.Context, restaurants []domain.Restaurant) ([]domain.Restaurant, error) {
	docs := make([]interface{}, 0, len(restaurants))
	inserted := make([]domain.Restaurant, 0, len(restaurants))
	for _, rest := range restaurants {
		doc := restaurantDocument{
			ID:          primitive.NewObjectID(),
			Key:         rest.ID,
			Name:        rest.Name,
			BannerImage: rest.BannerImage,
		}
		docs = append(docs, doc)
		inserted = append(inserted, doc.toDomain())
	}

	if len(docs) == 0 {
		return inserted, nil
	}
	if _, err := s.restaurants.InsertMany(ctx, docs); err != nil {
		return nil, translateWriteError(err)
	}
	return inserted, nil
}

func (s *MongoStore) FindRestaurants(ctx context.Context, id string) ([]domain.Restaurant, error) {
	return s.findRestaurants(ctx, bson.M{"id": id})
}

func (s *MongoStore) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.findRestaurants(ctx, bson.M{})
}

func (s *MongoStore) findRestaurants(ctx context.Context, filter bson.M) ([]domain.Restaurant, error) {
	cursor, err := s.restaurants.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var docs []restaurantDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	restaurants := make([]domain.Restaurant, 0, len(docs))
	for _, doc := range docs {
		restaurants = append(restaurants, doc.toDomain())
	}
	return restaurants, nil
}

func (s *MongoStore) InsertMenuItems(ctx context.Context, items []domain.MenuItem) ([]domain.MenuItem, error) {
	docs := make([]interface{}, 0, len(items))
	inserted := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		doc := menuItemDocument{
			ID:          primitive.NewObjectID(),
			Restaurant:  item.RestaurantID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Category:    item.Category,
			Image:       item.Image,
		}
		docs = append(docs, doc)
		inserted = append(inserted, doc.toDomain())
	}

	if len(docs) == 0 {
		return inserted, nil
	}
	if _, err := s.menuItems.InsertMany(ctx, docs); err != nil {
		return nil, translateWriteError(err)
	}
	return inserted, nil
}

func (s *MongoStore) FindMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	query := bson.M{"id": filter.RestaurantID}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	cursor, err := s.menuItems.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	var docs []menuItemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]domain.MenuItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toDomain())
	}
	return items, nil
}

func (s *MongoStore) DistinctCategories(ctx context.Context, restaurantID string) ([]string, error) {
	values, err := s.menuItems.Distinct(ctx, "category", bson.M{"id": restaurantID})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if category, ok := v.(string); ok {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (s *MongoStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	doc := newOrderDocument(order)
	doc.ID = primitive.NewObjectID()

	if _, err := s.orders.InsertOne(ctx, doc); err != nil {
		return translateWriteError(err)
	}
	order.InternalID = doc.ID.Hex()
	return nil
}

func (s *MongoStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, invalidOrderID(id)
	}

	var doc orderDocument
	if err := s.orders.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	order := doc.toDomain()
	return &order, nil
}

func (s *MongoStore) ListPendingOrders(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	filter := bson.M{
		"restaurantId": restaurantID,
		"orderStatus":  bson.M{"$ne": domain.OrderStatusCompleted},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, doc.toDomain())
	}
	return orders, nil
}

func (s *MongoStore) UpdateOrderStatus(ctx context.Context, id, status string, updatedAt time.Time) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, invalidOrderID(id)
	}

	update := bson.M{"$set": bson.M{"orderStatus": status, "updatedAt": updatedAt}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDocument
	if err := s.orders.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	order := doc.toDomain()
	return &order, nil
}

func translateWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicateKey, err)
	}
	return err
}

func (d restaurantDocument) toDomain() domain.Restaurant {
	return domain.Restaurant{
		InternalID:  d.ID.Hex(),
		ID:          d.Key,
		Name:        d.Name,
		BannerImage: d.BannerImage,
	}
}

func (d menuItemDocument) toDomain() domain.MenuItem {
	return domain.MenuItem{
		InternalID:   d.ID.Hex(),
		RestaurantID: d.Restaurant,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		Category:     d.Category,
		Image:        d.Image,
	}
}

func newOrderDocument(order *domain.Order) orderDocument {
	items := make([]orderItemDocument, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemDocument(item))
	}
	return orderDocument{
		OrderNumber:   order.OrderNumber,
		Items:         items,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Total:         order.Total,
		TableNumber:   order.TableNumber,
		PaymentMethod: order.PaymentMethod,
		Paid:          order.Paid,
		UserID:        order.UserID,
		RestaurantID:  order.RestaurantID,
		PhoneNumber:   order.PhoneNumber,
		OrderStatus:   order.OrderStatus,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func (d orderDocument) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, domain.OrderItem(item))
	}
	return domain.Order{
		InternalID:    d.ID.Hex(),
		OrderNumber:   d.OrderNumber,
		Items:         items,
		Subtotal:      d.Subtotal,
		Tax:           d.Tax,
		Total:         d.Total,
		TableNumber:   d.TableNumber,
		PaymentMethod: d.PaymentMethod,
		Paid:          d.Paid,
		UserID:        d.UserID,
		RestaurantID:  d.RestaurantID,
		PhoneNumber:   d.PhoneNumber,
		OrderStatus:   d.OrderStatus,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
