package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"restaurant-ordering/config"
	httpapi "restaurant-ordering/ordering-svc/internal/api/http"
	"restaurant-ordering/ordering-svc/internal/service"
	"restaurant-ordering/ordering-svc/internal/storage"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	var publisher service.OrderPublisher
	if cfg.KafkaBroker != "" {
		writer := config.NewKafkaWriter(cfg.KafkaBroker, cfg.OrderEventsTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
		log.Printf("Publishing order events to %s/%s", cfg.KafkaBroker, cfg.OrderEventsTopic)
	}

	orders := service.NewOrderService(store, publisher)
	handler := httpapi.NewHandler(
		service.NewRestaurantService(store, service.DefaultQRGenerator{BaseURL: cfg.FrontendURL}),
		service.NewMenuService(store, store),
		orders,
	)

	if err := httpapi.StartServer(ctx, cfg.Addr(), httpapi.NewRouter(handler), cfg.ShutdownTimeout); err != nil {
		log.Printf("Server stopped: %v", err)
	}
	orders.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (service.Store, func()) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Println("Using in-memory store")
		return storage.NewMemoryStore(), func() {}

	case config.DriverPostgres:
		db := config.MustInitPostgres(cfg)
		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to prepare schema:", err)
		}
		log.Printf("Connected to Postgres %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
		return repo, func() { db.Close() }

	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client := config.MustInitMongo(connectCtx, cfg.MongoURI)
		store := storage.NewMongoStore(client.Database(cfg.MongoDatabase))
		if err := store.EnsureIndexes(connectCtx); err != nil {
			log.Fatal("Failed to create indexes:", err)
		}
		log.Printf("Connected to MongoDB database %s", cfg.MongoDatabase)
		return store, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Printf("Failed to disconnect from MongoDB: %v", err)
			}
		}

	default:
		log.Fatalf("Unknown DB_DRIVER %q", cfg.DBDriver)
		return nil, nil
	}
}
