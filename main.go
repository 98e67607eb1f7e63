package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stationery/internal/handlers"
	"stationery/internal/models"
	"stationery/internal/repositories"
	"stationery/internal/services"
	"stationery/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "stationery.db")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "stationery")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables messaging
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dbDriver := viper.GetString("DB_DRIVER")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Persistence ---
	productRepo, orderRepo, txManager, cleanup, err := setupStore(dbDriver)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", dbDriver, err)
	}
	defer cleanup()

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, txManager, mqClient)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  dbDriver,
		})
	})

	// --- Start RabbitMQ Consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for order events...")
		err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
			log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		})
		if err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// setupStore builds the repositories for the configured driver. The
// returned cleanup closes the underlying connection.
func setupStore(driver string) (repositories.ProductRepository, repositories.OrderRepository, repositories.TxManager, func(), error) {
	switch driver {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(viper.GetString("MONGO_URI")))
		if err != nil {
			return nil, nil, nil, nil, err
		}
		db := client.Database(viper.GetString("MONGO_DB"))
		cleanup := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("Error disconnecting mongo client: %v", err)
			}
		}
		return repositories.NewMongoProductRepository(db),
			repositories.NewMongoOrderRepository(db),
			repositories.NewMongoTxManager(client),
			cleanup, nil

	case "postgres":
		db, err := gorm.Open(postgres.Open(viper.GetString("DB_DSN")), &gorm.Config{})
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return setupGormStore(db)

	default:
		db, err := gorm.Open(sqlite.Open(viper.GetString("DB_DSN")), &gorm.Config{})
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return setupGormStore(db)
	}
}

func setupGormStore(db *gorm.DB) (repositories.ProductRepository, repositories.OrderRepository, repositories.TxManager, func(), error) {
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}); err != nil {
		return nil, nil, nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return repositories.NewGORMProductRepository(db),
		repositories.NewGORMOrderRepository(db),
		repositories.NewGormTxManager(db),
		cleanup, nil
}
