package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/gorm"

	"github.com/Andrew-O39/moviweb-app/internal/config"
	"github.com/Andrew-O39/moviweb-app/internal/database"
	"github.com/Andrew-O39/moviweb-app/internal/datamanager"
	"github.com/Andrew-O39/moviweb-app/internal/handlers"
	"github.com/Andrew-O39/moviweb-app/internal/middleware"
	"github.com/Andrew-O39/moviweb-app/internal/omdb"
	"github.com/Andrew-O39/moviweb-app/internal/services"
	"github.com/Andrew-O39/moviweb-app/pkg/rabbitmq"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// The event queue is optional: the app runs fine without a broker and
	// simply skips publishing.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	lookup := omdb.NewClient(cfg.OMDBURL, cfg.OMDBAPIKey)

	app, _ := NewApp(cfg, db, mqClient, lookup)

	// Audit consumer mirroring published lifecycle events into the log.
	if mqClient != nil {
		if err := mqClient.ConsumeEvents(func(msg amqp.Delivery) error {
			log.Printf("Movie event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}); err != nil {
			log.Printf("Failed to start event consumer: %v", err)
		}
	}

	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
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

// NewApp wires the data manager, services and handlers into a Fiber app.
// mqClient may be nil (no event publishing); tests inject their own lookup.
func NewApp(cfg *config.Config, db *gorm.DB, mqClient *rabbitmq.Client, lookup omdb.MovieLookup) (*fiber.App, *services.AuthService) {
	dm := datamanager.NewGormDataManager(db)

	authService := services.NewAuthService(dm, cfg.JWTSecret)
	userService := services.NewUserService(dm, mqClient)
	movieService := services.NewMovieService(dm, lookup, mqClient)
	reviewService := services.NewReviewService(dm)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, movieService)
	movieHandler := handlers.NewMovieHandler(movieService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterRoutes(protected)
	movieHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(protected)

	return app, authService
}
