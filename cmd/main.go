package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gallery-service/internal/config"
	"gallery-service/internal/database/minio"
	"gallery-service/internal/database/mongo"
	"gallery-service/internal/database/redis"
	"gallery-service/internal/event"
	"gallery-service/internal/handlers"
	"gallery-service/internal/middleware"
	"gallery-service/internal/repository"
	"gallery-service/internal/service"
	"gallery-service/pkg/discovery"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/gallery", "log", "gallery_service")
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.Load()

	if err := mongo.InitMongoDB(&cfg.MongoDB); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}

	if err := minio.InitMinioClient(&cfg.MinIO); err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	if err := redis.InitRedisClient(&cfg.Redis); err != nil {
		log.Printf("Warning: Failed to initialize Redis: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"*"},
	}))

	app.Use("/protected", middleware.RequireSession(cfg.JWT.Secret))

	app.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Gallery Service is healthy")
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	imageRepo := repository.NewImageRepository()
	commentRepo := repository.NewCommentRepository()
	followRepo := repository.NewFollowRepository()
	likeRepo := repository.NewLikeRepository()
	redisRepo := repository.NewRedisRepo()

	// Create database indexes
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	for _, indexed := range []interface {
		CreateIndexes(ctx context.Context) error
	}{userRepo, imageRepo, commentRepo, followRepo, likeRepo} {
		if err := indexed.CreateIndexes(ctx); err != nil {
			log.Printf("Warning: Failed to create database indexes: %v", err)
		}
	}
	cancel()

	imageBucket := minio.NewBucket(cfg.MinIO.ImageBucket, cfg.MinIO.PublicEndpoint)
	profilePicBucket := minio.NewBucket(cfg.MinIO.ProfilePicBucket, cfg.MinIO.PublicEndpoint)

	eventPublisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI)
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher: %v", err)
		eventPublisher, _ = event.NewEventPublisher("")
	}

	// Initialize services
	defaultPicURL := cfg.DefaultProfilePicURL()
	accountService := service.NewAccountService(userRepo, imageRepo, commentRepo, followRepo, likeRepo, imageBucket, profilePicBucket, redisRepo, eventPublisher, defaultPicURL)
	uploadService := service.NewUploadService(userRepo, imageRepo, imageBucket, profilePicBucket, redisRepo, eventPublisher, defaultPicURL)
	imageService := service.NewImageService(userRepo, imageRepo, commentRepo, likeRepo, imageBucket, eventPublisher)
	followService := service.NewFollowService(userRepo, followRepo)
	likeService := service.NewLikeService(imageRepo, likeRepo)
	commentService := service.NewCommentService(userRepo, imageRepo, commentRepo)

	// Initialize and register handlers
	handlers.NewUserHandler(accountService, uploadService).RegisterRoutes(app)
	handlers.NewImageHandler(imageService, uploadService).RegisterRoutes(app)
	handlers.NewFollowHandler(followService).RegisterRoutes(app)
	handlers.NewLikeHandler(likeService).RegisterRoutes(app)
	handlers.NewCommentHandler(commentService).RegisterRoutes(app)

	serviceRegistry, err := discovery.NewServiceRegistry(cfg)
	if err != nil {
		log.Printf("Warning: Failed to create service registry: %v", err)
	} else if err := serviceRegistry.Register(); err != nil {
		log.Printf("Warning: Failed to register with Consul: %v", err)
	}

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := app.Listen(fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if eventPublisher != nil {
		if err := eventPublisher.Close(); err != nil {
			log.Printf("Error closing event publisher: %v", err)
		}
	}

	redis.CloseRedis()
	mongo.CloseDB()

	if serviceRegistry != nil {
		if err := serviceRegistry.Deregister(); err != nil {
			log.Printf("Error deregistering from service discovery: %v", err)
		}
	}

	<-doneChan
	log.Println("Server shutdown complete")
}
