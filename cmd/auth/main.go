package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/adityarama/equipviz/internal/pkg/config"
	"github.com/adityarama/equipviz/internal/pkg/database"
	"github.com/adityarama/equipviz/internal/pkg/health"
	"github.com/adityarama/equipviz/internal/pkg/logger"
	"github.com/adityarama/equipviz/internal/pkg/middleware"
	natspkg "github.com/adityarama/equipviz/internal/pkg/nats"
	"github.com/adityarama/equipviz/internal/pkg/server"
	"github.com/adityarama/equipviz/services/auth/gateway"
	"github.com/adityarama/equipviz/services/auth/handler"
	httpHandler "github.com/adityarama/equipviz/services/auth/handler/http"
	"github.com/adityarama/equipviz/services/auth/repository"
	"github.com/adityarama/equipviz/services/auth/usecase"
)

func main() {
	appName := "auth-service"
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/auth.env"
	}
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.FromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	shutdowns := server.NewShutdownManager(zapLogger)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	shutdowns.Register(func(context.Context) error { return postgresClient.Close() })

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	shutdowns.Register(func(context.Context) error { return redisClient.Close() })

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	shutdowns.Register(func(context.Context) error {
		natsClient.Close()
		return nil
	})

	// Initialize repositories
	userRepo := repository.NewUserRepo(configs, postgresClient.GetDB())
	otpRepo := repository.NewOTPRepo(configs, redisClient)

	// Initialize Gateway
	mailerGW := gateway.NewMailerGW(natsClient)

	// Initialize UseCase
	authUC := usecase.NewAuthUC(configs, userRepo, otpRepo, mailerGW)

	// Handlers for HTTP
	authHandler := httpHandler.NewAuthHandler(authUC, configs)

	// Initialize handlers
	Handler := handler.NewHandler(authHandler, redisClient, configs)

	// Initialize Echo router
	e := echo.New()

	// Add middlewares
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.EchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName)

	// Register service routes
	Handler.RegisterRoutes(e)

	zapLogger.Info("Starting server",
		zap.String("app", appName),
		zap.Int("port", configs.Server.Port),
	)

	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port, shutdownTimeout)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server terminated",
			zap.String("app", appName),
			zap.Error(err),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = shutdowns.Shutdown(ctx)
}
