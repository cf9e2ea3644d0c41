// @title StudyBuddy API
// @version 1.0
// @description Quiz generation and study progress API.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "studybuddy/cmd/api/docs"
	"studybuddy/internal/adapter"
	"studybuddy/internal/adapter/llm"
	"studybuddy/internal/cache"
	"studybuddy/internal/config"
	"studybuddy/internal/database"
	"studybuddy/internal/handler"
	"studybuddy/internal/logger"
	"studybuddy/internal/middleware"
	"studybuddy/internal/pipeline"
	"studybuddy/internal/repository"
	"studybuddy/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(ctx, db.DB, cfg.DB.Driver, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	appLogger.Info("Database ready", zap.String("driver", cfg.DB.Driver))

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))

	generationClient, err := llm.NewClient(cfg.Generation, logger.Named("generation"))
	if err != nil {
		appLogger.Fatal("Failed to create generation client", zap.Error(err))
	}

	progressRepository := repository.NewSQLXProgressRepository(db)
	streakRepository := repository.NewCacheStreakRepository(cacheAdapter)
	progressService := service.NewProgressService(progressRepository, streakRepository, cacheAdapter, cfg.Quiz, logger.Named("progress"))

	quizGenerator := service.NewQuizGenerator(generationClient, pipeline.New(logger.Named("pipeline")), cfg.Quiz, logger.Named("generator"))
	orchestrator := service.NewOrchestrator(quizGenerator, progressService, cfg.Quiz, logger.Named("orchestrator"))
	sessions := service.NewSessionRegistry(orchestrator, cfg.Quiz.SessionTTL, logger.Named("sessions"))
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go sessions.RunSweeper(sweepCtx, cfg.Quiz.SessionSweepInterval)

	app := fiber.New(fiber.Config{
		AppName:      "studybuddy",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger.Named("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app,
		handler.NewSessionHandler(sessions),
		handler.NewProgressHandler(progressService),
		handler.NewHealthHandler(db, cacheAdapter))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	stopSweeper()

	appLogger.Info("Abandoned live sessions", zap.Int("count", sessions.AbandonAll()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
