package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/piyukr2/Bed-Manager/internal/api"
	"github.com/piyukr2/Bed-Manager/internal/api/middleware"
	"github.com/piyukr2/Bed-Manager/internal/config"
	"github.com/piyukr2/Bed-Manager/internal/logger"
	"github.com/piyukr2/Bed-Manager/internal/notify"
	"github.com/piyukr2/Bed-Manager/internal/queue"
	"github.com/piyukr2/Bed-Manager/internal/repository/postgresql"
	"github.com/piyukr2/Bed-Manager/internal/service"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Logger
	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "bed-manager")
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer zlog.Sync()

	// 3. Database
	db, err := postgresql.NewDB(cfg)
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	zlog.Info("database connection established")

	// 4. Repositories
	userRepo := postgresql.NewPgUserRepository(db)
	bedRepo := postgresql.NewPgBedRepository(db)
	historyRepo := postgresql.NewPgOccupancyHistoryRepository(db)
	alertRepo := postgresql.NewPgAlertRepository(db)
	cleaningRepo := postgresql.NewPgCleaningJobRepository(db)

	// 5. Notification hub
	hub := notify.NewHub(zlog)
	go hub.Run()
	defer hub.Stop()
	zlog.Info("notification hub started")

	// 6. Optional housekeeping queue
	var jobQueue queue.JobPublisher
	if cfg.CleaningQueueURL == "" {
		zlog.Warn("CLEANING_SQS_QUEUE_URL not configured, cleaning jobs will not be queued externally")
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			zlog.Fatal("could not load AWS config", zap.Error(err))
		}
		jobQueue = queue.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.CleaningQueueURL, zlog)
		zlog.Info("cleaning job queue enabled", zap.String("queue_url", cfg.CleaningQueueURL))
	}

	// 7. Services
	policy := service.NewTransitionPolicy(cfg.TransitionPolicy)
	zlog.Info("bed transition policy", zap.String("policy", policy.Name()))

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration)
	bedService := service.NewBedService(bedRepo, cleaningRepo, alertRepo, hub, jobQueue, policy, cfg.WriteTimeout, zlog)
	occupancyService := service.NewOccupancyService(bedRepo, historyRepo, alertRepo, zlog)
	recommendService := service.NewRecommendService(bedRepo, zlog)

	// 8. HTTP router
	authMiddleware := middleware.NewAuthMiddleware(authService)
	router := api.SetupRouter(authService, bedService, occupancyService, recommendService, authMiddleware, hub, zlog)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shut down", zap.Error(err))
	}
	zlog.Info("server stopped")
}
