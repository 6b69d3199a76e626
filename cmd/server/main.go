package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/training-planner/internal/api"
	"alcyxob/training-planner/internal/config"
	"alcyxob/training-planner/internal/llm"
	"alcyxob/training-planner/internal/logger"
	"alcyxob/training-planner/internal/plangen"
	"alcyxob/training-planner/internal/repository"
	"alcyxob/training-planner/internal/repository/memory"
	"alcyxob/training-planner/internal/repository/mongo"
	"alcyxob/training-planner/internal/service"
	"alcyxob/training-planner/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title Training Planner API
// @version 1.0
// @description Generates threshold-based running plans and applies edits and feedback to them.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Starting Training Planner server...", "mode", cfg.Server.Mode, "address", cfg.Server.Address)

	// --- Repositories ---
	var (
		plans    repository.PlanRepository
		profiles repository.ProfileRepository
	)
	if cfg.Database.URI == "" {
		log.Warn("No database URI configured; plans are kept in memory")
		store := memory.New()
		plans, profiles = store, store
	} else {
		dbClient, err := mongo.ConnectDB(context.Background(), cfg.Database)
		if err != nil {
			log.Fatal("Could not connect to MongoDB", "error", err)
		}
		defer func() {
			log.Info("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Error("Failed to disconnect MongoDB", "error", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			log.Error("Failed to ensure indexes", "error", err)
		}
		cancel()

		plans = mongo.NewMongoPlanRepository(appDB)
		profiles = mongo.NewMongoProfileRepository(appDB)
		log.Info("Database connection established.", "database", cfg.Database.Name)
	}

	// --- Snapshot storage ---
	var archive storage.SnapshotArchive
	if cfg.S3.Enabled() {
		archive, err = storage.NewS3Storage(context.Background(), cfg.S3, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", "error", err)
		}
	} else {
		log.Warn("No S3 bucket configured; snapshots are kept in memory")
		archive = storage.NewMemoryArchive()
	}

	// --- Drafting and feedback models ---
	var (
		drafter    plangen.Drafter = plangen.TemplateDrafter{}
		classifier service.Classifier
		responder  service.Responder
	)
	if cfg.LLM.APIKey != "" {
		client := llm.NewClient(cfg.LLM, nil)
		drafter, classifier, responder = client, client, client
		log.Info("LLM client configured", "model", cfg.LLM.Model)
	} else {
		log.Warn("No LLM API key configured; using template workouts and canned replies")
	}

	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unreachable; draft cache disabled", "addr", cfg.Redis.Addr, "error", err)
			_ = rdb.Close()
		} else {
			defer rdb.Close()
			drafter = llm.NewCachedDrafter(drafter, rdb, cfg.Redis.DraftTTL, log)
			log.Info("Draft cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.DraftTTL)
		}
	}

	// --- Services ---
	planService := service.NewPlanService(plans, profiles, drafter, archive, cfg.Planner.GenerationConcurrency, log)
	feedbackService := service.NewFeedbackService(planService, profiles, classifier, responder, log)

	// --- Gin Engine ---
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log))
	api.SetupRoutes(router, cfg.JWT.Secret, planService, feedbackService)

	// --- Start HTTP Server ---
	// Plan generation waits on the LLM once per week, so writes get a long timeout.
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", "error", err)
		}
	}()
	log.Info("Server started", "address", cfg.Server.Address)

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exiting.")
}
