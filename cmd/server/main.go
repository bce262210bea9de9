package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	domainRepo "findmymechanic-service/internal/domain/repository"
	"findmymechanic-service/internal/infrastructure/config"
	"findmymechanic-service/internal/infrastructure/identity"
	"findmymechanic-service/internal/infrastructure/persistence"
	"findmymechanic-service/internal/interface/httpapi"
	mongoRepo "findmymechanic-service/internal/interface/repository"
	"findmymechanic-service/internal/usecase"
	"findmymechanic-service/pkg/logger"
	"findmymechanic-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting FindMyMechanic Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up document repositories
	profileRepo := mongoRepo.NewMongoProfileRepository(db)
	bookingRepo := mongoRepo.NewMongoBookingRepository(db)
	notificationRepo := mongoRepo.NewMongoNotificationRepository(db)

	// Service catalog lives in the relational reference database; skipped
	// when no DSN is configured.
	var catalogRepo domainRepo.ServiceCatalogRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		catalogRepo = mongoRepo.NewGormServiceCatalogRepository(gormDB)
	}

	// Roster cache, optional as well
	var rosterCache domainRepo.RosterCache
	if cfg.RedisURL != "" {
		rosterCache, err = mongoRepo.NewRedisRosterCache(cfg.RedisURL, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
	}

	// Identity collaborator
	var verifier identity.Verifier
	switch cfg.IdentityMode {
	case "google":
		verifier = identity.NewGoogleVerifier(cfg.GoogleAudience, log)
	default:
		if cfg.JWTSecret == "" {
			log.Fatal("JWT_SECRET is required in jwt identity mode")
		}
		verifier = identity.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)
	}

	// Set up metrics and usecases
	m := metrics.NewMetrics("findmymechanic")
	profileDirectory := usecase.NewProfileDirectory(profileRepo, rosterCache, log)
	matchingEngine := usecase.NewMatchingEngine(profileRepo, rosterCache, catalogRepo, m, log, cfg.MatchFallbackAll, cfg.RosterCacheTTL)
	bookingLifecycle := usecase.NewBookingLifecycle(bookingRepo, notificationRepo, profileRepo, m, log)

	// Set up HTTP server
	handler := httpapi.NewHandler(profileDirectory, matchingEngine, bookingLifecycle, catalogRepo, verifier, log)

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("FindMyMechanic Service stopped")
}
