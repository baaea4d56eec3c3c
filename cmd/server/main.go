package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tagihin/backend/internal/config"
	"github.com/tagihin/backend/internal/handler"
	"github.com/tagihin/backend/internal/metrics"
	appMiddleware "github.com/tagihin/backend/internal/middleware"
	"github.com/tagihin/backend/internal/repository"
	"github.com/tagihin/backend/internal/service"
	"github.com/tagihin/backend/pkg/payment"
)

func main() {
	// Load .env file if present (for local development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	ctx := context.Background()

	// Profile store
	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Store error: %v", err)
	}
	defer cleanup()

	// Midtrans gateway
	gateway := payment.NewMidtransGateway(cfg.Midtrans.ServerKey, cfg.Midtrans.Production)
	log.Printf("✅ Midtrans gateway configured (%s)", gateway.Environment())

	subSvc := service.NewSubscriptionService(store)

	// Handlers
	healthHandler := handler.NewHealthHandler(store)
	plansHandler := handler.NewPlansHandler()
	paymentHandler := handler.NewPaymentHandler(gateway, subSvc)
	webhookHandler := handler.NewWebhookHandler(gateway, subSvc)

	metrics.Register()

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(appMiddleware.Recovery)
	r.Use(appMiddleware.Logger)
	r.Use(appMiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global rate limiter (20 req/sec per IP, burst of 40)
	globalRL := appMiddleware.NewRateLimiter(20, 40)
	r.Use(globalRL.Middleware())

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		handler.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	})

	// Health, metrics, and catalog
	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/plans", plansHandler.List)

	// Checkout + gateway notification callback
	r.Post("/api/payment/transactions", paymentHandler.CreateTransaction)
	r.Get("/api/payment/notifications", webhookHandler.Health)
	r.Post("/api/payment/notifications", webhookHandler.HandleNotification)

	// Admin routes (disabled unless a secret is configured)
	if cfg.AdminJWTSecret != "" {
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.Auth(cfg.AdminJWTSecret))
			r.Use(appMiddleware.AdminOnly)
			r.Post("/api/payment/simulate", paymentHandler.Simulate) // Admin-only: dev payment simulation
		})
	}

	// Start server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("🛑 Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("🚀 Tagihin payment backend listening at http://%s", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("❌ Server error: %v", err)
	}
}

// buildStore constructs the configured profile store backend.
func buildStore(ctx context.Context, cfg *config.Config) (repository.ProfileStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := repository.NewDB(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Println("✅ Database connected & migrated")
		return repository.NewPostgresProfileStore(db), db.Close, nil

	default:
		store := repository.NewAppwriteProfileStore(repository.AppwriteConfig{
			Endpoint:     cfg.Store.AppwriteEndpoint,
			ProjectID:    cfg.Store.AppwriteProjectID,
			APIKey:       cfg.Store.AppwriteAPIKey,
			DatabaseID:   cfg.Store.AppwriteDatabaseID,
			CollectionID: cfg.Store.ProfilesCollection,
		})
		log.Printf("✅ Appwrite store configured (collection %s)", cfg.Store.ProfilesCollection)
		return store, func() {}, nil
	}
}
