package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"

	"github.com/neomorfeo/licenseiq/internal/adapter/fsm"
	"github.com/neomorfeo/licenseiq/internal/adapter/otel"
	"github.com/neomorfeo/licenseiq/internal/adapter/river"
	"github.com/neomorfeo/licenseiq/internal/adapter/sqlite"
	"github.com/neomorfeo/licenseiq/internal/app"

	handler "github.com/neomorfeo/licenseiq/internal/adapter/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("licenseiq: %v", err)
	}
}

func run() error {
	// Optional .env for local development; the environment wins.
	_ = godotenv.Load()

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "licenseiq.db")
	defaultSeats, _ := strconv.Atoi(envOrDefault("DEFAULT_SEATS", "10"))

	ctx := context.Background()

	// --- Observability ---
	providers, err := otel.Setup(ctx, otel.ConfigFromEnv())
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otel.OpenDB(dbPath)
	if err != nil {
		return err
	}

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		return err
	}
	defer store.Close()

	licenseRepo := otel.NewTracingLicenseRepository(sqlite.NewLicenseRepository(store))
	orgRepo := sqlite.NewOrganizationRepository(store)
	productRepo := sqlite.NewProductRepository(store)
	assignmentRepo := sqlite.NewAssignmentRepository(store)

	riverClient, err := river.Setup(ctx, store.DB())
	if err != nil {
		return err
	}
	if err := riverClient.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			log.Printf("river shutdown: %v", err)
		}
	}()

	publisher := otel.NewTracingPublisher(river.NewPublisher(riverClient))
	validator := fsm.New()
	clock := app.SystemClock()
	locks := app.NewLicenseLocks()
	principals := handler.NewResolver()

	// --- Application ---
	catalogSvc := app.NewCatalogService(orgRepo, productRepo, clock)
	licenseSvc := app.NewLicenseService(licenseRepo, orgRepo, productRepo, publisher, validator, clock, locks)
	assignmentSvc := app.NewAssignmentService(assignmentRepo, licenseRepo, publisher, clock, locks)
	requestSvc := app.NewRequestService(licenseRepo, orgRepo, productRepo, publisher, validator, principals, clock, locks, defaultSeats)

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(httprate.LimitByIP(300, time.Minute))
	router.Use(handler.PrincipalMiddleware)

	api := humachi.New(router, huma.DefaultConfig("licenseiq", "0.1.0"))
	handler.Register(api, catalogSvc, licenseSvc, assignmentSvc, requestSvc)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("licenseiq listening on :%s", port)
		log.Printf("API docs: http://localhost:%s/docs", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	log.Println("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
