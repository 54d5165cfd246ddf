package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gallery-backend/internal/catalog"
	"gallery-backend/internal/database"
	"gallery-backend/internal/handlers"
	"gallery-backend/internal/ingest"
	"gallery-backend/internal/logging"
	"gallery-backend/internal/memory"
	"gallery-backend/internal/metrics"
	"gallery-backend/internal/middleware"
	"gallery-backend/internal/startup"
	"gallery-backend/internal/workers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Derive GOMEMLIMIT from container limits before decode buffers start
	// allocating.
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize database
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.LogDatabaseInit(time.Since(dbStart))

	// Refresh the connection-pool gauge periodically
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		for range ticker.C {
			db.UpdateDBMetrics()
		}
	}()

	// One HTTP client shared by the catalog client and the downloader so
	// both reuse the same connection pool.
	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConnsPerHost: config.FetchConcurrency,
		},
	}

	cat := catalog.NewClient(config.SourceURL, httpClient)

	decodeWorkers := config.DecodeWorkers
	if decodeWorkers < 1 {
		decodeWorkers = workers.ForCPU(config.FetchConcurrency)
	}
	startup.LogIngestInit(config.FetchConcurrency, decodeWorkers)

	svc := ingest.New(db, httpClient, ingest.Config{
		DataDir:       config.DataDir,
		Concurrency:   config.FetchConcurrency,
		DecodeWorkers: decodeWorkers,
		TaskTimeout:   config.DownloadTimeout,
	})

	// Initialize handlers
	h := handlers.New(db, cat, svc)

	// Setup router
	router := setupRouter(h, config.MetricsEnabled)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	if config.MetricsEnabled {
		metrics.InitializeMetrics()
	}

	// Apply metrics and logging middleware
	metricsHandler := middleware.Metrics(middleware.DefaultMetricsConfig())(router)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(metricsHandler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, svc)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	// Health check routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/images", h.ListImages).Methods("GET")
	api.HandleFunc("/images/fetch", h.FetchImages).Methods("POST")

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	return r
}

func handleShutdown(srv *http.Server, svc *ingest.Service) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownStep("Draining decode workers")
	svc.Close()
	startup.LogShutdownStepComplete("Decode workers drained")

	startup.LogShutdownComplete()
}
