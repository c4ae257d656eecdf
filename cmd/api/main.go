package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"pdf-summary/internal/common/pagination"
	"pdf-summary/internal/config"
	pgRepo "pdf-summary/internal/infra/adapter/persistence/postgres"
	"pdf-summary/internal/infra/db"
	"pdf-summary/internal/infra/extractor"
	"pdf-summary/internal/infra/provider"
	"pdf-summary/internal/ratelimit"

	docUC "pdf-summary/internal/usecase/document"
	sumUC "pdf-summary/internal/usecase/summarize"

	hhttp "pdf-summary/internal/handler/http"
	hdocument "pdf-summary/internal/handler/http/document"
	"pdf-summary/internal/handler/http/requestid"
	"pdf-summary/internal/observability/logging"
)

// inbound per-IP request limit, separate from the outbound provider
// rate limit which LLM_REQUESTS_PER_MINUTE controls
const apiRequestsPerMinute = 60

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	serverCfg, extractorCfg, summarizerCfg := loadConfigs(logger)

	database := initDatabase(logger, serverCfg.DatabaseURL)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
	}

	version := getVersion()
	handler, err := setupServer(logger, database, version, serverCfg, extractorCfg, summarizerCfg)
	if err != nil {
		logger.Error("server setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, handler, serverCfg, version)
}

// loadConfigs loads and validates every configuration block, applying the
// named provider profile when one is selected.
func loadConfigs(logger *slog.Logger) (*config.ServerConfig, *config.ExtractorConfig, *config.SummarizerConfig) {
	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("invalid server configuration", slog.Any("error", err))
		os.Exit(1)
	}

	extractorCfg, err := config.LoadExtractorConfig()
	if err != nil {
		logger.Error("invalid extractor configuration", slog.Any("error", err))
		os.Exit(1)
	}

	summarizerCfg, err := config.LoadSummarizerConfig()
	if err != nil {
		logger.Error("invalid summarizer configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// A profiles file maps short names to provider presets. The selected
	// profile overrides the plain environment configuration.
	if path := os.Getenv("LLM_PROFILES_PATH"); path != "" {
		profiles, err := config.LoadProfilesConfig(path)
		if err != nil {
			logger.Error("failed to load provider profiles", slog.Any("error", err))
			os.Exit(1)
		}
		if name := os.Getenv("LLM_PROFILE"); name != "" {
			if err := profiles.Apply(name, summarizerCfg); err != nil {
				logger.Error("failed to apply provider profile",
					slog.String("profile", name),
					slog.Any("error", err))
				os.Exit(1)
			}
			logger.Info("provider profile applied", slog.String("profile", name))
		}
	}

	return serverCfg, extractorCfg, summarizerCfg
}

// initDatabase opens the database connection and runs migrations. An empty
// DSN disables persistence: summaries are returned but not stored.
func initDatabase(logger *slog.Logger, dsn string) *sql.DB {
	if dsn == "" {
		logger.Warn("DATABASE_URL not set, running without summary history")
		return nil
	}

	database, err := db.Open(dsn)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires the processing pipeline and returns the HTTP handler
// with all routes and middleware.
func setupServer(
	logger *slog.Logger,
	database *sql.DB,
	version string,
	serverCfg *config.ServerConfig,
	extractorCfg *config.ExtractorConfig,
	summarizerCfg *config.SummarizerConfig,
) (http.Handler, error) {
	client, err := provider.New(provider.Config{
		Backend: summarizerCfg.Provider,
		APIKey:  summarizerCfg.APIKey,
		BaseURL: summarizerCfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create provider client: %w", err)
	}

	// One limiter per process. Every provider call from every concurrent
	// request passes through it.
	limiter := ratelimit.NewPerMinute(summarizerCfg.RequestsPerMinute)

	summarizer, err := sumUC.NewService(client, limiter, sumUC.Config{
		Model:            summarizerCfg.Model,
		Temperature:      summarizerCfg.Temperature,
		MaxOutputUnits:   summarizerCfg.MaxOutputUnits,
		MaxUnitsPerChunk: summarizerCfg.MaxUnitsPerChunk,
		ConcurrencyLimit: summarizerCfg.ConcurrencyLimit,
		MaxDepth:         summarizerCfg.MaxDepth,
		CallTimeout:      summarizerCfg.CallTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}

	docSvc := &docUC.Service{
		Extractor:  extractor.New(*extractorCfg),
		Summarizer: summarizer,
		Provider:   summarizerCfg.Provider,
		Model:      summarizerCfg.Model,
		ChunkUnits: summarizerCfg.MaxUnitsPerChunk,
	}
	if database != nil {
		docSvc.Repo = pgRepo.NewDocumentRepo(database)
	}

	logger.Info("summarizer configured",
		slog.String("provider", summarizerCfg.Provider),
		slog.String("model", summarizerCfg.Model),
		slog.Int("requests_per_minute", summarizerCfg.RequestsPerMinute),
		slog.Int("chunk_units", summarizerCfg.MaxUnitsPerChunk),
		slog.Int("concurrency", summarizerCfg.ConcurrencyLimit))

	mux := http.NewServeMux()
	mux.Handle("/health", &hhttp.HealthHandler{
		DB:       database,
		Version:  version,
		Provider: summarizerCfg.Provider,
		Model:    summarizerCfg.Model,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	if serverCfg.EnableMetrics {
		mux.Handle("/metrics", hhttp.MetricsHandler())
	}

	paginationCfg := pagination.LoadFromEnv()
	hdocument.Register(mux, docSvc, paginationCfg, logger)

	return applyMiddleware(logger, mux, serverCfg), nil
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → IP Rate Limit → Recovery → Logging → Input Validation → Timeout → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler, serverCfg *config.ServerConfig) http.Handler {
	ipLimiter := hhttp.NewRateLimiter(apiRequestsPerMinute, time.Minute)

	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(serverCfg.WriteTimeout)(chain)
	chain = hhttp.InputValidation(serverCfg.MaxUploadBytes)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = ipLimiter.Limit(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, serverCfg *config.ServerConfig, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := fmt.Sprintf(":%d", serverCfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		ReadTimeout:       serverCfg.ReadTimeout,
		WriteTimeout:      serverCfg.WriteTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
