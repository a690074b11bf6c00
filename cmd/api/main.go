package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/arielgp/salesfunnel-ai/internal/api/router"
	appconfig "github.com/arielgp/salesfunnel-ai/internal/config"
	"github.com/arielgp/salesfunnel-ai/internal/conversation"
	"github.com/arielgp/salesfunnel-ai/internal/funnel"
	"github.com/arielgp/salesfunnel-ai/internal/leads"
	"github.com/arielgp/salesfunnel-ai/internal/observability/metrics"
	"github.com/arielgp/salesfunnel-ai/internal/webchat"
	"github.com/arielgp/salesfunnel-ai/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting salesfunnel-ai API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"locale", cfg.Locale,
	)

	engine, err := funnel.New(funnel.Locale(cfg.Locale))
	if err != nil {
		logger.Error("failed to build funnel engine", "locale", cfg.Locale, "error", err)
		os.Exit(1)
	}

	if cfg.OpenAIAPIKey == "" {
		logger.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}
	openaiCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		openaiCfg.BaseURL = cfg.OpenAIBaseURL
	}
	llm := conversation.NewOpenAIClient(openai.NewClientWithConfig(openaiCfg), cfg.OpenAIModel, cfg.LLMTimeout)

	// Leads live in Postgres when a database is configured, in memory
	// otherwise. The transcript mirror needs the database.
	var leadRepo leads.Repository = leads.NewInMemoryRepository()
	var transcripts *conversation.TranscriptStore
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		leadRepo = leads.NewPostgresRepository(pool)

		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open transcript db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		transcripts = conversation.NewTranscriptStore(db, cfg.ExcludedPhones)
	}

	var history *conversation.HistoryStore
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		history = conversation.NewHistoryStore(redis.NewClient(opts), cfg.HistoryTTL)
	}

	funnelMetrics := metrics.NewFunnelMetrics(prometheus.DefaultRegisterer)

	service := conversation.NewService(engine, llm, leadRepo, history, transcripts, logger, funnelMetrics)

	routerCfg := &router.Config{
		Logger:              logger,
		ConversationHandler: conversation.NewHandler(service, logger),
		LeadsHandler:        leads.NewHandler(leadRepo, logger),
		WebchatHandler:      webchat.NewHandler(service, logger),
		MetricsHandler:      promhttp.Handler(),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
