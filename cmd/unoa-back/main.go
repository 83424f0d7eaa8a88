package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/UNOA-Project/UNOA-Back/internal/chatbot"
	"github.com/UNOA-Project/UNOA-Back/internal/config"
	"github.com/UNOA-Project/UNOA-Back/internal/conversation"
	"github.com/UNOA-Project/UNOA-Back/internal/genai"
	"github.com/UNOA-Project/UNOA-Back/internal/httpapi"
	"github.com/UNOA-Project/UNOA-Back/internal/observability"
	"github.com/UNOA-Project/UNOA-Back/internal/plans"
	"github.com/UNOA-Project/UNOA-Back/internal/session"
	"github.com/UNOA-Project/UNOA-Back/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("config error")
	}

	logger := newLogger(cfg)
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect postgres failed")
		}
		logger.Info().Msg("storage: postgres")
	} else {
		logger.Info().Msg("storage: in-memory (DATABASE_URL not set)")
	}

	store, err := conversation.NewStore(ctx, pool)
	if err != nil {
		logger.Fatal().Err(err).Msg("conversation store init failed")
	}
	defer store.Close()

	catalog, err := plans.NewCatalog(ctx, pool)
	if err != nil {
		logger.Fatal().Err(err).Msg("plan catalog init failed")
	}
	defer catalog.Close()

	generator, backend := genai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.GenerationTimeout)
	logger.Info().Str("backend", backend).Str("model", cfg.OpenAIModel).Msg("text generation")

	api := httpapi.New(
		cfg,
		logger,
		session.NewService(store),
		stats.NewService(store, cfg.ActiveWindow),
		catalog,
		chatbot.NewComparer(generator),
		chatbot.NewService(store, generator, cfg.ChatContextLimit),
		metrics,
	)

	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		logger.Info().Str("addr", cfg.BindAddr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		_ = httpServer.Close()
	}

	logger.Info().Msg("shutdown complete")
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.LogPretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Str("service", "unoa-back").Logger()
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "unoa-back").Logger()
}
