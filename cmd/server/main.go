package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vetqa/backend/internal/api"
	"github.com/vetqa/backend/internal/infrastructure/config"
	"github.com/vetqa/backend/internal/ingest"
	"github.com/vetqa/backend/internal/reviewer"
	"github.com/vetqa/backend/internal/service"
	"github.com/vetqa/backend/internal/store"

	_ "github.com/vetqa/backend/docs" // swagger docs
)

// @title           vetqa API
// @version         1.0
// @description     Veterinary residency exam study backend: question bank, simulations, study sessions and statistics.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Dependencies ────────────────────────────────────────────────
	opener := store.NewOpener(func(ctx context.Context) (store.Store, error) {
		return store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	})
	db, err := opener.Open(ctx)
	if errors.Is(err, store.ErrStorageUnavailable) {
		logger.Warn("persistent storage unavailable, falling back to memory", "driver", cfg.DBDriver, "error", err)
		opener = store.NewOpener(func(context.Context) (store.Store, error) { return store.NewMemory(), nil })
		db, err = opener.Open(ctx)
	}
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer opener.Close()

	if cfg.SeedBanks {
		if _, err := ingest.Seed(ctx, db, cfg.BanksDir, cfg.UpsertChunkSize, logger); err != nil {
			logger.Error("failed to seed question banks", "dir", cfg.BanksDir, "error", err)
		}
	}

	chain := reviewer.Chain{}
	if cfg.LLMAPIKey != "" {
		chain = append(chain, reviewer.NewLLMReviewer(cfg.LLMURL, cfg.LLMModel, cfg.LLMAPIKey))
	}
	chain = append(chain, reviewer.OfflineReviewer{})

	recorder := service.NewAttemptRecorder(db, logger)
	reviews := service.NewReviewService(chain, cfg.ReviewWorkers, logger)
	handler := api.NewHandler(db, recorder, reviews, api.NewClientRegistry(cfg.SessionSecret), cfg.UpsertChunkSize, logger)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           api.NewRouter(handler, cfg.CORSOrigins, logger),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Minute, // synchronous reviews wait on the LLM
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "address", cfg.ServerAddress, "driver", cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
		reviews.Close()
		recorder.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
