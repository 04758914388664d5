package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tgallois/cursus/internal/api"
	"github.com/tgallois/cursus/internal/config"
	"github.com/tgallois/cursus/internal/ocr"
	"github.com/tgallois/cursus/internal/parser"
	"github.com/tgallois/cursus/internal/pipeline"
	"github.com/tgallois/cursus/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// A missing .env is fine; the environment may be set by the deployment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients. Without an OCR key, ingestion falls back to
	// local text extraction.
	st := store.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
	var mistral *ocr.Client
	var extractor pipeline.TextExtractor
	if cfg.MistralAPIKey != "" {
		mistral = ocr.NewClient(cfg.MistralAPIKey, cfg.MistralModel)
		extractor = mistral
	} else {
		log.Warn("MISTRAL_API_KEY not set, using local text extraction")
		extractor = parser.NewLocal()
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, extractor, st, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, mistral, st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if mistral != nil {
			mistral.Close()
		}
		st.Close()
	}()

	log.Info("starting cursus", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
