package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tgallois/cursus/internal/config"
	"github.com/tgallois/cursus/internal/ocr"
	"github.com/tgallois/cursus/internal/pipeline"
	"github.com/tgallois/cursus/internal/store"
)

// Server is the HTTP API server for cursus.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	mistral      *ocr.Client // nil when running on local extraction
	store        *store.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. mistral may be nil when
// ingestion runs on the local parser fallback.
func NewServer(orch *pipeline.Orchestrator, mistral *ocr.Client, st *store.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		mistral:      mistral,
		store:        st,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/ingest", s.handleIngest)
		r.Get("/api/ingest/{jobID}/status", s.handleIngestStatus)
		r.Post("/api/ingest/batch", s.handleBatchIngest)

		r.Get("/api/chunks/search", s.handleSearchChunks)

		r.Get("/api/stats/ocr", s.handleOCRStats)
		r.Get("/api/stats/store", s.handleStoreStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
