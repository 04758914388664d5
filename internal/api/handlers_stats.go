package api

import (
	"encoding/json"
	"net/http"

	"github.com/tgallois/cursus/internal/store"
)

func (s *Server) handleOCRStats(w http.ResponseWriter, r *http.Request) {
	if s.mistral == nil {
		jsonError(w, "ocr stats unavailable: running on local extraction", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": s.mistral.Model(),
		"stats": s.mistral.Stats().Snapshot(),
	})
}

func (s *Server) handleStoreStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	curriculum, err := s.store.Count(ctx, store.CurriculumTable)
	if err != nil {
		jsonError(w, "count failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	guides, err := s.store.Count(ctx, store.GuidesTable)
	if err != nil {
		jsonError(w, "count failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"curriculum_chunks":      curriculum,
		"teaching_guides_chunks": guides,
		"queue_depth":            s.orchestrator.QueueDepth(),
	})
}
