package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/tgallois/cursus/internal/catalog"
	"github.com/tgallois/cursus/internal/chunk"
	"github.com/tgallois/cursus/internal/pipeline"
	"github.com/tgallois/cursus/internal/store"
)

const defaultSearchLimit = 50

// handleSearchChunks queries one of the two chunk tables with metadata
// filters.
func (s *Server) handleSearchChunks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind, err := parseKind(q.Get("doc_type"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	f := store.Filters{
		Subject:   q.Get("subject"),
		Cycle:     q.Get("cycle"),
		GuideType: q.Get("guide_type"),
	}
	if v := q.Get("grades"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			g, ok := catalog.CanonicalGrade(raw)
			if !ok {
				jsonError(w, "unknown grade: "+strings.TrimSpace(raw), http.StatusBadRequest)
				return
			}
			f.Grades = append(f.Grades, g)
		}
	}
	if v := q.Get("categories"); v != "" {
		f.Categories = strings.Split(v, ",")
	}
	if v := q.Get("general"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(w, "general must be a boolean", http.StatusBadRequest)
			return
		}
		f.General = &b
	}

	limit := defaultSearchLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	w.Header().Set("Content-Type", "application/json")
	if kind == pipeline.KindTeachingGuide {
		var rows []chunk.GuideChunk
		if err := s.store.Search(r.Context(), store.GuidesTable, f, limit, &rows); err != nil {
			jsonError(w, "search failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"count": len(rows), "chunks": rows})
		return
	}
	var rows []chunk.CurriculumChunk
	if err := s.store.Search(r.Context(), store.CurriculumTable, f, limit, &rows); err != nil {
		jsonError(w, "search failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"count": len(rows), "chunks": rows})
}
