package web

import (
	"net/http"

	"github.com/tremorlab/quake-map-service/internal/domain"
)

type eventsResponse struct {
	Count  int             `json:"count"`
	Events []domain.Record `json:"events"`
}

// handleEvents returns the normalized record table as JSON, the data
// preview behind the map.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q, _, err := s.parseQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.svc.FetchEvents(r.Context(), q)
	if err != nil {
		s.logger.Error("event fetch failed", "error", err)
		respondError(w, http.StatusBadGateway, "event catalog unavailable")
		return
	}

	respondJSON(w, http.StatusOK, eventsResponse{Count: len(records), Events: records})
}
