package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tremorlab/quake-map-service/internal/domain"
)

const dateLayout = "2006-01-02"

// handleMap composes the map for the query parameters and streams the
// rendered HTML, suitable for the dashboard iframe or direct viewing.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	q, rasterPath, err := s.parseQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, count, err := s.svc.BuildMap(r.Context(), q, rasterPath)
	if err != nil {
		s.logger.Error("map build failed", "error", err)
		respondError(w, http.StatusBadGateway, "event catalog unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := m.Render(w); err != nil {
		s.logger.Error("map render failed", "error", err)
		return
	}
	s.logger.Debug("map served", "events", count, "raster", rasterPath)
}

type exportResponse struct {
	Path string `json:"path"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q, rasterPath, err := s.parseQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	path, err := s.svc.ExportMap(r.Context(), q, rasterPath)
	if err != nil {
		s.logger.Error("map export failed", "error", err)
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	respondJSON(w, http.StatusCreated, exportResponse{Path: path})
}

// parseQuery builds the catalog query from request parameters, falling
// back to the configured defaults. A raster parameter that is present
// but empty disables the overlay for this request.
func (s *Server) parseQuery(r *http.Request) (domain.EventQuery, string, error) {
	params := r.URL.Query()

	q := domain.EventQuery{
		StartTime:    s.defaults.StartDate,
		EndTime:      s.defaults.EndDate,
		MinMagnitude: s.defaults.MinMagnitude,
	}
	if v := params.Get("start"); v != "" {
		q.StartTime = v
	}
	if v := params.Get("end"); v != "" {
		q.EndTime = v
	}
	if v := params.Get("min_magnitude"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.EventQuery{}, "", errors.New("invalid min_magnitude")
		}
		q.MinMagnitude = m
	}

	if _, err := time.Parse(dateLayout, q.StartTime); err != nil {
		return domain.EventQuery{}, "", errors.New("invalid start date, want YYYY-MM-DD")
	}
	if _, err := time.Parse(dateLayout, q.EndTime); err != nil {
		return domain.EventQuery{}, "", errors.New("invalid end date, want YYYY-MM-DD")
	}

	rasterPath := s.defaults.RasterPath
	if params.Has("raster") {
		rasterPath = params.Get("raster")
	}

	return q, rasterPath, nil
}
