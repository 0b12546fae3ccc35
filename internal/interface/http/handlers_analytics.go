package http

import (
	"net/http"

	"github.com/spj-hub/placement-analytics/internal/domain/analytics"
)

// parseAnalyticsFilter reads the shared filter query parameters. The
// course filter is named "courses" for compatibility with the dashboard
// frontend even though it maps to the program column.
func parseAnalyticsFilter(r *http.Request) analytics.Filter {
	q := r.URL.Query()
	return analytics.ParseFilter(q.Get("cohorts"), q.Get("courses"), q.Get("phases"))
}

// handleGetOverview serves GET /api/v1/analytics/overview.
func (s *Server) handleGetOverview(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetOverviewHandler.Handle(r.Context(), parseAnalyticsFilter(r))
	if err != nil {
		s.respondError(w, r, err, "Error fetching overview analytics")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetTutorAnalytics serves GET /api/v1/analytics/tutor.
func (s *Server) handleGetTutorAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetTutorAnalyticsHandler.Handle(r.Context(), parseAnalyticsFilter(r))
	if err != nil {
		s.respondError(w, r, err, "Error fetching tutor analytics")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetMentorAnalytics serves GET /api/v1/analytics/mentor.
func (s *Server) handleGetMentorAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetMentorAnalyticsHandler.Handle(r.Context(), parseAnalyticsFilter(r))
	if err != nil {
		s.respondError(w, r, err, "Error fetching mentor analytics")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetJptAnalytics serves GET /api/v1/analytics/jpt.
func (s *Server) handleGetJptAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetJptAnalyticsHandler.Handle(r.Context(), parseAnalyticsFilter(r))
	if err != nil {
		s.respondError(w, r, err, "Error fetching JPT analytics")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
