package http

import (
	"net/http"

	"github.com/spj-hub/placement-analytics/internal/domain/cohort"
)

// handleListCohorts serves GET /api/v1/cohorts.
func (s *Server) handleListCohorts(w http.ResponseWriter, r *http.Request) {
	f := cohort.ListFilter{
		Year:    getQueryParamInt(r, "year", 0),
		Program: getQueryParam(r, "program", ""),
		Phase:   getQueryParam(r, "phase", ""),
		Limit:   getQueryParamInt(r, "limit", 0),
		Offset:  getQueryParamInt(r, "offset", 0),
	}

	result, err := s.deps.ListCohortsHandler.Handle(r.Context(), f)
	if err != nil {
		s.respondError(w, r, err, "Error fetching cohorts")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetCohort serves GET /api/v1/cohorts/{id}.
func (s *Server) handleGetCohort(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetCohortHandler.Handle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err, "Error fetching cohort")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cohort": result})
}

// handleGetCohortStats serves GET /api/v1/cohorts/{id}/stats.
func (s *Server) handleGetCohortStats(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetCohortStatsHandler.Handle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err, "Error fetching cohort stats")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleListPlacements serves GET /api/v1/placements.
func (s *Server) handleListPlacements(w http.ResponseWriter, r *http.Request) {
	f := cohort.PlacementListFilter{
		CohortID: getQueryParam(r, "cohort", ""),
		Phase:    getQueryParam(r, "phase", ""),
		Limit:    getQueryParamInt(r, "limit", 0),
		Offset:   getQueryParamInt(r, "offset", 0),
	}

	result, err := s.deps.ListPlacementsHandler.Placements(r.Context(), f)
	if err != nil {
		s.respondError(w, r, err, "Error fetching placements")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleListVisits serves GET /api/v1/placements/visits.
func (s *Server) handleListVisits(w http.ResponseWriter, r *http.Request) {
	f := cohort.VisitListFilter{
		CohortID: getQueryParam(r, "cohort", ""),
		Phase:    getQueryParam(r, "phase", ""),
		Company:  getQueryParam(r, "company", ""),
		Tier:     getQueryParam(r, "tier", ""),
		Limit:    getQueryParamInt(r, "limit", 0),
		Offset:   getQueryParamInt(r, "offset", 0),
	}

	result, err := s.deps.ListPlacementsHandler.Visits(r.Context(), f)
	if err != nil {
		s.respondError(w, r, err, "Error fetching company visits")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
