package query

import (
	"context"

	"github.com/spj-hub/placement-analytics/internal/domain/cohort"
	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// ListPlacementsResult wraps a page of placement summaries with the
// effective paging echoed back.
type ListPlacementsResult struct {
	Placements []cohort.PlacementSummary `json:"placements"`
	Total      int                       `json:"total"`
	Limit      int                       `json:"limit"`
	Offset     int                       `json:"offset"`
}

// ListVisitsResult wraps a page of company visits with the effective
// paging echoed back.
type ListVisitsResult struct {
	Visits []cohort.CompanyVisit `json:"visits"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// ListPlacementsHandler serves the placement and company-visit listings.
type ListPlacementsHandler struct {
	repo cohort.PlacementRepository
	log  *logger.Logger
}

// NewListPlacementsHandler creates a new placement listing handler.
func NewListPlacementsHandler(repo cohort.PlacementRepository, log *logger.Logger) *ListPlacementsHandler {
	return &ListPlacementsHandler{
		repo: repo,
		log:  log.With(logger.Component("list_placements")),
	}
}

// Placements lists placement summary rows matching the filter.
func (h *ListPlacementsHandler) Placements(ctx context.Context, f cohort.PlacementListFilter) (*ListPlacementsResult, error) {
	rows, err := h.repo.ListPlacements(ctx, f)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []cohort.PlacementSummary{}
	}

	return &ListPlacementsResult{
		Placements: rows,
		Total:      len(rows),
		Limit:      cohort.ClampLimit(f.Limit),
		Offset:     cohort.ClampOffset(f.Offset),
	}, nil
}

// Visits lists company visit rows matching the filter.
func (h *ListPlacementsHandler) Visits(ctx context.Context, f cohort.VisitListFilter) (*ListVisitsResult, error) {
	rows, err := h.repo.ListVisits(ctx, f)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []cohort.CompanyVisit{}
	}

	return &ListVisitsResult{
		Visits: rows,
		Total:  len(rows),
		Limit:  cohort.ClampLimit(f.Limit),
		Offset: cohort.ClampOffset(f.Offset),
	}, nil
}
