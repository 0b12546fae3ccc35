package query

import (
	"context"

	"github.com/spj-hub/placement-analytics/internal/domain/cohort"
	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// ListCohortsResult wraps a page of cohorts with the effective paging
// echoed back. Total counts the rows in this page, not the whole table.
type ListCohortsResult struct {
	Cohorts []cohort.Cohort `json:"cohorts"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// ListCohortsHandler serves the cohort listing.
type ListCohortsHandler struct {
	repo cohort.Repository
	log  *logger.Logger
}

// NewListCohortsHandler creates a new cohort listing handler.
func NewListCohortsHandler(repo cohort.Repository, log *logger.Logger) *ListCohortsHandler {
	return &ListCohortsHandler{
		repo: repo,
		log:  log.With(logger.Component("list_cohorts")),
	}
}

// Handle lists cohorts matching the filter.
func (h *ListCohortsHandler) Handle(ctx context.Context, f cohort.ListFilter) (*ListCohortsResult, error) {
	cohorts, err := h.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if cohorts == nil {
		cohorts = []cohort.Cohort{}
	}

	return &ListCohortsResult{
		Cohorts: cohorts,
		Total:   len(cohorts),
		Limit:   cohort.ClampLimit(f.Limit),
		Offset:  cohort.ClampOffset(f.Offset),
	}, nil
}

// GetCohortHandler serves a single cohort by business key.
type GetCohortHandler struct {
	repo cohort.Repository
	log  *logger.Logger
}

// NewGetCohortHandler creates a new single-cohort handler.
func NewGetCohortHandler(repo cohort.Repository, log *logger.Logger) *GetCohortHandler {
	return &GetCohortHandler{
		repo: repo,
		log:  log.With(logger.Component("get_cohort")),
	}
}

// Handle returns the cohort or shared.ErrCohortNotFound.
func (h *GetCohortHandler) Handle(ctx context.Context, cohortID string) (*cohort.Cohort, error) {
	return h.repo.GetByID(ctx, cohortID)
}

// GetCohortStatsHandler serves a cohort with its per-tool summaries.
type GetCohortStatsHandler struct {
	repo cohort.Repository
	log  *logger.Logger
}

// NewGetCohortStatsHandler creates a new cohort stats handler.
func NewGetCohortStatsHandler(repo cohort.Repository, log *logger.Logger) *GetCohortStatsHandler {
	return &GetCohortStatsHandler{
		repo: repo,
		log:  log.With(logger.Component("get_cohort_stats")),
	}
}

// Handle returns the cohort stats or shared.ErrCohortNotFound.
func (h *GetCohortStatsHandler) Handle(ctx context.Context, cohortID string) (*cohort.Stats, error) {
	return h.repo.GetStats(ctx, cohortID)
}
