package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spj-hub/placement-analytics/internal/domain/cohort"
	"github.com/spj-hub/placement-analytics/internal/domain/shared"
)

type fakeCohortRepo struct {
	cohorts []cohort.Cohort
	gotF    cohort.ListFilter
}

func (r *fakeCohortRepo) List(_ context.Context, f cohort.ListFilter) ([]cohort.Cohort, error) {
	r.gotF = f
	return r.cohorts, nil
}

func (r *fakeCohortRepo) GetByID(_ context.Context, cohortID string) (*cohort.Cohort, error) {
	for i := range r.cohorts {
		if r.cohorts[i].CohortID == cohortID {
			return &r.cohorts[i], nil
		}
	}
	return nil, shared.ErrCohortNotFound
}

func (r *fakeCohortRepo) GetStats(ctx context.Context, cohortID string) (*cohort.Stats, error) {
	c, err := r.GetByID(ctx, cohortID)
	if err != nil {
		return nil, err
	}
	return &cohort.Stats{Cohort: c}, nil
}

func TestListCohortsTotalIsPageSize(t *testing.T) {
	repo := &fakeCohortRepo{cohorts: []cohort.Cohort{
		{CohortID: "C-1"}, {CohortID: "C-2"},
	}}
	h := NewListCohortsHandler(repo, testLogger())

	result, err := h.Handle(context.Background(), cohort.ListFilter{Year: 2022, Limit: 50, Offset: 10})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 50, result.Limit)
	assert.Equal(t, 10, result.Offset)
	assert.Equal(t, 2022, repo.gotF.Year)
	assert.Equal(t, 50, repo.gotF.Limit)
}

func TestListCohortsEchoesClampedPaging(t *testing.T) {
	h := NewListCohortsHandler(&fakeCohortRepo{}, testLogger())

	// Unset paging echoes the defaults.
	result, err := h.Handle(context.Background(), cohort.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, cohort.DefaultListLimit, result.Limit)
	assert.Equal(t, 0, result.Offset)

	// Out-of-range values echo what the storage layer actually used.
	result, err = h.Handle(context.Background(), cohort.ListFilter{Limit: 9999, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, cohort.MaxListLimit, result.Limit)
	assert.Equal(t, 0, result.Offset)
}

func TestListCohortsEmptyIsSliceNotNull(t *testing.T) {
	h := NewListCohortsHandler(&fakeCohortRepo{}, testLogger())

	result, err := h.Handle(context.Background(), cohort.ListFilter{})
	require.NoError(t, err)

	assert.NotNil(t, result.Cohorts)
	assert.Empty(t, result.Cohorts)
	assert.Equal(t, 0, result.Total)
}

func TestGetCohortNotFound(t *testing.T) {
	h := NewGetCohortHandler(&fakeCohortRepo{}, testLogger())

	_, err := h.Handle(context.Background(), "C-404")
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestGetCohortStats(t *testing.T) {
	repo := &fakeCohortRepo{cohorts: []cohort.Cohort{{CohortID: "C-1", Year: 2022}}}
	h := NewGetCohortStatsHandler(repo, testLogger())

	stats, err := h.Handle(context.Background(), "C-1")
	require.NoError(t, err)
	require.NotNil(t, stats.Cohort)
	assert.Equal(t, 2022, stats.Cohort.Year)
	assert.Nil(t, stats.Placement)
}

type fakePlacementRepo struct {
	placements []cohort.PlacementSummary
	visits     []cohort.CompanyVisit
}

func (r *fakePlacementRepo) ListPlacements(_ context.Context, _ cohort.PlacementListFilter) ([]cohort.PlacementSummary, error) {
	return r.placements, nil
}

func (r *fakePlacementRepo) ListVisits(_ context.Context, _ cohort.VisitListFilter) ([]cohort.CompanyVisit, error) {
	return r.visits, nil
}

func TestListPlacementsEchoesPaging(t *testing.T) {
	repo := &fakePlacementRepo{placements: []cohort.PlacementSummary{{CohortID: "C-1"}}}
	h := NewListPlacementsHandler(repo, testLogger())

	result, err := h.Placements(context.Background(), cohort.PlacementListFilter{Limit: 25, Offset: 50})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 25, result.Limit)
	assert.Equal(t, 50, result.Offset)

	visits, err := h.Visits(context.Background(), cohort.VisitListFilter{})
	require.NoError(t, err)
	assert.NotNil(t, visits.Visits)
	assert.Equal(t, cohort.DefaultListLimit, visits.Limit)
	assert.Equal(t, 0, visits.Offset)
}
