package query

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spj-hub/placement-analytics/internal/domain/analytics"
	"github.com/spj-hub/placement-analytics/pkg/logger"
)

func ptr(v float64) *float64 { return &v }

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: os.Stderr, Level: logger.LevelError})
}

// fakeAnalyticsRepo returns scripted aggregates and counts calls.
type fakeAnalyticsRepo struct {
	placement    analytics.PlacementTotals
	phaseRows    []analytics.PhasePlacementTotals
	tutorImpact  analytics.TutorImpactTotals
	tutorUsage   analytics.TutorUsageTotals
	tutorWeekly  []analytics.TutorWeeklyRow
	tutorPhases  []analytics.TutorAcademicRow
	mentorImpact analytics.MentorImpactTotals
	mentorDegree analytics.MentorHigherDegreeTotals
	mentorPhases []analytics.MentorPhaseRow
	jptImpact    analytics.JptImpactTotals
	jptPerf      analytics.JptPerformanceTotals
	jptPhases    []analytics.JptPhaseComparisonRow
	jptUsage     []analytics.JptUsageRow

	err   error
	calls int
}

func (r *fakeAnalyticsRepo) PlacementTotals(context.Context, analytics.Filter) (*analytics.PlacementTotals, error) {
	r.calls++
	return &r.placement, r.err
}

func (r *fakeAnalyticsRepo) PlacementPhaseComparison(context.Context, analytics.Filter) ([]analytics.PhasePlacementTotals, error) {
	r.calls++
	return r.phaseRows, r.err
}

func (r *fakeAnalyticsRepo) TutorImpactTotals(context.Context, analytics.Filter) (*analytics.TutorImpactTotals, error) {
	r.calls++
	return &r.tutorImpact, r.err
}

func (r *fakeAnalyticsRepo) TutorUsageTotals(context.Context, analytics.Filter) (*analytics.TutorUsageTotals, error) {
	r.calls++
	return &r.tutorUsage, r.err
}

func (r *fakeAnalyticsRepo) TutorWeeklyTrends(context.Context, analytics.Filter) ([]analytics.TutorWeeklyRow, error) {
	r.calls++
	return r.tutorWeekly, r.err
}

func (r *fakeAnalyticsRepo) TutorAcademicByPhase(context.Context, analytics.Filter) ([]analytics.TutorAcademicRow, error) {
	r.calls++
	return r.tutorPhases, r.err
}

func (r *fakeAnalyticsRepo) MentorImpactTotals(context.Context, analytics.Filter) (*analytics.MentorImpactTotals, error) {
	r.calls++
	return &r.mentorImpact, r.err
}

func (r *fakeAnalyticsRepo) MentorHigherDegreeTotals(context.Context, analytics.Filter) (*analytics.MentorHigherDegreeTotals, error) {
	r.calls++
	return &r.mentorDegree, r.err
}

func (r *fakeAnalyticsRepo) MentorPhasePerformance(context.Context, analytics.Filter) ([]analytics.MentorPhaseRow, error) {
	r.calls++
	return r.mentorPhases, r.err
}

func (r *fakeAnalyticsRepo) JptImpactTotals(context.Context, analytics.Filter) (*analytics.JptImpactTotals, error) {
	r.calls++
	return &r.jptImpact, r.err
}

func (r *fakeAnalyticsRepo) JptPerformanceTotals(context.Context, analytics.Filter) (*analytics.JptPerformanceTotals, error) {
	r.calls++
	return &r.jptPerf, r.err
}

func (r *fakeAnalyticsRepo) JptPhaseComparison(context.Context, analytics.Filter) ([]analytics.JptPhaseComparisonRow, error) {
	r.calls++
	return r.jptPhases, r.err
}

func (r *fakeAnalyticsRepo) JptUsagePatterns(context.Context, analytics.Filter) ([]analytics.JptUsageRow, error) {
	r.calls++
	return r.jptUsage, r.err
}

// fakeCache is an in-memory Cache implementation.
type fakeCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dest any) error {
	c.gets++
	data, ok := c.store[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = data
	return nil
}

func TestGetOverviewDerivesMetrics(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		placement: analytics.PlacementTotals{
			AvgPackage:            ptr(14.556),
			AvgConversionPerVisit: ptr(3.21),
			TotalTier1Offers:      30,
			TotalOffers:           120,
			TotalPlaced:           90,
			TotalEligible:         120,
		},
		tutorImpact:  analytics.TutorImpactTotals{ExamImprovement: ptr(4.2)},
		mentorImpact: analytics.MentorImpactTotals{CapstoneImprovement: ptr(0.8), TotalAttempts: 40, TotalAdmissions: 25},
		jptImpact:    analytics.JptImpactTotals{AvgAiTechnical: ptr(7.654), ConversionBoost: ptr(2.5)},
		phaseRows: []analytics.PhasePlacementTotals{
			{Phase: "Pre-AI", PlacementTotals: analytics.PlacementTotals{
				AvgPackage: ptr(11.0), TotalPlaced: 50, TotalEligible: 100, TotalTier1Offers: 10, TotalOffers: 60,
			}},
		},
	}

	h := NewGetOverviewHandler(repo, nil, testLogger())
	result, err := h.Handle(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 75.0, result.CoreMetrics.JobConversionRate)
	assert.Equal(t, 14.56, result.CoreMetrics.AvgPackage)
	assert.Equal(t, 25.0, result.CoreMetrics.Tier1Share)
	assert.Equal(t, 3.21, result.CoreMetrics.ConversionPerVisit)

	assert.Equal(t, 4.2, result.AiToolPerformance.TutorExamImprovement)
	assert.Equal(t, 7.65, result.AiToolPerformance.JptTechnicalScore)
	assert.Equal(t, 62.5, result.AiToolPerformance.HigherDegreeSuccessRate)

	require.Len(t, result.PhaseComparison, 1)
	assert.Equal(t, "Pre-AI", result.PhaseComparison[0].Phase)
	assert.Equal(t, 50.0, result.PhaseComparison[0].JobConversionRate)
}

func TestGetOverviewZeroDenominators(t *testing.T) {
	// An empty database yields zeroed metrics, never NaN or an error.
	h := NewGetOverviewHandler(&fakeAnalyticsRepo{}, nil, testLogger())

	result, err := h.Handle(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.CoreMetrics.JobConversionRate)
	assert.Equal(t, 0.0, result.CoreMetrics.AvgPackage)
	assert.Equal(t, 0.0, result.AiToolPerformance.HigherDegreeSuccessRate)
	assert.NotNil(t, result.PhaseComparison)
	assert.Empty(t, result.PhaseComparison)
}

func TestGetOverviewRepositoryFailure(t *testing.T) {
	repo := &fakeAnalyticsRepo{err: errors.New("connection refused")}
	h := NewGetOverviewHandler(repo, nil, testLogger())

	_, err := h.Handle(context.Background(), analytics.Filter{})
	assert.Error(t, err)
}

func TestGetOverviewCachesResponse(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		placement: analytics.PlacementTotals{TotalPlaced: 10, TotalEligible: 20},
	}
	cache := newFakeCache()
	h := NewGetOverviewHandler(repo, cache, testLogger())

	first, err := h.Handle(context.Background(), analytics.Filter{Phases: []string{"JPT"}})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	callsAfterFirst := repo.calls
	second, err := h.Handle(context.Background(), analytics.Filter{Phases: []string{"JPT"}})
	require.NoError(t, err)

	// The second request is served from cache without touching the repo.
	assert.Equal(t, callsAfterFirst, repo.calls)
	assert.Equal(t, first.CoreMetrics, second.CoreMetrics)
}

func TestCacheKeyDistinguishesFilters(t *testing.T) {
	a := cacheKey("overview", analytics.Filter{Cohorts: []string{"C-1"}})
	b := cacheKey("overview", analytics.Filter{Programs: []string{"C-1"}})
	c := cacheKey("tutor", analytics.Filter{Cohorts: []string{"C-1"}})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, cacheKey("overview", analytics.Filter{Cohorts: []string{"C-1"}}))
}
