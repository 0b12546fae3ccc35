package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spj-hub/placement-analytics/internal/domain/analytics"
)

func TestGetJptPackageImprovement(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		jptPerf: analytics.JptPerformanceTotals{
			AvgPackageBefore: ptr(12.4),
			AvgPackageAfter:  ptr(15.15),
			ConversionBoost:  ptr(2.345),
		},
	}
	h := NewGetJptAnalyticsHandler(repo, nil, testLogger())

	result, err := h.Handle(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	// Difference of the two filtered averages, rounded at the end.
	assert.Equal(t, 2.75, result.Performance.PackageImprovement)
	assert.Equal(t, 2.35, result.Performance.ConversionBoost)
}

func TestGetJptMissingAveragesAreZero(t *testing.T) {
	h := NewGetJptAnalyticsHandler(&fakeAnalyticsRepo{}, nil, testLogger())

	result, err := h.Handle(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Performance.PackageImprovement)
	assert.NotNil(t, result.BeforeAfterComparison)
	assert.NotNil(t, result.UsagePatterns)
}

func TestGetJptPhaseRows(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		jptPhases: []analytics.JptPhaseComparisonRow{
			{Phase: "JPT", PreConvRate: ptr(8.0), PostConvRate: ptr(11.5), Tier1OffersBefore: 5, Tier1OffersAfter: 12},
		},
		jptUsage: []analytics.JptUsageRow{
			{Phase: "JPT", AvgSessionsPerStudent: ptr(3.456), TotalSessions: 310},
		},
	}
	h := NewGetJptAnalyticsHandler(repo, nil, testLogger())

	result, err := h.Handle(context.Background(), analytics.Filter{Phases: []string{"JPT"}})
	require.NoError(t, err)

	require.Len(t, result.BeforeAfterComparison, 1)
	assert.Equal(t, 11.5, result.BeforeAfterComparison[0].PostConvRate)
	assert.Equal(t, int64(12), result.BeforeAfterComparison[0].Tier1OffersAfter)

	require.Len(t, result.UsagePatterns, 1)
	assert.Equal(t, 3.46, result.UsagePatterns[0].AvgSessionsPerStudent)
	assert.Equal(t, int64(310), result.UsagePatterns[0].TotalSessions)
}

func TestGetTutorAnalytics(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		tutorUsage: analytics.TutorUsageTotals{
			UnitsWithSessions: 14,
			TotalSessions:     420,
			AvgTRS:            ptr(71.234),
			HighestTRS:        ptr(96.0),
		},
		tutorWeekly: []analytics.TutorWeeklyRow{
			{Week: "2024-W01", SessionsCreated: 30, AvgUtilization: ptr(55.5)},
			{Week: "2024-W02", SessionsCreated: 42, AvgUtilization: ptr(61.25)},
		},
		tutorPhases: []analytics.TutorAcademicRow{
			{Phase: "Yoodli", PreExamAvg: ptr(61.0), PostExamAvg: ptr(67.8)},
		},
	}
	h := NewGetTutorAnalyticsHandler(repo, nil, testLogger())

	result, err := h.Handle(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	assert.Equal(t, int64(14), result.Usage.UnitsWithSessions)
	assert.Equal(t, 71.23, result.Usage.AvgTrs)

	require.Len(t, result.WeeklyTrends, 2)
	assert.Equal(t, "2024-W01", result.WeeklyTrends[0].Week)
	assert.Equal(t, 61.25, result.WeeklyTrends[1].AvgUtilization)

	require.Len(t, result.AcademicPerformance, 1)
	assert.Equal(t, 67.8, result.AcademicPerformance[0].PostExamAvg)
}

func TestGetMentorAnalytics(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		mentorImpact: analytics.MentorImpactTotals{
			CapstoneImprovement: ptr(0.755),
			Tier1OffersShare:    ptr(28.4),
		},
		mentorDegree: analytics.MentorHigherDegreeTotals{
			TotalAttempts:   40,
			TotalAdmissions: 25,
			SuccessRate:     ptr(62.513),
		},
		mentorPhases: []analytics.MentorPhaseRow{
			{Phase: "Yoodli", PreCapstoneAvg: ptr(6.9), PostCapstoneAvg: ptr(7.6)},
		},
	}
	h := NewGetMentorAnalyticsHandler(repo, nil, testLogger())

	result, err := h.Handle(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 0.76, result.Impact.CapstoneImprovement)
	assert.Equal(t, int64(40), result.HigherDegree.TotalAttempts)
	assert.Equal(t, 62.51, result.HigherDegree.SuccessRate)

	require.Len(t, result.PhasePerformance, 1)
	assert.Equal(t, 7.6, result.PhasePerformance[0].PostCapstoneAvg)
}
