package query

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spj-hub/placement-analytics/internal/domain/analytics"
	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// TutorUsage summarizes tutor session volume and readiness scores.
type TutorUsage struct {
	UnitsWithSessions int64   `json:"unitsWithSessions"`
	TotalSessions     int64   `json:"totalSessions"`
	AvgTrs            float64 `json:"avgTrs"`
	HighestTrs        float64 `json:"highestTrs"`
}

// TutorWeeklyTrend is one week of tutor adoption aggregates.
type TutorWeeklyTrend struct {
	Week            string  `json:"week"`
	SessionsCreated int64   `json:"sessionsCreated"`
	AvgUtilization  float64 `json:"avgUtilization"`
	AvgUnitsAdopted float64 `json:"avgUnitsAdopted"`
	AvgActiveUsers  float64 `json:"avgActiveUsers"`
}

// TutorAcademicEntry compares pre/post tutor academics for one phase.
type TutorAcademicEntry struct {
	Phase             string  `json:"phase"`
	PreExamAvg        float64 `json:"preExamAvg"`
	PostExamAvg       float64 `json:"postExamAvg"`
	PreAssignmentAvg  float64 `json:"preAssignmentAvg"`
	PostAssignmentAvg float64 `json:"postAssignmentAvg"`
}

// TutorAnalyticsResult is the assembled tutor view.
type TutorAnalyticsResult struct {
	Usage               TutorUsage           `json:"usage"`
	WeeklyTrends        []TutorWeeklyTrend   `json:"weeklyTrends"`
	AcademicPerformance []TutorAcademicEntry `json:"academicPerformance"`
}

// GetTutorAnalyticsHandler assembles the AI-tutor view.
type GetTutorAnalyticsHandler struct {
	repo  analytics.Repository
	cache Cache
	log   *logger.Logger
}

// NewGetTutorAnalyticsHandler creates a new tutor analytics handler.
func NewGetTutorAnalyticsHandler(repo analytics.Repository, cache Cache, log *logger.Logger) *GetTutorAnalyticsHandler {
	return &GetTutorAnalyticsHandler{
		repo:  repo,
		cache: cache,
		log:   log.With(logger.Component("get_tutor_analytics")),
	}
}

// Handle computes the tutor view for the filter.
func (h *GetTutorAnalyticsHandler) Handle(ctx context.Context, f analytics.Filter) (*TutorAnalyticsResult, error) {
	return cachedFetch(ctx, h.cache, h.log, cacheKey("tutor", f), func() (*TutorAnalyticsResult, error) {
		var (
			usage    *analytics.TutorUsageTotals
			weekly   []analytics.TutorWeeklyRow
			academic []analytics.TutorAcademicRow
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			usage, err = h.repo.TutorUsageTotals(gctx, f)
			return err
		})
		g.Go(func() (err error) {
			weekly, err = h.repo.TutorWeeklyTrends(gctx, f)
			return err
		})
		g.Go(func() (err error) {
			academic, err = h.repo.TutorAcademicByPhase(gctx, f)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		result := &TutorAnalyticsResult{
			Usage: TutorUsage{
				UnitsWithSessions: usage.UnitsWithSessions,
				TotalSessions:     usage.TotalSessions,
				AvgTrs:            analytics.Round2(analytics.Coalesce(usage.AvgTRS)),
				HighestTrs:        analytics.Round2(analytics.Coalesce(usage.HighestTRS)),
			},
			WeeklyTrends:        make([]TutorWeeklyTrend, 0, len(weekly)),
			AcademicPerformance: make([]TutorAcademicEntry, 0, len(academic)),
		}

		for _, row := range weekly {
			result.WeeklyTrends = append(result.WeeklyTrends, TutorWeeklyTrend{
				Week:            row.Week,
				SessionsCreated: row.SessionsCreated,
				AvgUtilization:  analytics.Round2(analytics.Coalesce(row.AvgUtilization)),
				AvgUnitsAdopted: analytics.Round2(analytics.Coalesce(row.AvgUnitsAdopted)),
				AvgActiveUsers:  analytics.Round2(analytics.Coalesce(row.AvgActiveUsers)),
			})
		}

		for _, row := range academic {
			result.AcademicPerformance = append(result.AcademicPerformance, TutorAcademicEntry{
				Phase:             row.Phase,
				PreExamAvg:        analytics.Round2(analytics.Coalesce(row.PreExamAvg)),
				PostExamAvg:       analytics.Round2(analytics.Coalesce(row.PostExamAvg)),
				PreAssignmentAvg:  analytics.Round2(analytics.Coalesce(row.PreAssignmentAvg)),
				PostAssignmentAvg: analytics.Round2(analytics.Coalesce(row.PostAssignmentAvg)),
			})
		}

		return result, nil
	})
}
