package query

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spj-hub/placement-analytics/internal/domain/analytics"
	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// MentorImpact summarizes mentor outcome deltas across the filter.
type MentorImpact struct {
	CapstoneImprovement float64 `json:"capstoneImprovement"`
	GradeAImprovement   float64 `json:"gradeAImprovement"`
	PostExamAvg         float64 `json:"postExamAvg"`
	Tier1OffersShare    float64 `json:"tier1OffersShare"`
	AvgPackage          float64 `json:"avgPackage"`
}

// HigherDegree is the higher-degree application funnel.
type HigherDegree struct {
	TotalAttempts   int64   `json:"totalAttempts"`
	TotalAdmissions int64   `json:"totalAdmissions"`
	SuccessRate     float64 `json:"successRate"`
}

// MentorPhaseEntry compares mentor outcomes for one phase.
type MentorPhaseEntry struct {
	Phase           string  `json:"phase"`
	PreCapstoneAvg  float64 `json:"preCapstoneAvg"`
	PostCapstoneAvg float64 `json:"postCapstoneAvg"`
	PreGradeAPct    float64 `json:"preGradeAPct"`
	PostGradeAPct   float64 `json:"postGradeAPct"`
	AvgPackage      float64 `json:"avgPackage"`
}

// MentorAnalyticsResult is the assembled mentor view.
type MentorAnalyticsResult struct {
	Impact           MentorImpact       `json:"impact"`
	HigherDegree     HigherDegree       `json:"higherDegree"`
	PhasePerformance []MentorPhaseEntry `json:"phasePerformance"`
}

// GetMentorAnalyticsHandler assembles the AI-mentor view.
type GetMentorAnalyticsHandler struct {
	repo  analytics.Repository
	cache Cache
	log   *logger.Logger
}

// NewGetMentorAnalyticsHandler creates a new mentor analytics handler.
func NewGetMentorAnalyticsHandler(repo analytics.Repository, cache Cache, log *logger.Logger) *GetMentorAnalyticsHandler {
	return &GetMentorAnalyticsHandler{
		repo:  repo,
		cache: cache,
		log:   log.With(logger.Component("get_mentor_analytics")),
	}
}

// Handle computes the mentor view for the filter.
func (h *GetMentorAnalyticsHandler) Handle(ctx context.Context, f analytics.Filter) (*MentorAnalyticsResult, error) {
	return cachedFetch(ctx, h.cache, h.log, cacheKey("mentor", f), func() (*MentorAnalyticsResult, error) {
		var (
			impact       *analytics.MentorImpactTotals
			higherDegree *analytics.MentorHigherDegreeTotals
			phases       []analytics.MentorPhaseRow
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			impact, err = h.repo.MentorImpactTotals(gctx, f)
			return err
		})
		g.Go(func() (err error) {
			higherDegree, err = h.repo.MentorHigherDegreeTotals(gctx, f)
			return err
		})
		g.Go(func() (err error) {
			phases, err = h.repo.MentorPhasePerformance(gctx, f)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		result := &MentorAnalyticsResult{
			Impact: MentorImpact{
				CapstoneImprovement: analytics.Round2(analytics.Coalesce(impact.CapstoneImprovement)),
				GradeAImprovement:   analytics.Round2(analytics.Coalesce(impact.GradeAImprovement)),
				PostExamAvg:         analytics.Round2(analytics.Coalesce(impact.PostExamAvg)),
				Tier1OffersShare:    analytics.Round2(analytics.Coalesce(impact.Tier1OffersShare)),
				AvgPackage:          analytics.Round2(analytics.Coalesce(impact.AvgPackage)),
			},
			HigherDegree: HigherDegree{
				TotalAttempts:   higherDegree.TotalAttempts,
				TotalAdmissions: higherDegree.TotalAdmissions,
				SuccessRate:     analytics.Round2(analytics.Coalesce(higherDegree.SuccessRate)),
			},
			PhasePerformance: make([]MentorPhaseEntry, 0, len(phases)),
		}

		for _, row := range phases {
			result.PhasePerformance = append(result.PhasePerformance, MentorPhaseEntry{
				Phase:           row.Phase,
				PreCapstoneAvg:  analytics.Round2(analytics.Coalesce(row.PreCapstoneAvg)),
				PostCapstoneAvg: analytics.Round2(analytics.Coalesce(row.PostCapstoneAvg)),
				PreGradeAPct:    analytics.Round2(analytics.Coalesce(row.PreGradeAPct)),
				PostGradeAPct:   analytics.Round2(analytics.Coalesce(row.PostGradeAPct)),
				AvgPackage:      analytics.Round2(analytics.Coalesce(row.AvgPackage)),
			})
		}

		return result, nil
	})
}
