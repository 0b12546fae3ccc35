// Package query implements the read-side use cases of the dashboard: the
// four filtered analytics views, cohort listings, and cohort stats. Each
// handler fans its repository calls out concurrently, derives the
// presentation metrics, and caches the assembled response best-effort.
package query

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spj-hub/placement-analytics/internal/domain/analytics"
	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// Cache is the response cache contract. Both methods are best-effort from
// the handler's point of view: a failed Get recomputes, a failed Set is
// only logged.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// cacheTTL bounds response staleness if invalidation is ever missed.
const cacheTTL = 5 * time.Minute

// cacheKey derives a deterministic key from the view name and filter.
func cacheKey(view string, f analytics.Filter) string {
	parts := []string{
		"analytics:" + view,
		strings.Join(f.Cohorts, ","),
		strings.Join(f.Programs, ","),
		strings.Join(f.Phases, ","),
	}
	return strings.Join(parts, "|")
}

// cachedFetch serves dest from cache when possible, otherwise computes it
// and stores the result. Cache failures never fail the request.
func cachedFetch[T any](ctx context.Context, cache Cache, log *logger.Logger, key string, compute func() (*T, error)) (*T, error) {
	if cache != nil {
		var cached T
		if err := cache.GetJSON(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := compute()
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.SetJSON(ctx, key, result, cacheTTL); err != nil {
			log.Debug("failed to cache response", logger.String("key", key), logger.Err(err))
		}
	}

	return result, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// OVERVIEW
// ══════════════════════════════════════════════════════════════════════════════

// CoreMetrics are the headline placement numbers of the overview.
type CoreMetrics struct {
	JobConversionRate  float64 `json:"jobConversionRate"`
	AvgPackage         float64 `json:"avgPackage"`
	Tier1Share         float64 `json:"tier1Share"`
	ConversionPerVisit float64 `json:"conversionPerVisit"`
}

// AiToolPerformance summarizes the impact of each AI tool on the overview.
type AiToolPerformance struct {
	TutorExamImprovement      float64 `json:"tutorExamImprovement"`
	MentorCapstoneImprovement float64 `json:"mentorCapstoneImprovement"`
	JptTechnicalScore         float64 `json:"jptTechnicalScore"`
	JptConversionBoost        float64 `json:"jptConversionBoost"`
	HigherDegreeSuccessRate   float64 `json:"higherDegreeSuccessRate"`
}

// PhaseComparisonEntry compares placement outcomes across program phases.
type PhaseComparisonEntry struct {
	Phase              string  `json:"phase"`
	AvgPackage         float64 `json:"avgPackage"`
	ConversionPerVisit float64 `json:"conversionPerVisit"`
	Tier1Share         float64 `json:"tier1Share"`
	JobConversionRate  float64 `json:"jobConversionRate"`
}

// OverviewResult is the assembled overview response.
type OverviewResult struct {
	CoreMetrics       CoreMetrics            `json:"coreMetrics"`
	AiToolPerformance AiToolPerformance      `json:"aiToolPerformance"`
	PhaseComparison   []PhaseComparisonEntry `json:"phaseComparison"`
}

// GetOverviewHandler assembles the cross-tool overview.
type GetOverviewHandler struct {
	repo  analytics.Repository
	cache Cache
	log   *logger.Logger
}

// NewGetOverviewHandler creates a new overview handler.
func NewGetOverviewHandler(repo analytics.Repository, cache Cache, log *logger.Logger) *GetOverviewHandler {
	return &GetOverviewHandler{
		repo:  repo,
		cache: cache,
		log:   log.With(logger.Component("get_overview")),
	}
}

// Handle computes the overview for the filter. The five aggregate queries
// run concurrently; one failure fails the whole request rather than
// serving a partially consistent view.
func (h *GetOverviewHandler) Handle(ctx context.Context, f analytics.Filter) (*OverviewResult, error) {
	return cachedFetch(ctx, h.cache, h.log, cacheKey("overview", f), func() (*OverviewResult, error) {
		var (
			placement  *analytics.PlacementTotals
			tutor      *analytics.TutorImpactTotals
			mentor     *analytics.MentorImpactTotals
			jpt        *analytics.JptImpactTotals
			comparison []analytics.PhasePlacementTotals
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			placement, err = h.repo.PlacementTotals(gctx, f)
			return err
		})
		g.Go(func() (err error) {
			tutor, err = h.repo.TutorImpactTotals(gctx, f)
			return err
		})
		g.Go(func() (err error) {
			mentor, err = h.repo.MentorImpactTotals(gctx, f)
			return err
		})
		g.Go(func() (err error) {
			jpt, err = h.repo.JptImpactTotals(gctx, f)
			return err
		})
		g.Go(func() (err error) {
			comparison, err = h.repo.PlacementPhaseComparison(gctx, f)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		result := &OverviewResult{
			CoreMetrics: CoreMetrics{
				JobConversionRate:  analytics.Round2(analytics.Ratio(float64(placement.TotalPlaced), float64(placement.TotalEligible))),
				AvgPackage:         analytics.Round2(analytics.Coalesce(placement.AvgPackage)),
				Tier1Share:         analytics.Round2(analytics.Ratio(float64(placement.TotalTier1Offers), float64(placement.TotalOffers))),
				ConversionPerVisit: analytics.Round2(analytics.Coalesce(placement.AvgConversionPerVisit)),
			},
			AiToolPerformance: AiToolPerformance{
				TutorExamImprovement:      analytics.Round2(analytics.Coalesce(tutor.ExamImprovement)),
				MentorCapstoneImprovement: analytics.Round2(analytics.Coalesce(mentor.CapstoneImprovement)),
				JptTechnicalScore:         analytics.Round2(analytics.Coalesce(jpt.AvgAiTechnical)),
				JptConversionBoost:        analytics.Round2(analytics.Coalesce(jpt.ConversionBoost)),
				HigherDegreeSuccessRate:   analytics.Round2(analytics.Ratio(float64(mentor.TotalAdmissions), float64(mentor.TotalAttempts))),
			},
			PhaseComparison: make([]PhaseComparisonEntry, 0, len(comparison)),
		}

		for _, row := range comparison {
			result.PhaseComparison = append(result.PhaseComparison, PhaseComparisonEntry{
				Phase:              row.Phase,
				AvgPackage:         analytics.Round2(analytics.Coalesce(row.AvgPackage)),
				ConversionPerVisit: analytics.Round2(analytics.Coalesce(row.AvgConversionPerVisit)),
				Tier1Share:         analytics.Round2(analytics.Ratio(float64(row.TotalTier1Offers), float64(row.TotalOffers))),
				JobConversionRate:  analytics.Round2(analytics.Ratio(float64(row.TotalPlaced), float64(row.TotalEligible))),
			})
		}

		return result, nil
	})
}
