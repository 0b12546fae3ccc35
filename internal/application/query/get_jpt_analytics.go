package query

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spj-hub/placement-analytics/internal/domain/analytics"
	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// JptPerformance summarizes interview-prep scores and conversion rates.
type JptPerformance struct {
	AvgSessionsPerStudent float64 `json:"avgSessionsPerStudent"`
	AvgAiTechnical        float64 `json:"avgAiTechnical"`
	AvgAiCommunication    float64 `json:"avgAiCommunication"`
	AvgAiConfidence       float64 `json:"avgAiConfidence"`
	PreConvRate           float64 `json:"preConvRate"`
	PostConvRate          float64 `json:"postConvRate"`
	ConversionBoost       float64 `json:"conversionBoost"`
	PackageImprovement    float64 `json:"packageImprovement"`
}

// JptComparisonEntry compares before/after outcomes for one phase.
type JptComparisonEntry struct {
	Phase             string  `json:"phase"`
	PreConvRate       float64 `json:"preConvRate"`
	PostConvRate      float64 `json:"postConvRate"`
	AvgPackageBefore  float64 `json:"avgPackageBefore"`
	AvgPackageAfter   float64 `json:"avgPackageAfter"`
	Tier1OffersBefore int64   `json:"tier1OffersBefore"`
	Tier1OffersAfter  int64   `json:"tier1OffersAfter"`
}

// JptUsageEntry is one phase of usage-pattern aggregates.
type JptUsageEntry struct {
	Phase                 string  `json:"phase"`
	AvgSessionsPerStudent float64 `json:"avgSessionsPerStudent"`
	TotalSessions         int64   `json:"totalSessions"`
	AvgAiTechnical        float64 `json:"avgAiTechnical"`
	AvgAiCommunication    float64 `json:"avgAiCommunication"`
	AvgAiConfidence       float64 `json:"avgAiConfidence"`
}

// JptAnalyticsResult is the assembled job-prep-tool view.
type JptAnalyticsResult struct {
	Performance           JptPerformance       `json:"performance"`
	BeforeAfterComparison []JptComparisonEntry `json:"beforeAfterComparison"`
	UsagePatterns         []JptUsageEntry      `json:"usagePatterns"`
}

// GetJptAnalyticsHandler assembles the job-prep-tool view.
type GetJptAnalyticsHandler struct {
	repo  analytics.Repository
	cache Cache
	log   *logger.Logger
}

// NewGetJptAnalyticsHandler creates a new jpt analytics handler.
func NewGetJptAnalyticsHandler(repo analytics.Repository, cache Cache, log *logger.Logger) *GetJptAnalyticsHandler {
	return &GetJptAnalyticsHandler{
		repo:  repo,
		cache: cache,
		log:   log.With(logger.Component("get_jpt_analytics")),
	}
}

// Handle computes the job-prep-tool view for the filter. The headline
// package improvement is the difference of the two filtered averages, not
// an average of per-cohort differences.
func (h *GetJptAnalyticsHandler) Handle(ctx context.Context, f analytics.Filter) (*JptAnalyticsResult, error) {
	return cachedFetch(ctx, h.cache, h.log, cacheKey("jpt", f), func() (*JptAnalyticsResult, error) {
		var (
			performance *analytics.JptPerformanceTotals
			comparison  []analytics.JptPhaseComparisonRow
			usage       []analytics.JptUsageRow
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			performance, err = h.repo.JptPerformanceTotals(gctx, f)
			return err
		})
		g.Go(func() (err error) {
			comparison, err = h.repo.JptPhaseComparison(gctx, f)
			return err
		})
		g.Go(func() (err error) {
			usage, err = h.repo.JptUsagePatterns(gctx, f)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		packageImprovement := analytics.Coalesce(performance.AvgPackageAfter) - analytics.Coalesce(performance.AvgPackageBefore)

		result := &JptAnalyticsResult{
			Performance: JptPerformance{
				AvgSessionsPerStudent: analytics.Round2(analytics.Coalesce(performance.AvgSessionsPerStudent)),
				AvgAiTechnical:        analytics.Round2(analytics.Coalesce(performance.AvgAiTechnical)),
				AvgAiCommunication:    analytics.Round2(analytics.Coalesce(performance.AvgAiCommunication)),
				AvgAiConfidence:       analytics.Round2(analytics.Coalesce(performance.AvgAiConfidence)),
				PreConvRate:           analytics.Round2(analytics.Coalesce(performance.PreConvRate)),
				PostConvRate:          analytics.Round2(analytics.Coalesce(performance.PostConvRate)),
				ConversionBoost:       analytics.Round2(analytics.Coalesce(performance.ConversionBoost)),
				PackageImprovement:    analytics.Round2(packageImprovement),
			},
			BeforeAfterComparison: make([]JptComparisonEntry, 0, len(comparison)),
			UsagePatterns:         make([]JptUsageEntry, 0, len(usage)),
		}

		for _, row := range comparison {
			result.BeforeAfterComparison = append(result.BeforeAfterComparison, JptComparisonEntry{
				Phase:             row.Phase,
				PreConvRate:       analytics.Round2(analytics.Coalesce(row.PreConvRate)),
				PostConvRate:      analytics.Round2(analytics.Coalesce(row.PostConvRate)),
				AvgPackageBefore:  analytics.Round2(analytics.Coalesce(row.AvgPackageBefore)),
				AvgPackageAfter:   analytics.Round2(analytics.Coalesce(row.AvgPackageAfter)),
				Tier1OffersBefore: row.Tier1OffersBefore,
				Tier1OffersAfter:  row.Tier1OffersAfter,
			})
		}

		for _, row := range usage {
			result.UsagePatterns = append(result.UsagePatterns, JptUsageEntry{
				Phase:                 row.Phase,
				AvgSessionsPerStudent: analytics.Round2(analytics.Coalesce(row.AvgSessionsPerStudent)),
				TotalSessions:         row.TotalSessions,
				AvgAiTechnical:        analytics.Round2(analytics.Coalesce(row.AvgAiTechnical)),
				AvgAiCommunication:    analytics.Round2(analytics.Coalesce(row.AvgAiCommunication)),
				AvgAiConfidence:       analytics.Round2(analytics.Coalesce(row.AvgAiConfidence)),
			})
		}

		return result, nil
	})
}
