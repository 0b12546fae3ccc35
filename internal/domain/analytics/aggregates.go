package analytics

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// RAW AGGREGATES
// Row shapes returned by the storage layer. Averages are nullable: an
// aggregate over zero rows yields NULL, which the service coalesces to 0
// before rounding.
// ══════════════════════════════════════════════════════════════════════════════

// PlacementTotals holds ungrouped placement aggregates.
type PlacementTotals struct {
	AvgPackage            *float64
	AvgConversionPerVisit *float64
	TotalTier1Offers      int64
	TotalOffers           int64
	TotalPlaced           int64
	TotalEligible         int64
}

// PhasePlacementTotals holds placement aggregates for one phase group.
type PhasePlacementTotals struct {
	Phase string
	PlacementTotals
}

// TutorImpactTotals holds ungrouped tutor aggregates for the overview.
type TutorImpactTotals struct {
	ExamImprovement       *float64
	AssignmentImprovement *float64
	AvgActiveUsers        *float64
	AvgUnitsAdopted       *float64
}

// MentorImpactTotals holds ungrouped mentor aggregates.
type MentorImpactTotals struct {
	CapstoneImprovement *float64
	GradeAImprovement   *float64
	PostExamAvg         *float64
	Tier1OffersShare    *float64
	AvgPackage          *float64
	TotalAttempts       int64
	TotalAdmissions     int64
}

// MentorHigherDegreeTotals holds the higher-degree funnel aggregates.
type MentorHigherDegreeTotals struct {
	TotalAttempts   int64
	TotalAdmissions int64
	SuccessRate     *float64
}

// MentorPhaseRow holds mentor aggregates for one phase group.
type MentorPhaseRow struct {
	Phase           string
	PreCapstoneAvg  *float64
	PostCapstoneAvg *float64
	PreGradeAPct    *float64
	PostGradeAPct   *float64
	AvgPackage      *float64
}

// JptImpactTotals holds ungrouped job-prep-tool aggregates for the overview.
type JptImpactTotals struct {
	AvgAiTechnical     *float64
	AvgAiCommunication *float64
	AvgAiConfidence    *float64
	ConversionBoost    *float64
	PackageImprovement *float64
}

// JptPerformanceTotals holds ungrouped job-prep-tool aggregates.
type JptPerformanceTotals struct {
	AvgSessionsPerStudent *float64
	AvgAiTechnical        *float64
	AvgAiCommunication    *float64
	AvgAiConfidence       *float64
	PreConvRate           *float64
	PostConvRate          *float64
	ConversionBoost       *float64
	AvgPackageBefore      *float64
	AvgPackageAfter       *float64
}

// JptPhaseComparisonRow holds before/after aggregates for one phase group.
type JptPhaseComparisonRow struct {
	Phase             string
	PreConvRate       *float64
	PostConvRate      *float64
	AvgPackageBefore  *float64
	AvgPackageAfter   *float64
	Tier1OffersBefore int64
	Tier1OffersAfter  int64
}

// JptUsageRow holds usage-pattern aggregates for one phase group.
type JptUsageRow struct {
	Phase                 string
	AvgSessionsPerStudent *float64
	TotalSessions         int64
	AvgAiTechnical        *float64
	AvgAiCommunication    *float64
	AvgAiConfidence       *float64
}

// TutorUsageTotals holds ungrouped tutor usage aggregates.
type TutorUsageTotals struct {
	UnitsWithSessions int64
	TotalSessions     int64
	AvgTRS            *float64
	HighestTRS        *float64
}

// TutorWeeklyRow holds tutor aggregates for one week group. Week keys are
// opaque text ordered lexically, which is chronological for the
// "YYYY-Www" convention the program uses.
type TutorWeeklyRow struct {
	Week            string
	SessionsCreated int64
	AvgUtilization  *float64
	AvgUnitsAdopted *float64
	AvgActiveUsers  *float64
}

// TutorAcademicRow holds pre/post academic aggregates for one phase group.
type TutorAcademicRow struct {
	Phase             string
	PreExamAvg        *float64
	PostExamAvg       *float64
	PreAssignmentAvg  *float64
	PostAssignmentAvg *float64
}

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// Repository is the read-side storage contract for filtered aggregation.
// Every method scopes its aggregates to the cohorts matched by the filter;
// implementations must apply the same predicate to every query issued for
// one request.
type Repository interface {
	PlacementTotals(ctx context.Context, f Filter) (*PlacementTotals, error)
	PlacementPhaseComparison(ctx context.Context, f Filter) ([]PhasePlacementTotals, error)

	TutorImpactTotals(ctx context.Context, f Filter) (*TutorImpactTotals, error)
	TutorUsageTotals(ctx context.Context, f Filter) (*TutorUsageTotals, error)
	TutorWeeklyTrends(ctx context.Context, f Filter) ([]TutorWeeklyRow, error)
	TutorAcademicByPhase(ctx context.Context, f Filter) ([]TutorAcademicRow, error)

	MentorImpactTotals(ctx context.Context, f Filter) (*MentorImpactTotals, error)
	MentorHigherDegreeTotals(ctx context.Context, f Filter) (*MentorHigherDegreeTotals, error)
	MentorPhasePerformance(ctx context.Context, f Filter) ([]MentorPhaseRow, error)

	JptImpactTotals(ctx context.Context, f Filter) (*JptImpactTotals, error)
	JptPerformanceTotals(ctx context.Context, f Filter) (*JptPerformanceTotals, error)
	JptPhaseComparison(ctx context.Context, f Filter) ([]JptPhaseComparisonRow, error)
	JptUsagePatterns(ctx context.Context, f Filter) ([]JptUsageRow, error)
}
