package postgres

import (
	"context"
	"fmt"

	"github.com/spj-hub/placement-analytics/internal/domain/analytics"
)

// AnalyticsRepository implements analytics.Repository on PostgreSQL.
// Every query joins its fact table to cohort_master and applies the
// compiled filter predicate, so all aggregates of one request are scoped
// to the same cohort set.
type AnalyticsRepository struct {
	conn *Connection
}

// NewAnalyticsRepository creates a new PostgreSQL analytics repository.
func NewAnalyticsRepository(conn *Connection) *AnalyticsRepository {
	return &AnalyticsRepository{conn: conn}
}

// Compile-time interface check.
var _ analytics.Repository = (*AnalyticsRepository)(nil)

// ══════════════════════════════════════════════════════════════════════════════
// PLACEMENT AGGREGATES
// ══════════════════════════════════════════════════════════════════════════════

// PlacementTotals returns ungrouped placement aggregates for the filter.
func (r *AnalyticsRepository) PlacementTotals(ctx context.Context, f analytics.Filter) (*analytics.PlacementTotals, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			AVG(pc.avg_package),
			AVG(pc.avg_conversion_per_visit_pct),
			COALESCE(SUM(pc.tier1_offers), 0),
			COALESCE(SUM(pc.offers), 0),
			COALESCE(SUM(pc.placed), 0),
			COALESCE(SUM(pc.eligible), 0)
		FROM placements_cohort pc
		JOIN cohort_master cm ON pc.cohort_id = cm.cohort_id
		%s
	`, p.clause)

	var t analytics.PlacementTotals
	err := r.conn.QueryRow(ctx, query, p.args...).Scan(
		&t.AvgPackage,
		&t.AvgConversionPerVisit,
		&t.TotalTier1Offers,
		&t.TotalOffers,
		&t.TotalPlaced,
		&t.TotalEligible,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query placement totals: %w", err)
	}

	return &t, nil
}

// PlacementPhaseComparison returns placement aggregates grouped by phase,
// ordered by program chronology.
func (r *AnalyticsRepository) PlacementPhaseComparison(ctx context.Context, f analytics.Filter) ([]analytics.PhasePlacementTotals, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			cm.phase,
			AVG(pc.avg_package),
			AVG(pc.avg_conversion_per_visit_pct),
			COALESCE(SUM(pc.tier1_offers), 0),
			COALESCE(SUM(pc.offers), 0),
			COALESCE(SUM(pc.placed), 0),
			COALESCE(SUM(pc.eligible), 0)
		FROM placements_cohort pc
		JOIN cohort_master cm ON pc.cohort_id = cm.cohort_id
		%s
		GROUP BY cm.phase
		ORDER BY %s
	`, p.clause, phaseOrderExpr)

	rows, err := r.conn.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query phase comparison: %w", err)
	}
	defer rows.Close()

	var result []analytics.PhasePlacementTotals
	for rows.Next() {
		var row analytics.PhasePlacementTotals
		if err := rows.Scan(
			&row.Phase,
			&row.AvgPackage,
			&row.AvgConversionPerVisit,
			&row.TotalTier1Offers,
			&row.TotalOffers,
			&row.TotalPlaced,
			&row.TotalEligible,
		); err != nil {
			return nil, fmt.Errorf("failed to scan phase comparison row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// TUTOR AGGREGATES
// ══════════════════════════════════════════════════════════════════════════════

// TutorImpactTotals returns ungrouped tutor pre/post deltas and adoption
// averages.
func (r *AnalyticsRepository) TutorImpactTotals(ctx context.Context, f analytics.Filter) (*analytics.TutorImpactTotals, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			AVG(tcs.posttutor_exam_avg - tcs.pretutor_exam_avg),
			AVG(tcs.posttutor_assignment_avg - tcs.pretutor_assignment_avg),
			AVG(tcs.active_users_pct),
			AVG(tcs.units_adopted_pct)
		FROM tutor_cohort_summary tcs
		JOIN cohort_master cm ON tcs.cohort_id = cm.cohort_id
		%s
	`, p.clause)

	var t analytics.TutorImpactTotals
	err := r.conn.QueryRow(ctx, query, p.args...).Scan(
		&t.ExamImprovement,
		&t.AssignmentImprovement,
		&t.AvgActiveUsers,
		&t.AvgUnitsAdopted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tutor impact totals: %w", err)
	}

	return &t, nil
}

// TutorUsageTotals returns session counts and tutor readiness score
// aggregates across the filtered cohorts.
func (r *AnalyticsRepository) TutorUsageTotals(ctx context.Context, f analytics.Filter) (*analytics.TutorUsageTotals, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			COUNT(DISTINCT ts.unit_code),
			COUNT(ts.session_id),
			AVG(tsu.avg_trs),
			MAX(tsu.highest_trs)
		FROM tutor_sessions ts
		JOIN cohort_master cm ON ts.cohort_id = cm.cohort_id
		LEFT JOIN tutor_session_utilization tsu ON ts.session_id = tsu.session_id
		%s
	`, p.clause)

	var t analytics.TutorUsageTotals
	err := r.conn.QueryRow(ctx, query, p.args...).Scan(
		&t.UnitsWithSessions,
		&t.TotalSessions,
		&t.AvgTRS,
		&t.HighestTRS,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tutor usage totals: %w", err)
	}

	return &t, nil
}

// TutorWeeklyTrends returns tutor adoption aggregates grouped by week.
// Weeks order lexically, which is chronological for the YYYY-Www keys the
// program uses.
func (r *AnalyticsRepository) TutorWeeklyTrends(ctx context.Context, f analytics.Filter) ([]analytics.TutorWeeklyRow, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			tws.week,
			COALESCE(SUM(tws.sessions_created_this_week), 0),
			AVG(tws.overall_utilization_this_week_pct),
			AVG(tws.units_adopted_pct),
			AVG(tws.active_users_pct)
		FROM tutor_weekly_summary tws
		JOIN cohort_master cm ON tws.cohort_id = cm.cohort_id
		%s
		GROUP BY tws.week
		ORDER BY tws.week
	`, p.clause)

	rows, err := r.conn.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tutor weekly trends: %w", err)
	}
	defer rows.Close()

	var result []analytics.TutorWeeklyRow
	for rows.Next() {
		var row analytics.TutorWeeklyRow
		if err := rows.Scan(
			&row.Week,
			&row.SessionsCreated,
			&row.AvgUtilization,
			&row.AvgUnitsAdopted,
			&row.AvgActiveUsers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tutor weekly row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// TutorAcademicByPhase returns pre/post academic averages grouped by phase.
func (r *AnalyticsRepository) TutorAcademicByPhase(ctx context.Context, f analytics.Filter) ([]analytics.TutorAcademicRow, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			cm.phase,
			AVG(tcs.pretutor_exam_avg),
			AVG(tcs.posttutor_exam_avg),
			AVG(tcs.pretutor_assignment_avg),
			AVG(tcs.posttutor_assignment_avg)
		FROM tutor_cohort_summary tcs
		JOIN cohort_master cm ON tcs.cohort_id = cm.cohort_id
		%s
		GROUP BY cm.phase
		ORDER BY %s
	`, p.clause, phaseOrderExpr)

	rows, err := r.conn.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tutor academic performance: %w", err)
	}
	defer rows.Close()

	var result []analytics.TutorAcademicRow
	for rows.Next() {
		var row analytics.TutorAcademicRow
		if err := rows.Scan(
			&row.Phase,
			&row.PreExamAvg,
			&row.PostExamAvg,
			&row.PreAssignmentAvg,
			&row.PostAssignmentAvg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tutor academic row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// MENTOR AGGREGATES
// ══════════════════════════════════════════════════════════════════════════════

// MentorImpactTotals returns ungrouped mentor outcome aggregates.
func (r *AnalyticsRepository) MentorImpactTotals(ctx context.Context, f analytics.Filter) (*analytics.MentorImpactTotals, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			AVG(mc.postmentor_capstone_grade_avg - mc.prementor_capstone_grade_avg),
			AVG(mc.grade_a_distribution_pct_post - mc.grade_a_distribution_pct_pre),
			AVG(mc.postmentor_exam_avg),
			AVG(mc.tier1_offers_share_pct),
			AVG(mc.avg_package_in_phase),
			COALESCE(SUM(mc.higher_degree_attempts), 0),
			COALESCE(SUM(mc.higher_degree_admissions), 0)
		FROM mentor_cohort mc
		JOIN cohort_master cm ON mc.cohort_id = cm.cohort_id
		%s
	`, p.clause)

	var t analytics.MentorImpactTotals
	err := r.conn.QueryRow(ctx, query, p.args...).Scan(
		&t.CapstoneImprovement,
		&t.GradeAImprovement,
		&t.PostExamAvg,
		&t.Tier1OffersShare,
		&t.AvgPackage,
		&t.TotalAttempts,
		&t.TotalAdmissions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentor impact totals: %w", err)
	}

	return &t, nil
}

// MentorHigherDegreeTotals returns the higher-degree funnel. The success
// rate averages per-cohort rates; NULLIF keeps zero-attempt cohorts out of
// the average instead of dividing by zero.
func (r *AnalyticsRepository) MentorHigherDegreeTotals(ctx context.Context, f analytics.Filter) (*analytics.MentorHigherDegreeTotals, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(mc.higher_degree_attempts), 0),
			COALESCE(SUM(mc.higher_degree_admissions), 0),
			AVG(mc.higher_degree_admissions::float / NULLIF(mc.higher_degree_attempts, 0) * 100)
		FROM mentor_cohort mc
		JOIN cohort_master cm ON mc.cohort_id = cm.cohort_id
		%s
	`, p.clause)

	var t analytics.MentorHigherDegreeTotals
	err := r.conn.QueryRow(ctx, query, p.args...).Scan(
		&t.TotalAttempts,
		&t.TotalAdmissions,
		&t.SuccessRate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query higher degree totals: %w", err)
	}

	return &t, nil
}

// MentorPhasePerformance returns mentor aggregates grouped by phase.
func (r *AnalyticsRepository) MentorPhasePerformance(ctx context.Context, f analytics.Filter) ([]analytics.MentorPhaseRow, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			cm.phase,
			AVG(mc.prementor_capstone_grade_avg),
			AVG(mc.postmentor_capstone_grade_avg),
			AVG(mc.grade_a_distribution_pct_pre),
			AVG(mc.grade_a_distribution_pct_post),
			AVG(mc.avg_package_in_phase)
		FROM mentor_cohort mc
		JOIN cohort_master cm ON mc.cohort_id = cm.cohort_id
		%s
		GROUP BY cm.phase
		ORDER BY %s
	`, p.clause, phaseOrderExpr)

	rows, err := r.conn.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentor phase performance: %w", err)
	}
	defer rows.Close()

	var result []analytics.MentorPhaseRow
	for rows.Next() {
		var row analytics.MentorPhaseRow
		if err := rows.Scan(
			&row.Phase,
			&row.PreCapstoneAvg,
			&row.PostCapstoneAvg,
			&row.PreGradeAPct,
			&row.PostGradeAPct,
			&row.AvgPackage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mentor phase row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// JOB PREP TOOL AGGREGATES
// ══════════════════════════════════════════════════════════════════════════════

// JptImpactTotals returns the job-prep-tool aggregates used on the overview.
func (r *AnalyticsRepository) JptImpactTotals(ctx context.Context, f analytics.Filter) (*analytics.JptImpactTotals, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			AVG(jc.avg_ai_technical),
			AVG(jc.avg_ai_communication),
			AVG(jc.avg_ai_confidence),
			AVG(jc.postjpt_conv_rate_per_opening_pct - jc.prejpt_conv_rate_per_opening_pct),
			AVG(jc.avg_package_after - jc.avg_package_before)
		FROM jpt_cohort jc
		JOIN cohort_master cm ON jc.cohort_id = cm.cohort_id
		%s
	`, p.clause)

	var t analytics.JptImpactTotals
	err := r.conn.QueryRow(ctx, query, p.args...).Scan(
		&t.AvgAiTechnical,
		&t.AvgAiCommunication,
		&t.AvgAiConfidence,
		&t.ConversionBoost,
		&t.PackageImprovement,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query jpt impact totals: %w", err)
	}

	return &t, nil
}

// JptPerformanceTotals returns ungrouped job-prep-tool performance
// aggregates.
func (r *AnalyticsRepository) JptPerformanceTotals(ctx context.Context, f analytics.Filter) (*analytics.JptPerformanceTotals, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			AVG(jc.avg_sessions_per_student),
			AVG(jc.avg_ai_technical),
			AVG(jc.avg_ai_communication),
			AVG(jc.avg_ai_confidence),
			AVG(jc.prejpt_conv_rate_per_opening_pct),
			AVG(jc.postjpt_conv_rate_per_opening_pct),
			AVG(jc.conversion_boost_per_opening_pct),
			AVG(jc.avg_package_before),
			AVG(jc.avg_package_after)
		FROM jpt_cohort jc
		JOIN cohort_master cm ON jc.cohort_id = cm.cohort_id
		%s
	`, p.clause)

	var t analytics.JptPerformanceTotals
	err := r.conn.QueryRow(ctx, query, p.args...).Scan(
		&t.AvgSessionsPerStudent,
		&t.AvgAiTechnical,
		&t.AvgAiCommunication,
		&t.AvgAiConfidence,
		&t.PreConvRate,
		&t.PostConvRate,
		&t.ConversionBoost,
		&t.AvgPackageBefore,
		&t.AvgPackageAfter,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query jpt performance totals: %w", err)
	}

	return &t, nil
}

// JptPhaseComparison returns before/after aggregates grouped by phase.
func (r *AnalyticsRepository) JptPhaseComparison(ctx context.Context, f analytics.Filter) ([]analytics.JptPhaseComparisonRow, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			cm.phase,
			AVG(jc.prejpt_conv_rate_per_opening_pct),
			AVG(jc.postjpt_conv_rate_per_opening_pct),
			AVG(jc.avg_package_before),
			AVG(jc.avg_package_after),
			COALESCE(SUM(jc.tier1_offers_before), 0),
			COALESCE(SUM(jc.tier1_offers_after), 0)
		FROM jpt_cohort jc
		JOIN cohort_master cm ON jc.cohort_id = cm.cohort_id
		%s
		GROUP BY cm.phase
		ORDER BY %s
	`, p.clause, phaseOrderExpr)

	rows, err := r.conn.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jpt phase comparison: %w", err)
	}
	defer rows.Close()

	var result []analytics.JptPhaseComparisonRow
	for rows.Next() {
		var row analytics.JptPhaseComparisonRow
		if err := rows.Scan(
			&row.Phase,
			&row.PreConvRate,
			&row.PostConvRate,
			&row.AvgPackageBefore,
			&row.AvgPackageAfter,
			&row.Tier1OffersBefore,
			&row.Tier1OffersAfter,
		); err != nil {
			return nil, fmt.Errorf("failed to scan jpt phase comparison row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// JptUsagePatterns returns usage aggregates grouped by phase.
func (r *AnalyticsRepository) JptUsagePatterns(ctx context.Context, f analytics.Filter) ([]analytics.JptUsageRow, error) {
	p := buildFilterPredicate(f)
	query := fmt.Sprintf(`
		SELECT
			cm.phase,
			AVG(jc.avg_sessions_per_student),
			COALESCE(SUM(jc.total_jpt_sessions), 0),
			AVG(jc.avg_ai_technical),
			AVG(jc.avg_ai_communication),
			AVG(jc.avg_ai_confidence)
		FROM jpt_cohort jc
		JOIN cohort_master cm ON jc.cohort_id = cm.cohort_id
		%s
		GROUP BY cm.phase
		ORDER BY %s
	`, p.clause, phaseOrderExpr)

	rows, err := r.conn.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jpt usage patterns: %w", err)
	}
	defer rows.Close()

	var result []analytics.JptUsageRow
	for rows.Next() {
		var row analytics.JptUsageRow
		if err := rows.Scan(
			&row.Phase,
			&row.AvgSessionsPerStudent,
			&row.TotalSessions,
			&row.AvgAiTechnical,
			&row.AvgAiCommunication,
			&row.AvgAiConfidence,
		); err != nil {
			return nil, fmt.Errorf("failed to scan jpt usage row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
