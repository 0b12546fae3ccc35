package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/spj-hub/placement-analytics/internal/domain/cohort"
	"github.com/spj-hub/placement-analytics/internal/domain/shared"
)

// CohortRepository implements cohort.Repository and
// cohort.PlacementRepository on PostgreSQL.
type CohortRepository struct {
	conn *Connection
}

// NewCohortRepository creates a new PostgreSQL cohort repository.
func NewCohortRepository(conn *Connection) *CohortRepository {
	return &CohortRepository{conn: conn}
}

var (
	_ cohort.Repository          = (*CohortRepository)(nil)
	_ cohort.PlacementRepository = (*CohortRepository)(nil)
)

// List returns cohorts matching the filter, newest year first.
func (r *CohortRepository) List(ctx context.Context, f cohort.ListFilter) ([]cohort.Cohort, error) {
	var conditions []string
	var args []any

	if f.Year != 0 {
		args = append(args, f.Year)
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)))
	}
	if f.Program != "" {
		args = append(args, f.Program)
		conditions = append(conditions, fmt.Sprintf("program = $%d", len(args)))
	}
	if f.Phase != "" {
		args = append(args, f.Phase)
		conditions = append(conditions, fmt.Sprintf("phase = $%d", len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, cohort.ClampLimit(f.Limit))
	limitPos := len(args)
	args = append(args, cohort.ClampOffset(f.Offset))
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT id, cohort_id, year, program, batch_size, phase, created_at, updated_at
		FROM cohort_master
		%s
		ORDER BY year DESC, program, cohort_id
		LIMIT $%d OFFSET $%d
	`, whereClause, limitPos, offsetPos)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cohorts: %w", err)
	}
	defer rows.Close()

	var result []cohort.Cohort
	for rows.Next() {
		var c cohort.Cohort
		if err := rows.Scan(
			&c.ID, &c.CohortID, &c.Year, &c.Program,
			&c.BatchSize, &c.Phase, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cohort row: %w", err)
		}
		result = append(result, c)
	}

	return result, rows.Err()
}

// GetByID returns the cohort with the given business key.
func (r *CohortRepository) GetByID(ctx context.Context, cohortID string) (*cohort.Cohort, error) {
	query := `
		SELECT id, cohort_id, year, program, batch_size, phase, created_at, updated_at
		FROM cohort_master
		WHERE cohort_id = $1
	`

	var c cohort.Cohort
	err := r.conn.QueryRow(ctx, query, cohortID).Scan(
		&c.ID, &c.CohortID, &c.Year, &c.Program,
		&c.BatchSize, &c.Phase, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrCohortNotFound
		}
		return nil, fmt.Errorf("failed to get cohort: %w", err)
	}

	return &c, nil
}

// GetStats returns the cohort with its per-tool summary rows. A missing
// summary row stays nil; only a missing cohort is an error.
func (r *CohortRepository) GetStats(ctx context.Context, cohortID string) (*cohort.Stats, error) {
	c, err := r.GetByID(ctx, cohortID)
	if err != nil {
		return nil, err
	}

	stats := &cohort.Stats{Cohort: c}

	if stats.Placement, err = r.placementSummary(ctx, cohortID); err != nil {
		return nil, err
	}
	if stats.Tutor, err = r.tutorSummary(ctx, cohortID); err != nil {
		return nil, err
	}
	if stats.Mentor, err = r.mentorSummary(ctx, cohortID); err != nil {
		return nil, err
	}
	if stats.Jpt, err = r.jptSummary(ctx, cohortID); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *CohortRepository) placementSummary(ctx context.Context, cohortID string) (*cohort.PlacementSummary, error) {
	query := `
		SELECT id, cohort_id, phase, eligible, applied, shortlisted, offers, placed,
			avg_package, median_package, highest_package,
			tier1_offers, tier2_offers, startup_offers, psu_offers,
			tech_role_share_pct, finance_role_share_pct, consulting_role_share_pct,
			other_role_share_pct, avg_conversion_per_visit_pct, avg_openings_per_visit
		FROM placements_cohort
		WHERE cohort_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var s cohort.PlacementSummary
	err := r.conn.QueryRow(ctx, query, cohortID).Scan(
		&s.ID, &s.CohortID, &s.Phase, &s.Eligible, &s.Applied, &s.Shortlisted,
		&s.Offers, &s.Placed, &s.AvgPackage, &s.MedianPackage, &s.HighestPackage,
		&s.Tier1Offers, &s.Tier2Offers, &s.StartupOffers, &s.PsuOffers,
		&s.TechRoleSharePct, &s.FinanceRoleSharePct, &s.ConsultingRoleSharePct,
		&s.OtherRoleSharePct, &s.AvgConversionPerVisitPct, &s.AvgOpeningsPerVisit,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get placement summary: %w", err)
	}

	return &s, nil
}

func (r *CohortRepository) tutorSummary(ctx context.Context, cohortID string) (*cohort.TutorCohortSummary, error) {
	query := `
		SELECT id, cohort_id, phase, active_users_pct, units_with_sessions_count,
			units_adopted_pct, avg_sessions_per_student,
			pretutor_exam_avg, posttutor_exam_avg,
			pretutor_assignment_avg, posttutor_assignment_avg, pass_percentage
		FROM tutor_cohort_summary
		WHERE cohort_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var s cohort.TutorCohortSummary
	err := r.conn.QueryRow(ctx, query, cohortID).Scan(
		&s.ID, &s.CohortID, &s.Phase, &s.ActiveUsersPct, &s.UnitsWithSessionsCount,
		&s.UnitsAdoptedPct, &s.AvgSessionsPerStudent,
		&s.PretutorExamAvg, &s.PosttutorExamAvg,
		&s.PretutorAssignmentAvg, &s.PosttutorAssignmentAvg, &s.PassPercentage,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tutor summary: %w", err)
	}

	return &s, nil
}

func (r *CohortRepository) mentorSummary(ctx context.Context, cohortID string) (*cohort.MentorCohortSummary, error) {
	query := `
		SELECT id, cohort_id, phase, prementor_capstone_grade_avg,
			postmentor_capstone_grade_avg, grade_a_distribution_pct_pre,
			grade_a_distribution_pct_post, higher_degree_attempts,
			higher_degree_admissions, postmentor_exam_avg,
			tier1_offers_share_pct, avg_package_in_phase
		FROM mentor_cohort
		WHERE cohort_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var s cohort.MentorCohortSummary
	err := r.conn.QueryRow(ctx, query, cohortID).Scan(
		&s.ID, &s.CohortID, &s.Phase, &s.PrementorCapstoneGradeAvg,
		&s.PostmentorCapstoneGradeAvg, &s.GradeADistributionPctPre,
		&s.GradeADistributionPctPost, &s.HigherDegreeAttempts,
		&s.HigherDegreeAdmissions, &s.PostmentorExamAvg,
		&s.Tier1OffersSharePct, &s.AvgPackageInPhase,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mentor summary: %w", err)
	}

	return &s, nil
}

func (r *CohortRepository) jptSummary(ctx context.Context, cohortID string) (*cohort.JptCohortSummary, error) {
	query := `
		SELECT id, cohort_id, phase, total_jpt_sessions, avg_sessions_per_student,
			avg_ai_confidence, avg_ai_communication, avg_ai_technical,
			prejpt_conv_rate_per_opening_pct, postjpt_conv_rate_per_opening_pct,
			conversion_boost_per_opening_pct, tier1_offers_before,
			tier1_offers_after, avg_package_before, avg_package_after
		FROM jpt_cohort
		WHERE cohort_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var s cohort.JptCohortSummary
	err := r.conn.QueryRow(ctx, query, cohortID).Scan(
		&s.ID, &s.CohortID, &s.Phase, &s.TotalJptSessions, &s.AvgSessionsPerStudent,
		&s.AvgAiConfidence, &s.AvgAiCommunication, &s.AvgAiTechnical,
		&s.PrejptConvRatePerOpeningPct, &s.PostjptConvRatePerOpeningPct,
		&s.ConversionBoostPerOpeningPct, &s.Tier1OffersBefore,
		&s.Tier1OffersAfter, &s.AvgPackageBefore, &s.AvgPackageAfter,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get jpt summary: %w", err)
	}

	return &s, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LISTINGS
// ══════════════════════════════════════════════════════════════════════════════

// ListPlacements returns placement summary rows matching the filter.
func (r *CohortRepository) ListPlacements(ctx context.Context, f cohort.PlacementListFilter) ([]cohort.PlacementSummary, error) {
	var conditions []string
	var args []any

	if f.CohortID != "" {
		args = append(args, f.CohortID)
		conditions = append(conditions, fmt.Sprintf("cohort_id = $%d", len(args)))
	}
	if f.Phase != "" {
		args = append(args, f.Phase)
		conditions = append(conditions, fmt.Sprintf("phase = $%d", len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, cohort.ClampLimit(f.Limit))
	limitPos := len(args)
	args = append(args, cohort.ClampOffset(f.Offset))
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT id, cohort_id, phase, eligible, applied, shortlisted, offers, placed,
			avg_package, median_package, highest_package,
			tier1_offers, tier2_offers, startup_offers, psu_offers,
			tech_role_share_pct, finance_role_share_pct, consulting_role_share_pct,
			other_role_share_pct, avg_conversion_per_visit_pct, avg_openings_per_visit
		FROM placements_cohort
		%s
		ORDER BY cohort_id, phase
		LIMIT $%d OFFSET $%d
	`, whereClause, limitPos, offsetPos)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list placements: %w", err)
	}
	defer rows.Close()

	var result []cohort.PlacementSummary
	for rows.Next() {
		var s cohort.PlacementSummary
		if err := rows.Scan(
			&s.ID, &s.CohortID, &s.Phase, &s.Eligible, &s.Applied, &s.Shortlisted,
			&s.Offers, &s.Placed, &s.AvgPackage, &s.MedianPackage, &s.HighestPackage,
			&s.Tier1Offers, &s.Tier2Offers, &s.StartupOffers, &s.PsuOffers,
			&s.TechRoleSharePct, &s.FinanceRoleSharePct, &s.ConsultingRoleSharePct,
			&s.OtherRoleSharePct, &s.AvgConversionPerVisitPct, &s.AvgOpeningsPerVisit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan placement row: %w", err)
		}
		result = append(result, s)
	}

	return result, rows.Err()
}

// ListVisits returns company visit rows matching the filter, newest visit
// first. Company matches by case-insensitive substring.
func (r *CohortRepository) ListVisits(ctx context.Context, f cohort.VisitListFilter) ([]cohort.CompanyVisit, error) {
	var conditions []string
	var args []any

	if f.CohortID != "" {
		args = append(args, f.CohortID)
		conditions = append(conditions, fmt.Sprintf("cohort_id = $%d", len(args)))
	}
	if f.Phase != "" {
		args = append(args, f.Phase)
		conditions = append(conditions, fmt.Sprintf("phase = $%d", len(args)))
	}
	if f.Company != "" {
		args = append(args, "%"+f.Company+"%")
		conditions = append(conditions, fmt.Sprintf("company_name ILIKE $%d", len(args)))
	}
	if f.Tier != "" {
		args = append(args, f.Tier)
		conditions = append(conditions, fmt.Sprintf("tier = $%d", len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, cohort.ClampLimit(f.Limit))
	limitPos := len(args)
	args = append(args, cohort.ClampOffset(f.Offset))
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT id, cohort_id, phase, company_name, visit_date, role_title,
			role_family, tier, sector, geography, is_repeat_recruiter,
			openings_announced, applicants_attended, interview_slots,
			shortlisted, offers_issued, joined_count
		FROM company_visits
		%s
		ORDER BY visit_date DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, limitPos, offsetPos)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list company visits: %w", err)
	}
	defer rows.Close()

	var result []cohort.CompanyVisit
	for rows.Next() {
		var v cohort.CompanyVisit
		if err := rows.Scan(
			&v.ID, &v.CohortID, &v.Phase, &v.CompanyName, &v.VisitDate, &v.RoleTitle,
			&v.RoleFamily, &v.Tier, &v.Sector, &v.Geography, &v.IsRepeatRecruiter,
			&v.OpeningsAnnounced, &v.ApplicantsAttended, &v.InterviewSlots,
			&v.Shortlisted, &v.OffersIssued, &v.JoinedCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan company visit row: %w", err)
		}
		result = append(result, v)
	}

	return result, rows.Err()
}
