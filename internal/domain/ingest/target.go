// Package ingest contains the domain model of the tabular upload pipeline:
// the closed set of upload targets with their required column schemas, the
// cell coercion policy, and the ingestion report types.
package ingest

// Target identifies one of the record collections a file may be uploaded
// into. The set of targets is a closed enumeration; unknown names are
// rejected before any parsing work is done against the schema.
type Target struct {
	// Name is the collection name used in the upload URL and as the
	// destination table.
	Name string

	// RequiredColumns lists the columns an uploaded file must provide,
	// in template order.
	RequiredColumns []string
}

// The nine upload targets. Column lists mirror the storage schema minus
// the generated surrogate key and timestamps.
var (
	TargetCohortMaster = Target{
		Name:            "cohort_master",
		RequiredColumns: []string{"cohort_id", "year", "program", "batch_size", "phase"},
	}

	TargetCompanyVisits = Target{
		Name: "company_visits",
		RequiredColumns: []string{
			"cohort_id", "phase", "company_name", "visit_date", "role_title",
			"role_family", "tier", "sector", "geography", "is_repeat_recruiter",
			"openings_announced", "applicants_attended", "interview_slots",
			"shortlisted", "offers_issued", "joined_count",
		},
	}

	TargetPlacementsCohort = Target{
		Name: "placements_cohort",
		RequiredColumns: []string{
			"cohort_id", "phase", "eligible", "applied", "shortlisted", "offers",
			"placed", "avg_package", "median_package", "highest_package",
			"tier1_offers", "tier2_offers", "startup_offers", "psu_offers",
			"tech_role_share_pct", "finance_role_share_pct",
			"consulting_role_share_pct", "other_role_share_pct",
			"avg_conversion_per_visit_pct", "avg_openings_per_visit",
		},
	}

	TargetJptCohort = Target{
		Name: "jpt_cohort",
		RequiredColumns: []string{
			"cohort_id", "phase", "total_jpt_sessions", "avg_sessions_per_student",
			"avg_ai_confidence", "avg_ai_communication", "avg_ai_technical",
			"prejpt_conv_rate_per_opening_pct", "postjpt_conv_rate_per_opening_pct",
			"conversion_boost_per_opening_pct", "tier1_offers_before",
			"tier1_offers_after", "avg_package_before", "avg_package_after",
		},
	}

	TargetTutorSessions = Target{
		Name: "tutor_sessions",
		RequiredColumns: []string{
			"cohort_id", "phase", "unit_code", "unit_name", "session_id",
			"session_type", "created_week", "assigned_count",
		},
	}

	TargetTutorSessionUtilization = Target{
		Name: "tutor_session_utilization",
		RequiredColumns: []string{
			"cohort_id", "phase", "session_id", "week", "started_count",
			"completed_count", "avg_trs", "highest_trs",
		},
	}

	TargetTutorWeeklySummary = Target{
		Name: "tutor_weekly_summary",
		RequiredColumns: []string{
			"cohort_id", "phase", "week", "sessions_created_this_week",
			"overall_utilization_this_week_pct", "units_with_sessions_count",
			"units_adopted_pct", "active_users_pct", "avg_sessions_per_student",
		},
	}

	TargetTutorCohortSummary = Target{
		Name: "tutor_cohort_summary",
		RequiredColumns: []string{
			"cohort_id", "phase", "active_users_pct", "units_with_sessions_count",
			"units_adopted_pct", "avg_sessions_per_student", "pretutor_exam_avg",
			"posttutor_exam_avg", "pretutor_assignment_avg",
			"posttutor_assignment_avg", "pass_percentage",
		},
	}

	TargetMentorCohort = Target{
		Name: "mentor_cohort",
		RequiredColumns: []string{
			"cohort_id", "phase", "prementor_capstone_grade_avg",
			"postmentor_capstone_grade_avg", "grade_a_distribution_pct_pre",
			"grade_a_distribution_pct_post", "higher_degree_attempts",
			"higher_degree_admissions", "postmentor_exam_avg",
			"tier1_offers_share_pct", "avg_package_in_phase",
		},
	}
)

// AllTargets lists every upload target.
var AllTargets = []Target{
	TargetCohortMaster,
	TargetCompanyVisits,
	TargetPlacementsCohort,
	TargetJptCohort,
	TargetTutorSessions,
	TargetTutorSessionUtilization,
	TargetTutorWeeklySummary,
	TargetTutorCohortSummary,
	TargetMentorCohort,
}

// TargetByName looks up a target by its collection name.
func TargetByName(name string) (Target, bool) {
	for _, t := range AllTargets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// Validation reports the outcome of checking a parsed file's column set
// against a target's required columns.
type Validation struct {
	// Valid is true when no required column is missing.
	Valid bool

	// MissingColumns lists required columns absent from the file, in
	// schema order.
	MissingColumns []string

	// ExtraColumns lists present-but-unrecognized columns, in file order.
	// Extra columns are a warning, not a rejection.
	ExtraColumns []string
}

// Validate checks the parsed column set against the target's schema. Only
// the header matters here; per-cell problems surface later as row-level
// failures.
func (t Target) Validate(columns []string) Validation {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	required := make(map[string]bool, len(t.RequiredColumns))
	for _, c := range t.RequiredColumns {
		required[c] = true
	}

	var v Validation
	for _, c := range t.RequiredColumns {
		if !present[c] {
			v.MissingColumns = append(v.MissingColumns, c)
		}
	}
	for _, c := range columns {
		if !required[c] {
			v.ExtraColumns = append(v.ExtraColumns, c)
		}
	}
	v.Valid = len(v.MissingColumns) == 0
	return v
}
