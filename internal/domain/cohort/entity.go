// Package cohort contains the persisted record collections of the placement
// program. A Cohort is the root entity; every other collection references it
// by cohort_id. Rows are created exclusively through the ingestion pipeline
// (or manual seeding) and are never updated or deleted by the read side.
package cohort

import "time"

// Cohort is one admitted group of students, tagged with an AI-adoption phase.
type Cohort struct {
	ID        int64     `json:"id"`
	CohortID  string    `json:"cohort_id"`
	Year      int       `json:"year"`
	Program   string    `json:"program"`
	BatchSize int       `json:"batch_size"`
	Phase     string    `json:"phase"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyVisit records one recruiting event for a cohort.
type CompanyVisit struct {
	ID                 int64     `json:"id"`
	CohortID           string    `json:"cohort_id"`
	Phase              string    `json:"phase"`
	CompanyName        string    `json:"company_name"`
	VisitDate          time.Time `json:"visit_date"`
	RoleTitle          string    `json:"role_title"`
	RoleFamily         string    `json:"role_family"`
	Tier               string    `json:"tier"`
	Sector             string    `json:"sector"`
	Geography          string    `json:"geography"`
	IsRepeatRecruiter  bool      `json:"is_repeat_recruiter"`
	OpeningsAnnounced  int       `json:"openings_announced"`
	ApplicantsAttended int       `json:"applicants_attended"`
	InterviewSlots     int       `json:"interview_slots"`
	Shortlisted        int       `json:"shortlisted"`
	OffersIssued       int       `json:"offers_issued"`
	JoinedCount        int       `json:"joined_count"`
}

// PlacementSummary is the per-cohort placement rollup. Percentage fields
// store already-computed percentages in the 0-100 range, not fractions.
type PlacementSummary struct {
	ID                       int64   `json:"id"`
	CohortID                 string  `json:"cohort_id"`
	Phase                    string  `json:"phase"`
	Eligible                 int     `json:"eligible"`
	Applied                  int     `json:"applied"`
	Shortlisted              int     `json:"shortlisted"`
	Offers                   int     `json:"offers"`
	Placed                   int     `json:"placed"`
	AvgPackage               float64 `json:"avg_package"`
	MedianPackage            float64 `json:"median_package"`
	HighestPackage           float64 `json:"highest_package"`
	Tier1Offers              int     `json:"tier1_offers"`
	Tier2Offers              int     `json:"tier2_offers"`
	StartupOffers            int     `json:"startup_offers"`
	PsuOffers                int     `json:"psu_offers"`
	TechRoleSharePct         float64 `json:"tech_role_share_pct"`
	FinanceRoleSharePct      float64 `json:"finance_role_share_pct"`
	ConsultingRoleSharePct   float64 `json:"consulting_role_share_pct"`
	OtherRoleSharePct        float64 `json:"other_role_share_pct"`
	AvgConversionPerVisitPct float64 `json:"avg_conversion_per_visit_pct"`
	AvgOpeningsPerVisit      float64 `json:"avg_openings_per_visit"`
}

// TutorSession is one AI-tutor session definition within a unit.
type TutorSession struct {
	ID            int64  `json:"id"`
	CohortID      string `json:"cohort_id"`
	Phase         string `json:"phase"`
	UnitCode      string `json:"unit_code"`
	UnitName      string `json:"unit_name"`
	SessionID     string `json:"session_id"`
	SessionType   string `json:"session_type"`
	CreatedWeek   string `json:"created_week"`
	AssignedCount int    `json:"assigned_count"`
}

// TutorSessionUtilization is the weekly utilization of one tutor session.
// Its session_id must reference an existing TutorSession.
type TutorSessionUtilization struct {
	ID             int64   `json:"id"`
	CohortID       string  `json:"cohort_id"`
	Phase          string  `json:"phase"`
	SessionID      string  `json:"session_id"`
	Week           string  `json:"week"`
	StartedCount   int     `json:"started_count"`
	CompletedCount int     `json:"completed_count"`
	AvgTRS         float64 `json:"avg_trs"`
	HighestTRS     float64 `json:"highest_trs"`
}

// TutorWeeklySummary is the per-week tutor adoption rollup of a cohort.
type TutorWeeklySummary struct {
	ID                            int64   `json:"id"`
	CohortID                      string  `json:"cohort_id"`
	Phase                         string  `json:"phase"`
	Week                          string  `json:"week"`
	SessionsCreatedThisWeek       int     `json:"sessions_created_this_week"`
	OverallUtilizationThisWeekPct float64 `json:"overall_utilization_this_week_pct"`
	UnitsWithSessionsCount        int     `json:"units_with_sessions_count"`
	UnitsAdoptedPct               float64 `json:"units_adopted_pct"`
	ActiveUsersPct                float64 `json:"active_users_pct"`
	AvgSessionsPerStudent         float64 `json:"avg_sessions_per_student"`
}

// TutorCohortSummary is the cohort-level tutor rollup with pre/post
// academic performance.
type TutorCohortSummary struct {
	ID                     int64   `json:"id"`
	CohortID               string  `json:"cohort_id"`
	Phase                  string  `json:"phase"`
	ActiveUsersPct         float64 `json:"active_users_pct"`
	UnitsWithSessionsCount int     `json:"units_with_sessions_count"`
	UnitsAdoptedPct        float64 `json:"units_adopted_pct"`
	AvgSessionsPerStudent  float64 `json:"avg_sessions_per_student"`
	PretutorExamAvg        float64 `json:"pretutor_exam_avg"`
	PosttutorExamAvg       float64 `json:"posttutor_exam_avg"`
	PretutorAssignmentAvg  float64 `json:"pretutor_assignment_avg"`
	PosttutorAssignmentAvg float64 `json:"posttutor_assignment_avg"`
	PassPercentage         float64 `json:"pass_percentage"`
}

// MentorCohortSummary is the per-cohort AI-mentor outcome rollup.
type MentorCohortSummary struct {
	ID                         int64   `json:"id"`
	CohortID                   string  `json:"cohort_id"`
	Phase                      string  `json:"phase"`
	PrementorCapstoneGradeAvg  float64 `json:"prementor_capstone_grade_avg"`
	PostmentorCapstoneGradeAvg float64 `json:"postmentor_capstone_grade_avg"`
	GradeADistributionPctPre   float64 `json:"grade_a_distribution_pct_pre"`
	GradeADistributionPctPost  float64 `json:"grade_a_distribution_pct_post"`
	HigherDegreeAttempts       int     `json:"higher_degree_attempts"`
	HigherDegreeAdmissions     int     `json:"higher_degree_admissions"`
	PostmentorExamAvg          float64 `json:"postmentor_exam_avg"`
	Tier1OffersSharePct        float64 `json:"tier1_offers_share_pct"`
	AvgPackageInPhase          float64 `json:"avg_package_in_phase"`
}

// JptCohortSummary is the per-cohort job-prep-tool outcome rollup.
type JptCohortSummary struct {
	ID                           int64   `json:"id"`
	CohortID                     string  `json:"cohort_id"`
	Phase                        string  `json:"phase"`
	TotalJptSessions             int     `json:"total_jpt_sessions"`
	AvgSessionsPerStudent        float64 `json:"avg_sessions_per_student"`
	AvgAiConfidence              float64 `json:"avg_ai_confidence"`
	AvgAiCommunication           float64 `json:"avg_ai_communication"`
	AvgAiTechnical               float64 `json:"avg_ai_technical"`
	PrejptConvRatePerOpeningPct  float64 `json:"prejpt_conv_rate_per_opening_pct"`
	PostjptConvRatePerOpeningPct float64 `json:"postjpt_conv_rate_per_opening_pct"`
	ConversionBoostPerOpeningPct float64 `json:"conversion_boost_per_opening_pct"`
	Tier1OffersBefore            int     `json:"tier1_offers_before"`
	Tier1OffersAfter             int     `json:"tier1_offers_after"`
	AvgPackageBefore             float64 `json:"avg_package_before"`
	AvgPackageAfter              float64 `json:"avg_package_after"`
}
