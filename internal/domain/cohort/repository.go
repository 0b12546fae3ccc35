package cohort

import "context"

// Listing page bounds. Handlers echo the clamped values back to the
// client, so storage and transport must agree on them.
const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ClampLimit returns the effective page size for a requested limit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// ClampOffset returns the effective offset. Negative values mean 0.
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// ListFilter holds the optional equality filters of the cohort listing.
// Zero values impose no restriction.
type ListFilter struct {
	Year    int
	Program string
	Phase   string
	Limit   int
	Offset  int
}

// Stats bundles a cohort with its per-cohort summary rows. Absent summaries
// are nil, not errors.
type Stats struct {
	Cohort    *Cohort              `json:"cohort"`
	Placement *PlacementSummary    `json:"placement"`
	Tutor     *TutorCohortSummary  `json:"tutor"`
	Mentor    *MentorCohortSummary `json:"mentor"`
	Jpt       *JptCohortSummary    `json:"jpt"`
}

// Repository is the storage contract for cohort records.
type Repository interface {
	// List returns cohorts matching the filter, ordered by year descending,
	// then program, then cohort_id.
	List(ctx context.Context, f ListFilter) ([]Cohort, error)

	// GetByID returns the cohort with the given business key, or
	// shared.ErrCohortNotFound.
	GetByID(ctx context.Context, cohortID string) (*Cohort, error)

	// GetStats returns the cohort and its summary rows. It returns
	// shared.ErrCohortNotFound without touching the summary collections
	// when the cohort itself is unknown.
	GetStats(ctx context.Context, cohortID string) (*Stats, error)
}

// PlacementListFilter holds the optional filters of the placement listing.
type PlacementListFilter struct {
	CohortID string
	Phase    string
	Limit    int
	Offset   int
}

// VisitListFilter holds the optional filters of the company-visit listing.
// Company matches by case-insensitive substring.
type VisitListFilter struct {
	CohortID string
	Phase    string
	Company  string
	Tier     string
	Limit    int
	Offset   int
}

// PlacementRepository is the storage contract for placement listings.
type PlacementRepository interface {
	ListPlacements(ctx context.Context, f PlacementListFilter) ([]PlacementSummary, error)
	ListVisits(ctx context.Context, f VisitListFilter) ([]CompanyVisit, error)
}
