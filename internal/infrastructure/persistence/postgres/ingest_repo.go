package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/spj-hub/placement-analytics/internal/domain/ingest"
	"github.com/spj-hub/placement-analytics/internal/domain/shared"
)

// IngestRepository implements ingest.Writer on PostgreSQL. Each row is a
// standalone INSERT so one bad row never aborts the batch; ON CONFLICT
// DO NOTHING absorbs re-uploads of already-ingested rows.
type IngestRepository struct {
	conn *Connection
}

// NewIngestRepository creates a new PostgreSQL ingest repository.
func NewIngestRepository(conn *Connection) *IngestRepository {
	return &IngestRepository{conn: conn}
}

var _ ingest.Writer = (*IngestRepository)(nil)

// InsertRow persists one coerced row into the target table. It returns
// inserted=false with a nil error when the row's business key already
// exists. A foreign key violation surfaces as a validation error so the
// pipeline can record the row as skipped with a meaningful reason.
func (r *IngestRepository) InsertRow(ctx context.Context, target ingest.Target, columns []string, values []any) (bool, error) {
	if len(columns) == 0 || len(columns) != len(values) {
		return false, shared.NewDomainError("ingest", "insert_row", shared.ErrInvalidInput,
			"column and value counts must match and be non-empty")
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		target.Name,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	tag, err := r.conn.Exec(ctx, query, values...)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return false, shared.NewDomainError("ingest", "insert_row", shared.ErrValidation,
				"row references an unknown cohort")
		}
		return false, fmt.Errorf("failed to insert row into %s: %w", target.Name, err)
	}

	return tag.RowsAffected() > 0, nil
}
