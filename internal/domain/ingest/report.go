package ingest

import (
	"context"
	"fmt"
	"strings"
)

// Report summarizes one completed ingestion. SkippedRows always equals
// TotalRows minus InsertedRows: duplicate business keys and row-level
// failures both land there.
type Report struct {
	Target       string `json:"tableName"`
	TotalRows    int    `json:"totalRows"`
	InsertedRows int    `json:"insertedRows"`
	SkippedRows  int    `json:"skippedRows"`
	Warnings     string `json:"warnings,omitempty"`
}

// ExtraColumnWarning formats the non-fatal warning for unrecognized columns.
func ExtraColumnWarning(extra []string) string {
	if len(extra) == 0 {
		return ""
	}
	return fmt.Sprintf("Extra columns ignored: %s", strings.Join(extra, ", "))
}

// Writer is the storage contract for the coerce-and-insert stage. One call
// persists one row; a duplicate business key reports inserted=false with a
// nil error.
type Writer interface {
	InsertRow(ctx context.Context, target Target, columns []string, values []any) (inserted bool, err error)
}
