package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spj-hub/placement-analytics/internal/domain/ingest"
	"github.com/spj-hub/placement-analytics/internal/domain/shared"
	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// fakeWriter records inserts and scripts per-row outcomes.
type fakeWriter struct {
	inserts  [][]any
	outcomes []insertOutcome
}

type insertOutcome struct {
	inserted bool
	err      error
}

func (w *fakeWriter) InsertRow(_ context.Context, _ ingest.Target, _ []string, values []any) (bool, error) {
	idx := len(w.inserts)
	w.inserts = append(w.inserts, values)
	if idx < len(w.outcomes) {
		return w.outcomes[idx].inserted, w.outcomes[idx].err
	}
	return true, nil
}

type fakeInvalidator struct {
	calls    int
	prefixes []string
}

func (f *fakeInvalidator) InvalidatePrefix(_ context.Context, prefix string) error {
	f.calls++
	f.prefixes = append(f.prefixes, prefix)
	return nil
}

func staticParser(table *ingest.Table, err error) Parser {
	return func(string) (*ingest.Table, error) { return table, err }
}

func spoolFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: os.Stderr, Level: logger.LevelError})
}

func cohortTable(rows ...ingest.Row) *ingest.Table {
	return &ingest.Table{
		Columns: []string{"cohort_id", "year", "program", "batch_size", "phase"},
		Rows:    rows,
	}
}

func TestHandleIngestsAllRows(t *testing.T) {
	writer := &fakeWriter{}
	inv := &fakeInvalidator{}
	table := cohortTable(
		ingest.Row{"cohort_id": "C-1", "year": "2022", "program": "MBA", "batch_size": "120", "phase": "Pre-AI"},
		ingest.Row{"cohort_id": "C-2", "year": "2023", "program": "MBA", "batch_size": "130", "phase": "Yoodli"},
	)
	h := NewIngestUploadHandler(writer, staticParser(table, nil), inv, "analytics:", testLogger())

	path := spoolFile(t)
	report, err := h.Handle(context.Background(), "cohort_master", path)
	require.NoError(t, err)

	assert.Equal(t, "cohort_master", report.Target)
	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 2, report.InsertedRows)
	assert.Equal(t, 0, report.SkippedRows)
	assert.Empty(t, report.Warnings)

	// Values arrive coerced in schema order.
	require.Len(t, writer.inserts, 2)
	assert.Equal(t, "C-1", writer.inserts[0][0])
	assert.Equal(t, int64(2022), writer.inserts[0][1])

	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, []string{"analytics:"}, inv.prefixes)
	assert.NoFileExists(t, path)
}

func TestHandleUnknownTarget(t *testing.T) {
	h := NewIngestUploadHandler(&fakeWriter{}, staticParser(nil, nil), nil, "analytics:", testLogger())

	path := spoolFile(t)
	_, err := h.Handle(context.Background(), "students", path)
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.NoFileExists(t, path)
}

func TestHandleParseFailure(t *testing.T) {
	parseErr := shared.NewDomainError("tabular", "parse", shared.ErrEmptyInput, "file has no data rows")
	h := NewIngestUploadHandler(&fakeWriter{}, staticParser(nil, parseErr), nil, "analytics:", testLogger())

	path := spoolFile(t)
	_, err := h.Handle(context.Background(), "cohort_master", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrEmptyInput))
	assert.NoFileExists(t, path)
}

func TestHandleColumnMismatch(t *testing.T) {
	table := &ingest.Table{
		Columns: []string{"cohort_id", "year", "extra"},
		Rows:    []ingest.Row{{"cohort_id": "C-1"}},
	}
	h := NewIngestUploadHandler(&fakeWriter{}, staticParser(table, nil), nil, "analytics:", testLogger())

	path := spoolFile(t)
	_, err := h.Handle(context.Background(), "cohort_master", path)
	require.Error(t, err)

	var colErr *ColumnValidationError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, []string{"program", "batch_size", "phase"}, colErr.MissingColumns)
	assert.Equal(t, []string{"extra"}, colErr.ExtraColumns)
	assert.True(t, shared.IsValidation(err))
	assert.NoFileExists(t, path)
}

func TestHandleExtraColumnsWarnOnly(t *testing.T) {
	table := &ingest.Table{
		Columns: []string{"cohort_id", "year", "program", "batch_size", "phase", "notes"},
		Rows: []ingest.Row{
			{"cohort_id": "C-1", "year": "2022", "program": "MBA", "batch_size": "120", "phase": "Pre-AI", "notes": "x"},
		},
	}
	h := NewIngestUploadHandler(&fakeWriter{}, staticParser(table, nil), nil, "analytics:", testLogger())

	report, err := h.Handle(context.Background(), "cohort_master", spoolFile(t))
	require.NoError(t, err)
	assert.Equal(t, 1, report.InsertedRows)
	assert.Equal(t, "Extra columns ignored: notes", report.Warnings)
}

func TestHandleDuplicateRowsSkipped(t *testing.T) {
	writer := &fakeWriter{outcomes: []insertOutcome{
		{inserted: true},
		{inserted: false}, // duplicate business key
	}}
	inv := &fakeInvalidator{}
	table := cohortTable(
		ingest.Row{"cohort_id": "C-1", "year": "2022", "program": "MBA", "batch_size": "120", "phase": "Pre-AI"},
		ingest.Row{"cohort_id": "C-1", "year": "2022", "program": "MBA", "batch_size": "120", "phase": "Pre-AI"},
	)
	h := NewIngestUploadHandler(writer, staticParser(table, nil), inv, "analytics:", testLogger())

	report, err := h.Handle(context.Background(), "cohort_master", spoolFile(t))
	require.NoError(t, err)
	assert.Equal(t, 1, report.InsertedRows)
	assert.Equal(t, 1, report.SkippedRows)
	assert.Equal(t, 1, inv.calls)
}

func TestHandleUncoercibleRowSkipped(t *testing.T) {
	writer := &fakeWriter{}
	table := &ingest.Table{
		Columns: ingest.TargetCompanyVisits.RequiredColumns,
		Rows: []ingest.Row{
			{"cohort_id": "C-1", "visit_date": "not a date"},
			{"cohort_id": "C-1", "visit_date": "2024-03-15", "company_name": "Acme"},
		},
	}
	h := NewIngestUploadHandler(writer, staticParser(table, nil), nil, "analytics:", testLogger())

	report, err := h.Handle(context.Background(), "company_visits", spoolFile(t))
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 1, report.InsertedRows)
	assert.Equal(t, 1, report.SkippedRows)
	assert.Len(t, writer.inserts, 1)
}

func TestHandleRowValidationErrorSkipped(t *testing.T) {
	rejected := shared.NewDomainError("ingest", "insert_row", shared.ErrValidation,
		"row references an unknown cohort")
	writer := &fakeWriter{outcomes: []insertOutcome{
		{err: rejected},
		{inserted: true},
	}}
	table := cohortTable(
		ingest.Row{"cohort_id": "C-404", "year": "2022", "program": "MBA", "batch_size": "120", "phase": "Pre-AI"},
		ingest.Row{"cohort_id": "C-1", "year": "2023", "program": "MBA", "batch_size": "130", "phase": "Yoodli"},
	)
	h := NewIngestUploadHandler(writer, staticParser(table, nil), nil, "analytics:", testLogger())

	report, err := h.Handle(context.Background(), "cohort_master", spoolFile(t))
	require.NoError(t, err)
	assert.Equal(t, 1, report.InsertedRows)
	assert.Equal(t, 1, report.SkippedRows)
}

func TestHandleStorageFailureAborts(t *testing.T) {
	boom := errors.New("connection reset")
	writer := &fakeWriter{outcomes: []insertOutcome{{err: boom}}}
	inv := &fakeInvalidator{}
	table := cohortTable(
		ingest.Row{"cohort_id": "C-1", "year": "2022", "program": "MBA", "batch_size": "120", "phase": "Pre-AI"},
	)
	h := NewIngestUploadHandler(writer, staticParser(table, nil), inv, "analytics:", testLogger())

	path := spoolFile(t)
	_, err := h.Handle(context.Background(), "cohort_master", path)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, inv.calls)
	assert.NoFileExists(t, path)
}

func TestHandleNoInsertsSkipsInvalidation(t *testing.T) {
	writer := &fakeWriter{outcomes: []insertOutcome{{inserted: false}}}
	inv := &fakeInvalidator{}
	table := cohortTable(
		ingest.Row{"cohort_id": "C-1", "year": "2022", "program": "MBA", "batch_size": "120", "phase": "Pre-AI"},
	)
	h := NewIngestUploadHandler(writer, staticParser(table, nil), inv, "analytics:", testLogger())

	report, err := h.Handle(context.Background(), "cohort_master", spoolFile(t))
	require.NoError(t, err)
	assert.Equal(t, 0, report.InsertedRows)
	assert.Equal(t, 0, inv.calls)
}

func TestHandleNilInvalidator(t *testing.T) {
	table := cohortTable(
		ingest.Row{"cohort_id": "C-1", "year": "2022", "program": "MBA", "batch_size": "120", "phase": "Pre-AI"},
	)
	h := NewIngestUploadHandler(&fakeWriter{}, staticParser(table, nil), nil, "analytics:", testLogger())

	report, err := h.Handle(context.Background(), "cohort_master", spoolFile(t))
	require.NoError(t, err)
	assert.Equal(t, 1, report.InsertedRows)
}
