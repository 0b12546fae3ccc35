package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spj-hub/placement-analytics/internal/domain/shared"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCSV(t *testing.T) {
	path := writeTempCSV(t,
		"cohort_id,year,program,batch_size,phase\n"+
			"C-2022-A,2022,MBA,120,Pre-AI\n"+
			"C-2023-B,2023,MBA,130,Yoodli\n")

	table, err := ParseCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"cohort_id", "year", "program", "batch_size", "phase"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "C-2022-A", table.Rows[0]["cohort_id"])
	assert.Equal(t, "Yoodli", table.Rows[1]["phase"])
}

func TestParseCSVNormalizesHeader(t *testing.T) {
	// BOM, mixed case, and padding are all things spreadsheet exports do.
	path := writeTempCSV(t, "\uFEFFCohort_ID, YEAR ,Program\nC-1,2024,MBA\n")

	table, err := ParseCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"cohort_id", "year", "program"}, table.Columns)
	assert.Equal(t, "C-1", table.Rows[0]["cohort_id"])
}

func TestParseCSVShortRecordLeavesCellsAbsent(t *testing.T) {
	path := writeTempCSV(t, "cohort_id,year,program\nC-1,2024,MBA\n")

	table, err := ParseCSV(path)
	require.NoError(t, err)

	row := table.Rows[0]
	_, hasProgram := row["program"]
	assert.True(t, hasProgram)
	assert.Equal(t, "MBA", row["program"])
}

func TestParseCSVEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	_, err := ParseCSV(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrEmptyInput))
}

func TestParseCSVHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "cohort_id,year,program\n")

	_, err := ParseCSV(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrEmptyInput))
}

func TestParseCSVMissingFile(t *testing.T) {
	_, err := ParseCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestParseDispatchesByExtension(t *testing.T) {
	path := writeTempCSV(t, "cohort_id\nC-1\n")

	table, err := Parse(path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestParseRejectsUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := Parse(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnsupportedFormat))
}

func TestParseUppercaseExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.CSV")
	require.NoError(t, os.WriteFile(path, []byte("cohort_id\nC-1\n"), 0o644))

	table, err := Parse(path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}
