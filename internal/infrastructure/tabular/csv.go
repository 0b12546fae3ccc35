package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spj-hub/placement-analytics/internal/domain/ingest"
	"github.com/spj-hub/placement-analytics/internal/domain/shared"
)

// ParseCSV reads a comma-separated file. The first record is the header;
// every following record becomes one row keyed by header name.
func ParseCSV(path string) (*ingest.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, shared.NewDomainError("tabular", "parse_csv", shared.ErrEmptyInput,
				"file has no header row")
		}
		return nil, shared.NewDomainError("tabular", "parse_csv", shared.ErrInvalidFormat,
			fmt.Sprintf("failed to read header: %v", err))
	}

	columns := normalizeHeader(header)

	table := &ingest.Table{Columns: columns}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, shared.NewDomainError("tabular", "parse_csv", shared.ErrInvalidFormat,
				fmt.Sprintf("malformed record: %v", err))
		}

		row := make(ingest.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, shared.NewDomainError("tabular", "parse_csv", shared.ErrEmptyInput,
			"file has no data rows")
	}

	return table, nil
}
