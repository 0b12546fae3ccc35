package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spj-hub/placement-analytics/internal/domain/ingest"
	"github.com/spj-hub/placement-analytics/internal/domain/shared"
)

// ParseXLSX reads the first sheet of an Excel workbook. The first row is
// the header; trailing empty cells excelize omits are filled with "".
func ParseXLSX(path string) (*ingest.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, shared.NewDomainError("tabular", "parse_xlsx", shared.ErrInvalidFormat,
			fmt.Sprintf("failed to open workbook: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, shared.NewDomainError("tabular", "parse_xlsx", shared.ErrEmptyInput,
			"workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, shared.NewDomainError("tabular", "parse_xlsx", shared.ErrInvalidFormat,
			fmt.Sprintf("failed to read sheet %q: %v", sheets[0], err))
	}

	if len(rows) == 0 {
		return nil, shared.NewDomainError("tabular", "parse_xlsx", shared.ErrEmptyInput,
			"file has no header row")
	}

	columns := normalizeHeader(rows[0])

	table := &ingest.Table{Columns: columns}
	for _, record := range rows[1:] {
		row := make(ingest.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, shared.NewDomainError("tabular", "parse_xlsx", shared.ErrEmptyInput,
			"file has no data rows")
	}

	return table, nil
}
