// Package tabular parses uploaded spreadsheet files into the neutral
// table shape the ingestion pipeline consumes. Format detection is by
// file extension; the pipeline never needs to know which parser ran.
package tabular

import (
	"path/filepath"
	"strings"

	"github.com/spj-hub/placement-analytics/internal/domain/ingest"
	"github.com/spj-hub/placement-analytics/internal/domain/shared"
)

// Parse reads the file at path into a table. Supported extensions are
// .csv and .xlsx; anything else, including legacy binary .xls workbooks,
// is an unsupported format error.
func Parse(path string) (*ingest.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(path)
	case ".xlsx":
		return ParseXLSX(path)
	default:
		return nil, shared.NewDomainError("tabular", "parse", shared.ErrUnsupportedFormat,
			"only .csv and .xlsx files are supported")
	}
}

// normalizeHeader trims whitespace and a leading UTF-8 BOM, and lowers
// the name so headers match the snake_case storage schema regardless of
// how the spreadsheet tool exported them.
func normalizeHeader(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.TrimPrefix(c, "\uFEFF")
		out[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return out
}
