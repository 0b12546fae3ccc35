package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one parsed record: header name to raw cell text.
type Row map[string]string

// Table is an ordered sequence of parsed rows plus the header that
// produced them.
type Table struct {
	// Columns is the header in file order.
	Columns []string

	// Rows are the data records in file order.
	Rows []Row
}

// dateLayouts are tried in order when coercing a date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	time.RFC3339,
}

// Coerce converts one raw cell to its typed value by column-name
// convention. The matching rules are substring heuristics kept for
// compatibility with existing upload templates; isolate any change to the
// rules here, not in the pipeline control flow.
//
//   - empty cell                              -> nil
//   - name contains "date"                    -> calendar date
//   - name contains "pct", "avg", "package"   -> float64 (bad parse -> 0)
//   - name contains "count", "sessions",
//     "offers", "year"                        -> int64 (bad parse -> 0)
//   - name exactly "is_repeat_recruiter"      -> bool, true for "true"/"1"
//   - otherwise                               -> text unchanged
//
// Note the "count" rule fires for any column containing the substring,
// whatever its semantics; the quirk is intentional compatibility.
//
// A non-nil error is returned only for an unparseable date; the caller
// treats that as a row-level failure, not a batch abort.
func Coerce(column, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}

	switch {
	case strings.Contains(column, "date"):
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("column %q: cannot parse %q as date", column, raw)

	case strings.Contains(column, "pct"),
		strings.Contains(column, "avg"),
		strings.Contains(column, "package"):
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return float64(0), nil
		}
		return f, nil

	case strings.Contains(column, "count"),
		strings.Contains(column, "sessions"),
		strings.Contains(column, "offers"),
		strings.Contains(column, "year"):
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			// Match lenient integer parsing: "12.0" still counts as 12.
			if f, ferr := strconv.ParseFloat(strings.TrimSpace(raw), 64); ferr == nil {
				return int64(f), nil
			}
			return int64(0), nil
		}
		return i, nil

	case column == "is_repeat_recruiter":
		return raw == "true" || raw == "1", nil

	default:
		return raw, nil
	}
}

// CoerceRow converts every cell of the row, preserving the given column
// order in the returned value slice.
func CoerceRow(columns []string, row Row) ([]any, error) {
	values := make([]any, len(columns))
	for i, col := range columns {
		v, err := Coerce(col, row[col])
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
