// Package command implements the write-side use cases: the tabular upload
// ingestion pipeline.
package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spj-hub/placement-analytics/internal/domain/ingest"
	"github.com/spj-hub/placement-analytics/internal/domain/shared"
	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// Parser turns an uploaded file into the neutral table shape.
type Parser func(path string) (*ingest.Table, error)

// Invalidator flushes cached analytics responses after data changes.
type Invalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// ColumnValidationError reports a header that does not satisfy the
// target's schema. It unwraps to the shared validation kind so callers
// can map it to a client error.
type ColumnValidationError struct {
	Target         string
	MissingColumns []string
	ExtraColumns   []string
}

func (e *ColumnValidationError) Error() string {
	return fmt.Sprintf("upload for %s is missing required columns: %s",
		e.Target, strings.Join(e.MissingColumns, ", "))
}

func (e *ColumnValidationError) Unwrap() error {
	return shared.ErrValidation
}

// IngestUploadHandler runs the upload pipeline: resolve target, parse,
// validate the header, then coerce and insert row by row. One bad row is
// skipped, never fatal; only an unusable file or a dead database aborts.
type IngestUploadHandler struct {
	writer      ingest.Writer
	parse       Parser
	invalidator Invalidator
	cachePrefix string
	log         *logger.Logger
}

// NewIngestUploadHandler creates a new ingestion handler.
func NewIngestUploadHandler(writer ingest.Writer, parse Parser, invalidator Invalidator, cachePrefix string, log *logger.Logger) *IngestUploadHandler {
	return &IngestUploadHandler{
		writer:      writer,
		parse:       parse,
		invalidator: invalidator,
		cachePrefix: cachePrefix,
		log:         log.With(logger.Component("ingest_upload")),
	}
}

// Handle ingests the file at path into the named target. The file is
// removed before returning, on success and on every failure path alike.
func (h *IngestUploadHandler) Handle(ctx context.Context, targetName, path string) (*ingest.Report, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			h.log.Warn("failed to remove upload file",
				logger.String("path", path), logger.Err(err))
		}
	}()

	target, ok := ingest.TargetByName(targetName)
	if !ok {
		return nil, shared.NewDomainError("ingest", "resolve_target", shared.ErrUnknownTarget,
			fmt.Sprintf("unknown upload target %q", targetName))
	}

	table, err := h.parse(path)
	if err != nil {
		return nil, err
	}

	validation := target.Validate(table.Columns)
	if !validation.Valid {
		return nil, &ColumnValidationError{
			Target:         target.Name,
			MissingColumns: validation.MissingColumns,
			ExtraColumns:   validation.ExtraColumns,
		}
	}

	report := &ingest.Report{
		Target:    target.Name,
		TotalRows: len(table.Rows),
		Warnings:  ingest.ExtraColumnWarning(validation.ExtraColumns),
	}

	// Rows insert sequentially in file order so cohort_master parents land
	// before rows that reference them within the same file.
	for i, row := range table.Rows {
		values, err := ingest.CoerceRow(target.RequiredColumns, row)
		if err != nil {
			report.SkippedRows++
			h.log.Warn("skipping uncoercible row",
				logger.Target(target.Name), logger.Int("row", i+1), logger.Err(err))
			continue
		}

		inserted, err := h.writer.InsertRow(ctx, target, target.RequiredColumns, values)
		if err != nil {
			if shared.IsValidation(err) {
				report.SkippedRows++
				h.log.Warn("skipping rejected row",
					logger.Target(target.Name), logger.Int("row", i+1), logger.Err(err))
				continue
			}
			return nil, err
		}

		if inserted {
			report.InsertedRows++
		} else {
			report.SkippedRows++
		}
	}

	h.log.Info("upload ingested",
		logger.Target(target.Name),
		logger.RowCount(report.TotalRows),
		logger.Int("inserted", report.InsertedRows),
		logger.Int("skipped", report.SkippedRows))

	if report.InsertedRows > 0 && h.invalidator != nil {
		if err := h.invalidator.InvalidatePrefix(ctx, h.cachePrefix); err != nil {
			h.log.Warn("failed to invalidate analytics cache", logger.Err(err))
		}
	}

	return report, nil
}
