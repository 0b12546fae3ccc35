package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// SweepUploadsJob deletes stale files from the upload spool directory.
// The ingestion pipeline removes its spool file after processing, so
// anything left behind is a crashed or abandoned upload.
type SweepUploadsJob struct {
	dir    string
	maxAge time.Duration
	log    *logger.Logger
}

// NewSweepUploadsJob creates a sweep job over dir removing files older
// than maxAge.
func NewSweepUploadsJob(dir string, maxAge time.Duration, log *logger.Logger) *SweepUploadsJob {
	return &SweepUploadsJob{
		dir:    dir,
		maxAge: maxAge,
		log:    log.With(logger.Component("sweep_uploads")),
	}
}

// Name returns the unique name of the job.
func (j *SweepUploadsJob) Name() string { return "sweep_uploads" }

// Run removes orphaned upload files. A missing spool directory is not
// an error; it is created lazily on the first upload.
func (j *SweepUploadsJob) Run(ctx context.Context) error {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read upload dir: %w", err)
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			j.log.Warn("failed to remove orphaned upload",
				logger.String("path", path), logger.Err(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		j.log.Info("removed orphaned uploads", logger.Int("removed", removed))
	}
	return nil
}
