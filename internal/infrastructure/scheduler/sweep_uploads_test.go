package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spj-hub/placement-analytics/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: os.Stderr, Level: logger.LevelError})
}

func TestSweepRemovesOnlyStaleFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "stale.csv")
	fresh := filepath.Join(dir, "fresh.csv")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	job := NewSweepUploadsJob(dir, 24*time.Hour, testLogger())
	require.NoError(t, job.Run(context.Background()))

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
}

func TestSweepIgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "keep")
	require.NoError(t, os.Mkdir(sub, 0o755))

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(sub, old, old))

	job := NewSweepUploadsJob(dir, 24*time.Hour, testLogger())
	require.NoError(t, job.Run(context.Background()))

	assert.DirExists(t, sub)
}

func TestSweepMissingDirIsNoError(t *testing.T) {
	job := NewSweepUploadsJob(filepath.Join(t.TempDir(), "nope"), time.Hour, testLogger())
	assert.NoError(t, job.Run(context.Background()))
}

func TestSweepStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.csv")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := NewSweepUploadsJob(dir, 24*time.Hour, testLogger())
	assert.Error(t, job.Run(ctx))
	assert.FileExists(t, stale)
}
