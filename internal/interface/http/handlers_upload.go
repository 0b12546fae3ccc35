package http

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spj-hub/placement-analytics/internal/domain/ingest"
	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// uploadResponse is the successful ingestion body.
type uploadResponse struct {
	Message string `json:"message"`
	ingest.Report
}

// handleUpload serves POST /api/v1/upload/{target}. The multipart field
// must be named "file". The upload is spooled to disk under a random name
// so concurrent uploads of the same filename never collide; the pipeline
// removes the spool file on every exit path.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	targetName := r.PathValue("target")

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	path, err := s.spoolUpload(file, header.Filename)
	if err != nil {
		s.logger.Error("failed to spool upload",
			logger.String("target", targetName), logger.Err(err))
		writeMessage(w, http.StatusInternalServerError, "Error storing uploaded file")
		return
	}

	report, err := s.deps.IngestUploadHandler.Handle(r.Context(), targetName, path)
	if err != nil {
		s.respondError(w, r, err, "Error processing uploaded file")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message: "File processed successfully",
		Report:  *report,
	})
}

// spoolUpload writes the multipart file to the upload directory under a
// random name, keeping the original extension for format detection.
func (s *Server) spoolUpload(src io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.config.UploadDir, uuid.NewString()+ext)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create spool file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write spool file: %w", err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close spool file: %w", err)
	}

	return path, nil
}

// templateEntry describes one downloadable upload template file.
type templateEntry struct {
	TableName    string    `json:"tableName"`
	Columns      []string  `json:"columns"`
	Filename     string    `json:"filename"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ensureTemplate materializes the header-only CSV for a target under the
// template directory and returns its path. An existing file wins, so
// operators can replace a template with a richer example file.
func (s *Server) ensureTemplate(target ingest.Target) (string, error) {
	if err := os.MkdirAll(s.config.TemplateDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create template dir: %w", err)
	}

	path := filepath.Join(s.config.TemplateDir, target.Name+".csv")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to stat template: %w", err)
	}

	content := strings.Join(target.RequiredColumns, ",") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write template: %w", err)
	}
	return path, nil
}

// handleListTemplates serves GET /api/v1/upload/templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	templates := make([]templateEntry, 0, len(ingest.AllTargets))
	for _, t := range ingest.AllTargets {
		path, err := s.ensureTemplate(t)
		if err != nil {
			s.logger.Error("failed to prepare upload template",
				logger.String("target", t.Name), logger.Err(err))
			writeMessage(w, http.StatusInternalServerError, "Error listing upload templates")
			return
		}

		info, err := os.Stat(path)
		if err != nil {
			s.logger.Error("failed to stat upload template",
				logger.String("target", t.Name), logger.Err(err))
			writeMessage(w, http.StatusInternalServerError, "Error listing upload templates")
			return
		}

		templates = append(templates, templateEntry{
			TableName:    t.Name,
			Columns:      t.RequiredColumns,
			Filename:     filepath.Base(path),
			Size:         info.Size(),
			LastModified: info.ModTime().UTC(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

// handleDownloadTemplate serves GET /api/v1/upload/templates/{target}.
// The stock template is a header-only CSV matching the target's schema.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.PathValue("target"), ".csv")

	target, ok := ingest.TargetByName(name)
	if !ok {
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("Unknown upload target %q", name))
		return
	}

	path, err := s.ensureTemplate(target)
	if err != nil {
		s.logger.Error("failed to prepare upload template",
			logger.String("target", target.Name), logger.Err(err))
		writeMessage(w, http.StatusInternalServerError, "Error preparing upload template")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("failed to read upload template",
			logger.String("target", target.Name), logger.Err(err))
		writeMessage(w, http.StatusInternalServerError, "Error reading upload template")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", target.Name+".csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
