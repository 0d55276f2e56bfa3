package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// maxFormMemory bounds in-memory multipart parsing; larger uploads spill
// to disk.
const maxFormMemory = 16 << 20

// logoExtensions lists upload extensions beamer can embed
var logoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// handleForm serves the submission form
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := formTemplate.Execute(w, nil); err != nil {
		s.logger.Error("Failed to write form response: %v", err)
	}
}

// handleGenerate accepts the submitted form, runs the generation pipeline,
// and streams the artifact back.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.handleError(w, fmt.Errorf("parsing form: %w", err), http.StatusBadRequest)
		return
	}

	format, err := ports.ParseOutputFormat(r.FormValue("format"))
	if err != nil {
		s.handleError(w, err, http.StatusBadRequest)
		return
	}

	input := ports.PitchInput{
		Name:      r.FormValue("name"),
		Vision:    r.FormValue("vision"),
		Problem:   r.FormValue("problem"),
		Solution:  r.FormValue("solution"),
		Advantage: r.FormValue("advantage"),
		Market:    r.FormValue("market"),
		Team:      r.FormValue("team"),
	}

	logoPath, err := s.saveLogo(r)
	if err != nil {
		s.handleError(w, err, http.StatusBadRequest)
		return
	}
	if logoPath != "" {
		defer func() { _ = os.Remove(logoPath) }()
	}

	result, err := s.decks.GenerateDeck(r.Context(), input, format, logoPath)
	if err != nil {
		s.handleError(w, err, statusForError(err))
		return
	}

	if len(result.Warnings) > 0 {
		w.Header().Set("X-Parse-Warnings", strconv.Itoa(len(result.Warnings)))
	}
	w.Header().Set("Content-Type", result.Format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Artifact)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Artifact); err != nil {
		s.logger.Error("Failed to write artifact response: %v", err)
	}
}

// handleHealth returns a liveness indication
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{Status: "ok", Time: time.Now()})
}

// handleStatus returns pipeline metrics
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	monitor := s.monitor
	s.mu.RUnlock()

	if monitor == nil {
		s.handleError(w, errors.New("monitoring not enabled"), http.StatusNotFound)
		return
	}

	s.writeJSON(w, monitor.GetStatus())
}

// saveLogo persists an uploaded logo to a uniquely named temp file and
// returns its path. An absent file field, or one submitted with an empty
// filename, yields no logo and no error.
func (s *Server) saveLogo(r *http.Request) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("reading logo upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !logoExtensions[ext] {
		return "", fmt.Errorf("unsupported logo file type: %q", ext)
	}

	path := filepath.Join(os.TempDir(), "pitchdeck-logo-"+uuid.NewString()+ext)
	out, err := os.Create(path) // #nosec G304 - path is built from a fresh UUID under the temp dir
	if err != nil {
		return "", fmt.Errorf("saving logo: %w", err)
	}

	if _, err := io.Copy(out, file); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("saving logo: %w", err)
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("saving logo: %w", err)
	}

	return path, nil
}

// statusForError maps pipeline errors to HTTP status codes
func statusForError(err error) int {
	var (
		missingField  *entities.MissingFieldError
		unknownFormat *entities.UnknownFormatError
		upstream      *entities.UpstreamError
		fetch         *entities.FetchError
	)

	switch {
	case errors.As(err, &missingField), errors.As(err, &unknownFormat):
		return http.StatusBadRequest
	case errors.As(err, &upstream), errors.As(err, &fetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes a structured error response. Client errors carry the
// real message so the caller can fix the request; server errors are
// sanitized and only logged in full.
func (s *Server) handleError(w http.ResponseWriter, err error, status int) {
	message := "An error occurred"
	switch {
	case status >= 400 && status < 500:
		message = err.Error()
	case status == http.StatusBadGateway:
		message = "Generation service unavailable"
	case status == http.StatusInternalServerError:
		message = "Internal server error"
	}

	s.logger.Error("HTTP error (status %d): %v", status, err)

	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Time:    time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		s.logger.Error("Failed to encode error response: %v", encodeErr)
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response: %v", err)
	}
}
