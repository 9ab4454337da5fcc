package packd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/radar-rrm/scenario-generator/internal/pack"
	"github.com/radar-rrm/scenario-generator/pkg/config"
	"github.com/radar-rrm/scenario-generator/pkg/logger"
)

const maxRequestBytes = 1 << 20

// HTTPServer exposes pack generation over HTTP
type HTTPServer struct {
	mux     *http.ServeMux
	service *Service
}

// NewHTTPServer creates the HTTP handlers for service
func NewHTTPServer(service *Service) *HTTPServer {
	s := &HTTPServer{
		mux:     http.NewServeMux(),
		service: service,
	}

	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/v1/packs", s.handlePacks)

	return s
}

func (s *HTTPServer) Handler() http.Handler {
	return s.mux
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handlePacks handles /v1/packs
func (s *HTTPServer) handlePacks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := s.decodeRequest(w, r)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeError(w, status, err.Error())
		return
	}

	p, seed, err := s.service.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, statusForError(err), err.Error())
		return
	}

	logger.Info("pack served", "transport", "http", "pack_id", p.PackID.String(), "seed", seed)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Scenario-Seed", strconv.FormatInt(seed, 10))
	w.WriteHeader(http.StatusOK)
	if err := pack.Encode(w, p, pack.EncodeOptions{Format: pack.FormatJSON, Pretty: req.Pretty}); err != nil {
		logger.Error("failed to write pack response", "pack_id", p.PackID.String(), "error", err)
	}
}

func (s *HTTPServer) decodeRequest(w http.ResponseWriter, r *http.Request) (GenerateRequest, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		return GenerateRequest{}, fmt.Errorf("read body: %w", err)
	}

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			mediaType = mt
		}
	}

	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return decodeYAMLRequest(data)
	default:
		return decodeJSONRequest(data)
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, config.ErrInvalidParams), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": message,
	})
}
