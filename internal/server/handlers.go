package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/services"
	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/desertthunder/ytspin/internal/spinner"
)

const (
	maxBodyBytes = 1 << 20
	maxSpinCount = 1000
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidArgument), errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

// TextFileHandler serves the panel-compatible text file endpoints over a [services.TextFileStore].
type TextFileHandler struct {
	store services.TextFileStore
}

// NewTextFileHandler creates a handler backed by store.
func NewTextFileHandler(store services.TextFileStore) *TextFileHandler {
	return &TextFileHandler{store: store}
}

func (h *TextFileHandler) Routes() []string {
	return []string{"GET /get_text_file/{profile}/{type}", "POST /save_text_file"}
}

func (h *TextFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no text file store configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.save(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TextFileHandler) get(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseKind(r.PathValue("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	content, err := h.store.GetTextFile(r.Context(), r.PathValue("profile"), kind)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, services.TextFileResponse{Content: content})
}

func (h *TextFileHandler) save(w http.ResponseWriter, r *http.Request) {
	var req services.TextFileRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProfileName == "" {
		writeError(w, http.StatusBadRequest, "profile_name is required")
		return
	}
	kind, err := models.ParseKind(req.FileType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveTextFile(r.Context(), req.ProfileName, kind, req.Content); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SpinRequest is the body of POST /spin.
//
// Delimiter, when present, splits Text into a batch. Otherwise Kind picks the delimiter,
// and with neither the whole text is one template.
type SpinRequest struct {
	Text      string  `json:"text"`
	Delimiter *string `json:"delimiter,omitempty"`
	Kind      string  `json:"kind,omitempty"`
	Count     int     `json:"count,omitempty"`
	Seed      uint64  `json:"seed,omitempty"`
}

// SpinResponse lists results entry by entry, Count per entry.
type SpinResponse struct {
	Results []string `json:"results"`
}

// SpinHandler expands text without touching storage.
type SpinHandler struct{}

func NewSpinHandler() *SpinHandler { return &SpinHandler{} }

func (h *SpinHandler) Routes() []string { return []string{"POST /spin"} }

func (h *SpinHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SpinRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := spin(req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SpinResponse{Results: results})
}

func spin(req SpinRequest) ([]string, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative", shared.ErrInvalidArgument)
	}
	if count > maxSpinCount {
		return nil, fmt.Errorf("%w: count must be at most %d", shared.ErrInvalidArgument, maxSpinCount)
	}

	var templates []spinner.Template
	switch {
	case req.Delimiter != nil:
		batch, err := spinner.ParseBatch(req.Text, *req.Delimiter)
		if err != nil {
			return nil, err
		}
		templates = batch
	case req.Kind != "":
		kind, err := models.ParseKind(req.Kind)
		if err != nil {
			return nil, err
		}
		batch, err := spinner.ParseBatch(req.Text, kind.Delimiter())
		if err != nil {
			return nil, err
		}
		templates = batch
	default:
		templates = []spinner.Template{spinner.Parse(req.Text)}
	}

	src := spinner.SourceFor(req.Seed)
	results := make([]string, 0, len(templates)*count)
	for i, t := range templates {
		variants, err := t.Variants(count, src)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		results = append(results, variants...)
	}
	return results, nil
}

// HealthHandler reports liveness.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Routes() []string { return []string{"GET /health"} }

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
