package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/guptabinit/listform/internal/geocode"
)

// Handler holds dependencies for API handlers.
type Handler struct {
	forms       formQuerierBase
	submissions submissionStoreBase
	geocoder    geocode.Geocoder
	bufferPool  *sync.Pool // Pool of bytes.Buffer for JSON encoding
}

// New creates a new API Handler.
// geocoder can be nil (feature is optional).
func New(forms formQuerierBase, submissions submissionStoreBase, geocoder geocode.Geocoder) (*Handler, error) {
	if forms == nil {
		return nil, errors.New("form repository is required")
	}
	if submissions == nil {
		return nil, errors.New("submission repository is required")
	}
	return &Handler{
		forms:       forms,
		submissions: submissions,
		geocoder:    geocoder,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}, nil
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/forms/{slug}", h.GetForm)
	mux.HandleFunc("POST /api/v1/forms/{slug}/validate", h.ValidateSubmission)
	mux.HandleFunc("POST /api/v1/forms/{slug}/submissions", h.CreateSubmission)
	mux.HandleFunc("POST /api/v1/preview", h.Preview)
	mux.HandleFunc("GET /api/v1/geocode", h.Geocode)
	mux.HandleFunc("GET /api/v1/geocode/reverse", h.ReverseGeocode)
	mux.HandleFunc("GET /health", h.Health)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	buf := h.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		h.bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, `{"error":"internal server error","code":500}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  status,
	})
}

// slugParam validates the form slug path parameter and writes an error
// response if invalid. Returns the slug and true, or false with the error
// already written.
func (h *Handler) slugParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.writeError(w, http.StatusBadRequest, "form slug is required")
		return "", false
	}
	return slug, true
}
