package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/guptabinit/listform/internal/middleware"
	"github.com/guptabinit/listform/internal/payload"
	"github.com/guptabinit/listform/internal/repository"
	"github.com/guptabinit/listform/internal/session"
	"github.com/samber/lo"
)

// ValidateSubmission handles POST /api/v1/forms/{slug}/validate.
//
//	@Summary		Validate a submission
//	@Description	Runs the visibility and required-field rules over the supplied values without storing anything
//	@Tags			forms
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string				true	"Form slug"
//	@Param			body	body		SubmissionRequest	true	"Form state"
//	@Success		200		{object}	ValidationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/v1/forms/{slug}/validate [post]
func (h *Handler) ValidateSubmission(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, validationResult(s))
}

// CreateSubmission handles POST /api/v1/forms/{slug}/submissions.
//
//	@Summary		Submit a listing
//	@Description	Validates the supplied values, encodes them into key/value parts and stores the submission
//	@Tags			forms
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string				true	"Form slug"
//	@Param			body	body		SubmissionRequest	true	"Form state"
//	@Success		201		{object}	SubmissionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/v1/forms/{slug}/submissions [post]
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	result := validationResult(s)
	if !result.Valid {
		h.writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	parts := payload.Encode(s.BuildPayload())
	id, err := h.submissions.Insert(ctx, s.FormID(), middleware.ExtractIP(r), parts)
	if err != nil {
		slog.Error("api: failed to store submission", "form_id", s.FormID(), "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to store submission")
		return
	}

	h.writeJSON(w, http.StatusCreated, SubmissionResponse{ID: id})
}

// loadSession fetches the form configuration, decodes the request body and
// replays it into a fresh session. On failure the error response is already
// written and ok is false.
func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request) (*formSession, bool) {
	ctx := r.Context()

	slug, ok := h.slugParam(w, r)
	if !ok {
		return nil, false
	}

	cfg, err := h.forms.GetForm(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			h.writeError(w, http.StatusNotFound, "form not found")
			return nil, false
		}
		slog.Error("api: failed to fetch form", "slug", slug, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to fetch form")
		return nil, false
	}

	var req SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return nil, false
	}

	s, err := replaySession(cfg, &req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return s, true
}

// formSession pairs a replayed session with the form it belongs to.
type formSession struct {
	*session.Session
	formID int64
}

func (s *formSession) FormID() int64 { return s.formID }

// replaySession builds a session from a form configuration and applies the
// submitted state to it in the same order the mobile client would.
func replaySession(cfg *repository.FormConfig, req *SubmissionRequest) (*formSession, error) {
	base := lo.Without(session.DefaultBaseRequired(), cfg.HiddenFields...)
	s := session.New(cfg.Fields,
		session.WithBaseRequired(base),
		session.WithGalleryLimit(cfg.GalleryLimit),
		session.WithDatetimeFormats(cfg.DateFormat, cfg.TimeFormat),
	)

	for key, in := range req.Common {
		s.SetValue(key, in.value)
	}
	for key, in := range req.Values {
		s.SetValue(key, in.value)
	}

	if err := s.SetGallery(fileRefs(req.Gallery)); err != nil {
		return nil, err
	}
	s.SetPanorama(fileRefs(req.Panorama))

	if req.Hours != nil {
		s.Hours().Load(req.Hours.Week, req.Hours.Special)
	}

	if len(req.FloorPlans) > 0 {
		s.SetFloorPlans(lo.Map(req.FloorPlans, func(p FloorPlanInput, _ int) session.FloorPlan {
			return session.FloorPlan{
				Title:       p.Title,
				Size:        p.Size,
				Description: p.Description,
				Images:      fileRefs(p.Images),
			}
		}))
	}
	if len(req.SocialProfiles) > 0 {
		s.SetSocialProfiles(req.SocialProfiles)
	}

	return &formSession{Session: s, formID: cfg.ID}, nil
}

func fileRefs(names []string) []payload.FileRef {
	return lo.Map(names, func(name string, _ int) payload.FileRef {
		return payload.FileRef{Name: name}
	})
}

// validationResult runs full submission validation, which also covers price
// consistency, and flattens the outcome into the API shape.
func validationResult(s *formSession) ValidationResponse {
	visible := lo.Keys(lo.PickByValues(s.Visible(), []bool{true}))
	sort.Slice(visible, func(i, j int) bool { return visible[i] < visible[j] })

	resp := ValidationResponse{
		Valid:         true,
		VisibleFields: visible,
		MissingFields: []int64{},
		MissingCommon: []string{},
	}
	if err := s.Validate(); err != nil {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			resp.Valid = false
			resp.MissingFields = verr.FieldIDs
			resp.MissingCommon = verr.CommonKeys
		}
	}
	return resp
}
