package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/guptabinit/listform/internal/repository"
)

// GetForm handles GET /api/v1/forms/{slug}.
//
//	@Summary		Get form configuration
//	@Description	Returns the field definitions, dependency rules and listing options of a form
//	@Tags			forms
//	@Produce		json
//	@Param			slug	path		string	true	"Form slug"
//	@Success		200		{object}	FormResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/v1/forms/{slug} [get]
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug, ok := h.slugParam(w, r)
	if !ok {
		return
	}

	cfg, err := h.forms.GetForm(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			h.writeError(w, http.StatusNotFound, "form not found")
			return
		}
		slog.Error("api: failed to fetch form", "slug", slug, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to fetch form")
		return
	}

	h.writeJSON(w, http.StatusOK, FormResponse{
		Slug:         cfg.Slug,
		Title:        cfg.Title,
		PricingTypes: cfg.PricingTypes,
		HiddenFields: cfg.HiddenFields,
		GalleryLimit: cfg.GalleryLimit,
		DateFormat:   cfg.DateFormat,
		TimeFormat:   cfg.TimeFormat,
		Fields:       cfg.Fields,
	})
}
