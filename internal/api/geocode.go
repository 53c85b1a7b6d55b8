package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/guptabinit/listform/internal/geocode"
)

// Geocode handles GET /api/v1/geocode.
//
//	@Summary		Resolve an address
//	@Description	Resolves a free-form address into its formatted form and postal code
//	@Tags			geocode
//	@Produce		json
//	@Param			address	query		string	true	"Free-form address"
//	@Success		200		{object}	GeocodeResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/v1/geocode [get]
func (h *Handler) Geocode(w http.ResponseWriter, r *http.Request) {
	if h.geocoder == nil {
		h.writeError(w, http.StatusServiceUnavailable, "geocoding not available")
		return
	}

	address := r.URL.Query().Get("address")
	if address == "" {
		h.writeError(w, http.StatusBadRequest, "address is required")
		return
	}

	result, err := h.geocoder.Resolve(r.Context(), address)
	if err != nil {
		h.geocodeError(w, address, err)
		return
	}
	h.writeJSON(w, http.StatusOK, GeocodeResponse{
		FormattedAddress: result.FormattedAddress,
		PostalCode:       result.PostalCode,
	})
}

// ReverseGeocode handles GET /api/v1/geocode/reverse.
//
//	@Summary		Reverse-geocode coordinates
//	@Description	Resolves latitude and longitude into an address
//	@Tags			geocode
//	@Produce		json
//	@Param			lat	query		number	true	"Latitude"
//	@Param			lng	query		number	true	"Longitude"
//	@Success		200	{object}	GeocodeResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/v1/geocode/reverse [get]
func (h *Handler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	if h.geocoder == nil {
		h.writeError(w, http.StatusServiceUnavailable, "geocoding not available")
		return
	}

	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err1 != nil || err2 != nil {
		h.writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}

	result, err := h.geocoder.Reverse(r.Context(), lat, lng)
	if err != nil {
		h.geocodeError(w, "", err)
		return
	}
	h.writeJSON(w, http.StatusOK, GeocodeResponse{
		FormattedAddress: result.FormattedAddress,
		PostalCode:       result.PostalCode,
	})
}

func (h *Handler) geocodeError(w http.ResponseWriter, address string, err error) {
	var failure *geocode.Failure
	if errors.As(err, &failure) {
		h.writeError(w, http.StatusBadGateway, failure.Message)
		return
	}
	slog.Error("api: geocoding failed", "address", address, "error", err)
	h.writeError(w, http.StatusBadGateway, "geocoding failed")
}
