package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/erazemk/assetdesk/internal/desk"
	"github.com/erazemk/assetdesk/internal/model"
)

// VendorsHandler handles vendor endpoints.
type VendorsHandler struct {
	Desk *desk.Desk
}

// List handles GET /api/vendors.
func (h *VendorsHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Desk.ListVendors(r.Context())
	if err != nil {
		deskError(w, r, err, "failed to list vendors")
		return
	}
	jsonResponse(w, http.StatusOK, vendors)
}

// Create handles POST /api/vendors.
func (h *VendorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v model.Vendor
	if err := decodeJSON(r, &v); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v.ID = ""

	saved, err := h.Desk.SaveVendor(r.Context(), &v)
	if err != nil {
		deskError(w, r, err, "failed to create vendor")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("vendor", saved.Name).Msg("vendor created")
	jsonResponse(w, http.StatusCreated, saved)
}

// Update handles PUT /api/vendors/{id}.
func (h *VendorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var v model.Vendor
	if err := decodeJSON(r, &v); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v.ID = r.PathValue("id")

	saved, err := h.Desk.SaveVendor(r.Context(), &v)
	if err != nil {
		deskError(w, r, err, "failed to update vendor")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("vendor", saved.ID).Msg("vendor updated")
	jsonResponse(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/vendors/{id}.
func (h *VendorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Desk.DeleteVendor(r.Context(), id); err != nil {
		deskError(w, r, err, "failed to delete vendor")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("vendor", id).Msg("vendor deleted")
	w.WriteHeader(http.StatusNoContent)
}
