package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/erazemk/assetdesk/internal/desk"
	"github.com/erazemk/assetdesk/internal/model"
)

// CatalogHandler handles asset family and asset endpoints.
type CatalogHandler struct {
	Desk *desk.Desk
}

type bulkCreateRequest struct {
	Variant  string      `json:"variant"`
	Quantity int         `json:"quantity"`
	Common   model.Asset `json:"common"`
}

// ListFamilies handles GET /api/families?type=.
func (h *CatalogHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := h.Desk.ListFamilies(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		deskError(w, r, err, "failed to list families")
		return
	}
	jsonResponse(w, http.StatusOK, families)
}

// Summaries handles GET /api/families/summary?type=.
func (h *CatalogHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Desk.FamilySummaries(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		deskError(w, r, err, "failed to summarise families")
		return
	}
	jsonResponse(w, http.StatusOK, summaries)
}

// GetFamily handles GET /api/families/{id}.
func (h *CatalogHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	f, err := h.Desk.GetFamily(r.Context(), r.PathValue("id"))
	if err != nil {
		deskError(w, r, err, "failed to get family")
		return
	}
	jsonResponse(w, http.StatusOK, f)
}

// CreateFamily handles POST /api/families.
func (h *CatalogHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var f model.AssetFamily
	if err := decodeJSON(r, &f); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	f.ID = ""

	saved, err := h.Desk.SaveFamily(r.Context(), &f)
	if err != nil {
		deskError(w, r, err, "failed to create family")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("family", saved.ID).Str("name", saved.Name).Msg("family created")
	jsonResponse(w, http.StatusCreated, saved)
}

// UpdateFamily handles PUT /api/families/{id}.
func (h *CatalogHandler) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	var f model.AssetFamily
	if err := decodeJSON(r, &f); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	f.ID = r.PathValue("id")

	saved, err := h.Desk.SaveFamily(r.Context(), &f)
	if err != nil {
		deskError(w, r, err, "failed to update family")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("family", saved.ID).Msg("family updated")
	jsonResponse(w, http.StatusOK, saved)
}

// BulkCreate handles POST /api/families/{id}/bulk.
func (h *CatalogHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req bulkCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := r.PathValue("id")
	assets, err := h.Desk.BulkCreate(r.Context(), id, req.Variant, req.Quantity, req.Common)
	if err != nil {
		deskError(w, r, err, "failed to create assets")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("family", id).Int("quantity", len(assets)).Msg("assets bulk created")
	jsonResponse(w, http.StatusCreated, assets)
}

// ListAssets handles GET /api/assets?familyId=.
func (h *CatalogHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Desk.ListAssets(r.Context(), Viewer(r.Context()), r.URL.Query().Get("familyId"))
	if err != nil {
		deskError(w, r, err, "failed to list assets")
		return
	}
	jsonResponse(w, http.StatusOK, assets)
}

// GetAsset handles GET /api/assets/{id}.
func (h *CatalogHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	a, err := h.Desk.GetAsset(r.Context(), Viewer(r.Context()), r.PathValue("id"))
	if err != nil {
		deskError(w, r, err, "failed to get asset")
		return
	}
	jsonResponse(w, http.StatusOK, a)
}

// AssetHistory handles GET /api/assets/{id}/history.
func (h *CatalogHandler) AssetHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Desk.AssetHistory(r.Context(), Viewer(r.Context()), r.PathValue("id"))
	if err != nil {
		deskError(w, r, err, "failed to get history")
		return
	}
	if entries == nil {
		entries = []model.AssignmentHistory{}
	}
	jsonResponse(w, http.StatusOK, entries)
}

// CreateAsset handles POST /api/assets.
func (h *CatalogHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var a model.Asset
	if err := decodeJSON(r, &a); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.ID = ""

	viewer := Viewer(r.Context())
	created, err := h.Desk.CreateAsset(r.Context(), viewer, &a)
	if err != nil {
		deskError(w, r, err, "failed to create asset")
		return
	}

	log.Info().Str("user", viewer.Email).Str("asset", created.ID).Str("asset_id", created.AssetID).Msg("asset created")
	jsonResponse(w, http.StatusCreated, created)
}

// UpdateAsset handles PUT /api/assets/{id}.
func (h *CatalogHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var a model.Asset
	if err := decodeJSON(r, &a); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.ID = r.PathValue("id")

	viewer := Viewer(r.Context())
	updated, err := h.Desk.UpdateAsset(r.Context(), viewer, &a)
	if err != nil {
		deskError(w, r, err, "failed to update asset")
		return
	}

	log.Info().Str("user", viewer.Email).Str("asset", updated.ID).Msg("asset updated")
	jsonResponse(w, http.StatusOK, updated)
}
