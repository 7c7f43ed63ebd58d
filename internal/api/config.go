package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/erazemk/assetdesk/internal/assetid"
	"github.com/erazemk/assetdesk/internal/desk"
	"github.com/erazemk/assetdesk/internal/model"
)

// ConfigHandler handles the admin configuration, the asset id editor and
// the modal forms built from the configured layouts.
type ConfigHandler struct {
	Desk *desk.Desk
}

type addSectionRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Label string `json:"label"`
}

type moveSectionRequest struct {
	Direction assetid.Direction `json:"direction"`
}

type separatorRequest struct {
	Separator string `json:"separator"`
}

type validateFormRequest struct {
	FamilyID string         `json:"familyId"`
	Values   map[string]any `json:"values"`
}

// Get handles GET /api/config.
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Desk.Config(r.Context())
	if err != nil {
		deskError(w, r, err, "failed to load config")
		return
	}
	jsonResponse(w, http.StatusOK, cfg)
}

// Replace handles PUT /api/config.
func (h *ConfigHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var cfg model.Config
	if err := decodeJSON(r, &cfg); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respond(w, r, "config replaced")(h.Desk.ReplaceConfig(r.Context(), &cfg))
}

// Preview handles GET /api/config/id-preview.
func (h *ConfigHandler) Preview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.Desk.IDPreview(r.Context())
	if err != nil {
		deskError(w, r, err, "failed to build preview")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"preview": preview})
}

// AddSection handles POST /api/config/id-sections.
func (h *ConfigHandler) AddSection(w http.ResponseWriter, r *http.Request) {
	var req addSectionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respond(w, r, "id section added")(h.Desk.AddIDSection(r.Context(), req.Type, req.Value, req.Label))
}

// UpdateSection handles PUT /api/config/id-sections/{id}.
func (h *ConfigHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var patch assetid.SectionPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respond(w, r, "id section updated")(h.Desk.UpdateIDSection(r.Context(), r.PathValue("id"), patch))
}

// RemoveSection handles DELETE /api/config/id-sections/{id}.
func (h *ConfigHandler) RemoveSection(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "id section removed")(h.Desk.RemoveIDSection(r.Context(), r.PathValue("id")))
}

// MoveSection handles POST /api/config/id-sections/{id}/move.
func (h *ConfigHandler) MoveSection(w http.ResponseWriter, r *http.Request) {
	var req moveSectionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respond(w, r, "id section moved")(h.Desk.MoveIDSection(r.Context(), r.PathValue("id"), req.Direction))
}

// ResetFormat handles POST /api/config/id-sections/reset.
func (h *ConfigHandler) ResetFormat(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "id format reset")(h.Desk.ResetIDFormat(r.Context()))
}

// SetSeparator handles PUT /api/config/id-separator.
func (h *ConfigHandler) SetSeparator(w http.ResponseWriter, r *http.Request) {
	var req separatorRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respond(w, r, "id separator changed")(h.Desk.SetIDSeparator(r.Context(), req.Separator))
}

// respond finishes a config mutation: the updated config on success, the
// mapped error otherwise.
func (h *ConfigHandler) respond(w http.ResponseWriter, r *http.Request, msg string) func(*model.Config, error) {
	return func(cfg *model.Config, err error) {
		if err != nil {
			deskError(w, r, err, "failed to update config")
			return
		}
		log.Info().Str("user", Viewer(r.Context()).Email).Msg(msg)
		jsonResponse(w, http.StatusOK, cfg)
	}
}

// Form handles GET /api/forms/{layout}?id=.
func (h *ConfigHandler) Form(w http.ResponseWriter, r *http.Request) {
	form, err := h.Desk.Form(r.Context(), Viewer(r.Context()), r.PathValue("layout"), r.URL.Query().Get("id"))
	if err != nil {
		deskError(w, r, err, "failed to build form")
		return
	}
	jsonResponse(w, http.StatusOK, form)
}

// ValidateForm handles POST /api/forms/{layout}/validate.
func (h *ConfigHandler) ValidateForm(w http.ResponseWriter, r *http.Request) {
	var req validateFormRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	problems, err := h.Desk.ValidateForm(r.Context(), r.PathValue("layout"), req.FamilyID, req.Values)
	if err != nil {
		deskError(w, r, err, "failed to validate form")
		return
	}
	if problems == nil {
		problems = map[string]string{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{"valid": len(problems) == 0, "problems": problems})
}
