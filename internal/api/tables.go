package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/erazemk/assetdesk/internal/desk"
	"github.com/erazemk/assetdesk/internal/model"
)

// TablesHandler serves the data tables, their per-user views, the
// dashboard and global search.
type TablesHandler struct {
	Desk *desk.Desk
}

// Query handles POST /api/tables/{name}/query. An empty body is the
// unfiltered first view.
func (h *TablesHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req desk.TableRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.Desk.QueryTable(r.Context(), Viewer(r.Context()), r.PathValue("name"), req)
	if err != nil {
		deskError(w, r, err, "failed to query table")
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// View handles GET /api/tables/{name}/columns.
func (h *TablesHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.Desk.TableView(r.Context(), Viewer(r.Context()), r.PathValue("name"))
	if err != nil {
		deskError(w, r, err, "failed to load table view")
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// SaveColumns handles PUT /api/tables/{name}/columns.
func (h *TablesHandler) SaveColumns(w http.ResponseWriter, r *http.Request) {
	var columns []model.ColumnConfig
	if err := decodeJSON(r, &columns); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Desk.SaveColumns(r.Context(), Viewer(r.Context()), r.PathValue("name"), columns)
	if err != nil {
		deskError(w, r, err, "failed to save columns")
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// SaveSettings handles PUT /api/tables/{name}/settings.
func (h *TablesHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.ViewSettings
	if err := decodeJSON(r, &settings); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Desk.SaveSettings(r.Context(), Viewer(r.Context()), r.PathValue("name"), settings)
	if err != nil {
		deskError(w, r, err, "failed to save settings")
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// Dashboard handles GET /api/dashboard.
func (h *TablesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Desk.Dashboard(r.Context(), Viewer(r.Context()))
	if err != nil {
		deskError(w, r, err, "failed to build dashboard")
		return
	}
	jsonResponse(w, http.StatusOK, dash)
}

// Search handles GET /api/search?q=.
func (h *TablesHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.Desk.GlobalSearch(r.Context(), Viewer(r.Context()), r.URL.Query().Get("q"))
	if err != nil {
		deskError(w, r, err, "failed to search")
		return
	}
	jsonResponse(w, http.StatusOK, res)
}
