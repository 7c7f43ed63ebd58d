package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/erazemk/assetdesk/internal/desk"
)

// MaxImportBytes bounds an import upload.
const MaxImportBytes = 10 << 20

// DataHandler handles export, import and the health probe.
type DataHandler struct {
	Desk *desk.Desk
}

// Health handles GET /api/health.
func (h *DataHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Desk.DB().PingContext(r.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed")
		jsonError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Export handles GET /api/export. The snapshot is served as a download.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	e, err := h.Desk.Export(r.Context())
	if err != nil {
		deskError(w, r, err, "failed to export")
		return
	}

	var buf bytes.Buffer
	if err := desk.WriteExport(&buf, e); err != nil {
		deskError(w, r, err, "failed to export")
		return
	}

	name := fmt.Sprintf("assetdesk-export-%s.json", e.GeneratedAt.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())

	log.Info().Str("user", Viewer(r.Context()).Email).Int("users", len(e.Users)).Int("assets", len(e.Assets)).Msg("data exported")
}

// Import handles POST /api/import/{kind}. The body is CSV with a header row
// or a JSON array of objects.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxImportBytes))
	if err != nil {
		jsonError(w, http.StatusRequestEntityTooLarge, "import file too large")
		return
	}

	rows, err := desk.ParseRows(data)
	if err != nil {
		deskError(w, r, err, "failed to parse import")
		return
	}

	kind := r.PathValue("kind")
	n, err := h.Desk.Import(r.Context(), kind, rows)
	if err != nil {
		deskError(w, r, err, "failed to import")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("kind", kind).Int("rows", len(rows)).Int("imported", n).Msg("data imported")
	jsonResponse(w, http.StatusOK, map[string]int{"imported": n})
}
