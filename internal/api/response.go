package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/erazemk/assetdesk/internal/desk"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("encoding response")
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// deskError maps a desk error to a response. Anything unrecognised is
// logged and reported as an internal error with the given fallback message.
func deskError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, desk.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, desk.ErrInvalid):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, desk.ErrConflict):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, desk.ErrForbidden):
		jsonError(w, http.StatusForbidden, "insufficient permissions")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", RequestIDFrom(r.Context())).Msg(fallback)
		jsonError(w, http.StatusInternalServerError, fallback)
	}
}
