package api

import (
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/assetdesk/internal/desk"
	"github.com/erazemk/assetdesk/internal/imaging"
	"github.com/erazemk/assetdesk/internal/model"
)

// UsersHandler handles user management endpoints.
type UsersHandler struct {
	Desk *desk.Desk
}

type createUserRequest struct {
	model.User
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Desk.ListUsers(r.Context())
	if err != nil {
		deskError(w, r, err, "failed to list users")
		return
	}
	jsonResponse(w, http.StatusOK, users)
}

// Create handles POST /api/users. The password is optional; a user without
// one cannot log in until an admin sets it.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var hash []byte
	if req.Password != "" {
		if err := model.ValidatePassword(req.Password); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost); err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
	}

	viewer := Viewer(r.Context())
	u := req.User
	u.ID = ""
	u.PasswordHash = string(hash)
	user, err := h.Desk.SaveUser(r.Context(), viewer, &u)
	if err != nil {
		deskError(w, r, err, "failed to create user")
		return
	}

	log.Info().Str("user", viewer.Email).Str("new_user", user.Email).Str("role", user.Role).Msg("user created")
	jsonResponse(w, http.StatusCreated, user)
}

// Get handles GET /api/users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.Desk.GetUser(r.Context(), Viewer(r.Context()), r.PathValue("id"))
	if err != nil {
		deskError(w, r, err, "failed to get user")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// Update handles PUT /api/users/{id}.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := decodeJSON(r, &u); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u.ID = r.PathValue("id")

	viewer := Viewer(r.Context())
	user, err := h.Desk.SaveUser(r.Context(), viewer, &u)
	if err != nil {
		deskError(w, r, err, "failed to update user")
		return
	}

	log.Info().Str("user", viewer.Email).Str("target", user.ID).Msg("user updated")
	jsonResponse(w, http.StatusOK, user)
}

// ResetPassword handles PUT /api/users/{id}/password.
func (h *UsersHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := model.ValidatePassword(req.Password); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	id := r.PathValue("id")
	if err := h.Desk.SetPasswordHash(r.Context(), id, string(hash)); err != nil {
		deskError(w, r, err, "failed to reset password")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("target", id).Msg("password reset")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// History handles GET /api/users/{id}/history.
func (h *UsersHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Desk.UserHistory(r.Context(), Viewer(r.Context()), r.PathValue("id"))
	if err != nil {
		deskError(w, r, err, "failed to get history")
		return
	}
	if entries == nil {
		entries = []model.AssignmentHistory{}
	}
	jsonResponse(w, http.StatusOK, entries)
}

// ListPlatformAccounts handles GET /api/users/{id}/platform-accounts.
func (h *UsersHandler) ListPlatformAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Desk.PlatformAccounts(r.Context(), r.PathValue("id"))
	if err != nil {
		deskError(w, r, err, "failed to list platform accounts")
		return
	}
	jsonResponse(w, http.StatusOK, accounts)
}

// AddPlatformAccount handles POST /api/users/{id}/platform-accounts.
func (h *UsersHandler) AddPlatformAccount(w http.ResponseWriter, r *http.Request) {
	var a model.PlatformAccount
	if err := decodeJSON(r, &a); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := r.PathValue("id")
	acc, err := h.Desk.AddPlatformAccount(r.Context(), id, &a)
	if err != nil {
		deskError(w, r, err, "failed to add platform account")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("target", id).Str("platform", acc.Platform).Msg("platform account added")
	jsonResponse(w, http.StatusCreated, acc)
}

// UploadAvatar handles PUT /api/users/{id}/avatar. The body is the raw image.
func (h *UsersHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes))
	if err != nil {
		jsonError(w, http.StatusRequestEntityTooLarge, "image too large")
		return
	}

	id := r.PathValue("id")
	viewer := Viewer(r.Context())
	if err := h.Desk.SetAvatar(r.Context(), viewer, id, data); err != nil {
		deskError(w, r, err, "failed to store avatar")
		return
	}

	log.Info().Str("user", viewer.Email).Str("target", id).Msg("avatar uploaded")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "avatar updated"})
}

// GetAvatar handles GET /api/users/{id}/avatar.
func (h *UsersHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	data, mime, err := h.Desk.Avatar(r.Context(), r.PathValue("id"))
	if err != nil {
		deskError(w, r, err, "failed to get avatar")
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(data)
}
