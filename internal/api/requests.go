package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/erazemk/assetdesk/internal/desk"
	"github.com/erazemk/assetdesk/internal/model"
)

// RequestsHandler handles asset requests and their fulfilment tasks.
type RequestsHandler struct {
	Desk *desk.Desk
}

type submitRequestRequest struct {
	FamilyID string `json:"familyId"`
	Notes    string `json:"notes"`
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

// List handles GET /api/requests. Non-admins see only their own.
func (h *RequestsHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Desk.ListRequests(r.Context(), Viewer(r.Context()))
	if err != nil {
		deskError(w, r, err, "failed to list requests")
		return
	}
	jsonResponse(w, http.StatusOK, requests)
}

// Submit handles POST /api/requests. The viewer is always the requester.
func (h *RequestsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	viewer := Viewer(r.Context())
	created, err := h.Desk.SubmitRequest(r.Context(), viewer.ID, req.FamilyID, req.Notes)
	if err != nil {
		deskError(w, r, err, "failed to submit request")
		return
	}

	log.Info().Str("user", viewer.Email).Str("request", created.ID).Str("item", created.Item).Msg("request submitted")
	jsonResponse(w, http.StatusCreated, created)
}

// Approve handles POST /api/requests/{id}/approve. It returns the task draft
// for the admin to review; nothing is stored until the task is confirmed.
func (h *RequestsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	draft, err := h.Desk.ApproveRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		deskError(w, r, err, "failed to approve request")
		return
	}
	jsonResponse(w, http.StatusOK, draft)
}

// Reject handles POST /api/requests/{id}/reject.
func (h *RequestsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	rejected, err := h.Desk.RejectRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		deskError(w, r, err, "failed to reject request")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("request", rejected.ID).Msg("request rejected")
	jsonResponse(w, http.StatusOK, rejected)
}

// ConfirmTask handles POST /api/requests/{id}/task.
func (h *RequestsHandler) ConfirmTask(w http.ResponseWriter, r *http.Request) {
	var draft model.Task
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := r.PathValue("id")
	task, err := h.Desk.ConfirmTask(r.Context(), id, draft)
	if err != nil {
		deskError(w, r, err, "failed to create task")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("request", id).Str("task", task.ID).Msg("request approved")
	jsonResponse(w, http.StatusCreated, task)
}

// ListTasks handles GET /api/tasks.
func (h *RequestsHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Desk.ListTasks(r.Context())
	if err != nil {
		deskError(w, r, err, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	jsonResponse(w, http.StatusOK, tasks)
}

// UpdateTaskStatus handles PUT /api/tasks/{id}/status.
func (h *RequestsHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req taskStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.Desk.UpdateTaskStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		deskError(w, r, err, "failed to update task")
		return
	}

	log.Info().Str("user", Viewer(r.Context()).Email).Str("task", task.ID).Str("status", task.Status).Msg("task status changed")
	jsonResponse(w, http.StatusOK, task)
}
