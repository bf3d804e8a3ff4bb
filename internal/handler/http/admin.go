package http

import (
	"net/http"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
	"github.com/MKhiriev/go-upload-desk/models"
)

func (h *Handler) userStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.UserService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) activateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.services.UserService.Activate(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.logAdminAction(r, "user activated", id)
	utils.WriteJSON(w, models.NewAccountResponse(user, app.MsgUserActivated), http.StatusOK)
}

// deactivateUser flips the active flag and revokes the user's token.
func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.services.UserService.Deactivate(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.logAdminAction(r, "user deactivated", id)
	utils.WriteJSON(w, models.NewAccountResponse(user, app.MsgUserDeactivated), http.StatusOK)
}

func (h *Handler) setUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var update models.RoleUpdate
	if err = utils.ReadJSON(r, &update); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		writeDetail(w, http.StatusBadRequest, app.MsgMalformedRequest)
		return
	}

	user, err := h.services.UserService.SetRole(r.Context(), id, update.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.logAdminAction(r, "user role changed", id)
	utils.WriteJSON(w, models.NewAccountResponse(user, app.MsgRoleUpdated), http.StatusOK)
}

func (h *Handler) logAdminAction(r *http.Request, action string, targetID int64) {
	event := logger.FromRequest(r).Info().Int64("target_user_id", targetID)
	if admin, ok := utils.GetUserFromContext(r.Context()); ok {
		event = event.Int64("admin_id", admin.ID)
	}
	event.Msg(action)
}
