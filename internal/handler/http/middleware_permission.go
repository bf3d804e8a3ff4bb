package http

import (
	"net/http"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
	"github.com/MKhiriev/go-upload-desk/models"
)

// requirePermission answers 403 unless the authenticated user holds perm.
// It must run after [Handler.auth].
func (h *Handler) requirePermission(perm models.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				writeDetail(w, http.StatusUnauthorized, app.MsgNotAuthenticated)
				return
			}

			if !h.services.PermissionService.HasPermission(user, perm) {
				logger.FromRequest(r).Info().
					Int64("user_id", user.ID).
					Str("permission", string(perm)).
					Msg("permission denied")
				writeDetail(w, http.StatusForbidden, app.MsgPermissionDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
