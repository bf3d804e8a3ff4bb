package http

import (
	"net/http"

	"github.com/MKhiriev/go-upload-desk/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.BuildInfo(r.Context()), http.StatusOK)
}
