package http

import (
	"net/http"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
	"github.com/MKhiriev/go-upload-desk/models"
)

func (h *Handler) autocomplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := h.issueCSRF(w, r)
	if !ok {
		return
	}

	utils.WriteJSON(w, models.AutocompleteResponse{
		Suggestions: h.services.SearchService.Autocomplete(ctx, r.URL.Query().Get("q")),
		CSRFToken:   token,
	}, http.StatusOK)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SearchRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("Invalid JSON was passed")
		writeSimpleError(w, http.StatusBadRequest, app.MsgInvalidJSON)
		return
	}

	token, ok := h.issueCSRF(w, r)
	if !ok {
		return
	}

	utils.WriteJSON(w, models.SearchResponse{
		CSRFToken: token,
		Results:   h.services.SearchService.Search(ctx, req.Query),
	}, http.StatusOK)
}

// issueCSRF mints a fresh anti-forgery token and mirrors it in the cookie.
func (h *Handler) issueCSRF(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, err := h.services.CSRFService.Issue(r.Context())
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("issuing csrf token")
		writeDetail(w, http.StatusInternalServerError, app.MsgInternalError)
		return "", false
	}

	h.setCSRFCookie(w, token)
	return token, true
}
