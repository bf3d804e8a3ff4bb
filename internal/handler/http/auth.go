package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/service"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
	"github.com/MKhiriev/go-upload-desk/internal/validators"
	"github.com/MKhiriev/go-upload-desk/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeFormErrors(w, invalidJSONErrors(), app.MsgRegistrationFailed)
		return
	}

	user, token, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			log.Info().Str("username", req.Username).Strs("fields", fieldNames(ve.Fields)).Msg("registration rejected")
			writeFormErrors(w, ve.Fields, app.MsgRegistrationFailed)
			return
		}
		log.Err(err).Msg("unexpected error occurred during user registration")
		writeDetail(w, http.StatusInternalServerError, app.MsgInternalError)
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")
	utils.WriteJSON(w, models.AuthResponse{
		User:    user,
		Token:   token.Key,
		Message: app.MsgRegistrationSuccessful,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeFormErrors(w, invalidJSONErrors(), app.MsgLoginFailed)
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			log.Info().Str("username", req.Username).Msg("login rejected")
			writeFormErrors(w, ve.Fields, app.MsgLoginFailed)
			return
		}
		log.Err(err).Msg("unexpected error occurred during user login")
		writeDetail(w, http.StatusInternalServerError, app.MsgInternalError)
		return
	}

	log.Debug().Int64("user_id", user.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, models.AuthResponse{
		User:    user,
		Token:   token.Key,
		Message: app.MsgLoginSuccessful,
	}, http.StatusOK)
}

// logout revokes the presented key. It is mounted behind
// requireCredentials, so the key may already be unknown.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	key, ok := utils.GetTokenKeyFromContext(ctx)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, app.MsgNotAuthenticated)
		return
	}

	if err := h.services.AuthService.Logout(ctx, key); err != nil {
		if errors.Is(err, service.ErrNoActiveToken) {
			log.Info().Msg("logout without an active token")
			writeSimpleError(w, http.StatusBadRequest, app.MsgNoActiveToken)
			return
		}
		log.Err(err).Msg("logout failed")
		writeSimpleError(w, http.StatusBadRequest, app.MsgLogoutFailed)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgLogoutSuccessful}, http.StatusOK)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateProfile handles both PUT and PATCH; absent fields are left as they
// are in either case. id and username are read-only and ignored.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if err := utils.ReadJSON(r, &update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeDetail(w, http.StatusBadRequest, app.MsgMalformedRequest)
		return
	}

	updated, err := h.services.UserService.UpdateProfile(ctx, user.ID, update)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	token, err := h.services.AuthService.RefreshToken(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("token refresh failed")
		writeSimpleError(w, http.StatusBadRequest, app.MsgTokenRefreshFailed)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		User:    user,
		Token:   token.Key,
		Message: app.MsgTokenRefreshed,
	}, http.StatusOK)
}

func (h *Handler) permissions(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	perms := h.services.PermissionService
	utils.WriteJSON(w, models.PermissionsResponse{
		Role:        perms.Role(user),
		Permissions: perms.Permissions(user),
	}, http.StatusOK)
}

// currentUser returns the user stored by the auth middleware, answering 401
// itself when there is none.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Err(errNoUserInContext).Send()
		writeDetail(w, http.StatusUnauthorized, app.MsgNotAuthenticated)
		return models.User{}, false
	}
	return user, true
}

func invalidJSONErrors() validators.FieldErrors {
	return validators.FieldErrors{validators.FieldNonField: {app.MsgInvalidJSON}}
}

func fieldNames(fields validators.FieldErrors) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}
