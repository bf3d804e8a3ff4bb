package models

// AuthResponse is returned by register, login and token refresh.
type AuthResponse struct {
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// MessageResponse carries a single human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// FormErrorResponse is returned when a submitted form fails validation.
// Errors maps field names (or "non_field_errors") to their messages.
type FormErrorResponse struct {
	Errors  map[string][]string `json:"errors"`
	Message string              `json:"message"`
}

// SimpleErrorResponse is the bare {"error": "..."} body used by logout,
// token refresh and the search endpoint.
type SimpleErrorResponse struct {
	Error string `json:"error"`
}

// ErrorEnvelope is the normalized body of every exception-class error
// (authentication, permission, not found, media type, payload size).
type ErrorEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// FileResponse wraps a freshly uploaded file.
type FileResponse struct {
	File    UploadedFile `json:"file"`
	Message string       `json:"message"`
}

// FileListResponse contains the caller's non-deleted files, newest first.
type FileListResponse struct {
	Files []UploadedFile `json:"files"`
	Count int            `json:"count"`
}

// PermissionsResponse describes the caller's effective role and capabilities.
type PermissionsResponse struct {
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
}

// AutocompleteResponse is returned by GET /api/autocomplete.
type AutocompleteResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
	CSRFToken   string       `json:"csrf_token"`
}

// SearchResponse is returned by POST /api/search.
type SearchResponse struct {
	CSRFToken string         `json:"csrf_token"`
	Results   []SearchResult `json:"results"`
}

// AccountResponse is returned by the account administration endpoints. It
// exposes the fields hidden from the public user JSON.
type AccountResponse struct {
	Message  string `json:"message"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
	Role     Role   `json:"role"`
}

// NewAccountResponse builds an AccountResponse for user.
func NewAccountResponse(user User, message string) AccountResponse {
	return AccountResponse{
		Message:  message,
		ID:       user.ID,
		Username: user.Username,
		IsActive: user.IsActive,
		Role:     user.Role,
	}
}
