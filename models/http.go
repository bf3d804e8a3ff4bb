package models

// RegisterRequest is the payload of POST /api/auth/register/.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// LoginRequest is the payload of POST /api/auth/login/.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileUpdate represents a partial update of the caller's own profile.
// Only non-nil fields will be updated; id and username are read-only and
// are not part of the payload.
type ProfileUpdate struct {
	// Email is validated for format and uniqueness before it is stored.
	// If nil, the field will not be updated.
	Email *string `json:"email,omitempty"`

	// FirstName is the updated given name.
	// If nil, the field will not be updated.
	FirstName *string `json:"first_name,omitempty"`

	// LastName is the updated family name.
	// If nil, the field will not be updated.
	LastName *string `json:"last_name,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil
}

// RoleUpdate is the payload of PUT /api/admin/users/{id}/role/.
type RoleUpdate struct {
	Role Role `json:"role"`
}

// SearchRequest is the payload of POST /api/search.
type SearchRequest struct {
	Query string `json:"query"`
}
