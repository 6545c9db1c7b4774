package models

// User is an account record. Email is the login identifier.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username,omitempty"`
	PasswordHash string `json:"-"` // never serialized
	IsActive     bool   `json:"is_active"`
}

// UserPatch is a partial update. Nil fields are left untouched, so
// "not provided" stays distinguishable from "explicitly set to zero".
// Password carries the plaintext when bound from a request; the service
// layer replaces it with a bcrypt hash before the patch reaches storage.
type UserPatch struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Username == nil && p.Password == nil && p.IsActive == nil
}
