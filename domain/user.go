package domain

import "time"

// User represents an authenticated identity in the platform.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName is the name used when addressing the user, falling back to
// the username when no full name is set.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// HasEmail reports whether the user can receive mail.
func (u *User) HasEmail() bool {
	return u != nil && u.Email != ""
}
