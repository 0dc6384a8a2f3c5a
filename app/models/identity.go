package models

// Identity kinds. A "user" identity is backed by a store row; a "demo"
// identity exists only inside its session.
const (
	IdentityUser = "user"
	IdentityDemo = "demo"
)

// Identity is the resolved login attached to a session. Store-backed logins
// keep only the user ID in the session and re-resolve on each request; demo
// identities are stored whole because there is no row to look up.
type Identity struct {
	Kind    string `json:"kind"`
	ID      uint   `json:"id,omitempty"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Picture string `json:"picture,omitempty"`
}

// FromUser builds a store-backed identity.
func FromUser(u User) Identity {
	return Identity{
		Kind:    IdentityUser,
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Role:    u.Role,
		Picture: u.Picture,
	}
}

// IsDemo reports whether the identity is session-scoped only.
func (i Identity) IsDemo() bool { return i.Kind == IdentityDemo }
