package domain

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User mirrors the backend "utilisateur" record. The frontend never owns
// user state; it only reads and edits a profile subset.
type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	PhotoURL      string `json:"photoUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
	Online        bool   `json:"online,omitempty"`
}

// DisplayName picks the most presentable identifier for a user.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.Email != "" {
		return u.Email
	}
	return "Utilisateur"
}
