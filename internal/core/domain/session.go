package domain

// Session is the process-wide view of "who is logged in". It is persisted as
// the cookie triple (token, userId, username) and rebuilt on every request;
// email and role come from the decoded bearer token.
type Session struct {
	Token    string
	UserID   int64
	Username string
	Email    string
	Role     string
}

// IsAdmin is a pure predicate on the cached role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// LoggedIn reports whether a usable identity is present.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}
