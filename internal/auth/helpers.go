package auth

import (
	"errors"

	"github.com/loganlanou/ciber-client/internal/session"
)

// ErrNotAuthenticated is returned before any network call when an operation
// needs a token and no session is stored.
var ErrNotAuthenticated = errors.New("no authentication token found")

// IsAuthenticated reports whether s is a usable session.
func IsAuthenticated(s *session.Session) bool {
	return s != nil
}

// HasRole checks the session role.
func HasRole(s *session.Session, role session.Role) bool {
	return s != nil && s.Role == role
}

// IsAdmin checks if the session belongs to an admin
func IsAdmin(s *session.Session) bool {
	return HasRole(s, session.RoleAdmin)
}

// RequireToken returns the session when it carries a token.
func RequireToken(s *session.Session) (*session.Session, error) {
	if s == nil || s.Token == "" {
		return nil, ErrNotAuthenticated
	}
	return s, nil
}

// CanManage reports whether s may modify a record owned by ownerID.
func CanManage(s *session.Session, ownerID session.ID) bool {
	if s == nil {
		return false
	}
	return s.ID == ownerID || IsAdmin(s)
}
