package session

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Role is the closed set of identities the backend issues.
type Role string

const (
	RoleUser       Role = "user"
	RoleProgrammer Role = "programmer"
	RoleAdmin      Role = "admin"
)

// ParseRole lower-cases a backend role ("PROGRAMMER" -> "programmer").
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// ID is an opaque identifier. The backend sends numbers, older stored
// sessions hold strings; both decode into the same value.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Session is the locally persisted authenticated identity.
type Session struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Token     string `json:"token"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Update is a fresher view of the stored identity returned by the backend.
// Empty fields leave the stored value untouched.
type Update struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Merge applies u on top of s. The token always survives.
func (s Session) Merge(u Update) Session {
	merged := s
	if u.ID != "" {
		merged.ID = u.ID
	}
	if u.Name != "" {
		merged.Name = u.Name
	}
	if u.Email != "" {
		merged.Email = u.Email
	}
	if u.Role != "" {
		merged.Role = ParseRole(u.Role)
	}
	if u.ImageURL != "" {
		merged.ImageURL = u.ImageURL
	}
	if u.CreatedAt != "" {
		merged.CreatedAt = u.CreatedAt
	}
	if u.UpdatedAt != "" {
		merged.UpdatedAt = u.UpdatedAt
	}
	merged.Token = s.Token
	return merged
}
