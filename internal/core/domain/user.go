package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is an account and a node in the social graph. Friends and Enemies
// hold ids of other users; both relations are kept mutually symmetric by
// the service layer, never by the store.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Friends      []string  `json:"friends"`
	Enemies      []string  `json:"enemies"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRef reports whether id is present in the given relation set.
func HasRef(set []string, id string) bool {
	for _, ref := range set {
		if ref == id {
			return true
		}
	}
	return false
}

// AddRef returns set with id appended. Adding an id already present is a
// no-op, preserving set semantics.
func AddRef(set []string, id string) []string {
	if HasRef(set, id) {
		return set
	}
	return append(set, id)
}

// RemoveRef returns set without id. Removing an absent id is a no-op.
func RemoveRef(set []string, id string) []string {
	out := make([]string, 0, len(set))
	for _, ref := range set {
		if ref != id {
			out = append(out, ref)
		}
	}
	return out
}
