package ports

import "github.com/frienemy/social-api/internal/core/domain"

// RolePolicy decides which role is embedded in an issued token. Kept as a
// single injectable policy point so the derivation can be swapped without
// touching the token service.
type RolePolicy func(user *domain.User) string

// TokenService hashes and verifies credentials and issues/verifies signed
// identity tokens.
type TokenService interface {
	HashPassword(plain string) (string, error)
	// ComparePassword never errors on mismatch; it only reports false.
	ComparePassword(plain, hash string) bool
	IssueToken(user *domain.User) (string, error)
	VerifyToken(token string) (*domain.IdentityClaim, error)
}
