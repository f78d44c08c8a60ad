package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/frienemy/social-api/internal/core/domain"
	"github.com/frienemy/social-api/internal/core/ports"
)

// StoredRolePolicy embeds the role persisted on the user record.
func StoredRolePolicy(user *domain.User) string {
	if user.Role == "" {
		return domain.RoleMember
	}
	return user.Role
}

// FixedAdminRolePolicy stamps every token with the admin role regardless of
// the stored record. Kept for compatibility with deployments that relied on
// the historical behaviour.
func FixedAdminRolePolicy(_ *domain.User) string {
	return domain.RoleAdmin
}

// TokenService implements credential hashing and HS256 identity tokens.
// It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret   string
	tokenTTL time.Duration
	role     ports.RolePolicy
}

func NewTokenService(secret string, tokenTTL time.Duration, role ports.RolePolicy) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if role == nil {
		role = StoredRolePolicy
	}
	return &TokenService{secret: secret, tokenTTL: tokenTTL, role: role}
}

func (s *TokenService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *TokenService) ComparePassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (s *TokenService) IssueToken(user *domain.User) (string, error) {
	if s.secret == "" {
		return "", domain.ErrMissingSecret
	}

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  s.role(user),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func (s *TokenService) VerifyToken(token string) (*domain.IdentityClaim, error) {
	if s.secret == "" {
		return nil, domain.ErrMissingSecret
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	claim := &domain.IdentityClaim{}
	claim.ID, _ = claims["id"].(string)
	claim.Email, _ = claims["email"].(string)
	claim.Role, _ = claims["role"].(string)
	if claim.ID == "" {
		return nil, domain.ErrInvalidToken
	}
	return claim, nil
}
