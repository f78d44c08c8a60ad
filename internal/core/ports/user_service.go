package ports

import (
	"context"

	"github.com/frienemy/social-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries the credential pair submitted at login.
type LoginInput struct {
	Email    string
	Password string
}

// RelationshipInput names the two parties of a relationship mutation.
// CallerID comes from the verified identity claim, TargetID from the body.
type RelationshipInput struct {
	CallerID string
	TargetID string
}

// EditProfileInput carries the patchable profile fields. The caller id is
// always taken from the identity claim, never from the body.
type EditProfileInput struct {
	CallerID string
	Name     string
	Email    string
}

// UserService defines the use-case operations over accounts and the
// relationship graph.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (string, error)
	AddFriend(ctx context.Context, in RelationshipInput) (*domain.User, error)
	AddEnemy(ctx context.Context, in RelationshipInput) (*domain.User, error)
	RemoveFriend(ctx context.Context, in RelationshipInput) (*domain.User, error)
	RemoveEnemy(ctx context.Context, in RelationshipInput) (*domain.User, error)
	EditProfile(ctx context.Context, in EditProfileInput) (*domain.User, error)
	DeleteUser(ctx context.Context, callerID string) error
}
