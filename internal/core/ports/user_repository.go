package ports

import (
	"context"

	"github.com/frienemy/social-api/internal/core/domain"
)

// UserRepository is the persistence contract for users. Lookups are a closed
// set (by id, by email) rather than an open key/value predicate. Each write
// is atomic for a single record; nothing here groups multiple records into
// one transaction.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// PurgeRefs removes id from every user's friends and enemies sets.
	// Used to lazily reconcile references left dangling by a delete.
	PurgeRefs(ctx context.Context, id string) error
}
