package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/frienemy/social-api/internal/core/domain"
	"github.com/frienemy/social-api/internal/core/ports"
)

// UserService orchestrates account operations and the relationship graph.
//
// Relationship mutations touch two records with two independent writes. The
// caller's write decides the outcome of the request; a failed reciprocal
// write is handed to the reconciler as a compensating task instead of
// failing a request whose first write already committed.
type UserService struct {
	repo       ports.UserRepository
	tokens     ports.TokenService
	reconciler ports.Reconciler
	log        zerolog.Logger
}

func NewUserService(repo ports.UserRepository, tokens ports.TokenService, reconciler ports.Reconciler, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, reconciler: reconciler, log: log}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.tokens.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleMember,
		Friends:      []string{},
		Enemies:      []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *UserService) Login(ctx context.Context, in ports.LoginInput) (string, error) {
	if in.Email == "" || in.Password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.tokens.ComparePassword(in.Password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, nil
}

func (s *UserService) AddFriend(ctx context.Context, in ports.RelationshipInput) (*domain.User, error) {
	return s.mutateRelation(ctx, in, ports.SetFriends, true)
}

func (s *UserService) AddEnemy(ctx context.Context, in ports.RelationshipInput) (*domain.User, error) {
	return s.mutateRelation(ctx, in, ports.SetEnemies, true)
}

func (s *UserService) RemoveFriend(ctx context.Context, in ports.RelationshipInput) (*domain.User, error) {
	return s.mutateRelation(ctx, in, ports.SetFriends, false)
}

func (s *UserService) RemoveEnemy(ctx context.Context, in ports.RelationshipInput) (*domain.User, error) {
	return s.mutateRelation(ctx, in, ports.SetEnemies, false)
}

// mutateRelation applies a symmetric add or remove on the given set.
// Both parties are fetched, mutated in memory, then persisted one by one.
func (s *UserService) mutateRelation(ctx context.Context, in ports.RelationshipInput, set ports.RelationSet, add bool) (*domain.User, error) {
	if in.CallerID == "" || in.TargetID == "" {
		return nil, domain.ErrUserNotFound
	}
	if in.CallerID == in.TargetID {
		return nil, domain.ErrSelfRelation
	}

	caller, err := s.repo.FindByID(ctx, in.CallerID)
	if err != nil {
		return nil, err
	}
	target, err := s.repo.FindByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	applyRef(caller, set, target.ID, add)
	applyRef(target, set, caller.ID, add)

	updated, err := s.repo.Update(ctx, caller)
	if err != nil {
		return nil, err
	}

	// The caller's side is committed. A reciprocal failure is repaired
	// asynchronously rather than surfaced, so the response stays consistent
	// with what was actually written for the caller.
	if _, err := s.repo.Update(ctx, target); err != nil {
		kind := ports.ReconcileAdd
		if !add {
			kind = ports.ReconcileRemove
		}
		s.log.Warn().Err(err).
			Str("party_id", target.ID).
			Str("other_id", caller.ID).
			Str("set", string(set)).
			Msg("reciprocal write failed, scheduling reconciliation")
		s.reconciler.Enqueue(ports.ReconcileTask{
			Kind:    kind,
			PartyID: target.ID,
			OtherID: caller.ID,
			Set:     set,
		})
	}

	return updated, nil
}

func applyRef(user *domain.User, set ports.RelationSet, id string, add bool) {
	mutate := domain.RemoveRef
	if add {
		mutate = domain.AddRef
	}
	if set == ports.SetFriends {
		user.Friends = mutate(user.Friends, id)
		return
	}
	user.Enemies = mutate(user.Enemies, id)
}

func (s *UserService) EditProfile(ctx context.Context, in ports.EditProfileInput) (*domain.User, error) {
	if in.CallerID == "" {
		return nil, domain.ErrUserNotFound
	}

	// Fetch the current record both to confirm existence and to anchor the
	// update on the caller's own id, whatever the body claimed.
	current, err := s.repo.FindByID(ctx, in.CallerID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		current.Name = in.Name
	}
	if in.Email != "" {
		current.Email = in.Email
	}
	current.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", updated.ID).Msg("profile updated")
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, callerID string) error {
	if callerID == "" {
		return domain.ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, callerID); err != nil {
		return err
	}

	// References to the erased record are cleaned up lazily; readers must
	// already tolerate ids that no longer resolve.
	s.reconciler.Enqueue(ports.ReconcileTask{
		Kind:    ports.ReconcilePurge,
		PartyID: callerID,
	})

	s.log.Info().Str("user_id", callerID).Msg("user deleted")
	return nil
}
