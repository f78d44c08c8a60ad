package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/frienemy/social-api/internal/core/domain"
	"github.com/frienemy/social-api/internal/core/ports"
)

// stubUserRepo is an in-memory storage port. failUpdateFor marks user ids
// whose Update calls fail, which drives the partial-failure tests.
type stubUserRepo struct {
	users         map[string]*domain.User
	nextID        int
	updates       []string
	failUpdateFor map[string]bool
	purged        []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), failUpdateFor: make(map[string]bool)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Friends = append([]string(nil), u.Friends...)
	clone.Enemies = append([]string(nil), u.Enemies...)
	return &clone
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = "u" + strconv.Itoa(r.nextID)
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failUpdateFor[user.ID] {
		return nil, domain.ErrUserNotFound
	}
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.updates = append(r.updates, user.ID)
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) PurgeRefs(_ context.Context, id string) error {
	r.purged = append(r.purged, id)
	for _, u := range r.users {
		u.Friends = domain.RemoveRef(u.Friends, id)
		u.Enemies = domain.RemoveRef(u.Enemies, id)
	}
	return nil
}

// stubReconciler records enqueued tasks without running them.
type stubReconciler struct {
	tasks []ports.ReconcileTask
}

func (s *stubReconciler) Enqueue(task ports.ReconcileTask) {
	s.tasks = append(s.tasks, task)
}

func newTestService() (*UserService, *stubUserRepo, *stubReconciler) {
	repo := newStubUserRepo()
	rec := &stubReconciler{}
	tokens := NewTokenService("secret", time.Hour, nil)
	svc := NewUserService(repo, tokens, rec, zerolog.Nop())
	return svc, repo, rec
}

func registerTwo(t *testing.T, svc *UserService) (a, b *domain.User) {
	t.Helper()
	a, err := svc.Register(context.Background(), ports.RegisterInput{Name: "a", Email: "a@x.com", Password: "p1"})
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	b, err = svc.Register(context.Background(), ports.RegisterInput{Name: "b", Email: "b@x.com", Password: "p2"})
	if err != nil {
		t.Fatalf("register b: %v", err)
	}
	return a, b
}

func TestUserService_Register_Validation(t *testing.T) {
	svc, repo, _ := newTestService()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing password, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Password: "p1"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing email, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected no records created, got %d", len(repo.users))
	}
}

func TestUserService_Register_Success(t *testing.T) {
	svc, repo, _ := newTestService()

	user, err := svc.Register(context.Background(), ports.RegisterInput{Name: "a", Email: "a@x.com", Password: "p1"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(repo.users))
	}
	if len(user.Friends) != 0 || len(user.Enemies) != 0 {
		t.Fatalf("expected empty relation sets, got %v / %v", user.Friends, user.Enemies)
	}
	if user.PasswordHash == "p1" || user.PasswordHash == "" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("expected member role at registration, got %s", user.Role)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "p1"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "p2"}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Login_Success(t *testing.T) {
	svc, _, _ := newTestService()
	a, _ := registerTwo(t, svc)

	token, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@x.com", Password: "p1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claim, err := svc.tokens.VerifyToken(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claim.ID != a.ID {
		t.Fatalf("expected claim id %s, got %s", a.ID, claim.ID)
	}
	if claim.Email != "a@x.com" {
		t.Fatalf("unexpected claim email: %s", claim.Email)
	}
}

func TestUserService_Login_Failures(t *testing.T) {
	svc, _, _ := newTestService()
	registerTwo(t, svc)

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@x.com", Password: "wrong"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "ghost@x.com", Password: "p1"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@x.com"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing password, got %v", err)
	}
}

func TestUserService_AddFriend_Symmetry(t *testing.T) {
	svc, repo, _ := newTestService()
	a, b := registerTwo(t, svc)

	updated, err := svc.AddFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: b.ID})
	if err != nil {
		t.Fatalf("AddFriend returned error: %v", err)
	}
	if !domain.HasRef(updated.Friends, b.ID) {
		t.Fatalf("expected %s in caller friends, got %v", b.ID, updated.Friends)
	}
	if !domain.HasRef(repo.users[b.ID].Friends, a.ID) {
		t.Fatalf("expected %s in target friends, got %v", a.ID, repo.users[b.ID].Friends)
	}

	// Repeating the call keeps set semantics.
	again, err := svc.AddFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: b.ID})
	if err != nil {
		t.Fatalf("repeat AddFriend returned error: %v", err)
	}
	if len(again.Friends) != 1 {
		t.Fatalf("expected single friend ref after repeat, got %v", again.Friends)
	}
}

func TestUserService_AddEnemy_Symmetry(t *testing.T) {
	svc, repo, _ := newTestService()
	a, b := registerTwo(t, svc)

	updated, err := svc.AddEnemy(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: b.ID})
	if err != nil {
		t.Fatalf("AddEnemy returned error: %v", err)
	}
	if !domain.HasRef(updated.Enemies, b.ID) || !domain.HasRef(repo.users[b.ID].Enemies, a.ID) {
		t.Fatalf("expected symmetric enemy refs")
	}
	if len(updated.Friends) != 0 {
		t.Fatalf("friends set must be untouched, got %v", updated.Friends)
	}
}

func TestUserService_MutateRelation_Validation(t *testing.T) {
	svc, repo, _ := newTestService()
	a, _ := registerTwo(t, svc)

	if _, err := svc.AddFriend(context.Background(), ports.RelationshipInput{TargetID: a.ID}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for missing caller, got %v", err)
	}
	if _, err := svc.AddFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for missing target, got %v", err)
	}
	if _, err := svc.AddFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: "ghost"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for unknown target, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("expected zero writes, got %v", repo.updates)
	}
}

func TestUserService_MutateRelation_SelfGuard(t *testing.T) {
	svc, repo, _ := newTestService()
	a, _ := registerTwo(t, svc)

	if _, err := svc.AddFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: a.ID}); err != domain.ErrSelfRelation {
		t.Fatalf("expected ErrSelfRelation, got %v", err)
	}
	if _, err := svc.AddEnemy(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: a.ID}); err != domain.ErrSelfRelation {
		t.Fatalf("expected ErrSelfRelation, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("expected zero writes, got %v", repo.updates)
	}
}

func TestUserService_RemoveFriend(t *testing.T) {
	svc, repo, _ := newTestService()
	a, b := registerTwo(t, svc)

	if _, err := svc.AddFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: b.ID}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	updated, err := svc.RemoveFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: b.ID})
	if err != nil {
		t.Fatalf("RemoveFriend returned error: %v", err)
	}
	if domain.HasRef(updated.Friends, b.ID) || domain.HasRef(repo.users[b.ID].Friends, a.ID) {
		t.Fatalf("expected both sides removed")
	}

	// Removing a non-present friend is a no-op, not an error.
	if _, err := svc.RemoveFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: b.ID}); err != nil {
		t.Fatalf("repeat RemoveFriend returned error: %v", err)
	}
}

func TestUserService_ReciprocalFailure_Compensated(t *testing.T) {
	svc, repo, rec := newTestService()
	a, b := registerTwo(t, svc)

	repo.failUpdateFor[b.ID] = true

	updated, err := svc.AddFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: b.ID})
	if err != nil {
		t.Fatalf("expected success from the caller's perspective, got %v", err)
	}
	if !domain.HasRef(updated.Friends, b.ID) {
		t.Fatalf("caller-side write must be committed")
	}
	if domain.HasRef(repo.users[b.ID].Friends, a.ID) {
		t.Fatalf("reciprocal write should have failed in this scenario")
	}

	if len(rec.tasks) != 1 {
		t.Fatalf("expected one reconcile task, got %d", len(rec.tasks))
	}
	task := rec.tasks[0]
	if task.Kind != ports.ReconcileAdd || task.PartyID != b.ID || task.OtherID != a.ID || task.Set != ports.SetFriends {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestUserService_ReciprocalRemoveFailure_Compensated(t *testing.T) {
	svc, repo, rec := newTestService()
	a, b := registerTwo(t, svc)

	if _, err := svc.AddFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: b.ID}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	repo.failUpdateFor[b.ID] = true
	if _, err := svc.RemoveFriend(context.Background(), ports.RelationshipInput{CallerID: a.ID, TargetID: b.ID}); err != nil {
		t.Fatalf("expected success from the caller's perspective, got %v", err)
	}

	if len(rec.tasks) != 1 || rec.tasks[0].Kind != ports.ReconcileRemove {
		t.Fatalf("expected a reciprocal-remove task, got %+v", rec.tasks)
	}
}

func TestUserService_EditProfile_PreservesIdentity(t *testing.T) {
	svc, repo, _ := newTestService()
	a, b := registerTwo(t, svc)

	updated, err := svc.EditProfile(context.Background(), ports.EditProfileInput{CallerID: a.ID, Name: "renamed"})
	if err != nil {
		t.Fatalf("EditProfile returned error: %v", err)
	}
	if updated.ID != a.ID {
		t.Fatalf("expected caller id %s preserved, got %s", a.ID, updated.ID)
	}
	if updated.Name != "renamed" {
		t.Fatalf("expected name updated, got %s", updated.Name)
	}
	if repo.users[b.ID].Name != "b" {
		t.Fatalf("other records must be untouched")
	}
}

func TestUserService_EditProfile_Failures(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.EditProfile(context.Background(), ports.EditProfileInput{Name: "x"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for missing caller id, got %v", err)
	}
	if _, err := svc.EditProfile(context.Background(), ports.EditProfileInput{CallerID: "ghost"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for unknown caller, got %v", err)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	svc, repo, rec := newTestService()
	a, b := registerTwo(t, svc)

	if err := svc.DeleteUser(context.Background(), a.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if _, ok := repo.users[a.ID]; ok {
		t.Fatalf("expected caller record erased")
	}
	if _, ok := repo.users[b.ID]; !ok {
		t.Fatalf("other records must survive")
	}

	if len(rec.tasks) != 1 {
		t.Fatalf("expected one purge task, got %d", len(rec.tasks))
	}
	if rec.tasks[0].Kind != ports.ReconcilePurge || rec.tasks[0].PartyID != a.ID {
		t.Fatalf("unexpected task: %+v", rec.tasks[0])
	}
}

func TestUserService_DeleteUser_Failures(t *testing.T) {
	svc, _, rec := newTestService()

	if err := svc.DeleteUser(context.Background(), ""); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for missing caller id, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for unknown caller, got %v", err)
	}
	if len(rec.tasks) != 0 {
		t.Fatalf("expected no purge tasks on failure, got %d", len(rec.tasks))
	}
}

func TestUserService_ListUsers(t *testing.T) {
	svc, _, _ := newTestService()
	registerTwo(t, svc)

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
