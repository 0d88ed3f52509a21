package memory

import (
	"context"
	"sync"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// indexedUser remembers the keys a user was indexed under at save time, so a
// later update can drop them even if the entity was mutated in between.
type indexedUser struct {
	user     domain.User
	username string
	email    string
}

type userRepository struct {
	mu         sync.RWMutex
	users      map[string]indexedUser
	byUsername map[string]string
	byEmail    map[string]string
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		users:      make(map[string]indexedUser),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

func (r *userRepository) Save(ctx context.Context, user domain.User) error {
	if user == nil {
		return domain.NewError(domain.ErrInvalidArgument, "user cannot be nil")
	}
	id, username, email := user.UserID(), user.Username(), user.Email()

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byUsername[username]; ok && owner != id {
		return repository.DuplicateError("username", username)
	}
	if owner, ok := r.byEmail[email]; ok && owner != id {
		return repository.DuplicateError("email", email)
	}

	if old, ok := r.users[id]; ok {
		delete(r.byUsername, old.username)
		delete(r.byEmail, old.email)
	}
	r.users[id] = indexedUser{user: user, username: username, email: email}
	r.byUsername[username] = id
	r.byEmail[email] = id
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (domain.User, error) {
	if err := repository.RequireID("user ID", userID); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return entry.user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	if err := repository.RequireID("username", username); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(r.byUsername, username)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := repository.RequireID("email", email); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(r.byEmail, email)
}

// lookup resolves an auxiliary index. Callers hold the read lock.
func (r *userRepository) lookup(index map[string]string, key string) (domain.User, error) {
	id, ok := index[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.users[id].user, nil
}

func (r *userRepository) FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Role() == role }), nil
}

func (r *userRepository) FindActive(ctx context.Context) ([]domain.User, error) {
	return r.find(domain.User.IsActive), nil
}

func (r *userRepository) FindInactive(ctx context.Context) ([]domain.User, error) {
	return r.find(func(u domain.User) bool { return !u.IsActive() }), nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return r.find(nil), nil
}

func (r *userRepository) find(keep func(domain.User) bool) []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := collect(r.users, func(e indexedUser) string { return e.user.UserID() }, func(e indexedUser) bool {
		return keep == nil || keep(e.user)
	})
	out := make([]domain.User, len(entries))
	for i, e := range entries {
		out[i] = e.user
	}
	return out
}

func (r *userRepository) ExistsByID(ctx context.Context, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[userID]
	return ok, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUsername[username]
	return ok, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *userRepository) DeleteByID(ctx context.Context, userID string) (bool, error) {
	if err := repository.RequireID("user ID", userID); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	delete(r.users, userID)
	delete(r.byUsername, entry.username)
	delete(r.byEmail, entry.email)
	return true, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	return r.count(func(u domain.User) bool { return u.Role() == role }), nil
}

func (r *userRepository) CountActive(ctx context.Context) (int, error) {
	return r.count(domain.User.IsActive), nil
}

func (r *userRepository) CountInactive(ctx context.Context) (int, error) {
	return r.count(func(u domain.User) bool { return !u.IsActive() }), nil
}

func (r *userRepository) count(keep func(domain.User) bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return count(r.users, func(e indexedUser) bool { return keep(e.user) })
}
