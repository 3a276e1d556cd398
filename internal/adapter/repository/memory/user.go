package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domain "user-registry-service/internal/domain/user"
	pkgerrors "user-registry-service/pkg/errors"
	"user-registry-service/pkg/logger"
)

// UserRegistry is the authoritative in-memory collection of users.
// Records are kept in insertion order and looked up by linear scan.
// Every operation holds the lock for its whole duration, so id assignment
// and mutation are atomic with respect to concurrent requests.
type UserRegistry struct {
	mu    sync.RWMutex
	users []domain.User
	log   *zap.Logger
}

// NewUserRegistry creates an empty registry.
func NewUserRegistry(log *zap.Logger) *UserRegistry {
	return &UserRegistry{log: log}
}

// notFound is returned by every lookup that misses.
func notFound(id int64) error {
	return pkgerrors.NewNotFoundError("user", fmt.Sprintf("user was not found: id=%d", id))
}

// Create assigns the next sequential id to u and appends it.
// The id is one more than the largest id currently held, or 1 when empty.
func (r *UserRegistry) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for _, existing := range r.users {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	created := domain.User{
		ID:       maxID + 1,
		Username: u.Username,
		Age:      u.Age,
	}
	r.users = append(r.users, created)

	logger.WithContext(ctx, r.log).Debug("user stored", zap.Int64("id", created.ID), zap.Int("size", len(r.users)))
	return &created, nil
}

// GetByID returns a copy of the user with the given id.
func (r *UserRegistry) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.users {
		if existing.ID == id {
			found := existing
			return &found, nil
		}
	}

	logger.WithContext(ctx, r.log).Debug("user lookup missed", zap.Int64("id", id))
	return nil, notFound(id)
}

// Update overwrites the username and age of the user with u.ID in place.
// A missing id leaves the collection untouched.
func (r *UserRegistry) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == u.ID {
			r.users[i].Username = u.Username
			r.users[i].Age = u.Age
			updated := r.users[i]

			logger.WithContext(ctx, r.log).Debug("user overwritten", zap.Int64("id", updated.ID))
			return &updated, nil
		}
	}

	return nil, notFound(u.ID)
}

// Delete removes the user with the given id and returns the removed record.
func (r *UserRegistry) Delete(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.users {
		if existing.ID == id {
			removed := existing
			r.users = append(r.users[:i], r.users[i+1:]...)

			logger.WithContext(ctx, r.log).Debug("user removed", zap.Int64("id", id), zap.Int("size", len(r.users)))
			return &removed, nil
		}
	}

	return nil, notFound(id)
}

// List returns a snapshot of all users in insertion order.
func (r *UserRegistry) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, len(r.users))
	copy(users, r.users)
	return users, nil
}

// Len returns the number of stored users.
func (r *UserRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
