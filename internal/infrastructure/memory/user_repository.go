package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type userRow struct {
	user entity.User
	seq  int64
}

// UserRepo implements repository.UserRepository in memory.
type UserRepo struct {
	store *Store
}

// NewUserRepository builds the repository over store.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create stores a copy of user.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, row := range r.store.users {
		if strings.EqualFold(row.user.Username, user.Username) {
			return domain.ErrDuplicateUsername
		}
	}
	r.store.users[user.ID] = &userRow{user: *user, seq: r.store.nextSeq()}
	return nil
}

// GetByID returns a copy of the user, or nil.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	row, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	u := row.user
	return &u, nil
}

// GetByUsername matches case-insensitively.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, row := range r.store.users {
		if strings.EqualFold(row.user.Username, username) {
			u := row.user
			return &u, nil
		}
	}
	return nil, nil
}

// Update replaces the stored user. Unknown ids are ignored, like an UPDATE matching no row.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.users[user.ID]
	if !ok {
		return nil
	}
	for id, other := range r.store.users {
		if id != user.ID && strings.EqualFold(other.user.Username, user.Username) {
			return domain.ErrDuplicateUsername
		}
	}
	row.user = *user
	return nil
}
