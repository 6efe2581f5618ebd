package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/identity-service/internal/domain"
	util "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

// memoryRepository is a map-backed gateway used in tests and local runs
// without a database. It mirrors the Postgres adapter's semantics, merge
// updates included.
type memoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*domain.User
	byEmail map[string]int64
}

// NewMemoryRepository returns an in-memory gateway implementation.
func NewMemoryRepository() UserGateway {
	return &memoryRepository{
		nextID:  1,
		byID:    make(map[int64]*domain.User),
		byEmail: make(map[string]int64),
	}
}

func (r *memoryRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return util.NewConflict("user", map[string]any{"email": user.Email})
	}

	user.ID = r.nextID
	r.nextID++

	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(stored), nil
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return cloneUser(r.byID[id]), nil
}

func (r *memoryRepository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[user.ID]
	if !ok {
		return nil, util.NewNotFound("user", map[string]any{"id": user.ID})
	}

	if user.Email != "" && user.Email != stored.Email {
		if _, taken := r.byEmail[user.Email]; taken {
			return nil, util.NewConflict("user", map[string]any{"email": user.Email})
		}
		delete(r.byEmail, stored.Email)
		stored.Email = user.Email
		r.byEmail[stored.Email] = stored.ID
	}
	if user.Password != "" {
		stored.Password = user.Password
	}
	if user.ProfileID != nil {
		stored.ProfileID = cloneInt64(user.ProfileID)
	}
	if user.StatusID != nil {
		stored.StatusID = cloneInt64(user.StatusID)
	}

	return cloneUser(stored), nil
}

func cloneUser(u *domain.User) *domain.User {
	copied := *u
	copied.ProfileID = cloneInt64(u.ProfileID)
	copied.StatusID = cloneInt64(u.StatusID)
	return &copied
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
