package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/domain"
)

// cachedRepository is a read-through Redis cache in front of another
// gateway. Lookups are served from cache when possible; writes pass through
// and drop the affected keys. Redis being down never fails a request, it
// only costs the cache.
type cachedRepository struct {
	inner  UserGateway
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRepository decorates a gateway with a Redis lookup cache.
func NewCachedRepository(inner UserGateway, client *redis.Client, ttl time.Duration, logger *zap.Logger) UserGateway {
	return &cachedRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *cachedRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.inner.Create(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx, user)
	return nil
}

func (r *cachedRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if user, ok := r.fetch(ctx, idKey(id)); ok {
		return user, nil
	}
	user, err := r.inner.GetByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	r.store(ctx, user)
	return user, nil
}

func (r *cachedRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := r.fetch(ctx, emailKey(email)); ok {
		return user, nil
	}
	user, err := r.inner.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return user, err
	}
	r.store(ctx, user)
	return user, nil
}

func (r *cachedRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	// The stored email may change, so the stale email key has to go too.
	previous, _ := r.inner.GetByID(ctx, user.ID)

	updated, err := r.inner.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if previous != nil {
		r.invalidate(ctx, previous)
	}
	r.invalidate(ctx, updated)
	return updated, nil
}

func (r *cachedRepository) fetch(ctx context.Context, key string) (*domain.User, bool) {
	payload, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("user cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		r.logger.Warn("user cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &user, true
}

func (r *cachedRepository) store(ctx context.Context, user *domain.User) {
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	pipe := r.client.Pipeline()
	pipe.Set(ctx, idKey(user.ID), payload, r.ttl)
	pipe.Set(ctx, emailKey(user.Email), payload, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("user cache write failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

func (r *cachedRepository) invalidate(ctx context.Context, user *domain.User) {
	if err := r.client.Del(ctx, idKey(user.ID), emailKey(user.Email)).Err(); err != nil {
		r.logger.Warn("user cache invalidation failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

func idKey(id int64) string {
	return fmt.Sprintf("user:id:%d", id)
}

func emailKey(email string) string {
	return "user:email:" + email
}
