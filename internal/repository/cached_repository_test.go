package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/domain"
)

// An unreachable Redis must cost only the cache, never the request.
func TestCachedRepository_DegradesWithoutRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	inner := NewMemoryRepository()
	cached := NewCachedRepository(inner, client, time.Minute, zap.NewNop())

	user := &domain.User{Email: "a@b.com", Password: "hash1", CreationDate: "2024-01-01T00:00:00Z"}
	if err := cached.Create(context.Background(), user); err != nil {
		t.Fatalf("create through cold cache: %v", err)
	}

	byID, err := cached.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID == nil || byID.Email != "a@b.com" {
		t.Fatalf("expected inner lookup to serve the request, got %+v", byID)
	}

	byEmail, err := cached.GetByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Fatalf("expected inner lookup to serve the request, got %+v", byEmail)
	}

	updated, err := cached.Update(context.Background(), &domain.User{ID: user.ID, Password: "hash2"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Password != "hash2" {
		t.Fatalf("expected update to pass through, got %+v", updated)
	}
}
