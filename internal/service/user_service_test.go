package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/repository"
	util "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

func newTestUserService() *UserService {
	cfg := config.AuthConfig{BcryptCost: 4}
	return NewUserService(cfg, repository.NewMemoryRepository(), nil, zap.NewNop())
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestUserService_Create(t *testing.T) {
	svc := newTestUserService()

	user := &domain.User{
		Email:     "a@b.com",
		Password:  "longenough1",
		ProfileID: int64Ptr(1),
		StatusID:  int64Ptr(1),
	}
	created, err := svc.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if !created.Persisted() {
		t.Fatalf("expected assigned id")
	}
	if created.Password == "longenough1" {
		t.Fatalf("expected password to be hashed before persistence")
	}
	if !auth.VerifyPassword("longenough1", created.Password) {
		t.Fatalf("stored hash does not match original password")
	}
	if created.CreationDate == "" {
		t.Fatalf("expected creation date to be set")
	}
	if _, err := time.Parse(time.RFC3339, created.CreationDate); err != nil {
		t.Fatalf("creation date not RFC 3339: %v", err)
	}
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	svc := newTestUserService()

	first := &domain.User{Email: "a@b.com", Password: "longenough1"}
	if _, err := svc.Create(context.Background(), first); err != nil {
		t.Fatalf("create user: %v", err)
	}

	second := &domain.User{Email: "a@b.com", Password: "otherpassword2"}
	if _, err := svc.Create(context.Background(), second); !util.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
}

func TestUserService_GetByIDNotFound(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.GetByID(context.Background(), 999)
	if !util.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	var domainErr *util.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError")
	}
	if domainErr.Details["id"] != int64(999) {
		t.Fatalf("expected not-found to carry id=999, got %v", domainErr.Details)
	}
}

func TestUserService_GetResolution(t *testing.T) {
	svc := newTestUserService()

	created, err := svc.Create(context.Background(), &domain.User{Email: "a@b.com", Password: "longenough1"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	byEmail, err := svc.Get(context.Background(), domain.ByEmail("a@b.com"))
	if err != nil {
		t.Fatalf("get by email ref: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("email lookup returned wrong user")
	}

	byID, err := svc.Get(context.Background(), domain.ByID(created.ID))
	if err != nil {
		t.Fatalf("get by id ref: %v", err)
	}
	if byID.Email != "a@b.com" {
		t.Fatalf("id lookup returned wrong user")
	}

	_, err = svc.Get(context.Background(), domain.UserRef{})
	if !util.IsNotFound(err) {
		t.Fatalf("expected not-found for empty ref, got %v", err)
	}
}

func TestUserService_UpdatePartial(t *testing.T) {
	svc := newTestUserService()

	created, err := svc.Create(context.Background(), &domain.User{
		Email:    "a@b.com",
		Password: "longenough1",
		StatusID: int64Ptr(1),
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	originalHash := created.Password

	updated, err := svc.Update(context.Background(), &domain.User{ID: created.ID, StatusID: int64Ptr(2)})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Email != "a@b.com" {
		t.Fatalf("partial update must not clear email, got %q", updated.Email)
	}
	if updated.Password != originalHash {
		t.Fatalf("partial update must not touch password")
	}
	if updated.StatusID == nil || *updated.StatusID != 2 {
		t.Fatalf("expected status_id=2, got %v", updated.StatusID)
	}
}

func TestUserService_UpdateRehashesNewPassword(t *testing.T) {
	svc := newTestUserService()

	created, err := svc.Create(context.Background(), &domain.User{Email: "a@b.com", Password: "longenough1"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	updated, err := svc.Update(context.Background(), &domain.User{ID: created.ID, Password: "brandnewpass2"})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Password == "brandnewpass2" {
		t.Fatalf("expected new password to be hashed")
	}
	if !auth.VerifyPassword("brandnewpass2", updated.Password) {
		t.Fatalf("new hash does not verify")
	}
}

func TestUserService_UpdateUnknownID(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Update(context.Background(), &domain.User{ID: 42, StatusID: int64Ptr(2)})
	if !util.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
