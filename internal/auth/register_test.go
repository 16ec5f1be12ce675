package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/internal/customers"
	"github.com/aurenecom/storefront-backend/internal/users"
	"github.com/aurenecom/storefront-backend/pkg/config"
	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/outbox"
)

type stubUserCreator struct {
	created []users.CreateUserDTO
	err     error
}

func (s *stubUserCreator) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, dto)
	return &models.User{ID: uuid.New(), Email: dto.Email, Role: dto.Role}, nil
}

type stubProfileCreator struct {
	created []customers.CreateProfileDTO
	err     error
}

func (s *stubProfileCreator) Create(_ context.Context, dto customers.CreateProfileDTO) (*models.CustomerProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, dto)
	return &models.CustomerProfile{
		ID:       uuid.New(),
		UserID:   dto.UserID,
		FullName: dto.FullName,
		Status:   enums.CustomerStatusPending,
	}, nil
}

type stubRegisterTx struct{}

func (stubRegisterTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubRegisterOutbox struct {
	events []outbox.DomainEvent
	err    error
}

func (s *stubRegisterOutbox) Emit(_ context.Context, _ *gorm.DB, event outbox.DomainEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func newRegisterService(t *testing.T, usersRepo *stubUserCreator, profiles *stubProfileCreator, outboxSvc *stubRegisterOutbox) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		Users:          usersRepo,
		Profiles:       profiles,
		Tx:             stubRegisterTx{},
		Outbox:         outboxSvc,
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("NewRegisterService: %v", err)
	}
	return svc
}

func TestRegisterCreatesIdentityAndProfile(t *testing.T) {
	usersRepo := &stubUserCreator{}
	profiles := &stubProfileCreator{}
	outboxSvc := &stubRegisterOutbox{}
	svc := newRegisterService(t, usersRepo, profiles, outboxSvc)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    " Buyer@Example.COM ",
		Password: "long-enough-pass",
		FullName: "  Acme Buyer  ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if resp.User.Email != "buyer@example.com" {
		t.Fatalf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.Profile.Status != enums.CustomerStatusPending {
		t.Fatalf("expected pending profile, got %s", resp.Profile.Status)
	}
	if resp.Profile.FullName != "Acme Buyer" {
		t.Fatalf("expected trimmed full name, got %q", resp.Profile.FullName)
	}
	if usersRepo.created[0].PasswordHash == "long-enough-pass" {
		t.Fatal("expected hashed password, got plaintext")
	}
	if len(outboxSvc.events) != 1 || outboxSvc.events[0].EventType != enums.EventCustomerRegistered {
		t.Fatalf("expected registered event, got %v", outboxSvc.events)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	usersRepo := &stubUserCreator{err: errors.New(`duplicate key value violates unique constraint "users_email_key"`)}
	svc := newRegisterService(t, usersRepo, &stubProfileCreator{}, &stubRegisterOutbox{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "buyer@example.com",
		Password: "long-enough-pass",
		FullName: "Acme Buyer",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterProfileFailureKeepsIdentity(t *testing.T) {
	usersRepo := &stubUserCreator{}
	profiles := &stubProfileCreator{err: errors.New("insert failed")}
	outboxSvc := &stubRegisterOutbox{}
	svc := newRegisterService(t, usersRepo, profiles, outboxSvc)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "buyer@example.com",
		Password: "long-enough-pass",
		FullName: "Acme Buyer",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if len(usersRepo.created) != 1 {
		t.Fatalf("expected identity write to stand, got %d", len(usersRepo.created))
	}
	if len(outboxSvc.events) != 0 {
		t.Fatalf("expected no events, got %d", len(outboxSvc.events))
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := newRegisterService(t, &stubUserCreator{}, &stubProfileCreator{}, &stubRegisterOutbox{})

	cases := []RegisterRequest{
		{Email: "not-an-email", Password: "long-enough-pass", FullName: "A"},
		{Email: "buyer@example.com", Password: "short", FullName: "A"},
		{Email: "buyer@example.com", Password: "long-enough-pass", FullName: "   "},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", req, err)
		}
	}
}

func TestRegisterOutboxFailureIsSwallowed(t *testing.T) {
	usersRepo := &stubUserCreator{}
	svc := newRegisterService(t, usersRepo, &stubProfileCreator{}, &stubRegisterOutbox{err: errors.New("outbox down")})

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "buyer@example.com",
		Password: "long-enough-pass",
		FullName: "Acme Buyer",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
}
