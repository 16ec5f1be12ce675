package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/aurenecom/storefront-backend/pkg/auth"
	"github.com/aurenecom/storefront-backend/pkg/auth/session"
	"github.com/aurenecom/storefront-backend/pkg/config"
	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/security"
)

type stubUserRepo struct {
	user        *models.User
	lastLoginAt *time.Time
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	s.lastLoginAt = &at
	return nil
}

type stubSessionManager struct {
	generated []string
	rotateErr error
	revoked   []string
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	if provided != "refresh-"+oldAccessID {
		return "", "", session.ErrInvalidRefreshToken
	}
	newID := session.NewAccessID()
	return newID, "refresh-" + newID, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "auren",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func buildTestService(t *testing.T, user *models.User) (Service, *stubUserRepo, *stubSessionManager) {
	t.Helper()
	usersRepo := &stubUserRepo{user: user}
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, usersRepo, sessions
}

func TestLoginMintsTokenPair(t *testing.T) {
	password := "buyer-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleCustomer,
	}
	svc, usersRepo, sessions := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    " Buyer@Example.com ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.UserRoleCustomer {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if resp.RefreshToken != "refresh-"+claims.ID {
		t.Fatalf("refresh token not bound to session: %q", resp.RefreshToken)
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.generated))
	}
	if usersRepo.lastLoginAt == nil {
		t.Fatal("expected last login to be recorded")
	}
	if resp.User.LastLoginAt == nil {
		t.Fatal("expected response user to carry last login")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		PasswordHash: mustHashPassword(t, "right-password"),
		Role:         enums.UserRoleCustomer,
	}
	svc, _, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := buildTestService(t, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	password := "buyer-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleCustomer,
	}
	svc, _, _ := buildTestService(t, user)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == login.AccessToken {
		t.Fatal("expected a new access token")
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), refreshed.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected same subject, got %s", claims.UserID)
	}
	if refreshed.RefreshToken != "refresh-"+claims.ID {
		t.Fatal("expected rotated refresh token bound to new session")
	}
}

func TestRefreshRejectsMismatchedToken(t *testing.T) {
	password := "buyer-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleCustomer,
	}
	svc, _, _ := buildTestService(t, user)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: "stolen-token",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := buildTestService(t, nil)

	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-1" {
		t.Fatalf("expected revoked session, got %v", sessions.revoked)
	}
	if err := svc.Logout(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank session id")
	}
}
