package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/parshpawar/ezoCodingTask/internal/models"
)

type mockUserRepo struct {
	EmailExistsFunc    func(ctx context.Context, email string) (bool, error)
	CreateUserFunc     func(ctx context.Context, user models.User) error
	GetUserByEmailFunc func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.EmailExistsFunc(ctx, email)
}
func (m *mockUserRepo) CreateUser(ctx context.Context, user models.User) error {
	return m.CreateUserFunc(ctx, user)
}
func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetUserByEmailFunc(ctx, email)
}

type mockSessionRepo struct {
	CreateSessionFunc func(ctx context.Context, sessionID, userID string, expiresAt time.Time) error
	SessionExistsFunc func(ctx context.Context, sessionID string) (bool, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error
}

func (m *mockSessionRepo) CreateSession(ctx context.Context, sessionID, userID string, expiresAt time.Time) error {
	return m.CreateSessionFunc(ctx, sessionID, userID, expiresAt)
}
func (m *mockSessionRepo) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	return m.SessionExistsFunc(ctx, sessionID)
}
func (m *mockSessionRepo) DeleteSession(ctx context.Context, sessionID string) error {
	return m.DeleteSessionFunc(ctx, sessionID)
}

func acceptingSessions() *mockSessionRepo {
	return &mockSessionRepo{
		CreateSessionFunc: func(ctx context.Context, sessionID, userID string, expiresAt time.Time) error {
			return nil
		},
		SessionExistsFunc: func(ctx context.Context, sessionID string) (bool, error) {
			return true, nil
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			return nil
		},
	}
}

func TestRegister_Success(t *testing.T) {
	var created models.User
	users := &mockUserRepo{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) { return false, nil },
		CreateUserFunc: func(ctx context.Context, user models.User) error {
			created = user
			return nil
		},
	}
	svc := NewAuthService(users, acceptingSessions(), "secret")

	resp, err := svc.Register(context.Background(), "new@example.com", "Str0ng!pass")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.Token == "" {
		t.Errorf("expected a token, got empty string")
	}
	if resp.Identity.Email != "new@example.com" {
		t.Errorf("Identity.Email = %q; want %q", resp.Identity.Email, "new@example.com")
	}
	if created.PasswordHash == "Str0ng!pass" {
		t.Errorf("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Str0ng!pass")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegister_EmailInUse(t *testing.T) {
	users := &mockUserRepo{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	svc := NewAuthService(users, acceptingSessions(), "secret")

	_, err := svc.Register(context.Background(), "taken@example.com", "Str0ng!pass")
	if !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("Register error = %v; want ErrEmailInUse", err)
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, acceptingSessions(), "secret")

	_, err := svc.Register(context.Background(), "not an email", "Str0ng!pass")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("Register error = %v; want ErrInvalidEmail", err)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, acceptingSessions(), "secret")

	for _, password := range []string{"short", "nouppercase1!", "NoSpecialChar1"} {
		_, err := svc.Register(context.Background(), "a@b.co", password)
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Register(%q) error = %v; want ErrWeakPassword", password, err)
		}
	}
}

func userWithPassword(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{ID: "u-1", Email: email, PasswordHash: string(hash)}
}

func TestLogin_Success(t *testing.T) {
	user := userWithPassword(t, "a@b.co", "Str0ng!pass")
	users := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(users, acceptingSessions(), "secret")

	resp, err := svc.Login(context.Background(), "a@b.co", "Str0ng!pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Identity.ID != "u-1" {
		t.Errorf("Identity.ID = %q; want %q", resp.Identity.ID, "u-1")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	user := userWithPassword(t, "a@b.co", "Str0ng!pass")
	users := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(users, acceptingSessions(), "secret")

	_, err := svc.Login(context.Background(), "a@b.co", "Wrong!pass1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v; want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewAuthService(users, acceptingSessions(), "secret")

	_, err := svc.Login(context.Background(), "nobody@b.co", "Str0ng!pass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v; want ErrInvalidCredentials", err)
	}
}

func TestLogin_RateLimited(t *testing.T) {
	user := userWithPassword(t, "a@b.co", "Str0ng!pass")
	users := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(users, acceptingSessions(), "secret")

	var rateLimited bool
	for i := 0; i < 10; i++ {
		_, err := svc.Login(context.Background(), "a@b.co", "Wrong!pass1")
		if errors.Is(err, ErrRateLimited) {
			rateLimited = true
			break
		}
	}
	if !rateLimited {
		t.Errorf("expected ErrRateLimited after repeated attempts")
	}

	// Another email is unaffected.
	if _, err := svc.Login(context.Background(), "other@b.co", "Str0ng!pass"); errors.Is(err, ErrRateLimited) {
		t.Errorf("rate limit leaked across emails")
	}
}

func TestLogout_DeletesSession(t *testing.T) {
	var deleted string
	sessions := acceptingSessions()
	sessions.DeleteSessionFunc = func(ctx context.Context, sessionID string) error {
		deleted = sessionID
		return nil
	}
	svc := NewAuthService(&mockUserRepo{}, sessions, "secret")

	err := svc.Logout(context.Background(), &Claims{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if deleted != "s-1" {
		t.Errorf("deleted session = %q; want %q", deleted, "s-1")
	}
}

func TestLogout_Error(t *testing.T) {
	sessions := acceptingSessions()
	sessions.DeleteSessionFunc = func(ctx context.Context, sessionID string) error {
		return errors.New("db down")
	}
	svc := NewAuthService(&mockUserRepo{}, sessions, "secret")

	if err := svc.Logout(context.Background(), &Claims{SessionID: "s-1"}); err == nil {
		t.Errorf("expected error, got nil")
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	user := userWithPassword(t, "a@b.co", "Str0ng!pass")
	users := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(users, acceptingSessions(), "secret")

	resp, err := svc.Login(context.Background(), "a@b.co", "Str0ng!pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims, err := svc.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "a@b.co" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.SessionID == "" {
		t.Errorf("expected a session ID in the claims")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	user := userWithPassword(t, "a@b.co", "Str0ng!pass")
	users := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	issuer := NewAuthService(users, acceptingSessions(), "secret-a")
	verifier := NewAuthService(users, acceptingSessions(), "secret-b")

	resp, err := issuer.Login(context.Background(), "a@b.co", "Str0ng!pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if _, err := verifier.ParseToken(resp.Token); err == nil {
		t.Errorf("expected error for token signed with a different secret")
	}
}

func TestResolve_RevokedSession(t *testing.T) {
	sessions := acceptingSessions()
	sessions.SessionExistsFunc = func(ctx context.Context, sessionID string) (bool, error) {
		return false, nil
	}
	svc := NewAuthService(&mockUserRepo{}, sessions, "secret")

	_, err := svc.Resolve(context.Background(), &Claims{SessionID: "gone"})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Resolve error = %v; want ErrSessionNotFound", err)
	}
}

func TestResolve_LiveSession(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, acceptingSessions(), "secret")

	identity, err := svc.Resolve(context.Background(), &Claims{UserID: "u-1", Email: "a@b.co", SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if identity.ID != "u-1" || identity.Email != "a@b.co" {
		t.Errorf("unexpected identity: %+v", identity)
	}
}
