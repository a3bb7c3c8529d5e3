// Package service provides authentication and roster business logic,
// delegating persistence to repositories.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/parshpawar/ezoCodingTask/internal/models"
	"github.com/parshpawar/ezoCodingTask/internal/validate"
)

// Sentinel errors returned by the authentication service. Handlers map
// them to HTTP status codes.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrRateLimited        = errors.New("too many sign-in attempts")
	ErrSessionNotFound    = errors.New("session not found")
)

const sessionTTL = 24 * time.Hour

// UserRepository defines the user persistence operations required by
// the authentication service.
type UserRepository interface {
	// EmailExists returns true if a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateUser creates a new user record.
	CreateUser(ctx context.Context, user models.User) error
	// GetUserByEmail fetches a user by email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionRepository defines the session persistence operations required
// by the authentication service.
type SessionRepository interface {
	CreateSession(ctx context.Context, sessionID, userID string, expiresAt time.Time) error
	SessionExists(ctx context.Context, sessionID string) (bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Claims is the JWT payload carried by issued tokens. SessionID points
// at the sessions row that keeps the token revocable.
type Claims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// AuthService implements sign-up, sign-in and sign-out on top of the
// user and session repositories.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	secret   []byte

	// limiters throttles sign-in attempts per email.
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewAuthService constructs a new AuthService using the provided
// repositories and JWT signing secret.
func NewAuthService(users UserRepository, sessions SessionRepository, secret string) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		limiters: make(map[string]*rate.Limiter),
	}
}

// limiter returns the sign-in limiter for the given email, creating it
// on first use. One attempt per two seconds with a burst of five.
func (s *AuthService) limiter(email string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[email]
	if !ok {
		l = rate.NewLimiter(rate.Every(2*time.Second), 5)
		s.limiters[email] = l
	}
	return l
}

// Register creates a new account and opens a session for it.
// Returns ErrInvalidEmail or ErrWeakPassword when the credentials fail
// validation, ErrEmailInUse when the email is taken.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if !validate.Email(email) {
		return nil, ErrInvalidEmail
	}
	if !validate.Password(password) {
		return nil, ErrWeakPassword
	}

	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.openSession(ctx, user)
}

// Login verifies the credentials and opens a session.
// Returns ErrRateLimited when the email has too many recent attempts
// and ErrInvalidCredentials for an unknown email or wrong password;
// the two cases are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if !s.limiter(email).Allow() {
		return nil, ErrRateLimited
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, *user)
}

// Logout revokes the session named by the token.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if err := s.sessions.DeleteSession(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Resolve reports the identity behind a set of verified claims, or
// ErrSessionNotFound when the session has been revoked or expired.
func (s *AuthService) Resolve(ctx context.Context, claims *Claims) (*models.Identity, error) {
	alive, err := s.sessions.SessionExists(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if !alive {
		return nil, ErrSessionNotFound
	}
	return &models.Identity{ID: claims.UserID, Email: claims.Email}, nil
}

// ParseToken verifies the signature and expiry of a bearer token and
// returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// openSession records a session row and issues a JWT pointing at it.
func (s *AuthService) openSession(ctx context.Context, user models.User) (*models.AuthResponse, error) {
	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(sessionTTL)

	if err := s.sessions.CreateSession(ctx, sessionID, user.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &models.AuthResponse{
		Token:    signed,
		Identity: models.Identity{ID: user.ID, Email: user.Email},
	}, nil
}
