// Package repository provides persistence implementations for session storage
// using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresSessionRepository implements session operations against a PostgreSQL database.
// A session row is the source of truth for whether a token is still accepted:
// deleting the row revokes every copy of the token.
type PostgresSessionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{DB: db}
}

// CreateSession records a new session for the given user.
//
//	ctx:       context for cancellation and deadlines
//	sessionID: identifier embedded in the issued token
//	userID:    identifier of the session owner
//	expiresAt: moment after which the session is eligible for cleanup
//
// Returns an error if the insertion fails.
func (s *PostgresSessionRepository) CreateSession(ctx context.Context, sessionID, userID string, expiresAt time.Time) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)
	`, sessionID, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("CreateSession: %w", err)
	}
	return nil
}

// SessionExists reports whether an unexpired session with the given ID exists.
func (s *PostgresSessionRepository) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM sessions WHERE id = $1 AND expires_at > now())
	`, sessionID).Scan(&exists)
	return exists, err
}

// DeleteSession revokes the session with the given ID.
// Deleting a session that does not exist is not an error.
func (s *PostgresSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("DeleteSession: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions whose expiry is in the past and
// returns the number of rows removed.
func (s *PostgresSessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("DeleteExpiredSessions: %w", err)
	}
	return res.RowsAffected()
}
