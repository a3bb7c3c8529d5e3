package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/parshpawar/ezoCodingTask/internal/models"
)

// PostgresRecordRepository implements roster record reads against a PostgreSQL database.
type PostgresRecordRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresRecordRepository creates a new PostgresRecordRepository using the provided *sql.DB.
func NewPostgresRecordRepository(db *sql.DB) *PostgresRecordRepository {
	return &PostgresRecordRepository{DB: db}
}

// GetAll fetches every roster record ordered by name.
//
//	ctx: context for cancellation and deadlines
//
// Returns a slice of models.Record or an error if the query or scanning fails.
func (s *PostgresRecordRepository) GetAll(ctx context.Context) ([]models.Record, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, age, phone, email, city, country FROM records ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("GetAll: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Age, &rec.Phone, &rec.Email, &rec.City, &rec.Country); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return records, nil
}
