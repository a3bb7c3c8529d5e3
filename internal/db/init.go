package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT REFERENCES users(id) ON DELETE CASCADE,
    expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    age INT NOT NULL,
    phone TEXT NOT NULL,
    email TEXT NOT NULL,
    city TEXT NOT NULL,
    country TEXT NOT NULL
);
`

// seed fills the roster shown on the list screen. Inserted only when
// the records table is empty.
const seed = `
INSERT INTO records (id, name, age, phone, email, city, country)
SELECT v.id, v.name, v.age, v.phone, v.email, v.city, v.country
FROM (VALUES
    ('r-001', 'Alice Brown', 29, '+1-202-555-0101', 'alice.brown@example.com', 'Boston', 'USA'),
    ('r-002', 'Bruno Costa', 41, '+55-11-5550-2020', 'bruno.costa@example.com', 'Sao Paulo', 'Brazil'),
    ('r-003', 'Chen Wei', 35, '+86-10-5550-3030', 'chen.wei@example.com', 'Beijing', 'China'),
    ('r-004', 'Dana Levi', 27, '+972-3-555-4040', 'dana.levi@example.com', 'Tel Aviv', 'Israel'),
    ('r-005', 'Emeka Obi', 33, '+234-1-555-5050', 'emeka.obi@example.com', 'Lagos', 'Nigeria'),
    ('r-006', 'Freja Nielsen', 38, '+45-33-555-6060', 'freja.nielsen@example.com', 'Copenhagen', 'Denmark'),
    ('r-007', 'Gita Sharma', 26, '+91-98-5550-7070', 'gita.sharma@example.com', 'Pune', 'India'),
    ('r-008', 'Hiro Tanaka', 45, '+81-3-5550-8080', 'hiro.tanaka@example.com', 'Osaka', 'Japan')
) AS v(id, name, age, phone, email, city, country)
WHERE NOT EXISTS (SELECT 1 FROM records);
`

// InitPostgres opens a connection, verifies it, applies the schema and
// seeds the roster.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if _, err := db.Exec(seed); err != nil {
		return nil, fmt.Errorf("seed records: %w", err)
	}

	return db, nil
}
