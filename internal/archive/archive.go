// Package archive persists computed irradiance profiles in a local SQLite
// database so repeated runs can be listed and retrieved later.
package archive

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/solartools/clearsky/pkg/solar"
)

// ErrNotFound is returned when a profile id does not exist in the store.
var ErrNotFound = errors.New("profile not found")

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id          TEXT PRIMARY KEY,
	created_at  TIMESTAMP NOT NULL,
	latitude    REAL NOT NULL,
	day_of_year INTEGER NOT NULL,
	title       TEXT NOT NULL,
	series      BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_profiles_created_at ON profiles(created_at);
`

// Record is one archived profile run.
type Record struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Title     string        `json:"title"`
	Profile   solar.Profile `json:"profile"`
}

// series is the msgpack blob layout for the hour/GHI arrays.
type series struct {
	Hours []int     `msgpack:"hours"`
	GHI   []float64 `msgpack:"ghi"`
}

// Store holds the connection to the profile archive database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the archive database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping archive database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create archive schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a profile under a fresh id and returns the id.
func (s *Store) Save(p solar.Profile, title string) (string, error) {
	blob, err := msgpack.Marshal(series{Hours: p.Hours, GHI: p.GHI})
	if err != nil {
		return "", fmt.Errorf("failed to encode series: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.Exec(
		`INSERT INTO profiles (id, created_at, latitude, day_of_year, title, series) VALUES (?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC(), p.Latitude, p.DayOfYear, title, blob,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert profile: %w", err)
	}
	return id, nil
}

// Get retrieves one archived profile by id.
func (s *Store) Get(id string) (Record, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, latitude, day_of_year, title, series FROM profiles WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// List returns all archived profiles, newest first.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, latitude, day_of_year, title, series FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var rec Record
	var blob []byte
	err := sc.Scan(&rec.ID, &rec.CreatedAt, &rec.Profile.Latitude, &rec.Profile.DayOfYear, &rec.Title, &blob)
	if err != nil {
		return Record{}, err
	}

	var ser series
	if err := msgpack.Unmarshal(blob, &ser); err != nil {
		return Record{}, fmt.Errorf("failed to decode series for profile %s: %w", rec.ID, err)
	}
	rec.Profile.Hours = ser.Hours
	rec.Profile.GHI = ser.GHI
	return rec, nil
}
