// Package catalog keeps a SQLite log of inspected missions so the crew
// can see which files have been reviewed and how they measured up.
package catalog

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type DB struct {
	*sql.DB
}

// Open opens (or creates) the catalog database and applies any pending
// migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	cdb := &DB{db}
	if err := cdb.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return cdb, nil
}

func (db *DB) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// Note: we don't close m here because it would close the underlying
	// DB connection.
	m.Log = &migrateLogger{}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// migrateLogger implements migrate.Logger
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}

// Record is one inspected mission.
type Record struct {
	ID                string
	File              string
	Waypoints         int
	FlightPoints      int
	TotalLengthMeters float64
	MaxAltitudeMeters float64
	InspectedAt       time.Time
}

// RecordInspection inserts a new inspection row and returns its id.
func (db *DB) RecordInspection(r Record) (string, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	_, err := db.Exec(
		`INSERT INTO inspections (
			id, file, waypoints, flight_points, total_length_m, max_altitude_m
		) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.File, r.Waypoints, r.FlightPoints, r.TotalLengthMeters, r.MaxAltitudeMeters,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert inspection: %w", err)
	}
	return r.ID, nil
}

// Recent returns the latest inspections, newest first.
func (db *DB) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(
		`SELECT id, file, waypoints, flight_points, total_length_m, max_altitude_m, inspected_at
		 FROM inspections
		 ORDER BY inspected_at DESC, id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspections: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.File, &r.Waypoints, &r.FlightPoints,
			&r.TotalLengthMeters, &r.MaxAltitudeMeters, &r.InspectedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inspection: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
