package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/starschool/records/internal/config"
	"github.com/starschool/records/internal/pkg/logger"
)

// SchoolDB is the storage context: one long-lived handle to the local
// SQLite file, opened at startup and passed explicitly to every repository.
type SchoolDB struct {
	DB   *sql.DB
	path string
}

// schema creates the four record tables. The comma-joined list columns are
// a derived cache recomputed on every write; students_courses and the
// course_instructor column are the authoritative relation records.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		student_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		email TEXT NOT NULL,
		registered_courses TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS instructors (
		instructor_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		email TEXT NOT NULL,
		assigned_courses TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		course_id TEXT PRIMARY KEY,
		course_name TEXT NOT NULL,
		course_instructor TEXT REFERENCES instructors(instructor_id),
		enrolled_students TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS students_courses (
		student_id TEXT,
		course_id TEXT,
		FOREIGN KEY (student_id) REFERENCES students(student_id),
		FOREIGN KEY (course_id) REFERENCES courses(course_id)
	)`,
}

// NewSchoolDB opens (or creates) the store file and bootstraps the schema.
func NewSchoolDB(cfg *config.Config) (*SchoolDB, error) {
	path := cfg.Database.Path

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The front end is single-threaded and the handle is shared for the
	// process lifetime; one connection keeps sqlite locking out of the way.
	handle.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := handle.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	for _, stmt := range schema {
		if _, err := handle.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	logger.Info().Str("path", path).Msg("Database opened")
	return &SchoolDB{DB: handle, path: path}, nil
}

// Path returns the location of the store file.
func (s *SchoolDB) Path() string {
	return s.path
}

// Close closes the store handle.
func (s *SchoolDB) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// TransactionFn is a function that executes within a transaction.
type TransactionFn func(ctx context.Context, tx *sql.Tx) error

// WithTransaction runs a function within a transaction, committing on
// success and rolling back on error. Composite operations use it so their
// multi-table writes appear all-or-nothing.
func (s *SchoolDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Backup copies the store file to a timestamped file in dir. It is called
// once during the shutdown flush.
func (s *SchoolDB) Backup(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	dest := filepath.Join(dir, fmt.Sprintf("school_backup_%s.db", stamp))

	src, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to open database file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("failed to copy database file: %w", err)
	}

	logger.Info().Str("path", dest).Msg("Database backup written")
	return dest, nil
}
