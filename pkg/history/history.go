// Package history keeps a record of print jobs in a SQLite database
// under the XDG data directory.
package history

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/printerm/printerm/pkg/errors"
)

// Job statuses.
const (
	StatusPrinted = "printed"
	StatusFailed  = "failed"
)

// Job is one print attempt, successful or not.
type Job struct {
	ID        string    `json:"id"`
	Template  string    `json:"template"`
	Target    string    `json:"target"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Chars     int       `json:"chars"`
	CreatedAt time.Time `json:"created_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS print_jobs (
	id         TEXT PRIMARY KEY,
	template   TEXT NOT NULL,
	target     TEXT NOT NULL,
	status     TEXT NOT NULL,
	error      TEXT,
	chars      INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_print_jobs_created_at ON print_jobs(created_at);
`

// Store is a print-job repository backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrHistoryOpen,
			"Cannot create history directory for %s", path)
	}
	return open(path)
}

// OpenInMemory opens a throwaway in-memory history database.
func OpenInMemory() (*Store, error) {
	return open(":memory:")
}

func open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryOpen, "Cannot open history database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.ErrHistoryOpen, "Cannot initialize history database")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a job, filling in the ID and timestamp when unset.
func (s *Store) Record(ctx context.Context, job *Job) error {
	if strings.TrimSpace(job.Template) == "" {
		return errors.New(errors.ErrHistoryWrite, "Print job is missing a template name")
	}
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO print_jobs (id, template, target, status, error, chars, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		job.ID,
		job.Template,
		job.Target,
		job.Status,
		nullString(job.Error),
		job.Chars,
		job.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrHistoryWrite, "Cannot record print job")
	}
	return nil
}

// List returns the most recent jobs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*Job, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, template, target, status, error, chars, created_at
		FROM print_jobs ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryQuery, "Cannot query print history")
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryQuery, "Error iterating print history")
	}
	return jobs, nil
}

// Get retrieves one job by ID.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, template, target, status, error, chars, created_at
		FROM print_jobs WHERE id = ?
	`, id)

	job, err := scanJob(row.Scan)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Newf(errors.ErrNotFound, "Print job '%s' not found", id)
		}
		return nil, err
	}
	return job, nil
}

// Clear deletes all recorded jobs and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM print_jobs`)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrHistoryWrite, "Cannot clear print history")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrHistoryWrite, "Cannot count cleared jobs")
	}
	return count, nil
}

func scanJob(scan func(dest ...any) error) (*Job, error) {
	var job Job
	var jobError sql.NullString
	var createdAt string

	if err := scan(
		&job.ID,
		&job.Template,
		&job.Target,
		&job.Status,
		&jobError,
		&job.Chars,
		&createdAt,
	); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrHistoryQuery, "Cannot read print job row")
	}

	if jobError.Valid {
		job.Error = jobError.String
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		job.CreatedAt = t
	}
	return &job, nil
}

func nullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
