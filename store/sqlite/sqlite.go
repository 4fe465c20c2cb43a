/*
Package sqlite provides the SQLite-backed implementation of vacation.Store.

PURPOSE:
  Persists user accounts and vacation requests. In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  users:     Accounts with UNIQUE username and UNIQUE mail
  vacations: Requests with a foreign key to users

CONSTRAINT MAPPING:
  The domain never sees driver errors. UNIQUE violations on users map to
  vacation.ErrDuplicateIdentity; a vacation insert with a dangling user_id
  trips the foreign key and maps to vacation.ErrNotFound, as does any
  missing-row lookup.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The database is opened with
  foreign_keys=on and WAL journaling for better read concurrency.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

USAGE:
  store, err := sqlite.New("./data/vacation.db")  // ":memory:" for tests
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - vacation/store.go: Interface definition and error contract
  - store/memory: In-memory implementation for unit tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/vacation-tracker/vacation"
)

// Store implements vacation.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ vacation.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		mail TEXT NOT NULL UNIQUE,
		passhash TEXT NOT NULL,
		salt TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		vacation_amount INTEGER NOT NULL DEFAULT 20,
		country_code TEXT NOT NULL DEFAULT 'DE',
		join_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vacations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		denial_reason TEXT,
		created_at TEXT NOT NULL
	);

	-- Balance aggregation filters by owner and start year (hot path)
	CREATE INDEX IF NOT EXISTS idx_vacations_user_start
		ON vacations(user_id, start_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USER STORE
// =============================================================================

// CreateUser persists a new user and returns it with the assigned ID.
func (s *Store) CreateUser(ctx context.Context, u vacation.User) (*vacation.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO users
		(username, mail, passhash, salt, is_admin, vacation_amount, country_code, join_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		u.Username,
		u.Mail,
		u.PassHash,
		u.Salt,
		u.IsAdmin,
		u.VacationAmount,
		u.CountryCode,
		u.JoinDate.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, vacation.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}
	u.ID = id
	return &u, nil
}

// GetUser returns the user with the given ID.
func (s *Store) GetUser(ctx context.Context, id int64) (*vacation.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, mail, passhash, salt, is_admin, vacation_amount, country_code, join_date
		 FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, &vacation.NotFoundError{Kind: "user", ID: id}
	}
	return u, err
}

// GetUserByUsername returns the user with the given username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*vacation.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, mail, passhash, salt, is_admin, vacation_amount, country_code, join_date
		 FROM users WHERE username = ?`, username)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %q: %w", username, vacation.ErrNotFound)
	}
	return u, err
}

func scanUser(row *sql.Row) (*vacation.User, error) {
	var (
		u        vacation.User
		joinDate string
	)
	err := row.Scan(&u.ID, &u.Username, &u.Mail, &u.PassHash, &u.Salt,
		&u.IsAdmin, &u.VacationAmount, &u.CountryCode, &joinDate)
	if err != nil {
		return nil, err
	}

	u.JoinDate, err = vacation.ParseDate(joinDate)
	if err != nil {
		return nil, fmt.Errorf("corrupt join_date for user %d: %w", u.ID, err)
	}
	return &u, nil
}

// =============================================================================
// VACATION STORE
// =============================================================================

// CreateVacation persists a new vacation and returns it with the assigned ID.
func (s *Store) CreateVacation(ctx context.Context, v vacation.Vacation) (*vacation.Vacation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.Status == "" {
		v.Status = vacation.StatusPending
	}

	query := `
		INSERT INTO vacations (user_id, start_date, end_date, status, denial_reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		v.UserID,
		v.Start.String(),
		v.End.String(),
		string(v.Status),
		nullString(v.DenialReason),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return nil, &vacation.NotFoundError{Kind: "user", ID: v.UserID}
		}
		return nil, fmt.Errorf("failed to create vacation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read vacation id: %w", err)
	}
	v.ID = id
	return &v, nil
}

// GetVacation returns the vacation with the given ID.
func (s *Store) GetVacation(ctx context.Context, id int64) (*vacation.Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.queryVacations(ctx,
		`SELECT id, user_id, start_date, end_date, status, denial_reason
		 FROM vacations WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &vacation.NotFoundError{Kind: "vacation", ID: id}
	}
	return &rows[0], nil
}

// DeleteVacation removes a vacation record.
func (s *Store) DeleteVacation(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM vacations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete vacation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &vacation.NotFoundError{Kind: "vacation", ID: id}
	}
	return nil
}

// UpdateVacationStatus sets a vacation's status and denial reason.
func (s *Store) UpdateVacationStatus(ctx context.Context, id int64, status vacation.Status, denialReason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE vacations SET status = ?, denial_reason = ? WHERE id = ?",
		string(status), nullString(denialReason), id)
	if err != nil {
		return fmt.Errorf("failed to update vacation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &vacation.NotFoundError{Kind: "vacation", ID: id}
	}
	return nil
}

// ListVacations returns all vacations owned by a user, ordered by start.
func (s *Store) ListVacations(ctx context.Context, userID int64) ([]vacation.Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryVacations(ctx,
		`SELECT id, user_id, start_date, end_date, status, denial_reason
		 FROM vacations WHERE user_id = ?
		 ORDER BY start_date ASC, id ASC`, userID)
}

// ListVacationsByYear returns the user's vacations starting in the year.
func (s *Store) ListVacationsByYear(ctx context.Context, userID int64, year int) ([]vacation.Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryVacations(ctx,
		`SELECT id, user_id, start_date, end_date, status, denial_reason
		 FROM vacations
		 WHERE user_id = ? AND start_date >= ? AND start_date <= ?
		 ORDER BY start_date ASC, id ASC`,
		userID,
		vacation.StartOfYear(year).String(),
		vacation.EndOfYear(year).String(),
	)
}

func (s *Store) queryVacations(ctx context.Context, query string, args ...any) ([]vacation.Vacation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacations: %w", err)
	}
	defer rows.Close()

	var vacations []vacation.Vacation
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, err
		}
		vacations = append(vacations, v)
	}
	return vacations, rows.Err()
}

func scanVacation(rows *sql.Rows) (vacation.Vacation, error) {
	var (
		v            vacation.Vacation
		startDate    string
		endDate      string
		status       string
		denialReason sql.NullString
	)

	if err := rows.Scan(&v.ID, &v.UserID, &startDate, &endDate, &status, &denialReason); err != nil {
		return v, fmt.Errorf("failed to scan vacation: %w", err)
	}

	var err error
	if v.Start, err = vacation.ParseDate(startDate); err != nil {
		return v, fmt.Errorf("corrupt start_date for vacation %d: %w", v.ID, err)
	}
	if v.End, err = vacation.ParseDate(endDate); err != nil {
		return v, fmt.Errorf("corrupt end_date for vacation %d: %w", v.ID, err)
	}
	v.Status = vacation.Status(status)
	v.DenialReason = denialReason.String
	return v, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
