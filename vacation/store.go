/*
store.go - Persistence and collaborator interfaces for the vacation domain

PURPOSE:
  Defines the boundary between the domain logic and its collaborators:
  the relational store, the holiday calendar, and the password hasher.
  Different store implementations can use SQLite or in-memory maps.

CONTRACTS:
  Store:          Entity persistence with not-found signaling
  HolidayCalendar: National holiday lookup keyed by country code
  PasswordHasher: Credential hashing, used only at account creation

NOT-FOUND SIGNALING:
  Get* methods return ErrNotFound (or a wrapping NotFoundError) when the
  ID does not exist. An empty ListVacations result is NOT an error.

CONSTRAINT MAPPING:
  CreateUser must surface username/mail uniqueness violations as
  ErrDuplicateIdentity. CreateVacation must surface a dangling user_id
  as ErrNotFound.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite store
  - store/memory: In-memory store for tests

SEE ALSO:
  - service.go: The only consumer of these interfaces
*/
package vacation

import "context"

// =============================================================================
// STORE - Entity persistence
// =============================================================================

// Store persists users and vacations. Each method is a single short-lived
// operation; cross-operation atomicity is the Service's responsibility.
type Store interface {
	// CreateUser persists a new user and returns it with the assigned ID.
	// Username/mail collisions return ErrDuplicateIdentity.
	CreateUser(ctx context.Context, u User) (*User, error)

	// GetUser returns the user with the given ID, or ErrNotFound.
	GetUser(ctx context.Context, id int64) (*User, error)

	// GetUserByUsername returns the user with the given username, or ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// CreateVacation persists a new vacation and returns it with the
	// assigned ID. A user_id not referencing an existing user returns
	// ErrNotFound.
	CreateVacation(ctx context.Context, v Vacation) (*Vacation, error)

	// GetVacation returns the vacation with the given ID, or ErrNotFound.
	GetVacation(ctx context.Context, id int64) (*Vacation, error)

	// DeleteVacation removes a vacation. Used only to roll back a
	// tentative record that failed the post-creation overdraft check.
	DeleteVacation(ctx context.Context, id int64) error

	// UpdateVacationStatus sets status and denial reason in one write.
	UpdateVacationStatus(ctx context.Context, id int64, status Status, denialReason string) error

	// ListVacations returns all vacations owned by a user, ordered by
	// start date. An unknown user yields an empty slice, not an error.
	ListVacations(ctx context.Context, userID int64) ([]Vacation, error)

	// ListVacationsByYear returns the user's vacations starting in the
	// given calendar year, ordered by start date.
	ListVacationsByYear(ctx context.Context, userID int64, year int) ([]Vacation, error)
}

// =============================================================================
// HOLIDAY CALENDAR - National holidays by country code
// =============================================================================

// HolidayCalendar resolves national holidays for a country. Lookups are
// pure functions of country code and date.
type HolidayCalendar interface {
	// IsHoliday reports whether the date is a national holiday in the
	// given country. Unknown country codes are never holidays.
	IsHoliday(countryCode string, date Date) bool
}

// =============================================================================
// PASSWORD HASHER - Opaque credential hashing
// =============================================================================

// PasswordHasher turns a plaintext password into a hash+salt pair. The
// domain stores both verbatim and never inspects them.
type PasswordHasher interface {
	Hash(password string) (hash, salt string, err error)
}
