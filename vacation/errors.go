/*
errors.go - Centralized error types for the vacation domain

PURPOSE:
  All domain errors in one place for consistency and discoverability.
  Store implementations translate database-level failures (unique
  constraints, missing rows, broken foreign keys) into these errors so
  callers never match on driver strings.

ERROR CATEGORIES:
  1. Lookup errors - Referenced user or vacation does not exist
  2. Allowance errors - A request would overdraw the yearly quota
  3. Identity errors - Username or mail collision at account creation
  4. Programmer errors - Using an entity that was never persisted

USAGE:
  if errors.Is(err, vacation.ErrNotEnoughVacation) {
      // surface a conflict to the caller; nothing was persisted
  }

SEE ALSO:
  - service.go: Produces allowance errors during validated creation
  - store/sqlite: Maps SQLite constraint failures onto these errors
*/
package vacation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced user or vacation ID does
	// not exist. Distinct from an empty query result.
	ErrNotFound = errors.New("not found")

	// ErrNoMoreVacation is returned by the pre-persistence check when the
	// remaining balance for the target year is already exhausted.
	ErrNoMoreVacation = errors.New("no vacation days left for the year")

	// ErrNotEnoughVacation is returned when the exact business-day duration
	// of a request exceeds the remaining balance. The tentative record has
	// been rolled back by the time this error is seen.
	ErrNotEnoughVacation = errors.New("not enough vacation days left")

	// ErrDuplicateIdentity is returned on a username or mail collision,
	// surfaced from the store's uniqueness constraints.
	ErrDuplicateIdentity = errors.New("username or mail already taken")

	// ErrUnrefreshedEntity is returned when code uses the identity of an
	// entity that was never persisted or reloaded. Programmer error.
	ErrUnrefreshedEntity = errors.New("entity created but not refreshed")

	// ErrInvalidRange is returned when a request's end date precedes its
	// start date.
	ErrInvalidRange = errors.New("invalid range: end before start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotEnoughVacationError reports exactly how far a request overdraws
// the owner's remaining allowance.
type NotEnoughVacationError struct {
	UserID    int64
	Year      int
	Requested Days
	Remaining Days
}

func (e *NotEnoughVacationError) Error() string {
	return fmt.Sprintf("not enough vacation for user %d in %d: requested %s, remaining %s",
		e.UserID, e.Year, e.Requested, e.Remaining)
}

func (e *NotEnoughVacationError) Unwrap() error { return ErrNotEnoughVacation }

// NotFoundError identifies which entity was missing.
type NotFoundError struct {
	Kind string // "user" or "vacation"
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s with ID %d could be found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError returns true if the error is due to invalid caller input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNoMoreVacation) ||
		errors.Is(err, ErrNotEnoughVacation) ||
		errors.Is(err, ErrDuplicateIdentity) ||
		errors.Is(err, ErrInvalidRange)
}
