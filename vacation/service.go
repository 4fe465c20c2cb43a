/*
service.go - Account creation, balance aggregation, and the validated
vacation-creation protocol

PURPOSE:
  Service is the single entry point for every operation that touches the
  allowance accounting: creating accounts, computing remaining balance,
  creating vacation requests, and confirming/denying them.

CREATION PROTOCOL (CreateVacation):
  1. Normalize the range (omitted end = single-day request)
  2. Load the owning user (NotFound if absent)
  3. Split a cross-year range into single-year segments
  4. For each segment, under the owner's lock:
     a. Pre-check: remaining balance for the segment's year must be
        positive, else NoMoreVacation (nothing persisted)
     b. Persist the segment tentatively
     c. Recompute the exact business-day duration and the balance after
        inclusion; a negative balance deletes the tentative record and
        fails with NotEnoughVacation
  Segments persisted before a failing segment remain persisted; the
  successfully created segments are always returned so callers see
  exactly what survived.

CONCURRENCY:
  The read-balance/decide/write sequence is a classic check-then-act
  race when two requests for the same user run concurrently. Service
  serializes the whole protocol per user with a keyed mutex, so two
  concurrent creations cannot both pass the balance check on the same
  stale read.

SEE ALSO:
  - duration.go: Business-day counting
  - store.go: Collaborator interfaces
  - errors.go: Error kinds produced here
*/
package vacation

import (
	"context"
	"fmt"
	"sync"
)

// Service wires the store, the holiday calendar, and the password hasher
// into the domain operations.
type Service struct {
	store    Store
	calendar HolidayCalendar
	hasher   PasswordHasher

	mu    sync.Mutex
	locks map[int64]*sync.Mutex // per-user creation locks
}

func NewService(store Store, calendar HolidayCalendar, hasher PasswordHasher) *Service {
	return &Service{
		store:    store,
		calendar: calendar,
		hasher:   hasher,
		locks:    make(map[int64]*sync.Mutex),
	}
}

// userLock returns the mutex serializing allowance-changing operations for
// one user. Locks are never freed; the map grows with the user table, which
// stays small.
func (s *Service) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// =============================================================================
// ACCOUNT CREATION
// =============================================================================

// NewUser carries the inputs for account creation. Zero values fall back
// to the documented defaults.
type NewUser struct {
	Username       string
	Mail           string
	Password       string
	IsAdmin        bool
	VacationAmount int  // 0 = DefaultVacationAmount
	CountryCode    string // "" = DefaultCountryCode
	JoinDate       Date // zero = today
}

// CreateUser hashes the password and persists a new account. Username and
// mail collisions surface as ErrDuplicateIdentity.
func (s *Service) CreateUser(ctx context.Context, in NewUser) (*User, error) {
	if in.Username == "" || in.Mail == "" {
		return nil, fmt.Errorf("username and mail are required")
	}
	hash, salt, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		Username:       in.Username,
		Mail:           in.Mail,
		PassHash:       hash,
		Salt:           salt,
		IsAdmin:        in.IsAdmin,
		VacationAmount: in.VacationAmount,
		CountryCode:    in.CountryCode,
		JoinDate:       in.JoinDate,
	}
	if u.VacationAmount == 0 {
		u.VacationAmount = DefaultVacationAmount
	}
	if u.CountryCode == "" {
		u.CountryCode = DefaultCountryCode
	}
	if u.JoinDate.IsZero() {
		u.JoinDate = Today()
	}

	return s.store.CreateUser(ctx, u)
}

// GetUser reloads a user fresh from the store.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.store.GetUser(ctx, id)
}

// GetUserByUsername reloads a user fresh from the store by username.
func (s *Service) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.store.GetUserByUsername(ctx, username)
}

// =============================================================================
// BALANCE AGGREGATION
// =============================================================================

// RemainingVacation computes the user's remaining allowance for a year.
// Pass year 0 for the current year. The vacation collection is reloaded
// from the store on every call; in-memory copies are never trusted.
// Pending and confirmed requests consume allowance; denied ones do not.
func (s *Service) RemainingVacation(ctx context.Context, userID int64, year int) (Days, error) {
	if userID == 0 {
		return Days{}, ErrUnrefreshedEntity
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return Days{}, err
	}
	return s.remaining(ctx, user, year)
}

func (s *Service) remaining(ctx context.Context, user *User, year int) (Days, error) {
	if user.ID == 0 {
		return Days{}, fmt.Errorf("user %q: %w", user.Username, ErrUnrefreshedEntity)
	}
	if year == 0 {
		year = Today().Year()
	}
	vacations, err := s.store.ListVacationsByYear(ctx, user.ID, year)
	if err != nil {
		return Days{}, err
	}

	used := ZeroDays()
	for i := range vacations {
		if !vacations[i].Status.ConsumesAllowance() {
			continue
		}
		used = used.Add(vacations[i].Duration(s.calendar, user))
	}
	return user.Allowance().Sub(used), nil
}

// =============================================================================
// VALIDATED VACATION CREATION
// =============================================================================

// CreateVacation runs the validated creation protocol for the inclusive
// range [start, end]. A zero end means a single-day request. A range
// crossing Dec 31 is split into one request per calendar year, each
// validated against its own year's balance.
//
// On error the returned slice still holds every segment that was
// persisted before the failure; those records remain valid requests.
func (s *Service) CreateVacation(ctx context.Context, userID int64, start, end Date) ([]Vacation, error) {
	if end.IsZero() {
		end = start
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s before start %s", ErrInvalidRange, end, start)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var created []Vacation
	for _, segment := range (DateRange{Start: start, End: end}).SplitByYear() {
		v, err := s.createSegment(ctx, user, segment)
		if err != nil {
			return created, err
		}
		created = append(created, *v)
	}
	return created, nil
}

// createSegment validates and persists one single-year range. Caller holds
// the user's lock.
func (s *Service) createSegment(ctx context.Context, user *User, seg DateRange) (*Vacation, error) {
	year := seg.Start.Year()

	// Fast reject before any write: an exhausted year cannot take even a
	// zero-length request.
	remaining, err := s.remaining(ctx, user, year)
	if err != nil {
		return nil, err
	}
	if remaining.IsZero() || remaining.IsNegative() {
		return nil, ErrNoMoreVacation
	}

	// Persist tentatively. The exact duration depends on the holiday
	// calendar, so the overdraft decision can only be made afterwards.
	v, err := s.store.CreateVacation(ctx, Vacation{
		UserID: user.ID,
		Start:  seg.Start,
		End:    seg.End,
		Status: StatusPending,
	})
	if err != nil {
		return nil, err
	}

	duration := v.Duration(s.calendar, user)
	after, err := s.remaining(ctx, user, year)
	if err != nil {
		return nil, err
	}
	if after.IsNegative() {
		// Overdraft: roll the tentative record back and report how far
		// the request overshot.
		if delErr := s.store.DeleteVacation(ctx, v.ID); delErr != nil {
			return nil, fmt.Errorf("rollback of vacation %d failed: %w", v.ID, delErr)
		}
		return nil, &NotEnoughVacationError{
			UserID:    user.ID,
			Year:      year,
			Requested: duration,
			Remaining: after.Add(duration),
		}
	}

	return v, nil
}

// =============================================================================
// APPROVAL WORKFLOW
// =============================================================================

// Confirm moves a vacation to confirmed and clears any denial reason.
// Idempotent when already confirmed; no allowance re-validation happens
// here, the request was validated at creation.
func (s *Service) Confirm(ctx context.Context, vacationID int64) (*Vacation, error) {
	v, err := s.store.GetVacation(ctx, vacationID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateVacationStatus(ctx, v.ID, StatusConfirmed, ""); err != nil {
		return nil, err
	}
	return s.store.GetVacation(ctx, v.ID)
}

// Deny moves a vacation to denied, recording an optional reason. Denied
// requests release their allowance.
func (s *Service) Deny(ctx context.Context, vacationID int64, reason string) (*Vacation, error) {
	v, err := s.store.GetVacation(ctx, vacationID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateVacationStatus(ctx, v.ID, StatusDenied, reason); err != nil {
		return nil, err
	}
	return s.store.GetVacation(ctx, v.ID)
}

// GetVacation reloads a vacation fresh from the store.
func (s *Service) GetVacation(ctx context.Context, id int64) (*Vacation, error) {
	return s.store.GetVacation(ctx, id)
}

// ListVacations returns all of a user's vacations, freshly loaded.
func (s *Service) ListVacations(ctx context.Context, userID int64) ([]Vacation, error) {
	return s.store.ListVacations(ctx, userID)
}
