/*
Package vacation contains the core vacation-tracking domain.

PURPOSE:
  This package holds the entities and algorithms for annual vacation
  allowances: user accounts with a configurable yearly quota, vacation
  requests spanning date ranges, an approval workflow, and the
  holiday-aware business-day accounting that ties them together.

KEY CONCEPTS IN THIS FILE (types.go):
  - Days: A business-day quantity (decimal-backed to avoid float drift)
  - Status: Tri-state approval status of a vacation request
  - User: An account owning vacations and an annual allowance
  - Vacation: A date range owned by a user, with approval state

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all balance arithmetic
  2. Explicit state: Status transitions happen only via Service methods
  3. Single-year invariant: A persisted Vacation never crosses Dec 31

SEE ALSO:
  - service.go: Validated creation and the approval workflow
  - duration.go: Business-day counting over a date range
  - errors.go: Domain error types
*/
package vacation

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// DAYS - Business-day quantity
// =============================================================================

// Days is a count of business days. Allowances and durations are whole
// days today, but balances flow through decimal arithmetic so summing and
// subtracting never accumulate float error.
type Days struct {
	Value decimal.Decimal
}

func NewDays(n int) Days {
	return Days{Value: decimal.NewFromInt(int64(n))}
}

func ZeroDays() Days { return Days{Value: decimal.Zero} }

func (d Days) Add(o Days) Days          { return Days{Value: d.Value.Add(o.Value)} }
func (d Days) Sub(o Days) Days          { return Days{Value: d.Value.Sub(o.Value)} }
func (d Days) IsZero() bool             { return d.Value.IsZero() }
func (d Days) IsNegative() bool         { return d.Value.IsNegative() }
func (d Days) IsPositive() bool         { return d.Value.IsPositive() }
func (d Days) GreaterThan(o Days) bool  { return d.Value.GreaterThan(o.Value) }
func (d Days) LessThan(o Days) bool     { return d.Value.LessThan(o.Value) }
func (d Days) Int() int                 { return int(d.Value.IntPart()) }
func (d Days) String() string           { return d.Value.String() }

// =============================================================================
// STATUS - Approval state of a vacation request
// =============================================================================

// Status is the tri-state approval status. A request starts pending.
// No transition is blocked: confirm and deny may be applied from any state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDenied    Status = "denied"
)

// ConsumesAllowance reports whether a request in this status counts against
// the owner's yearly allowance. Denied requests give the days back.
func (s Status) ConsumesAllowance() bool {
	return s != StatusDenied
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDenied:
		return true
	}
	return false
}

// =============================================================================
// USER - Account with identity, allowance, and country
// =============================================================================

// User is an account that owns vacation requests. IDs are assigned by the
// store on creation; a zero ID means the user has not been persisted yet.
type User struct {
	ID             int64
	Username       string // globally unique
	Mail           string // globally unique
	PassHash       string // opaque to this package
	Salt           string
	IsAdmin        bool
	VacationAmount int    // annual allowance in business days
	CountryCode    string // ISO code for national holiday lookup
	JoinDate       Date
}

const (
	// DefaultVacationAmount is the annual allowance applied when none is given.
	DefaultVacationAmount = 20

	// DefaultCountryCode selects the holiday calendar when none is given.
	DefaultCountryCode = "DE"
)

// Allowance returns the user's yearly allowance as a Days quantity.
func (u *User) Allowance() Days {
	return NewDays(u.VacationAmount)
}

// =============================================================================
// VACATION - A requested date range with approval state
// =============================================================================

// Vacation is an inclusive date range owned by a user. After creation a
// vacation always lies within a single calendar year; cross-year input is
// split into per-year records by Service.CreateVacation.
type Vacation struct {
	ID           int64
	UserID       int64
	Start        Date
	End          Date
	Status       Status
	DenialReason string
}

// Year is the calendar year this vacation counts against.
func (v *Vacation) Year() int { return v.Start.Year() }
