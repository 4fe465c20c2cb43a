/*
Package holiday resolves national holidays by ISO country code.

PURPOSE:
  The vacation domain needs a set-like "is this date a holiday in this
  country" lookup to count billable business days. This package computes
  that set from per-country rules: fixed-date holidays, Easter-derived
  movable feasts, and nth-weekday-of-month holidays.

USAGE:
  cal := holiday.NewCalendar()
  cal.IsHoliday("DE", vacation.NewDate(2024, time.December, 25)) // true

COUNTRIES:
  Rules ship for DE (the default), AT, and US. Unknown country codes
  resolve to an empty set, never an error. Additional countries register
  via Calendar.Register.

CACHING:
  Lookups are pure functions of (country, year). Computed year sets are
  cached behind an RWMutex, so repeated day-by-day scans over a range
  touch the rules once per year.

SEE ALSO:
  - rules.go: The built-in country rule sets and Easter computation
*/
package holiday

import (
	"strings"
	"sync"

	"github.com/warp/vacation-tracker/vacation"
)

// Rule produces one holiday for a given year.
type Rule func(year int) (vacation.Date, string)

// Calendar computes national holidays from registered per-country rules.
type Calendar struct {
	mu    sync.RWMutex
	rules map[string][]Rule
	cache map[yearKey]map[vacation.Date]string
}

type yearKey struct {
	country string
	year    int
}

// Compile-time check that Calendar satisfies the domain's contract.
var _ vacation.HolidayCalendar = (*Calendar)(nil)

// NewCalendar returns a calendar with the built-in country rule sets.
func NewCalendar() *Calendar {
	c := &Calendar{
		rules: make(map[string][]Rule),
		cache: make(map[yearKey]map[vacation.Date]string),
	}
	c.Register("DE", germanyRules)
	c.Register("AT", austriaRules)
	c.Register("US", unitedStatesRules)
	return c
}

// Register installs the rule set for a country, replacing any existing one.
func (c *Calendar) Register(countryCode string, rules []Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules[normalize(countryCode)] = rules
	// Drop stale cached years for this country.
	for k := range c.cache {
		if k.country == normalize(countryCode) {
			delete(c.cache, k)
		}
	}
}

// IsHoliday reports whether the date is a national holiday in the country.
func (c *Calendar) IsHoliday(countryCode string, date vacation.Date) bool {
	_, ok := c.yearSet(countryCode, date.Year())[date]
	return ok
}

// Holidays returns the named holidays of a country for one year. The
// returned map is shared; callers must not mutate it.
func (c *Calendar) Holidays(countryCode string, year int) map[vacation.Date]string {
	return c.yearSet(countryCode, year)
}

func (c *Calendar) yearSet(countryCode string, year int) map[vacation.Date]string {
	key := yearKey{country: normalize(countryCode), year: year}

	c.mu.RLock()
	set, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return set
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.cache[key]; ok {
		return set
	}

	set = make(map[vacation.Date]string)
	for _, rule := range c.rules[key.country] {
		d, name := rule(year)
		set[d] = name
	}
	c.cache[key] = set
	return set
}

func normalize(countryCode string) string {
	return strings.ToUpper(strings.TrimSpace(countryCode))
}

// =============================================================================
// NO-OP CALENDAR - For tests and configurations without holidays
// =============================================================================

// NoHolidays treats every date as a regular day.
type NoHolidays struct{}

var _ vacation.HolidayCalendar = NoHolidays{}

func (NoHolidays) IsHoliday(countryCode string, date vacation.Date) bool { return false }
