package holiday

import (
	"time"

	"github.com/warp/vacation-tracker/vacation"
)

// =============================================================================
// RULE CONSTRUCTORS
// =============================================================================

// fixed builds a rule for a holiday on the same month/day every year.
func fixed(month time.Month, day int, name string) Rule {
	return func(year int) (vacation.Date, string) {
		return vacation.NewDate(year, month, day), name
	}
}

// easterOffset builds a rule for a holiday a fixed number of days from
// Easter Sunday.
func easterOffset(days int, name string) Rule {
	return func(year int) (vacation.Date, string) {
		return easterSunday(year).AddDays(days), name
	}
}

// nthWeekday builds a rule for the nth given weekday of a month; n = -1
// means the last such weekday.
func nthWeekday(month time.Month, weekday time.Weekday, n int, name string) Rule {
	return func(year int) (vacation.Date, string) {
		if n > 0 {
			d := vacation.NewDate(year, month, 1)
			for d.Weekday() != weekday {
				d = d.AddDays(1)
			}
			return d.AddDays(7 * (n - 1)), name
		}
		// Last weekday of the month: walk back from the first of the
		// next month.
		d := vacation.NewDate(year, month+1, 1).AddDays(-1)
		for d.Weekday() != weekday {
			d = d.AddDays(-1)
		}
		return d, name
	}
}

// easterSunday computes Gregorian Easter via the anonymous Gauss algorithm.
func easterSunday(year int) vacation.Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return vacation.NewDate(year, time.Month(month), day)
}

// =============================================================================
// COUNTRY RULE SETS
// =============================================================================

// germanyRules lists the nationwide public holidays of Germany. State-level
// holidays (Epiphany, Corpus Christi, ...) are deliberately excluded.
var germanyRules = []Rule{
	fixed(time.January, 1, "Neujahr"),
	easterOffset(-2, "Karfreitag"),
	easterOffset(1, "Ostermontag"),
	fixed(time.May, 1, "Tag der Arbeit"),
	easterOffset(39, "Christi Himmelfahrt"),
	easterOffset(50, "Pfingstmontag"),
	fixed(time.October, 3, "Tag der Deutschen Einheit"),
	fixed(time.December, 25, "Erster Weihnachtstag"),
	fixed(time.December, 26, "Zweiter Weihnachtstag"),
}

var austriaRules = []Rule{
	fixed(time.January, 1, "Neujahr"),
	fixed(time.January, 6, "Heilige Drei Könige"),
	easterOffset(1, "Ostermontag"),
	fixed(time.May, 1, "Staatsfeiertag"),
	easterOffset(39, "Christi Himmelfahrt"),
	easterOffset(50, "Pfingstmontag"),
	easterOffset(60, "Fronleichnam"),
	fixed(time.August, 15, "Mariä Himmelfahrt"),
	fixed(time.October, 26, "Nationalfeiertag"),
	fixed(time.November, 1, "Allerheiligen"),
	fixed(time.December, 8, "Mariä Empfängnis"),
	fixed(time.December, 25, "Christtag"),
	fixed(time.December, 26, "Stefanitag"),
}

var unitedStatesRules = []Rule{
	fixed(time.January, 1, "New Year's Day"),
	nthWeekday(time.January, time.Monday, 3, "Martin Luther King Jr. Day"),
	nthWeekday(time.February, time.Monday, 3, "Washington's Birthday"),
	nthWeekday(time.May, time.Monday, -1, "Memorial Day"),
	fixed(time.June, 19, "Juneteenth National Independence Day"),
	fixed(time.July, 4, "Independence Day"),
	nthWeekday(time.September, time.Monday, 1, "Labor Day"),
	fixed(time.November, 11, "Veterans Day"),
	nthWeekday(time.November, time.Thursday, 4, "Thanksgiving Day"),
	fixed(time.December, 25, "Christmas Day"),
}
