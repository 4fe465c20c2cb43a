package holiday_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-tracker/holiday"
	"github.com/warp/vacation-tracker/vacation"
)

func TestCalendar_GermanFixedHolidays(t *testing.T) {
	cal := holiday.NewCalendar()

	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.January, 1)))
	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.May, 1)))
	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.October, 3)))
	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.December, 25)))
	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.December, 26)))

	assert.False(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.July, 17)))
	// US-only holiday is not a German one.
	assert.False(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.July, 4)))
}

func TestCalendar_EasterDerivedHolidays(t *testing.T) {
	// Easter Sunday 2024 fell on March 31; the movable feasts hang off it.
	cal := holiday.NewCalendar()

	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.March, 29)), "Karfreitag")
	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.April, 1)), "Ostermontag")
	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.May, 9)), "Christi Himmelfahrt")
	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2024, time.May, 20)), "Pfingstmontag")

	// Easter Sunday 2001 fell on April 15.
	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2001, time.April, 13)), "Karfreitag")
	assert.True(t, cal.IsHoliday("DE", vacation.NewDate(2001, time.April, 16)), "Ostermontag")
}

func TestCalendar_USWeekdayRuleHolidays(t *testing.T) {
	cal := holiday.NewCalendar()

	// Thanksgiving: fourth Thursday of November.
	assert.True(t, cal.IsHoliday("US", vacation.NewDate(2025, time.November, 27)))
	// Memorial Day: last Monday of May.
	assert.True(t, cal.IsHoliday("US", vacation.NewDate(2025, time.May, 26)))
	// Labor Day: first Monday of September.
	assert.True(t, cal.IsHoliday("US", vacation.NewDate(2025, time.September, 1)))
}

func TestCalendar_UnknownCountryHasNoHolidays(t *testing.T) {
	cal := holiday.NewCalendar()

	assert.False(t, cal.IsHoliday("XX", vacation.NewDate(2024, time.January, 1)))
	assert.Empty(t, cal.Holidays("XX", 2024))
}

func TestCalendar_CountryCodeIsCaseInsensitive(t *testing.T) {
	cal := holiday.NewCalendar()

	assert.True(t, cal.IsHoliday("de", vacation.NewDate(2024, time.December, 25)))
	assert.True(t, cal.IsHoliday(" De ", vacation.NewDate(2024, time.December, 25)))
}

func TestCalendar_RegisterReplacesRules(t *testing.T) {
	// GIVEN: A cached year set for a custom country
	// WHEN: Re-registering that country's rules
	// THEN: The stale cache is dropped and the new rules apply

	cal := holiday.NewCalendar()
	day := vacation.NewDate(2024, time.June, 5)

	cal.Register("ZZ", []holiday.Rule{
		func(year int) (vacation.Date, string) {
			return vacation.NewDate(year, time.June, 5), "Founders Day"
		},
	})
	require.True(t, cal.IsHoliday("ZZ", day))

	cal.Register("ZZ", nil)
	assert.False(t, cal.IsHoliday("ZZ", day))
}

func TestCalendar_HolidaysNamesEntries(t *testing.T) {
	cal := holiday.NewCalendar()

	set := cal.Holidays("DE", 2024)
	assert.Equal(t, "Tag der Deutschen Einheit", set[vacation.NewDate(2024, time.October, 3)])
	assert.Len(t, set, 9)
}

func TestNoHolidays(t *testing.T) {
	assert.False(t, holiday.NoHolidays{}.IsHoliday("DE", vacation.NewDate(2024, time.December, 25)))
}
