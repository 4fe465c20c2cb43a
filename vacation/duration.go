package vacation

// =============================================================================
// DURATION - Billable business days in a vacation range
// =============================================================================

// BusinessDays counts the days in [start, end) that fall on a weekday and
// are not national holidays for the given country. The end day is exclusive,
// so a range where start == end counts zero days.
func BusinessDays(start, end Date, calendar HolidayCalendar, countryCode string) Days {
	count := 0
	for d := start; d.Before(end); d = d.AddDays(1) {
		if d.IsWeekend() {
			continue
		}
		if calendar != nil && calendar.IsHoliday(countryCode, d) {
			continue
		}
		count++
	}
	return NewDays(count)
}

// Duration computes the vacation's billable business days for its owner,
// excluding weekends and the owner's national holidays.
func (v *Vacation) Duration(calendar HolidayCalendar, owner *User) Days {
	return BusinessDays(v.Start, v.End, calendar, owner.CountryCode)
}
