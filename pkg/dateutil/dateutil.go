package dateutil

import (
	"fmt"
	"time"
)

const (
	// BirthdayLayout is the DD.MM.YYYY layout used for stored birthdays
	BirthdayLayout = "02.01.2006"
	// CongratulationLayout is the YYYY.MM.DD layout used when reporting dates
	CongratulationLayout = "2006.01.02"
)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// NextWorkday returns the date itself for Monday-Friday and the following
// Monday for Saturday and Sunday
func NextWorkday(date time.Time) time.Time {
	for IsWeekend(date) {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// DaysBetween returns the number of whole calendar days from `from` to `to`.
// Negative when `to` is earlier. Time of day and DST shifts are ignored.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// IsLeapYear reports whether year has a February 29
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// AnniversaryIn moves the day and month of date onto the given year, at the
// start of the day in loc. February 29 becomes February 28 in non-leap years.
func AnniversaryIn(date time.Time, year int, loc *time.Location) time.Time {
	month, day := date.Month(), date.Day()
	if month == time.February && day == 29 && !IsLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// ParseDate parses a DD.MM.YYYY string into a calendar-valid date
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(BirthdayLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return t, nil
}

// FormatDate formats date in the DD.MM.YYYY layout
func FormatDate(date time.Time) string {
	return date.Format(BirthdayLayout)
}

// FormatCongratulation formats date in the YYYY.MM.DD layout
func FormatCongratulation(date time.Time) string {
	return date.Format(CongratulationLayout)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
