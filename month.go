package macrojournal

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthFormat is the format used to represent months as strings (ISO-8601 year-month).
const MonthFormat = "2006-01"

// Month represents a calendar month with year granularity.
//
// It is the granularity at which biases live: one bias set per asset per
// Month, and one persisted snapshot slot per Month.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	// normalize through time.Date so NewMonth(2025, 13) is January 2026.
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{y: t.Year(), m: t.Month()}
}

// MonthOf returns the calendar month containing the given instant.
func MonthOf(t time.Time) Month { return NewMonth(t.Year(), t.Month()) }

// ThisMonth returns the current calendar month.
func ThisMonth() Month { return MonthOf(time.Now()) }

// Year returns the month's year.
func (m Month) Year() int { return m.y }

// Month returns the month within the year.
func (m Month) Month() time.Month { return m.m }

// String formats the month as "YYYY-MM".
func (m Month) String() string { return m.time().Format(MonthFormat) }

// IsZero returns true if the month is the zero value.
func (m Month) IsZero() bool { return m.y == 0 && m.m == 0 }

// time returns a canonical representation of that month (first day at midnight UTC).
func (m Month) time() time.Time { return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC) }

// Add returns a new Month with the given number of months added.
func (m Month) Add(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Before reports whether the month m is before x.
func (m Month) Before(x Month) bool { return m.time().Before(x.time()) }

// Days returns the number of days in the month.
func (m Month) Days() int {
	// day 0 of the next month is the last day of this one.
	return time.Date(m.y, m.m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Validity returns the display string for the month's validity period,
// e.g. "January 1 - January 31, 2026".
func (m Month) Validity() string {
	name := m.m.String()
	return fmt.Sprintf("%s 1 - %s %d, %d", name, name, m.Days(), m.y)
}

// ParseMonth parses a "YYYY-MM" string into a Month.
func ParseMonth(str string) (Month, error) {
	t, err := time.Parse(MonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q, expected format YYYY-MM: %w", str, err)
	}
	return MonthOf(t), nil
}

// MarshalJSON implements the json.Marshaler interface, months are persisted
// as "YYYY-MM" strings.
func (m Month) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
