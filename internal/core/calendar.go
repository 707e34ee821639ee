package core

import (
	"errors"
	"fmt"
	"time"
)

const (
	minYear = 1
	maxYear = 9999
)

type (
	// Month is the ordered list of calendar days belonging to one month.
	Month struct {
		Year  int
		Month time.Month
		Days  []time.Time
	}
)

var (
	ErrInvalidMonth = errors.New("invalid month")
	ErrInvalidDate  = errors.New("invalid date")
	ErrDateRange    = errors.New("reached the end of dates")
)

// lastDate is the last day that can be labelled with a four digit year.
var lastDate = time.Date(maxYear, time.December, 31, 0, 0, 0, 0, time.UTC)

// MonthOf builds the month identified by a numeric year and month (1-12).
func MonthOf(year, month int) (Month, error) {
	first, err := FirstDay(year, month)
	if err != nil {
		return Month{}, err
	}
	return NewMonth(first)
}

// FirstDay returns the 1st of the given month at UTC midnight. Months outside
// 1-12 are rejected instead of being normalized into another year.
func FirstDay(year, month int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: %d (must be between 1 and 12)", ErrInvalidMonth, month)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

// NewMonth enumerates every day of the month containing start. Any day of
// the month may be passed; enumeration always begins on the 1st.
func NewMonth(start time.Time) (Month, error) {
	year, month, _ := start.Date()
	if year < minYear || year > maxYear {
		return Month{}, fmt.Errorf("%w: year %d out of range %d-%d", ErrInvalidDate, year, minYear, maxYear)
	}

	m := Month{Year: year, Month: month}
	day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day.Month() == month {
		m.Days = append(m.Days, day)
		if !day.Before(lastDate) {
			return Month{}, fmt.Errorf("%w: after %s", ErrDateRange, day.Format(time.DateOnly))
		}
		day = day.AddDate(0, 0, 1)
	}
	return m, nil
}

// Len returns the number of days in the month.
func (m Month) Len() int {
	return len(m.Days)
}

// Label returns the row label for the i-th day, e.g. "2023-01-01 Sun".
func (m Month) Label(i int) string {
	d := m.Days[i]
	return d.Format(time.DateOnly) + " " + Weekday(d)
}

// String formats the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Weekday returns the three letter English abbreviation of t's weekday.
func Weekday(t time.Time) string {
	return t.Weekday().String()[:3]
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
