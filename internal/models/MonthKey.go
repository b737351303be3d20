package models

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// MonthKey identifies a calendar month. The zero value is not a valid month.
type MonthKey struct {
	Year  int
	Month time.Month
}

func NewMonthKey(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return NewMonthKey(t), nil
}

// String returns the canonical "YYYY-MM" form.
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Compact returns the persisted "YYMM" form.
func (m MonthKey) Compact() string {
	return fmt.Sprintf("%02d%02d", m.Year%100, int(m.Month))
}

func (m MonthKey) Prev() MonthKey {
	if m.Month == time.January {
		return MonthKey{Year: m.Year - 1, Month: time.December}
	}
	return MonthKey{Year: m.Year, Month: m.Month - 1}
}

func (m MonthKey) Before(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Start is the first instant of the month in UTC.
func (m MonthKey) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last second of the last day of the month in UTC.
func (m MonthKey) End() time.Time {
	return m.Start().AddDate(0, 1, 0).Add(-time.Second)
}

func (m MonthKey) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(m.Start()) && !t.After(m.End())
}

func (m MonthKey) FirstDay() string {
	return m.Start().Format(time.DateOnly)
}

func (m MonthKey) LastDay() string {
	return m.End().Format(time.DateOnly)
}

// LastNMonths returns the n calendar months strictly preceding the month of
// reference, oldest first.
func LastNMonths(reference time.Time, n int) []MonthKey {
	if n <= 0 {
		return []MonthKey{}
	}
	months := make([]MonthKey, n)
	cur := NewMonthKey(reference)
	for i := n - 1; i >= 0; i-- {
		cur = cur.Prev()
		months[i] = cur
	}
	return months
}
