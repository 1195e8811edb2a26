package model

import (
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

var (
	ErrInvalidDate  = errors.New("model: invalid date")
	ErrInvalidClock = errors.New("model: invalid time of day")
)

// Date is a calendar date with no time-of-day or timezone component.
// The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a YYYY-MM-DD string, rejecting impossible calendar
// dates such as 2024-02-31.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// DateOf truncates an instant to its calendar date in the instant's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string { return d.Time().Format(dateLayout) }

func (d Date) IsZero() bool { return d == Date{} }

// Time returns midnight UTC of the date, for arithmetic only.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }

func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }

// DaysSince returns the number of whole days from other to d, negative
// when d precedes other.
func (d Date) DaysSince(other Date) int {
	return int(d.Time().Sub(other.Time()) / (24 * time.Hour))
}

// Clock is a minute-granular time of day in 24-hour HH:MM form.
type Clock string

// ParseClock parses and canonicalizes an HH:MM value, so "9:05" becomes
// "09:05" and lexicographic comparison orders clocks chronologically.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(t.Format(clockLayout)), nil
}

// ClockOf truncates an instant to its wall-clock minute.
func ClockOf(t time.Time) Clock { return Clock(t.Format(clockLayout)) }

func (c Clock) String() string { return string(c) }

func (c Clock) IsValid() bool {
	_, err := ParseClock(string(c))
	return err == nil
}
