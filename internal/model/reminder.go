package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrEmptyTitle    = errors.New("model: reminder title is required")
	ErrInvalidRepeat = errors.New("model: invalid repeat type")
	ErrInvalidColor  = errors.New("model: invalid color")
)

const (
	// DefaultClock is the fire time substituted for a malformed one.
	DefaultClock Clock = "09:00"
	// DefaultColor is the display tag substituted for a malformed one.
	DefaultColor = "#FF6B6B"
)

type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

func (r RepeatType) IsValid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	default:
		return false
	}
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func ValidColor(s string) bool { return colorPattern.MatchString(s) }

// Reminder is the persisted unit: a titled event anchored at Date, firing
// at the At minute, optionally repeating. ID is assigned on add, never
// changes, and is the dedup key everywhere.
type Reminder struct {
	ID          string
	Title       string
	Date        Date
	At          Clock
	Color       string
	Description string
	Repeat      RepeatType
	Active      bool
}

// Validate reports boundary errors for the mutation path. The store does
// not call this; it normalizes instead, so loading a damaged document
// never fails.
func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: missing", ErrInvalidDate)
	}
	if !r.At.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidClock, r.At)
	}
	if !ValidColor(r.Color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, r.Color)
	}
	if !r.Repeat.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRepeat, r.Repeat)
	}
	return nil
}

// Normalize replaces malformed fields with safe defaults: date today,
// time 09:00, color DefaultColor, repeat none. Sloppy but parseable
// values ("9:5") are rewritten into canonical form.
func (r Reminder) Normalize(now time.Time) Reminder {
	out := r
	if out.Date.IsZero() {
		out.Date = DateOf(now)
	}
	if at, err := ParseClock(string(out.At)); err == nil {
		out.At = at
	} else {
		out.At = DefaultClock
	}
	if !ValidColor(out.Color) {
		out.Color = DefaultColor
	}
	if !out.Repeat.IsValid() {
		out.Repeat = RepeatNone
	}
	return out
}
