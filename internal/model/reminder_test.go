package model

import (
	"errors"
	"testing"
	"time"
)

func validReminder() Reminder {
	return Reminder{
		ID:     "r1",
		Title:  "Standup",
		Date:   NewDate(2024, time.January, 1),
		At:     "09:00",
		Color:  "#FF6B6B",
		Repeat: RepeatDaily,
		Active: true,
	}
}

func TestReminderValidateSuccess(t *testing.T) {
	if err := validReminder().Validate(); err != nil {
		t.Fatalf("expected valid reminder, got error: %v", err)
	}
}

func TestReminderValidateEmptyTitle(t *testing.T) {
	r := validReminder()
	r.Title = "   "
	if err := r.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestReminderValidateBadClock(t *testing.T) {
	r := validReminder()
	r.At = "25:00"
	if err := r.Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got %v", err)
	}
}

func TestReminderValidateBadColor(t *testing.T) {
	r := validReminder()
	r.Color = "red"
	if err := r.Validate(); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
}

func TestReminderValidateBadRepeat(t *testing.T) {
	r := validReminder()
	r.Repeat = RepeatType("hourly")
	if err := r.Validate(); !errors.Is(err, ErrInvalidRepeat) {
		t.Fatalf("expected ErrInvalidRepeat, got %v", err)
	}
}

func TestNormalizeReplacesMalformedFields(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	r := Reminder{Title: "x", At: "bad", Color: "blue", Repeat: "sometimes"}
	out := r.Normalize(now)
	if out.Date != NewDate(2024, time.March, 15) {
		t.Fatalf("expected today as date default, got %s", out.Date)
	}
	if out.At != DefaultClock {
		t.Fatalf("expected default clock, got %q", out.At)
	}
	if out.Color != DefaultColor {
		t.Fatalf("expected default color, got %q", out.Color)
	}
	if out.Repeat != RepeatNone {
		t.Fatalf("expected repeat none, got %q", out.Repeat)
	}
}

func TestNormalizeKeepsValidFields(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	r := validReminder()
	out := r.Normalize(now)
	if out != r {
		t.Fatalf("expected normalize to be identity on a valid reminder: %+v", out)
	}
}

func TestNormalizeCanonicalizesClock(t *testing.T) {
	r := validReminder()
	r.At = "9:5"
	out := r.Normalize(time.Now())
	if out.At != "09:05" {
		t.Fatalf("expected canonical clock, got %q", out.At)
	}
}

func TestRepeatTypeIsValid(t *testing.T) {
	valid := []RepeatType{RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly}
	for _, item := range valid {
		if !item.IsValid() {
			t.Fatalf("expected valid repeat type: %q", item)
		}
	}
	if RepeatType("hourly").IsValid() {
		t.Fatal("expected invalid repeat type")
	}
}
