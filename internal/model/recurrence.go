package model

import "sort"

// IsDueOn reports whether a reminder's recurrence rule makes it due on
// target. Monthly and yearly rules hold strictly after the anchor date:
// the anchor day itself reaches callers through the exact-date branch of
// OccursOn, so the recurring branch must not report it a second time.
// Anchor days of month that don't exist in a shorter month (31st against
// a 30-day month) simply produce no occurrence there.
func IsDueOn(r Reminder, target Date) bool {
	if target.Before(r.Date) {
		return false
	}
	switch r.Repeat {
	case RepeatNone:
		return target == r.Date
	case RepeatDaily:
		return true
	case RepeatWeekly:
		return target.DaysSince(r.Date)%7 == 0
	case RepeatMonthly:
		return target.Day == r.Date.Day && target.After(r.Date)
	case RepeatYearly:
		return target.Month == r.Date.Month && target.Day == r.Date.Day && target.After(r.Date)
	default:
		return false
	}
}

// OccursOn unions the exact-date branch with the recurrence branch. Date
// queries are built on this predicate.
func OccursOn(r Reminder, target Date) bool {
	if target == r.Date {
		return true
	}
	return r.Repeat != RepeatNone && IsDueOn(r, target)
}

// DueByDate evaluates many reminders against many target dates in one
// pass, returning for each date the active reminders occurring on it,
// ordered by fire time then input order. Inactive reminders are skipped.
func DueByDate(reminders []Reminder, dates []Date) map[Date][]Reminder {
	out := make(map[Date][]Reminder, len(dates))
	for _, d := range dates {
		matched := make([]Reminder, 0)
		for _, r := range reminders {
			if !r.Active {
				continue
			}
			if OccursOn(r, d) {
				matched = append(matched, r)
			}
		}
		SortByFireTime(matched)
		out[d] = matched
	}
	return out
}

// SortByFireTime orders reminders by fire time ascending. The sort is
// stable so reminders sharing a minute keep their insertion order.
func SortByFireTime(items []Reminder) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].At < items[j].At })
}
