// Package domain holds the scheduling core's pure types: busy intervals,
// conflict detection, and the candidate slot shape the suggestion engine
// produces.
package domain

import (
	"context"
	"time"
)

// BusyInterval is a committed span of time the scheduler must not double-book.
type BusyInterval struct {
	UserID string
	Start  time.Time
	End    time.Time
}

// BusyIntervalSource is the external collaborator (C6) that yields a user's
// committed time. Implementations own the question of what "committed"
// means for their backing store (a task table, a calendar, a flat file).
type BusyIntervalSource interface {
	BusyIntervals(ctx context.Context, userID string) ([]BusyInterval, error)
}

// DeriveBusyInterval implements the spec.md §4.6 derivation rule: when a
// task has a due date and duration but no explicit start/end, the due date
// (at midnight if it carries no time component) is the start and
// start+duration is the end. ok is false when the due date or the duration
// is missing (the task contributes no busy interval).
func DeriveBusyInterval(dueDateTime *time.Time, durationMinutes *int, hasTimeComponent bool) (start, end time.Time, ok bool) {
	if dueDateTime == nil || durationMinutes == nil {
		return time.Time{}, time.Time{}, false
	}
	start = *dueDateTime
	if !hasTimeComponent {
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	}
	end = start.Add(time.Duration(*durationMinutes) * time.Minute)
	return start, end, true
}

// IsRestDay reports whether t's weekday is one of the user's days off.
// daysOff is keyed by time.Weekday's own Sun=0..Sat=6 convention — see
// DESIGN.md's Open Question #1 for why no remap exists anywhere in this
// codebase.
func IsRestDay(t time.Time, daysOff map[int]bool) bool {
	return daysOff[int(t.Weekday())]
}
