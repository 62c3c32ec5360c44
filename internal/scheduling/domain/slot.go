package domain

import (
	"time"

	"github.com/chronosuggest/engine/internal/nlp"
)

// Slot is a single scored, rankable candidate interval the suggestion
// engine (C7) emits.
type Slot struct {
	ScheduledStart   time.Time
	ScheduledEnd     time.Time
	Score            float64
	ExceedsWorkHours bool
}

// SuggestionRequest carries every input C7's window-selection switch reads
// (spec.md §4.7).
type SuggestionRequest struct {
	UserID          string
	DurationMinutes int
	TaskType        nlp.TaskType
	Page            int
	PageSize        int
	HorizonDays     int
	StepMinutes     int // default 15 when zero

	PreferredStart *time.Time
	WindowStart    *time.Time
	WindowEnd      *time.Time
	DayStart       *nlp.ClockTime
	DayEnd         *nlp.ClockTime

	ExplicitDateRequested bool
	PreferredTimeOfDay    *nlp.ClockTime
	ExplicitDateTimeGiven bool
	FixedTimeSearch       bool
}

// WindowCase identifies which of the six window-selection paths (spec.md
// §4.7) a request resolves to.
type WindowCase int

const (
	// CaseExplicitDateTimeNoDuration is Case 2.D: a fixed start, trying a
	// small set of candidate durations.
	CaseExplicitDateTimeNoDuration WindowCase = iota
	// CaseTimeOnly is Case 2.G: a fixed (hour, minute), scanned day-by-day.
	CaseTimeOnly
	// CaseWindowProvided is Case 2.B/2.C: an explicit [windowStart, windowEnd).
	CaseWindowProvided
	// CasePreferredStart scans [anchor-2h, anchor+7d].
	CasePreferredStart
	// CaseDurationOnly scans day-by-day from now+30m to now+horizonDays.
	CaseDurationOnly
	// CaseDefault is the filled-anchor precision scan.
	CaseDefault
)

// ResolveWindowCase implements the case-selection priority spec.md §4.7
// describes as "one of the following paths is taken exactly once".
func ResolveWindowCase(req SuggestionRequest) WindowCase {
	switch {
	case req.ExplicitDateTimeGiven && req.DurationMinutes == 0:
		return CaseExplicitDateTimeNoDuration
	case req.PreferredTimeOfDay != nil && req.WindowStart == nil && req.WindowEnd == nil && req.PreferredStart == nil:
		return CaseTimeOnly
	case req.WindowStart != nil && req.WindowEnd != nil:
		return CaseWindowProvided
	case req.PreferredStart != nil:
		return CasePreferredStart
	case req.WindowStart == nil && req.WindowEnd == nil && req.PreferredStart == nil && req.PreferredTimeOfDay == nil && req.DurationMinutes > 0:
		return CaseDurationOnly
	default:
		return CaseDefault
	}
}
