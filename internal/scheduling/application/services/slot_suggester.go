// Package services implements the suggestion and dispatch orchestration
// (C7, C9): window selection, candidate enumeration/filtering/scoring, and
// case-based routing between direct creation and paginated suggestions.
package services

import (
	"context"
	"sort"
	"time"

	"github.com/chronosuggest/engine/internal/nlp"
	schedulingdomain "github.com/chronosuggest/engine/internal/scheduling/domain"
)

// PredictFunc scores a candidate interval for a task type; backed by
// application.UserBN.PredictSlotScore.
type PredictFunc func(taskType string, start, end time.Time) float64

// SlotSuggester implements C7.
type SlotSuggester struct {
	busySource   schedulingdomain.BusyIntervalSource
	predict      PredictFunc
	workdayStart *nlp.ClockTime
	workdayEnd   *nlp.ClockTime
	daysOff      map[int]bool
}

// NewSlotSuggester constructs a suggester. workdayStart/workdayEnd/daysOff
// come from the same UserPreferences C5 was initialized with.
func NewSlotSuggester(busySource schedulingdomain.BusyIntervalSource, predict PredictFunc, workdayStart, workdayEnd *nlp.ClockTime, daysOff map[int]bool) *SlotSuggester {
	return &SlotSuggester{
		busySource:   busySource,
		predict:      predict,
		workdayStart: workdayStart,
		workdayEnd:   workdayEnd,
		daysOff:      daysOff,
	}
}

const (
	minLeadTime       = 30 * time.Minute
	durationOnlyCap   = 8
	precisionStep     = 15 * time.Minute
	fallbackStep      = 30 * time.Minute
)

var explicitDurationCandidates = []int{30, 45, 60, 90, 120}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func snapToNextQuarterHour(t time.Time, step time.Duration) time.Time {
	next := t.Add(step)
	rem := next.Minute() % 15
	if rem != 0 {
		next = next.Add(time.Duration(15-rem) * time.Minute)
	}
	return next.Truncate(time.Minute)
}

// Suggest runs C7: resolve the window case, enumerate candidates up to the
// pool target, apply the universal filters, score survivors, sort, and
// paginate.
func (s *SlotSuggester) Suggest(ctx context.Context, req schedulingdomain.SuggestionRequest, now time.Time) ([]schedulingdomain.Slot, error) {
	step := precisionStep
	if req.StepMinutes > 0 {
		step = time.Duration(req.StepMinutes) * time.Minute
	}

	busy, err := s.busySource.BusyIntervals(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	poolTarget := max(req.Page*req.PageSize*20, 50)

	candidates := s.collectCandidates(req, now, busy, step, poolTarget)
	if len(candidates) == 0 && step != fallbackStep {
		candidates = s.collectCandidates(req, now, busy, fallbackStep, poolTarget)
	}

	for i := range candidates {
		candidates[i].Score = s.predict(string(req.TaskType), candidates[i].ScheduledStart, candidates[i].ScheduledEnd)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ScheduledStart.Before(candidates[j].ScheduledStart)
	})

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = len(candidates)
	}
	start := (req.Page - 1) * pageSize
	if start < 0 {
		start = 0
	}
	end := start + pageSize
	if start > len(candidates) {
		start = len(candidates)
	}
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[start:end], nil
}

func (s *SlotSuggester) collectCandidates(req schedulingdomain.SuggestionRequest, now time.Time, busy []schedulingdomain.BusyInterval, step time.Duration, poolTarget int) []schedulingdomain.Slot {
	switch schedulingdomain.ResolveWindowCase(req) {
	case schedulingdomain.CaseExplicitDateTimeNoDuration:
		return s.candidatesExplicitNoDuration(req, now, busy)
	case schedulingdomain.CaseTimeOnly:
		return s.candidatesTimeOnly(req, now, busy, poolTarget)
	case schedulingdomain.CaseWindowProvided:
		return s.candidatesWindow(req, now, busy, step, poolTarget)
	case schedulingdomain.CasePreferredStart:
		return s.candidatesPreferredStart(req, now, busy, step, poolTarget)
	case schedulingdomain.CaseDurationOnly:
		return s.candidatesDurationOnly(req, now, busy)
	default:
		return s.candidatesDefault(req, now, busy, step, poolTarget)
	}
}

// withinWorkHours resolves whichever of (day_start, day_end) or the
// standing (workday_pref_start, workday_pref_end) applies, per spec.md
// §4.7's "universal filters" work-hours rule. has is false when neither is
// defined, signalling the caller should mark the slot as exceeding work
// hours for transparency rather than rejecting it.
func (s *SlotSuggester) withinWorkHours(req schedulingdomain.SuggestionRequest, start, end time.Time) (ok bool, has bool) {
	winStart, winEnd := req.DayStart, req.DayEnd
	if winStart == nil || winEnd == nil {
		winStart, winEnd = s.workdayStart, s.workdayEnd
	}
	if winStart == nil || winEnd == nil {
		return true, false
	}
	sMin := start.Hour()*60 + start.Minute()
	eMin := end.Hour()*60 + end.Minute()
	wsMin := winStart.Hour*60 + winStart.Minute
	weMin := winEnd.Hour*60 + winEnd.Minute
	return sMin >= wsMin && eMin <= weMin, true
}

// buildSlot applies the universal filters (spec.md §4.7) to a single
// candidate start/duration and returns the resulting Slot, or ok=false if
// any filter rejects it.
func (s *SlotSuggester) buildSlot(req schedulingdomain.SuggestionRequest, start time.Time, durationMinutes int, busy []schedulingdomain.BusyInterval, now time.Time, lockedDate *time.Time) (schedulingdomain.Slot, bool) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	if lockedDate != nil && !sameDay(start, *lockedDate) {
		return schedulingdomain.Slot{}, false
	}
	if schedulingdomain.IsRestDay(start, s.daysOff) && !req.ExplicitDateRequested {
		return schedulingdomain.Slot{}, false
	}
	within, has := s.withinWorkHours(req, start, end)
	if has && !within {
		return schedulingdomain.Slot{}, false
	}
	if schedulingdomain.HasConflict(schedulingdomain.TimeRange{Start: start, End: end}, busy) {
		return schedulingdomain.Slot{}, false
	}
	if req.FixedTimeSearch && req.PreferredTimeOfDay != nil {
		if start.Hour() != req.PreferredTimeOfDay.Hour || start.Minute() != req.PreferredTimeOfDay.Minute {
			return schedulingdomain.Slot{}, false
		}
	}
	return schedulingdomain.Slot{
		ScheduledStart:   start,
		ScheduledEnd:     end,
		ExceedsWorkHours: !has,
	}, true
}

// candidatesExplicitNoDuration is Case 2.D.
func (s *SlotSuggester) candidatesExplicitNoDuration(req schedulingdomain.SuggestionRequest, now time.Time, busy []schedulingdomain.BusyInterval) []schedulingdomain.Slot {
	if req.PreferredStart == nil {
		return nil
	}
	anchor := *req.PreferredStart
	if anchor.Sub(now) < minLeadTime {
		return nil
	}
	var out []schedulingdomain.Slot
	for _, d := range explicitDurationCandidates {
		if slot, ok := s.buildSlot(req, anchor, d, busy, now, nil); ok {
			out = append(out, slot)
		}
	}
	return out
}

// candidatesTimeOnly is Case 2.G.
func (s *SlotSuggester) candidatesTimeOnly(req schedulingdomain.SuggestionRequest, now time.Time, busy []schedulingdomain.BusyInterval, poolTarget int) []schedulingdomain.Slot {
	if req.PreferredTimeOfDay == nil {
		return nil
	}
	clock := *req.PreferredTimeOfDay
	var out []schedulingdomain.Slot
	for day := 0; day < req.HorizonDays && len(out) < poolTarget; day++ {
		date := now.AddDate(0, 0, day)
		start := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour, clock.Minute, 0, 0, date.Location())
		if start.Sub(now) < minLeadTime {
			continue
		}
		if slot, ok := s.buildSlot(req, start, req.DurationMinutes, busy, now, nil); ok {
			out = append(out, slot)
		}
	}
	return out
}

// candidatesWindow is Case 2.B (date-only window) / 2.C (vague range).
func (s *SlotSuggester) candidatesWindow(req schedulingdomain.SuggestionRequest, now time.Time, busy []schedulingdomain.BusyInterval, step time.Duration, poolTarget int) []schedulingdomain.Slot {
	windowStart, windowEnd := *req.WindowStart, *req.WindowEnd
	startScan := windowStart
	if sameDay(windowStart, now) {
		bumped := now.Add(minLeadTime)
		if bumped.After(startScan) {
			startScan = bumped
		}
	}

	var lockedDate *time.Time
	if sameDay(windowStart, windowEnd) {
		d := windowStart
		lockedDate = &d
	}

	var out []schedulingdomain.Slot
	if req.PreferredTimeOfDay != nil {
		clock := *req.PreferredTimeOfDay
		for day := startScan; !day.After(windowEnd) && len(out) < poolTarget; day = day.AddDate(0, 0, 1) {
			start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour, clock.Minute, 0, 0, day.Location())
			if start.Before(startScan) || start.After(windowEnd) {
				continue
			}
			if slot, ok := s.buildSlot(req, start, req.DurationMinutes, busy, now, lockedDate); ok {
				out = append(out, slot)
			}
			if lockedDate != nil {
				break
			}
		}
		return out
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	for t := startScan; !t.Add(duration).After(windowEnd) && len(out) < poolTarget; t = t.Add(step) {
		if slot, ok := s.buildSlot(req, t, req.DurationMinutes, busy, now, lockedDate); ok {
			out = append(out, slot)
		}
	}
	return out
}

// candidatesPreferredStart scans [anchor-2h, anchor+7d] intersected with any
// provided window.
func (s *SlotSuggester) candidatesPreferredStart(req schedulingdomain.SuggestionRequest, now time.Time, busy []schedulingdomain.BusyInterval, step time.Duration, poolTarget int) []schedulingdomain.Slot {
	anchor := *req.PreferredStart
	scanStart := anchor.Add(-2 * time.Hour)
	scanEnd := anchor.AddDate(0, 0, 7)
	if req.WindowStart != nil && req.WindowStart.After(scanStart) {
		scanStart = *req.WindowStart
	}
	if req.WindowEnd != nil && req.WindowEnd.Before(scanEnd) {
		scanEnd = *req.WindowEnd
	}
	if scanStart.Before(now) {
		scanStart = now
	}

	var out []schedulingdomain.Slot
	for t := scanStart; t.Before(scanEnd) && len(out) < poolTarget; t = t.Add(step) {
		if slot, ok := s.buildSlot(req, t, req.DurationMinutes, busy, now, nil); ok {
			out = append(out, slot)
		}
	}
	return out
}

// candidatesDurationOnly is the "Duration Only" path: day-by-day from
// now+30m to now+horizon_days, up to 8 slots per non-rest day, 15-min step.
func (s *SlotSuggester) candidatesDurationOnly(req schedulingdomain.SuggestionRequest, now time.Time, busy []schedulingdomain.BusyInterval) []schedulingdomain.Slot {
	start := now.Add(minLeadTime)
	end := now.AddDate(0, 0, req.HorizonDays)

	var out []schedulingdomain.Slot
	perDay := 0
	curDay := start
	for t := start; t.Before(end); t = t.Add(precisionStep) {
		if !sameDay(t, curDay) {
			curDay = t
			perDay = 0
		}
		if perDay >= durationOnlyCap {
			continue
		}
		if slot, ok := s.buildSlot(req, t, req.DurationMinutes, busy, now, nil); ok {
			out = append(out, slot)
			perDay++
		}
	}
	return out
}

// candidatesDefault is the filled-anchor precision scan.
func (s *SlotSuggester) candidatesDefault(req schedulingdomain.SuggestionRequest, now time.Time, busy []schedulingdomain.BusyInterval, step time.Duration, poolTarget int) []schedulingdomain.Slot {
	startScan := now
	if req.WindowStart != nil {
		startScan = *req.WindowStart
	}
	if sameDay(startScan, now) && s.workdayStart != nil {
		candidateStart := time.Date(startScan.Year(), startScan.Month(), startScan.Day(), s.workdayStart.Hour, s.workdayStart.Minute, 0, 0, startScan.Location())
		if candidateStart.After(startScan) {
			startScan = candidateStart
		}
	}
	endScan := startScan.AddDate(0, 0, req.HorizonDays)
	if req.WindowEnd != nil {
		endScan = *req.WindowEnd
	}

	var out []schedulingdomain.Slot
	t := startScan
	first := true
	for t.Before(endScan) && len(out) < poolTarget {
		if slot, ok := s.buildSlot(req, t, req.DurationMinutes, busy, now, nil); ok {
			out = append(out, slot)
		}
		if first {
			first = false
			t = snapToNextQuarterHour(t, step)
		} else {
			t = t.Add(step)
		}
	}
	return out
}
