package services

import (
	"context"
	"time"

	"github.com/chronosuggest/engine/internal/nlp"
	schedulingdomain "github.com/chronosuggest/engine/internal/scheduling/domain"
)

// DispatchOutcome is the result category C9 routes an intent to.
type DispatchOutcome string

const (
	// OutcomePreferencesRequired is returned when the user's BN has never
	// been trained; callers must collect preferences before scheduling.
	OutcomePreferencesRequired DispatchOutcome = "PREFERENCES_REQUIRED"
	// OutcomeConflict means the derived interval overlaps an existing busy
	// interval; the parsed intent travels back so the caller can re-prompt.
	OutcomeConflict DispatchOutcome = "CONFLICT"
	// OutcomeCreated means the derived interval is free and the caller
	// should create the task directly.
	OutcomeCreated DispatchOutcome = "CREATED"
	// OutcomeSuggestions means the intent under-specifies the slot; C7
	// produced a paginated ranked list instead.
	OutcomeSuggestions DispatchOutcome = "SUGGESTIONS"
)

// DispatchResult is C9's output.
type DispatchResult struct {
	Outcome              DispatchOutcome
	Intent               *nlp.Intent
	Start                time.Time
	End                  time.Time
	Conflicts            []schedulingdomain.BusyInterval
	Suggestions          []schedulingdomain.Slot
	ShouldCreateDirectly bool
}

// SuggestionParams carries the pagination/search-breadth inputs C7 needs
// that are not themselves part of a parsed Intent.
type SuggestionParams struct {
	Page        int
	PageSize    int
	HorizonDays int
	StepMinutes int
}

// Dispatcher implements C9: given a parsed Intent and the user's BN
// training state, decide between direct creation and delegating to the
// suggestion engine.
type Dispatcher struct {
	busySource schedulingdomain.BusyIntervalSource
	suggester  *SlotSuggester
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(busySource schedulingdomain.BusyIntervalSource, suggester *SlotSuggester) *Dispatcher {
	return &Dispatcher{busySource: busySource, suggester: suggester}
}

// Dispatch runs C9's routing logic.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, intent *nlp.Intent, isTrained bool, defaultDurationMinutes int, params SuggestionParams, now time.Time) (*DispatchResult, error) {
	if !isTrained {
		return &DispatchResult{Outcome: OutcomePreferencesRequired, Intent: intent}, nil
	}

	cf := intent.CriticalFields
	switch {
	case cf.HasDate && cf.HasTime && !cf.HasDuration:
		// Case 4: date+time given, duration missing — fall back to the
		// user's default duration.
		return d.dispatchDirect(ctx, userID, intent, defaultDurationMinutes)

	case cf.AllPresent():
		// Case 2.A: everything given.
		return d.dispatchDirect(ctx, userID, intent, *intent.DurationMinutes)

	default:
		slots, err := d.suggester.Suggest(ctx, buildSuggestionRequest(intent, userID, params), now)
		if err != nil {
			return nil, err
		}
		return &DispatchResult{
			Outcome:              OutcomeSuggestions,
			Intent:               intent,
			Suggestions:          slots,
			ShouldCreateDirectly: false,
		}, nil
	}
}

func (d *Dispatcher) dispatchDirect(ctx context.Context, userID string, intent *nlp.Intent, durationMinutes int) (*DispatchResult, error) {
	start := *intent.DueDateTime
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	busy, err := d.busySource.BusyIntervals(ctx, userID)
	if err != nil {
		return nil, err
	}
	conflicts := schedulingdomain.DetectConflicts(schedulingdomain.TimeRange{Start: start, End: end}, busy)
	if len(conflicts) > 0 {
		return &DispatchResult{
			Outcome:   OutcomeConflict,
			Intent:    intent,
			Start:     start,
			End:       end,
			Conflicts: conflicts,
		}, nil
	}
	return &DispatchResult{
		Outcome:              OutcomeCreated,
		Intent:                intent,
		Start:                start,
		End:                  end,
		ShouldCreateDirectly: true,
	}, nil
}

// ReDetectConflict re-runs C8 on a caller-chosen interval (e.g. the user
// picking one of the returned suggestions), per spec.md §4.9's "on explicit
// user selection of a suggestion: re-run C8".
func (d *Dispatcher) ReDetectConflict(ctx context.Context, userID string, start, end time.Time) ([]schedulingdomain.BusyInterval, error) {
	busy, err := d.busySource.BusyIntervals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return schedulingdomain.DetectConflicts(schedulingdomain.TimeRange{Start: start, End: end}, busy), nil
}

func buildSuggestionRequest(intent *nlp.Intent, userID string, params SuggestionParams) schedulingdomain.SuggestionRequest {
	duration := 0
	if intent.DurationMinutes != nil {
		duration = *intent.DurationMinutes
	}
	var preferredStart *time.Time
	if intent.ExplicitDateTimeGiven && intent.DueDateTime != nil {
		preferredStart = intent.DueDateTime
	}
	return schedulingdomain.SuggestionRequest{
		UserID:                userID,
		DurationMinutes:       duration,
		TaskType:              intent.TaskType,
		Page:                  params.Page,
		PageSize:              params.PageSize,
		HorizonDays:           params.HorizonDays,
		StepMinutes:           params.StepMinutes,
		PreferredStart:        preferredStart,
		WindowStart:           intent.WindowStart,
		WindowEnd:             intent.WindowEnd,
		ExplicitDateRequested: intent.ExplicitDateRequested,
		PreferredTimeOfDay:    intent.PreferredTimeOfDay,
		ExplicitDateTimeGiven: intent.ExplicitDateTimeGiven,
		FixedTimeSearch:       intent.PreferredTimeOfDay != nil,
	}
}
