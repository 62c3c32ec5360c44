package nlp

import "time"

// Parse extracts a structured Intent from free text, resolving relative
// temporal expressions against referenceNow. It is a pure function: no I/O,
// no logging, no error return — malformed time/date fragments simply fail to
// extract rather than raising (see ParserError policy).
func Parse(text string, referenceNow time.Time) *Intent {
	norm := normalize(text)

	intent := NewIntent(norm)
	intent.TaskType = ExtractTaskType(norm)
	intent.Priority = ExtractPriority(norm)

	rangeClock, rangeDuration, hasRange := ExtractTimeRange(norm)

	var timeVal ClockTime
	hasTime := false
	if hasRange {
		timeVal = rangeClock
		hasTime = true
	} else if ct, ok := ExtractTime(norm); ok {
		timeVal = ct
		hasTime = true
	}

	duration, hasDuration := ExtractDuration(norm)
	if !hasDuration && hasRange {
		duration = rangeDuration
		hasDuration = true
	}

	var concreteDate time.Time
	hasConcrete := false
	explicitDateRequested := false
	if d, ok := ExtractAbsoluteDate(norm, referenceNow); ok {
		concreteDate, hasConcrete, explicitDateRequested = d, true, true
	} else if d, ok := ExtractRelativeDate(norm, referenceNow); ok {
		concreteDate, hasConcrete, explicitDateRequested = d, true, true
	}

	hasDateField := false
	switch {
	case hasConcrete && hasTime:
		dt := time.Date(concreteDate.Year(), concreteDate.Month(), concreteDate.Day(),
			timeVal.Hour, timeVal.Minute, 0, 0, referenceNow.Location())
		intent.DueDateTime = &dt
		intent.ExplicitDateTimeGiven = !hasDuration
		hasDateField = true
	case hasConcrete && !hasTime:
		ws := startOfDay(concreteDate)
		we := endOfDay(concreteDate)
		intent.WindowStart = &ws
		intent.WindowEnd = &we
		hasDateField = true
	default:
		if w, ok := ExtractWindow(norm, referenceNow); ok {
			ws, we := w.Start, w.End
			intent.WindowStart = &ws
			intent.WindowEnd = &we
		}
	}

	// preferredTimeOfDay is time-of-day decoupled from any date — it is
	// never populated when dueDateTime was populated (a concrete date+time
	// pair already fully anchors the request).
	if hasTime && intent.DueDateTime == nil {
		tv := timeVal
		intent.PreferredTimeOfDay = &tv
	}

	if hasDuration {
		d := duration
		intent.DurationMinutes = &d
	}

	intent.ExplicitDateRequested = explicitDateRequested
	intent.CriticalFields = CriticalFields{
		HasDate:     hasDateField,
		HasTime:     hasTime,
		HasDuration: hasDuration,
	}

	return intent
}

// MissingFields lists the critical fields the parse did not extract, for the
// "parse" external-interface response's `missing` slot.
func MissingFields(i *Intent) []string {
	var missing []string
	if !i.CriticalFields.HasDate {
		missing = append(missing, "date")
	}
	if !i.CriticalFields.HasTime {
		missing = append(missing, "time")
	}
	if !i.CriticalFields.HasDuration {
		missing = append(missing, "duration")
	}
	return missing
}

// Status is "complete" when every critical field was extracted, "partial"
// otherwise — the `status` slot of the parse() external interface.
func Status(i *Intent) string {
	if i.CriticalFields.AllPresent() {
		return "complete"
	}
	return "partial"
}
