// Package nlp implements the deterministic, rule-based natural-language
// intent parser: a pure function of (text, reference clock) that extracts a
// structured scheduling intent from English free text.
package nlp

import "time"

// TaskType classifies what kind of activity the parsed text describes.
type TaskType string

const (
	TaskTypeMeeting TaskType = "Meeting"
	TaskTypeTraining TaskType = "Training"
	TaskTypeStudies TaskType = "Studies"
)

// Priority is the urgency level extracted from the text.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ClockTime is an (hour, minute) pair decoupled from any date.
type ClockTime struct {
	Hour   int
	Minute int
}

// CriticalFields is the triple that determines direct-create vs. suggestion.
type CriticalFields struct {
	HasDate    bool
	HasTime    bool
	HasDuration bool
}

// AllPresent reports whether all three critical fields were extracted.
func (c CriticalFields) AllPresent() bool {
	return c.HasDate && c.HasTime && c.HasDuration
}

// Intent is the structured record produced by Parse.
type Intent struct {
	Title    string
	TaskType TaskType
	Priority Priority

	DueDateTime *time.Time

	WindowStart *time.Time
	WindowEnd   *time.Time

	PreferredTimeOfDay *ClockTime

	DurationMinutes *int

	ExplicitDateRequested bool
	ExplicitDateTimeGiven bool

	CriticalFields CriticalFields
}

// NewIntent builds an Intent with the non-optional defaults (Meeting /
// MEDIUM) applied; extractors populate the rest.
func NewIntent(title string) *Intent {
	return &Intent{
		Title:    title,
		TaskType: TaskTypeMeeting,
		Priority: PriorityMedium,
	}
}
