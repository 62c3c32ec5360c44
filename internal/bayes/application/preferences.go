package application

import "github.com/chronosuggest/engine/internal/bayes/domain"

// ClockTime is a time-of-day value decoupled from any date.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) minutes() int { return c.Hour*60 + c.Minute }

// UserPreferences is C5's initialization input (spec.md §3 "UserPreferences").
type UserPreferences struct {
	WorkdayPrefStart     *ClockTime
	WorkdayPrefEnd       *ClockTime
	FocusPeakStart       *ClockTime
	FocusPeakEnd         *ClockTime
	DaysOff              map[int]bool // day-of-week index, 0=Sunday..6=Saturday
	DefaultDurationMinutes int
	Flexibility          string // LOW | MEDIUM | HIGH | UNKNOWN
	DeadlineBehavior     string // EARLY | ON_TIME | LAST_MINUTE | UNKNOWN
}

// workdayWindowEvidence implements the WorkdayWindow mapper in spec.md §4.5.
func workdayWindowEvidence(p UserPreferences) string {
	if p.WorkdayPrefStart == nil || p.WorkdayPrefEnd == nil {
		return "NONE"
	}
	start, end := *p.WorkdayPrefStart, *p.WorkdayPrefEnd
	span := end.minutes() - start.minutes()
	switch {
	case span > 12*60:
		return "FLEXIBLE"
	case start.Hour < 8:
		return "EARLY_BIRD"
	case start.Hour > 10 || end.Hour > 20:
		return "NIGHT_OWL"
	default:
		return "STANDARD"
	}
}

// focusPeakStateEvidence implements the FocusPeakState mapper.
func focusPeakStateEvidence(p UserPreferences) string {
	if p.FocusPeakStart == nil {
		return "NONE"
	}
	h := p.FocusPeakStart.Hour
	switch {
	case h < 12:
		return "MORNING"
	case h < 17:
		return "AFTERNOON"
	default:
		return "EVENING"
	}
}

// daysOffPatternEvidence implements the DaysOffPattern mapper.
func daysOffPatternEvidence(p UserPreferences) string {
	n := len(p.DaysOff)
	switch {
	case n == 0:
		return "NO_DAYS_OFF"
	case n >= 3:
		return "HEAVY"
	}
	for day := range p.DaysOff {
		if day != 0 && day != 6 {
			return "MIXED"
		}
	}
	return "WEEKEND_ONLY"
}

// durationPreferenceEvidence implements the DurationPreference mapper.
func durationPreferenceEvidence(p UserPreferences) string {
	switch {
	case p.DefaultDurationMinutes <= 45:
		return "SHORT"
	case p.DefaultDurationMinutes <= 90:
		return "MEDIUM"
	default:
		return "LONG"
	}
}

func flexibilityLevelEvidence(p UserPreferences) string {
	if p.Flexibility == "" {
		return "UNKNOWN"
	}
	return p.Flexibility
}

func deadlineBehaviorEvidence(p UserPreferences) string {
	if p.DeadlineBehavior == "" {
		return "UNKNOWN"
	}
	return p.DeadlineBehavior
}

// evidenceFromPreferences applies every Layer-1 mapper and returns the
// resulting evidence map, keyed by node name.
func evidenceFromPreferences(p UserPreferences) map[string]string {
	return map[string]string{
		domain.NodeWorkdayWindow:      workdayWindowEvidence(p),
		domain.NodeFocusPeakState:     focusPeakStateEvidence(p),
		domain.NodeDaysOffPattern:     daysOffPatternEvidence(p),
		domain.NodeDurationPreference: durationPreferenceEvidence(p),
		domain.NodeFlexibilityLevel:   flexibilityLevelEvidence(p),
		domain.NodeDeadlineBehavior:   deadlineBehaviorEvidence(p),
	}
}
