package nlp

import "regexp"

var (
	rePriorityHigh   = regexp.MustCompile(`\b(?:high|urgent|critical)\b(?:\s+priority)?`)
	rePriorityLow    = regexp.MustCompile(`\blow\b(?:\s+priority)?`)
	rePriorityMedium = regexp.MustCompile(`\bmedium\b(?:\s+priority)?`)
)

// ExtractPriority returns the priority keyword found in text, defaulting to
// MEDIUM when none matches.
func ExtractPriority(text string) Priority {
	switch {
	case rePriorityHigh.MatchString(text):
		return PriorityHigh
	case rePriorityLow.MatchString(text):
		return PriorityLow
	case rePriorityMedium.MatchString(text):
		return PriorityMedium
	default:
		return PriorityMedium
	}
}

var studiesKeywords = []string{
	"study", "studies", "homework", "reading", "research", "exam", "test",
	"lecture", "class", "course", "presentation", "project", "brainstorming",
	"review",
}

var trainingKeywords = []string{
	"workout", "exercise", "gym", "run", "running", "jogging", "training",
}

var meetingKeywords = []string{
	"meeting", "meet", "call", "appointment",
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if regexp.MustCompile(`\b` + w + `\b`).MatchString(text) {
			return true
		}
	}
	return false
}

// ExtractTaskType classifies text into one of the three task types, checked
// in order Studies, Training, Meeting; defaults to Meeting.
func ExtractTaskType(text string) TaskType {
	switch {
	case containsAny(text, studiesKeywords):
		return TaskTypeStudies
	case containsAny(text, trainingKeywords):
		return TaskTypeTraining
	case containsAny(text, meetingKeywords):
		return TaskTypeMeeting
	default:
		return TaskTypeMeeting
	}
}
