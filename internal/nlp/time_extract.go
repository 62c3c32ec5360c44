package nlp

import (
	"regexp"
	"strconv"
)

var (
	reAtHMMAmPm = regexp.MustCompile(`\bat\s+(\d{1,2}):(\d{2})\s*(am|pm)\b`)
	reHMMAmPm   = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(am|pm)\b`)
	reAtHAmPm   = regexp.MustCompile(`\bat\s+(\d{1,2})\s*(am|pm)\b`)
	reHAmPm     = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
	reAtHMM24   = regexp.MustCompile(`\bat\s+(\d{1,2}):(\d{2})\b`)
	reHMM24     = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	reHInPeriod = regexp.MustCompile(`\b(\d{1,2})\s+in\s+the\s+(morning|afternoon|evening)\b`)

	reTimeRange = regexp.MustCompile(
		`\b(\d{1,2}):(\d{2})\s*(am|pm)?\s*(?:-|to|until)\s*(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
)

func to12to24(h int, meridiem string) int {
	h = h % 12
	if meridiem == "pm" {
		h += 12
	}
	return h
}

func validClock(h, m int) bool {
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}

// ExtractTime returns the (hour, minute) named in text under the strict
// priority contract: "december 5, 2025 at 13:00" must resolve to 13:00, not
// 05:00, which is why the "at H:MM am|pm" forms are tried before the bare
// 24-hour forms.
func ExtractTime(text string) (ClockTime, bool) {
	if m := reAtHMMAmPm.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		h = to12to24(h, m[3])
		if validClock(h, mm) {
			return ClockTime{h, mm}, true
		}
	}
	if m := reHMMAmPm.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		h = to12to24(h, m[3])
		if validClock(h, mm) {
			return ClockTime{h, mm}, true
		}
	}
	if m := reAtHAmPm.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		h = to12to24(h, m[2])
		if validClock(h, 0) {
			return ClockTime{h, 0}, true
		}
	}
	if m := reHAmPm.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		h = to12to24(h, m[2])
		if validClock(h, 0) {
			return ClockTime{h, 0}, true
		}
	}
	if m := reAtHMM24.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if validClock(h, mm) {
			return ClockTime{h, mm}, true
		}
	}
	if m := reHMM24.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if validClock(h, mm) {
			return ClockTime{h, mm}, true
		}
	}
	if m := reHInPeriod.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		period := m[2]
		switch period {
		case "morning":
			if h == 12 {
				h = 0
			}
		case "afternoon", "evening":
			if h < 12 {
				h += 12
			}
		}
		if validClock(h, 0) {
			return ClockTime{h, 0}, true
		}
	}
	return ClockTime{}, false
}

// ExtractTimeRange returns the start clock time and the duration in minutes
// implied by "H:MM[am|pm] (- | to | until) H:MM[am|pm]", rolling over
// midnight when the end is not strictly after the start. Only durations in
// [1, 1440] minutes are accepted.
func ExtractTimeRange(text string) (ClockTime, int, bool) {
	m := reTimeRange.FindStringSubmatch(text)
	if m == nil {
		return ClockTime{}, 0, false
	}
	startH, _ := strconv.Atoi(m[1])
	startM, _ := strconv.Atoi(m[2])
	startMeridiem := m[3]
	endH, _ := strconv.Atoi(m[4])
	endM, _ := strconv.Atoi(m[5])
	endMeridiem := m[6]

	if startMeridiem != "" {
		startH = to12to24(startH, startMeridiem)
	}
	if endMeridiem != "" {
		endH = to12to24(endH, endMeridiem)
	}
	if !validClock(startH, startM) || !validClock(endH, endM) {
		return ClockTime{}, 0, false
	}

	startMin := startH*60 + startM
	endMin := endH*60 + endM
	duration := endMin - startMin
	if duration <= 0 {
		duration += 24 * 60
	}
	if duration < 1 || duration > 1440 {
		return ClockTime{}, 0, false
	}
	return ClockTime{startH, startM}, duration, true
}
