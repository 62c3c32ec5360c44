package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reISODate    = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	reEuroDate   = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{4})\b`)
	reNumericDMY = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)

	reMonthName = `(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)`

	reMonthDayYear = regexp.MustCompile(`\b(?:on\s+)?` + reMonthName + `\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
	reDayMonthYear = regexp.MustCompile(`\b(\d{1,2})\s+` + reMonthName + `\s+(\d{4})\b`)
	reMonthDay     = regexp.MustCompile(`\b(?:on\s+)?` + reMonthName + `\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
)

// ExtractAbsoluteDate tries the seven absolute-date forms in the documented
// priority order (first match wins) and returns a midnight instant for the
// matched calendar day.
func ExtractAbsoluteDate(text string, now time.Time) (time.Time, bool) {
	if m := reISODate.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if t, ok := safeDate(y, mo, d, now.Location()); ok {
			return t, true
		}
	}
	if m := reEuroDate.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if t, ok := safeDate(y, mo, d, now.Location()); ok {
			return t, true
		}
	}
	if m := reMonthDayYear.FindStringSubmatch(text); m != nil {
		mo := monthNames[m[1]]
		d, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if t, ok := safeDate(y, int(mo), d, now.Location()); ok {
			return t, true
		}
	}
	if m := reDayMonthYear.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo := monthNames[m[2]]
		y, _ := strconv.Atoi(m[3])
		if t, ok := safeDate(y, int(mo), d, now.Location()); ok {
			return t, true
		}
	}
	// Numeric DD/MM/YYYY — interpreted strictly day-first, no month-first
	// fallback even when the day value would also be a valid month.
	if m := reNumericDMY.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if t, ok := safeDate(y, mo, d, now.Location()); ok {
			return t, true
		}
	}
	// Written month + day, no year: infer the nearest future occurrence.
	if m := reMonthDay.FindStringSubmatch(text); m != nil {
		mo := monthNames[m[1]]
		d, _ := strconv.Atoi(m[2])
		year := now.Year()
		if t, ok := safeDate(year, int(mo), d, now.Location()); ok {
			if !t.After(now) {
				t, _ = safeDate(year+1, int(mo), d, now.Location())
			}
			return t, true
		}
	}
	return time.Time{}, false
}

func safeDate(y, mo, d int, loc *time.Location) (time.Time, bool) {
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc)
	if t.Month() != time.Month(mo) || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

var (
	reTomorrow   = regexp.MustCompile(`\btomorrow\b`)
	reInNDays    = regexp.MustCompile(`\bin\s+(\d+)\s+days?\b`)
	reInWordDays = regexp.MustCompile(`\bin\s+(one|two|three|four|five|six|seven|eight|nine|ten)\s+days?\b`)
	reUpcoming   = regexp.MustCompile(`\b(?:upcoming|next|on)\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	reNextWeekWd = regexp.MustCompile(`\bnext\s+week\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)

	reOrdinalWdOfNextMonth = regexp.MustCompile(`\b(first|second|third|fourth|last)\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\s+of\s+next\s+month\b`)
	reNextMonthOrdWd       = regexp.MustCompile(`\bnext\s+month\s+(?:on\s+the\s+)?(first|second|third|fourth|last)\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
)

// ExtractRelativeDate resolves the relative-date phrasings into a concrete
// day (midnight instant) and reports whether the phrase is a "concrete"
// (explicit) date request as opposed to a vague range.
func ExtractRelativeDate(text string, now time.Time) (time.Time, bool) {
	if reTomorrow.MatchString(text) {
		return startOfDay(now).AddDate(0, 0, 1), true
	}
	if m := reInNDays.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return startOfDay(now).AddDate(0, 0, n), true
	}
	if m := reInWordDays.FindStringSubmatch(text); m != nil {
		n := numberWords[m[1]]
		return startOfDay(now).AddDate(0, 0, n), true
	}
	if m := reOrdinalWdOfNextMonth.FindStringSubmatch(text); m != nil {
		return nthWeekdayOfMonth(nextMonthFirstDay(now), weekdayNames[m[2]], ordinalWords[m[1]]), true
	}
	if m := reNextMonthOrdWd.FindStringSubmatch(text); m != nil {
		return nthWeekdayOfMonth(nextMonthFirstDay(now), weekdayNames[m[2]], ordinalWords[m[1]]), true
	}
	if m := reNextWeekWd.FindStringSubmatch(text); m != nil {
		nextSunday := sundayOfWeek(now).AddDate(0, 0, 7)
		wd := weekdayNames[m[1]]
		return nextSunday.AddDate(0, 0, int(wd)), true
	}
	if m := reUpcoming.FindStringSubmatch(text); m != nil {
		return nextWeekday(now, weekdayNames[m[1]]), true
	}
	return time.Time{}, false
}

var (
	reThisWeek    = regexp.MustCompile(`\b(?:this\s+week|sometime\s+this\s+week)\b`)
	reNextWeek    = regexp.MustCompile(`\b(?:next\s+week|sometime\s+next\s+week|in\s+(\d+)\s+weeks?)\b`)
	reThisMonth   = regexp.MustCompile(`\b(?:this\s+month|sometime\s+this\s+month)\b`)
	reLaterMonth  = regexp.MustCompile(`\blater\s+this\s+month\b`)
	reNextMonth   = regexp.MustCompile(`\b(?:next\s+month|in\s+(\d+)\s+months?)\b`)
	reSometimeMon = regexp.MustCompile(`\bsometime\s+in\s+` + reMonthName + `\b`)
)

// Window is a half-open instant range [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// ExtractWindow resolves the vague-range phrasings into a window, and
// reports whether such a phrase was found. A window found here never counts
// as an explicit date request: windows are exactly the "vague range" case.
func ExtractWindow(text string, now time.Time) (Window, bool) {
	// "next week <weekday>" and ordinal-of-next-month phrases are handled by
	// ExtractRelativeDate and take priority in the parser's orchestration;
	// here we only resolve the genuinely vague ranges.
	if reLaterMonth.MatchString(text) {
		last := lastDayOfMonth(now)
		start := last.AddDate(0, 0, -9)
		if startOfDay(now).After(start) {
			start = startOfDay(now)
		}
		return Window{start, endOfDay(last)}, true
	}
	if reThisWeek.MatchString(text) {
		return Window{startOfDay(now), saturdayOfWeek(now)}, true
	}
	if m := reNextWeek.FindStringSubmatch(text); m != nil {
		nextSunday := sundayOfWeek(now).AddDate(0, 0, 7)
		return Window{nextSunday, endOfDay(nextSunday.AddDate(0, 0, 6))}, true
	}
	if reThisMonth.MatchString(text) {
		return Window{startOfDay(now), endOfDay(lastDayOfMonth(now))}, true
	}
	if m := reNextMonth.FindStringSubmatch(text); m != nil {
		n := 1
		if m[1] != "" {
			n, _ = strconv.Atoi(m[1])
		}
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, n, 0)
		end := start.AddDate(0, 1, -1)
		return Window{start, endOfDay(end)}, true
	}
	if m := reSometimeMon.FindStringSubmatch(text); m != nil {
		mo := monthNames[m[1]]
		year := now.Year()
		start := time.Date(year, mo, 1, 0, 0, 0, 0, now.Location())
		if start.Before(startOfDay(now)) && start.Month() != now.Month() {
			start = time.Date(year+1, mo, 1, 0, 0, 0, 0, now.Location())
		}
		end := start.AddDate(0, 1, -1)
		return Window{start, endOfDay(end)}, true
	}
	return Window{}, false
}

// normalize lowercases and collapses whitespace, the shared first step every
// extractor in this package assumes has already been applied to its input.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
