package nlp

import "time"

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last instant (23:59:59) of t's calendar day.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Second)
}

// sundayOfWeek walks back from t to the Sunday that starts its week.
// time.Weekday already uses the Sun=0..Sat=6 convention this package
// standardizes on, so no remapping is needed.
func sundayOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// saturdayOfWeek returns the Saturday (23:59:59) closing the week containing t.
func saturdayOfWeek(t time.Time) time.Time {
	return endOfDay(sundayOfWeek(t).AddDate(0, 0, 6))
}

// nextWeekday returns the next strictly-future occurrence of wd after t
// (never returns t's own day, even if t.Weekday() == wd).
func nextWeekday(t time.Time, wd time.Weekday) time.Time {
	d := startOfDay(t)
	delta := (int(wd) - int(d.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return d.AddDate(0, 0, delta)
}

// nextMonthFirstDay returns the 1st of the month following t's month.
func nextMonthFirstDay(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, 0)
}

// lastDayOfMonth returns the last calendar day (at midnight) of the month containing t.
func lastDayOfMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1)
}

// nthWeekdayOfMonth returns the nth (1-based) occurrence of wd in the month
// containing monthStart (which must be the 1st of that month). ordinal<0
// means "last".
func nthWeekdayOfMonth(monthStart time.Time, wd time.Weekday, ordinal int) time.Time {
	if ordinal < 0 {
		last := lastDayOfMonth(monthStart)
		delta := (int(last.Weekday()) - int(wd) + 7) % 7
		return last.AddDate(0, 0, -delta)
	}
	delta := (int(wd) - int(monthStart.Weekday()) + 7) % 7
	first := monthStart.AddDate(0, 0, delta)
	return first.AddDate(0, 0, 7*(ordinal-1))
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var ordinalWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "last": -1,
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}
