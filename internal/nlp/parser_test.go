package nlp_test

import (
	"testing"
	"time"

	"github.com/chronosuggest/engine/internal/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference clock used across scenarios: 2025-11-27 10:00 Thursday.
func referenceClock() time.Time {
	return time.Date(2025, time.November, 27, 10, 0, 0, 0, time.UTC)
}

func TestParse_S1_AbsoluteDateTimeAndDuration(t *testing.T) {
	r := referenceClock()
	i := nlp.Parse("schedule a high-priority study session on november 25th 2025 at 10 in the morning for one hour.", r)

	require.True(t, i.CriticalFields.AllPresent())
	require.NotNil(t, i.DueDateTime)
	assert.Equal(t, time.Date(2025, time.November, 25, 10, 0, 0, 0, time.UTC), *i.DueDateTime)
	require.NotNil(t, i.DurationMinutes)
	assert.Equal(t, 60, *i.DurationMinutes)
	assert.Equal(t, nlp.TaskTypeStudies, i.TaskType)
	assert.Equal(t, nlp.PriorityHigh, i.Priority)
}

func TestParse_S2_NextWeekdaySuggestion(t *testing.T) {
	r := referenceClock()
	i := nlp.Parse("schedule a medium-priority meeting next Tuesday for one hour.", r)

	require.NotNil(t, i.WindowStart)
	assert.Equal(t, time.Date(2025, time.December, 2, 0, 0, 0, 0, time.UTC), *i.WindowStart)
	require.NotNil(t, i.DurationMinutes)
	assert.Equal(t, 60, *i.DurationMinutes)
	assert.True(t, i.ExplicitDateRequested)
	assert.Nil(t, i.DueDateTime)
}

func TestParse_S3_VagueWeekWithTime(t *testing.T) {
	r := referenceClock()
	i := nlp.Parse("schedule a study session sometime this week at 10 in the morning for one hour.", r)

	require.NotNil(t, i.WindowStart)
	require.NotNil(t, i.WindowEnd)
	assert.Equal(t, time.Date(2025, time.November, 27, 0, 0, 0, 0, time.UTC), *i.WindowStart)
	assert.Equal(t, time.Date(2025, time.November, 29, 23, 59, 59, 0, time.UTC), *i.WindowEnd)
	assert.False(t, i.ExplicitDateRequested)
	require.NotNil(t, i.PreferredTimeOfDay)
	assert.Equal(t, nlp.ClockTime{Hour: 10, Minute: 0}, *i.PreferredTimeOfDay)
	assert.False(t, i.CriticalFields.HasDate)
}

func TestParse_S4_ExplicitDateTimeNoDuration(t *testing.T) {
	r := referenceClock()
	i := nlp.Parse("schedule a meeting on December 3rd 2025 at 18:00", r)

	require.NotNil(t, i.DueDateTime)
	assert.Equal(t, time.Date(2025, time.December, 3, 18, 0, 0, 0, time.UTC), *i.DueDateTime)
	assert.True(t, i.ExplicitDateTimeGiven)
	assert.Nil(t, i.DurationMinutes)
}

func TestParse_S5_TimeOnly(t *testing.T) {
	r := referenceClock()
	i := nlp.Parse("schedule a task at 15:00", r)

	assert.Nil(t, i.DueDateTime)
	assert.Nil(t, i.WindowStart)
	require.NotNil(t, i.PreferredTimeOfDay)
	assert.Equal(t, nlp.ClockTime{Hour: 15, Minute: 0}, *i.PreferredTimeOfDay)
	assert.Nil(t, i.DurationMinutes)
}

func TestParse_S6_TimeRangeDuration(t *testing.T) {
	r := referenceClock()
	i := nlp.Parse("Meeting next week at 9:00 - 11:00", r)

	require.NotNil(t, i.PreferredTimeOfDay)
	assert.Equal(t, nlp.ClockTime{Hour: 9, Minute: 0}, *i.PreferredTimeOfDay)
	require.NotNil(t, i.DurationMinutes)
	assert.Equal(t, 120, *i.DurationMinutes)
	require.NotNil(t, i.WindowStart)
	require.NotNil(t, i.WindowEnd)
	assert.Equal(t, time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC), *i.WindowStart)
	assert.Equal(t, time.December, i.WindowEnd.Month())
}

func TestParse_AllPresentInvariant(t *testing.T) {
	r := referenceClock()
	texts := []string{
		"schedule a high-priority study session on november 25th 2025 at 10 in the morning for one hour.",
		"schedule a meeting on December 3rd 2025 at 18:00",
		"schedule a task at 15:00",
		"schedule a medium-priority meeting next Tuesday for one hour.",
	}
	for _, text := range texts {
		i := nlp.Parse(text, r)
		want := i.DueDateTime != nil && i.DurationMinutes != nil
		assert.Equal(t, want, i.CriticalFields.AllPresent(), "text=%q", text)
	}
}

func TestParse_NoDriftForExactDateTime(t *testing.T) {
	r1 := referenceClock()
	r2 := r1.Add(12 * time.Hour)
	text := "schedule a meeting on December 3rd 2025 at 18:00"

	i1 := nlp.Parse(text, r1)
	i2 := nlp.Parse(text, r2)
	require.NotNil(t, i1.DueDateTime)
	require.NotNil(t, i2.DueDateTime)
	assert.Equal(t, *i1.DueDateTime, *i2.DueDateTime)
}

func TestParse_TimePriorityOrdering(t *testing.T) {
	r := referenceClock()
	i := nlp.Parse("december 5, 2025 at 13:00", r)
	require.NotNil(t, i.DueDateTime)
	assert.Equal(t, 13, i.DueDateTime.Hour())
}

func TestExtractRelativeDate_SundayWeekSemantics(t *testing.T) {
	r := referenceClock() // Thursday 2025-11-27
	d, ok := nlp.ExtractRelativeDate("next week monday", r)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), d)
}

func TestExtractAbsoluteDate_YearlessFutureResolution(t *testing.T) {
	r := referenceClock() // 2025-11-27
	d, ok := nlp.ExtractAbsoluteDate("march 3", r)
	require.True(t, ok)
	assert.Equal(t, 2026, d.Year())

	d2, ok := nlp.ExtractAbsoluteDate("december 25", r)
	require.True(t, ok)
	assert.Equal(t, 2025, d2.Year())
}

func TestExtractAbsoluteDate_StrictDayFirstNumeric(t *testing.T) {
	r := referenceClock()
	d, ok := nlp.ExtractAbsoluteDate("03/04/2026", r)
	require.True(t, ok)
	assert.Equal(t, time.April, d.Month())
	assert.Equal(t, 3, d.Day())
}

func TestExtractDuration_Phrasings(t *testing.T) {
	cases := map[string]int{
		"for 45 minutes":             45,
		"lasting about 2 hours":      120,
		"an hour and a half":         90,
		"one and a half hours":       90,
		"1.5 hours":                  90,
		"for three hours":            180,
		"lasting an hour":            60,
		"2 and a half hours":         150,
		"one hour and fifteen minutes": 75,
		"1 hour and 15 minutes":      75,
		"2 hours and 15 minutes":     135,
	}
	for text, want := range cases {
		got, ok := nlp.ExtractDuration(text)
		require.True(t, ok, "text=%q", text)
		assert.Equal(t, want, got, "text=%q", text)
	}
}

func TestExtractTimeRange_MidnightRollover(t *testing.T) {
	ct, dur, ok := nlp.ExtractTimeRange("23:00 to 01:00")
	require.True(t, ok)
	assert.Equal(t, nlp.ClockTime{Hour: 23, Minute: 0}, ct)
	assert.Equal(t, 120, dur)
}
