package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chronosuggest/engine/internal/bayes/application"
)

func obsAt(year int, month time.Month, day, hour int, duration int, priority string) application.Observation {
	start := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	return application.Observation{
		UserID:          "user-1",
		TaskType:        "Studies",
		Priority:        priority,
		ScheduledStart:  start,
		ScheduledEnd:    start.Add(time.Duration(duration) * time.Minute),
		DurationMinutes: duration,
	}
}

func TestHistoricalStatistics_TimeOfDayDistribution_NilWhenEmpty(t *testing.T) {
	stats := application.NewHistoricalStatistics()
	assert.Nil(t, stats.TimeOfDayDistribution("Studies"))
}

func TestHistoricalStatistics_TimeOfDayDistribution_Buckets(t *testing.T) {
	stats := application.NewHistoricalStatistics()
	stats.AddObservation(obsAt(2025, time.November, 24, 7, 60, "HIGH"))  // MORNING
	stats.AddObservation(obsAt(2025, time.November, 25, 18, 60, "HIGH")) // EVENING

	dist := stats.TimeOfDayDistribution("Studies")
	assert.InDelta(t, 0.5, dist["MORNING"], 1e-9)
	assert.InDelta(t, 0.5, dist["EVENING"], 1e-9)

	total := 0.0
	for _, p := range dist {
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestHistoricalStatistics_DayTypeDistribution_Buckets(t *testing.T) {
	stats := application.NewHistoricalStatistics()
	// Monday = weekday 1 -> WEEKDAY; Saturday = weekday 6 -> WEEKEND.
	stats.AddObservation(obsAt(2025, time.November, 24, 9, 60, "HIGH")) // Monday
	stats.AddObservation(obsAt(2025, time.November, 29, 9, 60, "HIGH")) // Saturday

	dist := stats.DayTypeDistribution("Studies")
	assert.InDelta(t, 0.5, dist["WEEKDAY"], 1e-9)
	assert.InDelta(t, 0.5, dist["WEEKEND"], 1e-9)
}

func TestHistoricalStatistics_AverageDuration(t *testing.T) {
	stats := application.NewHistoricalStatistics()
	stats.AddObservation(obsAt(2025, time.November, 24, 9, 30, "HIGH"))
	stats.AddObservation(obsAt(2025, time.November, 25, 9, 90, "HIGH"))
	assert.InDelta(t, 60.0, stats.AverageDuration("Studies"), 1e-9)
}

func TestHistoricalStatistics_MostCommonPriority(t *testing.T) {
	stats := application.NewHistoricalStatistics()
	stats.AddObservation(obsAt(2025, time.November, 24, 9, 30, "HIGH"))
	stats.AddObservation(obsAt(2025, time.November, 25, 9, 30, "HIGH"))
	stats.AddObservation(obsAt(2025, time.November, 26, 9, 30, "LOW"))
	assert.Equal(t, "HIGH", stats.MostCommonPriority("Studies"))
}

func TestHistoricalStatistics_RemoveObservation_FloorsAtZero(t *testing.T) {
	stats := application.NewHistoricalStatistics()
	obs := obsAt(2025, time.November, 24, 9, 30, "HIGH")
	stats.RemoveObservation(obs)
	assert.Equal(t, 0, stats.TaskTypeCounts["Studies"])

	stats.AddObservation(obs)
	stats.RemoveObservation(obs)
	stats.RemoveObservation(obs)
	assert.Equal(t, 0, stats.TaskTypeCounts["Studies"])
	assert.Equal(t, 0.0, stats.AverageDuration("Studies"))
}

func TestUpdateNetworkFromStatistics_AttachesDistributions(t *testing.T) {
	stats := application.NewHistoricalStatistics()
	stats.AddObservation(obsAt(2025, time.November, 24, 7, 60, "HIGH"))

	net := buildTestNetwork()
	application.UpdateNetworkFromStatistics(net, stats, "Studies")

	timeNode := net.Node("PreferredTimeOfDay_Studies")
	_, ok := timeNode.Metadata("time_dist")
	assert.True(t, ok)
}
