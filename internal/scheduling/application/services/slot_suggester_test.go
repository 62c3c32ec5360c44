package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronosuggest/engine/internal/nlp"
	schedulingdomain "github.com/chronosuggest/engine/internal/scheduling/domain"
	"github.com/chronosuggest/engine/internal/scheduling/application/services"
)

type fakeBusySource struct {
	intervals []schedulingdomain.BusyInterval
	err       error
}

func (f fakeBusySource) BusyIntervals(ctx context.Context, userID string) ([]schedulingdomain.BusyInterval, error) {
	return f.intervals, f.err
}

func constantScore(score float64) services.PredictFunc {
	return func(taskType string, start, end time.Time) float64 { return score }
}

var referenceNow = time.Date(2025, time.November, 27, 10, 0, 0, 0, time.UTC) // Thursday

func clockPtr(h, m int) *nlp.ClockTime { return &nlp.ClockTime{Hour: h, Minute: m} }

func TestSlotSuggester_DurationOnly_ProducesFutureSlots(t *testing.T) {
	s := services.NewSlotSuggester(fakeBusySource{}, constantScore(7), clockPtr(9, 0), clockPtr(17, 0), nil)
	req := schedulingdomain.SuggestionRequest{
		UserID:          "user-1",
		DurationMinutes: 60,
		TaskType:        nlp.TaskTypeStudies,
		Page:            1,
		PageSize:        5,
		HorizonDays:     3,
	}
	slots, err := s.Suggest(context.Background(), req, referenceNow)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)
	for _, slot := range slots {
		assert.True(t, slot.ScheduledStart.After(referenceNow))
		assert.Equal(t, 60*time.Minute, slot.ScheduledEnd.Sub(slot.ScheduledStart))
	}
}

func TestSlotSuggester_RespectsBusyIntervals(t *testing.T) {
	busyStart := referenceNow.Add(40 * time.Minute)
	busy := fakeBusySource{intervals: []schedulingdomain.BusyInterval{
		{UserID: "user-1", Start: busyStart, End: busyStart.Add(time.Hour)},
	}}
	s := services.NewSlotSuggester(busy, constantScore(5), clockPtr(0, 0), clockPtr(23, 59), nil)
	req := schedulingdomain.SuggestionRequest{
		UserID:          "user-1",
		DurationMinutes: 30,
		TaskType:        nlp.TaskTypeMeeting,
		Page:            1,
		PageSize:        20,
		HorizonDays:     1,
	}
	slots, err := s.Suggest(context.Background(), req, referenceNow)
	require.NoError(t, err)
	for _, slot := range slots {
		overlap := slot.ScheduledStart.Before(busyStart.Add(time.Hour)) && busyStart.Before(slot.ScheduledEnd)
		assert.False(t, overlap, "slot %v overlaps busy interval", slot.ScheduledStart)
	}
}

func TestSlotSuggester_PreferredTimeOfDay_LocksHourMinute(t *testing.T) {
	s := services.NewSlotSuggester(fakeBusySource{}, constantScore(5), nil, nil, nil)
	pref := clockPtr(14, 30)
	req := schedulingdomain.SuggestionRequest{
		UserID:             "user-1",
		DurationMinutes:    45,
		TaskType:           nlp.TaskTypeTraining,
		Page:               1,
		PageSize:           10,
		HorizonDays:        5,
		PreferredTimeOfDay: pref,
		FixedTimeSearch:    true,
	}
	slots, err := s.Suggest(context.Background(), req, referenceNow)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for _, slot := range slots {
		assert.Equal(t, 14, slot.ScheduledStart.Hour())
		assert.Equal(t, 30, slot.ScheduledStart.Minute())
	}
}

func TestSlotSuggester_DateLockedWindow_NeverCrossesDay(t *testing.T) {
	windowStart := time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2025, time.December, 5, 23, 59, 0, 0, time.UTC)
	s := services.NewSlotSuggester(fakeBusySource{}, constantScore(5), nil, nil, nil)
	req := schedulingdomain.SuggestionRequest{
		UserID:          "user-1",
		DurationMinutes: 30,
		TaskType:        nlp.TaskTypeMeeting,
		Page:            1,
		PageSize:        50,
		HorizonDays:     1,
		WindowStart:     &windowStart,
		WindowEnd:       &windowEnd,
	}
	slots, err := s.Suggest(context.Background(), req, referenceNow)
	require.NoError(t, err)
	for _, slot := range slots {
		assert.Equal(t, 5, slot.ScheduledStart.Day())
	}
}

func TestSlotSuggester_RestDaySkippedUnlessExplicitDateRequested(t *testing.T) {
	sunday := time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC) // a Sunday
	s := services.NewSlotSuggester(fakeBusySource{}, constantScore(5), nil, nil, map[int]bool{0: true})
	req := schedulingdomain.SuggestionRequest{
		UserID:          "user-1",
		DurationMinutes: 30,
		TaskType:        nlp.TaskTypeMeeting,
		Page:            1,
		PageSize:        20,
		HorizonDays:     1,
		WindowStart:     &sunday,
		WindowEnd:       ptrTime(sunday.Add(23*time.Hour + 59*time.Minute)),
	}
	slots, err := s.Suggest(context.Background(), req, referenceNow)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func ptrTime(t time.Time) *time.Time { return &t }
