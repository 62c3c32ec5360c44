package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronosuggest/engine/internal/bayes/application"
)

func clock(h, m int) *application.ClockTime {
	return &application.ClockTime{Hour: h, Minute: m}
}

func TestUserBN_PredictSlotScore_NeutralWhenUntrained(t *testing.T) {
	ub := application.NewUserBN("user-1", nil)
	score := ub.PredictSlotScore("Meeting", time.Now(), time.Now().Add(time.Hour))
	assert.Equal(t, 5.0, score)
}

func TestUserBN_InitializeFromPreferences_MarksTrained(t *testing.T) {
	ub := application.NewUserBN("user-1", nil)
	require.NoError(t, ub.InitializeFromPreferences(application.UserPreferences{
		WorkdayPrefStart:       clock(9, 0),
		WorkdayPrefEnd:         clock(17, 0),
		DefaultDurationMinutes: 60,
		Flexibility:            "MEDIUM",
		DeadlineBehavior:       "ON_TIME",
	}))
	assert.True(t, ub.IsTrained())
	assert.Equal(t, "STANDARD", ub.Evidence["WorkdayWindow"])
}

func TestUserBN_PredictSlotScore_InRangeWhenTrained(t *testing.T) {
	ub := application.NewUserBN("user-1", nil)
	require.NoError(t, ub.InitializeFromPreferences(application.UserPreferences{
		WorkdayPrefStart:       clock(9, 0),
		WorkdayPrefEnd:         clock(17, 0),
		FocusPeakStart:         clock(9, 0),
		DaysOff:                map[int]bool{0: true, 6: true},
		DefaultDurationMinutes: 60,
		Flexibility:            "MEDIUM",
		DeadlineBehavior:       "ON_TIME",
	}))
	start := time.Date(2025, time.November, 27, 10, 0, 0, 0, time.UTC)
	score := ub.PredictSlotScore("Meeting", start, start.Add(time.Hour))
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 10.0)
}

func TestUserBN_UpdateFromTask_NoopWhenUntrained(t *testing.T) {
	ub := application.NewUserBN("user-1", nil)
	err := ub.UpdateFromTask(application.Observation{UserID: "user-1", TaskType: "Meeting"})
	require.NoError(t, err)
	assert.Empty(t, ub.Observations)
}

func TestUserBN_UpdateFromTask_AppendsAndPersists(t *testing.T) {
	saved := 0
	repo := fakeRepo{onSave: func(*application.UserBN) error { saved++; return nil }}
	ub := application.NewUserBN("user-1", repo)
	require.NoError(t, ub.InitializeFromPreferences(application.UserPreferences{DefaultDurationMinutes: 60}))

	obs := application.Observation{
		UserID:          "user-1",
		TaskType:        "Meeting",
		Priority:        "HIGH",
		ScheduledStart:  time.Date(2025, time.November, 27, 10, 0, 0, 0, time.UTC),
		ScheduledEnd:    time.Date(2025, time.November, 27, 11, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	}
	require.NoError(t, ub.UpdateFromTask(obs))
	assert.Len(t, ub.Observations, 1)
	assert.Equal(t, 2, saved) // one for Initialize, one for UpdateFromTask
}

func TestUserBN_RemoveTask_FiltersAndRebuilds(t *testing.T) {
	ub := application.NewUserBN("user-1", nil)
	require.NoError(t, ub.InitializeFromPreferences(application.UserPreferences{DefaultDurationMinutes: 60}))

	obs := application.Observation{
		UserID:          "user-1",
		TaskType:        "Meeting",
		Priority:        "HIGH",
		ScheduledStart:  time.Date(2025, time.November, 27, 10, 0, 0, 0, time.UTC),
		ScheduledEnd:    time.Date(2025, time.November, 27, 11, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	}
	require.NoError(t, ub.UpdateFromTask(obs))
	require.Len(t, ub.Observations, 1)

	require.NoError(t, ub.RemoveTask(obs))
	assert.Empty(t, ub.Observations)
	assert.Equal(t, 0, ub.Stats.TaskTypeCounts["Meeting"])
}

type fakeRepo struct {
	onSave func(*application.UserBN) error
}

func (f fakeRepo) Save(ub *application.UserBN) error { return f.onSave(ub) }
