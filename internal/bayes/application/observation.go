package application

import "time"

// Observation is a single recorded task scheduling outcome: the evidence
// C3 learns from and C4 persists alongside the network.
type Observation struct {
	UserID          string    `json:"user_id"`
	TaskType        string    `json:"task_type"`
	Priority        string    `json:"priority"`
	ScheduledStart  time.Time `json:"scheduled_start"`
	ScheduledEnd    time.Time `json:"scheduled_end"`
	DurationMinutes int       `json:"duration_minutes"`
}
