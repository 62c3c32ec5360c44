package application

import (
	"time"

	"github.com/google/uuid"

	shareddomain "github.com/chronosuggest/engine/internal/shared/domain"
)

// aggregateIDFor derives a deterministic UUID from a user ID string so
// BaseEvent's uuid.UUID-typed AggregateID stays stable across events for
// the same user, without requiring callers to mint UUIDs themselves.
func aggregateIDFor(userID string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(userID))
}

// TaskScheduled records a successful direct creation or explicit suggestion
// pick. No code path in this repository constructs or publishes it; it is
// audit-only: nothing in this system
// consumes it to drive training (spec.md's "no network-side training"
// non-goal).
type TaskScheduled struct {
	shareddomain.BaseEvent
	UserID   string    `json:"user_id"`
	TaskType string    `json:"task_type"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// NewTaskScheduled constructs a TaskScheduled event.
func NewTaskScheduled(userID, taskType string, start, end time.Time) TaskScheduled {
	return TaskScheduled{
		BaseEvent: shareddomain.NewBaseEvent(aggregateIDFor(userID), "Task", "scheduling.task.scheduled"),
		UserID:    userID,
		TaskType:  taskType,
		Start:     start,
		End:       end,
	}
}

// TaskConflictDetected records a proposed interval that C8 rejected, whether
// from direct creation or a chosen suggestion. The dispatcher does not
// construct or publish it.
type TaskConflictDetected struct {
	shareddomain.BaseEvent
	UserID         string    `json:"user_id"`
	ProposedStart  time.Time `json:"proposed_start"`
	ProposedEnd    time.Time `json:"proposed_end"`
	ConflictCount  int       `json:"conflict_count"`
}

// NewTaskConflictDetected constructs a TaskConflictDetected event.
func NewTaskConflictDetected(userID string, start, end time.Time, conflictCount int) TaskConflictDetected {
	return TaskConflictDetected{
		BaseEvent:     shareddomain.NewBaseEvent(aggregateIDFor(userID), "Task", "scheduling.task.conflict_detected"),
		UserID:        userID,
		ProposedStart: start,
		ProposedEnd:   end,
		ConflictCount: conflictCount,
	}
}
