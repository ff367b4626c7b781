package astrosched

import (
	"errors"
	"fmt"
)

var (
	ErrScheduleConflict = errors.New("schedule conflict")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskCompleted    = errors.New("task is completed and cannot be edited")

	// ErrInvalidTask is wrapped by every input validation failure.
	ErrInvalidTask      = errors.New("invalid task")
	ErrInvalidTime      = errors.New("invalid time")
	ErrInvalidInterval  = errors.New("start time must be before end time")
	ErrEmptyDescription = errors.New("description is empty")
	ErrUnknownPriority  = errors.New("unknown priority")
)

// ConflictError is returned when a task overlaps one already on the schedule.
type ConflictError struct {
	Task     Task
	Existing Task
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("task %q (%s-%s) conflicts with existing task %q (%s-%s)",
		e.Task.Description, e.Task.Start, e.Task.End,
		e.Existing.Description, e.Existing.Start, e.Existing.End,
	)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrScheduleConflict
}

// NotFound returns an error matching ErrTaskNotFound for description.
func NotFound(description string) error {
	return fmt.Errorf("%w: %s", ErrTaskNotFound, description)
}
