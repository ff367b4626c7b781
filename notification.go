package astrosched

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind int

const (
	_ NotificationKind = iota
	KindAdded
	KindRemoved
	KindEdited
	KindCompleted
	KindConflict
)

var kindNames = map[NotificationKind]string{
	KindAdded:     "added",
	KindRemoved:   "removed",
	KindEdited:    "edited",
	KindCompleted: "completed",
	KindConflict:  "conflict",
}

func (k NotificationKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Notification describes the outcome of a mutating schedule operation.
type Notification struct {
	ID      uuid.UUID
	Kind    NotificationKind
	Message string
	// Task is the task the operation acted on: the added, removed, completed
	// or rejected task, or the replacement for an edit.
	Task Task
	// OldDescription is only set for KindEdited.
	OldDescription string
	At             time.Time
}

func NewNotification(kind NotificationKind, task Task, message string) Notification {
	return Notification{
		ID:      uuid.New(),
		Kind:    kind,
		Message: message,
		Task:    task,
		At:      time.Now(),
	}
}
