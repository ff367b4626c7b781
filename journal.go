package astrosched

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JournalRepo stores notifications as an append-only log. It is never used to
// restore a schedule.
type JournalRepo interface {
	Append(context.Context, JournalRecord) (ExistingJournalRecord, error)
	AppendMany(context.Context, []JournalRecord) ([]ExistingJournalRecord, error)
	GetRecord(context.Context, uuid.UUID) (ExistingJournalRecord, error)
	GetByKind(context.Context, NotificationKind) ([]ExistingJournalRecord, error)
	GetSince(context.Context, time.Time) ([]ExistingJournalRecord, error)
}

type JournalRecord struct {
	NotificationID uuid.UUID
	Kind           NotificationKind
	Message        string
	Description    string
	OldDescription string
	Start          TimeOfDay
	End            TimeOfDay
	Priority       Priority
	NotifiedAt     time.Time
}

type ExistingJournalRecord struct {
	JournalRecord
	ID        uuid.UUID
	CreatedAt time.Time
}

func JournalRecordFromNotification(n Notification) JournalRecord {
	return JournalRecord{
		NotificationID: n.ID,
		Kind:           n.Kind,
		Message:        n.Message,
		Description:    n.Task.Description,
		OldDescription: n.OldDescription,
		Start:          n.Task.Start,
		End:            n.Task.End,
		Priority:       n.Task.Priority,
		NotifiedAt:     n.At,
	}
}
