package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/benjamonnguyen/astrosched"
)

func openTestJournal(t *testing.T) astrosched.JournalRepo {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}
	// second run finds nothing to do
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate error: %v", err)
	}
	return NewJournal(db, nil)
}

func record(kind astrosched.NotificationKind, desc string, at time.Time) astrosched.JournalRecord {
	task := astrosched.NewTask(desc, astrosched.Clock(9, 0), astrosched.Clock(9, 30), astrosched.PriorityHigh)
	n := astrosched.NewNotification(kind, task, "msg "+desc)
	n.At = at
	return astrosched.JournalRecordFromNotification(n)
}

func TestJournalAppendAndGet(t *testing.T) {
	t.Parallel()
	repo := openTestJournal(t)
	ctx := context.Background()

	rec := record(astrosched.KindEdited, "Late lunch", time.Now())
	rec.OldDescription = "Lunch"
	inserted, err := repo.Append(ctx, rec)
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if inserted.ID == uuid.Nil {
		t.Fatal("expected an id to be assigned")
	}

	got, err := repo.GetRecord(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("GetRecord error: %v", err)
	}
	if got.NotificationID != rec.NotificationID {
		t.Errorf("NotificationID = %s, want %s", got.NotificationID, rec.NotificationID)
	}
	if got.Kind != astrosched.KindEdited || got.Description != "Late lunch" || got.OldDescription != "Lunch" {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.Start != astrosched.Clock(9, 0) || got.End != astrosched.Clock(9, 30) || got.Priority != astrosched.PriorityHigh {
		t.Errorf("unexpected task fields: %+v", got)
	}
	if got.NotifiedAt.UnixMilli() != rec.NotifiedAt.UnixMilli() {
		t.Errorf("NotifiedAt = %v, want %v", got.NotifiedAt, rec.NotifiedAt)
	}
}

func TestJournalGetRecordNotFound(t *testing.T) {
	t.Parallel()
	repo := openTestJournal(t)

	_, err := repo.GetRecord(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJournalAppendValidation(t *testing.T) {
	t.Parallel()
	repo := openTestJournal(t)

	if _, err := repo.Append(context.Background(), astrosched.JournalRecord{Kind: astrosched.KindAdded}); err == nil {
		t.Fatal("expected error for missing notification id")
	}
	if _, err := repo.Append(context.Background(), astrosched.JournalRecord{NotificationID: uuid.New()}); err == nil {
		t.Fatal("expected error for missing kind")
	}
}

func TestJournalQueries(t *testing.T) {
	t.Parallel()
	repo := openTestJournal(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	recs := []astrosched.JournalRecord{
		record(astrosched.KindAdded, "Morning Check", base),
		record(astrosched.KindConflict, "Spacewalk", base.Add(time.Minute)),
		record(astrosched.KindAdded, "Lunch", base.Add(2*time.Minute)),
		record(astrosched.KindRemoved, "Morning Check", base.Add(3*time.Minute)),
	}
	inserted, err := repo.AppendMany(ctx, recs)
	if err != nil {
		t.Fatalf("AppendMany error: %v", err)
	}
	if len(inserted) != len(recs) {
		t.Fatalf("inserted %d records, want %d", len(inserted), len(recs))
	}

	added, err := repo.GetByKind(ctx, astrosched.KindAdded)
	if err != nil {
		t.Fatalf("GetByKind error: %v", err)
	}
	if len(added) != 2 || added[0].Description != "Morning Check" || added[1].Description != "Lunch" {
		t.Fatalf("unexpected added records: %+v", added)
	}

	since, err := repo.GetSince(ctx, base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("GetSince error: %v", err)
	}
	if len(since) != 2 || since[0].Kind != astrosched.KindAdded || since[1].Kind != astrosched.KindRemoved {
		t.Fatalf("unexpected records since: %+v", since)
	}

	all, err := repo.GetSince(ctx, time.Time{})
	if err != nil {
		t.Fatalf("GetSince(zero) error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 records, got %d", len(all))
	}
}

func TestJournalAppendManyIsAtomic(t *testing.T) {
	t.Parallel()
	repo := openTestJournal(t)
	ctx := context.Background()

	recs := []astrosched.JournalRecord{
		record(astrosched.KindAdded, "Lunch", time.Now()),
		{}, // invalid: rolls back the whole batch
	}
	if _, err := repo.AppendMany(ctx, recs); err == nil {
		t.Fatal("expected AppendMany to fail")
	}

	all, err := repo.GetSince(ctx, time.Time{})
	if err != nil {
		t.Fatalf("GetSince error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected rollback, found %d records", len(all))
	}
}

func TestGenerateParameters(t *testing.T) {
	t.Parallel()
	tests := map[int]string{0: "", 1: "(?)", 3: "(?,?,?)"}
	for n, want := range tests {
		if got := generateParameters(n); got != want {
			t.Errorf("generateParameters(%d) = %q, want %q", n, got, want)
		}
	}
}
