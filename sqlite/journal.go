package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/google/uuid"

	"github.com/benjamonnguyen/astrosched"
)

const (
	SelectAllJournal = "SELECT id, notification_id, kind, message, description, old_description, start_minute, end_minute, priority, notified_at, created_at FROM journal"
)

type journalEntity struct {
	ID             string
	NotificationID string
	Kind           int
	Message        string
	Description    string
	OldDescription sql.NullString
	StartMinute    int
	EndMinute      int
	Priority       int
	NotifiedAt     int64
	CreatedAt      int64
}

// journalRepo
type journalRepo struct {
	transactor transactor.Transactor
	dbGetter   txStdLib.DBGetter
	l          astrosched.Logger
}

var _ astrosched.JournalRepo = (*journalRepo)(nil)

func NewJournalRepo(tx transactor.Transactor, dbGetter txStdLib.DBGetter, logger astrosched.Logger) astrosched.JournalRepo {
	if logger == nil {
		logger = astrosched.NopLogger{}
	}
	return &journalRepo{
		transactor: tx,
		dbGetter:   dbGetter,
		l:          logger,
	}
}

// NewJournal wires a journal repo on top of an opened database.
func NewJournal(db *DB, logger astrosched.Logger) astrosched.JournalRepo {
	tx, dbGetter := txStdLib.NewTransactor(db.Conn(), txStdLib.NestedTransactionsSavepoints)
	return NewJournalRepo(tx, dbGetter, logger)
}

func (r *journalRepo) Append(ctx context.Context, rec astrosched.JournalRecord) (astrosched.ExistingJournalRecord, error) {
	if rec.NotificationID == uuid.Nil {
		return astrosched.ExistingJournalRecord{}, fmt.Errorf("provide required field 'NotificationID'")
	}
	if rec.Kind == 0 {
		return astrosched.ExistingJournalRecord{}, fmt.Errorf("provide required field 'Kind'")
	}

	existing := astrosched.ExistingJournalRecord{
		JournalRecord: rec,
		ID:            uuid.New(),
		CreatedAt:     time.Now(),
	}
	if existing.NotifiedAt.IsZero() {
		existing.NotifiedAt = existing.CreatedAt
	}
	e := mapToJournalEntity(existing)

	args := []any{
		e.ID,
		e.NotificationID,
		e.Kind,
		e.Message,
		e.Description,
		e.OldDescription,
		e.StartMinute,
		e.EndMinute,
		e.Priority,
		e.NotifiedAt,
		e.CreatedAt,
	}
	query := "INSERT INTO journal (id, notification_id, kind, message, description, old_description, start_minute, end_minute, priority, notified_at, created_at) VALUES " + generateParameters(len(args))
	r.l.Debug("appending journal record", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return astrosched.ExistingJournalRecord{}, err
	}

	return mapToExistingJournalRecord(e), nil
}

// AppendMany appends every record or none of them.
func (r *journalRepo) AppendMany(ctx context.Context, recs []astrosched.JournalRecord) ([]astrosched.ExistingJournalRecord, error) {
	var res []astrosched.ExistingJournalRecord
	err := r.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		res = make([]astrosched.ExistingJournalRecord, 0, len(recs))
		for i, rec := range recs {
			existing, err := r.Append(ctx, rec)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			res = append(res, existing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *journalRepo) GetRecord(ctx context.Context, id uuid.UUID) (astrosched.ExistingJournalRecord, error) {
	if id == uuid.Nil {
		return astrosched.ExistingJournalRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllJournal), id.String(),
	)
	return extractJournalRecord(row)
}

func (r *journalRepo) GetByKind(ctx context.Context, kind astrosched.NotificationKind) ([]astrosched.ExistingJournalRecord, error) {
	query := fmt.Sprintf("%s WHERE kind=? ORDER BY notified_at, created_at", SelectAllJournal)
	r.l.Debug("GetByKind", "query", query, "kind", kind)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, int(kind))
	if err != nil {
		return nil, err
	}
	return extractJournalRecords(rows)
}

func (r *journalRepo) GetSince(ctx context.Context, since time.Time) ([]astrosched.ExistingJournalRecord, error) {
	query := SelectAllJournal
	var args []any
	if !since.IsZero() {
		query += " WHERE notified_at >= ?"
		args = append(args, since.UnixMilli())
	}
	query += " ORDER BY notified_at, created_at"

	r.l.Debug("GetSince", "query", query, "args", args)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return extractJournalRecords(rows)
}

func extractJournalRecords(rows *sql.Rows) ([]astrosched.ExistingJournalRecord, error) {
	defer rows.Close() //nolint:errcheck

	var recs []astrosched.ExistingJournalRecord
	for rows.Next() {
		rec, err := extractJournalRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func extractJournalRecord(s scannable) (astrosched.ExistingJournalRecord, error) {
	var e journalEntity
	if err := s.Scan(&e.ID, &e.NotificationID, &e.Kind, &e.Message, &e.Description, &e.OldDescription, &e.StartMinute, &e.EndMinute, &e.Priority, &e.NotifiedAt, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return astrosched.ExistingJournalRecord{}, fmt.Errorf("failed to extract journal record: %w", ErrNotFound)
		}
		return astrosched.ExistingJournalRecord{}, err
	}

	return mapToExistingJournalRecord(e), nil
}

func mapToJournalEntity(rec astrosched.ExistingJournalRecord) journalEntity {
	e := journalEntity{
		ID:             rec.ID.String(),
		NotificationID: rec.NotificationID.String(),
		Kind:           int(rec.Kind),
		Message:        rec.Message,
		Description:    rec.Description,
		StartMinute:    int(rec.Start),
		EndMinute:      int(rec.End),
		Priority:       int(rec.Priority),
		NotifiedAt:     rec.NotifiedAt.UnixMilli(),
		CreatedAt:      rec.CreatedAt.UnixMilli(),
	}

	if rec.OldDescription != "" {
		e.OldDescription = sql.NullString{
			Valid:  true,
			String: rec.OldDescription,
		}
	}
	return e
}

func mapToExistingJournalRecord(e journalEntity) astrosched.ExistingJournalRecord {
	var oldDescription string
	if e.OldDescription.Valid {
		oldDescription = e.OldDescription.String
	}

	id, _ := uuid.Parse(e.ID)
	notificationID, _ := uuid.Parse(e.NotificationID)

	return astrosched.ExistingJournalRecord{
		ID:        id,
		CreatedAt: time.UnixMilli(e.CreatedAt).Local(),
		JournalRecord: astrosched.JournalRecord{
			NotificationID: notificationID,
			Kind:           astrosched.NotificationKind(e.Kind),
			Message:        e.Message,
			Description:    e.Description,
			OldDescription: oldDescription,
			Start:          astrosched.TimeOfDay(e.StartMinute),
			End:            astrosched.TimeOfDay(e.EndMinute),
			Priority:       astrosched.Priority(e.Priority),
			NotifiedAt:     time.UnixMilli(e.NotifiedAt).Local(),
		},
	}
}
