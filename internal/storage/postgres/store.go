// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/domain/meeting"
	"github.com/agendalabs/meetingd/internal/domain/note"
	"github.com/agendalabs/meetingd/internal/domain/task"
	"github.com/agendalabs/meetingd/internal/storage"
)

// Store implements the storage interfaces over a database handle.
type Store struct {
	db *sql.DB
}

var _ storage.AccountStore = (*Store)(nil)
var _ storage.MeetingStore = (*Store)(nil)
var _ storage.NoteStore = (*Store)(nil)
var _ storage.TaskStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Stores returns the store wired into a storage.Stores bundle.
func (s *Store) Stores() storage.Stores {
	return storage.Stores{Accounts: s, Meetings: s, Notes: s, Tasks: s}
}

// --- AccountStore -----------------------------------------------------------

func (s *Store) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (name, email, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, acct.Name, acct.Email, nullableID(acct.OwnerID)).Scan(&acct.ID)
	if err != nil {
		return account.Account{}, translateErr(err)
	}
	return acct, nil
}

func (s *Store) SetAccountOwner(ctx context.Context, id, ownerID int64) (account.Account, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET owner_id = $2 WHERE id = $1
	`, id, nullableID(ownerID))
	if err != nil {
		return account.Account{}, translateErr(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return account.Account{}, storage.ErrNotFound
	}
	return s.GetAccount(ctx, id)
}

func (s *Store) GetAccount(ctx context.Context, id int64) (account.Account, error) {
	return s.scanAccount(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, owner_id FROM accounts WHERE id = $1
	`, id))
}

func (s *Store) GetOwnedAccount(ctx context.Context, ownerID, id int64) (account.Account, error) {
	return s.scanAccount(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, owner_id FROM accounts WHERE id = $1 AND owner_id = $2
	`, id, ownerID))
}

func (s *Store) ListAccounts(ctx context.Context, ownerID int64) ([]account.Account, error) {
	return s.queryAccounts(ctx, `
		SELECT id, name, email, owner_id FROM accounts WHERE owner_id = $1 ORDER BY id
	`, ownerID)
}

func (s *Store) ListAccountsByIDs(ctx context.Context, ownerID int64, ids []int64) ([]account.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.queryAccounts(ctx, `
		SELECT id, name, email, owner_id FROM accounts
		WHERE owner_id = $1 AND id = ANY($2)
		ORDER BY id
	`, ownerID, pq.Array(ids))
}

func (s *Store) scanAccount(row *sql.Row) (account.Account, error) {
	var (
		acct  account.Account
		owner sql.NullInt64
	)
	if err := row.Scan(&acct.ID, &acct.Name, &acct.Email, &owner); err != nil {
		return account.Account{}, translateErr(err)
	}
	acct.OwnerID = owner.Int64
	return acct, nil
}

func (s *Store) queryAccounts(ctx context.Context, query string, args ...any) ([]account.Account, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []account.Account
	for rows.Next() {
		var (
			acct  account.Account
			owner sql.NullInt64
		)
		if err := rows.Scan(&acct.ID, &acct.Name, &acct.Email, &owner); err != nil {
			return nil, err
		}
		acct.OwnerID = owner.Int64
		result = append(result, acct)
	}
	return result, rows.Err()
}

// --- MeetingStore -----------------------------------------------------------

func (s *Store) CreateMeeting(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	m.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return meeting.Meeting{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO meetings (title, description, scheduled_time, created_at, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, m.Title, m.Description, m.ScheduledTime, m.CreatedAt, m.OwnerID).Scan(&m.ID)
	if err != nil {
		return meeting.Meeting{}, translateErr(err)
	}

	if err := insertAttendees(ctx, tx, m.ID, m.Attendees); err != nil {
		return meeting.Meeting{}, err
	}
	if err := tx.Commit(); err != nil {
		return meeting.Meeting{}, err
	}
	return m, nil
}

func (s *Store) UpdateMeeting(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return meeting.Meeting{}, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE meetings SET title = $2, description = $3, scheduled_time = $4
		WHERE id = $1
	`, m.ID, m.Title, m.Description, m.ScheduledTime)
	if err != nil {
		return meeting.Meeting{}, translateErr(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return meeting.Meeting{}, storage.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM meeting_attendees WHERE meeting_id = $1
	`, m.ID); err != nil {
		return meeting.Meeting{}, err
	}
	if err := insertAttendees(ctx, tx, m.ID, m.Attendees); err != nil {
		return meeting.Meeting{}, err
	}
	if err := tx.Commit(); err != nil {
		return meeting.Meeting{}, err
	}
	return m, nil
}

func (s *Store) GetMeeting(ctx context.Context, ownerID, id int64) (meeting.Meeting, error) {
	var m meeting.Meeting
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, scheduled_time, created_at, owner_id
		FROM meetings WHERE id = $1 AND owner_id = $2
	`, id, ownerID).Scan(&m.ID, &m.Title, &m.Description, &m.ScheduledTime, &m.CreatedAt, &m.OwnerID)
	if err != nil {
		return meeting.Meeting{}, translateErr(err)
	}

	m.Attendees, err = s.meetingAttendees(ctx, m.ID)
	if err != nil {
		return meeting.Meeting{}, err
	}
	return m, nil
}

func (s *Store) ListMeetings(ctx context.Context, ownerID int64) ([]meeting.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, scheduled_time, created_at, owner_id
		FROM meetings WHERE owner_id = $1 ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []meeting.Meeting
	for rows.Next() {
		var m meeting.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.ScheduledTime, &m.CreatedAt, &m.OwnerID); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		result[i].Attendees, err = s.meetingAttendees(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *Store) DeleteMeeting(ctx context.Context, ownerID, id int64) error {
	// Attendee rows and notes go with the meeting via ON DELETE CASCADE.
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM meetings WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) meetingAttendees(ctx context.Context, meetingID int64) ([]account.Account, error) {
	return s.queryAccounts(ctx, `
		SELECT a.id, a.name, a.email, a.owner_id
		FROM accounts a
		JOIN meeting_attendees ma ON ma.account_id = a.id
		WHERE ma.meeting_id = $1
		ORDER BY a.id
	`, meetingID)
}

func insertAttendees(ctx context.Context, tx *sql.Tx, meetingID int64, attendees []account.Account) error {
	for _, acct := range attendees {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO meeting_attendees (meeting_id, account_id) VALUES ($1, $2)
		`, meetingID, acct.ID); err != nil {
			return err
		}
	}
	return nil
}

// --- NoteStore --------------------------------------------------------------

func (s *Store) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	n.CreatedAt = time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO notes (content, created_at, meeting_id, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, n.Content, n.CreatedAt, n.MeetingID, n.OwnerID).Scan(&n.ID)
	if err != nil {
		return note.Note{}, translateErr(err)
	}
	return n, nil
}

func (s *Store) GetNote(ctx context.Context, ownerID, id int64) (note.Note, error) {
	var n note.Note
	err := s.db.QueryRowContext(ctx, `
		SELECT id, content, created_at, meeting_id, owner_id
		FROM notes WHERE id = $1 AND owner_id = $2
	`, id, ownerID).Scan(&n.ID, &n.Content, &n.CreatedAt, &n.MeetingID, &n.OwnerID)
	if err != nil {
		return note.Note{}, translateErr(err)
	}
	return n, nil
}

func (s *Store) ListNotes(ctx context.Context, ownerID int64, meetingID *int64) ([]note.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, created_at, meeting_id, owner_id
		FROM notes
		WHERE owner_id = $1 AND ($2::bigint IS NULL OR meeting_id = $2)
		ORDER BY id
	`, ownerID, nullableIDPtr(meetingID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []note.Note
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.CreatedAt, &n.MeetingID, &n.OwnerID); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// --- TaskStore --------------------------------------------------------------

func (s *Store) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	t.CreatedAt = time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (title, description, status, created_at, due_meeting_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, t.Title, t.Description, t.Status, t.CreatedAt, t.DueMeetingID, t.OwnerID).Scan(&t.ID)
	if err != nil {
		return task.Task{}, translateErr(err)
	}
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, t task.Task) (task.Task, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET title = $2, description = $3, status = $4, due_meeting_id = $5
		WHERE id = $1
	`, t.ID, t.Title, t.Description, t.Status, t.DueMeetingID)
	if err != nil {
		return task.Task{}, translateErr(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return task.Task{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *Store) GetTask(ctx context.Context, ownerID, id int64) (task.Task, error) {
	var t task.Task
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, created_at, due_meeting_id, owner_id
		FROM tasks WHERE id = $1 AND owner_id = $2
	`, id, ownerID).Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.DueMeetingID, &t.OwnerID)
	if err != nil {
		return task.Task{}, translateErr(err)
	}
	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, ownerID int64, filter storage.TaskFilter) ([]task.Task, error) {
	var status *string
	if filter.Status != nil {
		v := string(*filter.Status)
		status = &v
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, status, created_at, due_meeting_id, owner_id
		FROM tasks
		WHERE owner_id = $1
		  AND ($2::bigint IS NULL OR due_meeting_id = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY id
	`, ownerID, nullableIDPtr(filter.MeetingID), status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []task.Task
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.DueMeetingID, &t.OwnerID); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (s *Store) DeleteTask(ctx context.Context, ownerID, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- helpers ----------------------------------------------------------------

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func nullableIDPtr(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func translateErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return storage.ErrDuplicateEmail
	}
	return err
}
