package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/domain/meeting"
	"github.com/agendalabs/meetingd/internal/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestCreateAccountAssignsID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("Maria", "maria@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	acct, err := store.CreateAccount(context.Background(), account.Account{Name: "Maria", Email: "maria@example.com"})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if acct.ID != 7 {
		t.Fatalf("expected id 7, got %d", acct.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := store.CreateAccount(context.Background(), account.Account{Name: "Maria", Email: "maria@example.com"})
	if !errors.Is(err, storage.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGetMeetingTranslatesNoRows(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, title, description, scheduled_time").
		WithArgs(int64(5), int64(1)).
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetMeeting(context.Background(), 1, 5)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateMeetingInsertsAttendeesInOneTransaction(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO meetings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectExec("INSERT INTO meeting_attendees").
		WithArgs(int64(3), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO meeting_attendees").
		WithArgs(int64(3), int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m, err := store.CreateMeeting(context.Background(), meeting.Meeting{
		Title:         "Planning",
		ScheduledTime: time.Now(),
		Attendees:     []account.Account{{ID: 11}, {ID: 12}},
		OwnerID:       1,
	})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	if m.ID != 3 {
		t.Fatalf("expected id 3, got %d", m.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteMeetingReportsMissingRows(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM meetings").
		WithArgs(int64(9), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.DeleteMeeting(context.Background(), 1, 9); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNotesPassesOptionalFilter(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery("SELECT id, content, created_at, meeting_id, owner_id").
		WithArgs(int64(1), int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "created_at", "meeting_id", "owner_id"}).
			AddRow(int64(2), "agenda", now, int64(4), int64(1)))

	meetingID := int64(4)
	notes, err := store.ListNotes(context.Background(), 1, &meetingID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "agenda" {
		t.Fatalf("unexpected notes: %v", notes)
	}
}
