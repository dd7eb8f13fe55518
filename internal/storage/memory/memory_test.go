package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/domain/meeting"
	"github.com/agendalabs/meetingd/internal/domain/note"
	"github.com/agendalabs/meetingd/internal/domain/task"
	"github.com/agendalabs/meetingd/internal/storage"
)

func seedOwner(t *testing.T, s *Store) account.Account {
	t.Helper()
	acct, err := s.CreateAccount(context.Background(), account.Account{Name: "Owner", Email: "owner@example.com"})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	acct, err = s.SetAccountOwner(context.Background(), acct.ID, acct.ID)
	if err != nil {
		t.Fatalf("set owner: %v", err)
	}
	return acct
}

func TestDuplicateEmailRejected(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateAccount(ctx, account.Account{Name: "A", Email: "a@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := s.CreateAccount(ctx, account.Account{Name: "B", Email: "a@example.com"})
	if !errors.Is(err, storage.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestListAccountsByIDsReturnsOwnedSubset(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := seedOwner(t, s)

	a, _ := s.CreateAccount(ctx, account.Account{Name: "A", Email: "a@example.com", OwnerID: owner.ID})
	b, _ := s.CreateAccount(ctx, account.Account{Name: "B", Email: "b@example.com", OwnerID: owner.ID})
	foreign, _ := s.CreateAccount(ctx, account.Account{Name: "F", Email: "f@example.com", OwnerID: 999})

	got, err := s.ListAccountsByIDs(ctx, owner.ID, []int64{b.ID, a.ID, foreign.ID, 12345, a.ID})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 owned accounts, got %v", got)
	}
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Fatalf("expected ordering by id, got %v", got)
	}
}

func TestDeleteMeetingCascadesNotesOnly(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := seedOwner(t, s)

	m, err := s.CreateMeeting(ctx, meeting.Meeting{Title: "M", ScheduledTime: time.Now(), OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	other, _ := s.CreateMeeting(ctx, meeting.Meeting{Title: "Other", ScheduledTime: time.Now(), OwnerID: owner.ID})

	if _, err := s.CreateNote(ctx, note.Note{Content: "doomed", MeetingID: m.ID, OwnerID: owner.ID}); err != nil {
		t.Fatalf("create note: %v", err)
	}
	kept, _ := s.CreateNote(ctx, note.Note{Content: "kept", MeetingID: other.ID, OwnerID: owner.ID})
	tk, err := s.CreateTask(ctx, task.Task{Title: "T", Status: task.StatusPending, DueMeetingID: m.ID, OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := s.DeleteMeeting(ctx, owner.ID, m.ID); err != nil {
		t.Fatalf("delete meeting: %v", err)
	}

	notes, err := s.ListNotes(ctx, owner.ID, nil)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != kept.ID {
		t.Fatalf("expected only the note on the other meeting, got %v", notes)
	}

	got, err := s.GetTask(ctx, owner.ID, tk.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.DueMeetingID != m.ID {
		t.Fatalf("expected task to keep dangling meeting id %d, got %d", m.ID, got.DueMeetingID)
	}
}

func TestUpdateMeetingReplacesAttendees(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := seedOwner(t, s)

	a, _ := s.CreateAccount(ctx, account.Account{Name: "A", Email: "a@example.com", OwnerID: owner.ID})
	b, _ := s.CreateAccount(ctx, account.Account{Name: "B", Email: "b@example.com", OwnerID: owner.ID})

	m, err := s.CreateMeeting(ctx, meeting.Meeting{
		Title:         "M",
		ScheduledTime: time.Now(),
		Attendees:     []account.Account{a},
		OwnerID:       owner.ID,
	})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	m.Attendees = []account.Account{b}
	if _, err := s.UpdateMeeting(ctx, m); err != nil {
		t.Fatalf("update meeting: %v", err)
	}

	got, err := s.GetMeeting(ctx, owner.ID, m.ID)
	if err != nil {
		t.Fatalf("get meeting: %v", err)
	}
	if len(got.Attendees) != 1 || got.Attendees[0].ID != b.ID {
		t.Fatalf("expected attendees replaced with b, got %v", got.Attendees)
	}
}

func TestTaskFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := seedOwner(t, s)

	m1, _ := s.CreateMeeting(ctx, meeting.Meeting{Title: "M1", ScheduledTime: time.Now(), OwnerID: owner.ID})
	m2, _ := s.CreateMeeting(ctx, meeting.Meeting{Title: "M2", ScheduledTime: time.Now(), OwnerID: owner.ID})

	t1, _ := s.CreateTask(ctx, task.Task{Title: "T1", Status: task.StatusPending, DueMeetingID: m1.ID, OwnerID: owner.ID})
	t2, _ := s.CreateTask(ctx, task.Task{Title: "T2", Status: task.StatusCompleted, DueMeetingID: m2.ID, OwnerID: owner.ID})

	byMeeting, err := s.ListTasks(ctx, owner.ID, storage.TaskFilter{MeetingID: &m1.ID})
	if err != nil {
		t.Fatalf("list by meeting: %v", err)
	}
	if len(byMeeting) != 1 || byMeeting[0].ID != t1.ID {
		t.Fatalf("expected t1, got %v", byMeeting)
	}

	done := task.StatusCompleted
	byStatus, err := s.ListTasks(ctx, owner.ID, storage.TaskFilter{Status: &done})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != t2.ID {
		t.Fatalf("expected t2, got %v", byStatus)
	}

	if _, err := s.GetTask(ctx, 999, t1.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
}
