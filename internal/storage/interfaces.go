// Package storage defines the persistence interfaces the domain services
// depend on. Implementations live in the memory and postgres subpackages;
// each mutating call commits immediately, so a returned error always means
// nothing was applied.
package storage

import (
	"context"
	"errors"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/domain/meeting"
	"github.com/agendalabs/meetingd/internal/domain/note"
	"github.com/agendalabs/meetingd/internal/domain/task"
)

// ErrNotFound is returned when a record does not exist or falls outside the
// requested ownership scope.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when an account email collides with an
// existing one.
var ErrDuplicateEmail = errors.New("email already registered")

// AccountStore persists account records.
type AccountStore interface {
	CreateAccount(ctx context.Context, acct account.Account) (account.Account, error)
	// SetAccountOwner rewrites the owner reference; used once per anonymous
	// creation to establish self-ownership.
	SetAccountOwner(ctx context.Context, id, ownerID int64) (account.Account, error)
	// GetAccount is unscoped; it backs the identity resolver only.
	GetAccount(ctx context.Context, id int64) (account.Account, error)
	GetOwnedAccount(ctx context.Context, ownerID, id int64) (account.Account, error)
	ListAccounts(ctx context.Context, ownerID int64) ([]account.Account, error)
	// ListAccountsByIDs returns the subset of ids owned by ownerID, ordered
	// by identifier. Unknown and non-owned ids are silently dropped.
	ListAccountsByIDs(ctx context.Context, ownerID int64, ids []int64) ([]account.Account, error)
}

// MeetingStore persists meetings and their attendee sets. Create and Update
// synchronize the attendee join rows from Meeting.Attendees; reads return
// meetings with attendees hydrated.
type MeetingStore interface {
	CreateMeeting(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error)
	UpdateMeeting(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error)
	GetMeeting(ctx context.Context, ownerID, id int64) (meeting.Meeting, error)
	ListMeetings(ctx context.Context, ownerID int64) ([]meeting.Meeting, error)
	// DeleteMeeting removes the meeting, its attendee rows, and its notes.
	// Tasks referencing the meeting are left in place.
	DeleteMeeting(ctx context.Context, ownerID, id int64) error
}

// NoteStore persists meeting notes.
type NoteStore interface {
	CreateNote(ctx context.Context, n note.Note) (note.Note, error)
	GetNote(ctx context.Context, ownerID, id int64) (note.Note, error)
	ListNotes(ctx context.Context, ownerID int64, meetingID *int64) ([]note.Note, error)
}

// TaskFilter narrows task listings. Nil fields match everything.
type TaskFilter struct {
	MeetingID *int64
	Status    *task.Status
}

// TaskStore persists tasks.
type TaskStore interface {
	CreateTask(ctx context.Context, t task.Task) (task.Task, error)
	UpdateTask(ctx context.Context, t task.Task) (task.Task, error)
	GetTask(ctx context.Context, ownerID, id int64) (task.Task, error)
	ListTasks(ctx context.Context, ownerID int64, filter TaskFilter) ([]task.Task, error)
	DeleteTask(ctx context.Context, ownerID, id int64) error
}

// Stores bundles the persistence dependencies handed to the mesh.
type Stores struct {
	Accounts AccountStore
	Meetings MeetingStore
	Notes    NoteStore
	Tasks    TaskStore
}
