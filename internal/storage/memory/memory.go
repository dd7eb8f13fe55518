// Package memory provides an in-memory implementation of the storage
// interfaces. It is safe for concurrent use and is primarily intended for
// tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/domain/meeting"
	"github.com/agendalabs/meetingd/internal/domain/note"
	"github.com/agendalabs/meetingd/internal/domain/task"
	"github.com/agendalabs/meetingd/internal/storage"
)

// Store holds all records behind one lock. Attendee sets are stored as id
// slices and hydrated on read so returned meetings never alias internal
// state.
type Store struct {
	mu        sync.RWMutex
	nextID    map[string]int64
	accounts  map[int64]account.Account
	meetings  map[int64]meeting.Meeting
	attendees map[int64][]int64
	notes     map[int64]note.Note
	tasks     map[int64]task.Task
}

var _ storage.AccountStore = (*Store)(nil)
var _ storage.MeetingStore = (*Store)(nil)
var _ storage.NoteStore = (*Store)(nil)
var _ storage.TaskStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:    make(map[string]int64),
		accounts:  make(map[int64]account.Account),
		meetings:  make(map[int64]meeting.Meeting),
		attendees: make(map[int64][]int64),
		notes:     make(map[int64]note.Note),
		tasks:     make(map[int64]task.Task),
	}
}

// Stores returns the store wired into a storage.Stores bundle.
func (s *Store) Stores() storage.Stores {
	return storage.Stores{Accounts: s, Meetings: s, Notes: s, Tasks: s}
}

func (s *Store) nextIDLocked(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// AccountStore implementation -------------------------------------------------

func (s *Store) CreateAccount(_ context.Context, acct account.Account) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == acct.Email {
			return account.Account{}, storage.ErrDuplicateEmail
		}
	}

	acct.ID = s.nextIDLocked("accounts")
	s.accounts[acct.ID] = acct
	return acct, nil
}

func (s *Store) SetAccountOwner(_ context.Context, id, ownerID int64) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[id]
	if !ok {
		return account.Account{}, storage.ErrNotFound
	}
	acct.OwnerID = ownerID
	s.accounts[id] = acct
	return acct, nil
}

func (s *Store) GetAccount(_ context.Context, id int64) (account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[id]
	if !ok {
		return account.Account{}, storage.ErrNotFound
	}
	return acct, nil
}

func (s *Store) GetOwnedAccount(_ context.Context, ownerID, id int64) (account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[id]
	if !ok || acct.OwnerID != ownerID {
		return account.Account{}, storage.ErrNotFound
	}
	return acct, nil
}

func (s *Store) ListAccounts(_ context.Context, ownerID int64) ([]account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []account.Account
	for _, acct := range s.accounts {
		if acct.OwnerID == ownerID {
			result = append(result, acct)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) ListAccountsByIDs(_ context.Context, ownerID int64, ids []int64) ([]account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ownedAccountsLocked(ownerID, ids), nil
}

func (s *Store) ownedAccountsLocked(ownerID int64, ids []int64) []account.Account {
	seen := make(map[int64]bool, len(ids))
	var result []account.Account
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if acct, ok := s.accounts[id]; ok && acct.OwnerID == ownerID {
			result = append(result, acct)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// MeetingStore implementation -------------------------------------------------

func (s *Store) CreateMeeting(_ context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextIDLocked("meetings")
	m.CreatedAt = time.Now().UTC()

	ids := attendeeIDs(m.Attendees)
	s.attendees[m.ID] = ids
	stored := m
	stored.Attendees = nil
	s.meetings[m.ID] = stored

	m.Attendees = s.ownedAccountsLocked(m.OwnerID, ids)
	return m, nil
}

func (s *Store) UpdateMeeting(_ context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.meetings[m.ID]
	if !ok {
		return meeting.Meeting{}, storage.ErrNotFound
	}
	m.OwnerID = original.OwnerID
	m.CreatedAt = original.CreatedAt

	ids := attendeeIDs(m.Attendees)
	s.attendees[m.ID] = ids
	stored := m
	stored.Attendees = nil
	s.meetings[m.ID] = stored

	m.Attendees = s.ownedAccountsLocked(m.OwnerID, ids)
	return m, nil
}

func (s *Store) GetMeeting(_ context.Context, ownerID, id int64) (meeting.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meetings[id]
	if !ok || m.OwnerID != ownerID {
		return meeting.Meeting{}, storage.ErrNotFound
	}
	m.Attendees = s.ownedAccountsLocked(m.OwnerID, s.attendees[id])
	return m, nil
}

func (s *Store) ListMeetings(_ context.Context, ownerID int64) ([]meeting.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []meeting.Meeting
	for id, m := range s.meetings {
		if m.OwnerID != ownerID {
			continue
		}
		m.Attendees = s.ownedAccountsLocked(m.OwnerID, s.attendees[id])
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) DeleteMeeting(_ context.Context, ownerID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meetings[id]
	if !ok || m.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	delete(s.meetings, id)
	delete(s.attendees, id)
	for noteID, n := range s.notes {
		if n.MeetingID == id {
			delete(s.notes, noteID)
		}
	}
	// Tasks keep their due_meeting_id on purpose; readers tolerate the
	// dangling reference.
	return nil
}

// NoteStore implementation ----------------------------------------------------

func (s *Store) CreateNote(_ context.Context, n note.Note) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = s.nextIDLocked("notes")
	n.CreatedAt = time.Now().UTC()
	s.notes[n.ID] = n
	return n, nil
}

func (s *Store) GetNote(_ context.Context, ownerID, id int64) (note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok || n.OwnerID != ownerID {
		return note.Note{}, storage.ErrNotFound
	}
	return n, nil
}

func (s *Store) ListNotes(_ context.Context, ownerID int64, meetingID *int64) ([]note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []note.Note
	for _, n := range s.notes {
		if n.OwnerID != ownerID {
			continue
		}
		if meetingID != nil && n.MeetingID != *meetingID {
			continue
		}
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// TaskStore implementation ----------------------------------------------------

func (s *Store) CreateTask(_ context.Context, t task.Task) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextIDLocked("tasks")
	t.CreatedAt = time.Now().UTC()
	s.tasks[t.ID] = t
	return t, nil
}

func (s *Store) UpdateTask(_ context.Context, t task.Task) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.tasks[t.ID]
	if !ok {
		return task.Task{}, storage.ErrNotFound
	}
	t.OwnerID = original.OwnerID
	t.CreatedAt = original.CreatedAt
	s.tasks[t.ID] = t
	return t, nil
}

func (s *Store) GetTask(_ context.Context, ownerID, id int64) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return task.Task{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *Store) ListTasks(_ context.Context, ownerID int64, filter storage.TaskFilter) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []task.Task
	for _, t := range s.tasks {
		if t.OwnerID != ownerID {
			continue
		}
		if filter.MeetingID != nil && t.DueMeetingID != *filter.MeetingID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) DeleteTask(_ context.Context, ownerID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func attendeeIDs(accts []account.Account) []int64 {
	ids := make([]int64, 0, len(accts))
	for _, acct := range accts {
		ids = append(ids, acct.ID)
	}
	return ids
}
