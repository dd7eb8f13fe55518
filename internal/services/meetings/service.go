// Package meetings manages meetings and their attendee lists, and assembles
// the detail view that joins a meeting with its notes and open tasks.
package meetings

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/domain/meeting"
	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/services/accounts"
	"github.com/agendalabs/meetingd/internal/services/notes"
	"github.com/agendalabs/meetingd/internal/services/tasks"
	"github.com/agendalabs/meetingd/internal/storage"
	"github.com/agendalabs/meetingd/pkg/logger"
)

// Kind resolves the meeting service through the mesh.
const Kind = mesh.Kind("meetings")

// UpdateParams carries a partial meeting update. Nil fields are left
// unchanged; a non-nil AttendeeIDs replaces the attendee list wholesale,
// including replacement with an empty list.
type UpdateParams struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	ScheduledTime *time.Time `json:"scheduled_time"`
	AttendeeIDs   *[]int64   `json:"attendee_ids"`
}

// Service is the meeting domain service, bound to one request's mesh.
type Service struct {
	mesh  *mesh.Mesh
	store storage.MeetingStore
	log   *logger.Logger
}

// New constructs the service from a mesh.
func New(m *mesh.Mesh) *Service {
	return &Service{
		mesh:  m,
		store: m.Stores().Meetings,
		log:   m.Log().WithField("service", "meetings"),
	}
}

func (s *Service) accounts() (*accounts.Service, error) {
	svc, err := s.mesh.Service(accounts.Kind)
	if err != nil {
		return nil, err
	}
	return svc.(*accounts.Service), nil
}

func (s *Service) notes() (*notes.Service, error) {
	svc, err := s.mesh.Service(notes.Kind)
	if err != nil {
		return nil, err
	}
	return svc.(*notes.Service), nil
}

func (s *Service) tasks() (*tasks.Service, error) {
	svc, err := s.mesh.Service(tasks.Kind)
	if err != nil {
		return nil, err
	}
	return svc.(*tasks.Service), nil
}

// lookupAttendees maps attendee ids to owned accounts. The lookup silently
// drops unknown and non-owned ids, so a count mismatch against the distinct
// ids means at least one reference is invalid.
func (s *Service) lookupAttendees(ctx context.Context, ids []int64) ([]account.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	acctSvc, err := s.accounts()
	if err != nil {
		return nil, err
	}
	attendees, err := acctSvc.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	distinct := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	if len(attendees) != len(distinct) {
		return nil, errors.InvalidReference("one or more attendees do not exist")
	}
	return attendees, nil
}

// Create creates a meeting with the given attendees. Every attendee id must
// resolve to an account owned by the caller.
func (s *Service) Create(ctx context.Context, title, description string, scheduledTime time.Time, attendeeIDs []int64) (meeting.Meeting, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return meeting.Meeting{}, err
	}
	attendees, err := s.lookupAttendees(ctx, attendeeIDs)
	if err != nil {
		return meeting.Meeting{}, err
	}
	m, err := s.store.CreateMeeting(ctx, meeting.Meeting{
		Title:         title,
		Description:   description,
		ScheduledTime: scheduledTime,
		Attendees:     attendees,
		OwnerID:       current.ID,
	})
	if err != nil {
		return meeting.Meeting{}, err
	}
	s.log.WithField("meeting_id", m.ID).
		WithField("attendees", len(attendees)).
		Info("meeting created")
	return m, nil
}

// List returns the caller's meetings, ordered by identifier.
func (s *Service) List(ctx context.Context) ([]meeting.Meeting, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return nil, err
	}
	return s.store.ListMeetings(ctx, current.ID)
}

// Get returns the detail view of one owned meeting: the meeting itself plus
// its notes and the tasks due at it, fetched through their own services.
func (s *Service) Get(ctx context.Context, id int64) (meeting.Detail, error) {
	m, err := s.GetModel(ctx, id)
	if err != nil {
		return meeting.Detail{}, err
	}
	noteSvc, err := s.notes()
	if err != nil {
		return meeting.Detail{}, err
	}
	meetingNotes, err := noteSvc.List(ctx, &id)
	if err != nil {
		return meeting.Detail{}, err
	}
	taskSvc, err := s.tasks()
	if err != nil {
		return meeting.Detail{}, err
	}
	meetingTasks, err := taskSvc.List(ctx, &id, nil)
	if err != nil {
		return meeting.Detail{}, err
	}
	return meeting.Detail{Meeting: m, Notes: meetingNotes, Tasks: meetingTasks}, nil
}

// GetModel returns the bare meeting record for the caller. It backs both the
// detail view and the reference checks done by the note and task services.
func (s *Service) GetModel(ctx context.Context, id int64) (meeting.Meeting, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return meeting.Meeting{}, err
	}
	m, err := s.store.GetMeeting(ctx, current.ID, id)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return meeting.Meeting{}, errors.NotFound("meeting")
		}
		return meeting.Meeting{}, err
	}
	return m, nil
}

// Update applies a partial update. A non-nil attendee list goes through the
// same resolution as Create before replacing the stored list.
func (s *Service) Update(ctx context.Context, id int64, p UpdateParams) (meeting.Meeting, error) {
	m, err := s.GetModel(ctx, id)
	if err != nil {
		return meeting.Meeting{}, err
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.ScheduledTime != nil {
		m.ScheduledTime = *p.ScheduledTime
	}
	if p.AttendeeIDs != nil {
		attendees, err := s.lookupAttendees(ctx, *p.AttendeeIDs)
		if err != nil {
			return meeting.Meeting{}, err
		}
		m.Attendees = attendees
	}
	m, err = s.store.UpdateMeeting(ctx, m)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return meeting.Meeting{}, errors.NotFound("meeting")
		}
		return meeting.Meeting{}, err
	}
	s.log.WithField("meeting_id", m.ID).Info("meeting updated")
	return m, nil
}

// Delete removes one owned meeting. Its notes go with it; tasks due at it
// are left in place.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return err
	}
	if err := s.store.DeleteMeeting(ctx, current.ID, id); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return errors.NotFound("meeting")
		}
		return err
	}
	s.log.WithField("meeting_id", id).Info("meeting deleted")
	return nil
}
