// Package tasks manages follow-up tasks. A task is created against an owned
// meeting, but unlike notes it outlives that meeting: deleting the meeting
// leaves the task behind with a dangling reference.
package tasks

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/agendalabs/meetingd/internal/domain/meeting"
	"github.com/agendalabs/meetingd/internal/domain/task"
	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/storage"
	"github.com/agendalabs/meetingd/pkg/logger"
)

// Kind resolves the task service through the mesh.
const Kind = mesh.Kind("tasks")

const meetingKind = mesh.Kind("meetings")

// meetingGetter is the slice of the meeting service this package needs to
// validate references without importing it.
type meetingGetter interface {
	GetModel(ctx context.Context, id int64) (meeting.Meeting, error)
}

// UpdateParams carries a partial task update. Nil fields are left unchanged.
type UpdateParams struct {
	Title        *string      `json:"title"`
	Description  *string      `json:"description"`
	Status       *task.Status `json:"status"`
	DueMeetingID *int64       `json:"due_meeting_id"`
}

// Service is the task domain service, bound to one request's mesh.
type Service struct {
	mesh  *mesh.Mesh
	store storage.TaskStore
	log   *logger.Logger
}

// New constructs the service from a mesh.
func New(m *mesh.Mesh) *Service {
	return &Service{
		mesh:  m,
		store: m.Stores().Tasks,
		log:   m.Log().WithField("service", "tasks"),
	}
}

func (s *Service) meetings() (meetingGetter, error) {
	svc, err := s.mesh.Service(meetingKind)
	if err != nil {
		return nil, err
	}
	return svc.(meetingGetter), nil
}

func (s *Service) checkMeeting(ctx context.Context, meetingID int64) error {
	meetings, err := s.meetings()
	if err != nil {
		return err
	}
	if _, err := meetings.GetModel(ctx, meetingID); err != nil {
		if errors.KindOf(err) == errors.KindNotFound {
			return errors.InvalidReference(fmt.Sprintf("meeting %d does not exist", meetingID))
		}
		return err
	}
	return nil
}

// Create creates a task due at an owned meeting. An empty status defaults to
// pending; a meeting id that does not resolve for the caller is an invalid
// reference.
func (s *Service) Create(ctx context.Context, title, description string, status task.Status, dueMeetingID int64) (task.Task, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return task.Task{}, err
	}
	if status == "" {
		status = task.StatusPending
	}
	if !status.Valid() {
		return task.Task{}, errors.Validation(fmt.Errorf("unknown task status %q", status))
	}
	if err := s.checkMeeting(ctx, dueMeetingID); err != nil {
		return task.Task{}, err
	}
	t, err := s.store.CreateTask(ctx, task.Task{
		Title:        title,
		Description:  description,
		Status:       status,
		DueMeetingID: dueMeetingID,
		OwnerID:      current.ID,
	})
	if err != nil {
		return task.Task{}, err
	}
	s.log.WithField("task_id", t.ID).
		WithField("due_meeting_id", dueMeetingID).
		Info("task created")
	return t, nil
}

// List returns the caller's tasks, optionally filtered by due meeting and
// status.
func (s *Service) List(ctx context.Context, meetingID *int64, status *task.Status) ([]task.Task, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return nil, err
	}
	if status != nil && !status.Valid() {
		return nil, errors.Validation(fmt.Errorf("unknown task status %q", *status))
	}
	return s.store.ListTasks(ctx, current.ID, storage.TaskFilter{
		MeetingID: meetingID,
		Status:    status,
	})
}

// Get returns one owned task.
func (s *Service) Get(ctx context.Context, id int64) (task.Task, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return task.Task{}, err
	}
	t, err := s.store.GetTask(ctx, current.ID, id)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return task.Task{}, errors.NotFound("task")
		}
		return task.Task{}, err
	}
	return t, nil
}

// Update applies a partial update. Reassigning the due meeting re-validates
// the reference the same way Create does.
func (s *Service) Update(ctx context.Context, id int64, p UpdateParams) (task.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return task.Task{}, errors.Validation(fmt.Errorf("unknown task status %q", *p.Status))
		}
		t.Status = *p.Status
	}
	if p.DueMeetingID != nil && *p.DueMeetingID != t.DueMeetingID {
		if err := s.checkMeeting(ctx, *p.DueMeetingID); err != nil {
			return task.Task{}, err
		}
		t.DueMeetingID = *p.DueMeetingID
	}
	t, err = s.store.UpdateTask(ctx, t)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return task.Task{}, errors.NotFound("task")
		}
		return task.Task{}, err
	}
	s.log.WithField("task_id", t.ID).Info("task updated")
	return t, nil
}

// Delete removes one owned task.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return err
	}
	if err := s.store.DeleteTask(ctx, current.ID, id); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return errors.NotFound("task")
		}
		return err
	}
	s.log.WithField("task_id", id).Info("task deleted")
	return nil
}
