// Package notes manages meeting notes. A note always belongs to an owned
// meeting and is removed together with it.
package notes

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/agendalabs/meetingd/internal/domain/meeting"
	"github.com/agendalabs/meetingd/internal/domain/note"
	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/storage"
	"github.com/agendalabs/meetingd/pkg/logger"
)

// Kind resolves the note service through the mesh.
const Kind = mesh.Kind("notes")

const meetingKind = mesh.Kind("meetings")

// meetingGetter is the slice of the meeting service this package needs to
// validate references without importing it.
type meetingGetter interface {
	GetModel(ctx context.Context, id int64) (meeting.Meeting, error)
}

// Service is the note domain service, bound to one request's mesh.
type Service struct {
	mesh  *mesh.Mesh
	store storage.NoteStore
	log   *logger.Logger
}

// New constructs the service from a mesh.
func New(m *mesh.Mesh) *Service {
	return &Service{
		mesh:  m,
		store: m.Stores().Notes,
		log:   m.Log().WithField("service", "notes"),
	}
}

func (s *Service) meetings() (meetingGetter, error) {
	svc, err := s.mesh.Service(meetingKind)
	if err != nil {
		return nil, err
	}
	return svc.(meetingGetter), nil
}

// Create attaches a new note to an owned meeting. A meeting id that does not
// resolve for the caller is an invalid reference.
func (s *Service) Create(ctx context.Context, content string, meetingID int64) (note.Note, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return note.Note{}, err
	}
	meetings, err := s.meetings()
	if err != nil {
		return note.Note{}, err
	}
	if _, err := meetings.GetModel(ctx, meetingID); err != nil {
		if errors.KindOf(err) == errors.KindNotFound {
			return note.Note{}, errors.InvalidReference(fmt.Sprintf("meeting %d does not exist", meetingID))
		}
		return note.Note{}, err
	}
	n, err := s.store.CreateNote(ctx, note.Note{
		Content:   content,
		MeetingID: meetingID,
		OwnerID:   current.ID,
	})
	if err != nil {
		return note.Note{}, err
	}
	s.log.WithField("note_id", n.ID).
		WithField("meeting_id", meetingID).
		Info("note created")
	return n, nil
}

// List returns the caller's notes, optionally restricted to one meeting. The
// meeting filter is resolved first so a bad id reports not found rather than
// an empty list.
func (s *Service) List(ctx context.Context, meetingID *int64) ([]note.Note, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return nil, err
	}
	if meetingID != nil {
		meetings, err := s.meetings()
		if err != nil {
			return nil, err
		}
		if _, err := meetings.GetModel(ctx, *meetingID); err != nil {
			return nil, err
		}
	}
	return s.store.ListNotes(ctx, current.ID, meetingID)
}

// Get returns one owned note.
func (s *Service) Get(ctx context.Context, id int64) (note.Note, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return note.Note{}, err
	}
	n, err := s.store.GetNote(ctx, current.ID, id)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return note.Note{}, errors.NotFound("note")
		}
		return note.Note{}, err
	}
	return n, nil
}
