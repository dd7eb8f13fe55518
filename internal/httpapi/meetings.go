package httpapi

import (
	"net/http"
	"time"

	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/services/meetings"
)

func (h *handler) meetingsService(m *mesh.Mesh) (*meetings.Service, error) {
	svc, err := m.Service(meetings.Kind)
	if err != nil {
		return nil, err
	}
	return svc.(*meetings.Service), nil
}

func (h *handler) createMeeting(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title         string    `json:"title" validate:"required"`
		Description   string    `json:"description"`
		ScheduledTime time.Time `json:"scheduled_time" validate:"required"`
		AttendeeIDs   []int64   `json:"attendee_ids"`
	}
	if err := h.decodeValid(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	svc, err := h.meetingsService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := svc.Create(r.Context(), payload.Title, payload.Description, payload.ScheduledTime, payload.AttendeeIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *handler) listMeetings(w http.ResponseWriter, r *http.Request) {
	svc, err := h.meetingsService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) getMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	svc, err := h.meetingsService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	detail, err := svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *handler) updateMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload meetings.UpdateParams
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, errors.Validation(err))
		return
	}

	svc, err := h.meetingsService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := svc.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *handler) deleteMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	svc, err := h.meetingsService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
