package httpapi

import (
	"net/http"

	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/services/notes"
)

func (h *handler) notesService(m *mesh.Mesh) (*notes.Service, error) {
	svc, err := m.Service(notes.Kind)
	if err != nil {
		return nil, err
	}
	return svc.(*notes.Service), nil
}

func (h *handler) createNote(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content   string `json:"content" validate:"required"`
		MeetingID int64  `json:"meeting_id" validate:"required"`
	}
	if err := h.decodeValid(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	svc, err := h.notesService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := svc.Create(r.Context(), payload.Content, payload.MeetingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *handler) listNotes(w http.ResponseWriter, r *http.Request) {
	meetingID, err := queryInt64(r, "meeting_id")
	if err != nil {
		writeError(w, err)
		return
	}
	svc, err := h.notesService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := svc.List(r.Context(), meetingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) getNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	svc, err := h.notesService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}
