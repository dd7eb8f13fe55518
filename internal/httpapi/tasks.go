package httpapi

import (
	"net/http"

	"github.com/agendalabs/meetingd/internal/domain/task"
	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/services/tasks"
)

func (h *handler) tasksService(m *mesh.Mesh) (*tasks.Service, error) {
	svc, err := m.Service(tasks.Kind)
	if err != nil {
		return nil, err
	}
	return svc.(*tasks.Service), nil
}

func (h *handler) createTask(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title        string      `json:"title" validate:"required"`
		Description  string      `json:"description"`
		Status       task.Status `json:"status"`
		DueMeetingID int64       `json:"due_meeting_id" validate:"required"`
	}
	if err := h.decodeValid(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	svc, err := h.tasksService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := svc.Create(r.Context(), payload.Title, payload.Description, payload.Status, payload.DueMeetingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *handler) listTasks(w http.ResponseWriter, r *http.Request) {
	meetingID, err := queryInt64(r, "meeting_id")
	if err != nil {
		writeError(w, err)
		return
	}
	var status *task.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := task.Status(raw)
		status = &s
	}

	svc, err := h.tasksService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := svc.List(r.Context(), meetingID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	svc, err := h.tasksService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload tasks.UpdateParams
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, errors.Validation(err))
		return
	}

	svc, err := h.tasksService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := svc.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	svc, err := h.tasksService(h.meshFor(r))
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
