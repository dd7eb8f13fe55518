package httpapi

import (
	"net/http"

	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/services/accounts"
)

func (h *handler) accountsService(m *mesh.Mesh) (*accounts.Service, error) {
	svc, err := m.Service(accounts.Kind)
	if err != nil {
		return nil, err
	}
	return svc.(*accounts.Service), nil
}

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}
	if err := h.decodeValid(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	svc, err := h.accountsService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	acct, err := svc.Create(r.Context(), payload.Name, payload.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, acct)
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	svc, err := h.accountsService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	accts, err := svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accts)
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	svc, err := h.accountsService(h.meshFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	acct, err := svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}
