package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/metrics"
)

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *handler) listTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.meshFor(r).Tools()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]toolInfo, 0, len(tools))
	for _, t := range tools {
		out = append(out, toolInfo{Name: t.Name, Description: t.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) invokeTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, errors.Validation(err))
		return
	}
	defer r.Body.Close()
	args := json.RawMessage(body)
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}

	tool, ok, err := h.meshFor(r).FindTool(name)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, errors.NotFound("tool"))
		return
	}

	start := time.Now()
	result, err := tool.Invoke(r.Context(), args)
	metrics.RecordToolInvocation(name, time.Since(start), err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}
