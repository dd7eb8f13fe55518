// Package httpapi exposes the REST surface of the service. Every request
// gets its own mesh bound to the caller's account, and the handlers drive
// the domain services exclusively through it.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/metrics"
	"github.com/agendalabs/meetingd/internal/middleware"
	"github.com/agendalabs/meetingd/internal/services"
	"github.com/agendalabs/meetingd/internal/storage"
	"github.com/agendalabs/meetingd/pkg/logger"
)

// Options configures the HTTP handler.
type Options struct {
	// RateLimiter throttles requests when non-nil.
	RateLimiter *middleware.RateLimiter
	// AuditLogPath appends audit entries to a JSONL file when set.
	AuditLogPath string
	// AuditMax bounds the in-memory audit buffer; 0 selects the default.
	AuditMax int
}

// handler bundles the HTTP endpoints.
type handler struct {
	stores   storage.Stores
	log      *logger.Logger
	validate *validator.Validate
	audit    *auditLog
	resolver mesh.Resolver
}

// New returns the fully wired HTTP handler.
func New(stores storage.Stores, log *logger.Logger, opts Options) (http.Handler, error) {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	services.Register()

	sink, err := newFileAuditSink(opts.AuditLogPath)
	if err != nil {
		return nil, err
	}
	h := &handler{
		stores:   stores,
		log:      log,
		validate: validator.New(),
		audit:    newAuditLog(opts.AuditMax, sink),
		resolver: instrumentedResolver{inner: mesh.Composite{mesh.Local{}}},
	}

	r := mux.NewRouter()
	r.Use(middleware.Logging(log))
	r.Use(middleware.Metrics())
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Handler)
	}
	r.Use(mux.MiddlewareFunc(h.identity))
	r.Use(mux.MiddlewareFunc(h.auditTrail))

	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/users", h.createUser).Methods(http.MethodPost)
	r.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}", h.getUser).Methods(http.MethodGet)

	r.HandleFunc("/meetings", h.createMeeting).Methods(http.MethodPost)
	r.HandleFunc("/meetings", h.listMeetings).Methods(http.MethodGet)
	r.HandleFunc("/meetings/{id:[0-9]+}", h.getMeeting).Methods(http.MethodGet)
	r.HandleFunc("/meetings/{id:[0-9]+}", h.updateMeeting).Methods(http.MethodPut)
	r.HandleFunc("/meetings/{id:[0-9]+}", h.deleteMeeting).Methods(http.MethodDelete)

	r.HandleFunc("/notes", h.createNote).Methods(http.MethodPost)
	r.HandleFunc("/notes", h.listNotes).Methods(http.MethodGet)
	r.HandleFunc("/notes/{id:[0-9]+}", h.getNote).Methods(http.MethodGet)

	r.HandleFunc("/tasks", h.createTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks", h.listTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id:[0-9]+}", h.getTask).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id:[0-9]+}", h.updateTask).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{id:[0-9]+}", h.deleteTask).Methods(http.MethodDelete)

	r.HandleFunc("/tools", h.listTools).Methods(http.MethodGet)
	r.HandleFunc("/tools/{name}", h.invokeTool).Methods(http.MethodPost)

	r.HandleFunc("/audit", h.listAudit).Methods(http.MethodGet)

	return r, nil
}

// meshFor builds the request-scoped service locator.
func (h *handler) meshFor(r *http.Request) *mesh.Mesh {
	return mesh.New(accountFromContext(r.Context()), h.stores, h.log, h.resolver)
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "meetingd",
		"status":  "ok",
	})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	writeJSON(w, http.StatusOK, h.audit.listLimit(limit))
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, errors.Validation(err)
	}
	return id, nil
}

func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.Validation(err)
	}
	return &id, nil
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (h *handler) decodeValid(r *http.Request, dst interface{}) error {
	if err := decodeJSON(r.Body, dst); err != nil {
		return errors.Validation(err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return errors.Validation(err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errors.StatusOf(err))
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
