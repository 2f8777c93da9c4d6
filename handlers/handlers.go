// Package handlers provides the HTTP request handlers for TaskManagerService.
//
// It contains the handlers for registration, login and the per-user task CRUD
// operations. Handlers depend on the storage, cache and event interfaces and
// are wired to concrete implementations in main. Every handler records
// per-endpoint call and error counters for Prometheus and logs its decision
// path with logrus structured fields.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"TaskManagerService/auth"
	"TaskManagerService/cache"
	"TaskManagerService/events"
	"TaskManagerService/response"
	"TaskManagerService/storage"
	"TaskManagerService/validation"
)

var (
	endpointCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskservice_endpoint_calls_total",
			Help: "Total number of calls per endpoint.",
		},
		[]string{"endpoint"},
	)

	endpointErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskservice_endpoint_errors_total",
			Help: "Total number of failed calls per endpoint.",
		},
		[]string{"endpoint"},
	)
)

// Handler bundles the collaborators the HTTP handlers need.
type Handler struct {
	Users    storage.UserStore
	Tasks    storage.TaskStore
	Cache    cache.TaskCache
	Events   *events.Producer
	Tokens   *auth.TokenManager
	Log      *logrus.Logger
	validate *validator.Validate
}

func New(users storage.UserStore, tasks storage.TaskStore, taskCache cache.TaskCache,
	producer *events.Producer, tokens *auth.TokenManager, log *logrus.Logger) *Handler {
	return &Handler{
		Users:    users,
		Tasks:    tasks,
		Cache:    taskCache,
		Events:   producer,
		Tokens:   tokens,
		Log:      log,
		validate: validation.New(),
	}
}

// Health reports liveness. No auth, no envelope data.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Message: "Server is running"})
}

// fail counts an endpoint error, logs it and writes the failure envelope.
func (h *Handler) fail(w http.ResponseWriter, endpoint, operation string, code int, message string) {
	endpointErrors.WithLabelValues(endpoint).Inc()
	h.Log.WithFields(logrus.Fields{
		"operation": operation,
		"endpoint":  endpoint,
	}).Error(message)
	response.Error(w, code, message)
}

// parseDueDate accepts RFC 3339 timestamps and plain dates.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
