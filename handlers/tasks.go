package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"TaskManagerService/auth"
	"TaskManagerService/commands"
	"TaskManagerService/events"
	"TaskManagerService/models"
	"TaskManagerService/response"
	"TaskManagerService/storage"
)

// ListTasks handles GET /api/tasks. It returns every task owned by the
// caller, newest-created-first, serving from the per-user cache when warm.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/tasks"
	endpointCalls.WithLabelValues(endpoint).Inc()
	userID := auth.UserID(r.Context())

	if tasks, err := h.Cache.GetTaskList(r.Context(), userID); err == nil && tasks != nil {
		response.List(w, tasks, len(tasks))
		return
	}

	tasks, err := h.Tasks.ListTasks(r.Context(), userID)
	if err != nil {
		h.fail(w, endpoint, "listing tasks", http.StatusInternalServerError, err.Error())
		return
	}
	_ = h.Cache.SetTaskList(r.Context(), userID, tasks)

	response.List(w, tasks, len(tasks))
}

// loadOwnedTask fetches a task and enforces the ownership contract: 404 when
// the record is absent, 403 when it belongs to another user. The two cases
// are distinguishable on the wire.
func (h *Handler) loadOwnedTask(w http.ResponseWriter, r *http.Request, endpoint, operation string) *models.Task {
	task, err := h.Tasks.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.fail(w, endpoint, operation, http.StatusNotFound, "Task not found")
			return nil
		}
		h.fail(w, endpoint, operation, http.StatusInternalServerError, err.Error())
		return nil
	}
	if task.UserID != auth.UserID(r.Context()) {
		h.fail(w, endpoint, operation, http.StatusForbidden, "Not authorized to access this task")
		return nil
	}
	return task
}

// GetTask handles GET /api/tasks/{id}.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/tasks/{id}"
	endpointCalls.WithLabelValues(endpoint).Inc()

	task := h.loadOwnedTask(w, r, endpoint, "get task by id")
	if task == nil {
		return
	}
	response.OK(w, http.StatusOK, task)
}

// CreateTask handles POST /api/tasks. The owner is forced to the caller
// regardless of anything in the request body, and status defaults to pending.
//
// Example request body:
//
//	{
//	  "title": "Buy milk",
//	  "description": "2 liters",
//	  "dueDate": "2026-09-01"
//	}
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/tasks"
	endpointCalls.WithLabelValues(endpoint).Inc()
	userID := auth.UserID(r.Context())

	var cmd commands.CreateTaskCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.fail(w, endpoint, "creating task", http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		h.fail(w, endpoint, "creating task", http.StatusBadRequest, "Please provide a title")
		return
	}
	dueDate, err := parseDueDate(cmd.DueDate)
	if err != nil {
		h.fail(w, endpoint, "creating task", http.StatusBadRequest, "Invalid due date")
		return
	}

	task := &models.Task{
		Title:       cmd.Title,
		Description: cmd.Description,
		Status:      cmd.Status,
		DueDate:     dueDate,
		UserID:      userID,
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if err := h.Tasks.CreateTask(r.Context(), task); err != nil {
		h.fail(w, endpoint, "creating task", http.StatusInternalServerError, err.Error())
		return
	}
	_ = h.Cache.DeleteTaskList(r.Context(), userID)
	h.Events.Emit(r.Context(), events.TaskCreated, task.ID, userID)

	h.Log.WithFields(logrus.Fields{
		"operation": "creating task",
		"taskID":    task.ID,
		"userID":    userID,
	}).Info("task created")
	response.OK(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/{id}. Only the fields present in the body
// are merged onto the stored record; owner and id are never updatable.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/tasks/{id}"
	endpointCalls.WithLabelValues(endpoint).Inc()

	task := h.loadOwnedTask(w, r, endpoint, "updating task")
	if task == nil {
		return
	}

	var cmd commands.UpdateTaskCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.fail(w, endpoint, "updating task", http.StatusBadRequest, "Invalid request body")
		return
	}
	if cmd.Title != nil {
		task.Title = *cmd.Title
	}
	if cmd.Description != nil {
		task.Description = *cmd.Description
	}
	if cmd.Status != nil {
		task.Status = *cmd.Status
	}
	if cmd.DueDate != nil {
		dueDate, err := parseDueDate(*cmd.DueDate)
		if err != nil {
			h.fail(w, endpoint, "updating task", http.StatusBadRequest, "Invalid due date")
			return
		}
		task.DueDate = dueDate
	}
	if err := h.validate.Struct(task); err != nil {
		h.fail(w, endpoint, "updating task", http.StatusBadRequest, "Invalid task fields")
		return
	}

	if err := h.Tasks.UpdateTask(r.Context(), task); err != nil {
		h.fail(w, endpoint, "updating task", http.StatusInternalServerError, err.Error())
		return
	}
	_ = h.Cache.DeleteTaskList(r.Context(), task.UserID)
	h.Events.Emit(r.Context(), events.TaskUpdated, task.ID, task.UserID)

	response.OK(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id}. Returns an acknowledgment, not
// the deleted record.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/tasks/{id}"
	endpointCalls.WithLabelValues(endpoint).Inc()

	task := h.loadOwnedTask(w, r, endpoint, "deleting task")
	if task == nil {
		return
	}

	if err := h.Tasks.DeleteTask(r.Context(), task.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.fail(w, endpoint, "deleting task", http.StatusNotFound, "Task not found")
			return
		}
		h.fail(w, endpoint, "deleting task", http.StatusInternalServerError, err.Error())
		return
	}
	_ = h.Cache.DeleteTaskList(r.Context(), task.UserID)
	h.Events.Emit(r.Context(), events.TaskDeleted, task.ID, task.UserID)

	h.Log.WithFields(logrus.Fields{
		"operation": "deleting task",
		"taskID":    task.ID,
		"userID":    task.UserID,
	}).Info("task deleted")
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Message: "Task deleted successfully"})
}
