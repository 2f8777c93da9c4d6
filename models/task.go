// Package models contains the data models for the application to be used in request handling.
package models

import "time"

// Task statuses accepted by the API. A task starts as StatusPending unless
// the request supplies another value.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task represents a to-do item owned by exactly one user.
// Task has the following properties:
// - ID: The unique identifier of the task.
// - Title: The title of the task. Required and must not be blank.
// - Description: Optional free text.
// - Status: One of "pending", "in-progress" or "completed".
// - DueDate: Optional due date.
// - UserID: The identifier of the owning user, set when the task is created and never changed.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" validate:"required,notBlank"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status" validate:"statusValidator"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
