// Package commands contains the request input types for the application.
package commands

// RegisterCommand represents a registration request.
type RegisterCommand struct {
	Name     string `json:"name" validate:"required,notBlank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginCommand represents a login request.
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateTaskCommand represents a command to create a task. The owner is
// always taken from the authenticated caller, never from the body.
type CreateTaskCommand struct {
	Title       string `json:"title" validate:"required,notBlank"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,statusValidator"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskCommand represents a partial update of a task. Nil fields are
// left untouched. Owner and id are not updatable and have no fields here.
type UpdateTaskCommand struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate"`
}
