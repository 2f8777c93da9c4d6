package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"TaskManagerService/models"
)

// MySQLTaskStore implements TaskStore on top of database/sql.
type MySQLTaskStore struct {
	db *sql.DB
}

func NewMySQLTaskStore(db *sql.DB) *MySQLTaskStore {
	return &MySQLTaskStore{db: db}
}

func (s *MySQLTaskStore) CreateTask(ctx context.Context, task *models.Task) error {
	task.ID = uuid.NewString()
	task.CreatedAt = now()
	task.UpdatedAt = task.CreatedAt
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks (id, title, description, status, due_date, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.Title, task.Description, task.Status, task.DueDate, task.UserID, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (s *MySQLTaskStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, description, status, due_date, user_id, created_at, updated_at FROM tasks WHERE id = ?", id)
	task := &models.Task{}
	var description sql.NullString
	err := row.Scan(&task.ID, &task.Title, &description, &task.Status, &task.DueDate,
		&task.UserID, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan row into Task struct: %w", err)
	}
	task.Description = description.String
	return task, nil
}

func (s *MySQLTaskStore) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, description, status, due_date, user_id, created_at, updated_at FROM tasks WHERE user_id = ? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		var description sql.NullString
		err := rows.Scan(&task.ID, &task.Title, &description, &task.Status, &task.DueDate,
			&task.UserID, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row into Task struct: %w", err)
		}
		task.Description = description.String
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *MySQLTaskStore) UpdateTask(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = now()
	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ?, status = ?, due_date = ?, updated_at = ? WHERE id = ?",
		task.Title, task.Description, task.Status, task.DueDate, task.UpdatedAt, task.ID)
	if err != nil {
		return fmt.Errorf("failed to execute SQL statement: %w", err)
	}
	return nil
}

func (s *MySQLTaskStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to execute SQL statement: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
