// Package client is a Go client for the TaskManagerService REST API, used by
// the taskcli command. It replays the bearer token obtained from login or
// register on every request.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"TaskManagerService/models"
)

// Client talks to a running service instance.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// apiEnvelope mirrors the server's response wrapper.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *models.User    `json:"user"`
}

func (c *Client) do(method, path string, body interface{}) (*apiEnvelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, c.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	env := &apiEnvelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%s (status %d)", env.Message, resp.StatusCode)
	}
	return env, nil
}

// Register creates an account and returns the issued token with the user.
func (c *Client) Register(name, email, password string) (string, *models.User, error) {
	env, err := c.do(http.MethodPost, "/api/auth/register",
		map[string]string{"name": name, "email": email, "password": password})
	if err != nil {
		return "", nil, err
	}
	c.Token = env.Token
	return env.Token, env.User, nil
}

// Login authenticates and returns the issued token with the user.
func (c *Client) Login(email, password string) (string, *models.User, error) {
	env, err := c.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password})
	if err != nil {
		return "", nil, err
	}
	c.Token = env.Token
	return env.Token, env.User, nil
}

// Me returns the account behind the current token.
func (c *Client) Me() (*models.User, error) {
	env, err := c.do(http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// ListTasks returns the caller's tasks, newest first.
func (c *Client) ListTasks() ([]models.Task, error) {
	env, err := c.do(http.MethodGet, "/api/tasks", nil)
	if err != nil {
		return nil, err
	}
	var tasks []models.Task
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns one task by id.
func (c *Client) GetTask(id string) (*models.Task, error) {
	env, err := c.do(http.MethodGet, "/api/tasks/"+id, nil)
	if err != nil {
		return nil, err
	}
	task := &models.Task{}
	if err := json.Unmarshal(env.Data, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTask creates a task owned by the caller.
func (c *Client) CreateTask(title, description, dueDate string) (*models.Task, error) {
	body := map[string]string{"title": title}
	if description != "" {
		body["description"] = description
	}
	if dueDate != "" {
		body["dueDate"] = dueDate
	}
	env, err := c.do(http.MethodPost, "/api/tasks", body)
	if err != nil {
		return nil, err
	}
	task := &models.Task{}
	if err := json.Unmarshal(env.Data, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask sends a partial update; only non-nil fields are touched.
func (c *Client) UpdateTask(id string, fields map[string]string) (*models.Task, error) {
	env, err := c.do(http.MethodPut, "/api/tasks/"+id, fields)
	if err != nil {
		return nil, err
	}
	task := &models.Task{}
	if err := json.Unmarshal(env.Data, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(id string) error {
	_, err := c.do(http.MethodDelete, "/api/tasks/"+id, nil)
	return err
}
