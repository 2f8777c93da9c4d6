package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"TaskManagerService/models"
	"TaskManagerService/storage"
)

// memUserStore is an in-memory UserStore for handler tests.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*models.User{}}
}

func (s *memUserStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return storage.ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, storage.ErrNotFound
}

func (s *memUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

// memTaskStore is an in-memory TaskStore for handler tests.
type memTaskStore struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]*models.Task
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: map[string]*models.Task{}}
}

func (s *memTaskStore) CreateTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	task.ID = uuid.NewString()
	// Monotonic timestamps so list ordering is deterministic.
	task.CreatedAt = time.Unix(int64(s.seq), 0)
	task.UpdatedAt = task.CreatedAt
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	cp := *task
	s.tasks[task.ID] = &cp
	return nil
}

func (s *memTaskStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, storage.ErrNotFound
}

func (s *memTaskStore) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := []models.Task{}
	for _, t := range s.tasks {
		if t.UserID == userID {
			tasks = append(tasks, *t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *memTaskStore) UpdateTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return storage.ErrNotFound
	}
	task.UpdatedAt = time.Now()
	cp := *task
	s.tasks[task.ID] = &cp
	return nil
}

func (s *memTaskStore) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// spyCache counts invalidations and otherwise always misses.
type spyCache struct {
	mu          sync.Mutex
	invalidated map[string]int
}

func newSpyCache() *spyCache {
	return &spyCache{invalidated: map[string]int{}}
}

func (c *spyCache) GetTaskList(ctx context.Context, userID string) ([]models.Task, error) {
	return nil, nil
}

func (c *spyCache) SetTaskList(ctx context.Context, userID string, tasks []models.Task) error {
	return nil
}

func (c *spyCache) DeleteTaskList(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated[userID]++
	return nil
}
