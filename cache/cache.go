// Package cache provides a Redis-backed read cache for task lists.
//
// The cache holds one entry per user and is invalidated on every write to
// that user's tasks. A miss falls through to the task store.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"TaskManagerService/models"
)

const taskListTTL = 15 * time.Second

// TaskCache caches per-user task lists.
type TaskCache interface {
	GetTaskList(ctx context.Context, userID string) ([]models.Task, error)
	SetTaskList(ctx context.Context, userID string, tasks []models.Task) error
	DeleteTaskList(ctx context.Context, userID string) error
}

// RedisTaskCache implements TaskCache with go-redis.
type RedisTaskCache struct {
	rdb *redis.Client
}

func NewRedisTaskCache(rdb *redis.Client) *RedisTaskCache {
	return &RedisTaskCache{rdb: rdb}
}

func taskListKey(userID string) string {
	return "tasks:user:" + userID
}

func (c *RedisTaskCache) GetTaskList(ctx context.Context, userID string) ([]models.Task, error) {
	val, err := c.rdb.Get(ctx, taskListKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(val), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *RedisTaskCache) SetTaskList(ctx context.Context, userID string, tasks []models.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, taskListKey(userID), data, taskListTTL).Err()
}

func (c *RedisTaskCache) DeleteTaskList(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, taskListKey(userID)).Err()
}

// Noop is the TaskCache used when no Redis address is configured. Every read
// is a miss and writes are discarded.
type Noop struct{}

func (Noop) GetTaskList(ctx context.Context, userID string) ([]models.Task, error) {
	return nil, nil
}

func (Noop) SetTaskList(ctx context.Context, userID string, tasks []models.Task) error {
	return nil
}

func (Noop) DeleteTaskList(ctx context.Context, userID string) error {
	return nil
}
