// TaskManagerService is a web service for managing personal to-do tasks.
//
// It exposes a REST API with bearer-token authentication: users register and
// log in to obtain a JWT, then create, list, update and delete their own
// tasks. Tasks are owned by exactly one user and are never visible to anyone
// else. Storage is MySQL, with an optional Redis cache for task lists and an
// optional Kafka stream of task lifecycle events. A global rate limit
// protects against abuse and Prometheus metrics are served on /metrics.
//
// The following endpoints are available:
//
//  1. POST   /api/auth/register - Create an account, returns token and user
//  2. POST   /api/auth/login    - Authenticate, returns token and user
//  3. GET    /api/auth/me       - Current account behind the token
//  4. GET    /api/tasks         - List the caller's tasks, newest first
//  5. GET    /api/tasks/{id}    - Get one task (owner only)
//  6. POST   /api/tasks         - Create a task owned by the caller
//  7. PUT    /api/tasks/{id}    - Partially update a task (owner only)
//  8. DELETE /api/tasks/{id}    - Delete a task (owner only)
//  9. GET    /api/health        - Health check
// 10. GET    /metrics           - Prometheus metrics
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"TaskManagerService/auth"
	"TaskManagerService/cache"
	"TaskManagerService/events"
	"TaskManagerService/handlers"
	"TaskManagerService/storage"
)

const tokenTTL = 24 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Error loading .env file")
	}

	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.JSONFormatter{})

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		log.Fatal("SECRET_KEY is not configured")
	}
	tokens := auth.NewTokenManager(secret, tokenTTL)

	db, err := storage.Open(
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_ADDRESS"),
		os.Getenv("DB_NAME"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	log.Info("Connected to database")

	var taskCache cache.TaskCache = cache.Noop{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		taskCache = cache.NewRedisTaskCache(rdb)
		log.Info("Task list cache enabled on " + addr)
	}

	var producer *events.Producer
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		topic := os.Getenv("KAFKA_TOPIC")
		if topic == "" {
			topic = "task-events"
		}
		producer = events.NewProducer(broker, topic, log)
		defer producer.Close()
		log.Info("Task event stream enabled on " + broker)
	}

	h := handlers.New(
		storage.NewMySQLUserStore(db),
		storage.NewMySQLTaskStore(db),
		taskCache,
		producer,
		tokens,
		log,
	)

	limiter := rate.NewLimiter(2, 20)
	router := NewRouter(h, tokens, limiter, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Info("Server listening on port " + port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
