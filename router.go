package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"TaskManagerService/auth"
	"TaskManagerService/handlers"
	"TaskManagerService/response"
)

// NewRouter wires the middleware chain and the REST routes.
func NewRouter(h *handlers.Handler, tokens *auth.TokenManager, limiter *rate.Limiter, log *logrus.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(recoverer(log))
	r.Use(rateLimiter(limiter))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.With(tokens.Middleware(log)).Get("/me", h.Me)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(tokens.Middleware(log))
			r.Get("/", h.ListTasks)
			r.Post("/", h.CreateTask)
			r.Get("/{id}", h.GetTask)
			r.Put("/{id}", h.UpdateTask)
			r.Delete("/{id}", h.DeleteTask)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, http.StatusNotFound, "Route not found")
	})

	return r
}

// rateLimiter rejects requests over the global budget with 429 and an
// envelope body.
func rateLimiter(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				response.Error(w, http.StatusTooManyRequests, "The API is at capacity, try again later.")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

// recoverer turns a handler panic into a 500 response carrying the error
// text.
func recoverer(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithFields(logrus.Fields{
						"request": req.Method + " " + req.URL.Path,
					}).Error("panic in handler: ", rec)
					response.Error(w, http.StatusInternalServerError, fmt.Sprintf("Something went wrong! %v", rec))
				}
			}()
			next.ServeHTTP(w, req)
		})
	}
}
