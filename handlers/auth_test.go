package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"TaskManagerService/auth"
	"TaskManagerService/models"
)

type testEnv struct {
	router *chi.Mux
	users  *memUserStore
	tasks  *memTaskStore
	cache  *spyCache
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	users := newMemUserStore()
	tasks := newMemTaskStore()
	taskCache := newSpyCache()

	h := New(users, tasks, taskCache, nil, tokens, log)

	r := chi.NewRouter()
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

	return &testEnv{router: r, users: users, tasks: tasks, cache: taskCache, tokens: tokens}
}

func (e *testEnv) request(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

type authBody struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Message string       `json:"message"`
}

func (e *testEnv) register(t *testing.T, name, email, password string) authBody {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/auth/register", "",
		`{"name":"`+name+`","email":"`+email+`","password":"`+password+`"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var got authBody
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("register: failed to unmarshal response: %v", err)
	}
	if got.Token == "" || got.User == nil {
		t.Fatalf("register: missing token or user: %s", resp.Body.String())
	}
	return got
}

func TestRegisterSuccess(t *testing.T) {
	env := newTestEnv(t)

	got := env.register(t, "Alice", "alice@x.com", "secret123")

	if got.User.Email != "alice@x.com" || got.User.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", got.User)
	}
	if got.User.ID == "" {
		t.Fatal("expected user id to be set")
	}

	stored, err := env.users.GetUserByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.PasswordHash == "secret123" || stored.PasswordHash == "" {
		t.Fatal("password must be stored as a hash")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{"email":"a@x.com","password":"secret123"}`,
		`{"name":"A","password":"secret123"}`,
		`{"name":"A","email":"a@x.com"}`,
		`{"name":"  ","email":"a@x.com","password":"secret123"}`,
		`{not json`,
	} {
		resp := env.request(t, http.MethodPost, "/api/auth/register", "", body)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected status 400, got %d", body, resp.Code)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com", "secret123")

	resp := env.request(t, http.MethodPost, "/api/auth/register", "",
		`{"name":"Other","email":"alice@x.com","password":"different1"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com", "secret123")

	resp := env.request(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@x.com","password":"secret123"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var got authBody
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got.Token == "" {
		t.Fatal("expected a token")
	}
	if got.User == nil || got.User.Email != "alice@x.com" {
		t.Fatalf("unexpected user: %+v", got.User)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com", "secret123")

	wrongPassword := env.request(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@x.com","password":"wrong"}`)
	unknownEmail := env.request(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"nobody@x.com","password":"secret123"}`)

	for _, resp := range []*httptest.ResponseRecorder{wrongPassword, unknownEmail} {
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", resp.Code)
		}
	}

	// Same message for both, so the response does not reveal which part was wrong.
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("expected identical bodies, got %q and %q",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	reg := env.register(t, "Alice", "alice@x.com", "secret123")

	resp := env.request(t, http.MethodGet, "/api/auth/me", reg.Token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var got authBody
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got.User == nil || got.User.ID != reg.User.ID {
		t.Fatalf("unexpected user: %+v", got.User)
	}
}

func TestMeRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	noToken := env.request(t, http.MethodGet, "/api/auth/me", "", "")
	if noToken.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", noToken.Code)
	}

	badToken := env.request(t, http.MethodGet, "/api/auth/me", "not-a-jwt", "")
	if badToken.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", badToken.Code)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/health", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}
