package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"TaskManagerService/auth"
	"TaskManagerService/commands"
	"TaskManagerService/models"
	"TaskManagerService/response"
	"TaskManagerService/storage"
)

// authResponse is the body returned by register and login. The token and
// user sit beside the success flag, not under data.
type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user"`
}

// Register handles POST /api/auth/register. It creates an account with a
// bcrypt password hash and returns a fresh token alongside the user.
//
// Example request body:
//
//	{
//	  "name": "Alice",
//	  "email": "alice@x.com",
//	  "password": "secret123"
//	}
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/auth/register"
	endpointCalls.WithLabelValues(endpoint).Inc()

	var cmd commands.RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.fail(w, endpoint, "registering user", http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		h.fail(w, endpoint, "registering user", http.StatusBadRequest, "Please provide name, email and password")
		return
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		h.fail(w, endpoint, "registering user", http.StatusInternalServerError, err.Error())
		return
	}

	user := &models.User{Name: cmd.Name, Email: cmd.Email, PasswordHash: hash}
	if err := h.Users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			h.fail(w, endpoint, "registering user", http.StatusConflict, "Email already registered")
			return
		}
		h.fail(w, endpoint, "registering user", http.StatusInternalServerError, err.Error())
		return
	}

	token, err := h.Tokens.CreateToken(user.ID)
	if err != nil {
		h.fail(w, endpoint, "registering user", http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.WithFields(logrus.Fields{
		"operation": "registering user",
		"userID":    user.ID,
	}).Info("user registered")
	response.Write(w, http.StatusCreated, authResponse{Success: true, Token: token, User: user})
}

// Login handles POST /api/auth/login. Unknown emails and wrong passwords get
// the same 401 message.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/auth/login"
	endpointCalls.WithLabelValues(endpoint).Inc()

	var cmd commands.LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.fail(w, endpoint, "logging in user", http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		h.fail(w, endpoint, "logging in user", http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, err := h.Users.GetUserByEmail(r.Context(), cmd.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.fail(w, endpoint, "logging in user", http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.fail(w, endpoint, "logging in user", http.StatusInternalServerError, err.Error())
		return
	}
	if !auth.CheckPassword(user.PasswordHash, cmd.Password) {
		h.fail(w, endpoint, "logging in user", http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.Tokens.CreateToken(user.ID)
	if err != nil {
		h.fail(w, endpoint, "logging in user", http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.WithFields(logrus.Fields{
		"operation": "logging in user",
		"userID":    user.ID,
	}).Info("user logged in")
	response.Write(w, http.StatusOK, authResponse{Success: true, Token: token, User: user})
}

// Me handles GET /api/auth/me and returns the account behind the token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/auth/me"
	endpointCalls.WithLabelValues(endpoint).Inc()

	user, err := h.Users.GetUserByID(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.fail(w, endpoint, "fetching current user", http.StatusUnauthorized, "User not found")
			return
		}
		h.fail(w, endpoint, "fetching current user", http.StatusInternalServerError, err.Error())
		return
	}
	response.Write(w, http.StatusOK, authResponse{Success: true, User: user})
}
