package client

import (
	"encoding/json"
	"os"

	"TaskManagerService/models"
)

// Session is the client-side authentication state: the bearer token and the
// user it belongs to. It is loaded from a file on startup and cleared on
// logout, so there is no ambient global state.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`

	path string
}

// LoadSession reads a stored session from path. A missing file yields an
// empty, logged-out session rather than an error.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	return s.Token != ""
}

// Save persists the session to its file.
func (s *Session) Save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear forgets the token and user and removes the session file.
func (s *Session) Clear() error {
	s.Token = ""
	s.User = nil
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
