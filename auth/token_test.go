package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.CreateToken("user-42")
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}

	userID, err := tm.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if userID != "user-42" {
		t.Fatalf("expected user-42, got %q", userID)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("secret", -time.Minute)

	token, err := tm.CreateToken("user-42")
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}

	if _, err := tm.VerifyToken(token); err == nil {
		t.Fatal("expected an error for an expired token")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.CreateToken("user-42")
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}

	if _, err := verifier.VerifyToken(token); err == nil {
		t.Fatal("expected an error for a token signed with another secret")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	if _, err := tm.VerifyToken("not.a.jwt"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestMiddleware(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	tm := NewTokenManager("secret", time.Hour)
	token, err := tm.CreateToken("user-42")
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}

	var seenUserID string
	handler := tm.Middleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserID(r.Context())
	}))

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID string
	}{
		{"valid bearer token", "Bearer " + token, http.StatusOK, "user-42"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"no bearer prefix", token, http.StatusUnauthorized, ""},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seenUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)

			if resp.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, resp.Code)
			}
			if seenUserID != tc.wantUserID {
				t.Fatalf("expected user id %q, got %q", tc.wantUserID, seenUserID)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "secret123") {
		t.Fatal("expected the correct password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected a wrong password to fail")
	}
}
