package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestListIncludesCount(t *testing.T) {
	w := httptest.NewRecorder()
	List(w, []string{"a", "b"}, 2)

	var got map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got["success"] != true || got["count"] != float64(2) {
		t.Fatalf("unexpected envelope: %v", got)
	}
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, 404, "Task not found")

	if w.Code != 404 {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got["success"] != false || got["message"] != "Task not found" {
		t.Fatalf("unexpected envelope: %v", got)
	}
	if _, ok := got["data"]; ok {
		t.Fatal("error envelope must not carry data")
	}
}
