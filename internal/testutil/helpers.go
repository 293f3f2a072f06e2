package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opengrade/gradebook/internal/auth"
	"github.com/opengrade/gradebook/internal/models"
)

// ParseJSONResponse decodes JSON response body into v
func ParseJSONResponse(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, w.Body.String())
	}
}

// AssertStatus checks HTTP status code matches expected
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()

	if w.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// JSONRequest creates an HTTP request with a JSON body and optional
// bearer token
func JSONRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyJSON)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// CreateTestUser creates an account with the given role and a known
// password ("testpassword") for login tests
func CreateTestUser(t *testing.T, env *TestEnvironment, email, role string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("testpassword")
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	user, err := env.DB.CreateUser(env.Ctx, email, "Test User", hash, role)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// SeedStudent inserts a student record directly for test setup
func SeedStudent(t *testing.T, env *TestEnvironment, indexNumber, fullName, course string, score int) *models.Student {
	t.Helper()

	student, err := env.DB.InsertStudent(env.Ctx, indexNumber, fullName, course, score)
	if err != nil {
		t.Fatalf("failed to seed student %s: %v", indexNumber, err)
	}
	return student
}
