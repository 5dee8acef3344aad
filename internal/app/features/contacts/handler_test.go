package contacts

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/coursecms/internal/app/system/auth"
	"github.com/dalemusser/coursecms/internal/app/system/resourceapi"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/dalemusser/coursecms/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*resourceapi.Handler[models.Contact], http.Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), false)

	tokens, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return h, Routes(h, tokens.RequireAdmin)
}

func validBody() map[string]any {
	return map[string]any{
		"name":    "Pat Caller",
		"email":   "pat@example.com",
		"phone":   "+1 555 1234567",
		"message": "Do you offer evening classes?",
	}
}

func TestContact_Create(t *testing.T) {
	h, router := newRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", validBody()))

	rec.AssertStatus(t, http.StatusCreated)
	env := testutil.DecodeEnvelope(t, rec.Body)
	if env.Message != "Thank you for contacting us. We will get back to you soon." {
		t.Errorf("message = %q", env.Message)
	}

	docs, err := h.Store.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("stored docs = %d, want 1", len(docs))
	}
}

func TestContact_PhonePolicy(t *testing.T) {
	// The contact form allows separators but requires ten digits overall and
	// caps the raw string at fifteen characters.
	cases := []struct {
		name   string
		phone  string
		status int
	}{
		{"plain digits", "5551234567", http.StatusCreated},
		{"with separators", "555-123-4567", http.StatusCreated},
		{"plus and spaces", "+1 555 1234567", http.StatusCreated},
		{"too few digits", "555-1234", http.StatusBadRequest},
		{"letters", "call-me-maybe!", http.StatusBadRequest},
		{"over raw length", "+1 (555) 123-45-67", http.StatusBadRequest},
		{"separators but nine digits", "(55) 512-3456", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, router := newRouter(t)
			body := validBody()
			body["phone"] = tc.phone
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
			rec.AssertStatus(t, tc.status)
		})
	}
}

func TestContact_FieldErrors(t *testing.T) {
	_, router := newRouter(t)

	body := map[string]any{
		"name":  "",
		"email": "nope",
	}
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))

	rec.AssertStatus(t, http.StatusBadRequest)
	env := testutil.DecodeEnvelope(t, rec.Body)
	if env.Success {
		t.Error("success should be false")
	}
	var fieldErrors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	testutilDecodeErrors(t, env, &fieldErrors)
	if len(fieldErrors) == 0 {
		t.Fatal("expected field errors in envelope")
	}
	if fieldErrors[0].Field != "name" {
		t.Errorf("first error field = %q, want name", fieldErrors[0].Field)
	}
}

func TestContact_InvalidJSON(t *testing.T) {
	_, router := newRouter(t)

	req := testutil.NewRequest(http.MethodPost, "/")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestContact_ReadsRequireAdmin(t *testing.T) {
	_, router := newRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAdminRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)
}

func testutilDecodeErrors(t *testing.T, env testutil.Envelope, v any) {
	t.Helper()
	if env.Errors == nil {
		t.Fatal("envelope has no errors payload")
	}
	if err := json.Unmarshal(env.Errors, v); err != nil {
		t.Fatalf("failed to decode errors: %v", err)
	}
}
