package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/coursecms/internal/app/system/auth"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminClaims returns verified-looking admin claims for injecting into
// request contexts, bypassing token verification.
func AdminClaims() *auth.Claims {
	return &auth.Claims{
		Email: "admin@test.com",
		Role:  models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: primitive.NewObjectID().Hex(),
		},
	}
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates a request with a JSON-encoded body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAdminRequest creates a request with admin claims in context.
func NewAdminRequest(method, target string) *http.Request {
	return auth.WithTestClaims(httptest.NewRequest(method, target, nil), AdminClaims())
}

// NewAdminJSONRequest creates a JSON request with admin claims in context.
func NewAdminJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	return auth.WithTestClaims(NewJSONRequest(t, method, target, body), AdminClaims())
}

// AsAdmin injects admin claims into an existing request.
func AsAdmin(r *http.Request) *http.Request {
	return auth.WithTestClaims(r, AdminClaims())
}

// MultipartBuilder assembles multipart form bodies for upload endpoints.
type MultipartBuilder struct {
	t   *testing.T
	buf bytes.Buffer
	w   *multipart.Writer
}

// NewMultipart creates a multipart form builder.
func NewMultipart(t *testing.T) *MultipartBuilder {
	t.Helper()
	b := &MultipartBuilder{t: t}
	b.w = multipart.NewWriter(&b.buf)
	return b
}

// Field adds a text field.
func (b *MultipartBuilder) Field(name, value string) *MultipartBuilder {
	b.t.Helper()
	if err := b.w.WriteField(name, value); err != nil {
		b.t.Fatalf("failed to write form field %q: %v", name, err)
	}
	return b
}

// File adds a file part with an explicit content type.
func (b *MultipartBuilder) File(field, filename, contentType string, data []byte) *MultipartBuilder {
	b.t.Helper()
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := b.w.CreatePart(h)
	if err != nil {
		b.t.Fatalf("failed to create file part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		b.t.Fatalf("failed to write file part: %v", err)
	}
	return b
}

// Request finalizes the form and builds the request.
func (b *MultipartBuilder) Request(method, target string) *http.Request {
	b.t.Helper()
	if err := b.w.Close(); err != nil {
		b.t.Fatalf("failed to close multipart writer: %v", err)
	}
	req := httptest.NewRequest(method, target, &b.buf)
	req.Header.Set("Content-Type", b.w.FormDataContentType())
	return req
}

// Envelope mirrors the API response shape for decoding in tests.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// DecodeEnvelope decodes a response body into an Envelope.
func DecodeEnvelope(t *testing.T, body io.Reader) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return env
}

// DecodeData decodes the envelope's data payload into v.
func DecodeData(t *testing.T, env Envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("failed to decode envelope data: %v", err)
	}
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !strings.Contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
