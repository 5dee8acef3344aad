package servicecontent

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/coursecms/internal/app/system/auth"
	"github.com/dalemusser/coursecms/internal/app/system/resourceapi"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/dalemusser/coursecms/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*resourceapi.Handler[models.ServiceContent], *testutil.FakeUploader, http.Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	uploader := testutil.NewFakeUploader()
	h := NewHandler(db, uploader, zap.NewNop(), false)

	tokens, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return h, uploader, Routes(h, tokens.RequireAdmin)
}

func detailForm(t *testing.T) *testutil.MultipartBuilder {
	return testutil.NewMultipart(t).
		Field("title", "Web Development").
		Field("description", "Full-stack training with projects.").
		Field("points", `["HTML and CSS", "JavaScript", "Backend APIs", "Deployment"]`).
		File("image", "service.jpg", "image/jpeg", []byte("jpeg bytes"))
}

func TestCreate_WithPoints(t *testing.T) {
	h, uploader, router := newRouter(t)

	req := testutil.AsAdmin(detailForm(t).Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var doc models.ServiceContent
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec.Body), &doc)
	if len(doc.Points) != 4 {
		t.Errorf("points = %v", doc.Points)
	}
	if doc.Image == "" {
		t.Error("expected image URL on created document")
	}
	if len(uploader.Uploads) != 1 {
		t.Errorf("uploads = %d, want 1", len(uploader.Uploads))
	}

	docs, err := h.Store.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("stored docs = %d, want 1", len(docs))
	}
}

func TestCreate_PointsTrimmed(t *testing.T) {
	// Whitespace is trimmed and blank entries dropped before the minimum check.
	_, _, router := newRouter(t)

	req := testutil.AsAdmin(testutil.NewMultipart(t).
		Field("title", "Web Development").
		Field("description", "desc").
		Field("points", `["  One  ", "Two", "", "Three", "Four"]`).
		File("image", "service.jpg", "image/jpeg", []byte("jpeg bytes")).
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var doc models.ServiceContent
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec.Body), &doc)
	if len(doc.Points) != 4 {
		t.Fatalf("points = %v", doc.Points)
	}
	if doc.Points[0] != "One" {
		t.Errorf("points[0] = %q, want trimmed One", doc.Points[0])
	}
}

func TestCreate_TooFewPoints(t *testing.T) {
	h, uploader, router := newRouter(t)

	req := testutil.AsAdmin(testutil.NewMultipart(t).
		Field("title", "Web Development").
		Field("description", "desc").
		Field("points", `["One", "Two", "Three"]`).
		File("image", "service.jpg", "image/jpeg", []byte("jpeg bytes")).
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "points")

	if len(uploader.Uploads) != 0 {
		t.Errorf("uploads = %d, want 0", len(uploader.Uploads))
	}
	docs, err := h.Store.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("stored docs = %d, want 0", len(docs))
	}
}

func TestCreate_MalformedPoints(t *testing.T) {
	_, _, router := newRouter(t)

	req := testutil.AsAdmin(testutil.NewMultipart(t).
		Field("title", "Web Development").
		Field("description", "desc").
		Field("points", `{"not": "an array"}`).
		File("image", "service.jpg", "image/jpeg", []byte("jpeg bytes")).
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "JSON array")
}

func TestCreate_MissingPoints(t *testing.T) {
	_, _, router := newRouter(t)

	req := testutil.AsAdmin(testutil.NewMultipart(t).
		Field("title", "Web Development").
		Field("description", "desc").
		File("image", "service.jpg", "image/jpeg", []byte("jpeg bytes")).
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "points")
}

func TestCreate_ImageRequired(t *testing.T) {
	_, _, router := newRouter(t)

	req := testutil.AsAdmin(testutil.NewMultipart(t).
		Field("title", "Web Development").
		Field("description", "desc").
		Field("points", `["One", "Two", "Three", "Four"]`).
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "image")
}

func TestCreate_RequiresAdmin(t *testing.T) {
	_, _, router := newRouter(t)

	req := detailForm(t).Request(http.MethodPost, "/")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}
