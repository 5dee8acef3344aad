package homeservices

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/coursecms/internal/app/system/auth"
	"github.com/dalemusser/coursecms/internal/app/system/resourceapi"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/dalemusser/coursecms/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*resourceapi.Handler[models.HomeService], *testutil.FakeUploader, http.Handler) {
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

func cardForm(t *testing.T) *testutil.MultipartBuilder {
	return testutil.NewMultipart(t).
		Field("title", "Career Counseling").
		Field("description", "One-on-one guidance sessions.").
		File("image", "card.png", "image/png", []byte("png bytes"))
}

func TestCreate_Defaults(t *testing.T) {
	_, _, router := newRouter(t)

	req := testutil.AsAdmin(cardForm(t).Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var doc models.HomeService
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec.Body), &doc)
	if doc.Position != 0 {
		t.Errorf("position = %d, want 0", doc.Position)
	}
	if !doc.IsActive {
		t.Error("cards default to active")
	}
}

func TestCreate_PositionAndActiveFlag(t *testing.T) {
	_, _, router := newRouter(t)

	req := testutil.AsAdmin(cardForm(t).
		Field("position", "3").
		Field("isActive", "false").
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var doc models.HomeService
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec.Body), &doc)
	if doc.Position != 3 {
		t.Errorf("position = %d, want 3", doc.Position)
	}
	if doc.IsActive {
		t.Error("isActive=false should be honored")
	}
}

func TestCreate_TitleTooLong(t *testing.T) {
	h, uploader, router := newRouter(t)

	req := testutil.AsAdmin(testutil.NewMultipart(t).
		Field("title", strings.Repeat("t", 101)).
		Field("description", "desc").
		File("image", "card.png", "image/png", []byte("png bytes")).
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "title")

	// Validation failures must not reach the media host or the store.
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

func TestCreate_TitleAtLimit(t *testing.T) {
	_, _, router := newRouter(t)

	req := testutil.AsAdmin(testutil.NewMultipart(t).
		Field("title", strings.Repeat("t", 100)).
		Field("description", "desc").
		File("image", "card.png", "image/png", []byte("png bytes")).
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
}

func TestCreate_DescriptionTooLong(t *testing.T) {
	_, uploader, router := newRouter(t)

	req := testutil.AsAdmin(testutil.NewMultipart(t).
		Field("title", "Career Counseling").
		Field("description", strings.Repeat("d", 501)).
		File("image", "card.png", "image/png", []byte("png bytes")).
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "description")
	if len(uploader.Uploads) != 0 {
		t.Errorf("uploads = %d, want 0", len(uploader.Uploads))
	}
}

func TestCreate_BadPosition(t *testing.T) {
	_, _, router := newRouter(t)

	for _, v := range []string{"-1", "abc", "1.5"} {
		req := testutil.AsAdmin(cardForm(t).
			Field("position", v).
			Request(http.MethodPost, "/"))
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusBadRequest)
		rec.AssertContains(t, "position")
	}
}

func TestCreate_BadActiveFlag(t *testing.T) {
	_, _, router := newRouter(t)

	req := testutil.AsAdmin(cardForm(t).
		Field("isActive", "maybe").
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestCreate_ImageRequired(t *testing.T) {
	_, _, router := newRouter(t)

	req := testutil.AsAdmin(testutil.NewMultipart(t).
		Field("title", "Career Counseling").
		Field("description", "desc").
		Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "image")
}

func TestUpdate_RevalidatesBounds(t *testing.T) {
	_, _, router := newRouter(t)

	req := testutil.AsAdmin(cardForm(t).Request(http.MethodPost, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var doc models.HomeService
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec.Body), &doc)

	upd := testutil.AsAdmin(testutil.NewMultipart(t).
		Field("title", strings.Repeat("t", 101)).
		Field("description", "desc").
		Request(http.MethodPut, "/"+doc.ID.Hex()))
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, upd)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "title")
}
