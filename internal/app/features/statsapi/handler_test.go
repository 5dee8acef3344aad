package statsapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/coursecms/internal/app/store/sitestats"
	"github.com/dalemusser/coursecms/internal/app/system/auth"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/dalemusser/coursecms/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(sitestats.New(db), zap.NewNop())

	tokens, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return Routes(h, tokens.RequireAdmin)
}

func TestStats_GetSeedsDocument(t *testing.T) {
	router := newRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	var stats models.SiteStats
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec.Body), &stats)
	if stats.CustomerCount != models.SeedCustomerCount {
		t.Errorf("customer count = %d, want seed %d", stats.CustomerCount, models.SeedCustomerCount)
	}
	if stats.DisplayedCount != models.SeedDisplayedCount {
		t.Errorf("displayed count = %d, want seed %d", stats.DisplayedCount, models.SeedDisplayedCount)
	}
}

func TestStats_Update(t *testing.T) {
	router := newRouter(t)

	// Seed the document with a read first.
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	body := map[string]any{"totalCourses": 8, "displayedCount": 40}
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAdminJSONRequest(t, http.MethodPut, "/", body))
	rec.AssertStatus(t, http.StatusOK)

	var stats models.SiteStats
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec.Body), &stats)
	if stats.TotalCourses != 8 {
		t.Errorf("total courses = %d, want 8", stats.TotalCourses)
	}
	if stats.DisplayedCount != 40 {
		t.Errorf("displayed count = %d, want 40", stats.DisplayedCount)
	}
	// Fields left out of the update keep their values.
	if stats.CustomerCount != models.SeedCustomerCount {
		t.Errorf("customer count = %d, want seed %d", stats.CustomerCount, models.SeedCustomerCount)
	}
}

func TestStats_UpdateRejectsUnknownField(t *testing.T) {
	router := newRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAdminJSONRequest(t, http.MethodPut, "/", map[string]any{"visitors": 5}))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "visitors")
}

func TestStats_UpdateRejectsBadValues(t *testing.T) {
	router := newRouter(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"negative", map[string]any{"totalCourses": -1}},
		{"fractional", map[string]any{"totalCourses": 1.5}},
		{"string", map[string]any{"totalCourses": "many"}},
		{"empty body", map[string]any{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec, testutil.NewAdminJSONRequest(t, http.MethodPut, "/", tc.body))
			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestStats_UpdateRequiresAdmin(t *testing.T) {
	router := newRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPut, "/", map[string]any{"totalCourses": 1}))
	rec.AssertStatus(t, http.StatusUnauthorized)
}
