package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

// fakeHost stands in for the UploadThing API: it serves the prepare endpoint,
// accepts the follow-up PUT, and records deletes.
type fakeHost struct {
	t       *testing.T
	mux     *http.ServeMux
	server  *httptest.Server
	puts    int
	deleted []string

	prepareStatus int // 0 means 200
}

func newFakeHost(t *testing.T) *fakeHost {
	t.Helper()
	h := &fakeHost{t: t, mux: http.NewServeMux()}
	h.server = httptest.NewServer(h.mux)
	t.Cleanup(h.server.Close)

	h.mux.HandleFunc("/v7/prepareUpload", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-uploadthing-api-key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if h.prepareStatus != 0 {
			w.WriteHeader(h.prepareStatus)
			w.Write([]byte(`{"error":"nope"}`))
			return
		}
		var req struct {
			FileName string `json:"fileName"`
			FileSize int    `json:"fileSize"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileName == "" || req.FileSize == 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"url": h.server.URL + "/put/abc123",
			"key": "abc123",
		})
	})
	h.mux.HandleFunc("/put/abc123", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.puts++
		w.WriteHeader(http.StatusOK)
	})
	h.mux.HandleFunc("/v7/deleteFiles", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FileKeys []string `json:"fileKeys"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		h.deleted = append(h.deleted, req.FileKeys...)
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	return h
}

func (h *fakeHost) uploader() *UploadThing {
	return NewUploadThingForTest(h.server.URL, "test-key", "testapp", zap.NewNop())
}

func TestUploadThing_Upload(t *testing.T) {
	host := newFakeHost(t)
	u := host.uploader()

	obj, err := u.Upload(context.Background(), "photo.png", "image/png", []byte("not really a png"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if obj.Key != "abc123" {
		t.Errorf("key = %q, want abc123", obj.Key)
	}
	if want := "https://testapp.ufs.sh/f/abc123"; obj.URL != want {
		t.Errorf("url = %q, want %q", obj.URL, want)
	}
	if host.puts != 1 {
		t.Errorf("expected 1 PUT, got %d", host.puts)
	}
}

func TestUploadThing_UploadConstraints(t *testing.T) {
	host := newFakeHost(t)
	u := host.uploader()
	ctx := context.Background()

	if _, err := u.Upload(ctx, "doc.pdf", "application/pdf", []byte("x")); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("pdf: expected ErrUnsupportedType, got %v", err)
	}
	if _, err := u.Upload(ctx, "img.png", "image/png", nil); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("empty: expected ErrEmptyFile, got %v", err)
	}
	big := bytes.Repeat([]byte("a"), int(MaxUploadBytes)+1)
	if _, err := u.Upload(ctx, "img.png", "image/png", big); !errors.Is(err, ErrTooLarge) {
		t.Errorf("oversize: expected ErrTooLarge, got %v", err)
	}
	if host.puts != 0 {
		t.Errorf("constraint failures must not reach the host, got %d PUTs", host.puts)
	}
}

func TestUploadThing_PrepareRejected(t *testing.T) {
	host := newFakeHost(t)
	host.prepareStatus = http.StatusForbidden
	u := host.uploader()

	_, err := u.Upload(context.Background(), "img.png", "image/png", []byte("data"))
	ue := AsUploadError(err)
	if ue == nil {
		t.Fatalf("expected *UploadError, got %v", err)
	}
	if ue.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", ue.Status)
	}
}

func TestUploadThing_Delete(t *testing.T) {
	host := newFakeHost(t)
	u := host.uploader()

	if err := u.Delete(context.Background(), "abc123"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(host.deleted) != 1 || host.deleted[0] != "abc123" {
		t.Errorf("deleted keys = %v, want [abc123]", host.deleted)
	}

	// Blank keys are a no-op, not a request.
	if err := u.Delete(context.Background(), "  "); err != nil {
		t.Errorf("blank key delete returned error: %v", err)
	}
	if len(host.deleted) != 1 {
		t.Errorf("blank key must not reach the host")
	}
}

func TestDecodeToken(t *testing.T) {
	payload := `{"apiKey":"sk_test_123","appId":"myapp","regions":["sea1"]}`

	for name, enc := range map[string]*base64.Encoding{
		"std":     base64.StdEncoding,
		"raw-std": base64.RawStdEncoding,
		"url":     base64.URLEncoding,
	} {
		creds, err := decodeToken(enc.EncodeToString([]byte(payload)))
		if err != nil {
			t.Errorf("%s: decodeToken returned error: %v", name, err)
			continue
		}
		if creds.APIKey != "sk_test_123" || creds.AppID != "myapp" {
			t.Errorf("%s: creds = %+v", name, creds)
		}
	}

	if _, err := decodeToken(""); err == nil {
		t.Error("expected error for empty token")
	}
	if _, err := decodeToken("!!!not-base64!!!"); err == nil {
		t.Error("expected error for malformed token")
	}

	missing := base64.StdEncoding.EncodeToString([]byte(`{"apiKey":"only"}`))
	if _, err := decodeToken(missing); err == nil {
		t.Error("expected error for token missing appId")
	}
}

func TestCheckImage(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		size        int64
		wantErr     error
	}{
		{"jpeg ok", "image/jpeg", 100, nil},
		{"png ok", "image/png", 100, nil},
		{"gif ok", "image/gif", 100, nil},
		{"jpg alias ok", "image/jpg", 100, nil},
		{"charset param ok", "image/png; charset=binary", 100, nil},
		{"webp rejected", "image/webp", 100, ErrUnsupportedType},
		{"svg rejected", "image/svg+xml", 100, ErrUnsupportedType},
		{"empty", "image/png", 0, ErrEmptyFile},
		{"at cap", "image/png", MaxUploadBytes, nil},
		{"over cap", "image/png", MaxUploadBytes + 1, ErrTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckImage(tc.contentType, tc.size, 0)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("CheckImage(%q, %d) = %v, want %v", tc.contentType, tc.size, err, tc.wantErr)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.png":          "photo.png",
		"../../etc/passwd":   "passwd",
		"my photo (1).jpg":   "my_photo__1_.jpg",
		"":                   "",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
