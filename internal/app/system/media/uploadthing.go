// internal/app/system/media/uploadthing.go
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultUploadTimeout bounds one full upload exchange (prepare + put).
const DefaultUploadTimeout = 60 * time.Second

// UploadThing talks to the UploadThing media host: a prepare call reserves an
// upload slot and returns a presigned URL and file key, then the bytes are
// PUT to that URL. The public URL is derived from the app ID and file key.
type UploadThing struct {
	apiRoot  string
	apiKey   string
	appID    string
	maxBytes int64
	client   *http.Client
	logger   *zap.Logger
}

// uploadThingToken is the decoded credential payload carried in the
// base64-encoded token issued by the host's dashboard.
type uploadThingToken struct {
	APIKey string `json:"apiKey"`
	AppID  string `json:"appId"`
}

type prepareRequest struct {
	FileName string `json:"fileName"`
	FileSize int    `json:"fileSize"`
	FileType string `json:"fileType,omitempty"`
}

type prepareResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

const uploadThingAPIRoot = "https://api.uploadthing.com"

// NewUploadThing builds the production uploader from the host token.
// timeout <= 0 applies DefaultUploadTimeout; maxBytes <= 0 applies the 5 MiB
// default cap.
func NewUploadThing(token string, timeout time.Duration, maxBytes int64, logger *zap.Logger) (*UploadThing, error) {
	creds, err := decodeToken(token)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultUploadTimeout
	}
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	return &UploadThing{
		apiRoot:  uploadThingAPIRoot,
		apiKey:   creds.APIKey,
		appID:    creds.AppID,
		maxBytes: maxBytes,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}, nil
}

// NewUploadThingForTest builds an uploader pointed at a stand-in host.
func NewUploadThingForTest(apiRoot, apiKey, appID string, logger *zap.Logger) *UploadThing {
	return &UploadThing{
		apiRoot:  apiRoot,
		apiKey:   apiKey,
		appID:    appID,
		maxBytes: MaxUploadBytes,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Upload checks constraints, reserves a slot, and PUTs the bytes.
// Host rejections and timeouts come back as *UploadError.
func (u *UploadThing) Upload(ctx context.Context, filename, contentType string, data []byte) (Object, error) {
	if err := CheckImage(contentType, int64(len(data)), u.maxBytes); err != nil {
		return Object{}, err
	}

	name := sanitizeFilename(filename)
	if name == "" {
		name = "image.jpg"
	}

	uploadURL, key, err := u.prepare(ctx, name, contentType, len(data))
	if err != nil {
		return Object{}, err
	}

	if err := u.put(ctx, uploadURL, name, contentType, data); err != nil {
		return Object{}, err
	}

	obj := Object{
		URL: fmt.Sprintf("https://%s.ufs.sh/f/%s", u.appID, key),
		Key: key,
	}
	u.logger.Debug("image uploaded",
		zap.String("key", obj.Key),
		zap.Int("bytes", len(data)),
	)
	return obj, nil
}

// Delete removes an uploaded object by key. Used for compensating cleanup
// when a persistence write fails after a successful upload.
func (u *UploadThing) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}

	payload := map[string]any{
		"fileKeys": []string{key},
		"keyType":  "fileKey",
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.apiRoot+"/v7/deleteFiles", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-uploadthing-api-key", u.apiKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return u.wrapTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	respBody, _ := io.ReadAll(resp.Body)
	return &UploadError{
		Status: resp.StatusCode,
		Err:    fmt.Errorf("delete rejected: %s", strings.TrimSpace(string(respBody))),
	}
}

func (u *UploadThing) prepare(ctx context.Context, name, contentType string, size int) (string, string, error) {
	body, err := json.Marshal(prepareRequest{
		FileName: name,
		FileSize: size,
		FileType: strings.TrimSpace(contentType),
	})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.apiRoot+"/v7/prepareUpload", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-uploadthing-api-key", u.apiKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", "", u.wrapTransport(err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", &UploadError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("prepare rejected: %s", strings.TrimSpace(string(respBody))),
		}
	}

	var prepared prepareResponse
	if err := json.Unmarshal(respBody, &prepared); err != nil {
		return "", "", &UploadError{Status: http.StatusBadGateway, Err: fmt.Errorf("prepare response unreadable: %w", err)}
	}
	if prepared.URL == "" || prepared.Key == "" {
		return "", "", &UploadError{Status: http.StatusBadGateway, Err: errors.New("prepare response missing url or key")}
	}
	return prepared.URL, prepared.Key, nil
}

func (u *UploadThing) put(ctx context.Context, uploadURL, name, contentType string, data []byte) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, name))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("x-uploadthing-api-key", u.apiKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return u.wrapTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	respBody, _ := io.ReadAll(resp.Body)
	return &UploadError{
		Status: resp.StatusCode,
		Err:    fmt.Errorf("upload rejected: %s", strings.TrimSpace(string(respBody))),
	}
}

// wrapTransport classifies client-side transport failures. Timeouts map to
// 504 so callers can tell a slow host apart from a rejecting one.
func (u *UploadThing) wrapTransport(err error) error {
	status := http.StatusBadGateway
	if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
		status = http.StatusGatewayTimeout
	}
	return &UploadError{Status: status, Err: err}
}

func isClientTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	var te timeouter
	return errors.As(err, &te) && te.Timeout()
}

// decodeToken decodes the base64 credential token. Dashboards have issued
// both padded and URL-safe variants, so all four encodings are tried.
func decodeToken(token string) (*uploadThingToken, error) {
	token = strings.Trim(strings.TrimSpace(token), `"'`)
	if token == "" {
		return nil, errors.New("media host token is required")
	}

	decodeFns := []func(string) ([]byte, error){
		base64.StdEncoding.DecodeString,
		base64.RawStdEncoding.DecodeString,
		base64.URLEncoding.DecodeString,
		base64.RawURLEncoding.DecodeString,
	}

	var lastErr error
	for _, decode := range decodeFns {
		decoded, err := decode(token)
		if err != nil {
			lastErr = err
			continue
		}
		var payload uploadThingToken
		if err := json.Unmarshal(decoded, &payload); err != nil {
			lastErr = err
			continue
		}
		if payload.APIKey == "" || payload.AppID == "" {
			return nil, errors.New("media host token missing apiKey or appId")
		}
		return &payload, nil
	}
	return nil, fmt.Errorf("failed to decode media host token: %w", lastErr)
}

// sanitizeFilename reduces a client filename to a safe basename.
func sanitizeFilename(name string) string {
	base := strings.TrimSpace(filepath.Base(name))
	if base == "" || base == "." || base == "/" {
		return ""
	}

	var b strings.Builder
	for _, ch := range base {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '.' || ch == '_' || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._-")
}
