// Package media uploads images to the configured media host and returns the
// public URL stored on content documents.
//
// Two backends implement the same contract: the UploadThing-style external
// host used in production, and a waffle storage-backed uploader for local
// development. Constraint checks (type, size) run before any bytes leave the
// process, so the host is never contacted for input the API would reject.
package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Object identifies an uploaded image: the public HTTPS URL embedded in
// clients, and the host-side key used for compensating deletes.
type Object struct {
	URL string
	Key string
}

// Uploader is the contract every media backend satisfies.
type Uploader interface {
	// Upload stores the image bytes and returns its public URL and key.
	Upload(ctx context.Context, filename, contentType string, data []byte) (Object, error)
	// Delete removes a previously uploaded object. A best-effort operation:
	// callers log failures rather than surfacing them.
	Delete(ctx context.Context, key string) error
}

// MaxUploadBytes is the default payload cap enforced before upload.
const MaxUploadBytes = 5 << 20 // 5 MiB

// Constraint violations are client errors, distinct from host failures.
var (
	ErrUnsupportedType = errors.New("only jpeg, jpg, png, and gif images are allowed")
	ErrTooLarge        = errors.New("image exceeds the maximum upload size")
	ErrEmptyFile       = errors.New("uploaded file is empty")
)

// allowedTypes are the accepted image MIME types.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// CheckImage validates content type and size against the upload constraints.
// maxBytes <= 0 applies the default cap.
func CheckImage(contentType string, size int64, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	if size == 0 {
		return ErrEmptyFile
	}
	if size > maxBytes {
		return ErrTooLarge
	}
	mt := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if !allowedTypes[mt] {
		return ErrUnsupportedType
	}
	return nil
}

// IsConstraintErr reports whether err is a pre-upload constraint violation
// (a 400-class problem) rather than a host failure.
func IsConstraintErr(err error) bool {
	return errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrTooLarge) || errors.Is(err, ErrEmptyFile)
}

// UploadError wraps a failure reported by the media host, carrying an
// HTTP-style status for response mapping and the underlying cause for logs.
type UploadError struct {
	Status int // status reported by or attributed to the host
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("media upload failed (status %d): %v", e.Status, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// AsUploadError returns the *UploadError in err's chain, or nil.
func AsUploadError(err error) *UploadError {
	var ue *UploadError
	if errors.As(err, &ue) {
		return ue
	}
	return nil
}
