// internal/app/system/media/localstore.go
package media

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StorageUploader serves the Uploader contract from a waffle storage backend
// (local disk in development, S3 if configured the same way). Keys are the
// storage paths, so Delete works identically to the external host.
type StorageUploader struct {
	store    storage.Store
	maxBytes int64
	logger   *zap.Logger
}

// NewStorageUploader wraps a waffle storage.Store as a media backend.
func NewStorageUploader(store storage.Store, maxBytes int64, logger *zap.Logger) *StorageUploader {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	return &StorageUploader{store: store, maxBytes: maxBytes, logger: logger}
}

// Upload writes the image under images/YYYY/MM/<uuid><ext> and returns the
// store's URL for it.
func (s *StorageUploader) Upload(ctx context.Context, filename, contentType string, data []byte) (Object, error) {
	if err := CheckImage(contentType, int64(len(data)), s.maxBytes); err != nil {
		return Object{}, err
	}

	now := time.Now().UTC()
	ext := filepath.Ext(filename)
	path := fmt.Sprintf("images/%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.New().String()[:8], ext)

	opts := &storage.PutOptions{ContentType: contentType}
	if err := s.store.Put(ctx, path, bytes.NewReader(data), opts); err != nil {
		return Object{}, &UploadError{Status: 500, Err: err}
	}

	s.logger.Debug("image stored locally", zap.String("path", path))
	return Object{URL: s.store.URL(path), Key: path}, nil
}

// Delete removes the stored object.
func (s *StorageUploader) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.store.Delete(ctx, key)
}
