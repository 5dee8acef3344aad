package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/dalemusser/coursecms/internal/app/system/media"
)

// FakeUploader is an in-memory media.Uploader for handler tests. It enforces
// the same type and size constraints as the real backends.
type FakeUploader struct {
	mu      sync.Mutex
	n       int
	Uploads []media.Object
	Deleted []string

	// FailUpload, when set, is returned by every Upload call.
	FailUpload error
}

// NewFakeUploader creates an empty fake uploader.
func NewFakeUploader() *FakeUploader {
	return &FakeUploader{}
}

// Upload records the upload and returns a fabricated object.
func (f *FakeUploader) Upload(ctx context.Context, filename, contentType string, data []byte) (media.Object, error) {
	if err := media.CheckImage(contentType, int64(len(data)), 0); err != nil {
		return media.Object{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailUpload != nil {
		return media.Object{}, f.FailUpload
	}
	f.n++
	obj := media.Object{
		URL: fmt.Sprintf("https://media.test/f/obj-%d", f.n),
		Key: fmt.Sprintf("obj-%d", f.n),
	}
	f.Uploads = append(f.Uploads, obj)
	return obj, nil
}

// Delete records the removed key.
func (f *FakeUploader) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, key)
	return nil
}

// DeletedKeys returns a copy of the keys removed so far.
func (f *FakeUploader) DeletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Deleted))
	copy(out, f.Deleted)
	return out
}
