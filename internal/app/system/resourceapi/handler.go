package resourceapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/coursecms/internal/app/store/content"
	"github.com/dalemusser/coursecms/internal/app/store/storeutil"
	"github.com/dalemusser/coursecms/internal/app/system/jsonutil"
	"github.com/dalemusser/coursecms/internal/app/system/media"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// multipartMemory is the in-memory buffer for multipart parsing; files larger
// than this spill to disk before the size cap rejects them.
const multipartMemory = 8 << 20

// Handler serves the CRUD endpoints for one resource type.
type Handler[T any] struct {
	desc     Descriptor[T]
	uploader media.Uploader
	logger   *zap.Logger
	dev      bool

	// Store is exposed for resource-specific endpoints (counts) and tests.
	Store *content.Store[T]

	// AfterCreate, when set, runs after a successful create. Failures are
	// logged, not surfaced; the created document is already persisted.
	AfterCreate func(ctx context.Context) error
}

// NewHandler creates a CRUD handler over the descriptor's collection.
// uploader may be nil for resources that never accept images.
func NewHandler[T any](desc Descriptor[T], db *mongo.Database, uploader media.Uploader, logger *zap.Logger, dev bool) *Handler[T] {
	return &Handler[T]{
		desc:     desc,
		uploader: uploader,
		logger:   logger,
		dev:      dev,
		Store:    content.New[T](db, desc.Collection),
	}
}

// List handles GET /, returning documents newest first. Optional limit and
// page query parameters select a window; without them the full list is
// returned.
func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	docs, err := h.Store.List(r.Context(), limit, page)
	if err != nil {
		h.storeFail(w, "list "+h.desc.Name, err)
		return
	}
	jsonutil.OK(w, docs)
}

// GetOne handles GET /{id}.
func (h *Handler[T]) GetOne(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	doc, err := h.Store.Get(r.Context(), id)
	if err != nil {
		h.storeFail(w, "get "+h.desc.Name, err)
		return
	}
	jsonutil.OK(w, doc)
}

// Create handles POST /. Image-bearing resources take a multipart form with
// an "image" file field; the image is uploaded to the media host before the
// document is persisted, and removed again if persistence fails.
func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var file *formImage
	if h.desc.AcceptsImage {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			jsonutil.BadRequest(w, "Request must be a multipart form.")
			return
		}
		var err error
		file, err = readFormImage(r)
		if err != nil {
			jsonutil.BadRequest(w, "Could not read the uploaded image.")
			return
		}
	}

	doc, res := h.desc.Parse(r)
	if h.desc.AcceptsImage && h.desc.ImageRequired && file == nil {
		res.Add("image", "An image file is required.")
	}
	if res.HasErrors() {
		jsonutil.ValidationFail(w, res.First(), res.Errors)
		return
	}

	var uploaded *media.Object
	if file != nil {
		obj, ok := h.upload(w, r.Context(), file)
		if !ok {
			return
		}
		uploaded = &obj
		h.desc.SetImage(&doc, obj)
	}

	h.desc.Meta(&doc).Stamp()

	if err := h.Store.Insert(r.Context(), doc); err != nil {
		if uploaded != nil {
			h.discardAsync(uploaded.Key)
		}
		h.storeFail(w, "create "+h.desc.Name, err)
		return
	}

	if h.AfterCreate != nil {
		if err := h.AfterCreate(r.Context()); err != nil {
			h.logger.Error("after-create hook failed",
				zap.String("resource", h.desc.Name),
				zap.Error(err),
			)
		}
	}

	jsonutil.Created(w, h.createdMessage(), doc)
}

// Update handles PUT /{id}. The full editable field set is required; a new
// image is optional and replaces the old one, which is then removed from the
// media host.
func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	existing, err := h.Store.Get(r.Context(), id)
	if err != nil {
		h.storeFail(w, "get "+h.desc.Name, err)
		return
	}

	var file *formImage
	if h.desc.AcceptsImage {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			jsonutil.BadRequest(w, "Request must be a multipart form.")
			return
		}
		file, err = readFormImage(r)
		if err != nil {
			jsonutil.BadRequest(w, "Could not read the uploaded image.")
			return
		}
	}

	doc, res := h.desc.Parse(r)
	if res.HasErrors() {
		jsonutil.ValidationFail(w, res.First(), res.Errors)
		return
	}

	set := h.desc.Fields(doc)
	set["updated_at"] = time.Now().UTC()

	var uploaded *media.Object
	if file != nil {
		obj, ok := h.upload(w, r.Context(), file)
		if !ok {
			return
		}
		uploaded = &obj
		set["image"] = obj.URL
		set["image_key"] = obj.Key
	}

	updated, err := h.Store.Update(r.Context(), id, set)
	if err != nil {
		if uploaded != nil {
			h.discardAsync(uploaded.Key)
		}
		h.storeFail(w, "update "+h.desc.Name, err)
		return
	}

	if uploaded != nil {
		if old := h.desc.ImageKeyOf(existing); old != "" && old != uploaded.Key {
			h.discardAsync(old)
		}
	}

	jsonutil.OKMessage(w, h.title()+" updated successfully.", updated)
}

// Delete handles DELETE /{id}. The media object, if any, is removed after the
// document; a stray object on the host is preferable to a dangling URL.
func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var existing T
	if h.desc.AcceptsImage {
		var err error
		existing, err = h.Store.Get(r.Context(), id)
		if err != nil {
			h.storeFail(w, "get "+h.desc.Name, err)
			return
		}
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		h.storeFail(w, "delete "+h.desc.Name, err)
		return
	}

	if h.desc.AcceptsImage {
		if key := h.desc.ImageKeyOf(existing); key != "" {
			h.discardAsync(key)
		}
	}

	jsonutil.OKMessage(w, h.title()+" deleted successfully.", nil)
}

// idParam parses the {id} route parameter. Malformed ids get a 404, the same
// as a well-formed id that matches nothing.
func (h *Handler[T]) idParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, h.title()+" not found.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// formImage is an image file read out of a multipart form.
type formImage struct {
	filename    string
	contentType string
	data        []byte
}

// readFormImage extracts the optional "image" file from a parsed multipart
// form. Returns (nil, nil) when the field is absent.
func readFormImage(r *http.Request) (*formImage, error) {
	f, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &formImage{
		filename:    header.Filename,
		contentType: header.Header.Get("Content-Type"),
		data:        data,
	}, nil
}

// upload sends the image to the media host, writing the failure response
// itself. Constraint violations are client errors; host failures carry the
// status the media layer attributed to them.
func (h *Handler[T]) upload(w http.ResponseWriter, ctx context.Context, file *formImage) (media.Object, bool) {
	obj, err := h.uploader.Upload(ctx, file.filename, file.contentType, file.data)
	if err == nil {
		return obj, true
	}

	if media.IsConstraintErr(err) {
		jsonutil.BadRequest(w, capitalize(err.Error())+".")
		return media.Object{}, false
	}

	h.logger.Error("image upload failed",
		zap.String("resource", h.desc.Name),
		zap.String("filename", file.filename),
		zap.Error(err),
	)

	status := http.StatusBadGateway
	if ue := media.AsUploadError(err); ue != nil {
		status = ue.Status
	}
	msg := "Failed to upload image."
	if h.dev {
		msg = "Failed to upload image: " + err.Error()
	}
	jsonutil.Fail(w, status, msg)
	return media.Object{}, false
}

// discardAsync removes a media object in the background. Failures are logged;
// an orphaned object never blocks the response.
func (h *Handler[T]) discardAsync(key string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.uploader.Delete(ctx, key); err != nil {
			h.logger.Warn("failed to remove media object",
				zap.String("resource", h.desc.Name),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}()
}

// storeFail maps a store error onto the response envelope.
func (h *Handler[T]) storeFail(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound):
		jsonutil.NotFound(w, h.title()+" not found.")
	case storeutil.IsUnavailable(err):
		h.logger.Error("store unavailable", zap.String("action", action), zap.Error(err))
		jsonutil.Unavailable(w, "Service is temporarily unavailable. Please try again.")
	default:
		h.logger.Error("store operation failed", zap.String("action", action), zap.Error(err))
		msg := "Failed to " + action + "."
		if h.dev {
			msg = "Failed to " + action + ": " + err.Error()
		}
		jsonutil.InternalError(w, msg)
	}
}

func (h *Handler[T]) createdMessage() string {
	if h.desc.CreatedMessage != "" {
		return h.desc.CreatedMessage
	}
	return h.title() + " created successfully."
}

func (h *Handler[T]) title() string {
	return capitalize(h.desc.Name)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
