// Package resourceapi implements the shared CRUD machinery behind the content
// API. Each resource (banners, courses, services, careers, leads) supplies a
// Descriptor describing how to parse and persist its documents; the generic
// Handler provides list/get/create/update/delete endpoints with the uniform
// response envelope, admin protection, and image upload handling.
package resourceapi

import (
	"net/http"

	"github.com/dalemusser/coursecms/internal/app/system/inputval"
	"github.com/dalemusser/coursecms/internal/app/system/media"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Descriptor wires one resource type into the generic CRUD handler.
type Descriptor[T any] struct {
	// Name is the singular, user-facing resource name used in messages
	// ("home content", "career").
	Name string

	// Collection is the MongoDB collection that stores the resource.
	Collection string

	// AcceptsImage marks resources whose create/update endpoints take a
	// multipart form with an "image" file field. Everything else is JSON.
	AcceptsImage bool

	// ImageRequired rejects creates that omit the image file. Ignored unless
	// AcceptsImage is set.
	ImageRequired bool

	// PublicCreate leaves POST open to unauthenticated clients. Used by the
	// lead forms (contact, enroll); content resources require an admin token.
	PublicCreate bool

	// PrivateRead gates the list and fetch endpoints behind the admin token.
	// Lead collections set it; site content stays publicly readable.
	PrivateRead bool

	// CreatedMessage overrides the default "<Name> created successfully."
	// response message. The lead forms use it for their thank-you copy.
	CreatedMessage string

	// Parse builds and validates a document from the request. For multipart
	// resources the form is already parsed; read text fields with
	// r.FormValue. Return validation errors through the Result rather than
	// writing to the response.
	Parse func(r *http.Request) (T, *inputval.Result)

	// Fields returns the $set document applied on update, covering every
	// client-editable field. Meta fields and the image are handled by the
	// engine.
	Fields func(doc T) bson.M

	// Meta returns the embedded server-managed fields of a document.
	Meta func(doc *T) *models.Meta

	// SetImage records an uploaded image's URL and key on the document.
	// Required when AcceptsImage is set.
	SetImage func(doc *T, obj media.Object)

	// ImageKeyOf returns the stored media key, or "" when the document has no
	// image. Required when AcceptsImage is set; used for cleanup on replace
	// and delete.
	ImageKeyOf func(doc T) string
}
