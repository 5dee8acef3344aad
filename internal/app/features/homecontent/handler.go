// Package homecontent serves the home page banner API: a title over an image
// hosted on the media host.
package homecontent

import (
	"net/http"

	"github.com/dalemusser/coursecms/internal/app/system/inputval"
	"github.com/dalemusser/coursecms/internal/app/system/media"
	"github.com/dalemusser/coursecms/internal/app/system/resourceapi"
	"github.com/dalemusser/coursecms/internal/app/system/sanitize"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type bannerInput struct {
	Title string `validate:"required,max=200" label:"Title" json:"title"`
}

func parse(r *http.Request) (models.HomeContent, *inputval.Result) {
	in := bannerInput{Title: sanitize.Text(r.FormValue("title"))}
	doc := models.HomeContent{Title: in.Title}
	return doc, inputval.Validate(in)
}

// NewHandler creates the banner CRUD handler.
func NewHandler(db *mongo.Database, uploader media.Uploader, logger *zap.Logger, dev bool) *resourceapi.Handler[models.HomeContent] {
	desc := resourceapi.Descriptor[models.HomeContent]{
		Name:          "home content",
		Collection:    "home_content",
		AcceptsImage:  true,
		ImageRequired: true,
		Parse:         parse,
		Fields: func(doc models.HomeContent) bson.M {
			return bson.M{"title": doc.Title}
		},
		Meta:     func(doc *models.HomeContent) *models.Meta { return &doc.Meta },
		SetImage: func(doc *models.HomeContent, obj media.Object) { doc.Image, doc.ImageKey = obj.URL, obj.Key },
		ImageKeyOf: func(doc models.HomeContent) string { return doc.ImageKey },
	}
	return resourceapi.NewHandler(desc, db, uploader, logger, dev)
}

// Routes returns the banner endpoints, for mounting at /api/home-content.
func Routes(h *resourceapi.Handler[models.HomeContent], requireAdmin func(http.Handler) http.Handler) chi.Router {
	return resourceapi.Routes(h, requireAdmin)
}
