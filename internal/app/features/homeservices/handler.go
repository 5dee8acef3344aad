// Package homeservices serves the home page service card API. Cards carry an
// image, a display position, and an active flag the frontend filters on.
package homeservices

import (
	"net/http"
	"strconv"

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

type cardInput struct {
	Title       string `validate:"required,max=100" label:"Title" json:"title"`
	Description string `validate:"required,max=500" label:"Description" json:"description"`
}

func parse(r *http.Request) (models.HomeService, *inputval.Result) {
	in := cardInput{
		Title:       sanitize.Text(r.FormValue("title")),
		Description: sanitize.Text(r.FormValue("description")),
	}
	res := inputval.Validate(in)

	doc := models.HomeService{
		Title:       in.Title,
		Description: in.Description,
		IsActive:    true,
	}

	if v := r.FormValue("position"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			res.Add("position", "Position must be a non-negative number.")
		} else {
			doc.Position = n
		}
	}
	if v := r.FormValue("isActive"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			res.Add("isActive", "Active flag must be true or false.")
		} else {
			doc.IsActive = active
		}
	}

	return doc, res
}

// NewHandler creates the service card CRUD handler.
func NewHandler(db *mongo.Database, uploader media.Uploader, logger *zap.Logger, dev bool) *resourceapi.Handler[models.HomeService] {
	desc := resourceapi.Descriptor[models.HomeService]{
		Name:          "home service",
		Collection:    "home_services",
		AcceptsImage:  true,
		ImageRequired: true,
		Parse:         parse,
		Fields: func(doc models.HomeService) bson.M {
			return bson.M{
				"title":       doc.Title,
				"description": doc.Description,
				"position":    doc.Position,
				"is_active":   doc.IsActive,
			}
		},
		Meta:     func(doc *models.HomeService) *models.Meta { return &doc.Meta },
		SetImage: func(doc *models.HomeService, obj media.Object) { doc.Image, doc.ImageKey = obj.URL, obj.Key },
		ImageKeyOf: func(doc models.HomeService) string { return doc.ImageKey },
	}
	return resourceapi.NewHandler(desc, db, uploader, logger, dev)
}

// Routes returns the service card endpoints, for mounting at /api/home-services.
func Routes(h *resourceapi.Handler[models.HomeService], requireAdmin func(http.Handler) http.Handler) chi.Router {
	return resourceapi.Routes(h, requireAdmin)
}
