// Package servicecontent serves the service detail page API: description plus
// a bullet point list with a minimum count. Points arrive as a JSON-encoded
// string inside the multipart form.
package servicecontent

import (
	"errors"
	"fmt"
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

type detailInput struct {
	Title       string `validate:"required,max=200" label:"Title" json:"title"`
	Description string `validate:"required" label:"Description" json:"description"`
}

func parse(r *http.Request) (models.ServiceContent, *inputval.Result) {
	in := detailInput{
		Title:       sanitize.Text(r.FormValue("title")),
		Description: sanitize.Text(r.FormValue("description")),
	}
	res := inputval.Validate(in)

	points, err := inputval.ParsePoints(r.FormValue("points"))
	switch {
	case errors.Is(err, inputval.ErrPointsNotJSON):
		res.Add("points", "Points must be a JSON array of strings.")
	case err != nil:
		res.Add("points", "Points are required.")
	case len(points) < inputval.MinPoints:
		res.Add("points", fmt.Sprintf("At least %d points are required.", inputval.MinPoints))
	}

	doc := models.ServiceContent{
		Title:       in.Title,
		Description: in.Description,
		Points:      sanitize.Slice(points),
	}
	return doc, res
}

// NewHandler creates the service detail CRUD handler.
func NewHandler(db *mongo.Database, uploader media.Uploader, logger *zap.Logger, dev bool) *resourceapi.Handler[models.ServiceContent] {
	desc := resourceapi.Descriptor[models.ServiceContent]{
		Name:          "service",
		Collection:    "service_content",
		AcceptsImage:  true,
		ImageRequired: true,
		Parse:         parse,
		Fields: func(doc models.ServiceContent) bson.M {
			return bson.M{
				"title":       doc.Title,
				"description": doc.Description,
				"points":      doc.Points,
			}
		},
		Meta:     func(doc *models.ServiceContent) *models.Meta { return &doc.Meta },
		SetImage: func(doc *models.ServiceContent, obj media.Object) { doc.Image, doc.ImageKey = obj.URL, obj.Key },
		ImageKeyOf: func(doc models.ServiceContent) string { return doc.ImageKey },
	}
	return resourceapi.NewHandler(desc, db, uploader, logger, dev)
}

// Routes returns the service detail endpoints, for mounting at /api/services.
func Routes(h *resourceapi.Handler[models.ServiceContent], requireAdmin func(http.Handler) http.Handler) chi.Router {
	return resourceapi.Routes(h, requireAdmin)
}
