// Package careers serves the career listing API. Listings carry bullet points
// like service pages, but the image is optional.
package careers

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

type careerInput struct {
	Title       string `validate:"required,max=200" label:"Title" json:"title"`
	Description string `validate:"required" label:"Description" json:"description"`
}

func parse(r *http.Request) (models.Career, *inputval.Result) {
	in := careerInput{
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

	doc := models.Career{
		Title:       in.Title,
		Description: in.Description,
		Points:      sanitize.Slice(points),
	}
	return doc, res
}

// NewHandler creates the career listing CRUD handler.
func NewHandler(db *mongo.Database, uploader media.Uploader, logger *zap.Logger, dev bool) *resourceapi.Handler[models.Career] {
	desc := resourceapi.Descriptor[models.Career]{
		Name:         "career",
		Collection:   "careers",
		AcceptsImage: true,
		Parse:        parse,
		Fields: func(doc models.Career) bson.M {
			return bson.M{
				"title":       doc.Title,
				"description": doc.Description,
				"points":      doc.Points,
			}
		},
		Meta:     func(doc *models.Career) *models.Meta { return &doc.Meta },
		SetImage: func(doc *models.Career, obj media.Object) { doc.Image, doc.ImageKey = obj.URL, obj.Key },
		ImageKeyOf: func(doc models.Career) string { return doc.ImageKey },
	}
	return resourceapi.NewHandler(desc, db, uploader, logger, dev)
}

// Routes returns the career endpoints, for mounting at /api/careers.
func Routes(h *resourceapi.Handler[models.Career], requireAdmin func(http.Handler) http.Handler) chi.Router {
	return resourceapi.Routes(h, requireAdmin)
}
