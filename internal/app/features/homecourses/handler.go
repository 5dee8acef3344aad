// Package homecourses serves the home page course teaser API. Text only, no
// images, plain JSON bodies.
package homecourses

import (
	"net/http"

	"github.com/dalemusser/coursecms/internal/app/system/inputval"
	"github.com/dalemusser/coursecms/internal/app/system/jsonutil"
	"github.com/dalemusser/coursecms/internal/app/system/resourceapi"
	"github.com/dalemusser/coursecms/internal/app/system/sanitize"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type courseInput struct {
	Title       string `validate:"required,max=200" label:"Title" json:"title"`
	Description string `validate:"required" label:"Description" json:"description"`
}

func parse(r *http.Request) (models.HomeCourse, *inputval.Result) {
	var in courseInput
	if err := jsonutil.Decode(r, &in); err != nil {
		res := &inputval.Result{}
		res.Add("body", "Invalid JSON payload.")
		return models.HomeCourse{}, res
	}
	in.Title = sanitize.Text(in.Title)
	in.Description = sanitize.Text(in.Description)

	doc := models.HomeCourse{Title: in.Title, Description: in.Description}
	return doc, inputval.Validate(in)
}

// NewHandler creates the course teaser CRUD handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, dev bool) *resourceapi.Handler[models.HomeCourse] {
	desc := resourceapi.Descriptor[models.HomeCourse]{
		Name:       "home course",
		Collection: "home_courses",
		Parse:      parse,
		Fields: func(doc models.HomeCourse) bson.M {
			return bson.M{"title": doc.Title, "description": doc.Description}
		},
		Meta: func(doc *models.HomeCourse) *models.Meta { return &doc.Meta },
	}
	return resourceapi.NewHandler(desc, db, nil, logger, dev)
}

// Routes returns the course teaser endpoints, for mounting at /api/home-courses.
func Routes(h *resourceapi.Handler[models.HomeCourse], requireAdmin func(http.Handler) http.Handler) chi.Router {
	return resourceapi.Routes(h, requireAdmin)
}
