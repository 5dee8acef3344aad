// Package enrollcourses serves the course picker shown on the enrollment
// form. Admins manage the list; the form reads it.
package enrollcourses

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

type pickerInput struct {
	CourseName string `validate:"required,max=200" label:"Course name" json:"courseName"`
	IsActive   *bool  `json:"isActive"`
}

func parse(r *http.Request) (models.EnrollCourse, *inputval.Result) {
	var in pickerInput
	if err := jsonutil.Decode(r, &in); err != nil {
		res := &inputval.Result{}
		res.Add("body", "Invalid JSON payload.")
		return models.EnrollCourse{}, res
	}
	in.CourseName = sanitize.Text(in.CourseName)

	doc := models.EnrollCourse{CourseName: in.CourseName, IsActive: true}
	if in.IsActive != nil {
		doc.IsActive = *in.IsActive
	}
	return doc, inputval.Validate(in)
}

// NewHandler creates the course picker CRUD handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, dev bool) *resourceapi.Handler[models.EnrollCourse] {
	desc := resourceapi.Descriptor[models.EnrollCourse]{
		Name:       "enroll course",
		Collection: "enroll_courses",
		Parse:      parse,
		Fields: func(doc models.EnrollCourse) bson.M {
			return bson.M{"course_name": doc.CourseName, "is_active": doc.IsActive}
		},
		Meta: func(doc *models.EnrollCourse) *models.Meta { return &doc.Meta },
	}
	return resourceapi.NewHandler(desc, db, nil, logger, dev)
}

// Routes returns the course picker endpoints, for mounting at /api/enroll-courses.
func Routes(h *resourceapi.Handler[models.EnrollCourse], requireAdmin func(http.Handler) http.Handler) chi.Router {
	return resourceapi.Routes(h, requireAdmin)
}
