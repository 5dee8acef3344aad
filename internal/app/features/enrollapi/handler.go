// Package enrollapi serves the public enrollment form, its admin-side lead
// management endpoints, and the public enrollment count.
//
// A successful enrollment bumps the site-stats customer counter. The bump is
// a separate write from the enrollment insert: if it fails the enrollment
// still stands, and the failure is logged for reconciliation.
package enrollapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/coursecms/internal/app/store/sitestats"
	"github.com/dalemusser/coursecms/internal/app/system/inputval"
	"github.com/dalemusser/coursecms/internal/app/system/jsonutil"
	"github.com/dalemusser/coursecms/internal/app/system/resourceapi"
	"github.com/dalemusser/coursecms/internal/app/system/sanitize"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type enrollInput struct {
	Name    string `validate:"required,max=100" label:"Name" json:"name"`
	Email   string `validate:"required,lenientemail" label:"Email" json:"email"`
	Phone   string `validate:"required,enrollphone" label:"Phone" json:"phone"`
	Course  string `validate:"required,max=200" label:"Course" json:"course"`
	Message string `validate:"max=2000" label:"Message" json:"message"`
}

func parse(r *http.Request) (models.Enroll, *inputval.Result) {
	var in enrollInput
	if err := jsonutil.Decode(r, &in); err != nil {
		res := &inputval.Result{}
		res.Add("body", "Invalid JSON payload.")
		return models.Enroll{}, res
	}
	in.Name = sanitize.Text(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Course = sanitize.Text(in.Course)
	in.Message = sanitize.Text(in.Message)

	doc := models.Enroll{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   inputval.DigitsOnly(in.Phone), // stored as bare digits
		Course:  in.Course,
		Message: in.Message,
	}
	return doc, inputval.Validate(in)
}

// NewHandler creates the enrollment handler. stats receives the customer
// counter bump after each successful enrollment.
func NewHandler(db *mongo.Database, stats *sitestats.Store, logger *zap.Logger, dev bool) *resourceapi.Handler[models.Enroll] {
	desc := resourceapi.Descriptor[models.Enroll]{
		Name:           "enrollment",
		Collection:     "enrollments",
		PublicCreate:   true,
		PrivateRead:    true,
		CreatedMessage: "Thank you for enrolling. We will contact you soon.",
		Parse:          parse,
		Fields: func(doc models.Enroll) bson.M {
			return bson.M{
				"name":    doc.Name,
				"email":   doc.Email,
				"phone":   doc.Phone,
				"course":  doc.Course,
				"message": doc.Message,
			}
		},
		Meta: func(doc *models.Enroll) *models.Meta { return &doc.Meta },
	}

	h := resourceapi.NewHandler(desc, db, nil, logger, dev)
	h.AfterCreate = func(ctx context.Context) error {
		return stats.IncrementCustomers(ctx)
	}
	return h
}

// Count handles GET /count, the public enrollment tally shown on the site.
func Count(h *resourceapi.Handler[models.Enroll], logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := h.Store.Count(r.Context())
		if err != nil {
			logger.Error("failed to count enrollments", zap.Error(err))
			jsonutil.InternalError(w, "Failed to count enrollments.")
			return
		}
		jsonutil.OK(w, map[string]int64{"count": n})
	}
}
