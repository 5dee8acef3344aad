// Package contacts serves the public contact form and its admin-side lead
// management endpoints.
//
// The phone policy here is looser than the enrollment form's: separators are
// allowed as long as at least ten digits are present.
package contacts

import (
	"net/http"
	"strings"

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

type contactInput struct {
	Name    string `validate:"required,max=100" label:"Name" json:"name"`
	Email   string `validate:"required,lenientemail" label:"Email" json:"email"`
	Phone   string `validate:"required,contactphone" label:"Phone" json:"phone"`
	Message string `validate:"required,max=2000" label:"Message" json:"message"`
}

func parse(r *http.Request) (models.Contact, *inputval.Result) {
	var in contactInput
	if err := jsonutil.Decode(r, &in); err != nil {
		res := &inputval.Result{}
		res.Add("body", "Invalid JSON payload.")
		return models.Contact{}, res
	}
	in.Name = sanitize.Text(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = sanitize.Text(in.Message)

	doc := models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}
	return doc, inputval.Validate(in)
}

// NewHandler creates the contact lead handler. Creation is public; listing
// and deletion require an admin token.
func NewHandler(db *mongo.Database, logger *zap.Logger, dev bool) *resourceapi.Handler[models.Contact] {
	desc := resourceapi.Descriptor[models.Contact]{
		Name:           "contact",
		Collection:     "contacts",
		PublicCreate:   true,
		PrivateRead:    true,
		CreatedMessage: "Thank you for contacting us. We will get back to you soon.",
		Parse:          parse,
		Fields: func(doc models.Contact) bson.M {
			return bson.M{
				"name":    doc.Name,
				"email":   doc.Email,
				"phone":   doc.Phone,
				"message": doc.Message,
			}
		},
		Meta: func(doc *models.Contact) *models.Meta { return &doc.Meta },
	}
	return resourceapi.NewHandler(desc, db, nil, logger, dev)
}

// Routes returns the contact endpoints, for mounting at /api/contact.
func Routes(h *resourceapi.Handler[models.Contact], requireAdmin func(http.Handler) http.Handler) chi.Router {
	return resourceapi.Routes(h, requireAdmin)
}
