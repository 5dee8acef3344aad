package enrollapi

import (
	"net/http"

	"github.com/dalemusser/coursecms/internal/app/system/resourceapi"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes returns the enrollment endpoints, for mounting at /api/enroll.
//
//   - POST   /        submit an enrollment (public)
//   - GET    /count   public enrollment tally
//   - GET    /        list enrollments (admin)
//   - GET    /{id}    fetch one (admin)
//   - PUT    /{id}    update (admin)
//   - DELETE /{id}    delete (admin)
//
// The count route is registered before the generic CRUD routes so it wins
// over the admin-gated GET /{id} pattern.
func Routes(h *resourceapi.Handler[models.Enroll], requireAdmin func(http.Handler) http.Handler, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Get("/count", Count(h, logger))
	r.Mount("/", resourceapi.Routes(h, requireAdmin))
	return r
}
