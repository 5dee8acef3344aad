// Package statsapi serves the site-stats singleton: public read, admin write.
// The document is created with seed counts on first access.
package statsapi

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/coursecms/internal/app/store/sitestats"
	"github.com/dalemusser/coursecms/internal/app/store/storeutil"
	"github.com/dalemusser/coursecms/internal/app/system/inputval"
	"github.com/dalemusser/coursecms/internal/app/system/jsonutil"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the stats endpoints.
type Handler struct {
	store  *sitestats.Store
	logger *zap.Logger
}

// NewHandler creates a stats handler over the singleton store.
func NewHandler(store *sitestats.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Get handles GET /, returning the counters and seeding the document if this
// is the first access.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Get(r.Context())
	if err != nil {
		h.fail(w, "load stats", err)
		return
	}
	jsonutil.OK(w, stats)
}

// Update handles PUT /. The body is a JSON object of counter fields; unknown
// fields and negative or non-integer values are rejected, naming the
// offending field.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.Number
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload.")
		return
	}
	if len(body) == 0 {
		jsonutil.BadRequest(w, "At least one counter field is required.")
		return
	}

	res := &inputval.Result{}
	fields := make(map[string]int64, len(body))
	for name, value := range body {
		stored, ok := models.StatsFields[name]
		if !ok {
			res.Add(name, name+" is not an updatable counter.")
			continue
		}
		n, err := value.Int64()
		if err != nil || n < 0 {
			res.Add(name, name+" must be a non-negative whole number.")
			continue
		}
		fields[stored] = n
	}
	if res.HasErrors() {
		jsonutil.ValidationFail(w, res.First(), res.Errors)
		return
	}

	stats, err := h.store.Update(r.Context(), fields)
	if err != nil {
		h.fail(w, "update stats", err)
		return
	}
	jsonutil.OKMessage(w, "Stats updated successfully.", stats)
}

func (h *Handler) fail(w http.ResponseWriter, action string, err error) {
	h.logger.Error("stats operation failed", zap.String("action", action), zap.Error(err))
	if storeutil.IsUnavailable(err) {
		jsonutil.Unavailable(w, "Service is temporarily unavailable. Please try again.")
		return
	}
	jsonutil.InternalError(w, "Failed to "+action+".")
}

// Routes returns the stats endpoints, for mounting at /api/stats.
func Routes(h *Handler, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.With(requireAdmin).Put("/", h.Update)
	return r
}
