// Package authapi serves admin login. A successful login returns a signed,
// expiring bearer token; every state-changing content endpoint requires it.
package authapi

import (
	"errors"
	"net/http"
	"time"

	userstore "github.com/dalemusser/coursecms/internal/app/store/users"
	"github.com/dalemusser/coursecms/internal/app/system/auth"
	"github.com/dalemusser/coursecms/internal/app/system/authutil"
	"github.com/dalemusser/coursecms/internal/app/system/inputval"
	"github.com/dalemusser/coursecms/internal/app/system/jsonutil"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the auth endpoints.
type Handler struct {
	users  *userstore.Store
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(users *userstore.Store, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{users: users, tokens: tokens, logger: logger}
}

type loginInput struct {
	Email    string `validate:"required,lenientemail" label:"Email" json:"email"`
	Password string `validate:"required" label:"Password" json:"password"`
}

// loginResponse is the data payload of a successful login.
type loginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      models.AdminUser `json:"user"`
}

// Login handles POST /login. Unknown email and wrong password return the
// same message so the endpoint cannot be used to probe for accounts.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload.")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		jsonutil.ValidationFail(w, res.First(), res.Errors)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), in.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.Unauthorized(w, "Invalid email or password.")
			return
		}
		h.logger.Error("login lookup failed", zap.Error(err))
		jsonutil.InternalError(w, "Login failed.")
		return
	}

	if !authutil.CheckPassword(in.Password, user.PasswordHash) {
		jsonutil.Unauthorized(w, "Invalid email or password.")
		return
	}

	token, expires, err := h.tokens.Issue(*user)
	if err != nil {
		h.logger.Error("token issue failed", zap.String("email", user.Email), zap.Error(err))
		jsonutil.InternalError(w, "Login failed.")
		return
	}

	jsonutil.OKMessage(w, "Login successful.", loginResponse{
		Token:     token,
		ExpiresAt: expires,
		User:      *user,
	})
}

// Me handles GET /me, returning the account behind the presented token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.CurrentClaims(r)
	if !ok {
		jsonutil.Unauthorized(w, "Authentication required.")
		return
	}
	user, err := h.users.GetByEmail(r.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.Unauthorized(w, "Account no longer exists.")
			return
		}
		h.logger.Error("me lookup failed", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load account.")
		return
	}
	jsonutil.OK(w, user)
}

// Routes returns the auth endpoints, for mounting at /api/auth.
func Routes(h *Handler, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.With(requireAdmin).Get("/me", h.Me)
	return r
}
