package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/andrzw/userhub/internal/api"
	"github.com/andrzw/userhub/internal/auth"
)

// Handler exposes the user directory over HTTP.
type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// Register attaches all routes to the router, wrapping each gated route in
// the access-control middleware with the role set from the route table.
func (h *Handler) Register(r *mux.Router, gate *auth.Middleware) {
	guard := func(route string, handler http.HandlerFunc) http.Handler {
		if api.Public(route) {
			return handler
		}
		return gate.RequireRoles(api.RequiredRoles[route]...)(handler)
	}

	r.Handle(api.RouteRegister, guard(api.RouteRegister, h.register)).Methods(http.MethodPost)
	r.Handle(api.RouteLogin, guard(api.RouteLogin, h.login)).Methods(http.MethodPost)
	r.Handle(api.RouteUsers, guard(api.RouteUsers, h.createUser)).Methods(http.MethodPost)
	r.Handle(api.RouteUsers, guard(api.RouteUsers, h.listUsers)).Methods(http.MethodGet)
	r.Handle(api.RouteUserByID, guard(api.RouteUserByID, h.getUser)).Methods(http.MethodGet)
	r.Handle(api.RouteUserByID, guard(api.RouteUserByID, h.updateUser)).Methods(http.MethodPut)
	r.Handle(api.RouteUserByID, guard(api.RouteUserByID, h.deleteUser)).Methods(http.MethodDelete)
	r.Handle(api.RouteVerifyEmail, guard(api.RouteVerifyEmail, h.verifyEmail)).Methods(http.MethodGet)
}

type userResponse struct {
	*User
	Links []Link `json:"links"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.log.Info("user registered", zap.String("user_id", user.ID.String()))
	writeJSON(w, http.StatusCreated, userResponse{User: user, Links: UserLinks(api.RouteUsers, user.ID.String())})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	// Same creation path as register; this route is role-gated.
	h.register(w, r)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	// OAuth2 password-grant form field names.
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user, Links: UserLinks(api.RouteUsers, user.ID.String())})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", defaultPageSize)

	page, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user, Links: UserLinks(api.RouteUsers, user.ID.String())})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.VerifyEmail(r.Context(), id, mux.Vars(r)["token"]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully"})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is a persistence or infrastructure failure and
// surfaces as a generic 500 without detail.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentialFormat),
		errors.Is(err, ErrInvalidFieldFormat),
		errors.Is(err, ErrEmptyUpdate),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrDuplicateNickname),
		errors.Is(err, ErrAccountLocked),
		errors.Is(err, ErrInvalidVerificationToken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
