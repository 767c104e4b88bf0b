// Package httpapi exposes the Framez services over a JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/framezhq/framez/internal/common"
	"github.com/framezhq/framez/internal/logging"
	"github.com/framezhq/framez/internal/server/services"
)

const healthCheckTimeout = 2 * time.Second

// Router wires HTTP endpoints to services.
type Router struct {
	mux      *http.ServeMux
	logger   logging.Logger
	auth     *services.AuthService
	posts    *services.PostService
	dbHealth func(context.Context) error
}

// NewRouter assembles routes with dependencies. dbHealth may be nil, in
// which case /healthz only reports process liveness.
func NewRouter(logger logging.Logger, auth *services.AuthService, posts *services.PostService, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		logger:   logger.With("module", "httpapi"),
		auth:     auth,
		posts:    posts,
		dbHealth: dbHealth,
	}
	r.register()
	return r
}

// ServeHTTP delegates to the underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) register() {
	r.mux.HandleFunc("GET /healthz", r.handleHealthz)
	r.mux.HandleFunc("POST /api/auth/register", r.handleRegister)
	r.mux.HandleFunc("POST /api/auth/login", r.handleLogin)
	r.mux.HandleFunc("GET /api/users/{id}", r.handleGetUser)
	r.mux.HandleFunc("GET /api/users/{id}/posts", r.handleUserPosts)
	r.mux.HandleFunc("POST /api/posts", r.handleCreatePost)
	r.mux.HandleFunc("GET /api/posts", r.handleAllPosts)
	r.mux.HandleFunc("POST /api/uploads", r.handleGenerateUpload)
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := r.auth.Register(req.Context(), payload.Email, payload.Name, payload.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusConflict, common.MsgDuplicateEmail)
			return
		}
		r.logger.Error(req.Context(), "register failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	r.logger.Info(req.Context(), "user registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := r.auth.Login(req.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, common.MsgInvalidCredentials)
			return
		}
		r.logger.Error(req.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	r.logger.Info(req.Context(), "user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (r *Router) handleGetUser(w http.ResponseWriter, req *http.Request) {
	user, err := r.auth.GetUserByID(req.Context(), req.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		// absent is null for the service; the HTTP edge renders it as 404
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (r *Router) handleUserPosts(w http.ResponseWriter, req *http.Request) {
	posts, err := r.posts.GetUserPosts(req.Context(), req.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (r *Router) handleCreatePost(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		UserID         string `json:"userId"`
		Content        string `json:"content"`
		ImageStorageID string `json:"imageStorageId"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	id, err := r.posts.CreatePost(req.Context(), payload.UserID, payload.Content, payload.ImageStorageID)
	if err != nil {
		r.logger.Error(req.Context(), "create post failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (r *Router) handleAllPosts(w http.ResponseWriter, req *http.Request) {
	posts, err := r.posts.GetAllPosts(req.Context())
	if err != nil {
		r.logger.Error(req.Context(), "list posts failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (r *Router) handleGenerateUpload(w http.ResponseWriter, req *http.Request) {
	key, url, err := r.posts.GenerateUploadURL(req.Context())
	if err != nil {
		r.logger.Error(req.Context(), "generate upload url failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"storageId": key,
		"uploadUrl": url,
	})
}
