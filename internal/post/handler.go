package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/chirp/internal/sqlerr"
	"github.com/fkhayef/chirp/pkg/middleware"
	"github.com/fkhayef/chirp/pkg/response"
	"github.com/fkhayef/chirp/pkg/validation"
)

// Handler handles HTTP requests for post operations
type Handler struct {
	service *Service
}

// NewHandler creates a new post handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for post endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// Create handles POST /posts
// @Summary      Create a post
// @Description  Create a post authored by the acting user
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        X-User-ID header int true "Acting user ID"
// @Param        request body CreatePostRequest true "Post creation request"
// @Success      201 {object} response.APIResponse{data=PostResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /posts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	req.UserID = userID

	if fields := validation.Struct(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	post, err := h.service.Create(r.Context(), &req)
	if err != nil {
		sqlerr.Respond(w, r, err, "post")
		return
	}

	response.JSON(w, http.StatusCreated, post.ToResponse())
}

// GetByID handles GET /posts/{id}
// @Summary      Get post by ID
// @Description  Get a single post with its author
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} response.APIResponse{data=PostResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /posts/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	post, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		sqlerr.Respond(w, r, err, "post")
		return
	}
	if post == nil {
		response.NotFound(w, ErrPostNotFound.Error())
		return
	}

	response.JSON(w, http.StatusOK, post.ToResponse())
}

// List handles GET /posts
// @Summary      List all posts
// @Description  Get every post with its author, newest first
// @Tags         posts
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]PostResponse}
// @Router       /posts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		sqlerr.Respond(w, r, err, "post")
		return
	}

	postResponses := make([]*PostResponse, len(posts))
	for i, post := range posts {
		postResponses[i] = post.ToResponse()
	}

	response.JSON(w, http.StatusOK, postResponses)
}

// Update handles PUT /posts/{id}
// @Summary      Edit a post
// @Description  Replace the content of a post; only its author may do this
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        X-User-ID header int true "Acting user ID"
// @Param        id path int true "Post ID"
// @Param        request body UpdatePostRequest true "Post update request"
// @Success      200 {object} response.APIResponse{data=PostResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /posts/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if fields := validation.Struct(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	post, err := h.service.Update(r.Context(), userID, id, req.Content)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, post.ToResponse())
}

// Delete handles DELETE /posts/{id}
// @Summary      Delete a post
// @Description  Delete a post; only its author may do this
// @Tags         posts
// @Produce      json
// @Param        X-User-ID header int true "Acting user ID"
// @Param        id path int true "Post ID"
// @Success      200 {object} response.APIResponse{data=PostResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /posts/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	post, err := h.service.Delete(r.Context(), userID, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, post.ToResponse())
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotAuthor) {
		response.Error(w, http.StatusForbidden, "FORBIDDEN", err.Error())
		return
	}
	sqlerr.Respond(w, r, err, "post")
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return 0, false
	}
	return id, true
}
