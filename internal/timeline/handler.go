package timeline

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/chirp/internal/sqlerr"
	"github.com/fkhayef/chirp/pkg/response"
)

// Handler handles HTTP requests for profile views and the feed
type Handler struct {
	service *Service
}

// NewHandler creates a new timeline handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for profile endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/posts", h.Posts)
		r.Get("/likes", h.Likes)
		r.Get("/timeline", h.Timeline)
	})

	return r
}

// Posts handles GET /profiles/{id}/posts
// @Summary      Get a user's posts
// @Description  Get a user together with the posts they wrote, newest first
// @Tags         profiles
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} response.APIResponse{data=UserWithPosts}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /profiles/{id}/posts [get]
func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	view, err := h.service.UserWithPosts(r.Context(), id)
	if err != nil {
		sqlerr.Respond(w, r, err, "user")
		return
	}
	if view == nil {
		response.NotFound(w, ErrUserNotFound.Error())
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Likes handles GET /profiles/{id}/likes
// @Summary      Get a user's liked posts
// @Description  Get a user together with the posts they liked
// @Tags         profiles
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} response.APIResponse{data=UserWithLikedPosts}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /profiles/{id}/likes [get]
func (h *Handler) Likes(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	view, err := h.service.UserWithLikedPosts(r.Context(), id)
	if err != nil {
		sqlerr.Respond(w, r, err, "user")
		return
	}
	if view == nil {
		response.NotFound(w, ErrUserNotFound.Error())
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Timeline handles GET /profiles/{id}/timeline
// @Summary      Get a user's timeline
// @Description  Get a user with their retweets and their posts and retweets merged into one timeline
// @Tags         profiles
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} response.APIResponse{data=UserWithRetweets}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /profiles/{id}/timeline [get]
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	view, err := h.service.UserWithRetweets(r.Context(), id)
	if err != nil {
		sqlerr.Respond(w, r, err, "user")
		return
	}
	if view == nil {
		response.NotFound(w, ErrUserNotFound.Error())
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Feed handles GET /feed
// @Summary      Get the global feed
// @Description  Get every post expanded with one entry per retweet
// @Tags         feed
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]FeedEntry}
// @Router       /feed [get]
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Feed(r.Context())
	if err != nil {
		sqlerr.Respond(w, r, err, "post")
		return
	}

	response.JSON(w, http.StatusOK, entries)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return 0, false
	}
	return id, true
}
