package api

import (
	"net/http"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PostHandler serves the blog, news and story endpoints. Each method
// returns a handler bound to one category.
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// List handles GET /api/posts/{blogs|news|stories}
func (h *PostHandler) List(category models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := h.services.Post.List(c.Request.Context(), category)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		respond(c, http.StatusOK, posts, "")
	}
}

// Get handles GET /api/posts/{category}/:id
func (h *PostHandler) Get(category models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		post, err := h.services.Post.Get(c.Request.Context(), category, id)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		respond(c, http.StatusOK, post, "")
	}
}

// Create handles POST /api/posts/{category}
func (h *PostHandler) Create(category models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.PostInput
		if !bindJSON(c, &input) {
			return
		}
		post, err := h.services.Post.Create(c.Request.Context(), category, &input)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		respond(c, http.StatusCreated, post, category.Label()+" created successfully")
	}
}

// Update handles PUT /api/posts/{category}/:id
func (h *PostHandler) Update(category models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var input models.PostInput
		if !bindJSON(c, &input) {
			return
		}
		post, err := h.services.Post.Update(c.Request.Context(), category, id, &input)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		respond(c, http.StatusOK, post, category.Label()+" updated successfully")
	}
}

// Delete handles DELETE /api/posts/{category}/:id
func (h *PostHandler) Delete(category models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := h.services.Post.Delete(c.Request.Context(), category, id); err != nil {
			respondError(c, h.log, err)
			return
		}
		respond(c, http.StatusOK, nil, category.Label()+" deleted successfully")
	}
}

// Related handles GET /api/posts/{category}/related/:id?limit=&tags=
func (h *PostHandler) Related(category models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		query, err := service.ParseRelatedQuery(c.Query("tags"), c.Query("limit"))
		if err != nil {
			respondError(c, h.log, err)
			return
		}

		related, err := h.services.Post.Related(c.Request.Context(), category, id, query)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		respond(c, http.StatusOK, related, "")
	}
}
