package api

import (
	"net/http"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TagHandler handles tag endpoints
type TagHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(services *service.Services, log zerolog.Logger) *TagHandler {
	return &TagHandler{
		services: services,
		log:      log.With().Str("handler", "tag").Logger(),
	}
}

// List handles GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.services.Tag.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, tags, "")
}

// Usage handles GET /api/tags/usage
func (h *TagHandler) Usage(c *gin.Context) {
	usage, err := h.services.Tag.Usage(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, usage, "")
}

// Get handles GET /api/tags/:id
func (h *TagHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tag, err := h.services.Tag.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, tag, "")
}

// Create handles POST /api/tags
func (h *TagHandler) Create(c *gin.Context) {
	var input models.TagInput
	if !bindJSON(c, &input) {
		return
	}
	tag, err := h.services.Tag.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, tag, "Tag created successfully")
}

// Update handles PUT /api/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input models.TagInput
	if !bindJSON(c, &input) {
		return
	}
	tag, err := h.services.Tag.Update(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, tag, "Tag updated successfully")
}

// Delete handles DELETE /api/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Tag.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, nil, "Tag deleted successfully")
}
