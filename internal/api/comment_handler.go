package api

import (
	"net/http"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var input models.CommentInput
	if !bindJSON(c, &input) {
		return
	}
	comment, err := h.services.Comment.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

// List handles GET /api/comments/:postId/:postType
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	comments, err := h.services.Comment.ListByPost(c.Request.Context(), postID, c.Param("postType"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, comments, "")
}
