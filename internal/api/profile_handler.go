package api

import (
	"net/http"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ProfileHandler handles the authenticated profile endpoints
type ProfileHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(services *service.Services, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		services: services,
		log:      log.With().Str("handler", "profile").Logger(),
	}
}

// Get handles GET /api/profile/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.services.Profile.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, user, "")
}

// Update handles PUT /api/profile/:id
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var update models.ProfileUpdate
	if !bindJSON(c, &update) {
		return
	}
	user, err := h.services.Profile.Update(c.Request.Context(), actorFrom(c), id, &update)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, user, "Profile updated successfully")
}

// UpdatePicture handles POST /api/profile/:id/profile-picture with a
// multipart "profile_picture" file
func (h *ProfileHandler) UpdatePicture(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("profile_picture")
	if err != nil {
		respondFail(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer file.Close()

	user, err := h.services.Profile.UpdatePicture(c.Request.Context(), actorFrom(c), id, file, header.Filename)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, user, "Profile picture updated successfully")
}
