package api

import (
	"net/http"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SiteHandler serves the contact form and dashboard counters
type SiteHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(services *service.Services, log zerolog.Logger) *SiteHandler {
	return &SiteHandler{
		services: services,
		log:      log.With().Str("handler", "site").Logger(),
	}
}

// Contact handles POST /api/contact
func (h *SiteHandler) Contact(c *gin.Context) {
	var input models.ContactInput
	if !bindJSON(c, &input) {
		return
	}
	msg, err := h.services.Contact.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, msg, "Message sent successfully")
}

// Stats handles GET /api/stats
func (h *SiteHandler) Stats(c *gin.Context) {
	stats, err := h.services.Stats.Counts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, stats, "")
}
