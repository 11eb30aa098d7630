package api

import (
	"net/http"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.services.Auth.Register(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, user, "User registered successfully")
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := h.services.Auth.Login(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, result, "Login successful")
}
