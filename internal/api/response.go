package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/service"
	"github.com/blogify-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, models.Response{Success: true, Data: data, Message: message})
}

func respondFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.Response{Success: false, Message: message})
}

// respondError maps service errors to HTTP statuses. Anything unknown is
// logged and reported as a generic server error.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var (
		verrs   validation.Errors
		missing *service.NotFoundError
		inUse   *service.TagInUseError
	)

	switch {
	case errors.As(err, &verrs):
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: verrs.Error(),
			Errors:  verrs,
		})
	case errors.As(err, &missing):
		respondFail(c, http.StatusNotFound, missing.Error())
	case errors.As(err, &inUse):
		respondFail(c, http.StatusConflict, inUse.Error())
	case errors.Is(err, service.ErrTagExists):
		respondFail(c, http.StatusConflict, "A tag with this name already exists")
	case errors.Is(err, service.ErrEmailTaken):
		respondFail(c, http.StatusConflict, "Email already in use")
	case errors.Is(err, service.ErrUsernameTaken):
		respondFail(c, http.StatusConflict, "Username already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondFail(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrUnauthorized):
		respondFail(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, service.ErrForbidden):
		respondFail(c, http.StatusForbidden, "You are not allowed to access this resource")
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		respondFail(c, http.StatusInternalServerError, "Server Error")
	}
}

// pathID reads a positive integer path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondFail(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body and answers 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
