package api

import (
	"context"
	"net/http"
	"time"

	"github.com/blogify-api/internal/config"
	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. health may be nil.
func NewRouter(services *service.Services, health HealthChecker, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.CORSAllowedOrigin))
	router.Use(bodyLimitMiddleware(cfg.Server.MaxBodyBytes))

	// Handlers
	postHandler := NewPostHandler(services, log)
	tagHandler := NewTagHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	authHandler := NewAuthHandler(services, log)
	profileHandler := NewProfileHandler(services, log)
	siteHandler := NewSiteHandler(services, log)

	requireAuth := authMiddleware(services.Auth)

	router.GET("/health", healthCheck(health))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	api := router.Group("/api")
	{
		posts := api.Group("/posts")
		for _, category := range models.Categories {
			posts.GET("/"+category.CollectionPath(), postHandler.List(category))

			item := posts.Group("/" + string(category))
			item.GET("/related/:id", postHandler.Related(category))
			item.GET("/:id", postHandler.Get(category))
			item.POST("", requireAuth, postHandler.Create(category))
			item.PUT("/:id", requireAuth, postHandler.Update(category))
			item.DELETE("/:id", requireAuth, postHandler.Delete(category))
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.List)
			tags.GET("/usage", tagHandler.Usage)
			tags.GET("/:id", tagHandler.Get)
			tags.POST("", requireAuth, tagHandler.Create)
			tags.PUT("/:id", requireAuth, tagHandler.Update)
			tags.DELETE("/:id", requireAuth, tagHandler.Delete)
		}

		comments := api.Group("/comments")
		{
			comments.POST("", commentHandler.Create)
			comments.GET("/:postId/:postType", commentHandler.List)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		profile := api.Group("/profile", requireAuth)
		{
			profile.GET("/:id", profileHandler.Get)
			profile.PUT("/:id", profileHandler.Update)
			profile.POST("/:id/profile-picture", profileHandler.UpdatePicture)
		}

		api.POST("/contact", siteHandler.Contact)
		api.GET("/stats", siteHandler.Stats)
	}

	return router
}

// healthCheck returns the health status, including the database when known
func healthCheck(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health.HealthCheck(ctx); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "blogify-api",
		})
	}
}
