package router

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-registry-service/api/swagger"
	"user-registry-service/internal/adapter/gin/handler"
	"user-registry-service/internal/adapter/gin/middleware"
)

// Options carries the optional collaborators of the router.
type Options struct {
	ServiceName string
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	Views       *template.Template      // nil disables HTML pages
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(userHandler *handler.UserHandler, opts Options, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(opts.RateLimiter.Middleware())

	if opts.Views != nil {
		router.SetHTMLTemplate(opts.Views)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	// API documentation
	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", swagger.Spec)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/openapi.json"),
	)))

	router.GET("/", userHandler.Home)
	router.GET("/users", userHandler.ListUsers)

	users := router.Group("/user")
	{
		users.POST("/:username/:age", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUserByQuery)
		users.PUT("/:id/:username/:age", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return router
}
