package transport

import (
	"net/http"
	"time"

	"github.com/eventninja/eventninja/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(templatesGlob, adminToken string, requestTimeout time.Duration, eventHandler *EventHandler, registrationHandler *RegistrationHandler, adminHandler *AdminHandler) *gin.Engine {

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(middleware.Session())

	router.LoadHTMLGlob(templatesGlob)

	// Public routes
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/events")
	})
	router.GET("/events", eventHandler.ListEvents)
	router.GET("/events/:id", eventHandler.ShowEvent)
	router.POST("/register", registrationHandler.Register)

	// Admin routes
	admin := router.Group("/admin", middleware.RequireEditPermission(adminToken))
	{
		admin.GET("/events", adminHandler.ListEvents)
		admin.GET("/events/new", adminHandler.NewEvent)
		admin.POST("/events", adminHandler.CreateEvent)
		admin.GET("/events/:id/edit", adminHandler.EditEvent)
		admin.POST("/events/:id", adminHandler.SaveEvent)
		admin.GET("/registrations", adminHandler.ListRegistrations)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return router
}
