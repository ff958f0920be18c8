package handler

import "github.com/gin-gonic/gin"

type Handlers struct {
	Reviews *ReviewHandler
	Media   *MediaHandler
	Names   *NameHandler
	Health  *HealthHandler
}

func RegisterRoutes(router gin.IRouter, h Handlers) {
	router.GET("/health", h.Health.Health)

	api := router.Group("/api")
	{
		api.POST("/reviews", h.Reviews.CreateReview)
		api.GET("/reviews", h.Reviews.ListRecent)
		api.POST("/upload/image", h.Media.UploadImage)
		api.GET("/names/random", h.Names.RandomName)
	}
}
