package router

import (
	"github.com/gin-gonic/gin"

	"pathlight.app/interviews/internal/http/handler"
	"pathlight.app/interviews/internal/http/middleware"
	"pathlight.app/interviews/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	interviews := handler.NewInterviewHandler(
		services.Proposals(),
		services.Availability(),
		services.Confirmation(),
		services.Completion(),
		services.Tasks(),
	)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Principal())
	{
		TaskRouter(v1.Group("/tasks"), interviews)
		ApplicationRouter(v1.Group("/applications"), interviews)
		GateRouter(v1.Group("/gates"), interviews)
		SlotRouter(v1.Group("/slots"), interviews)
		AvailabilityRouter(v1.Group("/availability-requests"), interviews)
	}
}
