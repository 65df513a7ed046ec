package router

import (
	"github.com/gin-gonic/gin"

	"pathlight.app/interviews/internal/http/handler"
)

func AvailabilityRouter(router *gin.RouterGroup, handler *handler.InterviewHandler) {
	router.POST("", handler.SubmitAvailability)
	router.POST("/:id/accept", handler.AcceptAvailability)
	router.POST("/:id/decline", handler.DeclineAvailability)
}
