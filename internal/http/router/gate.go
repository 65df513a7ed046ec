package router

import (
	"github.com/gin-gonic/gin"

	"pathlight.app/interviews/internal/http/handler"
)

func GateRouter(router *gin.RouterGroup, handler *handler.InterviewHandler) {
	router.POST("/:id/slots", handler.PostGateSlots)
	router.POST("/:id/interview/complete", handler.CompleteGateInterview)
}
