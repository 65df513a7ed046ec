package router

import (
	"github.com/gin-gonic/gin"

	"pathlight.app/interviews/internal/http/handler"
)

func ApplicationRouter(router *gin.RouterGroup, handler *handler.InterviewHandler) {
	router.POST("/:id/slots", handler.PostApplicationSlots)
	router.POST("/:id/interview/complete", handler.CompleteApplicationInterview)
	router.POST("/:id/interview/note", handler.SaveApplicationNote)
}
