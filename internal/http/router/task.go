package router

import (
	"github.com/gin-gonic/gin"

	"pathlight.app/interviews/internal/http/handler"
)

func TaskRouter(router *gin.RouterGroup, handler *handler.InterviewHandler) {
	router.GET("", handler.ListTasks)
}
