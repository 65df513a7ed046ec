package router

import (
	"github.com/gin-gonic/gin"

	"pathlight.app/interviews/internal/http/handler"
)

func SlotRouter(router *gin.RouterGroup, handler *handler.InterviewHandler) {
	router.POST("/:id/confirm", handler.ConfirmSlot)
	router.POST("/:id/cancel", handler.CancelSlot)
}
