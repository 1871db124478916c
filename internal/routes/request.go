package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-tracker/internal/controllers"
	"equipment-tracker/internal/services"
)

func runRequestRouter(secure *echo.Group, requestService services.EquipmentRequestServiceInterface, logger *zap.Logger) {
	requestCtrl := controllers.NewEquipmentRequestController(requestService, logger)

	secure.GET("/requests", requestCtrl.GetRequests)
	secure.POST("/requests", requestCtrl.CreateRequest)
	secure.PATCH("/requests/:id/status", requestCtrl.UpdateStatus)
}
