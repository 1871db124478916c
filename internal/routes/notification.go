package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-tracker/internal/controllers"
	"equipment-tracker/internal/services"
)

func runNotificationRouter(secure *echo.Group, notificationService services.NotificationServiceInterface, logger *zap.Logger) {
	notificationCtrl := controllers.NewNotificationController(notificationService, logger)

	secure.GET("/notifications", notificationCtrl.GetNotifications)
	secure.POST("/notifications", notificationCtrl.CreateNotification)
	secure.PATCH("/notifications/read-all", notificationCtrl.MarkAllAsRead)
	secure.PATCH("/notifications/:id/read", notificationCtrl.MarkAsRead)
	secure.POST("/maintenance/notify", notificationCtrl.NotifyMaintenanceDue)
}
