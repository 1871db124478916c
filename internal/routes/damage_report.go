package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-tracker/internal/controllers"
	"equipment-tracker/internal/services"
)

func runDamageReportRouter(secure *echo.Group, damageReportService services.DamageReportServiceInterface, logger *zap.Logger) {
	damageCtrl := controllers.NewDamageReportController(damageReportService, logger)

	secure.GET("/damage-reports", damageCtrl.GetDamageReports)
	secure.POST("/damage-reports", damageCtrl.ReportDamage)
	secure.PATCH("/damage-reports/:id/status", damageCtrl.UpdateStatus)
}
