package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-tracker/internal/controllers"
	"equipment-tracker/internal/services"
)

func runEquipmentRouter(
	secure *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	excelService services.EquipmentExcelServiceInterface,
	logger *zap.Logger,
) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, excelService, logger)

	secure.GET("/equipment", equipmentCtrl.GetEquipments)
	secure.POST("/equipment", equipmentCtrl.CreateEquipment)
	secure.GET("/equipment/export", equipmentCtrl.Export)
	secure.POST("/equipment/import", equipmentCtrl.Import)
	secure.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	secure.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment)
	secure.PATCH("/equipment/:id/status", equipmentCtrl.UpdateStatus)
	secure.PATCH("/equipment/:id/location", equipmentCtrl.UpdateLocation)
	secure.PATCH("/equipment/:id/assignment", equipmentCtrl.Assign)
	secure.GET("/equipment/:id/history", equipmentCtrl.GetHistory)
	secure.GET("/history", equipmentCtrl.GetAllHistory)
}
