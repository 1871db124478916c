package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-tracker/internal/controllers"
	"equipment-tracker/internal/services"
)

func runCategoryRouter(secure *echo.Group, categoryService services.CategoryServiceInterface, logger *zap.Logger) {
	categoryCtrl := controllers.NewCategoryController(categoryService, logger)

	secure.GET("/categories", categoryCtrl.GetCategories)
	secure.POST("/categories", categoryCtrl.CreateCategory)
	secure.PUT("/categories/:id", categoryCtrl.UpdateCategory)
	secure.DELETE("/categories/:id", categoryCtrl.DeleteCategory)
}
