package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-tracker/internal/controllers"
	"equipment-tracker/internal/services"
)

func runAuthRouter(public *echo.Group, secure *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)

	public.POST("/auth/login", authCtrl.Login)
	public.GET("/auth/users", authCtrl.ListUsers)
	secure.GET("/auth/me", authCtrl.Me)
}
