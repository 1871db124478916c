package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-tracker/internal/controllers"
	"equipment-tracker/pkg/websocket"
)

func runWebSocketRouter(secure *echo.Group, hub *websocket.Hub, logger *zap.Logger) {
	wsCtrl := controllers.NewWebSocketController(hub, logger)
	secure.GET("/ws", wsCtrl.ServeWs)
}
