package controllers

import (
	"net/http"

	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"
	appwebsocket "equipment-tracker/pkg/websocket"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketController struct {
	hub    *appwebsocket.Hub
	logger *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, logger: logger}
}

// ServeWs upgrades an authenticated request; the token arrives through AuthMiddleware.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	actor, err := utils.GetActorFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "Unauthorized", err, nil), c.logger)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, actor.ID)
	if !client.Hub.RegisterClient(client) {
		c.logger.Warn("websocket hub stopped, closing connection", zap.String("userID", actor.ID))
		return conn.Close()
	}

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("websocket client connected", zap.String("userID", actor.ID))
	return nil
}
