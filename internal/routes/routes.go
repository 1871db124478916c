package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-tracker/internal/services"
	"equipment-tracker/pkg/middleware"
	"equipment-tracker/pkg/service"
	"equipment-tracker/pkg/websocket"
)

type Loggers struct {
	Main *zap.Logger
	Auth *zap.Logger
	HTTP *zap.Logger
}

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth         services.AuthServiceInterface
	Equipment    services.EquipmentServiceInterface
	Excel        services.EquipmentExcelServiceInterface
	Category     services.CategoryServiceInterface
	DamageReport services.DamageReportServiceInterface
	Request      services.EquipmentRequestServiceInterface
	Notification services.NotificationServiceInterface
	Dashboard    services.DashboardServiceInterface
}

func InitRouter(e *echo.Echo, svc *Services, hub *websocket.Hub, jwtSvc service.JWTService, loggers *Loggers) {
	loggers.Main.Info("InitRouter: registering routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, svc.Auth, loggers.Auth)
	runEquipmentRouter(secureGroup, svc.Equipment, svc.Excel, loggers.HTTP)
	runCategoryRouter(secureGroup, svc.Category, loggers.HTTP)
	runDamageReportRouter(secureGroup, svc.DamageReport, loggers.HTTP)
	runRequestRouter(secureGroup, svc.Request, loggers.HTTP)
	runNotificationRouter(secureGroup, svc.Notification, loggers.HTTP)
	runDashboardRouter(secureGroup, svc.Dashboard, loggers.HTTP)
	runWebSocketRouter(secureGroup, hub, loggers.Main)

	loggers.Main.Info("InitRouter: routes registered", zap.Int("count", len(e.Routes())))
}
