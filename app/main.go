package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"equipment-tracker/internal/ledger"
	"equipment-tracker/internal/listeners"
	"equipment-tracker/internal/repositories"
	"equipment-tracker/internal/routes"
	"equipment-tracker/internal/services"
	"equipment-tracker/pkg/config"
	"equipment-tracker/pkg/customvalidator"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/eventbus"
	applogger "equipment-tracker/pkg/logger"
	appmiddleware "equipment-tracker/pkg/middleware"
	"equipment-tracker/pkg/service"
	"equipment-tracker/pkg/utils"
	"equipment-tracker/pkg/websocket"
	"equipment-tracker/seeders"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.OutputPaths)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(appmiddleware.RequestLogger(logger.Named("http")))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("register custom validations", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// Event plumbing: the ledger publishes, the listener pushes to websocket clients.
	bus := eventbus.New(logger.Named("eventbus"))
	hub := websocket.NewHub(logger.Named("websocket"))
	go hub.Run(ctx)

	wsNotificationService := services.NewWebSocketNotificationService(hub, logger)
	listeners.NewNotificationListener(wsNotificationService, logger.Named("audit")).Register(bus)

	store, closeStore, err := repositories.OpenSnapshotRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open snapshot storage", zap.Error(err), zap.String("storage", cfg.Ledger.Storage))
	}
	defer closeStore()

	ledgerLogger := logger.Named("ledger")
	l := ledger.New(store,
		ledger.WithLogger(ledgerLogger),
		ledger.WithToaster(services.NewBusToaster(bus, ledgerLogger)),
		ledger.WithPublisher(bus),
		ledger.WithSystemActor(cfg.Ledger.SystemActorID, cfg.Ledger.SystemActorName),
	)
	if err := l.Load(ctx); err != nil {
		logger.Fatal("load ledger", zap.Error(err))
	}
	if cfg.Ledger.Seed {
		system := ledger.Actor{ID: cfg.Ledger.SystemActorID, Name: cfg.Ledger.SystemActorName}
		if err := seeders.SeedLedger(ctx, l, system, ledgerLogger); err != nil {
			logger.Fatal("seed ledger", zap.Error(err))
		}
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	users := services.NewStaticUserDirectory(seeders.DefaultUsers())

	svc := &routes.Services{
		Auth:         services.NewAuthService(users, jwtSvc, logger.Named("auth")),
		Equipment:    services.NewEquipmentService(l, logger),
		Excel:        services.NewEquipmentExcelService(l, logger),
		Category:     services.NewCategoryService(l, logger),
		DamageReport: services.NewDamageReportService(l, logger),
		Request:      services.NewEquipmentRequestService(l, logger),
		Notification: services.NewNotificationService(l, cfg.Ledger.MaintenanceWindowDays, logger),
		Dashboard:    services.NewDashboardService(l, cfg.Ledger.MaintenanceWindowDays, time.Now, logger),
	}
	routes.InitRouter(e, svc, hub, jwtSvc, &routes.Loggers{
		Main: logger,
		Auth: logger.Named("auth"),
		HTTP: logger.Named("http"),
	})

	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Ledger.Storage))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	bus.Wait()
}
