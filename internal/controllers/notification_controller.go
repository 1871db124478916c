package controllers

import (
	"net/http"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/services"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewNotificationController(notificationService services.NotificationServiceInterface, logger *zap.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	var filter dto.NotificationFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid filter parameters", err, nil), c.logger)
	}

	res, err := c.notificationService.GetNotifications(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Notifications loaded", http.StatusOK, uint64(len(res)))
}

func (c *NotificationController) CreateNotification(ctx echo.Context) error {
	var payload dto.CreateNotificationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.notificationService.CreateNotification(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not send notification", err, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Notification sent", http.StatusCreated)
}

func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	id := ctx.Param("id")
	res, err := c.notificationService.MarkAsRead(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not mark notification as read", err, map[string]interface{}{"id": id}),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Notification marked as read", http.StatusOK)
}

func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	updated, err := c.notificationService.MarkAllAsRead(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not mark notifications as read", err, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, dto.MarkAllReadResponseDTO{Updated: updated}, "Notifications marked as read", http.StatusOK)
}

// NotifyMaintenanceDue runs the maintenance check; without a recipient the caller is notified.
func (c *NotificationController) NotifyMaintenanceDue(ctx echo.Context) error {
	var payload dto.MaintenanceNotifyDTO
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&payload); err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
		}
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.notificationService.NotifyMaintenanceDue(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Maintenance check failed", err, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Maintenance check complete", http.StatusOK, uint64(len(res)))
}
