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

type DamageReportController struct {
	damageReportService services.DamageReportServiceInterface
	logger              *zap.Logger
}

func NewDamageReportController(damageReportService services.DamageReportServiceInterface, logger *zap.Logger) *DamageReportController {
	return &DamageReportController{damageReportService: damageReportService, logger: logger}
}

func (c *DamageReportController) GetDamageReports(ctx echo.Context) error {
	var filter dto.DamageReportFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid filter parameters", err, nil), c.logger)
	}
	if err := ctx.Validate(&filter); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res := c.damageReportService.GetDamageReports(ctx.Request().Context(), filter)
	return utils.SuccessResponse(ctx, res, "Damage reports loaded", http.StatusOK, uint64(len(res)))
}

func (c *DamageReportController) ReportDamage(ctx echo.Context) error {
	var payload dto.CreateDamageReportDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.damageReportService.ReportDamage(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("ReportDamage: service failed", zap.String("equipmentID", payload.EquipmentID), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not report damage", err, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Damage reported", http.StatusCreated)
}

func (c *DamageReportController) UpdateStatus(ctx echo.Context) error {
	id := ctx.Param("id")
	var payload dto.UpdateDamageReportStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.damageReportService.UpdateStatus(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not update damage report", err, map[string]interface{}{"id": id}),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Damage report updated", http.StatusOK)
}
