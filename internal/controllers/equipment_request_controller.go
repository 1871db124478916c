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

type EquipmentRequestController struct {
	requestService services.EquipmentRequestServiceInterface
	logger         *zap.Logger
}

func NewEquipmentRequestController(requestService services.EquipmentRequestServiceInterface, logger *zap.Logger) *EquipmentRequestController {
	return &EquipmentRequestController{requestService: requestService, logger: logger}
}

func (c *EquipmentRequestController) GetRequests(ctx echo.Context) error {
	var filter dto.RequestFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid filter parameters", err, nil), c.logger)
	}
	if err := ctx.Validate(&filter); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res := c.requestService.GetRequests(ctx.Request().Context(), filter)
	return utils.SuccessResponse(ctx, res, "Requests loaded", http.StatusOK, uint64(len(res)))
}

func (c *EquipmentRequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateEquipmentRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.CreateRequest(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not create request", err, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Request submitted", http.StatusCreated)
}

func (c *EquipmentRequestController) UpdateStatus(ctx echo.Context) error {
	id := ctx.Param("id")
	var payload dto.UpdateRequestStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.UpdateStatus(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not update request", err, map[string]interface{}{"id": id}),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Request updated", http.StatusOK)
}
