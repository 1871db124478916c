package controllers

import (
	"fmt"
	"net/http"
	"time"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/services"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	excelService     services.EquipmentExcelServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	service services.EquipmentServiceInterface,
	excelService services.EquipmentExcelServiceInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: service,
		excelService:     excelService,
		logger:           logger,
	}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	var filter dto.EquipmentFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid filter parameters", err, nil), c.logger)
	}
	if err := ctx.Validate(&filter); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res := c.equipmentService.GetEquipments(ctx.Request().Context(), filter)
	return utils.SuccessResponse(ctx, res, "Equipment list loaded", http.StatusOK, uint64(len(res)))
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id := ctx.Param("id")
	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Equipment not found", err, map[string]interface{}{"id": id}),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Equipment found", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateEquipment: bind failed", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateEquipment: service failed", zap.Any("payload", payload), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not create equipment", err, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Equipment created", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id := ctx.Param("id")
	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not update equipment", err, map[string]interface{}{"id": id}),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Equipment updated", http.StatusOK)
}

func (c *EquipmentController) UpdateStatus(ctx echo.Context) error {
	id := ctx.Param("id")
	var payload dto.UpdateEquipmentStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateStatus(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not update equipment status", err, map[string]interface{}{"id": id}),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Equipment status updated", http.StatusOK)
}

func (c *EquipmentController) UpdateLocation(ctx echo.Context) error {
	id := ctx.Param("id")
	var payload dto.UpdateEquipmentLocationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateLocation(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not move equipment", err, map[string]interface{}{"id": id}),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Equipment location updated", http.StatusOK)
}

func (c *EquipmentController) Assign(ctx echo.Context) error {
	id := ctx.Param("id")
	var payload dto.AssignEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.Assign(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not assign equipment", err, map[string]interface{}{"id": id}),
			c.logger,
		)
	}
	message := "Equipment assigned"
	if payload.AssignedTo.String == "" {
		message = "Equipment returned"
	}
	return utils.SuccessResponse(ctx, res, message, http.StatusOK)
}

func (c *EquipmentController) GetHistory(ctx echo.Context) error {
	id := ctx.Param("id")
	res, err := c.equipmentService.GetHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not load equipment history", err, map[string]interface{}{"id": id}),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Equipment history loaded", http.StatusOK, uint64(len(res)))
}

func (c *EquipmentController) GetAllHistory(ctx echo.Context) error {
	res := c.equipmentService.GetAllHistory(ctx.Request().Context())
	return utils.SuccessResponse(ctx, res, "History loaded", http.StatusOK, uint64(len(res)))
}

func (c *EquipmentController) Export(ctx echo.Context) error {
	f, err := c.excelService.Export(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not build the export file", err, nil),
			c.logger,
		)
	}
	defer f.Close()

	fileName := fmt.Sprintf("equipment_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func (c *EquipmentController) Import(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "File is required in the 'file' form field", err, nil),
			c.logger,
		)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Could not open the uploaded file", err, nil),
			c.logger,
		)
	}
	defer src.Close()

	res, err := c.excelService.Import(ctx.Request().Context(), src)
	if err != nil {
		c.logger.Error("Import: failed", zap.String("file", fileHeader.Filename), zap.Error(err))
		var details map[string]interface{}
		if res != nil {
			// rows before the failing one are already committed
			details = map[string]interface{}{
				"imported": res.Imported,
				"skipped":  res.Skipped,
				"ids":      res.IDs,
			}
		}
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not import equipment", err, details),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Equipment imported", http.StatusOK)
}
