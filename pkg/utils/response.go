package utils

import (
	"errors"
	"net/http"

	apperrors "equipment-tracker/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
	Total   *uint64     `json:"total,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		response.Total = &total[0]
	}
	return ctx.JSON(code, response)
}

// ErrorResponse resolves err to an HTTP status: an *HttpError keeps its own code,
// known sentinel errors map through ErrorList, validation failures answer 400.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code, message, details := resolveError(err)

	if code >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("uri", ctx.Request().RequestURI),
			zap.Error(err),
		)
	} else {
		logger.Warn("request rejected",
			zap.String("method", ctx.Request().Method),
			zap.String("uri", ctx.Request().RequestURI),
			zap.Int("code", code),
			zap.Error(err),
		)
	}

	var body interface{} = struct{}{}
	if len(details) > 0 {
		body = details
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    body,
		Message: message,
	})
}

func resolveError(err error) (int, string, map[string]interface{}) {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		code := httpErr.Code
		if httpErr.Err != nil {
			if mapped, ok := StatusFor(httpErr.Err); ok {
				code = mapped
			}
		}
		return code, httpErr.Message, httpErr.Details
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]interface{}, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return http.StatusBadRequest, "validation failed", map[string]interface{}{"fields": fields}
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return http.StatusBadRequest, invalidInput.Message, nil
	}

	if code, ok := StatusFor(err); ok {
		return code, err.Error(), nil
	}
	return http.StatusInternalServerError, "internal server error", nil
}
