package utils

import (
	"errors"
	"net/http"

	apperrors "equipment-tracker/pkg/errors"
)

var ErrorList = map[error]int{
	apperrors.ErrNotFound:                http.StatusNotFound,
	apperrors.ErrUserNotFound:            http.StatusNotFound,
	apperrors.ErrCategoryInUse:           http.StatusConflict,
	apperrors.ErrInvalidTransition:       http.StatusConflict,
	apperrors.ErrBadRequest:              http.StatusBadRequest,
	apperrors.ErrEmptyAuthHeader:         http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader:       http.StatusUnauthorized,
	apperrors.ErrInvalidToken:            http.StatusUnauthorized,
	apperrors.ErrInvalidSigningMethod:    http.StatusUnauthorized,
	apperrors.ErrTokenExpired:            http.StatusUnauthorized,
	apperrors.ErrTokenNotYetValid:        http.StatusUnauthorized,
	apperrors.ErrUnauthorized:            http.StatusUnauthorized,
	apperrors.ErrUserIDNotFoundInContext: http.StatusUnauthorized,
}

// StatusFor reports the HTTP status registered for err or any error it wraps.
func StatusFor(err error) (int, bool) {
	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return http.StatusBadRequest, true
	}
	for target, statusCode := range ErrorList {
		if errors.Is(err, target) {
			return statusCode, true
		}
	}
	return 0, false
}
