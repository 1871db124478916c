package utils

import (
	"context"

	"equipment-tracker/pkg/contextkeys"
	apperrors "equipment-tracker/pkg/errors"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// Actor is the authenticated user the request acts on behalf of.
type Actor struct {
	ID   string
	Name string
	Role string
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, actor.ID)
	ctx = context.WithValue(ctx, contextkeys.UserNameKey, actor.Name)
	return context.WithValue(ctx, contextkeys.UserRoleKey, actor.Role)
}

func GetActorFromCtx(ctx context.Context) (Actor, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || id == "" {
		return Actor{}, apperrors.ErrUserIDNotFoundInContext
	}
	name, _ := ctx.Value(contextkeys.UserNameKey).(string)
	role, _ := ctx.Value(contextkeys.UserRoleKey).(string)
	return Actor{ID: id, Name: name, Role: role}, nil
}
