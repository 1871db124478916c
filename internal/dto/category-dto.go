package dto

import "github.com/aarondl/null/v8"

type CreateCategoryDTO struct {
	Name             string  `json:"name" validate:"required,max=100"`
	Description      string  `json:"description" validate:"max=500"`
	ParentCategoryID *string `json:"parent_category_id,omitempty"`
}

type UpdateCategoryDTO struct {
	Name             null.String `json:"name" validate:"omitempty,min=1,max=100"`
	Description      null.String `json:"description" validate:"omitempty,max=500"`
	ParentCategoryID null.String `json:"parent_category_id"`
}
