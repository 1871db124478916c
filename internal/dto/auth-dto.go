package dto

import "equipment-tracker/internal/entities"

type LoginDTO struct {
	UserID string `json:"user_id" validate:"required"`
}

type LoginResponseDTO struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"`
	User        entities.User `json:"user"`
}
