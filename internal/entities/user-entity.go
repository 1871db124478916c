package entities

import "equipment-tracker/pkg/constants"

type User struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Role       constants.UserRole `json:"role"`
	Department string             `json:"department"`
}
