package seeders

import (
	"equipment-tracker/internal/entities"
	"equipment-tracker/pkg/constants"
)

// DefaultUsers is the staff directory offered on the login screen.
func DefaultUsers() []entities.User {
	return []entities.User{
		{ID: "1", Name: "Sarah Johnson", Role: constants.RoleLogisticsStaff, Department: "Logistics"},
		{ID: "2", Name: "Michael Chen", Role: constants.RoleNurse, Department: "Emergency"},
		{ID: "3", Name: "Emily Davis", Role: constants.RoleManager, Department: "Administration"},
	}
}
