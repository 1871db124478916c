package dto

import "github.com/aarondl/null/v8"

type CreateEquipmentDTO struct {
	Name                string  `json:"name" validate:"required,max=200"`
	CategoryID          *string `json:"category_id,omitempty"`
	Category            string  `json:"category" validate:"max=100"`
	SerialNumber        string  `json:"serial_number" validate:"required,max=100"`
	Status              string  `json:"status" validate:"omitempty,equipment_status"`
	Location            string  `json:"location" validate:"required,max=200"`
	LastMaintenanceDate string  `json:"last_maintenance_date" validate:"iso_date"`
	NextMaintenanceDate string  `json:"next_maintenance_date" validate:"iso_date"`
	PurchaseDate        string  `json:"purchase_date" validate:"iso_date"`
	Notes               string  `json:"notes"`
}

// UpdateEquipmentDTO is a partial update; absent fields keep their value.
type UpdateEquipmentDTO struct {
	Name                null.String `json:"name" validate:"omitempty,max=200"`
	CategoryID          null.String `json:"category_id"`
	SerialNumber        null.String `json:"serial_number" validate:"omitempty,max=100"`
	LastMaintenanceDate null.String `json:"last_maintenance_date" validate:"omitempty,iso_date"`
	NextMaintenanceDate null.String `json:"next_maintenance_date" validate:"omitempty,iso_date"`
	PurchaseDate        null.String `json:"purchase_date" validate:"omitempty,iso_date"`
	Notes               null.String `json:"notes"`
}

type UpdateEquipmentStatusDTO struct {
	Status string `json:"status" validate:"required,equipment_status"`
	Notes  string `json:"notes"`
}

type UpdateEquipmentLocationDTO struct {
	Location string `json:"location" validate:"required,max=200"`
	Notes    string `json:"notes"`
}

// AssignEquipmentDTO assigns to AssignedTo, or returns the item when it is null or absent.
type AssignEquipmentDTO struct {
	AssignedTo null.String `json:"assigned_to"`
	Notes      string      `json:"notes"`
}

type EquipmentFilterDTO struct {
	Search     string `query:"search"`
	Status     string `query:"status" validate:"omitempty,equipment_status"`
	CategoryID string `query:"category_id"`
	Location   string `query:"location"`
}
