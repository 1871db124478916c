package entities

import "equipment-tracker/pkg/constants"

type Equipment struct {
	ID                  string                    `json:"id"`
	Name                string                    `json:"name"`
	CategoryID          *string                   `json:"category_id,omitempty"`
	Category            string                    `json:"category"`
	SerialNumber        string                    `json:"serial_number"`
	Status              constants.EquipmentStatus `json:"status"`
	Location            string                    `json:"location"`
	AssignedTo          *string                   `json:"assigned_to"`
	LastMaintenanceDate string                    `json:"last_maintenance_date"`
	NextMaintenanceDate string                    `json:"next_maintenance_date"`
	PurchaseDate        string                    `json:"purchase_date"`
	Notes               string                    `json:"notes"`
}
