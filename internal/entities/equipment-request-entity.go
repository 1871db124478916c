package entities

import (
	"time"

	"equipment-tracker/pkg/constants"
)

type EquipmentRequest struct {
	ID            string                  `json:"id"`
	EquipmentID   string                  `json:"equipment_id"`
	RequesterID   string                  `json:"requester_id"`
	RequesterName string                  `json:"requester_name"`
	Status        constants.RequestStatus `json:"status"`
	RequestDate   time.Time               `json:"request_date"`
	ApprovedDate  *time.Time              `json:"approved_date,omitempty"`
	CompletedDate *time.Time              `json:"completed_date,omitempty"`
	Reason        string                  `json:"reason"`
	Notes         string                  `json:"notes"`
}
