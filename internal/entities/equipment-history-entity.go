package entities

import (
	"time"

	"equipment-tracker/pkg/constants"
)

// HistoryEntry is one immutable audit record of an equipment change.
type HistoryEntry struct {
	ID           string                     `json:"id"`
	EquipmentID  string                     `json:"equipment_id"`
	UserID       string                     `json:"user_id"`
	UserName     string                     `json:"user_name"`
	Action       constants.HistoryAction    `json:"action"`
	FromStatus   *constants.EquipmentStatus `json:"from_status,omitempty"`
	ToStatus     *constants.EquipmentStatus `json:"to_status,omitempty"`
	FromLocation *string                    `json:"from_location,omitempty"`
	ToLocation   *string                    `json:"to_location,omitempty"`
	Timestamp    time.Time                  `json:"timestamp"`
	Notes        string                     `json:"notes"`
}
