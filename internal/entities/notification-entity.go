package entities

import (
	"time"

	"equipment-tracker/pkg/constants"
)

type Notification struct {
	ID                 string                     `json:"id"`
	UserID             string                     `json:"user_id"`
	Title              string                     `json:"title"`
	Message            string                     `json:"message"`
	Type               constants.NotificationType `json:"type"`
	RelatedEquipmentID *string                    `json:"related_equipment_id,omitempty"`
	CreatedAt          time.Time                  `json:"created_at"`
	IsRead             bool                       `json:"is_read"`
}

const (
	ToastDefault     = "default"
	ToastDestructive = "destructive"
)

// Toast is a transient user-facing message raised by a ledger operation. Never persisted.
type Toast struct {
	UserID      string `json:"user_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}
