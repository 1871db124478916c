package websocket

import "time"

const (
	MessageTypeToast        = "toast"
	MessageTypeNotification = "notification"
)

// Envelope is the frame sent to the browser; Type tells it how to read Payload.
type Envelope struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type ToastPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

type NotificationPayload struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Message            string    `json:"message"`
	Type               string    `json:"type"`
	RelatedEquipmentID *string   `json:"related_equipment_id,omitempty"`
	IsRead             bool      `json:"is_read"`
	CreatedAt          time.Time `json:"created_at"`
}
