package dto

type CreateNotificationDTO struct {
	UserID             string  `json:"user_id" validate:"required"`
	Title              string  `json:"title" validate:"required,max=200"`
	Message            string  `json:"message" validate:"required,max=1000"`
	Type               string  `json:"type" validate:"required,notification_type"`
	RelatedEquipmentID *string `json:"related_equipment_id,omitempty"`
}

type NotificationFilterDTO struct {
	Unread bool `query:"unread"`
}

type MaintenanceNotifyDTO struct {
	RecipientID string `json:"recipient_id"`
	WindowDays  *int   `json:"window_days" validate:"omitempty,min=0,max=365"`
}

type MarkAllReadResponseDTO struct {
	Updated int `json:"updated"`
}
