package dto

type CreateEquipmentRequestDTO struct {
	EquipmentID string `json:"equipment_id" validate:"required"`
	Reason      string `json:"reason" validate:"required,max=1000"`
	Notes       string `json:"notes"`
}

type UpdateRequestStatusDTO struct {
	Status string `json:"status" validate:"required,request_status"`
	Notes  string `json:"notes"`
}

type RequestFilterDTO struct {
	EquipmentID string `query:"equipment_id"`
	RequesterID string `query:"requester_id"`
	Status      string `query:"status" validate:"omitempty,request_status"`
}
