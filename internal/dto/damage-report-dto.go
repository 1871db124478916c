package dto

type CreateDamageReportDTO struct {
	EquipmentID string `json:"equipment_id" validate:"required"`
	ReportDate  string `json:"report_date" validate:"iso_date"`
	Description string `json:"description" validate:"required,max=2000"`
	Notes       string `json:"notes"`
}

type UpdateDamageReportStatusDTO struct {
	Status string `json:"status" validate:"required,damage_status"`
	Notes  string `json:"notes"`
}

type DamageReportFilterDTO struct {
	EquipmentID string `query:"equipment_id"`
	ReporterID  string `query:"reporter_id"`
	Status      string `query:"status" validate:"omitempty,damage_status"`
}
