package entities

import (
	"time"

	"equipment-tracker/pkg/constants"
)

type DamageReport struct {
	ID           string                       `json:"id"`
	EquipmentID  string                       `json:"equipment_id"`
	ReporterID   string                       `json:"reporter_id"`
	ReporterName string                       `json:"reporter_name"`
	ReportDate   time.Time                    `json:"report_date"`
	Description  string                       `json:"description"`
	Status       constants.DamageReportStatus `json:"status"`
	ResolvedDate *time.Time                   `json:"resolved_date,omitempty"`
	Notes        string                       `json:"notes"`
}
