package dto

import "equipment-tracker/internal/entities"

type CountDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type EquipmentTotalsDTO struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	InUse     int `json:"in_use"`
	Damaged   int `json:"damaged"`
}

type RequestTotalsDTO struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Denied    int `json:"denied"`
	Completed int `json:"completed"`
}

type DamageTotalsDTO struct {
	Reported int `json:"reported"`
	InRepair int `json:"in_repair"`
	Resolved int `json:"resolved"`
	Active   int `json:"active"`
}

type MaintenanceTotalsDTO struct {
	Overdue int `json:"overdue"`
	DueSoon int `json:"due_soon"`
	OK      int `json:"ok"`
}

type DailyActivityDTO struct {
	Date     string `json:"date"`
	Assigned int    `json:"assigned"`
	Returned int    `json:"returned"`
	Moved    int    `json:"moved"`
}

type DashboardDTO struct {
	Equipment           EquipmentTotalsDTO      `json:"equipment"`
	ByCategory          []CountDTO              `json:"by_category"`
	ByLocation          []CountDTO              `json:"by_location"`
	Requests            RequestTotalsDTO        `json:"requests"`
	DamageReports       DamageTotalsDTO         `json:"damage_reports"`
	Maintenance         MaintenanceTotalsDTO    `json:"maintenance"`
	DailyActivity       []DailyActivityDTO      `json:"daily_activity"`
	MaintenanceSchedule []entities.Equipment    `json:"maintenance_schedule"`
	MaintenanceHistory  []entities.HistoryEntry `json:"maintenance_history"`
	RecentActivity      []entities.HistoryEntry `json:"recent_activity"`
}

type ImportResultDTO struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	IDs      []string `json:"ids"`
}

type DashboardFilterDTO struct {
	Days int `query:"days" validate:"omitempty,oneof=7 30 90"`
}
