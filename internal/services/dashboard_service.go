package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/ledger"
	"equipment-tracker/pkg/constants"
	"equipment-tracker/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultActivityDays  = 7
	recentActivityLimit  = 10
	uncategorisedLabel   = "Uncategorised"
	maintenanceHistoryOn = "maintenance"
	repairHistoryOn      = "repair"
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, filter dto.DashboardFilterDTO) *dto.DashboardDTO
}

type DashboardService struct {
	ledger     *ledger.Ledger
	windowDays int
	now        func() time.Time
	logger     *zap.Logger
}

func NewDashboardService(l *ledger.Ledger, maintenanceWindowDays int, now func() time.Time, logger *zap.Logger) DashboardServiceInterface {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		ledger:     l,
		windowDays: maintenanceWindowDays,
		now:        now,
		logger:     logger,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context, filter dto.DashboardFilterDTO) *dto.DashboardDTO {
	days := filter.Days
	if days <= 0 {
		days = defaultActivityDays
	}
	today := utils.StartOfDay(s.now())

	equipment := s.ledger.ListEquipment(ledger.EquipmentFilter{})
	history := s.ledger.ListHistory()

	out := &dto.DashboardDTO{
		ByCategory:          s.countByCategory(equipment),
		ByLocation:          countByLocation(equipment),
		DailyActivity:       dailyActivity(history, today, days),
		MaintenanceSchedule: []entities.Equipment{},
		MaintenanceHistory:  []entities.HistoryEntry{},
		RecentActivity:      history[:min(len(history), recentActivityLimit)],
	}

	limit := today.AddDate(0, 0, s.windowDays)
	for _, item := range equipment {
		out.Equipment.Total++
		switch item.Status {
		case constants.EquipmentAvailable:
			out.Equipment.Available++
		case constants.EquipmentInUse:
			out.Equipment.InUse++
		case constants.EquipmentDamaged:
			out.Equipment.Damaged++
		}

		due, ok := utils.ParseDate(item.NextMaintenanceDate)
		switch {
		case !ok:
			out.Maintenance.OK++
		case !due.After(today):
			out.Maintenance.Overdue++
			out.MaintenanceSchedule = append(out.MaintenanceSchedule, item)
		case !due.After(limit):
			out.Maintenance.DueSoon++
			out.MaintenanceSchedule = append(out.MaintenanceSchedule, item)
		default:
			out.Maintenance.OK++
		}
	}
	sort.SliceStable(out.MaintenanceSchedule, func(i, j int) bool {
		return out.MaintenanceSchedule[i].NextMaintenanceDate < out.MaintenanceSchedule[j].NextMaintenanceDate
	})

	for _, r := range s.ledger.ListRequests(ledger.RequestFilter{}) {
		switch r.Status {
		case constants.RequestPending:
			out.Requests.Pending++
		case constants.RequestApproved:
			out.Requests.Approved++
		case constants.RequestDenied:
			out.Requests.Denied++
		case constants.RequestCompleted:
			out.Requests.Completed++
		}
	}

	for _, r := range s.ledger.ListDamageReports(ledger.DamageReportFilter{}) {
		switch r.Status {
		case constants.DamageReported:
			out.DamageReports.Reported++
		case constants.DamageInRepair:
			out.DamageReports.InRepair++
		case constants.DamageResolved:
			out.DamageReports.Resolved++
		}
	}
	out.DamageReports.Active = out.DamageReports.Reported + out.DamageReports.InRepair

	for _, entry := range history {
		notes := strings.ToLower(entry.Notes)
		if strings.Contains(notes, maintenanceHistoryOn) || strings.Contains(notes, repairHistoryOn) {
			out.MaintenanceHistory = append(out.MaintenanceHistory, entry)
		}
	}

	s.logger.Debug("dashboard computed", zap.Int("equipment", out.Equipment.Total), zap.Int("days", days))
	return out
}

// countByCategory lists every known category, including empty ones, then items with no known category.
func (s *DashboardService) countByCategory(equipment []entities.Equipment) []dto.CountDTO {
	categories := s.ledger.ListCategories()
	counts := make([]dto.CountDTO, len(categories))
	byID := make(map[string]int, len(categories))
	byName := make(map[string]int, len(categories))
	for i, c := range categories {
		counts[i] = dto.CountDTO{Name: c.Name}
		byID[c.ID] = i
		byName[c.Name] = i
	}

	uncategorised := 0
	for _, item := range equipment {
		if item.CategoryID != nil {
			if i, ok := byID[*item.CategoryID]; ok {
				counts[i].Count++
				continue
			}
		}
		if i, ok := byName[item.Category]; ok {
			counts[i].Count++
			continue
		}
		uncategorised++
	}
	if uncategorised > 0 {
		counts = append(counts, dto.CountDTO{Name: uncategorisedLabel, Count: uncategorised})
	}
	return counts
}

func countByLocation(equipment []entities.Equipment) []dto.CountDTO {
	index := map[string]int{}
	out := []dto.CountDTO{}
	for _, item := range equipment {
		i, ok := index[item.Location]
		if !ok {
			i = len(out)
			index[item.Location] = i
			out = append(out, dto.CountDTO{Name: item.Location})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// dailyActivity buckets assigned, returned and moved entries into the last days calendar days, oldest first.
func dailyActivity(history []entities.HistoryEntry, today time.Time, days int) []dto.DailyActivityDTO {
	out := make([]dto.DailyActivityDTO, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -(days - 1 - i)).Format(constants.DateLayout)
		out[i].Date = date
		index[date] = i
	}
	for _, entry := range history {
		i, ok := index[entry.Timestamp.UTC().Format(constants.DateLayout)]
		if !ok {
			continue
		}
		switch entry.Action {
		case constants.ActionAssigned:
			out[i].Assigned++
		case constants.ActionReturned:
			out[i].Returned++
		case constants.ActionMoved:
			out[i].Moved++
		}
	}
	return out
}
