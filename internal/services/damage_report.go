package services

import (
	"context"
	"time"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/ledger"
	"equipment-tracker/pkg/constants"
	"equipment-tracker/pkg/utils"

	"go.uber.org/zap"
)

type DamageReportServiceInterface interface {
	GetDamageReports(ctx context.Context, filter dto.DamageReportFilterDTO) []entities.DamageReport
	ReportDamage(ctx context.Context, payload dto.CreateDamageReportDTO) (*entities.DamageReport, error)
	UpdateStatus(ctx context.Context, id string, payload dto.UpdateDamageReportStatusDTO) (*entities.DamageReport, error)
}

type DamageReportService struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

func NewDamageReportService(l *ledger.Ledger, logger *zap.Logger) DamageReportServiceInterface {
	return &DamageReportService{ledger: l, logger: logger}
}

func (s *DamageReportService) GetDamageReports(ctx context.Context, filter dto.DamageReportFilterDTO) []entities.DamageReport {
	return s.ledger.ListDamageReports(ledger.DamageReportFilter{
		EquipmentID: filter.EquipmentID,
		ReporterID:  filter.ReporterID,
		Status:      constants.DamageReportStatus(filter.Status),
	})
}

// ReportDamage files the report on behalf of the authenticated user.
func (s *DamageReportService) ReportDamage(ctx context.Context, payload dto.CreateDamageReportDTO) (*entities.DamageReport, error) {
	reporter, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	var reportDate time.Time
	if d, ok := utils.ParseDate(payload.ReportDate); ok {
		reportDate = d
	}

	report, err := s.ledger.ReportDamage(ctx, ledger.NewDamageReport{
		EquipmentID:  payload.EquipmentID,
		ReporterID:   reporter.ID,
		ReporterName: reporter.Name,
		ReportDate:   reportDate,
		Description:  payload.Description,
		Notes:        payload.Notes,
	})
	if err != nil {
		s.logger.Warn("damage report rejected", zap.String("equipmentID", payload.EquipmentID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("damage reported",
		zap.String("reportID", report.ID),
		zap.String("equipmentID", report.EquipmentID),
		zap.String("reporter", reporter.ID),
	)
	return &report, nil
}

func (s *DamageReportService) UpdateStatus(ctx context.Context, id string, payload dto.UpdateDamageReportStatusDTO) (*entities.DamageReport, error) {
	report, err := s.ledger.UpdateDamageReportStatus(ctx, id, constants.DamageReportStatus(payload.Status), payload.Notes)
	if err != nil {
		return nil, err
	}
	s.logger.Info("damage report status changed", zap.String("reportID", id), zap.String("status", payload.Status))
	return &report, nil
}
