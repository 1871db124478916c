package services

import (
	"context"
	"fmt"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/ledger"
	"equipment-tracker/pkg/constants"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter dto.EquipmentFilterDTO) []entities.Equipment
	FindEquipment(ctx context.Context, id string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	UpdateStatus(ctx context.Context, id string, payload dto.UpdateEquipmentStatusDTO) (*entities.Equipment, error)
	UpdateLocation(ctx context.Context, id string, payload dto.UpdateEquipmentLocationDTO) (*entities.Equipment, error)
	Assign(ctx context.Context, id string, payload dto.AssignEquipmentDTO) (*entities.Equipment, error)
	GetHistory(ctx context.Context, id string) ([]entities.HistoryEntry, error)
	GetAllHistory(ctx context.Context) []entities.HistoryEntry
}

type EquipmentService struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

func NewEquipmentService(l *ledger.Ledger, logger *zap.Logger) EquipmentServiceInterface {
	return &EquipmentService{
		ledger: l,
		logger: logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter dto.EquipmentFilterDTO) []entities.Equipment {
	return s.ledger.ListEquipment(ledger.EquipmentFilter{
		Search:     filter.Search,
		Status:     constants.EquipmentStatus(filter.Status),
		CategoryID: filter.CategoryID,
		Location:   filter.Location,
	})
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	item, ok := s.ledger.GetEquipmentByID(id)
	if !ok {
		return nil, fmt.Errorf("equipment %s: %w", id, apperrors.ErrNotFound)
	}
	return &item, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	item, err := s.ledger.AddEquipment(ctx, ledger.NewEquipment{
		Name:                payload.Name,
		CategoryID:          payload.CategoryID,
		Category:            payload.Category,
		SerialNumber:        payload.SerialNumber,
		Status:              constants.EquipmentStatus(payload.Status),
		Location:            payload.Location,
		LastMaintenanceDate: payload.LastMaintenanceDate,
		NextMaintenanceDate: payload.NextMaintenanceDate,
		PurchaseDate:        payload.PurchaseDate,
		Notes:               payload.Notes,
	})
	if err != nil {
		s.logger.Error("failed to add equipment", zap.String("name", payload.Name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("equipment added", zap.String("id", item.ID), zap.String("serial", item.SerialNumber))
	return &item, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	item, err := s.ledger.UpdateEquipment(ctx, id, ledger.EquipmentPatch{
		Name:                payload.Name.Ptr(),
		CategoryID:          payload.CategoryID.Ptr(),
		SerialNumber:        payload.SerialNumber.Ptr(),
		LastMaintenanceDate: payload.LastMaintenanceDate.Ptr(),
		NextMaintenanceDate: payload.NextMaintenanceDate.Ptr(),
		PurchaseDate:        payload.PurchaseDate.Ptr(),
		Notes:               payload.Notes.Ptr(),
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *EquipmentService) UpdateStatus(ctx context.Context, id string, payload dto.UpdateEquipmentStatusDTO) (*entities.Equipment, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.ledger.UpdateEquipmentStatus(ctx, id, constants.EquipmentStatus(payload.Status), actor, payload.Notes)
	if err != nil {
		return nil, err
	}
	s.logger.Info("equipment status changed",
		zap.String("id", id),
		zap.String("status", payload.Status),
		zap.String("actor", actor.ID),
	)
	return &item, nil
}

func (s *EquipmentService) UpdateLocation(ctx context.Context, id string, payload dto.UpdateEquipmentLocationDTO) (*entities.Equipment, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.ledger.UpdateEquipmentLocation(ctx, id, payload.Location, actor, payload.Notes)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *EquipmentService) Assign(ctx context.Context, id string, payload dto.AssignEquipmentDTO) (*entities.Equipment, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.ledger.AssignEquipment(ctx, id, payload.AssignedTo.Ptr(), actor, payload.Notes)
	if err != nil {
		return nil, err
	}
	s.logger.Info("equipment assignment changed",
		zap.String("id", id),
		zap.Stringp("assignedTo", item.AssignedTo),
		zap.String("actor", actor.ID),
	)
	return &item, nil
}

func (s *EquipmentService) GetHistory(ctx context.Context, id string) ([]entities.HistoryEntry, error) {
	if _, ok := s.ledger.GetEquipmentByID(id); !ok {
		return nil, fmt.Errorf("equipment %s: %w", id, apperrors.ErrNotFound)
	}
	return s.ledger.GetEquipmentHistoryByID(id), nil
}

func (s *EquipmentService) GetAllHistory(ctx context.Context) []entities.HistoryEntry {
	return s.ledger.ListHistory()
}

func actorFromCtx(ctx context.Context) (ledger.Actor, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return ledger.Actor{}, err
	}
	return ledger.Actor{ID: actor.ID, Name: actor.Name}, nil
}
