package services

import (
	"context"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/ledger"
	"equipment-tracker/pkg/constants"

	"go.uber.org/zap"
)

type EquipmentRequestServiceInterface interface {
	GetRequests(ctx context.Context, filter dto.RequestFilterDTO) []entities.EquipmentRequest
	CreateRequest(ctx context.Context, payload dto.CreateEquipmentRequestDTO) (*entities.EquipmentRequest, error)
	UpdateStatus(ctx context.Context, id string, payload dto.UpdateRequestStatusDTO) (*entities.EquipmentRequest, error)
}

type EquipmentRequestService struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

func NewEquipmentRequestService(l *ledger.Ledger, logger *zap.Logger) EquipmentRequestServiceInterface {
	return &EquipmentRequestService{ledger: l, logger: logger}
}

func (s *EquipmentRequestService) GetRequests(ctx context.Context, filter dto.RequestFilterDTO) []entities.EquipmentRequest {
	return s.ledger.ListRequests(ledger.RequestFilter{
		EquipmentID: filter.EquipmentID,
		RequesterID: filter.RequesterID,
		Status:      constants.RequestStatus(filter.Status),
	})
}

func (s *EquipmentRequestService) CreateRequest(ctx context.Context, payload dto.CreateEquipmentRequestDTO) (*entities.EquipmentRequest, error) {
	requester, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	request, err := s.ledger.RequestEquipment(ctx, ledger.NewEquipmentRequest{
		EquipmentID:   payload.EquipmentID,
		RequesterID:   requester.ID,
		RequesterName: requester.Name,
		Reason:        payload.Reason,
		Notes:         payload.Notes,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("equipment requested", zap.String("requestID", request.ID), zap.String("requester", requester.ID))
	return &request, nil
}

func (s *EquipmentRequestService) UpdateStatus(ctx context.Context, id string, payload dto.UpdateRequestStatusDTO) (*entities.EquipmentRequest, error) {
	request, err := s.ledger.UpdateRequestStatus(ctx, id, constants.RequestStatus(payload.Status), payload.Notes)
	if err != nil {
		s.logger.Warn("request status not changed", zap.String("requestID", id), zap.Error(err))
		return nil, err
	}
	return &request, nil
}
