package services

import (
	"context"
	"fmt"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/ledger"
	"equipment-tracker/pkg/constants"
	apperrors "equipment-tracker/pkg/errors"

	"go.uber.org/zap"
)

type NotificationServiceInterface interface {
	GetNotifications(ctx context.Context, filter dto.NotificationFilterDTO) ([]entities.Notification, error)
	CreateNotification(ctx context.Context, payload dto.CreateNotificationDTO) (*entities.Notification, error)
	MarkAsRead(ctx context.Context, id string) (*entities.Notification, error)
	MarkAllAsRead(ctx context.Context) (int, error)
	NotifyMaintenanceDue(ctx context.Context, payload dto.MaintenanceNotifyDTO) ([]entities.Notification, error)
}

type NotificationService struct {
	ledger            *ledger.Ledger
	maintenanceWindow int
	logger            *zap.Logger
}

func NewNotificationService(l *ledger.Ledger, maintenanceWindowDays int, logger *zap.Logger) NotificationServiceInterface {
	return &NotificationService{
		ledger:            l,
		maintenanceWindow: maintenanceWindowDays,
		logger:            logger,
	}
}

// GetNotifications lists the authenticated user's notifications, newest first.
func (s *NotificationService) GetNotifications(ctx context.Context, filter dto.NotificationFilterDTO) ([]entities.Notification, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Unread {
		return s.ledger.GetUnreadNotificationsForUser(actor.ID), nil
	}
	return s.ledger.ListNotificationsForUser(actor.ID), nil
}

// CreateNotification sends a notification to any user, e.g. that requested equipment is available again.
func (s *NotificationService) CreateNotification(ctx context.Context, payload dto.CreateNotificationDTO) (*entities.Notification, error) {
	if payload.RelatedEquipmentID != nil {
		if _, ok := s.ledger.GetEquipmentByID(*payload.RelatedEquipmentID); !ok {
			return nil, fmt.Errorf("equipment %s: %w", *payload.RelatedEquipmentID, apperrors.ErrNotFound)
		}
	}
	n, err := s.ledger.AddNotification(ctx, ledger.NewNotification{
		UserID:             payload.UserID,
		Title:              payload.Title,
		Message:            payload.Message,
		Type:               constants.NotificationType(payload.Type),
		RelatedEquipmentID: payload.RelatedEquipmentID,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("notification sent", zap.String("id", n.ID), zap.String("recipient", n.UserID), zap.String("type", string(n.Type)))
	return &n, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id string) (*entities.Notification, error) {
	n, err := s.ledger.MarkNotificationAsRead(ctx, id)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context) (int, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	return s.ledger.MarkAllNotificationsAsRead(ctx, actor.ID)
}

// NotifyMaintenanceDue defaults the recipient to the caller and the window to the configured one.
func (s *NotificationService) NotifyMaintenanceDue(ctx context.Context, payload dto.MaintenanceNotifyDTO) ([]entities.Notification, error) {
	recipient := payload.RecipientID
	if recipient == "" {
		actor, err := actorFromCtx(ctx)
		if err != nil {
			return nil, err
		}
		recipient = actor.ID
	}
	window := s.maintenanceWindow
	if payload.WindowDays != nil {
		window = *payload.WindowDays
	}

	created, err := s.ledger.NotifyMaintenanceDue(ctx, recipient, window)
	if err != nil {
		return nil, err
	}
	s.logger.Info("maintenance check done",
		zap.String("recipient", recipient),
		zap.Int("windowDays", window),
		zap.Int("created", len(created)),
	)
	return created, nil
}
