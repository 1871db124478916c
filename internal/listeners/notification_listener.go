package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"equipment-tracker/internal/events"
	"equipment-tracker/internal/services"
	"equipment-tracker/pkg/eventbus"
	"equipment-tracker/pkg/websocket"
)

// NotificationListener pushes ledger toasts and notifications to the websocket
// connections of the user they are addressed to, and writes the audit trail to the log.
type NotificationListener struct {
	wsNotificationService services.WebSocketNotificationServiceInterface
	logger                *zap.Logger
}

func NewNotificationListener(
	wsNotificationService services.WebSocketNotificationServiceInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		wsNotificationService: wsNotificationService,
		logger:                logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.NotificationCreated, l.handleNotificationCreated)
	bus.Subscribe(events.ToastRaised, l.handleToastRaised)
	bus.Subscribe(events.HistoryAppended, l.handleHistoryAppended)
	l.logger.Info("notification listener subscribed",
		zap.Strings("events", []string{events.NotificationCreated, events.ToastRaised, events.HistoryAppended}),
	)
}

func (l *NotificationListener) handleNotificationCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.NotificationCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	n := e.Notification
	payload := websocket.NotificationPayload{
		ID:                 n.ID,
		Title:              n.Title,
		Message:            n.Message,
		Type:               string(n.Type),
		RelatedEquipmentID: n.RelatedEquipmentID,
		IsRead:             n.IsRead,
		CreatedAt:          n.CreatedAt,
	}
	return l.wsNotificationService.SendNotification(n.UserID, payload, websocket.MessageTypeNotification)
}

func (l *NotificationListener) handleToastRaised(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ToastRaisedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if e.Toast.UserID == "" {
		return nil
	}
	payload := websocket.ToastPayload{
		Title:       e.Toast.Title,
		Description: e.Toast.Description,
		Variant:     e.Toast.Variant,
	}
	return l.wsNotificationService.SendNotification(e.Toast.UserID, payload, websocket.MessageTypeToast)
}

func (l *NotificationListener) handleHistoryAppended(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.HistoryAppendedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	entry := e.Entry
	fields := []zap.Field{
		zap.String("entryID", entry.ID),
		zap.String("equipmentID", entry.EquipmentID),
		zap.String("action", string(entry.Action)),
		zap.String("userID", entry.UserID),
		zap.Time("timestamp", entry.Timestamp),
	}
	if entry.FromStatus != nil && entry.ToStatus != nil {
		fields = append(fields, zap.String("fromStatus", string(*entry.FromStatus)), zap.String("toStatus", string(*entry.ToStatus)))
	}
	if entry.FromLocation != nil && entry.ToLocation != nil {
		fields = append(fields, zap.String("fromLocation", *entry.FromLocation), zap.String("toLocation", *entry.ToLocation))
	}
	l.logger.Info("equipment history appended", fields...)
	return nil
}
