package ledger

import (
	"context"
	"fmt"

	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/events"
	"equipment-tracker/pkg/constants"
	apperrors "equipment-tracker/pkg/errors"
)

type NewNotification struct {
	UserID             string
	Title              string
	Message            string
	Type               constants.NotificationType
	RelatedEquipmentID *string
}

func (l *Ledger) AddNotification(ctx context.Context, in NewNotification) (entities.Notification, error) {
	var created entities.Notification
	err := l.run(ctx, createNotification(in, &created))
	return created, err
}

func createNotification(in NewNotification, out *entities.Notification) effect {
	return func(t *tx) error {
		n := entities.Notification{
			ID:                 t.newID(),
			UserID:             in.UserID,
			Title:              in.Title,
			Message:            in.Message,
			Type:               in.Type,
			RelatedEquipmentID: clonePtr(in.RelatedEquipmentID),
			CreatedAt:          t.now,
			IsRead:             false,
		}
		own(t, KeyNotifications, &t.st.notifications)
		t.st.notifications = append(t.st.notifications, n)
		t.events = append(t.events, events.NotificationCreatedEvent{Notification: n.Clone()})
		if out != nil {
			*out = n.Clone()
		}
		return nil
	}
}

// MarkNotificationAsRead is idempotent. An already-read notification is not rewritten.
func (l *Ledger) MarkNotificationAsRead(ctx context.Context, id string) (entities.Notification, error) {
	var n entities.Notification
	err := l.run(ctx, func(t *tx) error {
		i := t.notificationIndex(id)
		if i < 0 {
			return fmt.Errorf("notification %s: %w", id, apperrors.ErrNotFound)
		}
		n = t.st.notifications[i].Clone()
		if n.IsRead {
			return nil
		}
		n.IsRead = true
		t.putNotification(i, n.Clone())
		return nil
	})
	return n, err
}

// MarkAllNotificationsAsRead flips every unread notification of userID and reports how many changed.
func (l *Ledger) MarkAllNotificationsAsRead(ctx context.Context, userID string) (int, error) {
	var flipped int
	err := l.run(ctx, func(t *tx) error {
		for i, n := range t.st.notifications {
			if n.UserID != userID || n.IsRead {
				continue
			}
			n.IsRead = true
			t.putNotification(i, n)
			flipped++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return flipped, nil
}

// GetUnreadNotificationsForUser returns the user's unread notifications, newest first.
func (l *Ledger) GetUnreadNotificationsForUser(userID string) []entities.Notification {
	return l.notificationsFor(userID, true)
}

func (l *Ledger) ListNotificationsForUser(userID string) []entities.Notification {
	return l.notificationsFor(userID, false)
}

func (l *Ledger) notificationsFor(userID string, unreadOnly bool) []entities.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := []entities.Notification{}
	for i := len(l.st.notifications) - 1; i >= 0; i-- {
		n := l.st.notifications[i]
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, n.Clone())
	}
	return out
}
