package events

import "equipment-tracker/internal/entities"

const (
	HistoryAppended     = "ledger.history.appended"
	NotificationCreated = "ledger.notification.created"
	ToastRaised         = "ledger.toast.raised"
)

// HistoryAppendedEvent is published once per committed audit entry.
type HistoryAppendedEvent struct {
	Entry entities.HistoryEntry
}

func (e HistoryAppendedEvent) Name() string { return HistoryAppended }

type NotificationCreatedEvent struct {
	Notification entities.Notification
}

func (e NotificationCreatedEvent) Name() string { return NotificationCreated }

// ToastRaisedEvent carries a toast to the websocket connections of Toast.UserID.
type ToastRaisedEvent struct {
	Toast entities.Toast
}

func (e ToastRaisedEvent) Name() string { return ToastRaised }
