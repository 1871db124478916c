package listeners

import (
	"context"
	"sync"
	"testing"

	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/events"
	"equipment-tracker/pkg/constants"
	"equipment-tracker/pkg/eventbus"
	"equipment-tracker/pkg/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentMessage struct {
	userID      string
	payload     interface{}
	messageType string
}

type fakeWS struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *fakeWS) SendNotification(userID string, payload interface{}, messageType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{userID, payload, messageType})
	return nil
}

func newBus(t *testing.T) (*eventbus.Bus, *fakeWS) {
	t.Helper()
	bus := eventbus.New(zap.NewNop())
	ws := &fakeWS{}
	NewNotificationListener(ws, zap.NewNop()).Register(bus)
	return bus, ws
}

func TestNotificationCreatedIsPushedToRecipient(t *testing.T) {
	bus, ws := newBus(t)

	bus.Publish(context.Background(), events.NotificationCreatedEvent{Notification: entities.Notification{
		ID:     "n-1",
		UserID: "2",
		Title:  "Equipment Repaired",
		Type:   constants.NotificationEquipmentRepaired,
	}})
	bus.Wait()

	require.Len(t, ws.sent, 1)
	assert.Equal(t, "2", ws.sent[0].userID)
	assert.Equal(t, websocket.MessageTypeNotification, ws.sent[0].messageType)
	payload, ok := ws.sent[0].payload.(websocket.NotificationPayload)
	require.True(t, ok)
	assert.Equal(t, "equipment_repaired", payload.Type)
}

func TestToastIsPushedToActor(t *testing.T) {
	bus, ws := newBus(t)

	bus.Publish(context.Background(), events.ToastRaisedEvent{Toast: entities.Toast{UserID: "1", Title: "Status Updated", Variant: entities.ToastDefault}})
	bus.Publish(context.Background(), events.ToastRaisedEvent{Toast: entities.Toast{Title: "nobody"}})
	bus.Wait()

	require.Len(t, ws.sent, 1)
	assert.Equal(t, websocket.MessageTypeToast, ws.sent[0].messageType)
	assert.Equal(t, websocket.ToastPayload{Title: "Status Updated", Variant: "default"}, ws.sent[0].payload)
}

func TestHistoryAppendedSendsNothing(t *testing.T) {
	bus, ws := newBus(t)

	from, to := constants.EquipmentAvailable, constants.EquipmentDamaged
	bus.Publish(context.Background(), events.HistoryAppendedEvent{Entry: entities.HistoryEntry{
		ID: "h-1", EquipmentID: "e-1", Action: constants.ActionStatusChanged, FromStatus: &from, ToStatus: &to,
	}})
	bus.Wait()

	assert.Empty(t, ws.sent)
}
