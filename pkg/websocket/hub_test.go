package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestSendMessageToUser(t *testing.T) {
	hub := startHub(t)
	alice := NewClient(hub, nil, "1")
	bob := NewClient(hub, nil, "2")
	hub.Register <- alice
	hub.Register <- bob

	require.Eventually(t, func() bool {
		return hub.ConnectionCount("1") == 1 && hub.ConnectionCount("2") == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.SendMessageToUser("1", ToastPayload{Title: "Status Updated"}, MessageTypeToast))

	select {
	case raw := <-alice.Send:
		var env struct {
			ID      string       `json:"id"`
			Type    string       `json:"type"`
			Payload ToastPayload `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, MessageTypeToast, env.Type)
		assert.Equal(t, "Status Updated", env.Payload.Title)
		assert.NotEmpty(t, env.ID)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}

	assert.Len(t, bob.Send, 0)
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	client := NewClient(hub, nil, "7")
	require.True(t, hub.RegisterClient(client))
	hub.UnregisterClient(client)

	require.Eventually(t, func() bool { return hub.ConnectionCount("7") == 0 }, time.Second, 10*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open)
}

func TestSendToUnknownUser(t *testing.T) {
	hub := startHub(t)
	assert.NoError(t, hub.SendMessageToUser("nobody", NotificationPayload{}, MessageTypeNotification))
}

func TestStoppedHubDoesNotBlockClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := NewClient(hub, nil, "9")
	require.True(t, hub.RegisterClient(client))
	require.Eventually(t, func() bool { return hub.ConnectionCount("9") == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	_, open := <-client.Send
	assert.False(t, open)

	unregistered := make(chan struct{})
	go func() {
		hub.UnregisterClient(client)
		close(unregistered)
	}()
	select {
	case <-unregistered:
	case <-time.After(time.Second):
		t.Fatal("unregister blocked on a stopped hub")
	}

	late := NewClient(hub, nil, "9")
	assert.False(t, hub.RegisterClient(late))
	assert.Equal(t, 0, hub.ConnectionCount("9"))
}
