package websocket

import (
	"context"
	"testing"
	"time"

	"career-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHub_SendReachesEveryDeviceOfUser(t *testing.T) {
	hub := startHub(t)

	phone := NewClient(hub, nil, "u1")
	laptop := NewClient(hub, nil, "u1")
	other := NewClient(hub, nil, "u2")
	hub.Register(phone)
	hub.Register(laptop)
	hub.Register(other)

	require.Eventually(t, func() bool { return hub.ConnectedClients("u1") == 2 }, time.Second, 5*time.Millisecond)

	hub.Send(context.Background(), "u1", []byte(`{"type":"SECTION_ACTIVATED"}`))

	assert.Equal(t, `{"type":"SECTION_ACTIVATED"}`, string(<-phone.Send))
	assert.Equal(t, `{"type":"SECTION_ACTIVATED"}`, string(<-laptop.Send))
	assert.Len(t, other.Send, 0)
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	hub := startHub(t)

	c := NewClient(hub, nil, "u1")
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ConnectedClients("u1") == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(c)
	require.Eventually(t, func() bool { return hub.ConnectedClients("u1") == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_FullBufferDropsConnection(t *testing.T) {
	hub := startHub(t)

	c := &Client{Hub: hub, UserID: "u1", Send: make(chan []byte, 1)}
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ConnectedClients("u1") == 1 }, time.Second, 5*time.Millisecond)

	hub.Send(context.Background(), "u1", []byte("1"))
	hub.Send(context.Background(), "u1", []byte("2"))

	require.Eventually(t, func() bool { return hub.ConnectedClients("u1") == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_SendWithoutClientsIsNoop(t *testing.T) {
	hub := startHub(t)
	assert.NotPanics(t, func() {
		hub.Send(context.Background(), "nobody", []byte("x"))
	})
}

func TestClient_EnqueueRespectsBuffer(t *testing.T) {
	c := NewClient(nil, nil, "u1")
	assert.NotEmpty(t, c.ID)

	for i := 0; i < sendBuffer; i++ {
		require.True(t, c.Enqueue([]byte("x")))
	}
	assert.False(t, c.Enqueue([]byte("overflow")))
}

func TestClient_GreetingPrecedesHubTraffic(t *testing.T) {
	hub := startHub(t)

	c := NewClient(hub, nil, "u1")
	require.True(t, c.Enqueue([]byte("snapshot")))
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ConnectedClients("u1") == 1 }, time.Second, 5*time.Millisecond)

	hub.Send(context.Background(), "u1", []byte("event"))

	assert.Equal(t, "snapshot", string(<-c.Send))
	assert.Equal(t, "event", string(<-c.Send))
}

func TestHub_RegistrationAfterShutdownDoesNotBlock(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	cancel()
	<-stopped

	returned := make(chan struct{})
	go func() {
		c := NewClient(hub, nil, "u1")
		hub.Register(c)
		hub.Unregister(c)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister blocked after the hub stopped")
	}
}
