package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) *WebSocketMessage {
	t.Helper()
	select {
	case raw := <-c.send:
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		return &msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func assertNoMessage(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("unexpected message: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastEventFiltersByTopic(t *testing.T) {
	hub := NewWebSocketHub()
	go hub.Run()

	subscribed := NewClient(hub, nil, "user-1")
	unsubscribed := NewClient(hub, nil, "user-2")
	unsubscribed.applySubscription(Subscription{Action: "unsubscribe", Topics: []string{TopicPredictions}})

	hub.Register(subscribed)
	hub.Register(unsubscribed)

	hub.BroadcastEvent("prediction.created", TopicPredictions, map[string]string{"id": "p-1"})

	msg := receive(t, subscribed)
	assert.Equal(t, "prediction.created", msg.Type)
	assert.Equal(t, TopicPredictions, msg.Topic)

	assertNoMessage(t, unsubscribed)
}

func TestClientSubscriptionChanges(t *testing.T) {
	hub := NewWebSocketHub()
	go hub.Run()

	client := NewClient(hub, nil, "user-1")
	hub.Register(client)

	// Default subscription covers predictions only.
	assert.True(t, client.subscribedTo(TopicPredictions))
	assert.False(t, client.subscribedTo("draws"))

	client.applySubscription(Subscription{Action: "subscribe", Topics: []string{"draws"}})
	hub.BroadcastEvent("draw.updated", "draws", map[string]string{"game": "powerball"})
	msg := receive(t, client)
	assert.Equal(t, "draws", msg.Topic)

	client.applySubscription(Subscription{Action: "unsubscribe", Topics: []string{"draws"}})
	hub.BroadcastEvent("draw.updated", "draws", map[string]string{"game": "powerball"})
	assertNoMessage(t, client)
}

func TestWildcardSubscription(t *testing.T) {
	hub := NewWebSocketHub()
	go hub.Run()

	client := NewClient(hub, nil, "user-1")
	client.applySubscription(Subscription{Action: "subscribe", Topics: []string{"*"}})
	hub.Register(client)

	hub.BroadcastEvent("draw.updated", "draws", map[string]string{"game": "pick_six"})
	msg := receive(t, client)
	assert.Equal(t, "draw.updated", msg.Type)
}
