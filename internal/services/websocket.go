package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// TopicPredictions carries prediction.created events for dashboards.
const TopicPredictions = "predictions"

type WebSocketHub struct {
	clients    map[*Client]bool
	broadcast  chan broadcastMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// broadcastMessage keeps the topic alongside the marshalled payload so the
// hub can filter per client.
type broadcastMessage struct {
	topic   string
	payload []byte
}

type Client struct {
	hub      *WebSocketHub
	conn     *websocket.Conn
	send     chan []byte
	userID   string
	topicsMu sync.RWMutex
	topics   map[string]bool
}

type WebSocketMessage struct {
	Type      string          `json:"type"`
	Topic     string          `json:"topic"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type Subscription struct {
	Action string   `json:"action"` // "subscribe" or "unsubscribe"
	Topics []string `json:"topics"`
}

func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan broadcastMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func NewClient(hub *WebSocketHub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: userID,
		topics: map[string]bool{TopicPredictions: true},
	}
}

func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logrus.Infof("Client registered: user_id=%s", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.mu.Unlock()
				logrus.Infof("Client unregistered: user_id=%s", client.userID)
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			// Write lock: a full client gets dropped mid-loop.
			h.mu.Lock()
			for client := range h.clients {
				if !client.subscribedTo(message.topic) {
					continue
				}
				select {
				case client.send <- message.payload:
				default:
					// Client's send channel is full, close it
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register queues a client for registration.
func (h *WebSocketHub) Register(client *Client) {
	h.register <- client
}

// Unregister queues a client for removal.
func (h *WebSocketHub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastEvent publishes a typed event to every client subscribed to the
// topic.
func (h *WebSocketHub) BroadcastEvent(eventType, topic string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		logrus.Errorf("Failed to marshal websocket event: %v", err)
		return
	}
	message, err := json.Marshal(WebSocketMessage{
		Type:      eventType,
		Topic:     topic,
		Data:      payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logrus.Errorf("Failed to marshal websocket message: %v", err)
		return
	}
	h.broadcast <- broadcastMessage{topic: topic, payload: message}
}

// subscribedTo reports whether the client listens on the topic. "*"
// subscribes to all topics.
func (c *Client) subscribedTo(topic string) bool {
	c.topicsMu.RLock()
	defer c.topicsMu.RUnlock()
	return c.topics[topic] || c.topics["*"]
}

func (c *Client) applySubscription(sub Subscription) {
	c.topicsMu.Lock()
	defer c.topicsMu.Unlock()
	for _, topic := range sub.Topics {
		switch sub.Action {
		case "subscribe":
			c.topics[topic] = true
		case "unsubscribe":
			delete(c.topics, topic)
		}
	}
}

// ReadPump drains subscription messages from the client until it closes.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(4096)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.Warnf("WebSocket read error: %v", err)
			}
			return
		}

		var sub Subscription
		if err := json.Unmarshal(raw, &sub); err != nil {
			continue
		}
		c.applySubscription(sub)
	}
}

// WritePump forwards queued messages to the client connection.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
