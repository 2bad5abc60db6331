package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisChannel = "studioline:booking-events"

// Type identifies what happened to a booking
type Type string

const (
	TypeBookingCreated   Type = "booking.created"
	TypeBookingConfirmed Type = "booking.confirmed"
	TypeBookingUpdated   Type = "booking.updated"
	TypeBookingCancelled Type = "booking.cancelled"
	TypeBookingDeleted   Type = "booking.deleted"
)

// Event is the payload pushed to dashboard connections
type Event struct {
	Type       Type   `json:"type"`
	BookingID  string `json:"booking_id"`
	LocationID string `json:"location_id,omitempty"`
	Status     string `json:"status,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Hub fans booking events out to connected dashboard clients. Events are also
// published to Redis so other instances can observe them.
type Hub struct {
	redis *redis.Client

	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
}

// NewHub creates an event hub
func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		redis:      redisClient,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run processes hub events; call in a goroutine
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer, drop the connection
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Publish pushes an event to connected clients and the Redis channel
func (h *Hub) Publish(ctx context.Context, evt Event) {
	evt.OccurredAt = time.Now().Format(time.RFC3339)

	payload, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal booking event")
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		log.Warn().Str("type", string(evt.Type)).Msg("Event broadcast buffer full, dropping")
	}

	if h.redis != nil {
		if err := h.redis.Publish(ctx, redisChannel, payload).Err(); err != nil {
			log.Error().Err(err).Msg("Failed to publish booking event to Redis")
		}
	}
}

// client is a single websocket dashboard connection
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Clients only listen; drain until the connection closes
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
