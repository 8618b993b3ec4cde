package websocket

import (
	"context"

	"github.com/anjiri1684/appointment_booking/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// clientBuffer is how many events a client may lag behind before it is dropped.
const clientBuffer = 16

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

type Client struct {
	UserID uuid.UUID
	Conn   Conn

	send chan any
}

// Hub fans reservation events out to connected administrators. The client set
// is owned by the Run goroutine; each client is written by its own goroutine
// so a stalled socket cannot hold up the others.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan any
	clients    map[*Client]struct{}
	count      chan chan int
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan any, 64),
		clients:    make(map[*Client]struct{}),
		count:      make(chan chan int),
		done:       make(chan struct{}),
	}
}

// Register adds c to the hub. After Run has returned it closes c.Conn instead.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.Conn.Close()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues msg for every client, dropping it if the queue is full.
func (h *Hub) Broadcast(msg any) {
	select {
	case h.broadcast <- msg:
	default:
		utils.GetLogger().Warn("websocket broadcast queue full, dropping event")
	}
}

// Clients reports the number of registered clients, zero once the hub stopped.
func (h *Hub) Clients() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

func (h *Hub) Run(ctx context.Context) {
	log := utils.GetLogger()
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case client := <-h.register:
			log.Info("websocket client registered", zap.String("user_id", client.UserID.String()))
			client.send = make(chan any, clientBuffer)
			h.clients[client] = struct{}{}
			go h.write(client)
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				log.Info("websocket client unregistered", zap.String("user_id", client.UserID.String()))
				h.drop(client)
			}
		case reply := <-h.count:
			reply <- len(h.clients)
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					log.Warn("websocket client too slow, disconnecting",
						zap.String("user_id", client.UserID.String()))
					h.drop(client)
				}
			}
		}
	}
}

// drop must only be called from Run.
func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	c.Conn.Close()
}

func (h *Hub) write(c *Client) {
	for msg := range c.send {
		if err := c.Conn.WriteJSON(msg); err != nil {
			utils.GetLogger().Warn("websocket write failed",
				zap.String("user_id", c.UserID.String()), zap.Error(err))
			c.Conn.Close()
			h.Unregister(c)
			return
		}
	}
}
