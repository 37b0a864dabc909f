package ws

import (
	"encoding/json"
	"sync"

	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/pkg/logger"
)

// Client is one connected storefront view. A session may hold several
// clients at once (multiple tabs); every one of them receives each cart
// snapshot.
type Client struct {
	Hub       *Hub
	Conn      *Conn
	SessionID string
	Send      chan []byte
}

// Hub fans cart snapshots out to the WebSocket clients of the owning
// session. It is wired into the cart store as an observer: mutations enqueue
// snapshots here, so slow sockets never block a cart operation.
type Hub struct {
	// sessionID -> clients (multi-tab support)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *cartEvent

	mu sync.RWMutex
}

type cartEvent struct {
	sessionID string
	payload   []byte
}

// cartMessage is the wire format pushed to clients.
type cartMessage struct {
	Type  string           `json:"type"`
	Items []model.CartItem `json:"items"`
	Count int              `json:"count"`
	Total float64          `json:"total"`
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *cartEvent, 1024),
	}
}

// Run dispatches registrations and broadcasts. Call in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			total := len(h.clients[client.SessionID])
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"session_id": client.SessionID,
				"total_tabs": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.SessionID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}
				if len(newList) == 0 {
					delete(h.clients, client.SessionID)
				} else {
					h.clients[client.SessionID] = newList
				}
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"session_id": client.SessionID,
			})

		case event := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[event.sessionID]
			for _, client := range clients {
				select {
				case client.Send <- event.payload:
				default:
					// Client buffer full, drop the snapshot. The next
					// mutation delivers a fresh one.
					logger.Warn("Dropping cart snapshot for slow client", map[string]interface{}{
						"session_id": event.sessionID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register attaches a client to its session.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister detaches a client.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastCart pushes a cart snapshot to every client of the session.
// Safe to call from the cart store's synchronous observer path.
func (h *Hub) BroadcastCart(sessionID string, cart model.Cart) {
	payload, err := json.Marshal(cartMessage{
		Type:  "cart_updated",
		Items: cart.Items,
		Count: cart.Count(),
		Total: cart.Total(),
	})
	if err != nil {
		logger.Error("Failed to marshal cart snapshot", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return
	}

	select {
	case h.broadcast <- &cartEvent{sessionID: sessionID, payload: payload}:
	default:
		logger.Warn("Cart event queue full, dropping snapshot", map[string]interface{}{
			"session_id": sessionID,
		})
	}
}
