package realtime

import (
	"time"

	"ecocollect/models"
)

// Event is what goes out over a notification stream.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	Time int64       `json:"time"`
}

const EventTypeNotification = "notification"

// Hub fans incoming notifications out to the recipient's connected
// websocket clients. Recipients are keyed by "<role>:<id hex>" so user and
// receiver ID spaces cannot collide.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan targetedEvent
}

type targetedEvent struct {
	key   string
	event Event
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan targetedEvent),
	}
}

// Run is the hub's main loop; call it once in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case te := <-h.broadcast:
			h.deliver(te)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	if h.clients[client.key] == nil {
		h.clients[client.key] = make(map[*Client]bool)
	}
	h.clients[client.key][client] = true
}

func (h *Hub) removeClient(client *Client) {
	if conns, ok := h.clients[client.key]; ok {
		if conns[client] {
			delete(conns, client)
			close(client.send)
			if len(conns) == 0 {
				delete(h.clients, client.key)
			}
		}
	}
}

func (h *Hub) deliver(te targetedEvent) {
	for client := range h.clients[te.key] {
		select {
		case client.send <- te.event:
		default:
			// Slow consumer; drop the connection rather than block the hub.
			delete(h.clients[te.key], client)
			close(client.send)
		}
	}
}

// PushNotification delivers a stored notification to its recipient's live
// connections, if any.
func (h *Hub) PushNotification(n *models.Notification) {
	key := recipientKeyFor(n)
	if key == "" {
		return
	}
	h.broadcast <- targetedEvent{
		key: key,
		event: Event{
			Type: EventTypeNotification,
			Data: n,
			Time: time.Now().Unix(),
		},
	}
}

func recipientKeyFor(n *models.Notification) string {
	if n.UserID != nil {
		return ClientKey(models.RoleUser, n.UserID.Hex())
	}
	if n.ReceiverID != nil {
		return ClientKey(models.RoleReceiver, n.ReceiverID.Hex())
	}
	return ""
}

// ClientKey builds the hub key for a role/identity pair. Admins subscribe on
// the user keyspace since admin accounts live in the users collection.
func ClientKey(role, idHex string) string {
	if role == models.RoleAdmin {
		role = models.RoleUser
	}
	return role + ":" + idHex
}
